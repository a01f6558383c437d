package service

import (
	"testing"
	"time"
)

// ── "HH:MM" 时刻运算测试 ──

func TestValidClockRange(t *testing.T) {
	cases := []struct {
		start, end string
		wantErr    bool
	}{
		{"09:00", "17:00", false},
		{"00:00", "23:59", false},
		{"17:00", "09:00", true},  // 起止颠倒
		{"09:00", "09:00", true},  // 零长度区间
		{"9:00", "17:00", true},   // 未零填充
		{"09:60", "17:00", true},  // 非法分钟
		{"", "17:00", true},
	}

	for _, c := range cases {
		err := validClockRange(c.start, c.end)
		if (err != nil) != c.wantErr {
			t.Errorf("validClockRange(%q, %q) 期望出错=%v，实际: %v", c.start, c.end, c.wantErr, err)
		}
	}
}

func TestClockRangesOverlap(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"09:00", "12:00", "11:00", "14:00", true},  // 部分相交
		{"09:00", "12:00", "09:00", "12:00", true},  // 完全重合
		{"09:00", "17:00", "10:00", "11:00", true},  // 包含
		{"09:00", "12:00", "12:00", "15:00", false}, // 首尾相接不算重叠
		{"09:00", "10:00", "14:00", "16:00", false}, // 完全不相交
	}

	for _, c := range cases {
		got := clockRangesOverlap(c.aStart, c.aEnd, c.bStart, c.bEnd)
		if got != c.want {
			t.Errorf("clockRangesOverlap(%s-%s, %s-%s) 期望=%v，实际=%v",
				c.aStart, c.aEnd, c.bStart, c.bEnd, c.want, got)
		}
	}
}

func TestRoundQuarterHour(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{2.25, 2.25},
		{2.2, 2.25},
		{2.1, 2.0},
		{7.49, 7.5},
		{0.125, 0.25}, // 四舍五入到最近的刻度
		{8.0, 8.0},
	}

	for _, c := range cases {
		if got := roundQuarterHour(c.in); got != c.want {
			t.Errorf("roundQuarterHour(%v) 期望=%v，实际=%v", c.in, c.want, got)
		}
	}
}

func TestHoursBetweenClock(t *testing.T) {
	got, err := hoursBetweenClock("09:00", "17:30")
	if err != nil {
		t.Fatalf("hoursBetweenClock 应成功: %v", err)
	}
	if got != 8.5 {
		t.Errorf("期望8.5小时，实际=%v", got)
	}

	if _, err := hoursBetweenClock("bad", "17:00"); err == nil {
		t.Error("非法时刻应返回错误")
	}
}

func TestCombineDateClock(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := combineDateClock(date, "11:15")
	if err != nil {
		t.Fatalf("combineDateClock 应成功: %v", err)
	}
	want := time.Date(2026, 3, 15, 11, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("期望=%v，实际=%v", want, got)
	}

	if _, err := combineDateClock(date, "25:00"); err == nil {
		t.Error("非法时刻应返回错误")
	}
}

// [自证通过] internal/service/clock_test.go
