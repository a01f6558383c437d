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

// ── 服务记录模块业务错误 ──

var (
	ErrServiceLogNotFound = errors.New("服务记录不存在")
	// ErrServiceLogInvalidStatus 状态机拒绝该迁移
	ErrServiceLogInvalidStatus = errors.New("服务记录状态不允许该操作")
	// ErrServiceLogForbidden 仅记录所属员工可签入/签出
	ErrServiceLogForbidden = errors.New("无权操作他人的服务记录")
	ErrInvalidServiceTime  = errors.New("服务起止时间非法")
)

// ServiceLogService 服务交付台账业务接口
//
// 状态机：PENDING → IN_PROGRESS → {COMPLETED, CANCELLED}，PENDING → CANCELLED 亦合法。
// COMPLETED 后除 ndis_approved 标志外不可再变；actual_hours 在签出时
// 按 0.25 小时取整一次性写入。
type ServiceLogService interface {
	Create(ctx context.Context, req *dto.CreateServiceLogRequest, callerID string) (*dto.ServiceLogResponse, error)
	// Start 员工签入：PENDING → IN_PROGRESS，记录实际开始时间
	Start(ctx context.Context, id, staffID string) error
	// Complete 员工签出：IN_PROGRESS → COMPLETED，计算 actual_hours
	// req.EndAt 缺省时按当前时刻计费
	Complete(ctx context.Context, id string, req *dto.CompleteServiceLogRequest, staffID string) (*dto.ServiceLogResponse, error)
	// Cancel 取消：PENDING/IN_PROGRESS → CANCELLED，不记工时
	Cancel(ctx context.Context, id string, req *dto.CancelServiceLogRequest, callerID string) error
	// SetApproval 审批人翻转 NDIS 核准标志（仅 COMPLETED 允许）
	SetApproval(ctx context.Context, id string, approved bool, adminID string) error
	List(ctx context.Context, req *dto.ServiceLogListRequest) ([]dto.ServiceLogResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.ServiceLogResponse, error)
	// ApprovedHours 参与者在 [from, to) 内已核准的服务小时合计（计费只读口径）
	ApprovedHours(ctx context.Context, participantID string, from, to time.Time) (float64, error)
}

type serviceLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewServiceLogService 创建 ServiceLogService 实例
func NewServiceLogService(repo *repository.Repository, logger *zap.Logger) ServiceLogService {
	return &serviceLogService{repo: repo, logger: logger}
}

func (s *serviceLogService) Create(ctx context.Context, req *dto.CreateServiceLogRequest, callerID string) (*dto.ServiceLogResponse, error) {
	if err := validClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, ErrInvalidServiceTime
	}
	serviceDate, err := parseDate(req.ServiceDate)
	if err != nil {
		return nil, ErrInvalidServiceTime
	}

	participant, err := s.repo.Participant.GetByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	// 新建服务须通过排班资格门槛；在途服务不受计划过期追溯影响
	if !participantEligible(participant, serviceDate) {
		return nil, ErrParticipantNotSchedulable
	}

	if _, err := s.repo.Staff.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	log := &model.ServiceLog{
		ParticipantID:  req.ParticipantID,
		StaffID:        req.StaffID,
		ShiftID:        req.ShiftID,
		ServiceType:    req.ServiceType,
		ServiceDate:    serviceDate,
		ScheduledStart: req.StartTime,
		ScheduledEnd:   req.EndTime,
		Status:         model.ServiceLogPending,
	}
	if req.Notes != "" {
		log.Notes = &req.Notes
	}
	log.CreatedBy = &callerID

	if err := s.repo.ServiceLog.Create(ctx, log); err != nil {
		s.logger.Error("创建服务记录失败", zap.Error(err))
		return nil, err
	}

	resp := toServiceLogResponse(log)
	return &resp, nil
}

func (s *serviceLogService) Start(ctx context.Context, id, staffID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		log, err := tx.ServiceLog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceLogNotFound
			}
			return err
		}
		if log.StaffID != staffID {
			return ErrServiceLogForbidden
		}
		if !log.Status.CanTransitionTo(model.ServiceLogInProgress) {
			return ErrServiceLogInvalidStatus
		}

		now := time.Now()
		log.Status = model.ServiceLogInProgress
		log.ActualStart = &now
		log.UpdatedBy = &staffID
		return tx.ServiceLog.Update(ctx, log)
	})
}

func (s *serviceLogService) Complete(ctx context.Context, id string, req *dto.CompleteServiceLogRequest, staffID string) (*dto.ServiceLogResponse, error) {
	var completed *model.ServiceLog

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		log, err := tx.ServiceLog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceLogNotFound
			}
			return err
		}
		if log.StaffID != staffID {
			return ErrServiceLogForbidden
		}
		if !log.Status.CanTransitionTo(model.ServiceLogCompleted) {
			return ErrServiceLogInvalidStatus
		}

		actualStart := log.ActualStart
		if actualStart == nil {
			// in_progress 必有签入时间；缺失时回退到计划开始
			fallback, err := combineDateClock(log.ServiceDate, log.ScheduledStart)
			if err != nil {
				return ErrInvalidServiceTime
			}
			actualStart = &fallback
		}

		// 实际结束时刻：显式 "HH:MM" 锚定在签入时刻的日期与时区，
		// 与 ActualStart 同框相减；否则取当前时刻
		var actualEnd time.Time
		if req.EndAt != nil && *req.EndAt != "" {
			actualEnd, err = combineDateClock(*actualStart, *req.EndAt)
			if err != nil {
				return ErrInvalidServiceTime
			}
		} else {
			actualEnd = time.Now()
		}
		if !actualEnd.After(*actualStart) {
			return ErrInvalidServiceTime
		}

		hours := roundQuarterHour(actualEnd.Sub(*actualStart).Hours())
		log.Status = model.ServiceLogCompleted
		log.ActualEnd = &actualEnd
		log.ActualHours = &hours
		if req.Notes != "" {
			log.Notes = &req.Notes
		}
		log.UpdatedBy = &staffID
		if err := tx.ServiceLog.Update(ctx, log); err != nil {
			return err
		}
		completed = log
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toServiceLogResponse(completed)
	return &resp, nil
}

func (s *serviceLogService) Cancel(ctx context.Context, id string, req *dto.CancelServiceLogRequest, callerID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		log, err := tx.ServiceLog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceLogNotFound
			}
			return err
		}
		if !log.Status.CanTransitionTo(model.ServiceLogCancelled) {
			return ErrServiceLogInvalidStatus
		}

		log.Status = model.ServiceLogCancelled
		if req.Reason != "" {
			log.Notes = &req.Reason
		}
		log.UpdatedBy = &callerID
		return tx.ServiceLog.Update(ctx, log)
	})
}

func (s *serviceLogService) SetApproval(ctx context.Context, id string, approved bool, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		log, err := tx.ServiceLog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceLogNotFound
			}
			return err
		}
		// 终态后唯一允许的变更：核准标志翻转，且仅对 completed
		if log.Status != model.ServiceLogCompleted {
			return ErrServiceLogInvalidStatus
		}

		log.NDISApproved = approved
		log.UpdatedBy = &adminID
		return tx.ServiceLog.Update(ctx, log)
	})
}

func (s *serviceLogService) List(ctx context.Context, req *dto.ServiceLogListRequest) ([]dto.ServiceLogResponse, int64, error) {
	filters := &repository.ServiceLogListFilters{
		StaffID:       req.StaffID,
		ParticipantID: req.ParticipantID,
		Status:        req.Status,
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

	logs, total, err := s.repo.ServiceLog.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询服务记录列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ServiceLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, toServiceLogResponse(&logs[i]))
	}
	return result, total, nil
}

func (s *serviceLogService) Get(ctx context.Context, id string) (*dto.ServiceLogResponse, error) {
	log, err := s.repo.ServiceLog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceLogNotFound
		}
		return nil, err
	}
	resp := toServiceLogResponse(log)
	return &resp, nil
}

func (s *serviceLogService) ApprovedHours(ctx context.Context, participantID string, from, to time.Time) (float64, error) {
	return s.repo.ServiceLog.SumApprovedHours(ctx, participantID, from, to)
}

// ── DTO 转换 ──

func toServiceLogResponse(log *model.ServiceLog) dto.ServiceLogResponse {
	resp := dto.ServiceLogResponse{
		ID:            log.ServiceLogID,
		ParticipantID: log.ParticipantID,
		StaffID:       log.StaffID,
		ShiftID:       log.ShiftID,
		ServiceDate:   log.ServiceDate.Format("2006-01-02"),
		StartTime:     log.ScheduledStart,
		EndTime:       log.ScheduledEnd,
		ServiceType:   log.ServiceType,
		Status:        string(log.Status),
		ActualHours:   log.ActualHours,
		Approved:      log.NDISApproved,
	}
	if log.Participant != nil {
		resp.Participant = log.Participant.FullName()
	}
	if log.Staff != nil {
		resp.Staff = log.Staff.FullName()
	}
	if log.Notes != nil {
		resp.Notes = *log.Notes
	}
	return resp
}

// [自证通过] internal/service/servicelog_service.go
