package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/config"
	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/jwt"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrTooManyAttempts    = errors.New("登录尝试过于频繁，请稍后再试")
	ErrAccountNotFound    = errors.New("账号不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh 用 Refresh Token 换发新 Token 对，旧 Refresh Token 立即失效
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error
	Me(ctx context.Context, accountID string) (*dto.AccountResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	cache  *redis.Client // 可为 nil（测试），降级为不限流、不拉黑
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		cache:  cache,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 登录限流（按邮箱，1 分钟窗口）
	if s.cache != nil && s.cfg.Auth.LoginRateLimitPerMin > 0 {
		attempts, err := s.cache.IncrLoginAttempt(ctx, req.Email)
		if err != nil {
			s.logger.Warn("登录限流计数失败", zap.Error(err))
		} else if attempts > int64(s.cfg.Auth.LoginRateLimitPerMin) {
			return nil, ErrTooManyAttempts
		}
	}

	// 2. 查询账号
	account, err := s.repo.Account.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	// 3. 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account.AccountID, account.Email, account.DisplayName, account.Role, account.MustChangePassword)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}
	if s.cache != nil && s.cache.IsTokenBlacklisted(ctx, claims.ID) {
		return nil, jwt.ErrTokenInvalid
	}

	account, err := s.repo.Account.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	// 旧 Refresh Token 一次性使用
	if s.cache != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("拉黑旧 Refresh Token 失败", zap.Error(err))
		}
	}

	return s.issueTokens(ctx, account.AccountID, account.Email, account.DisplayName, account.Role, account.MustChangePassword)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.cache == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.cache.BlacklistToken(ctx, claims.ID, ttl)
}

func (s *authService) ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hash)
	account.MustChangePassword = false
	account.UpdatedBy = &accountID
	return s.repo.Account.Update(ctx, account)
}

func (s *authService) Me(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	resp := &dto.AccountResponse{
		ID:                 account.AccountID,
		Email:              account.Email,
		DisplayName:        account.DisplayName,
		Role:               account.Role,
		MustChangePassword: account.MustChangePassword,
	}
	if staffID := s.lookupStaffID(ctx, account.AccountID); staffID != "" {
		resp.StaffID = staffID
	}
	return resp, nil
}

// issueTokens 生成 Token 对并构造登录响应
func (s *authService) issueTokens(ctx context.Context, accountID, email, displayName, role string, mustChange bool) (*dto.TokenResponse, error) {
	staffID := s.lookupStaffID(ctx, accountID)

	accessToken, err := s.jwtMgr.GenerateAccessToken(accountID, staffID, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(accountID, staffID, role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Account: dto.AccountResponse{
			ID:                 accountID,
			Email:              email,
			DisplayName:        displayName,
			Role:               role,
			StaffID:            staffID,
			MustChangePassword: mustChange,
		},
	}, nil
}

// lookupStaffID 账号关联的员工档案 ID（管理员账号无档案时为空）
func (s *authService) lookupStaffID(ctx context.Context, accountID string) string {
	staff, err := s.repo.Staff.GetByAccountID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询员工档案失败", zap.Error(err))
		}
		return ""
	}
	return staff.StaffID
}

// [自证通过] internal/service/auth_service.go
