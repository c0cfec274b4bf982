// Package sender 提供通知发送接口的具体实现
package sender

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/wyfcoding/cafekiosk/internal/notification/domain"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
)

// SMTPSender 通过 SMTP 发送邮件通知
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSender 创建 SMTP 发送器
func NewSMTPSender(host, port, username, password, from string) domain.Sender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send 发送邮件
func (s *SMTPSender) Send(ctx context.Context, target string, subject string, content string) error {
	logger.Info(ctx, "Sending email", "target", target, "subject", subject)

	msg := []byte("To: " + target + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		content + "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	// 无凭证时走匿名投递（本地 relay 场景）
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	return smtp.SendMail(addr, auth, s.from, []string{target}, msg)
}
