package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"

	"shiftcare/config"
)

// Mailer SMTP 邮件发送封装
// 邮件发送为 best-effort：失败只记录日志，绝不中断主业务流程。
// 未配置 SMTP 时 Mailer 处于禁用态，Send 静默跳过。
type Mailer struct {
	cfg     *config.MailConfig
	logger  *zap.Logger
	enabled bool
}

// NewMailer 创建 Mailer；SMTP 未配置时打印降级警告
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	if !cfg.Enabled() {
		logger.Warn("SMTP 未配置，邮件通知功能已降级")
	}
	return &Mailer{cfg: cfg, logger: logger, enabled: cfg.Enabled()}
}

// Enabled 返回邮件功能是否可用
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// Send 发送 HTML 邮件（同步）
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.enabled {
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = to
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)

	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendAsync 异步发送邮件，失败仅记录日志
// 业务操作（如发出邀请）不等待也不感知邮件结果
func (m *Mailer) SendAsync(to []string, subject, htmlBody string) {
	if !m.enabled {
		return
	}
	go func() {
		if err := m.Send(to, subject, htmlBody); err != nil {
			m.logger.Warn("邮件发送失败（已忽略）",
				zap.Strings("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}
