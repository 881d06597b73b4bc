package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig SMTP 설정 구조체
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Sender 메시지 전송기. *gomail.Dialer가 구현합니다
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPClient SMTP를 통한 이메일 발송 클라이언트
type SMTPClient struct {
	config SMTPConfig
	sender Sender
	logger *zap.Logger
}

// NewSMTPClient gomail 다이얼러 기반 SMTP 클라이언트 생성
func NewSMTPClient(cfg SMTPConfig, logger *zap.Logger) *SMTPClient {
	return NewSMTPClientWithSender(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), logger)
}

// NewSMTPClientWithSender 전송기를 지정하여 SMTP 클라이언트 생성
func NewSMTPClientWithSender(cfg SMTPConfig, sender Sender, logger *zap.Logger) *SMTPClient {
	return &SMTPClient{
		config: cfg,
		sender: sender,
		logger: logger,
	}
}

// SendMail HTML 이메일 발송
func (m *SMTPClient) SendMail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	if m.config.FromName != "" {
		msg.SetHeader("From", msg.FormatAddress(m.config.From, m.config.FromName))
	} else {
		msg.SetHeader("From", m.config.From)
	}
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		m.logger.Error("이메일 발송 실패",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("이메일 발송 실패: %w", err)
	}

	m.logger.Info("이메일 발송 성공",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
