package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/messaging"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/mail"
	"go.uber.org/zap"
)

// Mailer 이메일 발송기
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// SMSMessage SMS 게이트웨이로 전달되는 메시지
type SMSMessage struct {
	UserID string    `json:"user_id"`
	Phone  string    `json:"phone"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// CodeDeliveryConfig 코드 전달 설정
type CodeDeliveryConfig struct {
	SMSChannel   string
	CodeValidity time.Duration
	ServiceName  string
}

// MultiChannelDelivery 전달 수단에 따라 이메일 또는 SMS로 인증 코드를 보냅니다
type MultiChannelDelivery struct {
	config    CodeDeliveryConfig
	mailer    Mailer
	templates *mail.EmailTemplateService
	sms       messaging.RedisClient
	logger    *zap.Logger
	clock     func() time.Time
}

// NewCodeDelivery 인증 코드 전달기 생성
func NewCodeDelivery(
	config CodeDeliveryConfig,
	mailer Mailer,
	templates *mail.EmailTemplateService,
	sms messaging.RedisClient,
	logger *zap.Logger,
	clock func() time.Time,
) repository.CodeDelivery {
	if clock == nil {
		clock = time.Now
	}
	return &MultiChannelDelivery{
		config:    config,
		mailer:    mailer,
		templates: templates,
		sms:       sms,
		logger:    logger,
		clock:     clock,
	}
}

// Send 인증 코드 전달
func (d *MultiChannelDelivery) Send(ctx context.Context, user *entity.User, code string, method entity.MFAMethod) error {
	switch method {
	case entity.MFAMethodEmail:
		return d.sendEmail(ctx, user, code)
	case entity.MFAMethodSMS:
		return d.sendSMS(ctx, user, code)
	default:
		return fmt.Errorf("지원하지 않는 전달 수단: %s", method)
	}
}

func (d *MultiChannelDelivery) sendEmail(ctx context.Context, user *entity.User, code string) error {
	body := d.templates.GenerateMFACodeEmailHTML(user.DisplayName(), code, d.config.CodeValidity, d.clock())
	return d.mailer.SendMail(ctx, user.Email, d.templates.MFACodeSubject(), body)
}

func (d *MultiChannelDelivery) sendSMS(ctx context.Context, user *entity.User, code string) error {
	if user.Phone == "" {
		return errors.New("등록된 휴대폰 번호가 없습니다")
	}

	msg := SMSMessage{
		UserID: user.ID,
		Phone:  user.Phone,
		Text: fmt.Sprintf("[%s] 인증 코드 %s (%d분 내 입력)",
			d.config.ServiceName, code, int(d.config.CodeValidity.Minutes())),
		SentAt: d.clock(),
	}
	if err := d.sms.Publish(ctx, d.config.SMSChannel, msg); err != nil {
		return fmt.Errorf("SMS 발행 실패: %w", err)
	}

	d.logger.Info("SMS 인증 코드 발행", zap.String("user_id", user.ID))
	return nil
}
