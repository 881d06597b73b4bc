package notify

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/messaging"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"go.uber.org/zap"
)

// eventIDLength 보안 이벤트 id 길이
const eventIDLength = 16

// RedisEventPublisher 보안 이벤트를 모니터링 채널로 발행합니다
type RedisEventPublisher struct {
	client  messaging.RedisClient
	channel string
	logger  *zap.Logger
}

// NewEventPublisher 보안 이벤트 발행기 생성
func NewEventPublisher(client messaging.RedisClient, channel string, logger *zap.Logger) repository.SecurityEventPublisher {
	return &RedisEventPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Publish 이벤트 발행. id가 없으면 nanoid를 부여합니다
func (p *RedisEventPublisher) Publish(ctx context.Context, event *entity.SecurityEvent) error {
	if event.ID == "" {
		id, err := gonanoid.New(eventIDLength)
		if err != nil {
			return fmt.Errorf("이벤트 id 생성 실패: %w", err)
		}
		event.ID = id
	}

	if err := p.client.Publish(ctx, p.channel, event); err != nil {
		return fmt.Errorf("보안 이벤트 발행 실패: %w", err)
	}

	p.logger.Info("보안 이벤트 발행",
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
		zap.String("type", event.Type),
	)
	return nil
}
