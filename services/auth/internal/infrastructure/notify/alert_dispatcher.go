package notify

import (
	"context"
	"fmt"

	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/messaging"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"go.uber.org/zap"
)

// RedisAlertDispatcher 보안 경고를 Redis 채널로 발행합니다.
// 전체 채널과 사용자별 채널(<channel>:<userID>)에 모두 발행합니다.
type RedisAlertDispatcher struct {
	client  messaging.RedisClient
	channel string
	logger  *zap.Logger
}

// NewAlertDispatcher 경고 발행기 생성
func NewAlertDispatcher(client messaging.RedisClient, channel string, logger *zap.Logger) repository.AlertDispatcher {
	return &RedisAlertDispatcher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// SendAlert 경고 발행
func (d *RedisAlertDispatcher) SendAlert(ctx context.Context, alert *entity.SecurityAlert) error {
	if err := d.client.Publish(ctx, d.channel, alert); err != nil {
		return fmt.Errorf("보안 경고 발행 실패: %w", err)
	}

	if alert.UserID != "" {
		userChannel := d.channel + ":" + alert.UserID
		if err := d.client.Publish(ctx, userChannel, alert); err != nil {
			return fmt.Errorf("사용자 보안 경고 발행 실패: %w", err)
		}
	}

	d.logger.Info("보안 경고 발행",
		zap.String("user_id", alert.UserID),
		zap.String("type", alert.Type),
		zap.String("severity", alert.Severity),
	)
	return nil
}
