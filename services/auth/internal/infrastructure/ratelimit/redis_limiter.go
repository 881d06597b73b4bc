package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// counterClient 카운터에 필요한 go-redis 명령
type counterClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisRateLimiter 고정 윈도우 Redis 카운터 기반 요청 제한
type RedisRateLimiter struct {
	client counterClient
	window time.Duration
	logger *zap.Logger
}

// NewRedisRateLimiter 요청 제한기 생성. window가 0 이하이면 기본 윈도우를 사용합니다.
func NewRedisRateLimiter(client counterClient, window time.Duration, logger *zap.Logger) repository.RateLimiter {
	if window <= 0 {
		window = constants.RateLimitWindow
	}
	return &RedisRateLimiter{
		client: client,
		window: window,
		logger: logger,
	}
}

// Key 카운터 키 (rate_limit:<action>:<key>)
func Key(key, action string) string {
	return constants.RateLimitPrefix + action + ":" + key
}

// CanAttempt 현재 윈도우의 시도 횟수가 max 미만인지 확인합니다
func (l *RedisRateLimiter) CanAttempt(ctx context.Context, key, action string, max int) (bool, error) {
	value, err := l.client.Get(ctx, Key(key, action)).Result()
	if errors.Is(err, redis.Nil) {
		return max > 0, nil
	}
	if err != nil {
		return false, fmt.Errorf("요청 제한 카운터 조회 실패: %w", err)
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		l.logger.Warn("요청 제한 카운터 값이 올바르지 않습니다",
			zap.String("action", action),
			zap.String("value", value),
		)
		return true, nil
	}
	return count < max, nil
}

// RecordAttempt 시도를 기록합니다. 첫 시도에서 윈도우 만료 시간을 설정합니다.
func (l *RedisRateLimiter) RecordAttempt(ctx context.Context, key, action string, success bool) error {
	redisKey := Key(key, action)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("요청 제한 카운터 증가 실패: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return fmt.Errorf("요청 제한 윈도우 설정 실패: %w", err)
		}
	}

	metrics.TrackRateLimitAttempt(action, success)
	l.logger.Debug("요청 시도 기록",
		zap.String("action", action),
		zap.Int64("count", count),
		zap.Bool("success", success),
	)
	return nil
}
