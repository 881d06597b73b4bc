package worker

import (
	"context"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// OtpCleaner 만료된 인증 세션 정리
type OtpCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// SessionCleaner 만료된 로그인 세션 정리
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// CleanupWorker 주기적으로 만료된 인증 세션과 로그인 세션을 정리합니다
type CleanupWorker struct {
	logger   *zap.Logger
	otp      OtpCleaner
	sessions SessionCleaner
	interval time.Duration
}

// NewCleanupWorker 정리 작업자 생성. interval이 0 이하이면 5분입니다
func NewCleanupWorker(logger *zap.Logger, otp OtpCleaner, sessions SessionCleaner, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CleanupWorker{
		logger:   logger,
		otp:      otp,
		sessions: sessions,
		interval: interval,
	}
}

// Run ctx가 취소될 때까지 정리 작업을 반복합니다
func (w *CleanupWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("정리 작업 시작", zap.Duration("interval", w.interval))

	for {
		w.RunOnce(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("정리 작업 종료")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce 정리 작업을 한 번 실행합니다. 한쪽 실패가 다른 쪽을 막지 않습니다
func (w *CleanupWorker) RunOnce(ctx context.Context) {
	if deleted, err := w.otp.CleanupExpired(ctx); err != nil {
		metrics.TrackError("cleanup_otp_sessions")
		w.logger.Error("만료된 인증 세션 정리 실패", zap.Error(err))
	} else if deleted > 0 {
		w.logger.Info("만료된 인증 세션 정리", zap.Int64("deleted", deleted))
	}

	if revoked, err := w.sessions.CleanupExpiredSessions(ctx); err != nil {
		metrics.TrackError("cleanup_user_sessions")
		w.logger.Error("만료된 로그인 세션 정리 실패", zap.Error(err))
	} else if revoked > 0 {
		w.logger.Info("만료된 로그인 세션 폐기", zap.Int64("revoked", revoked))
	}
}
