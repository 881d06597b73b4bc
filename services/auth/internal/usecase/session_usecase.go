package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/constants"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// SessionConfig 세션 관련 설정
type SessionConfig struct {
	SessionTimeout           time.Duration // 절대 만료 시간
	InactivityTimeoutMinutes int           // 기본 비활성 만료 시간 (분)
}

// SessionUseCase 로그인 세션 유스케이스 구현체
type SessionUseCase struct {
	logger            *zap.Logger
	config            SessionConfig
	sessionRepository repository.UserSessionRepository
	deviceParser      repository.DeviceParser
	eventPublisher    repository.SecurityEventPublisher
	auditLogUseCase   interfaces.AuditLogUseCase
	now               func() time.Time
}

// NewSessionUseCase 새 세션 유스케이스 생성
func NewSessionUseCase(
	logger *zap.Logger,
	config SessionConfig,
	sessionRepo repository.UserSessionRepository,
	deviceParser repository.DeviceParser,
	eventPublisher repository.SecurityEventPublisher,
	auditLogUseCase interfaces.AuditLogUseCase,
	clock func() time.Time,
) interfaces.SessionUseCase {
	if config.SessionTimeout <= 0 {
		config.SessionTimeout = constants.DefaultSessionTimeout
	}
	if config.InactivityTimeoutMinutes <= 0 {
		config.InactivityTimeoutMinutes = entity.DefaultInactivityTimeoutMinutes
	}
	return &SessionUseCase{
		logger:            logger,
		config:            config,
		sessionRepository: sessionRepo,
		deviceParser:      deviceParser,
		eventPublisher:    eventPublisher,
		auditLogUseCase:   auditLogUseCase,
		now:               clockOrNow(clock),
	}
}

// CreateSession 새 세션 생성
func (uc *SessionUseCase) CreateSession(ctx context.Context, input *dto.CreateSessionInput) (string, error) {
	if input == nil || input.UserID == "" {
		return "", apperrors.NewAppError(apperrors.ErrInvalidArgument, "사용자 ID가 필요합니다", nil)
	}

	now := uc.now()
	token, err := GenerateSessionToken(now)
	if err != nil {
		return "", err
	}

	timeout := input.InactivityTimeoutMinutes
	if timeout <= 0 {
		timeout = uc.config.InactivityTimeoutMinutes
	}

	session := &entity.UserSession{
		ID:                       uuid.NewString(),
		Token:                    token,
		UserID:                   input.UserID,
		IP:                       input.IP,
		UserAgent:                input.UserAgent,
		DeviceFingerprint:        input.DeviceFingerprint,
		Location:                 input.Location,
		IsTrustedDevice:          input.IsTrustedDevice,
		CreatedAt:                now,
		ExpiresAt:                now.Add(uc.config.SessionTimeout),
		LastActivityAt:           now,
		InactivityTimeoutMinutes: timeout,
		IsActive:                 true,
	}
	if uc.deviceParser != nil && input.UserAgent != "" {
		session.DeviceType = uc.deviceParser.Parse(input.UserAgent).Type
	}

	if err := uc.sessionRepository.Create(ctx, session); err != nil {
		uc.logger.Error("세션 생성 실패", zap.String("user_id", input.UserID), zap.Error(err))
		return "", err
	}

	metrics.TrackSessionCreated()
	uc.auditLogUseCase.AddLog(ctx, session.UserID, entity.AuditLogTypeSessionCreated, map[string]interface{}{
		"session_id":  session.ID,
		"ip":          session.IP,
		"device_type": session.DeviceType,
	})

	uc.logger.Info("세션 생성",
		zap.String("user_id", session.UserID),
		zap.String("session_id", session.ID),
		zap.String("ip", session.IP),
	)

	return token, nil
}

// ValidateSession 토큰으로 활성 세션을 조회합니다. 만료된 세션은 이 시점에 폐기됩니다.
func (uc *SessionUseCase) ValidateSession(ctx context.Context, token string) (*entity.UserSession, error) {
	session, err := uc.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, entity.ErrSessionNotFound
	}
	if !session.IsActive {
		return nil, entity.ErrSessionRevoked
	}

	now := uc.now()
	reason := session.ExpiryReason(now)
	if reason == "" {
		return session, nil
	}

	revoked, err := uc.sessionRepository.RevokeByToken(ctx, token, reason, now)
	if err != nil {
		uc.logger.Error("만료 세션 폐기 실패", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	if revoked {
		metrics.TrackSessionsRevoked(reason, 1)
	}

	if reason == entity.RevokeReasonInactivity {
		return nil, entity.ErrSessionInactive
	}
	return nil, entity.ErrSessionExpired
}

// UpdateActivity 활성 세션의 마지막 활동 시간을 갱신합니다.
// 폐기되었거나 만료된 세션은 갱신하지 않고 false를 반환합니다.
func (uc *SessionUseCase) UpdateActivity(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	updated, err := uc.sessionRepository.TouchActivity(ctx, token, uc.now())
	if err != nil {
		uc.logger.Error("세션 활동 갱신 실패", zap.Error(err))
		return false, err
	}
	return updated, nil
}

// RevokeSession 세션 폐기. 없거나 이미 폐기된 세션은 무시합니다
func (uc *SessionUseCase) RevokeSession(ctx context.Context, token, reason string) error {
	session, err := uc.findByToken(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if reason == "" {
		reason = entity.RevokeReasonLogout
	}
	revoked, err := uc.sessionRepository.RevokeByToken(ctx, token, reason, uc.now())
	if err != nil {
		uc.logger.Error("세션 폐기 실패", zap.String("session_id", session.ID), zap.Error(err))
		return err
	}
	if !revoked {
		return nil
	}

	metrics.TrackSessionsRevoked(reason, 1)
	uc.auditLogUseCase.AddLog(ctx, session.UserID, entity.AuditLogTypeSessionRevoked, map[string]interface{}{
		"session_id": session.ID,
		"reason":     reason,
	})
	return nil
}

// RevokeAllOtherSessions exceptToken을 제외한 사용자의 활성 세션 폐기
func (uc *SessionUseCase) RevokeAllOtherSessions(ctx context.Context, userID, exceptToken string) (int64, error) {
	revoked, err := uc.sessionRepository.RevokeAllExcept(ctx, userID, exceptToken, entity.RevokeReasonOtherSessions, uc.now())
	if err != nil {
		uc.logger.Error("다른 세션 폐기 실패", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}

	metrics.TrackSessionsRevoked(entity.RevokeReasonOtherSessions, revoked)
	uc.auditLogUseCase.AddLog(ctx, userID, entity.AuditLogTypeOtherSessionsEnded, map[string]interface{}{
		"revoked": revoked,
	})

	uc.logger.Info("다른 세션 폐기", zap.String("user_id", userID), zap.Int64("count", revoked))
	return revoked, nil
}

// DetectSuspiciousActivity 활성 세션의 위치, 기기, 최근 IP 분포를 검사합니다.
// 의심 활동이면 보안 이벤트를 발행하지만 세션을 폐기하지는 않습니다.
func (uc *SessionUseCase) DetectSuspiciousActivity(ctx context.Context, userID string) (bool, error) {
	sessions, err := uc.ListActiveSessions(ctx, userID)
	if err != nil {
		return false, err
	}

	now := uc.now()
	recentSince := now.Add(-constants.SuspiciousRecentWindow)
	locations := make(map[string]struct{})
	devices := make(map[string]struct{})
	recentIPs := make(map[string]struct{})

	for _, s := range sessions {
		if s.Location != "" {
			locations[s.Location] = struct{}{}
		}
		if s.DeviceFingerprint != "" {
			devices[s.DeviceFingerprint] = struct{}{}
		}
		if s.IP != "" && !s.CreatedAt.Before(recentSince) {
			recentIPs[s.IP] = struct{}{}
		}
	}

	suspicious := len(locations) > constants.SuspiciousLocationCount ||
		len(devices) > constants.SuspiciousDeviceCount ||
		len(recentIPs) > constants.SuspiciousRecentIPCount
	if !suspicious {
		return false, nil
	}

	metadata := map[string]interface{}{
		"active_sessions":    len(sessions),
		"distinct_locations": len(locations),
		"distinct_devices":   len(devices),
		"recent_ips":         len(recentIPs),
	}

	event := &entity.SecurityEvent{
		UserID:      userID,
		Type:        entity.SecurityEventSuspiciousSessions,
		Severity:    entity.SeverityHigh.String(),
		Description: "여러 위치 또는 기기에서 동시에 활성화된 세션이 감지되었습니다",
		Metadata:    metadata,
		OccurredAt:  now,
	}
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("보안 이벤트 발행 실패", zap.String("user_id", userID), zap.Error(err))
	}

	uc.auditLogUseCase.AddLog(ctx, userID, entity.AuditLogTypeSuspiciousActivity, metadata)
	uc.logger.Warn("의심스러운 세션 활동 감지",
		zap.String("user_id", userID),
		zap.Int("locations", len(locations)),
		zap.Int("devices", len(devices)),
		zap.Int("recent_ips", len(recentIPs)),
	)
	return true, nil
}

// CleanupExpiredSessions 절대 만료 또는 비활성 만료된 활성 세션을 폐기합니다
func (uc *SessionUseCase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	now := uc.now()

	expired, err := uc.sessionRepository.RevokeExpired(ctx, now)
	if err != nil {
		uc.logger.Error("만료 세션 정리 실패", zap.Error(err))
		return 0, err
	}

	inactive, err := uc.sessionRepository.RevokeInactive(ctx, now)
	if err != nil {
		uc.logger.Error("비활성 세션 정리 실패", zap.Error(err))
		return expired, err
	}

	metrics.TrackSessionsRevoked(entity.RevokeReasonExpired, expired)
	metrics.TrackSessionsRevoked(entity.RevokeReasonInactivity, inactive)

	total := expired + inactive
	if total > 0 {
		uc.logger.Info("만료 세션 정리",
			zap.Int64("expired", expired),
			zap.Int64("inactive", inactive),
		)
	}
	return total, nil
}

// ListActiveSessions 사용자의 유효한 활성 세션 목록
func (uc *SessionUseCase) ListActiveSessions(ctx context.Context, userID string) ([]*entity.UserSession, error) {
	sessions, err := uc.sessionRepository.ListActiveByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("활성 세션 조회 실패", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := uc.now()
	active := make([]*entity.UserSession, 0, len(sessions))
	for _, s := range sessions {
		if s.ExpiryReason(now) == "" {
			active = append(active, s)
		}
	}
	return active, nil
}

func (uc *SessionUseCase) findByToken(ctx context.Context, token string) (*entity.UserSession, error) {
	if token == "" {
		return nil, nil
	}
	session, err := uc.sessionRepository.FindByToken(ctx, token)
	if err != nil {
		uc.logger.Error("세션 조회 실패", zap.Error(err))
		return nil, err
	}
	return session, nil
}
