package appinit

import (
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/config"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/service"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// UseCases 애플리케이션의 모든 유스케이스 컨테이너
type UseCases struct {
	AuditLogUseCase interfaces.AuditLogUseCase
	SessionUseCase  interfaces.SessionUseCase
	AnomalyUseCase  interfaces.AnomalyUseCase
	RiskUseCase     interfaces.RiskUseCase
	MFAUseCase      interfaces.MFAUseCase
}

// Collaborators 외부 채널 / 부가 정보 어댑터.
// GeoResolver와 DeviceParser는 nil일 수 있습니다.
type Collaborators struct {
	AlertDispatcher repository.AlertDispatcher
	EventPublisher  repository.SecurityEventPublisher
	CodeDelivery    repository.CodeDelivery
	GeoResolver     repository.GeoResolver
	DeviceParser    repository.DeviceParser
}

// NewUseCases 모든 유스케이스 인스턴스 생성 및 초기화
func NewUseCases(
	cfg *config.Config,
	repos *repository.Repositories,
	collab Collaborators,
	logger *zap.Logger,
	clock func() time.Time,
) *UseCases {
	useCases := &UseCases{}

	// 1. 감사 로그 (다른 유스케이스가 의존)
	useCases.AuditLogUseCase = usecase.NewAuditLogUseCase(
		logger,
		repos.AuditLog,
	)

	// 2. 로그인 세션
	useCases.SessionUseCase = usecase.NewSessionUseCase(
		logger,
		SessionConfig(cfg),
		repos.UserSession,
		collab.DeviceParser,
		collab.EventPublisher,
		useCases.AuditLogUseCase,
		clock,
	)

	// 3. 이상 징후
	useCases.AnomalyUseCase = usecase.NewAnomalyUseCase(
		logger,
		repos.Anomaly,
		collab.AlertDispatcher,
		useCases.AuditLogUseCase,
		cfg.Anomaly.Operators,
		clock,
	)

	// 4. 로그인 위험 분석
	useCases.RiskUseCase = usecase.NewRiskUseCase(
		logger,
		service.NewRiskScorer(cfg.RiskLocation()),
		repos.Transactional,
		useCases.AnomalyUseCase,
		collab.GeoResolver,
		collab.DeviceParser,
		clock,
	)

	// 5. 인증 코드 (검증 성공 시 세션 생성)
	useCases.MFAUseCase = usecase.NewMFAUseCase(
		logger,
		MFAConfig(cfg),
		repos.User,
		repos.OtpSession,
		repos.RateLimiter,
		collab.CodeDelivery,
		useCases.SessionUseCase,
		useCases.AuditLogUseCase,
		clock,
	)

	return useCases
}

// SessionConfig 설정 파일 값을 세션 유스케이스 설정으로 변환
func SessionConfig(cfg *config.Config) usecase.SessionConfig {
	return usecase.SessionConfig{
		SessionTimeout:           time.Duration(cfg.Session.TimeoutHours) * time.Hour,
		InactivityTimeoutMinutes: cfg.Session.InactivityTimeoutMinutes,
	}
}

// MFAConfig 설정 파일 값을 인증 코드 유스케이스 설정으로 변환
func MFAConfig(cfg *config.Config) usecase.MFAConfig {
	return usecase.MFAConfig{
		CodeValidity:   time.Duration(cfg.MFA.CodeValiditySeconds) * time.Second,
		ResendCooldown: time.Duration(cfg.MFA.ResendCooldownSeconds) * time.Second,
		MaxAttempts:    cfg.MFA.MaxAttempts,
		SendRateLimit:  cfg.MFA.SendRateLimit,
		CodeSecret:     cfg.MFA.CodeSecret,
	}
}
