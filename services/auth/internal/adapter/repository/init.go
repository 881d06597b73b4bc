package repository

import (
	domainrepo "github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"gorm.io/gorm"
)

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다
func InitRepositories(database *gorm.DB, rateLimiter domainrepo.RateLimiter) *domainrepo.Repositories {
	return &domainrepo.Repositories{
		User:          NewUserRepository(database),
		LoginAttempt:  NewLoginAttemptRepository(database),
		Baseline:      NewBaselineRepository(database),
		Anomaly:       NewAnomalyRepository(database),
		OtpSession:    NewOtpSessionRepository(database),
		UserSession:   NewUserSessionRepository(database),
		AuditLog:      NewAuditLogRepository(database),
		RateLimiter:   rateLimiter,
		Transactional: NewUnitOfWork(database),
	}
}
