package repository

import (
	"context"
)

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	User          UserRepository
	LoginAttempt  LoginAttemptRepository
	Baseline      BaselineRepository
	Anomaly       AnomalyRepository
	OtpSession    OtpSessionRepository
	UserSession   UserSessionRepository
	AuditLog      AuditLogRepository
	RateLimiter   RateLimiter
	Transactional UnitOfWork
}

// UnitOfWork 여러 저장소 쓰기를 하나의 트랜잭션으로 묶습니다.
// fn이 에러를 반환하면 모든 변경이 롤백됩니다.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *TxRepositories) error) error
}

// TxRepositories 트랜잭션에 묶인 저장소
type TxRepositories struct {
	LoginAttempt LoginAttemptRepository
	Baseline     BaselineRepository
	Anomaly      AnomalyRepository
}
