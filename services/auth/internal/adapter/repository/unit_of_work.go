package repository

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"gorm.io/gorm"
)

type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork gorm 트랜잭션 기반 UnitOfWork 생성
func NewUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTransaction fn이 에러를 반환하면 롤백합니다
func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *repository.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &repository.TxRepositories{
			LoginAttempt: NewLoginAttemptRepository(tx),
			Baseline:     NewBaselineRepository(tx),
			Anomaly:      NewAnomalyRepository(tx),
		})
	})
}
