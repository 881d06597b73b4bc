package interfaces

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
)

// RiskUseCase 로그인 위험 분석 유스케이스 인터페이스
type RiskUseCase interface {
	// AnalyzeLogin 로그인 시도를 평가하고 기록합니다
	AnalyzeLogin(ctx context.Context, data *dto.LoginAttemptData) (*dto.RiskAssessmentResult, error)
}

// AnomalyUseCase 이상 징후 기록 유스케이스 인터페이스
type AnomalyUseCase interface {
	// Record 트랜잭션 안에서 이상 징후를 저장합니다
	Record(ctx context.Context, tx *repository.TxRepositories, attempt *entity.LoginAttempt, assessment *entity.RiskAssessment) (*entity.AnomalyRecord, error)

	// Alert 심각도가 높은 이상 징후를 알립니다. 실패는 로그만 남깁니다.
	Alert(ctx context.Context, record *entity.AnomalyRecord)

	// Resolve 운영자 처리
	Resolve(ctx context.Context, anomalyID, resolverID, notes string) (*entity.AnomalyRecord, error)

	// ListPending 사용자의 미처리 이상 징후
	ListPending(ctx context.Context, userID string) ([]*entity.AnomalyRecord, error)
}
