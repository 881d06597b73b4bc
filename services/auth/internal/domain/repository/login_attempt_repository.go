package repository

import (
	"context"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// LoginAttemptRepository 로그인 시도 저장소 인터페이스
type LoginAttemptRepository interface {
	// Create 로그인 시도 저장
	Create(ctx context.Context, attempt *entity.LoginAttempt) error

	// UpdateAssessment 위험 점수, 사유, 권장 대응 기록
	UpdateAssessment(ctx context.Context, attempt *entity.LoginAttempt) error

	// CountByUserSince 사용자의 since 이후 시도 횟수
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)

	// CountByEmailSince 사용자 ID가 없는 시도를 위한 이메일 기준 시도 횟수
	CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error)

	// CountFailedByIPSince 같은 IP의 since 이후 실패 횟수
	CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)
}

// BaselineRepository 행동 기준선 저장소 인터페이스
type BaselineRepository interface {
	// FindByUserID 사용자 기준선 조회. 없으면 nil, nil
	FindByUserID(ctx context.Context, userID string) (*entity.UserBehaviorBaseline, error)

	// Save 기준선 생성 또는 덮어쓰기 (마지막 쓰기 우선)
	Save(ctx context.Context, baseline *entity.UserBehaviorBaseline) error
}

// AnomalyRepository 이상 징후 저장소 인터페이스
type AnomalyRepository interface {
	// Create 이상 징후 기록 생성
	Create(ctx context.Context, record *entity.AnomalyRecord) error

	// FindByID ID로 조회. 없으면 nil, nil
	FindByID(ctx context.Context, id string) (*entity.AnomalyRecord, error)

	// Update 처리 상태 갱신
	Update(ctx context.Context, record *entity.AnomalyRecord) error

	// ListByUser 사용자 이상 징후 목록 (status가 빈 값이면 전체)
	ListByUser(ctx context.Context, userID string, status entity.AnomalyStatus, limit int) ([]*entity.AnomalyRecord, error)
}
