package repository

import (
	"context"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// UserSessionRepository 로그인 세션 저장소 인터페이스
type UserSessionRepository interface {
	// Create 새 세션 저장
	Create(ctx context.Context, session *entity.UserSession) error

	// FindByToken 토큰으로 조회. 없으면 nil, nil
	FindByToken(ctx context.Context, token string) (*entity.UserSession, error)

	// TouchActivity 아직 유효한 활성 세션의 마지막 활동 시간만 갱신합니다. 갱신된 행이 없으면 false
	TouchActivity(ctx context.Context, token string, now time.Time) (bool, error)

	// RevokeByToken 활성 세션을 폐기합니다. 이미 폐기된 세션이면 false
	RevokeByToken(ctx context.Context, token, reason string, at time.Time) (bool, error)

	// ListActiveByUser 사용자의 활성 세션 목록
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.UserSession, error)

	// RevokeAllExcept exceptToken을 제외한 사용자의 활성 세션을 모두 폐기
	RevokeAllExcept(ctx context.Context, userID, exceptToken, reason string, at time.Time) (int64, error)

	// RevokeExpired 절대 만료 시간이 지난 활성 세션 폐기
	RevokeExpired(ctx context.Context, now time.Time) (int64, error)

	// RevokeInactive 비활성 시간이 초과된 활성 세션 폐기
	RevokeInactive(ctx context.Context, now time.Time) (int64, error)
}
