package interfaces

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
)

// SessionUseCase 로그인 세션 유스케이스 인터페이스
type SessionUseCase interface {
	// CreateSession 새 세션을 만들고 토큰을 반환합니다
	CreateSession(ctx context.Context, input *dto.CreateSessionInput) (string, error)

	// ValidateSession 토큰 검증. 만료된 세션은 폐기됩니다
	ValidateSession(ctx context.Context, token string) (*entity.UserSession, error)

	// UpdateActivity 마지막 활동 시간 갱신
	UpdateActivity(ctx context.Context, token string) (bool, error)

	// RevokeSession 세션 폐기
	RevokeSession(ctx context.Context, token, reason string) error

	// RevokeAllOtherSessions 현재 세션을 제외한 모든 세션 폐기
	RevokeAllOtherSessions(ctx context.Context, userID, exceptToken string) (int64, error)

	// DetectSuspiciousActivity 활성 세션 분포로 의심 활동 탐지
	DetectSuspiciousActivity(ctx context.Context, userID string) (bool, error)

	// CleanupExpiredSessions 만료된 활성 세션 폐기
	CleanupExpiredSessions(ctx context.Context) (int64, error)

	// ListActiveSessions 사용자의 활성 세션 목록
	ListActiveSessions(ctx context.Context, userID string) ([]*entity.UserSession, error)
}
