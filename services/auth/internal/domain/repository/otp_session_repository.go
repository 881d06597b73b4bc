package repository

import (
	"context"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// OtpSessionRepository 인증 코드 세션 저장소 인터페이스
type OtpSessionRepository interface {
	// ReplaceForUser 사용자의 기존 세션을 새 세션으로 원자적으로 교체합니다
	ReplaceForUser(ctx context.Context, session *entity.OtpSession) error

	// FindByID ID로 조회. 없으면 nil, nil
	FindByID(ctx context.Context, id string) (*entity.OtpSession, error)

	// RecordFailure 검증 가능한 세션의 시도 횟수를 원자적으로 늘리고 최대 횟수에 도달하면 차단합니다.
	// 이미 사용, 차단, 만료된 세션이면 nil, nil
	RecordFailure(ctx context.Context, id string, now time.Time) (*entity.OtpSession, error)

	// MarkUsed 검증 가능하고 codeHash가 그대로인 세션만 사용 처리합니다.
	// 다른 요청이 먼저 상태를 바꿨거나 코드가 재발급되었으면 false
	MarkUsed(ctx context.Context, id, codeHash string, at time.Time) (bool, error)

	// Reissue 사용되지 않았고 issuedBefore 이전에 발급된 세션에 새 코드를 기록합니다
	Reissue(ctx context.Context, session *entity.OtpSession, issuedBefore time.Time) (bool, error)

	// DeleteExpired before 이전에 만료된 세션 삭제
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
