package repository

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// AuditLogRepository 감사 로그 저장소 인터페이스
type AuditLogRepository interface {
	// Create 새 감사 로그 생성
	Create(ctx context.Context, log *entity.AuditLog) error

	// ListByUserID 사용자 ID로 감사 로그 목록 조회
	ListByUserID(ctx context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error)
}
