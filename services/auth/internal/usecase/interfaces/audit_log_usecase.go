package interfaces

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// AuditLogUseCase 감사 로그 유스케이스 인터페이스
type AuditLogUseCase interface {
	// AddLog 감사 로그 추가. 실패해도 호출자에게 에러를 반환하지 않습니다
	AddLog(ctx context.Context, userID string, logType entity.AuditLogType, content map[string]interface{})

	// GetUserLogs 사용자 감사 로그 조회
	GetUserLogs(ctx context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error)
}
