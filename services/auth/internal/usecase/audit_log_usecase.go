package usecase

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// AuditLogUseCase 감사 로그 유스케이스 구현체
type AuditLogUseCase struct {
	logger          *zap.Logger
	auditRepository repository.AuditLogRepository
}

// NewAuditLogUseCase 새 감사 로그 유스케이스 생성
func NewAuditLogUseCase(
	logger *zap.Logger,
	auditRepo repository.AuditLogRepository,
) interfaces.AuditLogUseCase {
	return &AuditLogUseCase{
		logger:          logger,
		auditRepository: auditRepo,
	}
}

// AddLog 감사 로그 추가
func (uc *AuditLogUseCase) AddLog(ctx context.Context, userID string, logType entity.AuditLogType, content map[string]interface{}) {
	auditLog := entity.NewAuditLog(userID, logType, content)

	if err := uc.auditRepository.Create(ctx, auditLog); err != nil {
		uc.logger.Warn("감사 로그 저장 실패",
			zap.String("user_id", userID),
			zap.String("type", string(logType)),
			zap.Error(err),
		)
	}
}

// GetUserLogs 특정 사용자의 감사 로그 조회
func (uc *AuditLogUseCase) GetUserLogs(ctx context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, total, err := uc.auditRepository.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		uc.logger.Error("사용자 감사 로그 조회 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	return logs, total, nil
}
