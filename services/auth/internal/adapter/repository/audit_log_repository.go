package repository

import (
	"context"
	"fmt"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/adapter/mapper"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

// NewAuditLogRepository 감사 로그 저장소 구현체 생성
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

// Create 새 감사 로그 생성
func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	auditLogModel := mapper.AuditLogToModel(log)
	if err := r.db.WithContext(ctx).Create(auditLogModel).Error; err != nil {
		return fmt.Errorf("감사 로그 생성 실패: %w", err)
	}

	log.ID = auditLogModel.ID
	log.CreatedAt = auditLogModel.CreatedAt
	return nil
}

// ListByUserID 사용자 ID로 감사 로그 목록 조회
func (r *AuditLogRepositoryImpl) ListByUserID(ctx context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error) {
	var auditLogModels []model.AuditLogModel
	var total int64

	// 전체 개수 카운트
	if err := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("감사 로그 개수 조회 실패: %w", err)
	}

	// 페이징 처리된 데이터 조회
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&auditLogModels).Error; err != nil {
		return nil, 0, fmt.Errorf("감사 로그 목록 조회 실패: %w", err)
	}

	auditLogs := make([]*entity.AuditLog, len(auditLogModels))
	for i := range auditLogModels {
		auditLogs[i] = mapper.AuditLogFromModel(&auditLogModels[i])
	}

	return auditLogs, total, nil
}
