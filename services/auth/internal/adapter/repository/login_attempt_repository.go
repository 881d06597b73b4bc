package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/adapter/mapper"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LoginAttemptRepositoryImpl struct {
	db *gorm.DB
}

// NewLoginAttemptRepository 로그인 시도 저장소 구현체 생성
func NewLoginAttemptRepository(db *gorm.DB) repository.LoginAttemptRepository {
	return &LoginAttemptRepositoryImpl{db: db}
}

// Create 로그인 시도 저장
func (r *LoginAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.LoginAttempt) error {
	if err := r.db.WithContext(ctx).Create(mapper.LoginAttemptToModel(attempt)).Error; err != nil {
		return fmt.Errorf("로그인 시도 저장 실패: %w", err)
	}
	return nil
}

// UpdateAssessment 위험 평가 결과 기록
func (r *LoginAttemptRepositoryImpl) UpdateAssessment(ctx context.Context, attempt *entity.LoginAttempt) error {
	reasons := attempt.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	result := r.db.WithContext(ctx).Model(&model.LoginAttemptModel{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]interface{}{
			"risk_score":         attempt.RiskScore,
			"is_anomalous":       attempt.IsAnomalous,
			"reasons":            datatypes.JSONSlice[string](reasons),
			"recommended_action": string(attempt.RecommendedAction),
		})
	if result.Error != nil {
		return fmt.Errorf("위험 평가 저장 실패: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("위험 평가 저장 실패: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// CountByUserSince 사용자의 since 이후 시도 횟수
func (r *LoginAttemptRepositoryImpl) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return r.count(ctx, "user_id = ? AND created_at >= ?", userID, since)
}

// CountByEmailSince 이메일 기준 since 이후 시도 횟수
func (r *LoginAttemptRepositoryImpl) CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error) {
	return r.count(ctx, "email = ? AND created_at >= ?", email, since)
}

// CountFailedByIPSince 같은 IP의 since 이후 실패 횟수
func (r *LoginAttemptRepositoryImpl) CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	return r.count(ctx, "ip_address = ? AND is_successful = ? AND created_at >= ?", ip, false, since)
}

func (r *LoginAttemptRepositoryImpl) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.LoginAttemptModel{}).Where(query, args...).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("로그인 시도 집계 실패: %w", err)
	}
	return total, nil
}

type BaselineRepositoryImpl struct {
	db *gorm.DB
}

// NewBaselineRepository 기준선 저장소 구현체 생성
func NewBaselineRepository(db *gorm.DB) repository.BaselineRepository {
	return &BaselineRepositoryImpl{db: db}
}

// FindByUserID 사용자 기준선 조회
func (r *BaselineRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*entity.UserBehaviorBaseline, error) {
	var baselineModel model.UserBehaviorBaselineModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&baselineModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("기준선 조회 실패: %w", err)
	}
	return mapper.BaselineFromModel(&baselineModel), nil
}

// Save 기준선 생성 또는 전체 덮어쓰기
func (r *BaselineRepositoryImpl) Save(ctx context.Context, baseline *entity.UserBehaviorBaseline) error {
	if err := r.db.WithContext(ctx).Save(mapper.BaselineToModel(baseline)).Error; err != nil {
		return fmt.Errorf("기준선 저장 실패: %w", err)
	}
	return nil
}

type AnomalyRepositoryImpl struct {
	db *gorm.DB
}

// NewAnomalyRepository 이상 징후 저장소 구현체 생성
func NewAnomalyRepository(db *gorm.DB) repository.AnomalyRepository {
	return &AnomalyRepositoryImpl{db: db}
}

// Create 이상 징후 기록 생성
func (r *AnomalyRepositoryImpl) Create(ctx context.Context, record *entity.AnomalyRecord) error {
	if err := r.db.WithContext(ctx).Create(mapper.AnomalyToModel(record)).Error; err != nil {
		return fmt.Errorf("이상 징후 저장 실패: %w", err)
	}
	return nil
}

// FindByID ID로 조회
func (r *AnomalyRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.AnomalyRecord, error) {
	var anomalyModel model.AnomalyRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&anomalyModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("이상 징후 조회 실패: %w", err)
	}
	return mapper.AnomalyFromModel(&anomalyModel), nil
}

// Update 처리 상태 갱신
func (r *AnomalyRepositoryImpl) Update(ctx context.Context, record *entity.AnomalyRecord) error {
	if err := r.db.WithContext(ctx).Save(mapper.AnomalyToModel(record)).Error; err != nil {
		return fmt.Errorf("이상 징후 갱신 실패: %w", err)
	}
	return nil
}

// ListByUser 사용자 이상 징후 목록 (최신순)
func (r *AnomalyRepositoryImpl) ListByUser(ctx context.Context, userID string, status entity.AnomalyStatus, limit int) ([]*entity.AnomalyRecord, error) {
	var anomalyModels []model.AnomalyRecordModel

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Order("created_at DESC").Limit(limit).Find(&anomalyModels).Error; err != nil {
		return nil, fmt.Errorf("이상 징후 목록 조회 실패: %w", err)
	}
	return mapper.AnomaliesFromModels(anomalyModels), nil
}
