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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OtpSessionRepositoryImpl struct {
	db *gorm.DB
}

// NewOtpSessionRepository 인증 세션 저장소 구현체 생성
func NewOtpSessionRepository(db *gorm.DB) repository.OtpSessionRepository {
	return &OtpSessionRepositoryImpl{db: db}
}

// ReplaceForUser user_id 유니크 인덱스에 대한 upsert로 기존 세션을 교체합니다
func (r *OtpSessionRepositoryImpl) ReplaceForUser(ctx context.Context, session *entity.OtpSession) error {
	otpModel := mapper.OtpSessionToModel(session)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"id", "email", "code_hash", "method", "attempt_count", "max_attempts",
			"is_used", "is_blocked", "used_at", "created_at", "expires_at",
		}),
	}).Create(otpModel).Error
	if err != nil {
		return fmt.Errorf("인증 세션 교체 실패: %w", err)
	}
	return nil
}

// FindByID ID로 조회
func (r *OtpSessionRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.OtpSession, error) {
	var otpModel model.OtpSessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&otpModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("인증 세션 조회 실패: %w", err)
	}
	return mapper.OtpSessionFromModel(&otpModel), nil
}

// verifiable 사용, 차단, 만료되지 않은 세션 조건
func verifiable(db *gorm.DB, id string, now time.Time) *gorm.DB {
	return db.Where("id = ? AND is_used = ? AND is_blocked = ? AND expires_at >= ?", id, false, false, now)
}

// RecordFailure 시도 횟수 증가와 차단 판정을 하나의 UPDATE로 처리합니다
func (r *OtpSessionRepositoryImpl) RecordFailure(ctx context.Context, id string, now time.Time) (*entity.OtpSession, error) {
	var rows []model.OtpSessionModel
	result := verifiable(r.db.WithContext(ctx).Model(&rows).Clauses(clause.Returning{}), id, now).
		Updates(map[string]interface{}{
			"attempt_count": gorm.Expr("attempt_count + 1"),
			"is_blocked":    gorm.Expr("attempt_count + 1 >= max_attempts"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("인증 시도 기록 실패: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(rows) == 0 {
		return nil, nil
	}
	return mapper.OtpSessionFromModel(&rows[0]), nil
}

// MarkUsed 검증한 코드가 재발급되지 않은 세션만 사용 처리합니다
func (r *OtpSessionRepositoryImpl) MarkUsed(ctx context.Context, id, codeHash string, at time.Time) (bool, error) {
	result := verifiable(r.db.WithContext(ctx).Model(&model.OtpSessionModel{}), id, at).
		Where("code_hash = ?", codeHash).
		Updates(map[string]interface{}{
			"attempt_count": gorm.Expr("attempt_count + 1"),
			"is_used":       true,
			"used_at":       at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("인증 세션 사용 처리 실패: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Reissue 새 코드와 만료 시간으로 세션을 초기화합니다
func (r *OtpSessionRepositoryImpl) Reissue(ctx context.Context, session *entity.OtpSession, issuedBefore time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.OtpSessionModel{}).
		Where("id = ? AND is_used = ? AND created_at <= ?", session.ID, false, issuedBefore).
		Updates(map[string]interface{}{
			"code_hash":     session.CodeHash,
			"created_at":    session.CreatedAt,
			"expires_at":    session.ExpiresAt,
			"attempt_count": 0,
			"is_blocked":    false,
		})
	if result.Error != nil {
		return false, fmt.Errorf("인증 코드 재발급 실패: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// DeleteExpired before 이전에 만료된 세션 삭제
func (r *OtpSessionRepositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&model.OtpSessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("만료 인증 세션 삭제 실패: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type UserSessionRepositoryImpl struct {
	db *gorm.DB
}

// NewUserSessionRepository 로그인 세션 저장소 구현체 생성
func NewUserSessionRepository(db *gorm.DB) repository.UserSessionRepository {
	return &UserSessionRepositoryImpl{db: db}
}

// Create 새 세션 저장
func (r *UserSessionRepositoryImpl) Create(ctx context.Context, session *entity.UserSession) error {
	if err := r.db.WithContext(ctx).Create(mapper.UserSessionToModel(session)).Error; err != nil {
		return fmt.Errorf("세션 저장 실패: %w", err)
	}
	return nil
}

// FindByToken 토큰으로 조회
func (r *UserSessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.UserSession, error) {
	var sessionModel model.UserSessionModel
	if err := r.db.WithContext(ctx).Where("session_token = ?", token).First(&sessionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("세션 조회 실패: %w", err)
	}
	return mapper.UserSessionFromModel(&sessionModel), nil
}

// TouchActivity 활성 상태이고 절대 만료와 비활성 만료 전인 세션만 갱신합니다
func (r *UserSessionRepositoryImpl) TouchActivity(ctx context.Context, token string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.UserSessionModel{}).
		Where("session_token = ? AND is_active = ?", token, true).
		Where("expires_at >= ?", now).
		Where("last_activity_at + make_interval(mins => inactivity_timeout_minutes) >= ?", now).
		Update("last_activity_at", now)
	if result.Error != nil {
		return false, fmt.Errorf("세션 활동 갱신 실패: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RevokeByToken 토큰의 활성 세션 폐기
func (r *UserSessionRepositoryImpl) RevokeByToken(ctx context.Context, token, reason string, at time.Time) (bool, error) {
	revoked, err := r.revoke(ctx, reason, at, "session_token = ?", token)
	if err != nil {
		return false, err
	}
	return revoked == 1, nil
}

// ListActiveByUser 사용자의 활성 세션 목록 (최근 활동순)
func (r *UserSessionRepositoryImpl) ListActiveByUser(ctx context.Context, userID string) ([]*entity.UserSession, error) {
	var sessionModels []model.UserSessionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity_at DESC").
		Find(&sessionModels).Error; err != nil {
		return nil, fmt.Errorf("활성 세션 조회 실패: %w", err)
	}
	return mapper.UserSessionsFromModels(sessionModels), nil
}

// RevokeAllExcept exceptToken을 제외한 사용자의 활성 세션 폐기
func (r *UserSessionRepositoryImpl) RevokeAllExcept(ctx context.Context, userID, exceptToken, reason string, at time.Time) (int64, error) {
	return r.revoke(ctx, reason, at, "user_id = ? AND session_token <> ?", userID, exceptToken)
}

// RevokeExpired 절대 만료 시간이 지난 활성 세션 폐기
func (r *UserSessionRepositoryImpl) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.revoke(ctx, entity.RevokeReasonExpired, now, "expires_at < ?", now)
}

// RevokeInactive 비활성 시간이 초과된 활성 세션 폐기
func (r *UserSessionRepositoryImpl) RevokeInactive(ctx context.Context, now time.Time) (int64, error) {
	return r.revoke(ctx, entity.RevokeReasonInactivity, now,
		"last_activity_at + make_interval(mins => inactivity_timeout_minutes) < ?", now)
}

func (r *UserSessionRepositoryImpl) revoke(ctx context.Context, reason string, at time.Time, query string, args ...interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.UserSessionModel{}).
		Where("is_active = ?", true).
		Where(query, args...).
		Updates(map[string]interface{}{
			"is_active":      false,
			"revoked_at":     at,
			"revoked_reason": reason,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("세션 폐기 실패: %w", result.Error)
	}
	return result.RowsAffected, nil
}
