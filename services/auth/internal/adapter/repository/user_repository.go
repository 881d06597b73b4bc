package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/adapter/mapper"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 사용자 저장소 구현체 생성
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByID ID로 사용자 조회
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 사용자를 찾지 못함
		}
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}
	return mapper.UserFromModel(&userModel), nil
}

// FindByEmail 이메일로 사용자 조회 (대소문자 무시)
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}
	return mapper.UserFromModel(&userModel), nil
}
