package repository

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// UserRepository 사용자 조회 저장소 인터페이스.
// 찾지 못한 경우 nil, nil을 반환합니다.
type UserRepository interface {
	// FindByID ID로 사용자 조회
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail 이메일로 사용자 조회
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
