package db

import (
	"fmt"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// AutoMigrate 인증 보안 테이블 스키마를 생성/갱신합니다
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("스키마 마이그레이션 실패: %w", err)
	}
	return nil
}
