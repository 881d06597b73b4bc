package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel MFA 코드 발송 대상 사용자 모델. 계정 관리는 다른 서비스가 담당합니다.
type UserModel struct {
	ID                 string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email              string `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Name               string `gorm:"size:100;not null;default:''" json:"name"`
	Phone              string `gorm:"size:30" json:"phone,omitempty"`
	PreferredMFAMethod string `gorm:"size:10;default:'email'" json:"preferred_mfa_method"`
	AccountStatus      string `gorm:"size:50;default:'active'" json:"account_status"`

	// 메타데이터 필드
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 테이블 이름 지정
func (UserModel) TableName() string {
	return "users"
}
