package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel 감사 로그 데이터베이스 모델
type AuditLogModel struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string           `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Type      string            `gorm:"size:50;not null;index" json:"type"`
	Content   datatypes.JSONMap `gorm:"type:jsonb" json:"content"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 테이블 이름 지정
func (AuditLogModel) TableName() string {
	return "audit_logs"
}
