package model

import (
	"time"
)

// OtpSessionModel 인증 코드 세션 모델. 사용자당 한 행만 존재합니다.
type OtpSessionModel struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Email        string     `gorm:"size:250;not null" json:"email"`
	CodeHash     string     `gorm:"size:64;not null" json:"-"`
	Method       string     `gorm:"size:10;not null" json:"method"`
	AttemptCount int        `gorm:"not null;default:0" json:"attempt_count"`
	MaxAttempts  int        `gorm:"not null;default:3" json:"max_attempts"`
	IsUsed       bool       `gorm:"not null;default:false" json:"is_used"`
	IsBlocked    bool       `gorm:"not null;default:false" json:"is_blocked"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `gorm:"not null;index" json:"expires_at"`
}

// TableName 테이블 이름 지정
func (OtpSessionModel) TableName() string {
	return "otp_sessions"
}

// UserSessionModel 로그인 세션 모델
type UserSessionModel struct {
	ID                       string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	SessionToken             string     `gorm:"size:128;not null;uniqueIndex" json:"-"`
	UserID                   string     `gorm:"type:varchar(36);not null;index:idx_user_sessions_user_active,priority:1" json:"user_id"`
	IPAddress                string     `gorm:"size:50" json:"ip_address"`
	UserAgent                string     `gorm:"type:text" json:"user_agent"`
	DeviceFingerprint        string     `gorm:"size:255" json:"device_fingerprint,omitempty"`
	DeviceType               string     `gorm:"size:20" json:"device_type,omitempty"`
	Location                 string     `gorm:"size:200" json:"location,omitempty"`
	IsTrustedDevice          bool       `gorm:"not null;default:false" json:"is_trusted_device"`
	IsActive                 bool       `gorm:"not null;default:true;index:idx_user_sessions_user_active,priority:2" json:"is_active"`
	InactivityTimeoutMinutes int        `gorm:"not null;default:30" json:"inactivity_timeout_minutes"`
	LastActivityAt           time.Time  `gorm:"not null" json:"last_activity_at"`
	ExpiresAt                time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt                *time.Time `json:"revoked_at,omitempty"`
	RevokedReason            string     `gorm:"size:100" json:"revoked_reason,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// TableName 테이블 이름 지정
func (UserSessionModel) TableName() string {
	return "user_sessions"
}
