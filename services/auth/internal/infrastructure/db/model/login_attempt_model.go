package model

import (
	"time"

	"gorm.io/datatypes"
)

// LoginAttemptModel 로그인 시도 모델
type LoginAttemptModel struct {
	ID                string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID            *string  `gorm:"type:varchar(36);index:idx_login_attempts_user_time,priority:1" json:"user_id,omitempty"`
	Email             string   `gorm:"size:250;index:idx_login_attempts_email_time,priority:1" json:"email"`
	IPAddress         string   `gorm:"size:50;not null;index:idx_login_attempts_ip_time,priority:1" json:"ip_address"`
	UserAgent         string   `gorm:"type:text" json:"user_agent"`
	Country           string   `gorm:"size:2" json:"country,omitempty"`
	Region            string   `gorm:"size:100" json:"region,omitempty"`
	City              string   `gorm:"size:100" json:"city,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	DeviceFingerprint string   `gorm:"size:255" json:"device_fingerprint,omitempty"`
	DeviceType        string   `gorm:"size:20" json:"device_type,omitempty"`
	OperatingSystem   string   `gorm:"size:50" json:"operating_system,omitempty"`
	Browser           string   `gorm:"size:50" json:"browser,omitempty"`
	IsSuccessful      bool     `gorm:"not null;index:idx_login_attempts_ip_time,priority:2" json:"is_successful"`
	FailureReason     string   `gorm:"size:100" json:"failure_reason,omitempty"`

	RiskScore         int                         `gorm:"not null;default:0" json:"risk_score"`
	IsAnomalous       bool                        `gorm:"not null;default:false" json:"is_anomalous"`
	Reasons           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"reasons"`
	RecommendedAction string                      `gorm:"size:20" json:"recommended_action"`

	CreatedAt time.Time `gorm:"not null;index:idx_login_attempts_user_time,priority:2;index:idx_login_attempts_email_time,priority:2;index:idx_login_attempts_ip_time,priority:3" json:"created_at"`
}

// TableName 테이블 이름 지정
func (LoginAttemptModel) TableName() string {
	return "login_attempts"
}

// UserBehaviorBaselineModel 사용자 행동 기준선 모델
type UserBehaviorBaselineModel struct {
	ID           string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string                      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	RecentIPs    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"recent_ips"`
	Locations    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"locations"`
	Devices      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"devices"`
	TypicalHours datatypes.JSONSlice[int]    `gorm:"type:jsonb" json:"typical_hours"`
	TypicalDays  datatypes.JSONSlice[int]    `gorm:"type:jsonb" json:"typical_days"`

	LocationRiskThreshold int `gorm:"not null;default:30" json:"location_risk_threshold"`
	TimeRiskThreshold     int `gorm:"not null;default:15" json:"time_risk_threshold"`
	DeviceRiskThreshold   int `gorm:"not null;default:25" json:"device_risk_threshold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 테이블 이름 지정
func (UserBehaviorBaselineModel) TableName() string {
	return "user_behavior_baselines"
}

// AnomalyRecordModel 이상 징후 기록 모델
type AnomalyRecordModel struct {
	ID             string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string                      `gorm:"type:varchar(36);index:idx_anomalies_user_status,priority:1" json:"user_id"`
	LoginAttemptID string                      `gorm:"type:varchar(36);not null;index" json:"login_attempt_id"`
	Severity       int                         `gorm:"not null" json:"severity"`
	RiskScore      int                         `gorm:"not null" json:"risk_score"`
	AnomalyType    string                      `gorm:"size:20;not null" json:"anomaly_type"`
	Description    string                      `gorm:"type:text" json:"description"`
	Reasons        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"reasons"`
	Status         string                      `gorm:"size:20;not null;default:'pending';index:idx_anomalies_user_status,priority:2" json:"status"`

	ResolvedBy      *string    `gorm:"type:varchar(36)" json:"resolved_by,omitempty"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 테이블 이름 지정
func (AnomalyRecordModel) TableName() string {
	return "anomaly_records"
}
