package entity

import (
	"time"
)

// 보안 이벤트 유형
const (
	SecurityEventSuspiciousSessions = "suspicious_session_activity"
	SecurityEventLoginAnomaly       = "login_anomaly"
)

// SecurityEvent 보안 모니터링 채널로 발행되는 이벤트
type SecurityEvent struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Type        string                 `json:"type"`
	Severity    string                 `json:"severity"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

// SecurityAlert 사용자 또는 운영자에게 전달되는 경고
type SecurityAlert struct {
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RequiresAction bool      `json:"requires_action"`
	CreatedAt      time.Time `json:"created_at"`
}
