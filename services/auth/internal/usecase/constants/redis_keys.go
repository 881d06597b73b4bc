package constants

import "time"

// Redis 키 관련 상수
const (
	// RateLimitPrefix 요청 제한 카운터 키 접두사 (rate_limit:<action>:<key>)
	RateLimitPrefix = "rate_limit:"

	// RateLimitWindow 요청 제한 카운터 유지 시간
	RateLimitWindow = 15 * time.Minute
)

// Redis Pub/Sub 채널
const (
	// SecurityAlertChannel 보안 경고 채널. 사용자별 채널은 뒤에 ":<userID>"
	SecurityAlertChannel = "security:alerts"

	// SecurityEventChannel 보안 이벤트 채널
	SecurityEventChannel = "security:events"

	// SMSNotificationChannel SMS 게이트웨이가 구독하는 채널
	SMSNotificationChannel = "notification:sms"
)

// 요청 제한 액션
const (
	ActionMFASend   = "mfa_send"
	ActionMFAVerify = "mfa_verify"
)

// MFA 기본값
const (
	CodeDigits            = 6
	DefaultCodeValidity   = 10 * time.Minute
	DefaultMaxAttempts    = 3
	DefaultResendCooldown = 2 * time.Minute
	DefaultSendRateLimit  = 5
)

// 세션 기본값
const (
	DefaultSessionTimeout = 8 * time.Hour

	// 의심 활동 판정 기준
	SuspiciousLocationCount = 3
	SuspiciousDeviceCount   = 5
	SuspiciousRecentIPCount = 3
	SuspiciousRecentWindow  = time.Hour
)
