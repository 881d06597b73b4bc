package dto

import "time"

// SendCodeRequest 인증 코드 발송 요청
type SendCodeRequest struct {
	Email  string `json:"email"`
	Method string `json:"method"`
	IP     string `json:"-"`
}

// SendCodeResponse 인증 코드 발송 응답
type SendCodeResponse struct {
	Success           bool      `json:"success"`
	SessionID         string    `json:"session_id"`
	Message           string    `json:"message"`
	ExpiresAt         time.Time `json:"expires_at"`
	RemainingAttempts int       `json:"remaining_attempts"`
	CanResend         bool      `json:"can_resend"`
	NextResendAt      time.Time `json:"next_resend_at"`
}

// VerifyCodeRequest 인증 코드 검증 요청
type VerifyCodeRequest struct {
	Email             string `json:"email"`
	Code              string `json:"code"`
	SessionID         string `json:"session_id"`
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
	Location          string `json:"location,omitempty"`
	IP                string `json:"-"`
	UserAgent         string `json:"-"`
}

// VerifyCodeResponse 인증 코드 검증 응답
type VerifyCodeResponse struct {
	Success           bool       `json:"success"`
	Message           string     `json:"message"`
	AccessToken       string     `json:"access_token,omitempty"`
	RemainingAttempts int        `json:"remaining_attempts"`
	IsLocked          bool       `json:"is_locked"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
}

// ResendCodeRequest 인증 코드 재발송 요청
type ResendCodeRequest struct {
	SessionID string `json:"session_id"`
}
