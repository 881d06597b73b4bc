package entity

import (
	"time"
)

// 세션 폐기 사유
const (
	RevokeReasonExpired       = "Session expired"
	RevokeReasonInactivity    = "Inactivity timeout"
	RevokeReasonLogout        = "User logout"
	RevokeReasonOtherSessions = "Revoked from another session"
)

// DefaultInactivityTimeoutMinutes 기본 비활성 만료 시간 (분)
const DefaultInactivityTimeoutMinutes = 30

// UserSession 로그인 세션. 만료되거나 폐기된 세션은 다시 유효해지지 않습니다.
type UserSession struct {
	ID                       string
	Token                    string
	UserID                   string
	IP                       string
	UserAgent                string
	DeviceFingerprint        string
	DeviceType               string
	Location                 string
	IsTrustedDevice          bool
	CreatedAt                time.Time
	ExpiresAt                time.Time
	LastActivityAt           time.Time
	InactivityTimeoutMinutes int
	IsActive                 bool
	RevokedAt                *time.Time
	RevokedReason            string
}

// InactivityTimeout 비활성 만료 시간
func (s *UserSession) InactivityTimeout() time.Duration {
	minutes := s.InactivityTimeoutMinutes
	if minutes <= 0 {
		minutes = DefaultInactivityTimeoutMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// IsAbsoluteExpired 절대 만료 시간이 지났는지 확인
func (s *UserSession) IsAbsoluteExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsInactive 마지막 활동 이후 비활성 시간이 초과되었는지 확인
func (s *UserSession) IsInactive(now time.Time) bool {
	return now.Sub(s.LastActivityAt) > s.InactivityTimeout()
}

// ExpiryReason 만료 사유. 유효하면 빈 문자열입니다.
func (s *UserSession) ExpiryReason(now time.Time) string {
	switch {
	case s.IsAbsoluteExpired(now):
		return RevokeReasonExpired
	case s.IsInactive(now):
		return RevokeReasonInactivity
	}
	return ""
}

// Revoke 세션을 폐기합니다. 이미 폐기된 경우 false를 반환합니다.
func (s *UserSession) Revoke(reason string, at time.Time) bool {
	if !s.IsActive {
		return false
	}
	s.IsActive = false
	s.RevokedAt = &at
	s.RevokedReason = reason
	return true
}
