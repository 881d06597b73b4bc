package entity

import (
	"strings"
	"time"
)

// MFAMethod 인증 코드 전달 수단
type MFAMethod string

const (
	MFAMethodSMS   MFAMethod = "sms"
	MFAMethodEmail MFAMethod = "email"
)

// ParseMFAMethod 문자열을 전달 수단으로 변환합니다
func ParseMFAMethod(s string) (MFAMethod, bool) {
	switch MFAMethod(strings.ToLower(strings.TrimSpace(s))) {
	case MFAMethodSMS:
		return MFAMethodSMS, true
	case MFAMethodEmail:
		return MFAMethodEmail, true
	}
	return "", false
}

// OtpSession 사용자별 활성 인증 코드 세션.
// Used, Blocked, Expired 상태는 되돌릴 수 없습니다.
type OtpSession struct {
	ID           string
	UserID       string
	Email        string
	CodeHash     string
	Method       MFAMethod
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AttemptCount int
	MaxAttempts  int
	IsUsed       bool
	IsBlocked    bool
	UsedAt       *time.Time
}

// IsExpired 만료 여부
func (s *OtpSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsTerminal 더 이상 검증할 수 없는 상태인지 확인
func (s *OtpSession) IsTerminal(now time.Time) bool {
	return s.IsUsed || s.IsBlocked || s.IsExpired(now)
}

// RemainingAttempts 남은 시도 횟수
func (s *OtpSession) RemainingAttempts() int {
	if remaining := s.MaxAttempts - s.AttemptCount; remaining > 0 {
		return remaining
	}
	return 0
}

// RecordFailure 실패한 시도를 기록하고 최대 횟수에 도달하면 차단합니다
func (s *OtpSession) RecordFailure() (locked bool) {
	s.AttemptCount++
	if s.AttemptCount >= s.MaxAttempts {
		s.IsBlocked = true
	}
	return s.IsBlocked
}

// MarkUsed 검증 성공 처리
func (s *OtpSession) MarkUsed(at time.Time) {
	s.AttemptCount++
	s.IsUsed = true
	s.UsedAt = &at
}

// Reissue 새 코드로 세션을 초기화합니다
func (s *OtpSession) Reissue(codeHash string, now time.Time, validity time.Duration) {
	s.CodeHash = codeHash
	s.CreatedAt = now
	s.ExpiresAt = now.Add(validity)
	s.AttemptCount = 0
	s.IsBlocked = false
}
