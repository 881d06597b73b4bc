package dto

import (
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// CreateSessionInput 세션 생성 입력
type CreateSessionInput struct {
	UserID                   string
	IP                       string
	UserAgent                string
	DeviceFingerprint        string
	Location                 string
	InactivityTimeoutMinutes int
	IsTrustedDevice          bool
}

// SessionView 세션 목록 응답. 토큰은 포함하지 않습니다.
type SessionView struct {
	ID             string    `json:"id"`
	IP             string    `json:"ip"`
	DeviceType     string    `json:"device_type"`
	Location       string    `json:"location,omitempty"`
	IsTrusted      bool      `json:"is_trusted"`
	IsCurrent      bool      `json:"is_current"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// NewSessionView 엔티티를 응답으로 변환
func NewSessionView(s *entity.UserSession, currentToken string) *SessionView {
	return &SessionView{
		ID:             s.ID,
		IP:             s.IP,
		DeviceType:     s.DeviceType,
		Location:       s.Location,
		IsTrusted:      s.IsTrustedDevice,
		IsCurrent:      s.Token == currentToken,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		ExpiresAt:      s.ExpiresAt,
	}
}

// RevokeOthersResponse 다른 세션 종료 응답
type RevokeOthersResponse struct {
	Revoked int64 `json:"revoked"`
}

// SuspiciousActivityResponse 의심 활동 조회 응답
type SuspiciousActivityResponse struct {
	Suspicious bool `json:"suspicious"`
}
