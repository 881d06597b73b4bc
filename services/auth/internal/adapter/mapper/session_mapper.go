package mapper

import (
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
)

// OtpSessionToModel 인증 세션 엔티티를 DB 모델로 변환
func OtpSessionToModel(s *entity.OtpSession) *model.OtpSessionModel {
	if s == nil {
		return nil
	}

	return &model.OtpSessionModel{
		ID:           s.ID,
		UserID:       s.UserID,
		Email:        s.Email,
		CodeHash:     s.CodeHash,
		Method:       string(s.Method),
		AttemptCount: s.AttemptCount,
		MaxAttempts:  s.MaxAttempts,
		IsUsed:       s.IsUsed,
		IsBlocked:    s.IsBlocked,
		UsedAt:       s.UsedAt,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	}
}

// OtpSessionFromModel DB 모델을 인증 세션 엔티티로 변환
func OtpSessionFromModel(m *model.OtpSessionModel) *entity.OtpSession {
	if m == nil {
		return nil
	}

	return &entity.OtpSession{
		ID:           m.ID,
		UserID:       m.UserID,
		Email:        m.Email,
		CodeHash:     m.CodeHash,
		Method:       entity.MFAMethod(m.Method),
		AttemptCount: m.AttemptCount,
		MaxAttempts:  m.MaxAttempts,
		IsUsed:       m.IsUsed,
		IsBlocked:    m.IsBlocked,
		UsedAt:       m.UsedAt,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    m.ExpiresAt,
	}
}

// UserSessionToModel 로그인 세션 엔티티를 DB 모델로 변환
func UserSessionToModel(s *entity.UserSession) *model.UserSessionModel {
	if s == nil {
		return nil
	}

	return &model.UserSessionModel{
		ID:                       s.ID,
		SessionToken:             s.Token,
		UserID:                   s.UserID,
		IPAddress:                s.IP,
		UserAgent:                s.UserAgent,
		DeviceFingerprint:        s.DeviceFingerprint,
		DeviceType:               s.DeviceType,
		Location:                 s.Location,
		IsTrustedDevice:          s.IsTrustedDevice,
		IsActive:                 s.IsActive,
		InactivityTimeoutMinutes: s.InactivityTimeoutMinutes,
		LastActivityAt:           s.LastActivityAt,
		ExpiresAt:                s.ExpiresAt,
		RevokedAt:                s.RevokedAt,
		RevokedReason:            s.RevokedReason,
		CreatedAt:                s.CreatedAt,
	}
}

// UserSessionFromModel DB 모델을 로그인 세션 엔티티로 변환
func UserSessionFromModel(m *model.UserSessionModel) *entity.UserSession {
	if m == nil {
		return nil
	}

	return &entity.UserSession{
		ID:                       m.ID,
		Token:                    m.SessionToken,
		UserID:                   m.UserID,
		IP:                       m.IPAddress,
		UserAgent:                m.UserAgent,
		DeviceFingerprint:        m.DeviceFingerprint,
		DeviceType:               m.DeviceType,
		Location:                 m.Location,
		IsTrustedDevice:          m.IsTrustedDevice,
		IsActive:                 m.IsActive,
		InactivityTimeoutMinutes: m.InactivityTimeoutMinutes,
		LastActivityAt:           m.LastActivityAt,
		ExpiresAt:                m.ExpiresAt,
		RevokedAt:                m.RevokedAt,
		RevokedReason:            m.RevokedReason,
		CreatedAt:                m.CreatedAt,
	}
}

// UserSessionsFromModels DB 모델 슬라이스를 엔티티 슬라이스로 변환
func UserSessionsFromModels(models []model.UserSessionModel) []*entity.UserSession {
	sessions := make([]*entity.UserSession, len(models))
	for i := range models {
		sessions[i] = UserSessionFromModel(&models[i])
	}
	return sessions
}
