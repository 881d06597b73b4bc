package mapper

import (
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
)

// UserFromModel DB 모델을 사용자 엔티티로 변환
func UserFromModel(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		Phone:              m.Phone,
		PreferredMFAMethod: entity.MFAMethod(m.PreferredMFAMethod),
		AccountStatus:      m.AccountStatus,
	}
}

// AuditLogToModel 감사 로그 엔티티를 DB 모델로 변환
func AuditLogToModel(l *entity.AuditLog) *model.AuditLogModel {
	if l == nil {
		return nil
	}

	return &model.AuditLogModel{
		ID:      l.ID,
		UserID:  l.UserID,
		Type:    string(l.Type),
		Content: l.Content,
	}
}

// AuditLogFromModel DB 모델을 감사 로그 엔티티로 변환
func AuditLogFromModel(m *model.AuditLogModel) *entity.AuditLog {
	if m == nil {
		return nil
	}

	return &entity.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entity.AuditLogType(m.Type),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
