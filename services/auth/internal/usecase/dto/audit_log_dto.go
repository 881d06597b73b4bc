package dto

import (
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// AuditLogView 감사 로그 응답
type AuditLogView struct {
	ID        uint                   `json:"id"`
	Type      string                 `json:"type"`
	Content   map[string]interface{} `json:"content,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewAuditLogView 엔티티를 응답으로 변환
func NewAuditLogView(l *entity.AuditLog) *AuditLogView {
	return &AuditLogView{
		ID:        l.ID,
		Type:      string(l.Type),
		Content:   l.Content,
		CreatedAt: l.CreatedAt,
	}
}

// AuditLogPage 감사 로그 페이지
type AuditLogPage struct {
	Items []*AuditLogView `json:"items"`
	Total int64           `json:"total"`
}
