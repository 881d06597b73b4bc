package entity

import (
	"time"
)

// AuditLogType 감사 가능한 인증 이벤트 유형
type AuditLogType string

const (
	AuditLogTypeSessionCreated     AuditLogType = "SESSION_CREATED"      // 세션 생성
	AuditLogTypeSessionRevoked     AuditLogType = "SESSION_REVOKED"      // 세션 폐기
	AuditLogTypeOtherSessionsEnded AuditLogType = "OTHER_SESSIONS_ENDED" // 다른 세션 일괄 폐기
	AuditLogTypeMFACodeSent        AuditLogType = "MFA_CODE_SENT"        // 인증 코드 발송
	AuditLogTypeMFACodeResent      AuditLogType = "MFA_CODE_RESENT"      // 인증 코드 재발송
	AuditLogTypeMFAVerified        AuditLogType = "MFA_VERIFIED"         // 인증 코드 확인 성공
	AuditLogTypeMFABlocked         AuditLogType = "MFA_BLOCKED"          // 인증 시도 초과로 차단
	AuditLogTypeAnomalyResolved    AuditLogType = "ANOMALY_RESOLVED"     // 이상 징후 처리 완료
	AuditLogTypeSuspiciousActivity AuditLogType = "SUSPICIOUS_ACTIVITY"  // 의심스러운 세션 활동
)

// AuditLog 보안 추적을 위한 감사 이벤트
type AuditLog struct {
	ID      uint
	UserID  *string
	Type    AuditLogType
	Content map[string]interface{}

	CreatedAt time.Time
}

// NewAuditLog 새 감사 로그 생성
func NewAuditLog(userID string, logType AuditLogType, content map[string]interface{}) *AuditLog {
	log := &AuditLog{
		Type:      logType,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if userID != "" {
		log.UserID = &userID
	}
	return log
}

// AddContentField 콘텐츠에 필드 추가
func (al *AuditLog) AddContentField(key string, value interface{}) {
	if al.Content == nil {
		al.Content = make(map[string]interface{})
	}
	al.Content[key] = value
}
