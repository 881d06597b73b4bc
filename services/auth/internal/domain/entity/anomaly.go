package entity

import (
	"time"
)

// AnomalyType 이상 징후 분류
type AnomalyType string

const (
	AnomalyTypeLocation AnomalyType = "Location"
	AnomalyTypeTime     AnomalyType = "Time"
	AnomalyTypeDevice   AnomalyType = "Device"
	AnomalyTypeVelocity AnomalyType = "Velocity"
	AnomalyTypeGeneral  AnomalyType = "General"
)

// AnomalyStatus 처리 상태
type AnomalyStatus string

const (
	AnomalyStatusPending  AnomalyStatus = "pending"
	AnomalyStatusResolved AnomalyStatus = "resolved"
)

// AnomalyRecord 이상 로그인 시도 기록
type AnomalyRecord struct {
	ID             string
	UserID         string
	LoginAttemptID string
	Severity       Severity
	RiskScore      int
	Type           AnomalyType
	Description    string
	Reasons        []string
	Status         AnomalyStatus

	ResolvedBy      *string
	ResolutionNotes string
	ResolvedAt      *time.Time

	CreatedAt time.Time
}

// IsResolved 처리 완료 여부
func (a *AnomalyRecord) IsResolved() bool {
	return a.Status == AnomalyStatusResolved
}

// Resolve 운영자 처리. pending 상태에서만 가능합니다.
func (a *AnomalyRecord) Resolve(resolverID, notes string, at time.Time) error {
	if a.IsResolved() {
		return ErrAnomalyAlreadyResolved
	}
	a.Status = AnomalyStatusResolved
	a.ResolvedBy = &resolverID
	a.ResolutionNotes = notes
	a.ResolvedAt = &at
	return nil
}

// RequiresAlert 알림 대상 심각도인지 확인
func (a *AnomalyRecord) RequiresAlert() bool {
	return a.Severity >= SeverityMedium
}

// RequiresAction 즉시 조치가 필요한 심각도인지 확인
func (a *AnomalyRecord) RequiresAction() bool {
	return a.Severity >= SeverityHigh
}
