package dto

import (
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// LoginAttemptData 위험 분석 요청
type LoginAttemptData struct {
	UserID            *string   `json:"user_id,omitempty"`
	Email             string    `json:"email"`
	IP                string    `json:"ip"`
	UserAgent         string    `json:"user_agent"`
	Country           string    `json:"country,omitempty"`
	Region            string    `json:"region,omitempty"`
	City              string    `json:"city,omitempty"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint,omitempty"`
	DeviceType        string    `json:"device_type,omitempty"`
	OS                string    `json:"os,omitempty"`
	Browser           string    `json:"browser,omitempty"`
	IsSuccessful      bool      `json:"is_successful"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	OccurredAt        time.Time `json:"-"`
}

// ToEntity 로그인 시도 엔티티로 변환
func (d *LoginAttemptData) ToEntity(id string, at time.Time) *entity.LoginAttempt {
	return &entity.LoginAttempt{
		ID:        id,
		UserID:    d.UserID,
		Email:     d.Email,
		IP:        d.IP,
		UserAgent: d.UserAgent,
		Location: entity.GeoLocation{
			Country:   d.Country,
			Region:    d.Region,
			City:      d.City,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
		},
		Device: entity.DeviceInfo{
			Fingerprint: d.DeviceFingerprint,
			Type:        d.DeviceType,
			OS:          d.OS,
			Browser:     d.Browser,
		},
		IsSuccessful:  d.IsSuccessful,
		FailureReason: d.FailureReason,
		CreatedAt:     at,
	}
}

// RiskAssessmentResult 위험 분석 응답
type RiskAssessmentResult struct {
	AttemptID         string   `json:"attempt_id"`
	AnomalyID         string   `json:"anomaly_id,omitempty"`
	IsAnomalous       bool     `json:"is_anomalous"`
	RiskScore         int      `json:"risk_score"`
	Reasons           []string `json:"reasons"`
	Severity          int      `json:"severity"`
	SeverityName      string   `json:"severity_name"`
	RecommendedAction string   `json:"recommended_action"`
	Recommendations   []string `json:"recommendations"`
}

// NewRiskAssessmentResult 평가 결과로 응답 생성
func NewRiskAssessmentResult(attemptID string, a *entity.RiskAssessment) *RiskAssessmentResult {
	return &RiskAssessmentResult{
		AttemptID:         attemptID,
		IsAnomalous:       a.IsAnomalous,
		RiskScore:         a.RiskScore,
		Reasons:           a.Reasons,
		Severity:          int(a.Severity),
		SeverityName:      a.Severity.String(),
		RecommendedAction: string(a.RecommendedAction),
		Recommendations:   a.Recommendations,
	}
}

// AnomalyView 이상 징후 조회 응답
type AnomalyView struct {
	ID              string     `json:"id"`
	LoginAttemptID  string     `json:"login_attempt_id"`
	Type            string     `json:"type"`
	Severity        int        `json:"severity"`
	RiskScore       int        `json:"risk_score"`
	Description     string     `json:"description"`
	Reasons         []string   `json:"reasons"`
	Status          string     `json:"status"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewAnomalyView 엔티티를 응답으로 변환
func NewAnomalyView(a *entity.AnomalyRecord) *AnomalyView {
	return &AnomalyView{
		ID:              a.ID,
		LoginAttemptID:  a.LoginAttemptID,
		Type:            string(a.Type),
		Severity:        int(a.Severity),
		RiskScore:       a.RiskScore,
		Description:     a.Description,
		Reasons:         a.Reasons,
		Status:          string(a.Status),
		ResolutionNotes: a.ResolutionNotes,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
}

// ResolveAnomalyRequest 이상 징후 처리 요청
type ResolveAnomalyRequest struct {
	Notes string `json:"notes"`
}
