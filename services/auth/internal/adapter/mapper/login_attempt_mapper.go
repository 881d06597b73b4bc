package mapper

import (
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db/model"
	"gorm.io/datatypes"
)

// LoginAttemptToModel 로그인 시도 엔티티를 DB 모델로 변환
func LoginAttemptToModel(a *entity.LoginAttempt) *model.LoginAttemptModel {
	if a == nil {
		return nil
	}

	return &model.LoginAttemptModel{
		ID:                a.ID,
		UserID:            a.UserID,
		Email:             a.Email,
		IPAddress:         a.IP,
		UserAgent:         a.UserAgent,
		Country:           a.Location.Country,
		Region:            a.Location.Region,
		City:              a.Location.City,
		Latitude:          a.Location.Latitude,
		Longitude:         a.Location.Longitude,
		DeviceFingerprint: a.Device.Fingerprint,
		DeviceType:        a.Device.Type,
		OperatingSystem:   a.Device.OS,
		Browser:           a.Device.Browser,
		IsSuccessful:      a.IsSuccessful,
		FailureReason:     a.FailureReason,
		RiskScore:         a.RiskScore,
		IsAnomalous:       a.IsAnomalous,
		Reasons:           datatypes.JSONSlice[string](nonNil(a.Reasons)),
		RecommendedAction: string(a.RecommendedAction),
		CreatedAt:         a.CreatedAt,
	}
}

// LoginAttemptFromModel DB 모델을 로그인 시도 엔티티로 변환
func LoginAttemptFromModel(m *model.LoginAttemptModel) *entity.LoginAttempt {
	if m == nil {
		return nil
	}

	return &entity.LoginAttempt{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		IP:        m.IPAddress,
		UserAgent: m.UserAgent,
		Location: entity.GeoLocation{
			Country:   m.Country,
			Region:    m.Region,
			City:      m.City,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		},
		Device: entity.DeviceInfo{
			Fingerprint: m.DeviceFingerprint,
			Type:        m.DeviceType,
			OS:          m.OperatingSystem,
			Browser:     m.Browser,
		},
		IsSuccessful:      m.IsSuccessful,
		FailureReason:     m.FailureReason,
		RiskScore:         m.RiskScore,
		IsAnomalous:       m.IsAnomalous,
		Reasons:           []string(m.Reasons),
		RecommendedAction: entity.ResponseAction(m.RecommendedAction),
		CreatedAt:         m.CreatedAt,
	}
}

// BaselineToModel 기준선 엔티티를 DB 모델로 변환
func BaselineToModel(b *entity.UserBehaviorBaseline) *model.UserBehaviorBaselineModel {
	if b == nil {
		return nil
	}

	return &model.UserBehaviorBaselineModel{
		ID:                    b.ID,
		UserID:                b.UserID,
		RecentIPs:             datatypes.JSONSlice[string](nonNil(b.RecentIPs)),
		Locations:             datatypes.JSONSlice[string](nonNil(b.Locations)),
		Devices:               datatypes.JSONSlice[string](nonNil(b.Devices)),
		TypicalHours:          datatypes.JSONSlice[int](nonNil(b.TypicalHours)),
		TypicalDays:           datatypes.JSONSlice[int](nonNil(b.TypicalDays)),
		LocationRiskThreshold: b.LocationRiskThreshold,
		TimeRiskThreshold:     b.TimeRiskThreshold,
		DeviceRiskThreshold:   b.DeviceRiskThreshold,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// BaselineFromModel DB 모델을 기준선 엔티티로 변환
func BaselineFromModel(m *model.UserBehaviorBaselineModel) *entity.UserBehaviorBaseline {
	if m == nil {
		return nil
	}

	return &entity.UserBehaviorBaseline{
		ID:                    m.ID,
		UserID:                m.UserID,
		RecentIPs:             []string(m.RecentIPs),
		Locations:             []string(m.Locations),
		Devices:               []string(m.Devices),
		TypicalHours:          []int(m.TypicalHours),
		TypicalDays:           []int(m.TypicalDays),
		LocationRiskThreshold: m.LocationRiskThreshold,
		TimeRiskThreshold:     m.TimeRiskThreshold,
		DeviceRiskThreshold:   m.DeviceRiskThreshold,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// AnomalyToModel 이상 징후 엔티티를 DB 모델로 변환
func AnomalyToModel(a *entity.AnomalyRecord) *model.AnomalyRecordModel {
	if a == nil {
		return nil
	}

	return &model.AnomalyRecordModel{
		ID:              a.ID,
		UserID:          a.UserID,
		LoginAttemptID:  a.LoginAttemptID,
		Severity:        int(a.Severity),
		RiskScore:       a.RiskScore,
		AnomalyType:     string(a.Type),
		Description:     a.Description,
		Reasons:         datatypes.JSONSlice[string](nonNil(a.Reasons)),
		Status:          string(a.Status),
		ResolvedBy:      a.ResolvedBy,
		ResolutionNotes: a.ResolutionNotes,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
}

// AnomalyFromModel DB 모델을 이상 징후 엔티티로 변환
func AnomalyFromModel(m *model.AnomalyRecordModel) *entity.AnomalyRecord {
	if m == nil {
		return nil
	}

	return &entity.AnomalyRecord{
		ID:              m.ID,
		UserID:          m.UserID,
		LoginAttemptID:  m.LoginAttemptID,
		Severity:        entity.Severity(m.Severity),
		RiskScore:       m.RiskScore,
		Type:            entity.AnomalyType(m.AnomalyType),
		Description:     m.Description,
		Reasons:         []string(m.Reasons),
		Status:          entity.AnomalyStatus(m.Status),
		ResolvedBy:      m.ResolvedBy,
		ResolutionNotes: m.ResolutionNotes,
		ResolvedAt:      m.ResolvedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// AnomaliesFromModels DB 모델 슬라이스를 엔티티 슬라이스로 변환
func AnomaliesFromModels(models []model.AnomalyRecordModel) []*entity.AnomalyRecord {
	records := make([]*entity.AnomalyRecord, len(models))
	for i := range models {
		records[i] = AnomalyFromModel(&models[i])
	}
	return records
}

// JSON 컬럼에 null 대신 빈 배열이 저장되도록 합니다
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
