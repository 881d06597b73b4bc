package entity

import (
	"strings"
	"time"
)

// GeoLocation IP 기반 위치 정보
type GeoLocation struct {
	Country   string
	Region    string
	City      string
	Latitude  *float64
	Longitude *float64
}

// Known 국가 정보가 있는지 확인
func (g GeoLocation) Known() bool {
	return g.Country != ""
}

// Key 기준선 비교에 사용하는 "country,region,city" 문자열
func (g GeoLocation) Key() string {
	return strings.Join([]string{g.Country, g.Region, g.City}, ",")
}

// CountryFromKey 위치 키에서 국가 코드를 추출합니다
func CountryFromKey(key string) string {
	if i := strings.Index(key, ","); i >= 0 {
		return key[:i]
	}
	return key
}

// DeviceInfo 로그인 기기 정보
type DeviceInfo struct {
	Fingerprint string
	Type        string
	OS          string
	Browser     string
}

// LoginAttempt 점수가 매겨진 로그인 시도. 평가가 기록된 뒤에는 변경되지 않습니다.
type LoginAttempt struct {
	ID            string
	UserID        *string
	Email         string
	IP            string
	UserAgent     string
	Location      GeoLocation
	Device        DeviceInfo
	IsSuccessful  bool
	FailureReason string

	RiskScore         int
	IsAnomalous       bool
	Reasons           []string
	RecommendedAction ResponseAction

	CreatedAt time.Time
}

// HasUser 사용자 ID가 확인된 시도인지 여부
func (a *LoginAttempt) HasUser() bool {
	return a.UserID != nil && *a.UserID != ""
}

// ApplyAssessment 위험 평가 결과를 시도에 반영합니다
func (a *LoginAttempt) ApplyAssessment(r *RiskAssessment) {
	a.RiskScore = r.RiskScore
	a.IsAnomalous = r.IsAnomalous
	a.Reasons = append([]string(nil), r.Reasons...)
	a.RecommendedAction = r.RecommendedAction
}
