package entity

import (
	"time"
)

// 기준선 롤링 목록 최대 크기
const (
	MaxRecentIPs    = 10
	MaxLocations    = 5
	MaxDevices      = 5
	MaxTypicalHours = 8
	MaxTypicalDays  = 7
)

// 요소별 기본 위험 가중치
const (
	DefaultLocationRiskThreshold = 30
	DefaultTimeRiskThreshold     = 15
	DefaultDeviceRiskThreshold   = 25
)

// UserBehaviorBaseline 사용자별 로그인 행동 기준선.
// 롤링 목록은 오래된 항목부터 제거됩니다.
type UserBehaviorBaseline struct {
	ID           string
	UserID       string
	RecentIPs    []string
	Locations    []string
	Devices      []string
	TypicalHours []int
	TypicalDays  []int

	LocationRiskThreshold int
	TimeRiskThreshold     int
	DeviceRiskThreshold   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserBehaviorBaseline 첫 로그인 시 기준선 생성
func NewUserBehaviorBaseline(id, userID string, now time.Time) *UserBehaviorBaseline {
	return &UserBehaviorBaseline{
		ID:                    id,
		UserID:                userID,
		RecentIPs:             []string{},
		Locations:             []string{},
		Devices:               []string{},
		TypicalHours:          []int{},
		TypicalDays:           []int{},
		LocationRiskThreshold: DefaultLocationRiskThreshold,
		TimeRiskThreshold:     DefaultTimeRiskThreshold,
		DeviceRiskThreshold:   DefaultDeviceRiskThreshold,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// HasLocation 위치 키가 기준선에 있는지 확인
func (b *UserBehaviorBaseline) HasLocation(key string) bool {
	return contains(b.Locations, key)
}

// HasCountry 기록된 위치 중 같은 국가가 있는지 확인
func (b *UserBehaviorBaseline) HasCountry(country string) bool {
	for _, loc := range b.Locations {
		if CountryFromKey(loc) == country {
			return true
		}
	}
	return false
}

// HasHour 평소 로그인 시간대인지 확인
func (b *UserBehaviorBaseline) HasHour(hour int) bool {
	return contains(b.TypicalHours, hour)
}

// HasDevice 알려진 기기인지 확인
func (b *UserBehaviorBaseline) HasDevice(fingerprint string) bool {
	return contains(b.Devices, fingerprint)
}

// Observe 로그인 시도를 기준선에 반영합니다. 처음 보는 값만 추가하고
// 최대 크기를 넘으면 가장 오래된 값을 제거합니다.
func (b *UserBehaviorBaseline) Observe(attempt *LoginAttempt, at time.Time) {
	if attempt.IP != "" {
		b.RecentIPs = appendCapped(b.RecentIPs, attempt.IP, MaxRecentIPs)
	}
	if attempt.Location.Known() {
		b.Locations = appendCapped(b.Locations, attempt.Location.Key(), MaxLocations)
	}
	if attempt.Device.Fingerprint != "" {
		b.Devices = appendCapped(b.Devices, attempt.Device.Fingerprint, MaxDevices)
	}
	b.TypicalHours = appendCapped(b.TypicalHours, at.Hour(), MaxTypicalHours)
	b.TypicalDays = appendCapped(b.TypicalDays, int(at.Weekday()), MaxTypicalDays)
	b.UpdatedAt = at
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func appendCapped[T comparable](list []T, v T, limit int) []T {
	if contains(list, v) {
		return list
	}
	list = append(list, v)
	if len(list) > limit {
		list = append(list[:0:0], list[len(list)-limit:]...)
	}
	return list
}
