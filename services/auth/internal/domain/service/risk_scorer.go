package service

import (
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// 점수 규칙 상수
const (
	NewUserScore        = 20
	NewCountryScore     = 30
	LateNightExtraScore = 20
	LateNightLastHour   = 5

	VelocityWindow          = 5 * time.Minute
	HighVelocityCount       = 3
	HighVelocityScore       = 40
	ModerateVelocityCount   = 1
	ModerateVelocityScore   = 20
	FailureWindow           = time.Hour
	BruteForceFailureCount  = 5
	BruteForceScore         = 60
	MultipleFailureCount    = 3
	MultipleFailuresScore   = 30
	AnomalyScoreThreshold   = 50
	BlockScoreThreshold     = 90
	StepUpScoreThreshold    = 70
	ChallengeScoreThreshold = 50
)

// RiskSignals 저장된 시도에서 집계한 값. 현재 시도를 포함합니다.
type RiskSignals struct {
	// RecentAttempts 최근 5분간 같은 사용자의 시도 수
	RecentAttempts int64
	// RecentIPFailures 최근 1시간 같은 IP의 실패 수
	RecentIPFailures int64
}

// RiskScorer 로그인 시도를 사용자 기준선과 비교해 점수를 매깁니다
type RiskScorer struct {
	location *time.Location
}

// NewRiskScorer 시간대 규칙에 사용할 location으로 scorer 생성 (nil이면 UTC)
func NewRiskScorer(location *time.Location) *RiskScorer {
	if location == nil {
		location = time.UTC
	}
	return &RiskScorer{location: location}
}

// LocalTime 시간대 규칙에 사용하는 현지 시각
func (s *RiskScorer) LocalTime(t time.Time) time.Time {
	return t.In(s.location)
}

// Assess 위험 점수, 심각도, 권장 대응을 계산합니다
func (s *RiskScorer) Assess(attempt *entity.LoginAttempt, baseline *entity.UserBehaviorBaseline, signals RiskSignals) *entity.RiskAssessment {
	score := 0
	reasons := make([]string, 0, 4)
	add := func(points int, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	if baseline == nil {
		add(NewUserScore, entity.ReasonNewUser)
	} else {
		loc := attempt.Location
		if loc.Known() && !baseline.HasLocation(loc.Key()) {
			add(baseline.LocationRiskThreshold, entity.ReasonUnusualLocation)
			if !baseline.HasCountry(loc.Country) {
				add(NewCountryScore, entity.ReasonNewCountry)
			}
		}

		hour := s.LocalTime(attempt.CreatedAt).Hour()
		if !baseline.HasHour(hour) {
			if hour <= LateNightLastHour {
				add(baseline.TimeRiskThreshold+LateNightExtraScore, entity.ReasonUnusualTimeLateNight)
			} else {
				add(baseline.TimeRiskThreshold, entity.ReasonUnusualTime)
			}
		}

		if fp := attempt.Device.Fingerprint; fp != "" && !baseline.HasDevice(fp) {
			add(baseline.DeviceRiskThreshold, entity.ReasonNewDevice)
		}
	}

	switch {
	case signals.RecentAttempts > HighVelocityCount:
		add(HighVelocityScore, entity.ReasonHighVelocity)
	case signals.RecentAttempts > ModerateVelocityCount:
		add(ModerateVelocityScore, entity.ReasonModerateVelocity)
	}

	if !attempt.IsSuccessful {
		switch {
		case signals.RecentIPFailures > BruteForceFailureCount:
			add(BruteForceScore, entity.ReasonBruteForcePattern)
		case signals.RecentIPFailures > MultipleFailureCount:
			add(MultipleFailuresScore, entity.ReasonMultipleFailures)
		}
	}

	return Classify(score, reasons)
}

// Classify 누적 점수와 사유로 평가 결과를 만듭니다. 점수는 0~100으로 제한됩니다.
func Classify(rawScore int, reasons []string) *entity.RiskAssessment {
	score := ClampScore(rawScore)
	return &entity.RiskAssessment{
		IsAnomalous:       score >= AnomalyScoreThreshold,
		RiskScore:         score,
		Reasons:           reasons,
		Severity:          SeverityForScore(score),
		RecommendedAction: ActionFor(score, reasons),
		Recommendations:   Recommendations(reasons),
	}
}

// ClampScore 점수를 0~100 범위로 제한
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SeverityForScore 점수 구간별 심각도
func SeverityForScore(score int) entity.Severity {
	switch {
	case score >= 90:
		return entity.SeverityCritical
	case score >= 70:
		return entity.SeverityHigh
	case score >= 50:
		return entity.SeverityMedium
	case score >= 30:
		return entity.SeverityLow
	default:
		return entity.SeverityMinimal
	}
}

// ActionFor 점수와 사유로 권장 대응 결정
func ActionFor(score int, reasons []string) entity.ResponseAction {
	switch {
	case score >= BlockScoreThreshold || hasReason(reasons, entity.ReasonBruteForcePattern):
		return entity.ActionBlock
	case score >= StepUpScoreThreshold:
		return entity.ActionStepUp
	case score >= ChallengeScoreThreshold:
		return entity.ActionChallenge
	default:
		return entity.ActionAllow
	}
}

var recommendationByReason = map[string]string{
	entity.ReasonNewUser:              "첫 로그인입니다. 이메일 인증 상태를 확인하세요",
	entity.ReasonUnusualLocation:      "평소와 다른 위치의 로그인입니다. 사용자에게 위치를 확인하세요",
	entity.ReasonNewCountry:           "해외 로그인에 대해 추가 인증을 요구하세요",
	entity.ReasonUnusualTime:          "평소와 다른 시간대의 로그인입니다",
	entity.ReasonUnusualTimeLateNight: "심야 로그인입니다. 거래 한도를 낮추는 것을 고려하세요",
	entity.ReasonNewDevice:            "새 기기입니다. 기기 등록 전 추가 인증을 요구하세요",
	entity.ReasonHighVelocity:         "짧은 시간에 로그인 시도가 많습니다. 자동화 공격 여부를 확인하세요",
	entity.ReasonModerateVelocity:     "반복 로그인 시도가 감지되었습니다",
	entity.ReasonBruteForcePattern:    "무차별 대입 패턴입니다. 해당 IP를 차단하세요",
	entity.ReasonMultipleFailures:     "같은 IP에서 여러 번 실패했습니다. CAPTCHA 적용을 고려하세요",
}

// Recommendations 발생한 사유별 안내 문구
func Recommendations(reasons []string) []string {
	out := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if rec, ok := recommendationByReason[reason]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func hasReason(reasons []string, target string) bool {
	for _, r := range reasons {
		if r == target {
			return true
		}
	}
	return false
}
