package entity

// ResponseAction 위험도에 따른 권장 대응
type ResponseAction string

const (
	ActionAllow     ResponseAction = "Allow"
	ActionChallenge ResponseAction = "Challenge"
	ActionStepUp    ResponseAction = "StepUp"
	ActionBlock     ResponseAction = "Block"
)

// 위험 사유 코드
const (
	ReasonNewUser              = "new_user"
	ReasonUnusualLocation      = "unusual_location"
	ReasonNewCountry           = "new_country"
	ReasonUnusualTime          = "unusual_time"
	ReasonUnusualTimeLateNight = "unusual_time_late_night"
	ReasonNewDevice            = "new_device"
	ReasonHighVelocity         = "high_velocity"
	ReasonModerateVelocity     = "moderate_velocity"
	ReasonBruteForcePattern    = "brute_force_pattern"
	ReasonMultipleFailures     = "multiple_failures"
)

// Severity 이상 징후 심각도 (1~5)
type Severity int

const (
	SeverityMinimal  Severity = 1
	SeverityLow      Severity = 2
	SeverityMedium   Severity = 3
	SeverityHigh     Severity = 4
	SeverityCritical Severity = 5
)

// String 알림에 사용하는 심각도 이름
func (s Severity) String() string {
	switch {
	case s >= SeverityCritical:
		return "Critical"
	case s == SeverityHigh:
		return "High"
	case s == SeverityMedium:
		return "Medium"
	case s == SeverityLow:
		return "Low"
	default:
		return "Minimal"
	}
}

// RiskAssessment 로그인 시도 위험 평가 결과
type RiskAssessment struct {
	IsAnomalous       bool
	RiskScore         int
	Reasons           []string
	Severity          Severity
	RecommendedAction ResponseAction
	Recommendations   []string
}

// HasReason 특정 사유가 포함되어 있는지 확인
func (r *RiskAssessment) HasReason(reason string) bool {
	for _, rr := range r.Reasons {
		if rr == reason {
			return true
		}
	}
	return false
}
