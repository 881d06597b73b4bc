package service

import (
	"strings"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

var reasonPhrases = map[string]string{
	entity.ReasonNewUser:              "기준선이 없는 첫 로그인",
	entity.ReasonUnusualLocation:      "평소와 다른 위치에서 로그인",
	entity.ReasonNewCountry:           "처음 보는 국가에서 로그인",
	entity.ReasonUnusualTime:          "평소와 다른 시간대에 로그인",
	entity.ReasonUnusualTimeLateNight: "심야 시간대에 로그인",
	entity.ReasonNewDevice:            "등록되지 않은 기기에서 로그인",
	entity.ReasonHighVelocity:         "5분 내 로그인 시도 급증",
	entity.ReasonModerateVelocity:     "5분 내 반복 로그인 시도",
	entity.ReasonBruteForcePattern:    "같은 IP에서 무차별 대입 패턴",
	entity.ReasonMultipleFailures:     "같은 IP에서 여러 번 로그인 실패",
}

// DescribeReasons 사유별 문구를 이어 붙인 설명
func DescribeReasons(reasons []string) string {
	phrases := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if phrase, ok := reasonPhrases[reason]; ok {
			phrases = append(phrases, phrase)
		} else {
			phrases = append(phrases, reason)
		}
	}
	if len(phrases) == 0 {
		return "이상 로그인 시도"
	}
	return strings.Join(phrases, "; ")
}

// ClassifyAnomaly 사유로 이상 징후 유형 결정.
// 위치, 시간, 기기, 속도 순으로 먼저 일치하는 유형을 사용합니다.
func ClassifyAnomaly(reasons []string) entity.AnomalyType {
	switch {
	case hasReason(reasons, entity.ReasonUnusualLocation), hasReason(reasons, entity.ReasonNewCountry):
		return entity.AnomalyTypeLocation
	case hasReason(reasons, entity.ReasonUnusualTime), hasReason(reasons, entity.ReasonUnusualTimeLateNight):
		return entity.AnomalyTypeTime
	case hasReason(reasons, entity.ReasonNewDevice):
		return entity.AnomalyTypeDevice
	case hasReason(reasons, entity.ReasonHighVelocity),
		hasReason(reasons, entity.ReasonModerateVelocity),
		hasReason(reasons, entity.ReasonBruteForcePattern),
		hasReason(reasons, entity.ReasonMultipleFailures):
		return entity.AnomalyTypeVelocity
	default:
		return entity.AnomalyTypeGeneral
	}
}
