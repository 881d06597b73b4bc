package device

import (
	"strings"

	ua "github.com/mileusna/useragent"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
)

// 기기 유형
const (
	TypeDesktop = "desktop"
	TypeMobile  = "mobile"
	TypeTablet  = "tablet"
	TypeBot     = "bot"
	TypeUnknown = "unknown"
)

// Parser User-Agent 기반 기기 정보 파서
type Parser struct{}

// NewParser 파서 생성
func NewParser() repository.DeviceParser {
	return &Parser{}
}

// Parse User-Agent 문자열에서 기기 유형, OS, 브라우저를 추출합니다.
// 지문은 클라이언트가 보내는 값이므로 채우지 않습니다.
func (p *Parser) Parse(userAgent string) entity.DeviceInfo {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return entity.DeviceInfo{Type: TypeUnknown}
	}

	parsed := ua.Parse(userAgent)

	return entity.DeviceInfo{
		Type:    deviceType(parsed),
		OS:      strings.TrimSpace(parsed.OS),
		Browser: strings.TrimSpace(parsed.Name),
	}
}

func deviceType(parsed ua.UserAgent) string {
	switch {
	case parsed.Bot:
		return TypeBot
	case parsed.Tablet:
		return TypeTablet
	case parsed.Mobile:
		return TypeMobile
	case parsed.Desktop:
		return TypeDesktop
	default:
		return TypeUnknown
	}
}
