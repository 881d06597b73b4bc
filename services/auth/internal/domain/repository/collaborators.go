package repository

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
)

// RateLimiter (key, action) 단위 시도 횟수 제한
type RateLimiter interface {
	// CanAttempt 허용 한도 내인지 확인
	CanAttempt(ctx context.Context, key, action string, max int) (bool, error)

	// RecordAttempt 시도 기록. 성공 여부와 관계없이 윈도우 카운터가 증가합니다
	RecordAttempt(ctx context.Context, key, action string, success bool) error
}

// AlertDispatcher 보안 경고 전달
type AlertDispatcher interface {
	SendAlert(ctx context.Context, alert *entity.SecurityAlert) error
}

// CodeDelivery 인증 코드 전달 채널 (SMS / 이메일)
type CodeDelivery interface {
	Send(ctx context.Context, user *entity.User, code string, method entity.MFAMethod) error
}

// SecurityEventPublisher 보안 이벤트 발행
type SecurityEventPublisher interface {
	Publish(ctx context.Context, event *entity.SecurityEvent) error
}

// GeoResolver IP 주소로 위치 조회
type GeoResolver interface {
	Resolve(ip string) (entity.GeoLocation, error)
}

// DeviceParser User-Agent에서 기기 정보 추출
type DeviceParser interface {
	Parse(userAgent string) entity.DeviceInfo
}
