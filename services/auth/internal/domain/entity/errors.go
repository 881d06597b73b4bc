package entity

import (
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
)

// 형식이 틀린 세션 id와 없는 세션 id는 같은 메시지로 응답합니다
const invalidSessionMessage = "유효하지 않은 인증 세션입니다"

// 도메인 에러. errors.Is로 비교할 수 있습니다.
var (
	// 위험 분석 / 이상 징후
	ErrAnomalyNotFound        = apperrors.NewAppError(apperrors.ErrNotFound, "이상 징후 기록을 찾을 수 없습니다", nil)
	ErrAnomalyAlreadyResolved = apperrors.NewAppError(apperrors.ErrStateConflict, "이미 처리된 이상 징후입니다", nil)
	ErrAnomalyForbidden       = apperrors.NewAppError(apperrors.ErrUnauthorized, "이상 징후를 처리할 권한이 없습니다", nil)

	// MFA 코드
	ErrRateLimited        = apperrors.NewAppError(apperrors.ErrRateLimited, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요", nil)
	ErrUserNotFound       = apperrors.NewAppError(apperrors.ErrNotFound, "사용자를 찾을 수 없습니다", nil)
	ErrUnsupportedMethod  = apperrors.NewAppError(apperrors.ErrInvalidArgument, "지원하지 않는 인증 방식입니다", nil)
	ErrMethodMismatch     = apperrors.NewAppError(apperrors.ErrInvalidArgument, "사용자 설정과 다른 인증 방식입니다", nil)
	ErrInvalidSession     = apperrors.NewAppError(apperrors.ErrInvalidArgument, invalidSessionMessage, nil)
	ErrOtpSessionNotFound = apperrors.NewAppError(apperrors.ErrNotFound, invalidSessionMessage, nil)
	ErrEmailMismatch      = apperrors.NewAppError(apperrors.ErrUnauthorized, "인증 세션의 이메일이 일치하지 않습니다", nil)
	ErrCodeAlreadyUsed    = apperrors.NewAppError(apperrors.ErrStateConflict, "이미 사용된 인증 코드입니다", nil)
	ErrCodeExpired        = apperrors.NewAppError(apperrors.ErrStateConflict, "인증 코드가 만료되었습니다", nil)
	ErrCodeBlocked        = apperrors.NewAppError(apperrors.ErrStateConflict, "시도 횟수를 초과하여 차단된 인증 세션입니다", nil)
	ErrInvalidCodeFormat  = apperrors.NewAppError(apperrors.ErrInvalidArgument, "인증 코드는 6자리 숫자여야 합니다", nil)

	// 세션
	ErrSessionNotFound = apperrors.NewAppError(apperrors.ErrNotFound, "세션을 찾을 수 없습니다", nil)
	ErrSessionExpired  = apperrors.NewAppError(apperrors.ErrStateConflict, "세션이 만료되었습니다", nil)
	ErrSessionInactive = apperrors.NewAppError(apperrors.ErrStateConflict, "장시간 활동이 없어 세션이 만료되었습니다", nil)
	ErrSessionRevoked  = apperrors.NewAppError(apperrors.ErrStateConflict, "폐기된 세션입니다", nil)
)
