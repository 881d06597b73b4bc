package errors

// 공통 에러 코드 정의
const (
	// 일반적인 에러 코드
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"

	// 인증 도메인 에러 코드
	ErrStateConflict  = "STATE_CONFLICT"  // 이미 사용/만료/차단된 상태
	ErrRateLimited    = "RATE_LIMITED"    // 요청 한도 초과
	ErrCooldownActive = "COOLDOWN_ACTIVE" // 재전송 대기 시간
)
