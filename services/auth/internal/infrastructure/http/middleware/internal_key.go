package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// InternalKeyHeader 내부 호출자가 공유 키를 전달하는 헤더
const InternalKeyHeader = "X-Internal-Key"

// NewInternalKeyMiddleware는 로그인 흐름을 수행하는 내부 서비스만 통과시키는 미들웨어를 생성합니다.
// 키가 설정되지 않았으면 모든 요청을 거부합니다.
func NewInternalKeyMiddleware(key string, logger *zap.Logger) echo.MiddlewareFunc {
	expected := []byte(key)
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		KeyLookup: "header:" + InternalKeyHeader,
		Validator: func(candidate string, _ echo.Context) (bool, error) {
			if len(expected) == 0 {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(candidate), expected) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			logger.Warn("내부 호출자 인증 실패",
				zap.String("ip", c.RealIP()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return unauthorized("내부 호출자 인증이 필요합니다")
		},
	})
}
