package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	pkglogger "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/logger"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// 컨텍스트 / 쿠키 키 상수
const (
	// SessionKey 세션 쿠키 이름
	SessionKey = "session"
	// UserIDKey 인증된 사용자 id (요청 로그에 기록됩니다)
	UserIDKey = pkglogger.UserIDContextKey
	// SessionTokenKey 현재 요청의 세션 토큰 (요청 로그에는 해시만 기록됩니다)
	SessionTokenKey = pkglogger.SessionTokenContextKey

	tokenValueKey = "token"
	bearerPrefix  = "Bearer "
)

// CookieOptions 세션 쿠키 옵션
type CookieOptions struct {
	MaxAge int
	Secure bool
}

// SessionMiddleware는 세션 토큰을 검증하는 미들웨어입니다.
// 토큰은 Authorization 헤더(Bearer) 또는 세션 쿠키에서 읽습니다.
type SessionMiddleware struct {
	sessionUseCase interfaces.SessionUseCase
	logger         *zap.Logger
}

// NewSessionMiddleware는 새로운 세션 미들웨어를 생성합니다.
func NewSessionMiddleware(sessionUC interfaces.SessionUseCase, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessionUseCase: sessionUC,
		logger:         logger,
	}
}

// Handle는 세션을 검증하고 활동 시간을 갱신하는 핸들러 함수를 반환합니다.
func (m *SessionMiddleware) Handle() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := m.extractToken(c)
			if token == "" {
				return unauthorized("세션 토큰이 필요합니다")
			}

			ctx := c.Request().Context()
			userSession, err := m.sessionUseCase.ValidateSession(ctx, token)
			if err != nil {
				if !apperrors.IsExpected(err) {
					return apperrors.ToHTTPError(err)
				}
				ClearSessionCookie(c)
				m.logger.Info("세션 검증 실패",
					zap.String("ip", c.RealIP()),
					zap.String("reason", messageOf(err)),
				)
				return unauthorized(messageOf(err))
			}

			// 마지막 활동 시간 갱신 (저장소 오류는 무시하고 요청을 계속 처리)
			touched, err := m.sessionUseCase.UpdateActivity(ctx, token)
			if err != nil {
				m.logger.Warn("세션 활동 갱신 실패", zap.Error(err))
			} else if !touched {
				// 검증 직후 다른 요청이 세션을 폐기했습니다
				ClearSessionCookie(c)
				m.logger.Info("검증 중 폐기된 세션",
					zap.String("ip", c.RealIP()),
					zap.String("user_id", userSession.UserID),
				)
				return unauthorized("세션이 종료되었습니다")
			}

			c.Set(UserIDKey, userSession.UserID)
			c.Set(SessionTokenKey, token)

			return next(c)
		}
	}
}

func (m *SessionMiddleware) extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	}

	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[tokenValueKey].(string)
	return token
}

// UserID 인증된 사용자 id
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// SessionToken 현재 요청의 세션 토큰
func SessionToken(c echo.Context) string {
	token, _ := c.Get(SessionTokenKey).(string)
	return token
}

// SaveSessionCookie 세션 토큰을 쿠키에 저장합니다
func SaveSessionCookie(c echo.Context, token string, opts CookieOptions) error {
	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return err
	}
	sess.Values[tokenValueKey] = token
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	return sess.Save(c.Request(), c.Response())
}

// ClearSessionCookie 클라이언트의 세션 쿠키를 즉시 만료시킵니다.
func ClearSessionCookie(c echo.Context) {
	sess, err := session.Get(SessionKey, c)
	if err != nil {
		return
	}
	sess.Values = make(map[interface{}]interface{})
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   -1, // 세션 즉시 만료
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteStrictMode,
	}
	_ = sess.Save(c.Request(), c.Response())
}

func unauthorized(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorBody{
		Code:    apperrors.ErrUnauthenticated,
		Message: message,
	})
}

func messageOf(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
