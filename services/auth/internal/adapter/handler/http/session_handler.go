package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/http/middleware"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// SessionHandler는 로그인 세션 관리 HTTP 핸들러입니다
type SessionHandler struct {
	sessionUseCase interfaces.SessionUseCase
	auth           echo.MiddlewareFunc
	logger         *zap.Logger
}

// NewSessionHandler는 새로운 SessionHandler 인스턴스를 생성합니다
func NewSessionHandler(sessionUseCase interfaces.SessionUseCase, auth echo.MiddlewareFunc, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		auth:           auth,
		logger:         logger,
	}
}

// RegisterRoutes는 Echo 라우터에 핸들러 경로를 등록합니다
func (h *SessionHandler) RegisterRoutes(g *echo.Group) {
	sessions := g.Group("/sessions", h.auth)
	sessions.GET("", h.ListSessions)
	sessions.DELETE("/others", h.RevokeOthers)
	sessions.POST("/logout", h.Logout)
	sessions.GET("/suspicious", h.CheckSuspicious)
}

// ListSessions는 현재 사용자의 활성 세션 목록을 반환합니다
func (h *SessionHandler) ListSessions(c echo.Context) error {
	userID := middleware.UserID(c)
	current := middleware.SessionToken(c)

	list, err := h.sessionUseCase.ListActiveSessions(c.Request().Context(), userID)
	if err != nil {
		return fail(h.logger, c, err, "세션 목록 조회 실패")
	}

	views := make([]*dto.SessionView, 0, len(list))
	for _, s := range list {
		views = append(views, dto.NewSessionView(s, current))
	}
	return c.JSON(http.StatusOK, views)
}

// RevokeOthers는 현재 세션을 제외한 모든 세션을 종료합니다
func (h *SessionHandler) RevokeOthers(c echo.Context) error {
	revoked, err := h.sessionUseCase.RevokeAllOtherSessions(
		c.Request().Context(), middleware.UserID(c), middleware.SessionToken(c))
	if err != nil {
		return fail(h.logger, c, err, "다른 세션 종료 실패")
	}
	return c.JSON(http.StatusOK, dto.RevokeOthersResponse{Revoked: revoked})
}

// Logout는 현재 세션을 종료하고 쿠키를 삭제합니다
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionUseCase.RevokeSession(
		c.Request().Context(), middleware.SessionToken(c), entity.RevokeReasonLogout); err != nil {
		return fail(h.logger, c, err, "로그아웃 실패")
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// CheckSuspicious는 활성 세션 분포로 의심 활동 여부를 반환합니다
func (h *SessionHandler) CheckSuspicious(c echo.Context) error {
	suspicious, err := h.sessionUseCase.DetectSuspiciousActivity(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(h.logger, c, err, "의심 활동 탐지 실패")
	}
	return c.JSON(http.StatusOK, dto.SuspiciousActivityResponse{Suspicious: suspicious})
}
