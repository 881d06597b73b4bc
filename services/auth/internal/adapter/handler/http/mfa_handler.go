package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/http/middleware"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// MFAHandler는 인증 코드 발송/검증 HTTP 핸들러입니다
type MFAHandler struct {
	mfaUseCase interfaces.MFAUseCase
	cookie     middleware.CookieOptions
	logger     *zap.Logger
}

// NewMFAHandler는 새로운 MFAHandler 인스턴스를 생성합니다
func NewMFAHandler(mfaUseCase interfaces.MFAUseCase, cookie middleware.CookieOptions, logger *zap.Logger) *MFAHandler {
	return &MFAHandler{
		mfaUseCase: mfaUseCase,
		cookie:     cookie,
		logger:     logger,
	}
}

// RegisterRoutes는 Echo 라우터에 핸들러 경로를 등록합니다
func (h *MFAHandler) RegisterRoutes(g *echo.Group) {
	mfa := g.Group("/mfa")
	mfa.POST("/send", h.SendCode)
	mfa.POST("/verify", h.VerifyCode)
	mfa.POST("/resend", h.ResendCode)
}

// SendCode는 사용자에게 인증 코드를 발송합니다
// @Summary 인증 코드 발송
// @Tags mfa
// @Accept json
// @Produce json
// @Param request body dto.SendCodeRequest true "발송 요청"
// @Success 200 {object} dto.SendCodeResponse
// @Failure 400 {object} errors.ErrorBody
// @Failure 404 {object} errors.ErrorBody
// @Failure 429 {object} errors.ErrorBody
// @Router /api/v1/mfa/send [post]
func (h *MFAHandler) SendCode(c echo.Context) error {
	var req dto.SendCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	req.IP = c.RealIP()

	resp, err := h.mfaUseCase.SendCode(c.Request().Context(), &req)
	if err != nil {
		return fail(h.logger, c, err, "인증 코드 발송 실패")
	}

	return c.JSON(http.StatusOK, resp)
}

// VerifyCode는 인증 코드를 검증하고 성공하면 세션 쿠키를 설정합니다
// @Summary 인증 코드 검증
// @Tags mfa
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "검증 요청"
// @Success 200 {object} dto.VerifyCodeResponse
// @Failure 400 {object} errors.ErrorBody
// @Failure 403 {object} errors.ErrorBody
// @Failure 409 {object} errors.ErrorBody
// @Router /api/v1/mfa/verify [post]
func (h *MFAHandler) VerifyCode(c echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	req.IP = c.RealIP()
	req.UserAgent = c.Request().UserAgent()

	resp, err := h.mfaUseCase.VerifyCode(c.Request().Context(), &req)
	if err != nil {
		return fail(h.logger, c, err, "인증 코드 검증 실패")
	}

	if resp.Success && resp.AccessToken != "" {
		if err := middleware.SaveSessionCookie(c, resp.AccessToken, h.cookie); err != nil {
			h.logger.Warn("세션 쿠키 저장 실패", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// ResendCode는 쿨다운 이후 새 인증 코드를 발송합니다
func (h *MFAHandler) ResendCode(c echo.Context) error {
	var req dto.ResendCodeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	resp, err := h.mfaUseCase.ResendCode(c.Request().Context(), req.SessionID)
	if err != nil {
		return fail(h.logger, c, err, "인증 코드 재발송 실패")
	}

	return c.JSON(http.StatusOK, resp)
}
