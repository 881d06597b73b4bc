package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// RiskHandler는 로그인 위험 분석 HTTP 핸들러입니다.
// 로그인 흐름을 수행하는 내부 서비스 전용이며 internal 미들웨어 뒤에 등록됩니다.
type RiskHandler struct {
	riskUseCase interfaces.RiskUseCase
	internal    echo.MiddlewareFunc
	logger      *zap.Logger
}

// NewRiskHandler는 새로운 RiskHandler 인스턴스를 생성합니다
func NewRiskHandler(riskUseCase interfaces.RiskUseCase, internal echo.MiddlewareFunc, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{
		riskUseCase: riskUseCase,
		internal:    internal,
		logger:      logger,
	}
}

// RegisterRoutes는 Echo 라우터에 핸들러 경로를 등록합니다
func (h *RiskHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/risk/analyze", h.AnalyzeLogin, h.internal)
}

// AnalyzeLogin는 로그인 시도를 평가하고 권장 조치를 반환합니다
// @Summary 로그인 위험 분석
// @Description 로그인 시도를 기록하고 위험 점수, 사유, 권장 조치를 반환합니다
// @Tags risk
// @Accept json
// @Produce json
// @Param request body dto.LoginAttemptData true "로그인 시도"
// @Success 200 {object} dto.RiskAssessmentResult
// @Failure 400 {object} errors.ErrorBody
// @Failure 401 {object} errors.ErrorBody
// @Failure 500 {object} errors.ErrorBody
// @Param X-Internal-Key header string true "내부 호출자 공유 키"
// @Router /api/v1/risk/analyze [post]
func (h *RiskHandler) AnalyzeLogin(c echo.Context) error {
	var req dto.LoginAttemptData
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.IP == "" {
		req.IP = c.RealIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request().UserAgent()
	}

	result, err := h.riskUseCase.AnalyzeLogin(c.Request().Context(), &req)
	if err != nil {
		return fail(h.logger, c, err, "로그인 위험 분석 실패")
	}

	return c.JSON(http.StatusOK, result)
}
