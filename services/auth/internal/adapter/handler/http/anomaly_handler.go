package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/http/middleware"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// AnomalyHandler는 이상 징후 조회/처리와 감사 로그 조회 HTTP 핸들러입니다
type AnomalyHandler struct {
	anomalyUseCase  interfaces.AnomalyUseCase
	auditLogUseCase interfaces.AuditLogUseCase
	auth            echo.MiddlewareFunc
	logger          *zap.Logger
}

// NewAnomalyHandler는 새로운 AnomalyHandler 인스턴스를 생성합니다
func NewAnomalyHandler(
	anomalyUseCase interfaces.AnomalyUseCase,
	auditLogUseCase interfaces.AuditLogUseCase,
	auth echo.MiddlewareFunc,
	logger *zap.Logger,
) *AnomalyHandler {
	return &AnomalyHandler{
		anomalyUseCase:  anomalyUseCase,
		auditLogUseCase: auditLogUseCase,
		auth:            auth,
		logger:          logger,
	}
}

// RegisterRoutes는 Echo 라우터에 핸들러 경로를 등록합니다
func (h *AnomalyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/anomalies", h.ListPending, h.auth)
	g.POST("/anomalies/:id/resolve", h.Resolve, h.auth)
	g.GET("/audit-logs", h.ListAuditLogs, h.auth)
}

// ListPending는 현재 사용자의 미처리 이상 징후를 반환합니다
func (h *AnomalyHandler) ListPending(c echo.Context) error {
	records, err := h.anomalyUseCase.ListPending(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(h.logger, c, err, "이상 징후 조회 실패")
	}

	views := make([]*dto.AnomalyView, 0, len(records))
	for _, r := range records {
		views = append(views, dto.NewAnomalyView(r))
	}
	return c.JSON(http.StatusOK, views)
}

// Resolve는 이상 징후를 처리 완료로 표시합니다
func (h *AnomalyHandler) Resolve(c echo.Context) error {
	var req dto.ResolveAnomalyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	record, err := h.anomalyUseCase.Resolve(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Notes)
	if err != nil {
		return fail(h.logger, c, err, "이상 징후 처리 실패")
	}
	return c.JSON(http.StatusOK, dto.NewAnomalyView(record))
}

// ListAuditLogs는 현재 사용자의 감사 로그를 페이지 단위로 반환합니다
func (h *AnomalyHandler) ListAuditLogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	logs, total, err := h.auditLogUseCase.GetUserLogs(c.Request().Context(), middleware.UserID(c), page, limit)
	if err != nil {
		return fail(h.logger, c, err, "감사 로그 조회 실패")
	}

	views := make([]*dto.AuditLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, dto.NewAuditLogView(l))
	}
	return c.JSON(http.StatusOK, dto.AuditLogPage{Items: views, Total: total})
}
