package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"go.uber.org/zap"
)

// bindJSON 요청 본문을 바인딩합니다. 실패하면 400 에러를 반환합니다
func bindJSON(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorBody{
			Code:    apperrors.ErrInvalidArgument,
			Message: "요청 형식이 올바르지 않습니다",
		})
	}
	return nil
}

// fail 유스케이스 에러를 HTTP 에러로 변환합니다. 예상하지 못한 에러는 로그를 남깁니다
func fail(logger *zap.Logger, c echo.Context, err error, msg string) error {
	if !apperrors.IsExpected(err) {
		apperrors.LogError(logger, err, msg,
			zap.String("path", c.Path()),
			zap.String("ip", c.RealIP()),
		)
	}
	return apperrors.ToHTTPError(err)
}
