package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/logger"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
	config  Config
}

// Config HTTP 서버 설정
type Config struct {
	Port           string
	Timeout        int
	Debug          bool
	CookieSecret   string
	MetricsEnabled bool
	MetricsPath    string
}

// RouteRegistrar /api/v1 그룹에 라우트를 등록하는 핸들러
type RouteRegistrar interface {
	RegisterRoutes(g *echo.Group)
}

// NewServer HTTP 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	// Echo 인스턴스 생성
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	// 기본 미들웨어 설정
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// 로그 미들웨어 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))

	// 메트릭 미들웨어
	if cfg.MetricsEnabled {
		e.Use(metrics.Middleware())
	}

	// 세션 쿠키 저장소
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.CookieSecret))))

	// Echo 로거 설정
	logger.WithEchoLogger(e, zapLogger)

	// HTTP 서버 주소 설정
	address := fmt.Sprintf(":%s", cfg.Port)

	// HTTP 서버 설정
	server := &http.Server{
		Addr:         address,
		ReadTimeout:  time.Duration(cfg.Timeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeout) * time.Second,
	}

	return &Server{
		router:  e,
		server:  server,
		logger:  zapLogger,
		address: address,
		config:  cfg,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes HTTP 라우트 등록
func (s *Server) RegisterRoutes(registrars ...RouteRegistrar) {
	// 헬스 체크
	s.router.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// 프로메테우스 메트릭
	if s.config.MetricsEnabled {
		path := s.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.router.GET(path, echo.WrapHandler(promhttp.Handler()))
	}

	// API 버전 그룹
	v1 := s.router.Group("/api/v1")
	for _, r := range registrars {
		r.RegisterRoutes(v1)
	}
}

// Start HTTP 서버 시작
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작",
		zap.String("address", s.address),
	)

	// 서버 시작
	s.server.Handler = s.router
	return s.router.StartServer(s.server)
}

// Stop HTTP 서버 종료
func (s *Server) Stop() error {
	s.logger.Info("HTTP 서버 종료 중...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
