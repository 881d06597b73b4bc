package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkglogger "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/logger"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/adapter/handler/http"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/adapter/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/config"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/db"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/device"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/geolite"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/grpc"
	httpserver "github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/http"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/http/middleware"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/mail"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/notify"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/ratelimit"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/worker"
	appinit "github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/init"
	"go.uber.org/zap"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		pkglogger.DefaultZapLogger().Fatal("설정 로드 실패", zap.Error(err))
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("인증 보안 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	// 3. 인프라스트럭처 초기화
	infrastructure, err := db.NewInfrastructure(cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer infrastructure.Close()

	// 4. 레포지토리 초기화
	rateLimiter := ratelimit.NewRedisRateLimiter(infrastructure.RedisClient, 0, logger)
	repositories := repository.InitRepositories(infrastructure.DB, rateLimiter)

	// 5. 외부 채널 어댑터 초기화
	collaborators := newCollaborators(cfg, infrastructure, logger)

	// 6. 유스케이스 초기화
	useCases := appinit.NewUseCases(cfg, repositories, collaborators, logger, time.Now)

	// 7. HTTP 서버 설정
	httpConfig := httpserver.Config{
		Port:           cfg.Server.HTTP.Port,
		Timeout:        cfg.Server.HTTP.Timeout,
		Debug:          cfg.Server.HTTP.Debug,
		CookieSecret:   cfg.Session.CookieSecret,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}

	// 8. HTTP 서버 생성 및 라우트 등록
	httpServer := httpserver.NewServer(httpConfig, logger)
	auth := middleware.NewSessionMiddleware(useCases.SessionUseCase, logger).Handle()
	internal := middleware.NewInternalKeyMiddleware(cfg.Internal.APIKey, logger)
	if cfg.Internal.APIKey == "" {
		logger.Warn("internal.api_key가 비어 있어 위험 분석 API 호출이 모두 거부됩니다")
	}
	cookie := middleware.CookieOptions{
		MaxAge: cfg.Session.TimeoutHours * 3600,
		Secure: cfg.Session.CookieSecure,
	}
	httpServer.RegisterRoutes(
		http.NewRiskHandler(useCases.RiskUseCase, internal, logger),
		http.NewMFAHandler(useCases.MFAUseCase, cookie, logger),
		http.NewSessionHandler(useCases.SessionUseCase, auth, logger),
		http.NewAnomalyHandler(useCases.AnomalyUseCase, useCases.AuditLogUseCase, auth, logger),
	)

	// 9. gRPC 서버 생성
	grpcServer := grpc.NewServer(grpc.Config{
		Port:    cfg.Server.GRPC.Port,
		Timeout: cfg.Server.GRPC.Timeout,
	}, logger)

	// 10. 정리 작업 시작
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanup := worker.NewCleanupWorker(logger, useCases.MFAUseCase, useCases.SessionUseCase, cfg.CleanupInterval())
	go func() {
		_ = cleanup.Run(ctx)
	}()

	// 11. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 종료", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Error("gRPC 서버 종료", zap.Error(err))
		}
	}()

	// 12. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	cancel()

	// 서버 종료
	if err := httpServer.Stop(); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}

	grpcServer.Stop()

	if closer, ok := collaborators.GeoResolver.(*geolite.Resolver); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("GeoIP 데이터베이스 종료 오류", zap.Error(err))
		}
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}

// newCollaborators 알림 / 코드 전달 / 부가 정보 어댑터를 생성합니다
func newCollaborators(cfg *config.Config, infra *db.Infrastructure, logger *zap.Logger) appinit.Collaborators {
	smtpClient := mail.NewSMTPClient(mail.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.SenderEmail,
		FromName: cfg.Email.SenderName,
	}, logger)
	templates := mail.NewEmailTemplateService(cfg.Email.SenderEmail, cfg.Email.SenderName)

	collab := appinit.Collaborators{
		AlertDispatcher: notify.NewAlertDispatcher(infra.Messaging, cfg.Alert.Channel, logger),
		EventPublisher:  notify.NewEventPublisher(infra.Messaging, cfg.Alert.EventChannel, logger),
		CodeDelivery: notify.NewCodeDelivery(
			notify.CodeDeliveryConfig{
				SMSChannel:   cfg.Alert.SMSChannel,
				CodeValidity: time.Duration(cfg.MFA.CodeValiditySeconds) * time.Second,
				ServiceName:  cfg.Email.SenderName,
			},
			smtpClient,
			templates,
			infra.Messaging,
			logger,
			time.Now,
		),
		DeviceParser: device.NewParser(),
	}

	// GeoIP 데이터베이스는 선택 사항입니다
	if path := cfg.GeoIP.DatabasePath; path != "" {
		resolver, err := geolite.Open(path)
		if err != nil {
			logger.Warn("GeoIP 데이터베이스를 열 수 없어 위치 조회를 비활성화합니다",
				zap.String("path", path),
				zap.Error(err),
			)
		} else {
			collab.GeoResolver = resolver
		}
	}

	return collab
}
