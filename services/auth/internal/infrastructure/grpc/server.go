package grpc

import (
	"fmt"
	"net"

	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 헬스 체크에 등록하는 서비스 이름
const ServiceName = "auth.security"

// Server gRPC 서버 구조체
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// Config gRPC 서버 설정
type Config struct {
	Port    string
	Timeout int
}

// NewServer gRPC 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	// gRPC 서버 생성 (요청 로깅 인터셉터 포함)
	server := grpc.NewServer(logger.ServerOptions(zapLogger)...)

	// 헬스 체크 서비스 등록
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// 서버 리플렉션 설정
	reflection.Register(server)

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
	}
}

// Start gRPC 서버 시작
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC 서버 리스너 생성 실패: %w", err)
	}

	s.logger.Info("gRPC 서버 시작",
		zap.String("address", s.address),
	)

	return s.server.Serve(listener)
}

// Stop gRPC 서버 중지. 헬스 상태를 먼저 NOT_SERVING으로 바꿉니다
func (s *Server) Stop() {
	s.logger.Info("gRPC 서버 종료 중...")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC 서버 종료 완료")
}
