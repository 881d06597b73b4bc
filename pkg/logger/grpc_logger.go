package logger

import (
	"context"
	"path"
	"time"

	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDMetadataKey 호출자가 전달하는 요청 id 메타데이터 키
const RequestIDMetadataKey = "x-request-id"

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
// 애플리케이션 에러는 gRPC 상태로 변환한 뒤 기록합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()

		resp, err := handler(ctx, req)
		err = apperrors.ToGRPCError(err)

		fields := grpcFields(ctx, info.FullMethod, err, time.Since(startTime))
		logGrpcResult(logger, "gRPC 요청", err, fields)
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트리밍 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()

		wrappedStream := &wrappedServerStream{ServerStream: ss}
		err := apperrors.ToGRPCError(handler(srv, wrappedStream))

		fields := append(grpcFields(ss.Context(), info.FullMethod, err, time.Since(startTime)),
			zap.Int("grpc.recv_count", wrappedStream.recvCount),
			zap.Int("grpc.send_count", wrappedStream.sendCount),
		)
		logGrpcResult(logger, "gRPC 스트림", err, fields)
		return err
	}
}

func grpcFields(ctx context.Context, fullMethod string, err error, duration time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.String("grpc.service", path.Dir(fullMethod)[1:]),
		zap.String("grpc.method", path.Base(fullMethod)),
		zap.String("grpc.code", status.Code(err).String()),
		zap.Duration("grpc.duration", duration),
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDMetadataKey); len(ids) > 0 {
			fields = append(fields, zap.String("request_id", ids[0]))
		}
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// logGrpcResult 호출자 잘못이나 취소는 Warn, 서버 오류는 Error로 기록합니다
func logGrpcResult(logger *zap.Logger, name string, err error, fields []zap.Field) {
	level := grpcLogLevel(status.Code(err))
	switch level {
	case zapcore.InfoLevel:
		logger.Info(name+" 완료", fields...)
	case zapcore.WarnLevel:
		logger.Warn(name+" 실패", fields...)
	default:
		logger.Error(name+" 오류", fields...)
	}
}

func grpcLogLevel(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK:
		return zapcore.InfoLevel
	case codes.Canceled, codes.DeadlineExceeded, codes.InvalidArgument, codes.NotFound,
		codes.AlreadyExists, codes.PermissionDenied, codes.Unauthenticated,
		codes.ResourceExhausted, codes.FailedPrecondition, codes.Aborted, codes.Unavailable:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// wrappedServerStream은 ServerStream을 래핑하여 메시지 송수신 횟수를 추적합니다.
type wrappedServerStream struct {
	grpc.ServerStream
	recvCount int
	sendCount int
}

func (w *wrappedServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	if err == nil {
		w.recvCount++
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sendCount++
	}
	return err
}

// ServerOptions는 로깅 인터셉터가 설정된 gRPC 서버 옵션을 반환합니다.
func ServerOptions(logger *zap.Logger) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.UnaryInterceptor(NewGrpcUnaryServerInterceptor(logger)),
		grpc.StreamInterceptor(NewGrpcStreamServerInterceptor(logger)),
	}
}
