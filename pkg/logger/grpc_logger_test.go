package logger

import (
	"context"
	"testing"

	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestGrpcUnaryInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	interceptor := NewGrpcUnaryServerInterceptor(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDMetadataKey, "req-7"))

	_, err := interceptor(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
		return nil, apperrors.NewAppError(apperrors.ErrRateLimited, "요청이 너무 많습니다", nil)
	})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = interceptor(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
		return nil, apperrors.New("db down")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "grpc.health.v1.Health", entries[0].ContextMap()["grpc.service"])
	assert.Equal(t, "Check", entries[0].ContextMap()["grpc.method"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestGrpcLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, grpcLogLevel(codes.OK))
	assert.Equal(t, zapcore.WarnLevel, grpcLogLevel(codes.FailedPrecondition))
	assert.Equal(t, zapcore.WarnLevel, grpcLogLevel(codes.Canceled))
	assert.Equal(t, zapcore.ErrorLevel, grpcLogLevel(codes.Internal))
	assert.Equal(t, zapcore.ErrorLevel, grpcLogLevel(codes.Unknown))
}
