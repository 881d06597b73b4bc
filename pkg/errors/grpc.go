package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPCError는 에러를 gRPC status 에러로 변환합니다
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// 이미 status 에러인 경우 그대로 반환
	if _, ok := status.FromError(err); ok {
		return err
	}

	var appErr *AppError
	if As(err, &appErr) {
		_, grpcCode := GetCodeMapping(appErr.Code())
		return status.Error(codes.Code(grpcCode), appErr.Message())
	}

	return status.Error(codes.Internal, err.Error())
}
