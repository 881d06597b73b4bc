package interfaces

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
)

// MFAUseCase 인증 코드 유스케이스 인터페이스
type MFAUseCase interface {
	// SendCode 인증 코드 발송
	SendCode(ctx context.Context, req *dto.SendCodeRequest) (*dto.SendCodeResponse, error)

	// VerifyCode 인증 코드 검증. 성공하면 세션 토큰을 발급합니다
	VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error)

	// ResendCode 쿨다운 이후 인증 코드 재발송
	ResendCode(ctx context.Context, sessionID string) (*dto.SendCodeResponse, error)

	// CleanupExpired 만료된 인증 세션 삭제
	CleanupExpired(ctx context.Context) (int64, error)
}
