package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/constants"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// MFAConfig 인증 코드 관련 설정
type MFAConfig struct {
	CodeValidity   time.Duration // 코드 유효 시간
	ResendCooldown time.Duration // 재발송 대기 시간
	MaxAttempts    int           // 세션당 최대 검증 시도
	SendRateLimit  int           // IP당 발송 허용 횟수
	CodeSecret     string        // 코드 해시 비밀키
}

func (c MFAConfig) withDefaults() MFAConfig {
	if c.CodeValidity <= 0 {
		c.CodeValidity = constants.DefaultCodeValidity
	}
	if c.ResendCooldown <= 0 {
		c.ResendCooldown = constants.DefaultResendCooldown
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = constants.DefaultMaxAttempts
	}
	if c.SendRateLimit <= 0 {
		c.SendRateLimit = constants.DefaultSendRateLimit
	}
	return c
}

// MFAUseCase 인증 코드 유스케이스 구현체
type MFAUseCase struct {
	logger               *zap.Logger
	config               MFAConfig
	hasher               *CodeHasher
	userRepository       repository.UserRepository
	otpSessionRepository repository.OtpSessionRepository
	rateLimiter          repository.RateLimiter
	codeDelivery         repository.CodeDelivery
	sessionUseCase       interfaces.SessionUseCase
	auditLogUseCase      interfaces.AuditLogUseCase
	now                  func() time.Time
}

// NewMFAUseCase 새 인증 코드 유스케이스 생성
func NewMFAUseCase(
	logger *zap.Logger,
	config MFAConfig,
	userRepo repository.UserRepository,
	otpSessionRepo repository.OtpSessionRepository,
	rateLimiter repository.RateLimiter,
	codeDelivery repository.CodeDelivery,
	sessionUseCase interfaces.SessionUseCase,
	auditLogUseCase interfaces.AuditLogUseCase,
	clock func() time.Time,
) interfaces.MFAUseCase {
	config = config.withDefaults()
	return &MFAUseCase{
		logger:               logger,
		config:               config,
		hasher:               NewCodeHasher(config.CodeSecret),
		userRepository:       userRepo,
		otpSessionRepository: otpSessionRepo,
		rateLimiter:          rateLimiter,
		codeDelivery:         codeDelivery,
		sessionUseCase:       sessionUseCase,
		auditLogUseCase:      auditLogUseCase,
		now:                  clockOrNow(clock),
	}
}

// SendCode 사용자의 인증 세션을 새로 만들고 코드를 발송합니다
func (uc *MFAUseCase) SendCode(ctx context.Context, req *dto.SendCodeRequest) (*dto.SendCodeResponse, error) {
	allowed, err := uc.rateLimiter.CanAttempt(ctx, req.IP, constants.ActionMFASend, uc.config.SendRateLimit)
	if err != nil {
		uc.logger.Error("요청 제한 확인 실패", zap.String("ip", req.IP), zap.Error(err))
		return nil, err
	}
	if !allowed {
		uc.logger.Warn("인증 코드 발송 요청 제한", zap.String("ip", req.IP))
		return nil, entity.ErrRateLimited
	}

	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error("사용자 조회 실패", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	if user == nil {
		uc.recordAttempt(ctx, req.IP, constants.ActionMFASend, false)
		return nil, entity.ErrUserNotFound
	}

	method, ok := entity.ParseMFAMethod(req.Method)
	if !ok {
		return nil, entity.ErrUnsupportedMethod
	}
	if user.PreferredMFAMethod != "" && user.PreferredMFAMethod != method {
		uc.recordAttempt(ctx, req.IP, constants.ActionMFASend, false)
		return nil, entity.ErrMethodMismatch
	}

	code, err := GenerateNumericCode(constants.CodeDigits)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	session := &entity.OtpSession{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Email:       user.Email,
		CodeHash:    uc.hasher.Hash(code),
		Method:      method,
		CreatedAt:   now,
		ExpiresAt:   now.Add(uc.config.CodeValidity),
		MaxAttempts: uc.config.MaxAttempts,
	}
	if err := uc.otpSessionRepository.ReplaceForUser(ctx, session); err != nil {
		uc.logger.Error("인증 세션 저장 실패", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	if err := uc.deliver(ctx, user, code, method); err != nil {
		return nil, err
	}

	uc.recordAttempt(ctx, req.IP, constants.ActionMFASend, true)
	metrics.TrackMFASent(string(method), "send")
	uc.auditLogUseCase.AddLog(ctx, user.ID, entity.AuditLogTypeMFACodeSent, map[string]interface{}{
		"session_id": session.ID,
		"method":     string(method),
		"ip":         req.IP,
	})

	uc.logger.Info("인증 코드 발송",
		zap.String("user_id", user.ID),
		zap.String("session_id", session.ID),
		zap.String("method", string(method)),
	)

	return uc.sendResponse(session, "인증 코드가 발송되었습니다"), nil
}

// VerifyCode 인증 코드를 검증하고 성공하면 로그인 세션을 발급합니다
func (uc *MFAUseCase) VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error) {
	session, err := uc.findSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(session.Email, strings.TrimSpace(req.Email)) {
		metrics.TrackMFAVerification("rejected")
		return nil, entity.ErrEmailMismatch
	}

	now := uc.now()
	if err := uc.checkVerifiable(session, now); err != nil {
		metrics.TrackMFAVerification("rejected")
		return nil, err
	}

	if !IsNumericCode(req.Code, constants.CodeDigits) {
		return nil, entity.ErrInvalidCodeFormat
	}

	if !uc.hasher.Matches(req.Code, session.CodeHash) {
		return uc.handleMismatch(ctx, req, session)
	}

	used, err := uc.otpSessionRepository.MarkUsed(ctx, session.ID, session.CodeHash, now)
	if err != nil {
		uc.logger.Error("인증 세션 갱신 실패", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	if !used {
		current, err := uc.findSession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if err := uc.checkVerifiable(current, now); err != nil {
			metrics.TrackMFAVerification("rejected")
			return nil, err
		}
		// 검증 도중 코드가 재발급되었으면 이전 코드는 틀린 코드로 처리합니다
		return uc.handleMismatch(ctx, req, current)
	}
	session.MarkUsed(now)

	token, err := uc.sessionUseCase.CreateSession(ctx, &dto.CreateSessionInput{
		UserID:            session.UserID,
		IP:                req.IP,
		UserAgent:         req.UserAgent,
		DeviceFingerprint: req.DeviceFingerprint,
		Location:          req.Location,
	})
	if err != nil {
		return nil, err
	}

	uc.recordAttempt(ctx, req.IP, constants.ActionMFAVerify, true)
	metrics.TrackMFAVerification("success")
	uc.auditLogUseCase.AddLog(ctx, session.UserID, entity.AuditLogTypeMFAVerified, map[string]interface{}{
		"session_id": session.ID,
		"ip":         req.IP,
	})

	return &dto.VerifyCodeResponse{
		Success:           true,
		Message:           "인증되었습니다",
		AccessToken:       token,
		RemainingAttempts: session.RemainingAttempts(),
	}, nil
}

// handleMismatch 틀린 코드의 시도 횟수를 기록하고 최대 횟수에 도달하면 세션을 차단합니다
func (uc *MFAUseCase) handleMismatch(ctx context.Context, req *dto.VerifyCodeRequest, session *entity.OtpSession) (*dto.VerifyCodeResponse, error) {
	now := uc.now()
	updated, err := uc.otpSessionRepository.RecordFailure(ctx, session.ID, now)
	if err != nil {
		uc.logger.Error("인증 세션 갱신 실패", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		metrics.TrackMFAVerification("rejected")
		return nil, uc.currentStateError(ctx, session.ID, now)
	}
	session = updated
	locked := session.IsBlocked

	uc.recordAttempt(ctx, req.IP, constants.ActionMFAVerify, false)

	resp := &dto.VerifyCodeResponse{
		Success:           false,
		Message:           fmt.Sprintf("인증 코드가 올바르지 않습니다. 남은 시도 횟수: %d", session.RemainingAttempts()),
		RemainingAttempts: session.RemainingAttempts(),
		IsLocked:          locked,
	}

	if locked {
		lockedUntil := session.ExpiresAt
		resp.LockedUntil = &lockedUntil
		resp.Message = "시도 횟수를 초과했습니다. 새 인증 코드를 요청해주세요"
		metrics.TrackMFAVerification("locked")
		uc.auditLogUseCase.AddLog(ctx, session.UserID, entity.AuditLogTypeMFABlocked, map[string]interface{}{
			"session_id": session.ID,
			"ip":         req.IP,
		})
		uc.logger.Warn("인증 세션 차단", zap.String("session_id", session.ID), zap.String("ip", req.IP))
	} else {
		metrics.TrackMFAVerification("mismatch")
	}

	return resp, nil
}

// ResendCode 쿨다운이 지난 세션에 새 코드를 발급합니다
func (uc *MFAUseCase) ResendCode(ctx context.Context, sessionID string) (*dto.SendCodeResponse, error) {
	session, err := uc.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	switch {
	case session.IsUsed:
		return nil, entity.ErrCodeAlreadyUsed
	case session.IsExpired(now):
		return nil, entity.ErrCodeExpired
	}

	if err := uc.checkCooldown(session, now); err != nil {
		return nil, err
	}

	user, err := uc.userRepository.FindByID(ctx, session.UserID)
	if err != nil {
		uc.logger.Error("사용자 조회 실패", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	code, err := GenerateNumericCode(constants.CodeDigits)
	if err != nil {
		return nil, err
	}

	session.Reissue(uc.hasher.Hash(code), now, uc.config.CodeValidity)
	reissued, err := uc.otpSessionRepository.Reissue(ctx, session, now.Add(-uc.config.ResendCooldown))
	if err != nil {
		uc.logger.Error("인증 세션 갱신 실패", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	if !reissued {
		// 다른 요청이 먼저 검증했거나 재발송했습니다
		return nil, uc.resendStateError(ctx, session.ID, now)
	}

	if err := uc.deliver(ctx, user, code, session.Method); err != nil {
		return nil, err
	}

	metrics.TrackMFASent(string(session.Method), "resend")
	uc.auditLogUseCase.AddLog(ctx, user.ID, entity.AuditLogTypeMFACodeResent, map[string]interface{}{
		"session_id": session.ID,
		"method":     string(session.Method),
	})

	return uc.sendResponse(session, "인증 코드가 재발송되었습니다"), nil
}

// CleanupExpired 만료된 인증 세션 삭제
func (uc *MFAUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := uc.otpSessionRepository.DeleteExpired(ctx, uc.now())
	if err != nil {
		uc.logger.Error("만료된 인증 세션 삭제 실패", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		uc.logger.Info("만료된 인증 세션 삭제", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func (uc *MFAUseCase) findSession(ctx context.Context, sessionID string) (*entity.OtpSession, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, entity.ErrInvalidSession
	}

	session, err := uc.otpSessionRepository.FindByID(ctx, id.String())
	if err != nil {
		uc.logger.Error("인증 세션 조회 실패", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if session == nil {
		return nil, entity.ErrOtpSessionNotFound
	}
	return session, nil
}

// checkVerifiable 사용됨, 만료, 차단 순서로 검증 가능 여부를 확인합니다
func (uc *MFAUseCase) checkVerifiable(session *entity.OtpSession, now time.Time) error {
	switch {
	case session.IsUsed:
		return entity.ErrCodeAlreadyUsed
	case session.IsExpired(now):
		return entity.ErrCodeExpired
	case session.IsBlocked:
		return entity.ErrCodeBlocked
	}
	return nil
}

func (uc *MFAUseCase) checkCooldown(session *entity.OtpSession, now time.Time) error {
	if next := session.CreatedAt.Add(uc.config.ResendCooldown); now.Before(next) {
		msg := fmt.Sprintf("%s 이후에 다시 요청할 수 있습니다", next.UTC().Format(time.RFC3339))
		return apperrors.NewAppError(apperrors.ErrCooldownActive, msg, nil)
	}
	return nil
}

// currentStateError 조건부 갱신이 실패했을 때 저장된 상태로 거부 사유를 결정합니다
func (uc *MFAUseCase) currentStateError(ctx context.Context, sessionID string, now time.Time) error {
	current, err := uc.findSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := uc.checkVerifiable(current, now); err != nil {
		return err
	}
	return entity.ErrCodeAlreadyUsed
}

func (uc *MFAUseCase) resendStateError(ctx context.Context, sessionID string, now time.Time) error {
	current, err := uc.findSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if current.IsUsed {
		return entity.ErrCodeAlreadyUsed
	}
	if err := uc.checkCooldown(current, now); err != nil {
		return err
	}
	return entity.ErrCodeExpired
}

func (uc *MFAUseCase) deliver(ctx context.Context, user *entity.User, code string, method entity.MFAMethod) error {
	if err := uc.codeDelivery.Send(ctx, user, code, method); err != nil {
		uc.logger.Error("인증 코드 전달 실패",
			zap.String("user_id", user.ID),
			zap.String("method", string(method)),
			zap.Error(err),
		)
		return apperrors.NewAppError(apperrors.ErrInternal, "인증 코드 전달에 실패했습니다", err)
	}
	return nil
}

// recordAttempt 요청 제한 기록. 실패해도 요청은 계속 진행합니다
func (uc *MFAUseCase) recordAttempt(ctx context.Context, ip, action string, success bool) {
	if err := uc.rateLimiter.RecordAttempt(ctx, ip, action, success); err != nil {
		uc.logger.Warn("요청 제한 기록 실패",
			zap.String("ip", ip),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (uc *MFAUseCase) sendResponse(session *entity.OtpSession, message string) *dto.SendCodeResponse {
	return &dto.SendCodeResponse{
		Success:           true,
		SessionID:         session.ID,
		Message:           message,
		ExpiresAt:         session.ExpiresAt,
		RemainingAttempts: session.RemainingAttempts(),
		CanResend:         false,
		NextResendAt:      session.CreatedAt.Add(uc.config.ResendCooldown),
	}
}
