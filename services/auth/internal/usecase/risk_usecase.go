package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/service"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// RiskUseCase 로그인 위험 분석 유스케이스 구현체
type RiskUseCase struct {
	logger         *zap.Logger
	scorer         *service.RiskScorer
	unitOfWork     repository.UnitOfWork
	anomalyUseCase interfaces.AnomalyUseCase
	geoResolver    repository.GeoResolver
	deviceParser   repository.DeviceParser
	now            func() time.Time
}

// NewRiskUseCase 새 위험 분석 유스케이스 생성.
// geoResolver와 deviceParser는 nil일 수 있습니다.
func NewRiskUseCase(
	logger *zap.Logger,
	scorer *service.RiskScorer,
	unitOfWork repository.UnitOfWork,
	anomalyUseCase interfaces.AnomalyUseCase,
	geoResolver repository.GeoResolver,
	deviceParser repository.DeviceParser,
	clock func() time.Time,
) interfaces.RiskUseCase {
	return &RiskUseCase{
		logger:         logger,
		scorer:         scorer,
		unitOfWork:     unitOfWork,
		anomalyUseCase: anomalyUseCase,
		geoResolver:    geoResolver,
		deviceParser:   deviceParser,
		now:            clockOrNow(clock),
	}
}

// AnalyzeLogin 로그인 시도를 평가하고 시도, 기준선, 이상 징후를 한 트랜잭션으로 저장합니다
func (uc *RiskUseCase) AnalyzeLogin(ctx context.Context, data *dto.LoginAttemptData) (*dto.RiskAssessmentResult, error) {
	if data == nil || (data.Email == "" && (data.UserID == nil || *data.UserID == "")) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "이메일 또는 사용자 ID가 필요합니다", nil)
	}

	at := data.OccurredAt
	if at.IsZero() {
		at = uc.now()
	}
	attempt := data.ToEntity(uuid.NewString(), at)
	uc.enrich(attempt)

	var (
		assessment *entity.RiskAssessment
		anomaly    *entity.AnomalyRecord
	)

	err := uc.unitOfWork.WithinTransaction(ctx, func(ctx context.Context, tx *repository.TxRepositories) error {
		if err := tx.LoginAttempt.Create(ctx, attempt); err != nil {
			return fmt.Errorf("로그인 시도 저장 실패: %w", err)
		}

		signals, err := uc.collectSignals(ctx, tx.LoginAttempt, attempt)
		if err != nil {
			return err
		}

		var baseline *entity.UserBehaviorBaseline
		if attempt.HasUser() {
			baseline, err = tx.Baseline.FindByUserID(ctx, *attempt.UserID)
			if err != nil {
				return fmt.Errorf("기준선 조회 실패: %w", err)
			}
		}

		assessment = uc.scorer.Assess(attempt, baseline, signals)
		attempt.ApplyAssessment(assessment)
		if err := tx.LoginAttempt.UpdateAssessment(ctx, attempt); err != nil {
			return fmt.Errorf("위험 평가 저장 실패: %w", err)
		}

		// 사용자가 확인된 모든 시도가 기준선을 만들거나 갱신합니다
		if attempt.HasUser() {
			if baseline == nil {
				baseline = entity.NewUserBehaviorBaseline(uuid.NewString(), *attempt.UserID, at)
			}
			baseline.Observe(attempt, uc.scorer.LocalTime(at))
			if err := tx.Baseline.Save(ctx, baseline); err != nil {
				return fmt.Errorf("기준선 저장 실패: %w", err)
			}
		}

		if assessment.IsAnomalous {
			anomaly, err = uc.anomalyUseCase.Record(ctx, tx, attempt, assessment)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.TrackError("analyze_login")
		uc.logger.Error("로그인 위험 분석 실패",
			zap.String("email", data.Email),
			zap.String("ip", data.IP),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.TrackRiskAssessment(string(assessment.RecommendedAction), assessment.RiskScore)
	uc.logger.Info("로그인 위험 분석 완료",
		zap.String("attempt_id", attempt.ID),
		zap.String("ip", attempt.IP),
		zap.Int("risk_score", assessment.RiskScore),
		zap.Strings("reasons", assessment.Reasons),
		zap.String("action", string(assessment.RecommendedAction)),
	)

	result := dto.NewRiskAssessmentResult(attempt.ID, assessment)
	if anomaly != nil {
		result.AnomalyID = anomaly.ID
		uc.anomalyUseCase.Alert(ctx, anomaly)
	}
	return result, nil
}

// collectSignals 현재 시도를 포함한 최근 시도 수와 같은 IP의 실패 수를 집계합니다
func (uc *RiskUseCase) collectSignals(ctx context.Context, repo repository.LoginAttemptRepository, attempt *entity.LoginAttempt) (service.RiskSignals, error) {
	var signals service.RiskSignals
	var err error

	velocitySince := attempt.CreatedAt.Add(-service.VelocityWindow)
	if attempt.HasUser() {
		signals.RecentAttempts, err = repo.CountByUserSince(ctx, *attempt.UserID, velocitySince)
	} else if attempt.Email != "" {
		signals.RecentAttempts, err = repo.CountByEmailSince(ctx, attempt.Email, velocitySince)
	}
	if err != nil {
		return signals, fmt.Errorf("최근 시도 집계 실패: %w", err)
	}

	if !attempt.IsSuccessful && attempt.IP != "" {
		signals.RecentIPFailures, err = repo.CountFailedByIPSince(ctx, attempt.IP, attempt.CreatedAt.Add(-service.FailureWindow))
		if err != nil {
			return signals, fmt.Errorf("IP 실패 집계 실패: %w", err)
		}
	}
	return signals, nil
}

// enrich 요청에 없는 위치와 기기 정보를 IP와 User-Agent로 채웁니다
func (uc *RiskUseCase) enrich(attempt *entity.LoginAttempt) {
	if !attempt.Location.Known() && attempt.IP != "" && uc.geoResolver != nil {
		loc, err := uc.geoResolver.Resolve(attempt.IP)
		if err != nil {
			uc.logger.Debug("IP 위치 조회 실패", zap.String("ip", attempt.IP), zap.Error(err))
		} else {
			attempt.Location = loc
		}
	}

	if attempt.UserAgent != "" && uc.deviceParser != nil {
		parsed := uc.deviceParser.Parse(attempt.UserAgent)
		if attempt.Device.Type == "" {
			attempt.Device.Type = parsed.Type
		}
		if attempt.Device.OS == "" {
			attempt.Device.OS = parsed.OS
		}
		if attempt.Device.Browser == "" {
			attempt.Device.Browser = parsed.Browser
		}
	}
}
