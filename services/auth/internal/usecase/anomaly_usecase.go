package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/service"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/infrastructure/metrics"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// pendingListLimit 미처리 이상 징후 조회 최대 건수
const pendingListLimit = 100

// AnomalyUseCase 이상 징후 기록 유스케이스 구현체
type AnomalyUseCase struct {
	logger            *zap.Logger
	anomalyRepository repository.AnomalyRepository
	alertDispatcher   repository.AlertDispatcher
	auditLogUseCase   interfaces.AuditLogUseCase
	operators         map[string]struct{}
	now               func() time.Time
}

// NewAnomalyUseCase 새 이상 징후 유스케이스 생성.
// operators는 다른 사용자의 이상 징후도 처리할 수 있는 운영자 id 목록입니다.
func NewAnomalyUseCase(
	logger *zap.Logger,
	anomalyRepo repository.AnomalyRepository,
	alertDispatcher repository.AlertDispatcher,
	auditLogUseCase interfaces.AuditLogUseCase,
	operators []string,
	clock func() time.Time,
) interfaces.AnomalyUseCase {
	operatorSet := make(map[string]struct{}, len(operators))
	for _, id := range operators {
		if id != "" {
			operatorSet[id] = struct{}{}
		}
	}
	return &AnomalyUseCase{
		logger:            logger,
		anomalyRepository: anomalyRepo,
		alertDispatcher:   alertDispatcher,
		auditLogUseCase:   auditLogUseCase,
		operators:         operatorSet,
		now:               clockOrNow(clock),
	}
}

// Record 이상 징후를 pending 상태로 저장합니다
func (uc *AnomalyUseCase) Record(ctx context.Context, tx *repository.TxRepositories, attempt *entity.LoginAttempt, assessment *entity.RiskAssessment) (*entity.AnomalyRecord, error) {
	record := &entity.AnomalyRecord{
		ID:             uuid.NewString(),
		LoginAttemptID: attempt.ID,
		Severity:       assessment.Severity,
		RiskScore:      assessment.RiskScore,
		Type:           service.ClassifyAnomaly(assessment.Reasons),
		Description:    service.DescribeReasons(assessment.Reasons),
		Reasons:        append([]string(nil), assessment.Reasons...),
		Status:         entity.AnomalyStatusPending,
		CreatedAt:      uc.now(),
	}
	if attempt.HasUser() {
		record.UserID = *attempt.UserID
	}

	repo := uc.anomalyRepository
	if tx != nil && tx.Anomaly != nil {
		repo = tx.Anomaly
	}
	if err := repo.Create(ctx, record); err != nil {
		uc.logger.Error("이상 징후 저장 실패",
			zap.String("login_attempt_id", attempt.ID),
			zap.Int("risk_score", assessment.RiskScore),
			zap.Error(err),
		)
		return nil, fmt.Errorf("이상 징후 저장 실패: %w", err)
	}

	metrics.TrackAnomaly(record.Severity.String())
	return record, nil
}

// Alert 심각도 3 이상이면 보안 경고를 발송합니다
func (uc *AnomalyUseCase) Alert(ctx context.Context, record *entity.AnomalyRecord) {
	if record == nil || !record.RequiresAlert() {
		return
	}

	alert := &entity.SecurityAlert{
		UserID:         record.UserID,
		Type:           entity.SecurityEventLoginAnomaly,
		Severity:       record.Severity.String(),
		Title:          fmt.Sprintf("이상 로그인 감지 (%s)", record.Type),
		Message:        record.Description,
		RequiresAction: record.RequiresAction(),
		CreatedAt:      uc.now(),
	}

	if err := uc.alertDispatcher.SendAlert(ctx, alert); err != nil {
		uc.logger.Warn("보안 경고 발송 실패",
			zap.String("anomaly_id", record.ID),
			zap.String("user_id", record.UserID),
			zap.Error(err),
		)
		return
	}

	uc.logger.Info("보안 경고 발송",
		zap.String("anomaly_id", record.ID),
		zap.String("user_id", record.UserID),
		zap.String("severity", alert.Severity),
	)
}

// Resolve 이상 징후 처리 완료
func (uc *AnomalyUseCase) Resolve(ctx context.Context, anomalyID, resolverID, notes string) (*entity.AnomalyRecord, error) {
	record, err := uc.anomalyRepository.FindByID(ctx, anomalyID)
	if err != nil {
		uc.logger.Error("이상 징후 조회 실패", zap.String("anomaly_id", anomalyID), zap.Error(err))
		return nil, err
	}
	if record == nil {
		return nil, entity.ErrAnomalyNotFound
	}
	if !uc.canResolve(record, resolverID) {
		uc.logger.Warn("권한 없는 이상 징후 처리 시도",
			zap.String("anomaly_id", anomalyID),
			zap.String("resolver_id", resolverID),
		)
		return nil, entity.ErrAnomalyForbidden
	}

	if err := record.Resolve(resolverID, notes, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.anomalyRepository.Update(ctx, record); err != nil {
		uc.logger.Error("이상 징후 처리 저장 실패", zap.String("anomaly_id", anomalyID), zap.Error(err))
		return nil, err
	}

	uc.auditLogUseCase.AddLog(ctx, record.UserID, entity.AuditLogTypeAnomalyResolved, map[string]interface{}{
		"anomaly_id":  record.ID,
		"resolved_by": resolverID,
	})

	return record, nil
}

// canResolve 본인 기록이거나 운영자일 때만 처리할 수 있습니다. 사용자가 없는 기록은 운영자 전용입니다.
func (uc *AnomalyUseCase) canResolve(record *entity.AnomalyRecord, resolverID string) bool {
	if resolverID == "" {
		return false
	}
	if _, ok := uc.operators[resolverID]; ok {
		return true
	}
	return record.UserID != "" && record.UserID == resolverID
}

// ListPending 사용자의 미처리 이상 징후 목록
func (uc *AnomalyUseCase) ListPending(ctx context.Context, userID string) ([]*entity.AnomalyRecord, error) {
	records, err := uc.anomalyRepository.ListByUser(ctx, userID, entity.AnomalyStatusPending, pendingListLimit)
	if err != nil {
		uc.logger.Error("이상 징후 목록 조회 실패", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return records, nil
}
