package http

import (
	"context"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/stretchr/testify/mock"
)

type mockRiskUseCase struct {
	mock.Mock
}

func (m *mockRiskUseCase) AnalyzeLogin(ctx context.Context, data *dto.LoginAttemptData) (*dto.RiskAssessmentResult, error) {
	args := m.Called(ctx, data)
	result, _ := args.Get(0).(*dto.RiskAssessmentResult)
	return result, args.Error(1)
}

type mockMFAUseCase struct {
	mock.Mock
}

func (m *mockMFAUseCase) SendCode(ctx context.Context, req *dto.SendCodeRequest) (*dto.SendCodeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.SendCodeResponse)
	return resp, args.Error(1)
}

func (m *mockMFAUseCase) VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.VerifyCodeResponse)
	return resp, args.Error(1)
}

func (m *mockMFAUseCase) ResendCode(ctx context.Context, sessionID string) (*dto.SendCodeResponse, error) {
	args := m.Called(ctx, sessionID)
	resp, _ := args.Get(0).(*dto.SendCodeResponse)
	return resp, args.Error(1)
}

func (m *mockMFAUseCase) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) CreateSession(ctx context.Context, input *dto.CreateSessionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *mockSessionUseCase) ValidateSession(ctx context.Context, token string) (*entity.UserSession, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entity.UserSession)
	return s, args.Error(1)
}

func (m *mockSessionUseCase) UpdateActivity(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionUseCase) RevokeSession(ctx context.Context, token, reason string) error {
	return m.Called(ctx, token, reason).Error(0)
}

func (m *mockSessionUseCase) RevokeAllOtherSessions(ctx context.Context, userID, exceptToken string) (int64, error) {
	args := m.Called(ctx, userID, exceptToken)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionUseCase) DetectSuspiciousActivity(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionUseCase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionUseCase) ListActiveSessions(ctx context.Context, userID string) ([]*entity.UserSession, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*entity.UserSession)
	return list, args.Error(1)
}

type mockAnomalyUseCase struct {
	mock.Mock
}

func (m *mockAnomalyUseCase) Record(ctx context.Context, tx *repository.TxRepositories, attempt *entity.LoginAttempt, assessment *entity.RiskAssessment) (*entity.AnomalyRecord, error) {
	args := m.Called(ctx, tx, attempt, assessment)
	r, _ := args.Get(0).(*entity.AnomalyRecord)
	return r, args.Error(1)
}

func (m *mockAnomalyUseCase) Alert(ctx context.Context, record *entity.AnomalyRecord) {
	m.Called(ctx, record)
}

func (m *mockAnomalyUseCase) Resolve(ctx context.Context, anomalyID, resolverID, notes string) (*entity.AnomalyRecord, error) {
	args := m.Called(ctx, anomalyID, resolverID, notes)
	r, _ := args.Get(0).(*entity.AnomalyRecord)
	return r, args.Error(1)
}

func (m *mockAnomalyUseCase) ListPending(ctx context.Context, userID string) ([]*entity.AnomalyRecord, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*entity.AnomalyRecord)
	return list, args.Error(1)
}

type mockAuditLogUseCase struct {
	mock.Mock
}

func (m *mockAuditLogUseCase) AddLog(ctx context.Context, userID string, logType entity.AuditLogType, content map[string]interface{}) {
	m.Called(ctx, userID, logType, content)
}

func (m *mockAuditLogUseCase) GetUserLogs(ctx context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	logs, _ := args.Get(0).([]*entity.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}
