package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/service"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type riskFixture struct {
	uc        interfaces.RiskUseCase
	clock     *fakeClock
	attempts  *memAttemptRepo
	baselines *memBaselineRepo
	anomalies *memAnomalyRepo
	alerts    *mockAlertDispatcher
}

func newRiskFixture(geo repository.GeoResolver, device repository.DeviceParser) *riskFixture {
	f := &riskFixture{
		clock:     newFakeClock(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)),
		attempts:  &memAttemptRepo{},
		baselines: newMemBaselineRepo(),
		anomalies: newMemAnomalyRepo(),
		alerts:    &mockAlertDispatcher{},
	}
	logger := zap.NewNop()
	uow := &fakeUnitOfWork{tx: &repository.TxRepositories{
		LoginAttempt: f.attempts,
		Baseline:     f.baselines,
		Anomaly:      f.anomalies,
	}}
	anomalyUC := NewAnomalyUseCase(logger, f.anomalies, f.alerts, NewAuditLogUseCase(logger, &memAuditRepo{}), nil, f.clock.Now)
	f.uc = NewRiskUseCase(logger, service.NewRiskScorer(time.UTC), uow, anomalyUC, geo, device, f.clock.Now)
	return f
}

func (f *riskFixture) analyze(t *testing.T, data *dto.LoginAttemptData) *dto.RiskAssessmentResult {
	t.Helper()
	result, err := f.uc.AnalyzeLogin(context.Background(), data)
	require.NoError(t, err)
	return result
}

func (f *riskFixture) seedBaseline(userID string) {
	b := entity.NewUserBehaviorBaseline("baseline-"+userID, userID, f.clock.Now())
	b.RecentIPs = []string{"198.51.100.7"}
	b.Locations = []string{"US,CA,San Francisco"}
	b.Devices = []string{"fp-1"}
	b.TypicalHours = []int{14}
	b.TypicalDays = []int{5}
	_ = f.baselines.Save(context.Background(), b)
}

func strPtr(s string) *string { return &s }

func knownLogin() *dto.LoginAttemptData {
	return &dto.LoginAttemptData{
		UserID:            strPtr("user-1"),
		Email:             "kim@example.com",
		IP:                "198.51.100.7",
		Country:           "US",
		Region:            "CA",
		City:              "San Francisco",
		DeviceFingerprint: "fp-1",
		IsSuccessful:      true,
	}
}

func TestRiskUseCase_FirstLoginCreatesBaseline(t *testing.T) {
	f := newRiskFixture(nil, nil)

	result := f.analyze(t, knownLogin())

	assert.Equal(t, 20, result.RiskScore)
	assert.Equal(t, []string{entity.ReasonNewUser}, result.Reasons)
	assert.Equal(t, string(entity.ActionAllow), result.RecommendedAction)
	assert.False(t, result.IsAnomalous)
	assert.Empty(t, result.AnomalyID)

	require.Len(t, f.attempts.attempts, 1)
	stored := f.attempts.attempts[0]
	assert.Equal(t, result.AttemptID, stored.ID)
	assert.Equal(t, 20, stored.RiskScore)
	assert.Equal(t, entity.ActionAllow, stored.RecommendedAction)

	baseline, err := f.baselines.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, baseline)
	assert.Equal(t, []string{"198.51.100.7"}, baseline.RecentIPs)
	assert.Equal(t, []string{"US,CA,San Francisco"}, baseline.Locations)
	assert.Equal(t, []string{"fp-1"}, baseline.Devices)
	assert.Equal(t, []int{14}, baseline.TypicalHours)
	assert.Equal(t, []int{int(time.Friday)}, baseline.TypicalDays)

	assert.Empty(t, f.anomalies.records)
	f.alerts.AssertNotCalled(t, "SendAlert", mock.Anything, mock.Anything)
}

func TestRiskUseCase_RepeatLoginMatchesBaseline(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.analyze(t, knownLogin())

	f.clock.Advance(10 * time.Minute)
	result := f.analyze(t, knownLogin())
	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Reasons)

	// 5분 안의 두 번째 시도
	f.clock.Advance(time.Minute)
	result = f.analyze(t, knownLogin())
	assert.Equal(t, 20, result.RiskScore)
	assert.Equal(t, []string{entity.ReasonModerateVelocity}, result.Reasons)
}

func TestRiskUseCase_NewCountryRecordsAnomaly(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.seedBaseline("user-1")
	f.alerts.On("SendAlert", mock.Anything, mock.MatchedBy(func(a *entity.SecurityAlert) bool {
		return a.UserID == "user-1" && a.Severity == "Medium" && !a.RequiresAction
	})).Return(nil).Once()

	data := knownLogin()
	data.Country, data.Region, data.City = "BR", "SP", "Sao Paulo"
	result := f.analyze(t, data)

	assert.Equal(t, 60, result.RiskScore)
	assert.True(t, result.IsAnomalous)
	assert.Equal(t, 3, result.Severity)
	assert.Equal(t, string(entity.ActionChallenge), result.RecommendedAction)
	assert.Equal(t, []string{entity.ReasonUnusualLocation, entity.ReasonNewCountry}, result.Reasons)
	require.NotEmpty(t, result.AnomalyID)

	record := f.anomalies.records[result.AnomalyID]
	assert.Equal(t, entity.AnomalyTypeLocation, record.Type)
	assert.Equal(t, entity.AnomalyStatusPending, record.Status)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, result.AttemptID, record.LoginAttemptID)
	assert.Equal(t, 60, record.RiskScore)

	// 성공한 로그인이므로 새 위치가 기준선에 추가됩니다
	baseline, err := f.baselines.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, baseline.Locations, "BR,SP,Sao Paulo")

	f.alerts.AssertExpectations(t)
}

func TestRiskUseCase_LateNightNewCountryBlocks(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.clock.t = time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	f.seedBaseline("user-1")
	f.alerts.On("SendAlert", mock.Anything, mock.MatchedBy(func(a *entity.SecurityAlert) bool {
		return a.Severity == "Critical" && a.RequiresAction
	})).Return(nil).Once()

	data := knownLogin()
	data.Country, data.Region, data.City = "BR", "SP", "Sao Paulo"
	result := f.analyze(t, data)

	assert.Equal(t, 95, result.RiskScore)
	assert.Equal(t, 5, result.Severity)
	assert.Equal(t, string(entity.ActionBlock), result.RecommendedAction)
	assert.Contains(t, result.Reasons, entity.ReasonUnusualTimeLateNight)
	f.alerts.AssertExpectations(t)
}

func TestRiskUseCase_FailurePatternsFromSameIP(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.alerts.On("SendAlert", mock.Anything, mock.Anything).Return(nil)

	var results []*dto.RiskAssessmentResult
	for i := 0; i < 6; i++ {
		results = append(results, f.analyze(t, &dto.LoginAttemptData{
			Email:         fmt.Sprintf("user%d@example.com", i),
			IP:            "192.0.2.50",
			IsSuccessful:  false,
			FailureReason: "invalid_password",
		}))
		f.clock.Advance(time.Minute)
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, 20, results[i].RiskScore, "attempt %d", i+1)
		assert.False(t, results[i].IsAnomalous)
	}

	assert.Equal(t, 50, results[3].RiskScore)
	assert.Contains(t, results[3].Reasons, entity.ReasonMultipleFailures)
	assert.Equal(t, string(entity.ActionChallenge), results[3].RecommendedAction)

	assert.Equal(t, 80, results[5].RiskScore)
	assert.Contains(t, results[5].Reasons, entity.ReasonBruteForcePattern)
	assert.Equal(t, string(entity.ActionBlock), results[5].RecommendedAction)

	record := f.anomalies.records[results[5].AnomalyID]
	assert.Equal(t, entity.AnomalyTypeVelocity, record.Type)
	assert.Empty(t, record.UserID)

	// 사용자 없는 시도는 기준선을 만들지 않습니다
	assert.Empty(t, f.baselines.baselines)
}

func TestRiskUseCase_FailedLoginUpdatesBaseline(t *testing.T) {
	f := newRiskFixture(nil, nil)

	data := knownLogin()
	data.IsSuccessful = false
	result := f.analyze(t, data)
	assert.Equal(t, 20, result.RiskScore)
	assert.Equal(t, []string{entity.ReasonNewUser}, result.Reasons)

	baseline, err := f.baselines.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, baseline)
	assert.Equal(t, []string{"US,CA,San Francisco"}, baseline.Locations)

	// 실패한 첫 시도 이후에도 다음 로그인은 신규 사용자로 보지 않습니다
	f.clock.Advance(10 * time.Minute)
	result = f.analyze(t, knownLogin())
	assert.NotContains(t, result.Reasons, entity.ReasonNewUser)
	assert.Zero(t, result.RiskScore)
}

func TestRiskUseCase_VelocityByEmailWithoutUser(t *testing.T) {
	f := newRiskFixture(nil, nil)

	login := func() *dto.RiskAssessmentResult {
		return f.analyze(t, &dto.LoginAttemptData{
			Email:        "guest@example.com",
			IP:           "198.51.100.7",
			IsSuccessful: true,
		})
	}

	var results []*dto.RiskAssessmentResult
	for i := 0; i < 4; i++ {
		results = append(results, login())
		f.clock.Advance(time.Minute)
	}

	assert.NotContains(t, results[0].Reasons, entity.ReasonModerateVelocity)
	assert.Contains(t, results[1].Reasons, entity.ReasonModerateVelocity)
	assert.Contains(t, results[3].Reasons, entity.ReasonHighVelocity)
	assert.NotContains(t, results[3].Reasons, entity.ReasonModerateVelocity)

	// 다른 이메일은 별도로 집계합니다
	other := f.analyze(t, &dto.LoginAttemptData{Email: "other@example.com", IP: "198.51.100.7", IsSuccessful: true})
	assert.NotContains(t, other.Reasons, entity.ReasonModerateVelocity)
	assert.NotContains(t, other.Reasons, entity.ReasonHighVelocity)
	assert.Empty(t, f.baselines.baselines)
}

func TestRiskUseCase_AlertFailureIsIgnored(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.seedBaseline("user-1")
	f.alerts.On("SendAlert", mock.Anything, mock.Anything).Return(errStoreFailure)

	data := knownLogin()
	data.Country, data.Region, data.City = "BR", "SP", "Sao Paulo"
	result := f.analyze(t, data)

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, f.anomalies.records, result.AnomalyID)
}

func TestRiskUseCase_PersistenceFailure(t *testing.T) {
	f := newRiskFixture(nil, nil)
	f.attempts.createErr = errStoreFailure

	_, err := f.uc.AnalyzeLogin(context.Background(), knownLogin())
	assert.ErrorIs(t, err, errStoreFailure)
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	f.alerts.AssertNotCalled(t, "SendAlert", mock.Anything, mock.Anything)
}

func TestRiskUseCase_EnrichesLocationAndDevice(t *testing.T) {
	geo := staticGeoResolver{locations: map[string]entity.GeoLocation{
		"198.51.100.7": {Country: "KR", Region: "11", City: "Seoul"},
	}}
	f := newRiskFixture(geo, staticDeviceParser{info: entity.DeviceInfo{Type: "mobile", OS: "iOS", Browser: "Safari"}})

	f.analyze(t, &dto.LoginAttemptData{
		UserID:       strPtr("user-1"),
		Email:        "kim@example.com",
		IP:           "198.51.100.7",
		UserAgent:    "Mozilla/5.0 (iPhone)",
		IsSuccessful: true,
	})

	stored := f.attempts.attempts[0]
	assert.Equal(t, "KR", stored.Location.Country)
	assert.Equal(t, "Seoul", stored.Location.City)
	assert.Equal(t, "mobile", stored.Device.Type)
	assert.Equal(t, "iOS", stored.Device.OS)
}

func TestRiskUseCase_RequiresIdentity(t *testing.T) {
	f := newRiskFixture(nil, nil)

	_, err := f.uc.AnalyzeLogin(context.Background(), &dto.LoginAttemptData{IP: "192.0.2.1"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
	assert.Empty(t, f.attempts.attempts)
}
