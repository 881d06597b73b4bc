package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	apperrors "github.com/pdmartins/sdlc-internet-banking-sub000/pkg/errors"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/dto"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/usecase/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionFixture struct {
	uc        interfaces.SessionUseCase
	clock     *fakeClock
	repo      *memSessionRepo
	publisher *recordingPublisher
	audit     *memAuditRepo
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		clock:     newFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		repo:      newMemSessionRepo(),
		publisher: &recordingPublisher{},
		audit:     &memAuditRepo{},
	}
	logger := zap.NewNop()
	f.uc = NewSessionUseCase(
		logger,
		SessionConfig{},
		f.repo,
		staticDeviceParser{info: entity.DeviceInfo{Type: "desktop"}},
		f.publisher,
		NewAuditLogUseCase(logger, f.audit),
		f.clock.Now,
	)
	return f
}

func (f *sessionFixture) create(t *testing.T, input *dto.CreateSessionInput) string {
	t.Helper()
	token, err := f.uc.CreateSession(context.Background(), input)
	require.NoError(t, err)
	return token
}

func TestSessionUseCase_CreateSession(t *testing.T) {
	f := newSessionFixture()
	start := f.clock.Now()

	token := f.create(t, &dto.CreateSessionInput{UserID: "user-1", IP: "10.0.0.1", UserAgent: "Mozilla/5.0"})

	stored := f.repo.get(token)
	assert.Equal(t, "user-1", stored.UserID)
	assert.True(t, stored.IsActive)
	assert.Equal(t, start.Add(8*time.Hour), stored.ExpiresAt)
	assert.Equal(t, start, stored.LastActivityAt)
	assert.Equal(t, 30, stored.InactivityTimeoutMinutes)
	assert.Equal(t, "desktop", stored.DeviceType)
	assert.Contains(t, f.audit.types(), entity.AuditLogTypeSessionCreated)

	t.Run("사용자 ID 없음", func(t *testing.T) {
		_, err := f.uc.CreateSession(context.Background(), &dto.CreateSessionInput{})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
	})
}

func TestSessionUseCase_ValidateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("유효한 세션", func(t *testing.T) {
		f := newSessionFixture()
		token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

		f.clock.Advance(29 * time.Minute)
		session, err := f.uc.ValidateSession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
	})

	t.Run("없는 토큰", func(t *testing.T) {
		f := newSessionFixture()
		_, err := f.uc.ValidateSession(ctx, "missing")
		assert.ErrorIs(t, err, entity.ErrSessionNotFound)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
	})

	t.Run("비활성 만료 후 다시 유효해지지 않음", func(t *testing.T) {
		f := newSessionFixture()
		token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

		f.clock.Advance(31 * time.Minute)
		_, err := f.uc.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, entity.ErrSessionInactive)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrStateConflict))

		stored := f.repo.get(token)
		assert.False(t, stored.IsActive)
		assert.Equal(t, entity.RevokeReasonInactivity, stored.RevokedReason)

		_, err = f.uc.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, entity.ErrSessionRevoked)
	})

	t.Run("절대 만료", func(t *testing.T) {
		f := newSessionFixture()
		token := f.create(t, &dto.CreateSessionInput{UserID: "user-1", InactivityTimeoutMinutes: 600})

		f.clock.Advance(8*time.Hour + time.Second)
		_, err := f.uc.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, entity.ErrSessionExpired)
		assert.Equal(t, entity.RevokeReasonExpired, f.repo.get(token).RevokedReason)
	})

	t.Run("절대 만료가 비활성보다 우선", func(t *testing.T) {
		f := newSessionFixture()
		token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

		f.clock.Advance(9 * time.Hour)
		_, err := f.uc.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, entity.ErrSessionExpired)
		assert.Equal(t, entity.RevokeReasonExpired, f.repo.get(token).RevokedReason)
	})
}

func TestSessionUseCase_UpdateActivity(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

	f.clock.Advance(20 * time.Minute)
	updated, err := f.uc.UpdateActivity(ctx, token)
	require.NoError(t, err)
	assert.True(t, updated)

	f.clock.Advance(20 * time.Minute)
	_, err = f.uc.ValidateSession(ctx, token)
	assert.NoError(t, err)

	updated, err = f.uc.UpdateActivity(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, updated)

	f.clock.Advance(31 * time.Minute)
	updated, err = f.uc.UpdateActivity(ctx, token)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestSessionUseCase_ActivityUpdateDoesNotReviveRevokedSession(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	mine := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	stolen := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

	// 검증 요청이 세션을 읽은 직후 사용자가 다른 세션을 모두 종료합니다
	f.repo.afterFind = func() {
		revoked, err := f.uc.RevokeAllOtherSessions(ctx, "user-1", mine)
		require.NoError(t, err)
		assert.Equal(t, int64(1), revoked)
	}

	_, err := f.uc.ValidateSession(ctx, stolen)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	updated, err := f.uc.UpdateActivity(ctx, stolen)
	require.NoError(t, err)
	assert.False(t, updated)

	stored := f.repo.get(stolen)
	assert.False(t, stored.IsActive)
	assert.Equal(t, entity.RevokeReasonOtherSessions, stored.RevokedReason)

	_, err = f.uc.ValidateSession(ctx, stolen)
	assert.ErrorIs(t, err, entity.ErrSessionRevoked)

	updated, err = f.uc.UpdateActivity(ctx, mine)
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestSessionUseCase_ConcurrentActivityAndRevokeAll(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	mine := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	others := make([]string, 3)
	for i := range others {
		others[i] = f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		_, err := f.uc.RevokeAllOtherSessions(ctx, "user-1", mine)
		assert.NoError(t, err)
	}()
	for i := 0; i < 30; i++ {
		token := others[i%len(others)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.uc.UpdateActivity(ctx, token)
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	for _, token := range others {
		stored := f.repo.get(token)
		assert.False(t, stored.IsActive)
		assert.Equal(t, entity.RevokeReasonOtherSessions, stored.RevokedReason)

		updated, err := f.uc.UpdateActivity(ctx, token)
		require.NoError(t, err)
		assert.False(t, updated)
	}
	assert.True(t, f.repo.get(mine).IsActive)
}

func TestSessionUseCase_ExpiryRevokeKeepsEarlierRevocation(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

	f.clock.Advance(31 * time.Minute)
	f.repo.afterFind = func() {
		require.NoError(t, f.uc.RevokeSession(ctx, token, entity.RevokeReasonLogout))
	}

	_, err := f.uc.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, entity.ErrSessionInactive)

	stored := f.repo.get(token)
	assert.False(t, stored.IsActive)
	assert.Equal(t, entity.RevokeReasonLogout, stored.RevokedReason)
}

func TestSessionUseCase_RevokeSession(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	token := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})

	require.NoError(t, f.uc.RevokeSession(ctx, token, entity.RevokeReasonLogout))
	_, err := f.uc.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, entity.ErrSessionRevoked)
	assert.Equal(t, entity.RevokeReasonLogout, f.repo.get(token).RevokedReason)

	// 다시 폐기하거나 없는 토큰을 폐기해도 에러가 없습니다
	assert.NoError(t, f.uc.RevokeSession(ctx, token, entity.RevokeReasonLogout))
	assert.NoError(t, f.uc.RevokeSession(ctx, "missing", ""))
}

func TestSessionUseCase_RevokeAllOtherSessions(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	current := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	other1 := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	other2 := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	foreign := f.create(t, &dto.CreateSessionInput{UserID: "user-2"})

	revoked, err := f.uc.RevokeAllOtherSessions(ctx, "user-1", current)
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)

	_, err = f.uc.ValidateSession(ctx, current)
	assert.NoError(t, err)
	_, err = f.uc.ValidateSession(ctx, foreign)
	assert.NoError(t, err)

	for _, token := range []string{other1, other2} {
		_, err = f.uc.ValidateSession(ctx, token)
		assert.ErrorIs(t, err, entity.ErrSessionRevoked)
		assert.Equal(t, entity.RevokeReasonOtherSessions, f.repo.get(token).RevokedReason)
	}
}

func TestSessionUseCase_DetectSuspiciousActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("서로 다른 위치 4곳", func(t *testing.T) {
		f := newSessionFixture()
		for i := 0; i < 4; i++ {
			f.create(t, &dto.CreateSessionInput{UserID: "user-1", IP: "10.0.0.1", Location: fmt.Sprintf("city-%d", i)})
		}

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, suspicious)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, entity.SecurityEventSuspiciousSessions, f.publisher.events[0].Type)
		assert.Equal(t, "High", f.publisher.events[0].Severity)

		// 탐지만 하고 세션은 폐기하지 않습니다
		sessions, err := f.uc.ListActiveSessions(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, sessions, 4)
	})

	t.Run("위치 3곳은 정상", func(t *testing.T) {
		f := newSessionFixture()
		for i := 0; i < 3; i++ {
			f.create(t, &dto.CreateSessionInput{UserID: "user-1", IP: "10.0.0.1", Location: fmt.Sprintf("city-%d", i)})
		}

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, suspicious)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("기기 6대", func(t *testing.T) {
		f := newSessionFixture()
		for i := 0; i < 6; i++ {
			f.create(t, &dto.CreateSessionInput{UserID: "user-1", IP: "10.0.0.1", DeviceFingerprint: fmt.Sprintf("fp-%d", i)})
		}

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, suspicious)
	})

	t.Run("최근 1시간 IP 4개", func(t *testing.T) {
		f := newSessionFixture()
		for i := 0; i < 4; i++ {
			f.create(t, &dto.CreateSessionInput{UserID: "user-1", IP: fmt.Sprintf("10.0.0.%d", i+1)})
		}

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, suspicious)
	})

	t.Run("1시간 이전에 생성된 세션의 IP는 세지 않음", func(t *testing.T) {
		f := newSessionFixture()
		for i := 0; i < 4; i++ {
			f.create(t, &dto.CreateSessionInput{
				UserID:                   "user-1",
				IP:                       fmt.Sprintf("10.0.0.%d", i+1),
				InactivityTimeoutMinutes: 600,
			})
		}
		f.clock.Advance(2 * time.Hour)

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, suspicious)
	})

	t.Run("이벤트 발행 실패는 무시", func(t *testing.T) {
		f := newSessionFixture()
		f.publisher.err = errStoreFailure
		for i := 0; i < 4; i++ {
			f.create(t, &dto.CreateSessionInput{UserID: "user-1", Location: fmt.Sprintf("city-%d", i)})
		}

		suspicious, err := f.uc.DetectSuspiciousActivity(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, suspicious)
	})
}

func TestSessionUseCase_CleanupExpiredSessions(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	idle := f.create(t, &dto.CreateSessionInput{UserID: "user-1"})
	longLived := f.create(t, &dto.CreateSessionInput{UserID: "user-1", InactivityTimeoutMinutes: 600})

	f.clock.Advance(31 * time.Minute)
	cleaned, err := f.uc.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleaned)
	assert.Equal(t, entity.RevokeReasonInactivity, f.repo.get(idle).RevokedReason)
	assert.True(t, f.repo.get(longLived).IsActive)

	f.clock.Advance(8 * time.Hour)
	cleaned, err = f.uc.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleaned)
	assert.Equal(t, entity.RevokeReasonExpired, f.repo.get(longLived).RevokedReason)

	// 다시 실행해도 결과가 같습니다
	cleaned, err = f.uc.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleaned)
}
