package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCounter struct {
	values  map[string]int64
	expires map[string]time.Duration
	getErr  error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{
		values:  make(map[string]int64),
		expires: make(map[string]time.Duration),
	}
}

func (f *fakeCounter) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rate_limit:mfa_send:203.0.113.10", Key("203.0.113.10", "mfa_send"))
}

func TestRateLimiterBlocksAtMax(t *testing.T) {
	ctx := context.Background()
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, time.Minute, zap.NewNop())

	for i := 0; i < 5; i++ {
		ok, err := limiter.CanAttempt(ctx, "ip", "mfa_send", 5)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
		require.NoError(t, limiter.RecordAttempt(ctx, "ip", "mfa_send", i%2 == 0))
	}

	ok, err := limiter.CanAttempt(ctx, "ip", "mfa_send", 5)
	require.NoError(t, err)
	assert.False(t, ok)

	// 다른 액션은 독립된 카운터를 사용합니다
	ok, err = limiter.CanAttempt(ctx, "ip", "mfa_verify", 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiterSetsWindowOnFirstAttempt(t *testing.T) {
	ctx := context.Background()
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, 0, zap.NewNop())

	require.NoError(t, limiter.RecordAttempt(ctx, "ip", "mfa_verify", false))
	assert.Equal(t, 15*time.Minute, counter.expires["rate_limit:mfa_verify:ip"])

	counter.expires = make(map[string]time.Duration)
	require.NoError(t, limiter.RecordAttempt(ctx, "ip", "mfa_verify", true))
	assert.Empty(t, counter.expires)
	assert.Equal(t, int64(2), counter.values["rate_limit:mfa_verify:ip"])
}

func TestRateLimiterPropagatesRedisError(t *testing.T) {
	counter := newFakeCounter()
	counter.getErr = errors.New("connection refused")
	limiter := NewRedisRateLimiter(counter, time.Minute, zap.NewNop())

	ok, err := limiter.CanAttempt(context.Background(), "ip", "mfa_send", 5)
	assert.Error(t, err)
	assert.False(t, ok)
}
