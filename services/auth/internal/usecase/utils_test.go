package usecase

import (
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.True(t, IsNumericCode(code, 6), code)
	}
}

func TestIsNumericCode(t *testing.T) {
	assert.True(t, IsNumericCode("012345", 6))
	assert.False(t, IsNumericCode("12345", 6))
	assert.False(t, IsNumericCode("12345a", 6))
	assert.False(t, IsNumericCode("", 6))
}

func TestGenerateSessionToken(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := GenerateSessionToken(now)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 40)
	assert.Equal(t, uint64(now.UnixNano()), binary.BigEndian.Uint64(raw[32:]))

	other, err := GenerateSessionToken(now)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestCodeHasher(t *testing.T) {
	h := NewCodeHasher("secret")

	hash := h.Hash("123456")
	assert.Len(t, hash, 64)
	assert.NotContains(t, hash, "123456")
	assert.True(t, h.Matches("123456", hash))
	assert.False(t, h.Matches("123457", hash))
	assert.False(t, h.Matches("123456", "not-hex"))

	other := NewCodeHasher("another-secret")
	assert.False(t, other.Matches("123456", hash))
}
