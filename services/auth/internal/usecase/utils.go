package usecase

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// GenerateNumericCode는 지정된 자릿수의 무작위 숫자 코드를 생성합니다.
func GenerateNumericCode(digits int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("난수 생성 실패: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// IsNumericCode는 코드가 지정된 자릿수의 숫자인지 확인합니다.
func IsNumericCode(code string, digits int) bool {
	if len(code) != digits {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// GenerateSessionToken은 무작위 바이트와 생성 시각으로 URL-safe 세션 토큰을 만듭니다.
func GenerateSessionToken(now time.Time) (string, error) {
	buf := make([]byte, 32+8)
	if _, err := rand.Read(buf[:32]); err != nil {
		return "", fmt.Errorf("난수 생성 실패: %w", err)
	}
	binary.BigEndian.PutUint64(buf[32:], uint64(now.UnixNano()))
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CodeHasher는 인증 코드를 비밀 키로 HMAC-SHA256 해싱합니다.
type CodeHasher struct {
	secret []byte
}

// NewCodeHasher 새 코드 해셔 생성
func NewCodeHasher(secret string) *CodeHasher {
	return &CodeHasher{secret: []byte(secret)}
}

// Hash는 코드의 해시를 16진수 문자열로 반환합니다.
func (h *CodeHasher) Hash(code string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// Matches는 코드와 저장된 해시를 상수 시간으로 비교합니다.
func (h *CodeHasher) Matches(code, storedHash string) bool {
	expected, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(code))
	return hmac.Equal(mac.Sum(nil), expected)
}

// clockOrNow는 nil이면 time.Now를 사용합니다.
func clockOrNow(clock func() time.Time) func() time.Time {
	if clock == nil {
		return time.Now
	}
	return clock
}
