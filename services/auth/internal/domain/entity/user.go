package entity

import (
	"strings"
)

// User MFA 코드 발송 대상 사용자
type User struct {
	ID                 string
	Email              string
	Name               string
	Phone              string
	PreferredMFAMethod MFAMethod
	AccountStatus      string
}

// IsActive 계정이 활성 상태인지 확인
func (u *User) IsActive() bool {
	return u.AccountStatus == "" || u.AccountStatus == "active"
}

// EmailMatches 대소문자를 구분하지 않고 이메일을 비교합니다
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}

// DisplayName 알림에 사용할 이름. 이름이 없으면 이메일 앞부분을 사용합니다
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
