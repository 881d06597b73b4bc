package mail

import (
	"fmt"
	"html"
	"time"
)

// EmailTemplateService 이메일 템플릿 생성 서비스
type EmailTemplateService struct {
	supportEmail string // 지원 이메일
	companyName  string // 서비스 이름
}

// NewEmailTemplateService 이메일 템플릿 서비스 생성
func NewEmailTemplateService(supportEmail, companyName string) *EmailTemplateService {
	return &EmailTemplateService{
		supportEmail: supportEmail,
		companyName:  companyName,
	}
}

// MFACodeSubject 인증 코드 메일 제목
func (s *EmailTemplateService) MFACodeSubject() string {
	return fmt.Sprintf("[%s] 로그인 인증 코드", s.companyName)
}

// FormatCode 6자리 코드를 XXX-XXX 형식으로 표시합니다
func FormatCode(code string) string {
	if len(code) != 6 {
		return code
	}
	return code[:3] + "-" + code[3:]
}

// GenerateMFACodeEmailHTML 로그인 인증 코드 HTML 템플릿 생성
func (s *EmailTemplateService) GenerateMFACodeEmailHTML(name, code string, validity time.Duration, now time.Time) string {
	minutes := int(validity.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>로그인 인증 코드</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; background-color: #f7f9fc;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
		<tr>
			<td align="center" style="padding: 30px 0; background-color: #1f3a93; color: #ffffff;">
				<h1 style="margin: 0; font-size: 24px;">로그인 인증 코드</h1>
			</td>
		</tr>
		<tr>
			<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
				<p style="margin-top: 0;">안녕하세요, <strong>%s</strong>님.</p>
				<p>아래 인증 코드를 입력하여 로그인을 완료해 주세요.</p>
				<p align="center" style="padding: 20px; background-color: #f3f5ff; border-radius: 8px; font-size: 28px; font-weight: bold; letter-spacing: 4px; color: #1f3a93;">%s</p>
				<p>인증 코드는 %d분 동안 유효하며 한 번만 사용할 수 있습니다.</p>
				<p>본인이 요청하지 않았다면 즉시 비밀번호를 변경하고 고객센터에 알려 주세요.</p>
			</td>
		</tr>
		<tr>
			<td align="center" style="padding: 20px; background-color: #f0f2fa; color: #666666; font-size: 12px;">
				<p style="margin: 0 0 10px 0;">© %d %s. All rights reserved.</p>
				<p style="margin: 0;">문의: <a href="mailto:%s" style="color: #1f3a93;">%s</a></p>
			</td>
		</tr>
	</table>
</body>
</html>`, html.EscapeString(name), FormatCode(code), minutes, now.Year(), s.companyName, s.supportEmail, s.supportEmail)
}
