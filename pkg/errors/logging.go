package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogError는 에러를 구조화된 로그로 기록합니다.
// 비즈니스 규칙에 의한 거절은 Warn, 그 외에는 Error 레벨입니다.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	logger.Check(logLevel(err), msg).Write(append(ErrorFields(err), fields...)...)
}

// ErrorFields 에러 코드와 원인을 로그 필드로 변환합니다
func ErrorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err), zap.String("error_code", CodeOf(err))}

	var appErr *AppError
	if As(err, &appErr) {
		fields = append(fields, zap.String("error_message", appErr.Message()))
		if cause := appErr.Unwrap(); cause != nil {
			fields = append(fields, zap.NamedError("cause", cause))
		}
	}
	return fields
}

func logLevel(err error) zapcore.Level {
	if IsExpected(err) {
		return zapcore.WarnLevel
	}
	return zapcore.ErrorLevel
}
