package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 로거 설정
type Config struct {
	// Level 로그 레벨 (debug, info, warn, error, dpanic, panic, fatal)
	Level string
	// Format 로그 포맷 (json, console)
	Format string
	// Output 로그 출력 대상 (stdout, stderr, file)
	Output string
	// FilePath Output이 file일 때의 경로. 비어 있으면 stdout입니다
	FilePath string
	// Development 개발 모드 여부
	Development bool
	// Name 로거 이름 (서비스 이름)
	Name string
	// Version 서비스 버전. 모든 로그에 service.version으로 기록됩니다
	Version string
}

// NewZapLogger 새로운 zap 로거를 생성합니다.
// 알 수 없는 레벨은 info로 처리합니다.
func NewZapLogger(config Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if parsed, err := zapcore.ParseLevel(config.Level); err == nil {
		level.SetLevel(parsed)
	}

	writeSyncer, err := writerFor(config)
	if err != nil {
		return nil, err
	}

	logger := zap.New(zapcore.NewCore(encoderFor(config), writeSyncer, level),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if config.Development {
		logger = logger.WithOptions(zap.AddCaller())
	}

	if config.Name != "" {
		logger = logger.With(zap.String("service.name", config.Name))
	}
	if config.Version != "" {
		logger = logger.With(zap.String("service.version", config.Version))
	}
	return logger.Named(config.Name), nil
}

// encoderFor ECS 호환 키를 쓰는 JSON 인코더, 또는 개발용 콘솔 인코더
func encoderFor(config Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "log.level"
	encoderConfig.MessageKey = "message"
	encoderConfig.CallerKey = "caller"

	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if config.Format == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func writerFor(config Config) (zapcore.WriteSyncer, error) {
	switch config.Output {
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "file":
		if config.FilePath == "" {
			return zapcore.Lock(os.Stdout), nil
		}
		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		return zapcore.AddSync(file), nil
	default:
		return zapcore.Lock(os.Stdout), nil
	}
}

// DefaultZapLogger 기본 설정으로 zap 로거를 생성합니다.
// 서비스 설정을 읽기 전 단계에서 사용합니다.
func DefaultZapLogger() *zap.Logger {
	logger, err := NewZapLogger(Config{Level: "info", Format: "json", Output: "stdout"})
	if err != nil {
		return zap.NewExample()
	}
	return logger
}
