package config

import (
	"time"
	_ "time/tzdata"

	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/config"
	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/logger"
	"go.uber.org/zap"
)

// Config 인증 보안 서비스 설정 구조체
type Config struct {
	// 서비스 기본 정보
	Service struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"service"`

	// 서버 설정
	Server struct {
		// HTTP 서버 설정
		HTTP struct {
			Port    string `yaml:"port"`
			Timeout int    `yaml:"timeout"`
			Debug   bool   `yaml:"debug"`
		} `yaml:"http"`

		// gRPC 서버 설정
		GRPC struct {
			Port    string `yaml:"port"`
			Timeout int    `yaml:"timeout"`
		} `yaml:"grpc"`
	} `yaml:"server"`

	// 데이터베이스 설정
	Database struct {
		Driver          string `yaml:"driver"`
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Name            string `yaml:"name"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		SSLMode         string `yaml:"ssl_mode"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
		SlowThresholdMs int    `yaml:"slow_threshold_ms"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	// Redis 설정
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	// 로그 설정
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`

	// Email 설정
	Email struct {
		SenderEmail string `yaml:"sender_email"`
		SenderName  string `yaml:"sender_name"`
		SMTPHost    string `yaml:"smtp_host"`
		SMTPPort    int    `yaml:"smtp_port"`
		SMTPUser    string `yaml:"smtp_user"`
		SMTPPass    string `yaml:"smtp_pass"`
	} `yaml:"email"`

	// 로그인 세션 설정
	Session struct {
		TimeoutHours             int    `yaml:"timeout_hours"`
		InactivityTimeoutMinutes int    `yaml:"inactivity_timeout_minutes"`
		CookieSecret             string `yaml:"cookie_secret"`
		CookieSecure             bool   `yaml:"cookie_secure"`
	} `yaml:"session"`

	// MFA 코드 설정
	MFA struct {
		CodeValiditySeconds   int    `yaml:"code_validity_seconds"`
		ResendCooldownSeconds int    `yaml:"resend_cooldown_seconds"`
		MaxAttempts           int    `yaml:"max_attempts"`
		SendRateLimit         int    `yaml:"send_rate_limit"`
		CodeSecret            string `yaml:"code_secret"`
	} `yaml:"mfa"`

	// 위험 분석 설정
	Risk struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"risk"`

	// 이상 징후 설정
	Anomaly struct {
		// 다른 사용자의 이상 징후도 처리할 수 있는 운영자 id
		Operators []string `yaml:"operators"`
	} `yaml:"anomaly"`

	// 내부 호출자 인증 (로그인 흐름을 수행하는 서비스 간 공유 키)
	Internal struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"internal"`

	// 보안 알림 채널 설정
	Alert struct {
		Channel      string `yaml:"channel"`
		EventChannel string `yaml:"event_channel"`
		SMSChannel   string `yaml:"sms_channel"`
	} `yaml:"alert"`

	// GeoIP 설정 (경로가 비어 있으면 비활성)
	GeoIP struct {
		DatabasePath string `yaml:"database_path"`
	} `yaml:"geoip"`

	// 정리 작업 설정
	Cleanup struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"cleanup"`

	// 메트릭 설정
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	// 로거 인스턴스
	Logger *zap.Logger
}

var (
	// AppConfig는 어플리케이션 전체에서 사용하는 설정 인스턴스입니다.
	AppConfig *Config
)

// defaults 설정 파일에 없는 키의 기본값
var defaults = map[string]interface{}{
	"service.name":                       "auth-security",
	"server.http.port":                   "8080",
	"server.http.timeout":                30,
	"server.grpc.port":                   "9090",
	"database.driver":                    "postgres",
	"database.port":                      5432,
	"database.ssl_mode":                  "disable",
	"database.max_open_conns":            20,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime":         300,
	"database.slow_threshold_ms":         500,
	"redis.port":                         6379,
	"log.level":                          "info",
	"log.format":                         "json",
	"log.output":                         "stdout",
	"email.smtp_port":                    587,
	"session.timeout_hours":              8,
	"session.inactivity_timeout_minutes": 30,
	"mfa.code_validity_seconds":          600,
	"mfa.resend_cooldown_seconds":        120,
	"mfa.max_attempts":                   3,
	"mfa.send_rate_limit":                5,
	"risk.timezone":                      "UTC",
	"internal.api_key":                   "",
	"alert.channel":                      "security:alerts",
	"alert.event_channel":                "security:events",
	"alert.sms_channel":                  "notification:sms",
	"cleanup.interval_seconds":           300,
	"metrics.enabled":                    true,
	"metrics.path":                       "/metrics",
}

// Load 설정 파일 로드
func Load() (*Config, error) {
	cfg, err := config.LoadWithDefaults("auth", defaults)
	if err != nil {
		return nil, err
	}

	appConfig := FromSource(cfg)

	// 로거 설정
	loggerConfig := logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		Development: appConfig.Server.HTTP.Debug,
		Name:        appConfig.Service.Name,
		Version:     appConfig.Service.Version,
	}

	appConfig.Logger, err = logger.NewZapLogger(loggerConfig)
	if err != nil {
		return nil, err
	}

	// 전역 변수에 설정
	AppConfig = appConfig

	return appConfig, nil
}

// FromSource 설정 소스에서 Config 구조체를 채웁니다
func FromSource(cfg config.Config) *Config {
	appConfig := &Config{}

	// 서비스 정보
	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.BaseURL = cfg.GetString("service.base_url")

	// 서버 설정
	appConfig.Server.HTTP.Port = cfg.GetString("server.http.port")
	appConfig.Server.HTTP.Timeout = cfg.GetInt("server.http.timeout")
	appConfig.Server.HTTP.Debug = cfg.GetBool("server.http.debug")
	appConfig.Server.GRPC.Port = cfg.GetString("server.grpc.port")
	appConfig.Server.GRPC.Timeout = cfg.GetInt("server.grpc.timeout")

	// 데이터베이스 설정
	appConfig.Database.Driver = cfg.GetString("database.driver")
	appConfig.Database.Host = cfg.GetString("database.host")
	appConfig.Database.Port = cfg.GetInt("database.port")
	appConfig.Database.Name = cfg.GetString("database.name")
	appConfig.Database.User = cfg.GetString("database.user")
	appConfig.Database.Password = cfg.GetString("database.password")
	appConfig.Database.SSLMode = cfg.GetString("database.ssl_mode")
	appConfig.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	appConfig.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	appConfig.Database.ConnMaxLifetime = cfg.GetInt("database.conn_max_lifetime")
	appConfig.Database.SlowThresholdMs = cfg.GetInt("database.slow_threshold_ms")
	appConfig.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")

	// Redis 설정
	appConfig.Redis.Host = cfg.GetString("redis.host")
	appConfig.Redis.Port = cfg.GetInt("redis.port")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.DB = cfg.GetInt("redis.db")

	// 로그 설정
	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")

	// 이메일 설정
	appConfig.Email.SenderEmail = cfg.GetString("email.sender_email")
	appConfig.Email.SenderName = cfg.GetString("email.sender_name")
	appConfig.Email.SMTPHost = cfg.GetString("email.smtp_host")
	appConfig.Email.SMTPPort = cfg.GetInt("email.smtp_port")
	appConfig.Email.SMTPUser = cfg.GetString("email.smtp_user")
	appConfig.Email.SMTPPass = cfg.GetString("email.smtp_pass")

	// 세션 설정
	appConfig.Session.TimeoutHours = cfg.GetInt("session.timeout_hours")
	appConfig.Session.InactivityTimeoutMinutes = cfg.GetInt("session.inactivity_timeout_minutes")
	appConfig.Session.CookieSecret = cfg.GetString("session.cookie_secret")
	appConfig.Session.CookieSecure = cfg.GetBool("session.cookie_secure")

	// MFA 설정
	appConfig.MFA.CodeValiditySeconds = cfg.GetInt("mfa.code_validity_seconds")
	appConfig.MFA.ResendCooldownSeconds = cfg.GetInt("mfa.resend_cooldown_seconds")
	appConfig.MFA.MaxAttempts = cfg.GetInt("mfa.max_attempts")
	appConfig.MFA.SendRateLimit = cfg.GetInt("mfa.send_rate_limit")
	appConfig.MFA.CodeSecret = cfg.GetString("mfa.code_secret")

	// 알림 채널
	appConfig.Alert.Channel = cfg.GetString("alert.channel")
	appConfig.Alert.EventChannel = cfg.GetString("alert.event_channel")
	appConfig.Alert.SMSChannel = cfg.GetString("alert.sms_channel")

	// 위험 분석 / GeoIP / 정리 작업 / 메트릭
	appConfig.Risk.Timezone = cfg.GetString("risk.timezone")
	appConfig.Internal.APIKey = cfg.GetString("internal.api_key")
	appConfig.Anomaly.Operators = cfg.GetStringSlice("anomaly.operators")
	appConfig.GeoIP.DatabasePath = cfg.GetString("geoip.database_path")
	appConfig.Cleanup.IntervalSeconds = cfg.GetInt("cleanup.interval_seconds")
	appConfig.Metrics.Enabled = cfg.GetBool("metrics.enabled")
	appConfig.Metrics.Path = cfg.GetString("metrics.path")

	return appConfig
}

// RiskLocation 시간대 규칙에 사용할 location. 잘못된 값이면 UTC입니다.
func (c *Config) RiskLocation() *time.Location {
	loc, err := time.LoadLocation(c.Risk.Timezone)
	if err != nil || c.Risk.Timezone == "" {
		return time.UTC
	}
	return loc
}

// CleanupInterval 정리 작업 주기
func (c *Config) CleanupInterval() time.Duration {
	if c.Cleanup.IntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Cleanup.IntervalSeconds) * time.Second
}
