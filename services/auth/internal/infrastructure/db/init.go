package db

import (
	"fmt"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/pkg/messaging"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure 인프라스트럭처 구조체
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	Messaging   messaging.RedisClient
	logger      *zap.Logger
}

// NewInfrastructure 인프라스트럭처 초기화
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infrastructure := &Infrastructure{logger: logger}

	// 데이터베이스 연결 설정
	dbConfig := Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SlowThreshold:   time.Duration(cfg.Database.SlowThresholdMs) * time.Millisecond,
		SSLMode:         cfg.Database.SSLMode,
		Debug:           cfg.Server.HTTP.Debug,
	}

	// 데이터베이스 연결
	var err error
	infrastructure.DB, err = NewPostgresDB(dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(infrastructure.DB); err != nil {
			return nil, err
		}
		logger.Info("스키마 마이그레이션 완료")
	}

	// Redis 설정
	redisConfig := RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Redis 클라이언트 초기화
	infrastructure.RedisClient, err = NewRedisClient(redisConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	// 보안 이벤트 / 알림 발행은 같은 연결을 공유합니다
	infrastructure.Messaging = messaging.NewRedisClientFromConn(infrastructure.RedisClient)

	logger.Info("인프라스트럭처 초기화 완료",
		zap.String("database", "PostgreSQL"),
		zap.String("redis", "Redis"),
	)

	return infrastructure, nil
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	// DB 연결 종료
	sqlDB, err := i.DB.DB()
	if err != nil {
		return fmt.Errorf("DB 인스턴스 획득 실패: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("데이터베이스 연결 종료 실패: %w", err)
	}

	// Redis 연결 종료
	if err := i.RedisClient.Close(); err != nil {
		return fmt.Errorf("Redis 연결 종료 실패: %w", err)
	}

	i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	return nil
}
