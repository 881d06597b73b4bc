package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, 100*time.Millisecond, true), logs
}

func TestGormLoggerTrace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("errors are logged", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sql, assert.AnError)
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	})

	t.Run("slow query is a warning", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Silent)
		l.Trace(context.Background(), time.Now().Add(-time.Second), sql, assert.AnError)
		assert.Equal(t, 0, logs.Len())
	})
}

func TestNewZapLoggerUnknownLevel(t *testing.T) {
	l, err := NewZapLogger(Config{Level: "verbose", Format: "json", Output: "stdout", Name: "auth"})
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewZapLoggerFileOutputWithServiceFields(t *testing.T) {
	file := filepath.Join(t.TempDir(), "auth.log")
	l, err := NewZapLogger(Config{Level: "debug", Output: "file", FilePath: file, Name: "auth-security", Version: "1.2.0"})
	require.NoError(t, err)

	l.Debug("세션 생성")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service.name":"auth-security"`)
	assert.Contains(t, string(data), `"service.version":"1.2.0"`)
	assert.Contains(t, string(data), `"message":"세션 생성"`)
}
