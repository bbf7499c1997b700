package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.in), "level %q", tt.in)
	}
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) {
		return "SELECT * FROM purchase_orders WHERE id = ?", 1
	}

	t.Run("successful query logs at debug", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)

		gl.Trace(context.Background(), time.Now(), query, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "query", entry.Message)
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
	})

	t.Run("failed query logs at error", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "query failed", logs.All()[0].Message)
	})

	t.Run("record not found is suppressed by default", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("record not found logged when suppression disabled", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 1, logs.Len())
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "slow query", entry.Message)
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), query, errors.New("still silent"))

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)
		ctx := ContextWithRequestID(context.Background(), "req-7001")

		gl.Trace(ctx, time.Now(), query, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-7001", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)

	silenced := gl.LogMode(gormlogger.Silent)
	silenced.Info(context.Background(), "dropped")
	assert.Equal(t, 0, logs.Len())

	// The original keeps its level.
	gl.Info(context.Background(), "kept")
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_LeveledMethods(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	gl.Info(context.Background(), "below level")
	gl.Warn(context.Background(), "at level")
	gl.Error(context.Background(), "above level")

	assert.Equal(t, 2, logs.Len())
}
