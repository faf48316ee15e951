package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"component": "routes"})

	log.Debug("debugging", nil)
	log.Info("generated", map[string]interface{}{"routes": 3})
	log.WithError(errors.New("timeout")).Warn("fallback used", map[string]interface{}{"kind": "insights"})
	log.Error("failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(3), entries[1].ContextMap()["routes"])
	assert.Equal(t, "routes", entries[1].ContextMap()["component"])
	assert.Equal(t, "timeout", entries[2].ContextMap()["error"])
	assert.Equal(t, "insights", entries[2].ContextMap()["kind"])
}

func TestNew_LevelParsing(t *testing.T) {
	assert.True(t, New("debug", "console").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn", "json").Core().Enabled(zapcore.InfoLevel))
	assert.False(t, New("", "json").Core().Enabled(zapcore.DebugLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Info("nothing", map[string]interface{}{"a": 1})
	assert.NotNil(t, log.With(nil))
}
