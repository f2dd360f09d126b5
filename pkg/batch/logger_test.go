package batch_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := batch.NewZapLogger(zap.New(core))

	logger.Debug("API Request", map[string]interface{}{"operation": "Pool_Get"})
	logger.Info("pool ready", nil)
	logger.Warn("retrying", map[string]interface{}{"attempt": 2})
	logger.Error("API Response Error", map[string]interface{}{"status_code": 500})

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Pool_Get", entries[0].ContextMap()["operation"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, int64(2), entries[2].ContextMap()["attempt"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapLogger_Nil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		batch.NewZapLogger(nil).Info("discarded", map[string]interface{}{"k": "v"})
	})
}

func TestLogrusLogger(t *testing.T) {
	t.Parallel()

	base, hook := logtest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	logger := batch.NewLogrusLogger(base)

	logger.Debug("API Request", map[string]interface{}{"path": "/jobs"})
	logger.Error("API Response Error", map[string]interface{}{"error": "reset"})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "/jobs", entries[0].Data["path"])
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "reset", hook.LastEntry().Data["error"])
}

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	var logger batch.Logger = batch.NoopLogger{}

	assert.NotPanics(t, func() {
		logger.Debug("a", nil)
		logger.Info("b", nil)
		logger.Warn("c", nil)
		logger.Error("d", nil)
	})
}
