package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdepscheck/jdepscheck/internal/logging"
)

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("Found offending packages:")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=info msg=Found offending packages:")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("debug", "text", &buf)
	require.NoError(t, err)

	logger.Debug("Executing: jdeps target/classes")
	assert.Contains(t, buf.String(), "Executing: jdeps target/classes")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", "JSON", &buf)
	require.NoError(t, err)

	logger.WithField("goal", "jdkinternals").Warn("JDeps Warnings")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "JDeps Warnings", entry["msg"])
	assert.Equal(t, "jdkinternals", entry["goal"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New("loud", "", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := logging.New("info", "xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}
