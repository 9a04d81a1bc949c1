package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "pdftotext", cfg.PDF.PdftotextPath)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	assert.Equal(t, "", cfg.Dispatch.AliasFile)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("STMT_LOG_LEVEL", "debug")
	t.Setenv("STMT_FETCH_TIMEOUT_SECONDS", "5")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Fetch.TimeoutSeconds)
}

func TestInitializeConfigAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestConfigureLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigureLoggingInvalidLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "nonsense"
	cfg.Log.Format = "text"

	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestConfigureLoggingNilConfig(t *testing.T) {
	logger := ConfigureLogging(nil)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STMT_TEST_VAR", "set")
	assert.Equal(t, "set", GetEnv("STMT_TEST_VAR", "fallback"))

	os.Unsetenv("STMT_TEST_VAR_MISSING")
	assert.Equal(t, "fallback", GetEnv("STMT_TEST_VAR_MISSING", "fallback"))
}
