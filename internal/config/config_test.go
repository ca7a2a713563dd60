package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 10, cfg.Directory.ItemsPerPage)
	assert.Equal(t, time.Second, cfg.Directory.SubmitDelay())
	assert.Equal(t, []string{"en", "tr"}, cfg.I18n.SupportedLanguages)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DIRECTORY_ITEMS_PER_PAGE", "20")
	t.Setenv("DIRECTORY_SUBMIT_DELAY_MS", "0")
	t.Setenv("I18N_SUPPORTED_LANGUAGES", "tr, en")
	t.Setenv("I18N_DEFAULT_LANGUAGE", "tr")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, 20, cfg.Directory.ItemsPerPage)
	assert.Zero(t, cfg.Directory.SubmitDelay())
	assert.Equal(t, []string{"tr", "en"}, cfg.I18n.SupportedLanguages)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnsupportedDefaultLanguage(t *testing.T) {
	t.Setenv("I18N_DEFAULT_LANGUAGE", "de")
	_, err := Load()
	require.ErrorContains(t, err, "not supported")
}
