package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://api.test/v1/")
	t.Setenv(EnvAPITimeoutMs, "")
	t.Setenv(EnvClientURL, "https://client.test")
	t.Setenv(EnvOAuthRedirectURI, "")
	t.Setenv(EnvSessionStore, "")
	t.Setenv(EnvGeocoderBaseURL, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.test/v1", cfg.APIBaseURL)
	assert.Equal(t, DefaultAPITimeout, cfg.APITimeout)
	assert.Equal(t, "https://client.test/auth/callback", cfg.OAuthRedirectURI)
	assert.Equal(t, "file", cfg.SessionStore)
	assert.Equal(t, DefaultGeocoderBaseURL, cfg.GeocoderBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)

	//====== Timeout override ==========
	t.Setenv(EnvAPITimeoutMs, "2500")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.APITimeout)

	//====== Bad timeout ==========
	t.Setenv(EnvAPITimeoutMs, "soon")
	_, err = LoadConfig()
	assert.Error(t, err)

	//====== Base URL required ==========
	t.Setenv(EnvAPITimeoutMs, "")
	t.Setenv(EnvAPIBaseURL, "")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, "debug", NewLogger("debug").GetLevel().String())
	assert.Equal(t, "info", NewLogger("loud").GetLevel().String())
}
