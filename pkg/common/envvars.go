package common

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvServerHostname         = "SERVER_HOSTNAME"
	EnvAPIBaseURL             = "API_BASE_URL"
	EnvAPITimeoutMs           = "API_TIMEOUT_MS"
	EnvClientURL              = "CLIENT_URL"
	EnvOAuthRedirectURI       = "OAUTH_REDIRECT_URI"
	EnvSessionStore           = "SESSION_STORE"
	EnvSessionFilePath        = "SESSION_FILE_PATH"
	EnvRedisAddr              = "REDIS_ADDR"
	EnvRedisPassword          = "REDIS_PASSWORD"
	EnvDbConnectionString     = "DB_CONNECTION_STRING"
	EnvDbTestConnectionString = "DB_TEST_CONNECTION_STRING"
	EnvRedisTestAddr          = "REDIS_TEST_ADDR"
	EnvGeocoderBaseURL        = "GEOCODER_BASE_URL"
	EnvLogLevel               = "LOG_LEVEL"
)

const (
	DefaultAPITimeout      = 10 * time.Second
	DefaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"
	DefaultSessionFile     = ".furglo_session.json"
)

var (
	_, b, _, _ = runtime.Caller(0)

	// Root folder of this project
	RootFilePath = filepath.Join(filepath.Dir(b), "../..")
)

type Config struct {
	ServerHostname   string
	APIBaseURL       string
	APITimeout       time.Duration
	ClientURL        string
	OAuthRedirectURI string
	SessionStore     string
	SessionFilePath  string
	RedisAddr        string
	RedisPassword    string
	DbConnection     string
	GeocoderBaseURL  string
	LogLevel         string
}

func LoadEnv() error {
	return godotenv.Load(filepath.Join(RootFilePath, ".env"))
}

func MustLoadEnv() {
	if err := LoadEnv(); err != nil {
		logrus.WithError(err).Fatal("failed to load .env")
	}

	assertEnvVarsSet()
}

// LoadConfig reads the process environment. Call LoadEnv first when a .env file should apply.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHostname:   os.Getenv(EnvServerHostname),
		APIBaseURL:       strings.TrimRight(os.Getenv(EnvAPIBaseURL), "/"),
		APITimeout:       DefaultAPITimeout,
		ClientURL:        strings.TrimRight(os.Getenv(EnvClientURL), "/"),
		OAuthRedirectURI: os.Getenv(EnvOAuthRedirectURI),
		SessionStore:     getEnv(EnvSessionStore, "file"),
		SessionFilePath:  getEnv(EnvSessionFilePath, filepath.Join(RootFilePath, DefaultSessionFile)),
		RedisAddr:        os.Getenv(EnvRedisAddr),
		RedisPassword:    os.Getenv(EnvRedisPassword),
		DbConnection:     os.Getenv(EnvDbConnectionString),
		GeocoderBaseURL:  strings.TrimRight(getEnv(EnvGeocoderBaseURL, DefaultGeocoderBaseURL), "/"),
		LogLevel:         getEnv(EnvLogLevel, "info"),
	}

	if raw := os.Getenv(EnvAPITimeoutMs); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms <= 0 {
			return nil, errors.Errorf("failed to parse configured api timeout %q", raw)
		}
		cfg.APITimeout = time.Duration(ms) * time.Millisecond
	}

	if cfg.OAuthRedirectURI == "" && cfg.ClientURL != "" {
		cfg.OAuthRedirectURI = cfg.ClientURL + "/auth/callback"
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.Errorf("%s must be set", EnvAPIBaseURL)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}

	return fallback
}

func assertEnvVarsSet() {
	allVars := []string{
		EnvServerHostname,
		EnvAPIBaseURL,
	}

	fail := false

	for _, envVar := range allVars {
		if os.Getenv(envVar) == "" {
			logrus.Errorf("environment var '%s' must be set", envVar)
			fail = true
		}
	}

	if fail {
		logrus.Fatal("Some required env vars missing! Copy `.env.example` to `.env` and fill in the values.")
	}
}
