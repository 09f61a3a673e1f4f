package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "REDIS_ADDR", "AUTH_ADMIN_USERS", "AUTH_IDENTITY_HEADER", "HTTP_REQUEST_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "X-Remote-User", cfg.Auth.IdentityHeader)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Nil(t, cfg.Auth.AdminUsers)
	assert.Equal(t, 5*time.Minute, cfg.Redis.FlashTTL())
}

func TestLoadAdminUsers(t *testing.T) {
	t.Setenv("AUTH_ADMIN_USERS", " CORP\\alice, ,CORP\\bob ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"CORP\\alice", "CORP\\bob"}, cfg.Auth.AdminUsers)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid REDIS_DB")
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}

func TestLoadLoggerFollowsAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_NAME", "tid")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Logger.Development)
	assert.Equal(t, "tid", cfg.Logger.Service)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/Copenhagen")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Copenhagen", cfg.App.Location().String())

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid APP_TIMEZONE")

	assert.Equal(t, time.Local, AppConfig{}.Location())
}
