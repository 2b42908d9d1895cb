package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, StorageModeRedis, cfg.Storage.Mode)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "console:", cfg.Storage.KeyPrefix)
	assert.True(t, cfg.Poller.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Poller.RefreshEvery)
}

func TestAppConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("API_BASE_URL", "https://api.accreditation.example")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORAGE_MODE", "memory")
	t.Setenv("STORAGE_KEY_PREFIX", "acme:")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POLLER_ENABLED", "false")
	t.Setenv("POLLER_INTERVAL", "10s")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.True(t, cfg.IsDev)
	assert.Equal(t, "https://api.accreditation.example", cfg.API.BaseURL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, StorageModeMemory, cfg.Storage.Mode)
	assert.Equal(t, "acme:", cfg.Storage.KeyPrefix)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 3, cfg.Storage.Redis.DB)
	assert.False(t, cfg.Poller.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Poller.Interval)
}

func TestAPIConfig_SanitizeTrimsTrailingSlash(t *testing.T) {
	a := APIConfig{BaseURL: "https://api.example.com///"}
	a.Sanitize()
	assert.Equal(t, "https://api.example.com", a.BaseURL)

	a = APIConfig{BaseURL: "https://api.example.com"}
	a.Sanitize()
	assert.Equal(t, "https://api.example.com", a.BaseURL)
}

func TestPollerConfig_SanitizeClamps(t *testing.T) {
	p := PollerConfig{Interval: 50 * time.Millisecond, RefreshEvery: 10 * time.Second}
	p.Sanitize()
	assert.Equal(t, time.Second, p.Interval)
	assert.Equal(t, 10*time.Second, p.RefreshEvery)

	p = PollerConfig{Interval: time.Minute, RefreshEvery: 5 * time.Second}
	p.Sanitize()
	assert.Equal(t, time.Minute, p.Interval)
	assert.Equal(t, time.Minute, p.RefreshEvery, "refresh cadence never beats the poll interval")
}
