package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_QUOTA_WINDOW", "")
	t.Setenv("QUOTA_BACKEND", "")
	t.Setenv("LOG_RETENTION_DAYS", "")

	cfg := Load()
	assert.Equal(t, time.Minute, cfg.QuotaWindow)
	assert.Equal(t, "db", cfg.QuotaBackend)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_QUOTA_WINDOW", "1h")
	t.Setenv("QUOTA_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.QuotaWindow)
	assert.Equal(t, "redis", cfg.QuotaBackend)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestParseFallbacks(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, 7, parseInt("seven", 7))
}
