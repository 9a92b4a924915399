package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetJWTConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_TTL", "")
		t.Setenv("JWT_ISSUER", "")

		cfg := GetJWTConfig()

		assert.Equal(t, 12*time.Hour, cfg.TTL)
		assert.Equal(t, "eventool", cfg.Issuer)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("JWT_TTL", "30m")
		t.Setenv("JWT_KEY", "secret")

		cfg := GetJWTConfig()

		assert.Equal(t, 30*time.Minute, cfg.TTL)
		assert.Equal(t, "secret", cfg.Key)
	})
}

func TestGetRedisConfig(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("EVENT_CACHE_TTL", "")

	cfg := GetRedisConfig()

	assert.Equal(t, 3, cfg.DB)
	assert.Equal(t, 10*time.Minute, cfg.EventTTL)
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")

	assert.Equal(t, StorageDriverPostgres, GetServerConfig().StorageDriver)
}

func TestGetStorageConfig_InvalidBool(t *testing.T) {
	t.Setenv("S3_USE_SSL", "maybe")

	assert.Panics(t, func() { GetStorageConfig() })
}
