package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"SHOPLIST_ADDR", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "AUTH_JWT_SECRET", "AUTH_REQUIRE_JWT", "RATE_LIMIT_WINDOW"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "shoplist.audit", cfg.Kafka.Topic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SHOPLIST_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_WINDOW", "soon")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RATE_LIMIT_WINDOW")
	})

	t.Run("required JWT without a secret", func(t *testing.T) {
		t.Setenv("AUTH_REQUIRE_JWT", "true")
		t.Setenv("AUTH_JWT_SECRET", "")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
