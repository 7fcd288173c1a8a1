package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://localhost:5173")

	cfg := LoadEnv()

	assert.Equal(t, 5, cfg.Postgres.TxMaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Postgres.TxMaxRetryDelay)
	assert.Equal(t, 3*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10*time.Second, cfg.Redis.StatsTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_KEY", "another-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,,kafka-2:9092")
	t.Setenv("TX_MAX_RETRY_DELAY", "2s")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadEnv()

	assert.Equal(t, "another-secret", cfg.JWT.SecretKey)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Second, cfg.Postgres.TxMaxRetryDelay)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}
