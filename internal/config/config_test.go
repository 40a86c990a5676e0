package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDSN = "analytics:secret@tcp(localhost:3306)/hazards?parseTime=true"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, testDSN, cfg.MySQLDSN)
		assert.Equal(t, 1000, cfg.ReportFetchLimit)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.Equal(t, time.Hour, cfg.AlertCooldown)
		assert.Empty(t, cfg.AlertCheckSchedule)
		assert.Empty(t, cfg.SocialAPIURL)
		assert.Equal(t, 5*time.Second, cfg.SocialTimeout)
		assert.False(t, cfg.KafkaEnabled)
		assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, "hazard-alerts", cfg.AlertsSinkTopic)
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)
		t.Setenv("HTTP_ADDR", ":9000")
		t.Setenv("CACHE_TTL", "90s")
		t.Setenv("ALERT_COOLDOWN", "30m")
		t.Setenv("ALERT_CHECK_SCHEDULE", "*/5 * * * *")
		t.Setenv("REPORT_FETCH_LIMIT", "250")
		t.Setenv("SOCIAL_API_URL", "http://social-monitor:8081/analytics")
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.HTTPAddr)
		assert.Equal(t, 90*time.Second, cfg.CacheTTL)
		assert.Equal(t, 30*time.Minute, cfg.AlertCooldown)
		assert.Equal(t, "*/5 * * * *", cfg.AlertCheckSchedule)
		assert.Equal(t, 250, cfg.ReportFetchLimit)
		assert.Equal(t, "http://social-monitor:8081/analytics", cfg.SocialAPIURL)
		assert.True(t, cfg.KafkaEnabled)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	})

	t.Run("missing DSN", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MYSQL_DSN")
	})

	t.Run("invalid cache ttl", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)
		t.Setenv("CACHE_TTL", "five minutes")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_TTL")
	})

	t.Run("negative cooldown rejected", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)
		t.Setenv("ALERT_COOLDOWN", "-1h")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-positive fetch limit rejected", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)
		t.Setenv("REPORT_FETCH_LIMIT", "0")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "REPORT_FETCH_LIMIT")
	})

	t.Run("kafka enabled without brokers rejected", func(t *testing.T) {
		t.Setenv("MYSQL_DSN", testDSN)
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", " , ")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "KAFKA_BROKERS")
	})
}
