package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// MySQL backing store (reports and alerts).
	MySQLDSN string

	// Aggregation settings.
	ReportFetchLimit int
	CacheTTL         time.Duration

	// Alert evaluator settings.
	AlertCooldown      time.Duration
	AlertCheckSchedule string // cron expression; empty disables the scheduler

	// Optional social media analytics source.
	SocialAPIURL  string
	SocialTimeout time.Duration

	// Optional Kafka alert fan-out.
	KafkaEnabled    bool
	KafkaBrokers    []string
	AlertsSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	alertCooldown, err := parseDuration("ALERT_COOLDOWN", "1h")
	if err != nil {
		return nil, err
	}
	socialTimeout, err := parseDuration("SOCIAL_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	fetchLimit, err := parseInt("REPORT_FETCH_LIMIT", 1000)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MySQLDSN: os.Getenv("MYSQL_DSN"),

		ReportFetchLimit: fetchLimit,
		CacheTTL:         cacheTTL,

		AlertCooldown:      alertCooldown,
		AlertCheckSchedule: os.Getenv("ALERT_CHECK_SCHEDULE"),

		SocialAPIURL:  os.Getenv("SOCIAL_API_URL"),
		SocialTimeout: socialTimeout,

		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		AlertsSinkTopic: envOrDefault("ALERTS_SINK_TOPIC", "hazard-alerts"),
	}

	if cfg.MySQLDSN == "" {
		return nil, errors.New("MYSQL_DSN is required")
	}
	if cfg.ReportFetchLimit <= 0 {
		return nil, errors.New("REPORT_FETCH_LIMIT must be positive")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
