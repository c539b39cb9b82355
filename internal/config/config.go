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

	// Kafka assessment publishing configuration.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool

	// Weather provider configuration.
	WeatherToken     string
	WeatherEnabled   bool
	WeatherBaseURL   string
	WeatherTimeout   time.Duration
	WeatherCacheSize int
	WeatherCacheTTL  time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	weatherCacheTTL, err := parseDuration("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	weatherToken := os.Getenv("WEATHER_TOKEN")
	weatherEnabled := weatherToken != ""
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "leaf-risk-assessments"),
		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",

		WeatherToken:     weatherToken,
		WeatherEnabled:   weatherEnabled,
		WeatherBaseURL:   envOrDefault("WEATHER_BASE_URL", "https://gateway.agrisense.io/v1"),
		WeatherTimeout:   weatherTimeout,
		WeatherCacheSize: parseWeatherCacheSize(),
		WeatherCacheTTL:  weatherCacheTTL,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
	}
	if cfg.WeatherEnabled && cfg.WeatherToken == "" {
		return nil, errors.New("WEATHER_ENABLED is true but WEATHER_TOKEN is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBrokers splits a comma-separated broker list, trimming whitespace and
// dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// parseDuration reads a positive duration from the environment, falling back
// to the given default when unset.
func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseWeatherCacheSize() int {
	if s := os.Getenv("WEATHER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
