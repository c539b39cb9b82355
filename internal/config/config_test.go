package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWeatherToken = "wx.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "leaf-risk-assessments", cfg.KafkaSinkTopic)
	assert.False(t, cfg.KafkaEnabled)
	assert.False(t, cfg.WeatherEnabled)
	assert.Empty(t, cfg.WeatherToken)
	assert.Equal(t, "https://gateway.agrisense.io/v1", cfg.WeatherBaseURL)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 1000, cfg.WeatherCacheSize)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-assessments")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("WEATHER_TOKEN", testWeatherToken)
	t.Setenv("WEATHER_BASE_URL", "https://wx.example.test/v1")
	t.Setenv("WEATHER_TIMEOUT", "10s")
	t.Setenv("WEATHER_CACHE_SIZE", "500")
	t.Setenv("WEATHER_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-assessments", cfg.KafkaSinkTopic)
	assert.True(t, cfg.KafkaEnabled)
	assert.True(t, cfg.WeatherEnabled)
	assert.Equal(t, testWeatherToken, cfg.WeatherToken)
	assert.Equal(t, "https://wx.example.test/v1", cfg.WeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 500, cfg.WeatherCacheSize)
	assert.Equal(t, 1*time.Minute, cfg.WeatherCacheTTL)
}

func TestLoad_TokenImpliesWeatherEnabled(t *testing.T) {
	t.Setenv("WEATHER_TOKEN", testWeatherToken)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.WeatherEnabled)

	t.Setenv("WEATHER_ENABLED", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.WeatherEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeWeatherTimeout(t *testing.T) {
	t.Setenv("WEATHER_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_TIMEOUT")
}

func TestLoad_WeatherEnabledWithoutToken(t *testing.T) {
	t.Setenv("WEATHER_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_TOKEN")
}

func TestLoad_InvalidCacheSizeFallsBack(t *testing.T) {
	t.Setenv("WEATHER_CACHE_SIZE", "zero")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.WeatherCacheSize)
}
