package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/orchardwatch/leaf-risk-service/internal/adapter/http"
	kafkaadapter "github.com/orchardwatch/leaf-risk-service/internal/adapter/kafka"
	"github.com/orchardwatch/leaf-risk-service/internal/adapter/weather"
	"github.com/orchardwatch/leaf-risk-service/internal/advisor"
	"github.com/orchardwatch/leaf-risk-service/internal/config"
	"github.com/orchardwatch/leaf-risk-service/internal/domain"
	"github.com/orchardwatch/leaf-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize weather provider (feature-flagged via WEATHER_ENABLED / WEATHER_TOKEN).
	var provider domain.ClimateProvider
	if cfg.WeatherEnabled {
		client := weather.NewClient(cfg.WeatherToken, cfg.WeatherBaseURL, cfg.WeatherTimeout, metrics, logger)
		provider = weather.NewCachedProvider(client, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, metrics)
		metrics.WeatherEnabled.Set(1)
		logger.Info("weather provider enabled", "cache_size", cfg.WeatherCacheSize, "cache_ttl", cfg.WeatherCacheTTL)
	} else {
		logger.Info("weather provider disabled")
	}

	// Initialize assessment publisher (feature-flagged via KAFKA_ENABLED).
	var publisher advisor.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("assessment publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("assessment publishing disabled")
	}

	service, err := advisor.New(provider, publisher, logger, metrics)
	if err != nil {
		logger.Error("failed to initialize advisor", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
