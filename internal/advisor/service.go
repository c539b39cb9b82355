// Package advisor orchestrates the risk engine: it normalizes incoming
// readings, runs the scorers, records observability signals, and hands
// finished assessments to the optional publisher.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
	"github.com/orchardwatch/leaf-risk-service/internal/observability"
)

// ErrProviderDisabled is returned by AssessLocation when no climate
// provider is configured. Callers translate it into their own
// "no climate data available" message; the engine never reports errors.
var ErrProviderDisabled = errors.New("no climate data provider configured")

// Publisher delivers finished assessments to a downstream sink.
type Publisher interface {
	PublishAssessment(ctx context.Context, a domain.Assessment) error
}

// Service wires the climate provider, the risk engine, and the assessment
// publisher. Assessments themselves are pure computation; the service adds
// the side effects around them.
type Service struct {
	provider  domain.ClimateProvider
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New validates the static risk catalog and returns a Service. Pass a nil
// provider or publisher to disable the corresponding integration.
func New(provider domain.ClimateProvider, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) (*Service, error) {
	if err := domain.ValidateCatalog(); err != nil {
		return nil, fmt.Errorf("validate risk catalog: %w", err)
	}

	s := &Service{
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
	s.ready.Store(true)
	metrics.AdvisorReady.Set(1)
	return s, nil
}

// CheckReadiness returns nil once the risk catalog has been validated.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("risk catalog has not been validated")
	}
	return nil
}

// Assess normalizes a raw reading, runs both engine consumers, and
// publishes the result best-effort. It never fails: malformed or partial
// input degrades to defaults inside normalization.
func (s *Service) Assess(ctx context.Context, raw domain.RawReading, source string) domain.Assessment {
	start := time.Now()

	assessment := domain.NewAssessment(raw.Normalize())

	s.metrics.AssessmentsTotal.WithLabelValues(source).Inc()
	s.metrics.AggregateLevels.WithLabelValues(string(assessment.Aggregate.RiskLevel)).Inc()
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("assessment produced",
		"assessment_id", assessment.ID,
		"source", source,
		"aggregate_score", assessment.Aggregate.RiskScore,
		"aggregate_level", assessment.Aggregate.RiskLevel,
	)

	s.publish(ctx, assessment)
	return assessment
}

// AssessLocation fetches a reading from the weather provider for the given
// coordinate and assesses it.
func (s *Service) AssessLocation(ctx context.Context, lat, lon float64) (domain.Assessment, error) {
	if s.provider == nil {
		return domain.Assessment{}, ErrProviderDisabled
	}

	raw, err := s.provider.FetchReading(ctx, lat, lon)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("fetch climate reading: %w", err)
	}

	return s.Assess(ctx, raw, "location"), nil
}

// publish hands the assessment to the sink, if one is configured.
// Publish failures are logged and counted, never surfaced to the caller:
// the assessment is already complete and valid.
func (s *Service) publish(ctx context.Context, a domain.Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAssessment(ctx, a); err != nil {
		s.logger.Warn("publish assessment failed", "assessment_id", a.ID, "error", err)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.AssessmentsPublished.Inc()
}
