// Package kafka publishes finished assessments to the sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/orchardwatch/leaf-risk-service/internal/config"
	"github.com/orchardwatch/leaf-risk-service/internal/domain"
)

// Publisher produces assessment messages to a Kafka topic.
// It implements advisor.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAssessment serializes and publishes one assessment to the sink
// topic. The assessment ID keys the message, so replays of the same reading
// land on the same partition.
func (p *Publisher) PublishAssessment(ctx context.Context, a domain.Assessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an Assessment into a Kafka message.
func serializeToMessage(a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(a.Aggregate.RiskLevel)},
			{Key: "assessed_at", Value: []byte(a.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
