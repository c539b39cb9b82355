//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/orchardwatch/leaf-risk-service/internal/adapter/kafka"
	"github.com/orchardwatch/leaf-risk-service/internal/config"
	"github.com/orchardwatch/leaf-risk-service/internal/domain"
)

const testSinkTopic = "test-assessments"

// startKafka runs a single-broker Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPublishAssessment verifies the publisher end to end: an assessment
// written through kafka.Publisher arrives on the sink topic with the
// expected key, headers, and payload.
func TestPublishAssessment(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	temp, rh, rain, wet := 18.0, 90.0, 8.0, 10.0
	raw := domain.RawReading{
		Temperature:      &temp,
		RelativeHumidity: &rh,
		Rainfall:         &rain,
		WetnessHours:     &wet,
	}
	assessment := domain.NewAssessment(raw.Normalize())

	publisher := kafka.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.PublishAssessment(ctx, assessment))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	assert.Equal(t, assessment.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, string(assessment.Aggregate.RiskLevel), headers["risk_level"])
	_, err = time.Parse(time.RFC3339, headers["assessed_at"])
	assert.NoError(t, err, "assessed_at should be valid RFC3339")

	var got domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &got), "unmarshal sink message")
	assert.Equal(t, assessment.ID, got.ID)
	assert.Equal(t, 18.0, got.Reading.Temperature)
	assert.Len(t, got.Diseases, 10)
	assert.Len(t, got.Pests, 6)

	// Apple Scab matches every one of its checks for this reading.
	assert.Equal(t, "Apple Scab", got.Diseases[0].Name)
	assert.Equal(t, 100.0, got.Diseases[0].Score)
	assert.Equal(t, domain.LevelHigh, got.Diseases[0].Level)
}
