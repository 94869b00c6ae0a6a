package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/avelines/newspulse/internal/models"
)

// KafkaPublisher pushes freshly scored batches onto a topic for downstream
// consumers. Publishing is best effort; callers log and move on when it
// fails.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(broker, topic string) (*KafkaPublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka producer initialized successfully")
	return &KafkaPublisher{producer: p, topic: topic}, nil
}

// PublishBatch sends one scored batch as a single message keyed by batchID.
func (kp *KafkaPublisher) PublishBatch(batchID string, batch []models.ScoredArticle) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal batch: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &kp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(batchID),
		Value:          jsonData,
	}

	if err := kp.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce batch: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event %T", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
		}
	case <-time.After(10 * time.Second):
		return fmt.Errorf("[KafkaClient] delivery confirmation timed out")
	}

	slog.Info("[KafkaClient] Batch published",
		slog.String("batch_id", batchID),
		slog.Int("items", len(batch)))
	return nil
}

// Close flushes outstanding messages before shutting the producer down.
func (kp *KafkaPublisher) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := kp.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kp.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}
