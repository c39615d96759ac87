package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/pyramide/event-api/internal/config"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Kafka struct {
	writer messageWriter
}

// NewKafka returns a Kafka publisher, or Nop when the broker cannot be
// reached at startup.
func NewKafka(conf *config.KafkaConfig) Publisher {
	if len(conf.Brokers) == 0 {
		zap.L().Warn("kafka enabled without brokers, events disabled")
		return Nop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", conf.Brokers[0])
	if err != nil {
		zap.L().Warn("kafka unreachable, events disabled", zap.Strings("brokers", conf.Brokers), zap.Error(err))
		return Nop{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             conf.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		zap.L().Info("kafka topic not created", zap.String("topic", conf.Topic), zap.Error(err))
	}

	zap.L().Info("kafka publisher ready", zap.Strings("brokers", conf.Brokers), zap.String("topic", conf.Topic))

	return newKafka(&kafka.Writer{
		Addr:         kafka.TCP(conf.Brokers...),
		Topic:        conf.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	})
}

func newKafka(w messageWriter) *Kafka {
	return &Kafka{writer: w}
}

// Publish writes e keyed by e.Key so events for one entity stay ordered.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Key),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("k.writer.WriteMessages -> %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
