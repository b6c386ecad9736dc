package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"

	"examreg/internal/platform/kafka/producer"
	"examreg/pkg/platform/circuit"
)

// MessageProducer is satisfied by *producer.Producer.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher writes events as JSON to a topic, keyed by request id so one
// request's events land on the same partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
	breaker  *circuit.Breaker
}

func NewKafkaPublisher(p MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: p,
		topic:    topic,
		logger:   logger,
		breaker:  circuit.New("audit-kafka"),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := sonic.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	err = p.producer.Produce(ctx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(e.RequestID),
		Value:   value,
		Headers: map[string]string{"event_type": string(e.Type)},
	})

	switch p.breaker.Record(err) {
	case circuit.Opened:
		p.logger.WarnContext(ctx, "audit kafka sink degraded", "topic", p.topic, "error", err)
	case circuit.Closed:
		p.logger.InfoContext(ctx, "audit kafka sink recovered", "topic", p.topic)
	}
	if err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
