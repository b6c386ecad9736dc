package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// HealthChecker reports broker reachability through the admin API.
type HealthChecker struct {
	admin *kadm.Client
	topic string
}

// NewHealthChecker builds a checker on top of an existing franz-go client.
// When topic is set the check also requires that topic's metadata to load.
func NewHealthChecker(client *kgo.Client, topic string) *HealthChecker {
	return &HealthChecker{admin: kadm.NewClient(client), topic: topic}
}

func (h *HealthChecker) Check(ctx context.Context) error {
	if h == nil || h.admin == nil {
		return errors.New("kafka not configured")
	}
	brokers, err := h.admin.ListBrokers(ctx)
	if err != nil {
		return fmt.Errorf("list brokers: %w", err)
	}
	if len(brokers) == 0 {
		return errors.New("no kafka brokers reachable")
	}
	if h.topic == "" {
		return nil
	}
	topics, err := h.admin.ListTopics(ctx, h.topic)
	if err != nil {
		return fmt.Errorf("describe topic %s: %w", h.topic, err)
	}
	if err := topics.Error(); err != nil {
		return fmt.Errorf("topic %s: %w", h.topic, err)
	}
	return nil
}

func (h *HealthChecker) Name() string {
	return "kafka"
}
