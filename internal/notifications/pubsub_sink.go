package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
)

type publishFunc func(ctx context.Context, msg *pubsub.Message) error

// PubSubSink forwards order events as JSON messages to a Pub/Sub topic.
type PubSubSink struct {
	publish publishFunc
	stop    func()
}

// NewPubSubSink wraps a topic publisher.
func NewPubSubSink(publisher *pubsub.Publisher) (*PubSubSink, error) {
	if publisher == nil {
		return nil, errors.New("pubsub publisher required")
	}
	return &PubSubSink{
		publish: func(ctx context.Context, msg *pubsub.Message) error {
			_, err := publisher.Publish(ctx, msg).Get(ctx)
			return err
		},
		stop: publisher.Stop,
	}, nil
}

func (s *PubSubSink) Name() string {
	return "pubsub"
}

// Deliver publishes the event and waits for the server ack.
func (s *PubSubSink) Deliver(ctx context.Context, event OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":     event.EventID.String(),
			"event_type":   event.Type.String(),
			"tenant_id":    event.TenantID.String(),
			"order_number": event.OrderNumber,
		},
	}
	if err := s.publish(ctx, msg); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Close flushes pending messages and stops the publisher.
func (s *PubSubSink) Close() error {
	if s.stop != nil {
		s.stop()
	}
	return nil
}
