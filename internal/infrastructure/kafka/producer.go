package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/kafka/producer"
)

// EventProducer publishes asset lifecycle events, keyed by asset id so
// consumers see one asset's events in order.
type EventProducer struct {
	*producer.Producer
	topic string
}

func NewEventProducer(producer *producer.Producer, topic string) *EventProducer {
	return &EventProducer{
		producer,
		topic,
	}
}

func (ep *EventProducer) Publish(ctx context.Context, event *entity.AssetEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("EventProducer - Publish - json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Topic: ep.topic,
		Key:   []byte(event.AssetID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	err = ep.Writer.WriteMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("EventProducer - Publish - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()
	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
