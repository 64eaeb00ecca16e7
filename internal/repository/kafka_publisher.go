package repository

import (
	"context"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/internal/domain/repository"
	pkgkafka "FinDash/pkg/kafka"
)

// eventProducer is the part of the Kafka producer the publisher uses.
type eventProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher publishes domain events keyed by symbol, so one symbol stays on one partition.
type KafkaPublisher struct {
	producer eventProducer
	topic    string
	metrics  repository.Metrics
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string, m repository.Metrics) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, metrics: m}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	key := ev.Symbol
	if key == "" {
		key = ev.Type
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(key), ev); err != nil {
		if p.metrics != nil {
			p.metrics.RecordError("publish")
		}
		return err
	}
	if p.metrics != nil {
		p.metrics.RecordEvent(ev.Type)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.Event) error { return nil }
func (NoopPublisher) Close() error                                { return nil }
