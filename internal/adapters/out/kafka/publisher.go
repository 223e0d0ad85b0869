// Package kafka relays outbox messages to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"fmt"

	"production/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerEventName = "event-name"
	headerEventID   = "event-id"
	traceparentKey  = "traceparent"
	instrumentation = "production/internal/adapters/out/kafka"
)

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher writes one record per outbox message. The record key is the
// order id so every event of an order lands on the same partition in order.
type Publisher struct {
	producer Producer
	topic    string
	tracer   trace.Tracer
}

func NewPublisher(producer Producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		tracer:   otel.Tracer(instrumentation),
	}
}

// NewClient connects a producer-only franz-go client.
func NewClient(brokers ...string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(0),
	)
}

func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	ctx, span := p.tracer.Start(ctx, "kafka.publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination.name", p.topic),
		attribute.String("event.name", msg.Name),
		attribute.String("order.id", msg.AggregateID.String()),
	)

	record := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(msg.AggregateID.String()),
		Value:   msg.Payload,
		Headers: recordHeaders(ctx, msg),
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce failed")
		return fmt.Errorf("produce %s to %s: %w", msg.Name, p.topic, err)
	}
	return nil
}

func recordHeaders(ctx context.Context, msg ports.OutboxMessage) []kgo.RecordHeader {
	headers := []kgo.RecordHeader{
		{Key: headerEventName, Value: []byte(msg.Name)},
		{Key: headerEventID, Value: []byte(msg.ID.String())},
	}

	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)
	if tp, ok := carrier[traceparentKey]; ok {
		headers = append(headers, kgo.RecordHeader{Key: traceparentKey, Value: []byte(tp)})
	}
	return headers
}
