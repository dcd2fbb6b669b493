// Package messaging publica eventos de stock en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

var (
	_ inventory.EventPublisher = (*KafkaPublisher)(nil)
	_ inventory.EventPublisher = NopPublisher{}
)

// MessageWriter subconjunto de *kafka.Writer usado por el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica StockEvent como JSON. La clave es el ID del producto para
// que los eventos de un mismo producto caigan en la misma partición.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaWriter construye el writer de kafka-go para el tópico de eventos de stock.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		BatchSize:              100,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher construye el publicador sobre un writer ya configurado.
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishStockEvent serializa el evento e inyecta el contexto de traza W3C en los headers.
func (p *KafkaPublisher) PublishStockEvent(ctx context.Context, event *entity.StockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("messaging: serializar evento: %w", err)
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []kafka.Header{{Key: "event-type", Value: []byte(event.Type)}}
	for _, k := range carrier.Keys() {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(carrier.Get(k))})
	}

	msg := kafka.Message{
		Key:     []byte(event.ProductID),
		Value:   payload,
		Headers: headers,
		Time:    event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("messaging: publicar evento %s: %w", event.ID, err)
	}
	return nil
}

// Close cierra el writer subyacente.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher descarta los eventos (Kafka deshabilitado).
type NopPublisher struct{}

// PublishStockEvent no hace nada.
func (NopPublisher) PublishStockEvent(context.Context, *entity.StockEvent) error { return nil }
