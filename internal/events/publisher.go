package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ppiankov/truthlens/internal/model"
)

// AnalysisCompleted is emitted once per stored analysis
type AnalysisCompleted struct {
	ID         string            `json:"id"`
	Type       model.ContentType `json:"type"`
	Overall    int               `json:"overall"`
	AnalyzedAt time.Time         `json:"analyzedAt"`
}

// NewAnalysisCompleted builds the event for a result
func NewAnalysisCompleted(result *model.AnalysisResult) AnalysisCompleted {
	return AnalysisCompleted{
		ID:         result.ID,
		Type:       result.Type,
		Overall:    result.CredibilityScore.Overall,
		AnalyzedAt: result.AnalyzedAt,
	}
}

// Publisher announces completed analyses
type Publisher interface {
	Publish(ctx context.Context, result *model.AnalysisResult) error
	Close() error
}

// New returns a Kafka publisher when brokers are configured, otherwise Noop
func New(cfg model.EventsConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		return Noop{}
	}
	return NewKafkaPublisher(cfg.Brokers, cfg.Topic)
}

// Noop discards events
type Noop struct{}

func (Noop) Publish(context.Context, *model.AnalysisResult) error { return nil }
func (Noop) Close() error                                         { return nil }

// messageWriter is the part of kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes AnalysisCompleted events to a Kafka topic
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a synchronous producer for topic
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

// Publish writes one message keyed by analysis id
func (p *KafkaPublisher) Publish(ctx context.Context, result *model.AnalysisResult) error {
	payload, err := json.Marshal(NewAnalysisCompleted(result))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(result.ID),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event to kafka: %w", err)
	}
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
