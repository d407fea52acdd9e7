// Package events publishes domain events emitted by resource mutations.
package events

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	TypeUserCreated     = "user.created"
	TypeUserDeleted     = "user.deleted"
	TypePostCreated     = "post.created"
	TypePostDeleted     = "post.deleted"
	TypePostPublished   = "post.published"
	TypePostUnpublished = "post.unpublished"
)

// Event is the wire shape written to the topic.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Publisher emits an event best-effort: failures are logged, never
// surfaced to the request that triggered them.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any)
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, data any) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling event %s", eventType)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error publishing event %s", eventType)
	}
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) {}
