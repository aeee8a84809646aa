package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/config"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/segmentio/kafka-go"
)

// CaseEvent is the envelope published for every case-management mutation:
// beneficiary intake, request lifecycle changes, recorded actions.
type CaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Actor     string                 `json:"actor"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// AuditSink receives a copy of every published event, typically backed
// by a database table.
type AuditSink interface {
	Record(ctx context.Context, eventType, entity, entityID, actor string, data map[string]interface{}) error
}

type Producer struct {
	writer *kafka.Writer
	audit  AuditSink
}

func NewProducer() *Producer {
	cfg := config.Load()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.CaseEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{writer: writer}
}

// WithAudit adds a sink that records every event before it is published.
// Sink failures are logged, never surfaced.
func (p *Producer) WithAudit(sink AuditSink) *Producer {
	p.audit = sink
	return p
}

func (p *Producer) PublishEvent(ctx context.Context, eventType, entity, entityID, actor string, data map[string]interface{}) error {
	event := CaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Actor:     actor,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	if p.audit != nil {
		if err := p.audit.Record(ctx, eventType, entity, entityID, actor, data); err != nil {
			logger.Log.WithError(err).WithFields(map[string]interface{}{
				"event_type": eventType,
				"entity":     entity,
			}).Warn("Failed to record audit entry")
		}
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		// Key by entity so all events for one record land in order.
		Key:   []byte(entity + ":" + entityID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "entity", Value: []byte(entity)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"event_id":   event.ID,
			"event_type": eventType,
			"entity":     entity,
		}).Error("Failed to publish case event")
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
