// Package audit persists a queryable copy of every published case event.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Entry struct {
	ID        uuid.UUID              `json:"id"`
	EventType string                 `json:"event_type"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Actor     string                 `json:"actor"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type entryModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	EventType string            `gorm:"size:100;not null"`
	Entity    string            `gorm:"size:100;not null;index:idx_audit_entity,priority:1"`
	EntityID  string            `gorm:"size:100;not null;index:idx_audit_entity,priority:2"`
	Actor     string            `gorm:"size:255"`
	Data      datatypes.JSONMap
	CreatedAt time.Time
}

func (entryModel) TableName() string {
	return "audit_entries"
}

type Trail struct {
	db *gorm.DB
}

func NewTrail(db *gorm.DB) *Trail {
	return &Trail{db: db}
}

func (t *Trail) AutoMigrate() error {
	return t.db.AutoMigrate(&entryModel{})
}

// Record satisfies the producer's audit sink.
func (t *Trail) Record(ctx context.Context, eventType, entity, entityID, actor string, data map[string]interface{}) error {
	row := entryModel{
		ID:        uuid.New(),
		EventType: eventType,
		Entity:    entity,
		EntityID:  entityID,
		Actor:     actor,
		Data:      datatypes.JSONMap(data),
		CreatedAt: time.Now().UTC(),
	}
	return t.db.WithContext(ctx).Create(&row).Error
}

// ListByEntity returns the newest entries for one record, newest first.
func (t *Trail) ListByEntity(ctx context.Context, entity, entityID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []entryModel
	err := t.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:        row.ID,
			EventType: row.EventType,
			Entity:    row.Entity,
			EntityID:  row.EntityID,
			Actor:     row.Actor,
			Data:      map[string]interface{}(row.Data),
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}

var ErrInvalidEntity = errors.New("invalid audit entity")

// Entities that carry an audit trail.
var knownEntities = map[string]bool{
	"person":          true,
	"medical_history": true,
	"neoplasm":        true,
	"therapy":         true,
	"comorbidity":     true,
	"request":         true,
	"action":          true,
	"document":        true,
}

func ValidEntity(entity string) bool {
	return knownEntities[entity]
}
