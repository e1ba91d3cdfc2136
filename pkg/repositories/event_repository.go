package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// EventRepository provides access to the append-only audit log. Entries are
// never updated or deleted.
type EventRepository interface {
	// Create appends a new event.
	Create(ctx context.Context, event *models.PipelineEvent) error

	// List returns events matching the filter, newest first.
	List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error)
}

type eventRepository struct{}

// NewEventRepository creates a new EventRepository.
func NewEventRepository() EventRepository {
	return &eventRepository{}
}

var _ EventRepository = (*eventRepository)(nil)

func (r *eventRepository) Create(ctx context.Context, event *models.PipelineEvent) error {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return fmt.Errorf("no request scope in context")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	var payloadJSON []byte
	var err error
	if len(event.Payload) > 0 {
		payloadJSON, err = json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}
	}

	query := `
		INSERT INTO pipeline_events (
			id, event_type, subject_id, actor_org_id, actor_user_id, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = scope.Conn.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.SubjectID,
		event.ActorOrgID,
		event.ActorUserID,
		payloadJSON,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *eventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT id, event_type, subject_id, actor_org_id, actor_user_id, payload, created_at
		FROM pipeline_events
		WHERE ($1::uuid IS NULL OR subject_id = $1)
		  AND ($2::text IS NULL OR event_type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	var subjectID *uuid.UUID
	if filter.SubjectID != uuid.Nil {
		subjectID = &filter.SubjectID
	}
	var eventType *string
	if filter.EventType != "" {
		eventType = &filter.EventType
	}

	rows, err := scope.Conn.Query(ctx, query, subjectID, eventType, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.PipelineEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row) (*models.PipelineEvent, error) {
	var event models.PipelineEvent
	var payloadJSON []byte

	err := row.Scan(
		&event.ID,
		&event.EventType,
		&event.SubjectID,
		&event.ActorOrgID,
		&event.ActorUserID,
		&payloadJSON,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	if len(payloadJSON) > 0 && string(payloadJSON) != "null" {
		if err := json.Unmarshal(payloadJSON, &event.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
		}
	}

	return &event, nil
}
