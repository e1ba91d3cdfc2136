// Package repositories provides PostgreSQL data access for intentlane-engine.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// IntentRepository provides data access for intents.
type IntentRepository interface {
	// GetByID returns the intent with the given ID.
	GetByID(ctx context.Context, intentID uuid.UUID) (*models.Intent, error)

	// ChangeStage sets the intent's stage, stamps last activity, and appends
	// exactly one stage-change event - all in a single transaction, so a
	// transition and its audit event are atomic.
	ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage, actor models.Actor) (*models.Intent, *models.PipelineEvent, error)
}

type intentRepository struct{}

// NewIntentRepository creates a new IntentRepository.
func NewIntentRepository() IntentRepository {
	return &intentRepository{}
}

var _ IntentRepository = (*intentRepository)(nil)

const intentColumns = `
	id, owner_org_id, title, goal, client_name, stage, confidentiality_level,
	source_text_raw, required_languages, required_tech_stack,
	required_industries, required_markets, budget_bucket,
	last_activity_at, created_at, updated_at`

func (r *intentRepository) GetByID(ctx context.Context, intentID uuid.UUID) (*models.Intent, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `SELECT` + intentColumns + ` FROM intents WHERE id = $1`

	intent, err := scanIntent(scope.Conn.QueryRow(ctx, query, intentID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query intent: %w", err)
	}

	return intent, nil
}

func (r *intentRepository) ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage, actor models.Actor) (*models.Intent, *models.PipelineEvent, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, nil, fmt.Errorf("no request scope in context")
	}

	tx, err := scope.Conn.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	// Lock the row so concurrent transitions serialize; last accepted write
	// wins and each accepted request still gets its own event.
	var fromStage models.PipelineStage
	err = tx.QueryRow(ctx, `SELECT stage FROM intents WHERE id = $1 FOR UPDATE`, intentID).Scan(&fromStage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock intent: %w", err)
	}

	query := `
		UPDATE intents
		SET stage = $2, last_activity_at = $3, updated_at = $3
		WHERE id = $1
		RETURNING` + intentColumns

	intent, err := scanIntent(tx.QueryRow(ctx, query, intentID, toStage, now))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update intent stage: %w", err)
	}

	event := &models.PipelineEvent{
		ID:          uuid.New(),
		EventType:   models.EventStageChanged,
		SubjectID:   intentID,
		ActorOrgID:  actor.OrgID,
		ActorUserID: actor.UserID,
		Payload: map[string]any{
			"from_stage": fromStage.String(),
			"to_stage":   toStage.String(),
		},
		CreatedAt: now,
	}

	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO pipeline_events (
			id, event_type, subject_id, actor_org_id, actor_user_id, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.EventType, event.SubjectID, event.ActorOrgID,
		event.ActorUserID, payloadJSON, event.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to append stage-change event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit stage change: %w", err)
	}

	return intent, event, nil
}

func scanIntent(row pgx.Row) (*models.Intent, error) {
	var intent models.Intent
	err := row.Scan(
		&intent.ID,
		&intent.OwnerOrgID,
		&intent.Title,
		&intent.Goal,
		&intent.ClientName,
		&intent.Stage,
		&intent.ConfidentialityLevel,
		&intent.SourceTextRaw,
		&intent.RequiredLanguages,
		&intent.RequiredTechStack,
		&intent.RequiredIndustries,
		&intent.RequiredMarkets,
		&intent.BudgetBucket,
		&intent.LastActivityAt,
		&intent.CreatedAt,
		&intent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}
