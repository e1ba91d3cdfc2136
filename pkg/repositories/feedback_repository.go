package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// FeedbackRepository provides data access for per-candidate feedback.
// One logical record exists per (match list, org); concurrent writers are
// resolved last-write-wins by the server-assigned timestamp.
type FeedbackRepository interface {
	// Upsert writes the feedback record, superseding any earlier state for
	// the same (match list, org) pair. A stale concurrent write (older
	// timestamp) never overwrites a newer one.
	Upsert(ctx context.Context, record *models.FeedbackRecord) error

	// GetByMatchList returns all feedback records for a match list.
	GetByMatchList(ctx context.Context, matchListID uuid.UUID) ([]*models.FeedbackRecord, error)

	// Get returns the feedback record for one candidate, or nil when the
	// candidate has no recorded feedback (implicitly NEUTRAL).
	Get(ctx context.Context, matchListID, orgID uuid.UUID) (*models.FeedbackRecord, error)
}

type feedbackRepository struct{}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository() FeedbackRepository {
	return &feedbackRepository{}
}

var _ FeedbackRepository = (*feedbackRepository)(nil)

func (r *feedbackRepository) Upsert(ctx context.Context, record *models.FeedbackRecord) error {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return fmt.Errorf("no request scope in context")
	}

	query := `
		INSERT INTO match_feedback (match_list_id, org_id, status, acting_user_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_list_id, org_id) DO UPDATE SET
			status = EXCLUDED.status,
			acting_user_id = EXCLUDED.acting_user_id,
			updated_at = EXCLUDED.updated_at
		WHERE match_feedback.updated_at <= EXCLUDED.updated_at`

	_, err := scope.Conn.Exec(ctx, query,
		record.MatchListID,
		record.OrgID,
		record.Status,
		record.ActingUserID,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}

	return nil
}

func (r *feedbackRepository) GetByMatchList(ctx context.Context, matchListID uuid.UUID) ([]*models.FeedbackRecord, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT match_list_id, org_id, status, acting_user_id, updated_at
		FROM match_feedback
		WHERE match_list_id = $1`

	rows, err := scope.Conn.Query(ctx, query, matchListID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []*models.FeedbackRecord
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(
			&rec.MatchListID,
			&rec.OrgID,
			&rec.Status,
			&rec.ActingUserID,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback records: %w", err)
	}

	return records, nil
}

func (r *feedbackRepository) Get(ctx context.Context, matchListID, orgID uuid.UUID) (*models.FeedbackRecord, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT match_list_id, org_id, status, acting_user_id, updated_at
		FROM match_feedback
		WHERE match_list_id = $1 AND org_id = $2`

	var rec models.FeedbackRecord
	err := scope.Conn.QueryRow(ctx, query, matchListID, orgID).Scan(
		&rec.MatchListID,
		&rec.OrgID,
		&rec.Status,
		&rec.ActingUserID,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query feedback record: %w", err)
	}

	return &rec, nil
}
