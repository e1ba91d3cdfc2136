package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// MatchRepository provides data access for match lists. Lists are immutable:
// there is no update or delete, a new run inserts a new list.
type MatchRepository interface {
	// Create inserts a new match list in a single statement, so no partial
	// list is ever observable.
	Create(ctx context.Context, list *models.MatchList) error

	// GetLatestByIntent returns the newest match list for an intent, or nil
	// when no run has happened yet.
	GetLatestByIntent(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error)

	// GetByID returns the match list with the given ID, or nil when absent.
	GetByID(ctx context.Context, matchListID uuid.UUID) (*models.MatchList, error)
}

type matchRepository struct{}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository() MatchRepository {
	return &matchRepository{}
}

var _ MatchRepository = (*matchRepository)(nil)

func (r *matchRepository) Create(ctx context.Context, list *models.MatchList) error {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return fmt.Errorf("no request scope in context")
	}

	candidatesJSON, err := json.Marshal(list.Candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}

	query := `
		INSERT INTO match_lists (id, intent_id, algorithm_version, generated_at, candidates)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = scope.Conn.Exec(ctx, query,
		list.ID,
		list.IntentID,
		list.AlgorithmVersion,
		list.GeneratedAt,
		candidatesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create match list: %w", err)
	}

	return nil
}

func (r *matchRepository) GetLatestByIntent(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT id, intent_id, algorithm_version, generated_at, candidates
		FROM match_lists
		WHERE intent_id = $1
		ORDER BY generated_at DESC, id DESC
		LIMIT 1`

	list, err := scanMatchList(scope.Conn.QueryRow(ctx, query, intentID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest match list: %w", err)
	}

	return list, nil
}

func (r *matchRepository) GetByID(ctx context.Context, matchListID uuid.UUID) (*models.MatchList, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT id, intent_id, algorithm_version, generated_at, candidates
		FROM match_lists
		WHERE id = $1`

	list, err := scanMatchList(scope.Conn.QueryRow(ctx, query, matchListID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query match list: %w", err)
	}

	return list, nil
}

func scanMatchList(row pgx.Row) (*models.MatchList, error) {
	var list models.MatchList
	var candidatesJSON []byte

	err := row.Scan(
		&list.ID,
		&list.IntentID,
		&list.AlgorithmVersion,
		&list.GeneratedAt,
		&candidatesJSON,
	)
	if err != nil {
		return nil, err
	}

	if len(candidatesJSON) > 0 && string(candidatesJSON) != "null" {
		if err := json.Unmarshal(candidatesJSON, &list.Candidates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidates: %w", err)
		}
	}

	return &list, nil
}
