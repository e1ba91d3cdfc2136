package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// NdaRepository provides data access for the NDA acceptance ledger.
// One logical acceptance exists per (org, version); re-acceptance updates
// the acceptor metadata in place.
type NdaRepository interface {
	// Upsert records an acceptance, resolving a concurrent write for the
	// same (org, version) deterministically in the database.
	Upsert(ctx context.Context, acceptance *models.NdaAcceptance) error

	// GetAcceptance returns the acceptance of one NDA version by one org,
	// or nil when the org has not accepted that version.
	GetAcceptance(ctx context.Context, orgID uuid.UUID, ndaVersion string) (*models.NdaAcceptance, error)

	// BothAccepted reports whether both orgs hold an acceptance for the
	// given NDA version.
	BothAccepted(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error)
}

type ndaRepository struct{}

// NewNdaRepository creates a new NdaRepository.
func NewNdaRepository() NdaRepository {
	return &ndaRepository{}
}

var _ NdaRepository = (*ndaRepository)(nil)

func (r *ndaRepository) Upsert(ctx context.Context, acceptance *models.NdaAcceptance) error {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return fmt.Errorf("no request scope in context")
	}

	if acceptance.ID == uuid.Nil {
		acceptance.ID = uuid.New()
	}

	query := `
		INSERT INTO nda_acceptances (
			id, org_id, nda_version, content_hash, typed_name, typed_role,
			language, channel, accepted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (org_id, nda_version) DO UPDATE SET
			content_hash = EXCLUDED.content_hash,
			typed_name = EXCLUDED.typed_name,
			typed_role = EXCLUDED.typed_role,
			language = EXCLUDED.language,
			channel = EXCLUDED.channel,
			accepted_at = EXCLUDED.accepted_at
		RETURNING id, accepted_at`

	err := scope.Conn.QueryRow(ctx, query,
		acceptance.ID,
		acceptance.OrgID,
		acceptance.NdaVersion,
		acceptance.ContentHash,
		acceptance.TypedName,
		acceptance.TypedRole,
		acceptance.Language,
		acceptance.Channel,
		acceptance.AcceptedAt,
	).Scan(&acceptance.ID, &acceptance.AcceptedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert nda acceptance: %w", err)
	}

	return nil
}

func (r *ndaRepository) GetAcceptance(ctx context.Context, orgID uuid.UUID, ndaVersion string) (*models.NdaAcceptance, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT id, org_id, nda_version, content_hash, typed_name, typed_role,
		       language, channel, accepted_at
		FROM nda_acceptances
		WHERE org_id = $1 AND nda_version = $2`

	var acc models.NdaAcceptance
	err := scope.Conn.QueryRow(ctx, query, orgID, ndaVersion).Scan(
		&acc.ID,
		&acc.OrgID,
		&acc.NdaVersion,
		&acc.ContentHash,
		&acc.TypedName,
		&acc.TypedRole,
		&acc.Language,
		&acc.Channel,
		&acc.AcceptedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query nda acceptance: %w", err)
	}

	return &acc, nil
}

func (r *ndaRepository) BothAccepted(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return false, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT COUNT(DISTINCT org_id)
		FROM nda_acceptances
		WHERE org_id = ANY($1) AND nda_version = $2`

	var count int
	err := scope.Conn.QueryRow(ctx, query, []uuid.UUID{orgA, orgB}, ndaVersion).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query mutual nda status: %w", err)
	}

	return count == 2, nil
}
