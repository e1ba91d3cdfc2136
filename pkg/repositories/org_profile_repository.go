package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// OrgProfileRepository provides read access to the organization directory.
// Profiles are mutated through org settings outside this engine.
type OrgProfileRepository interface {
	// GetAll returns the full directory snapshot, ordered by name for
	// deterministic iteration.
	GetAll(ctx context.Context) ([]*models.OrgProfile, error)

	// GetByID returns the profile for one organization.
	GetByID(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error)
}

type orgProfileRepository struct{}

// NewOrgProfileRepository creates a new OrgProfileRepository.
func NewOrgProfileRepository() OrgProfileRepository {
	return &orgProfileRepository{}
}

var _ OrgProfileRepository = (*orgProfileRepository)(nil)

const orgProfileColumns = `
	org_id, name, markets, industries, client_types, service_portfolio,
	tech_stack, excluded_sectors, preferred_languages, budget_bucket,
	team_size_bucket, trust_score, updated_at`

func (r *orgProfileRepository) GetAll(ctx context.Context) ([]*models.OrgProfile, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `SELECT` + orgProfileColumns + ` FROM org_profiles ORDER BY name, org_id`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query org profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.OrgProfile
	for rows.Next() {
		profile, err := scanOrgProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating org profiles: %w", err)
	}

	return profiles, nil
}

func (r *orgProfileRepository) GetByID(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `SELECT` + orgProfileColumns + ` FROM org_profiles WHERE org_id = $1`

	profile, err := scanOrgProfile(scope.Conn.QueryRow(ctx, query, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query org profile: %w", err)
	}

	return profile, nil
}

func scanOrgProfile(row pgx.Row) (*models.OrgProfile, error) {
	var profile models.OrgProfile
	err := row.Scan(
		&profile.OrgID,
		&profile.Name,
		&profile.Markets,
		&profile.Industries,
		&profile.ClientTypes,
		&profile.ServicePortfolio,
		&profile.TechStack,
		&profile.ExcludedSectors,
		&profile.PreferredLanguages,
		&profile.BudgetBucket,
		&profile.TeamSizeBucket,
		&profile.TrustScore,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
