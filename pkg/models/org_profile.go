package models

import (
	"time"

	"github.com/google/uuid"
)

// BudgetBucket is an ordered project budget band. Bucket distance feeds the
// budget scoring factor.
type BudgetBucket string

const (
	BudgetXS BudgetBucket = "XS"
	BudgetS  BudgetBucket = "S"
	BudgetM  BudgetBucket = "M"
	BudgetL  BudgetBucket = "L"
	BudgetXL BudgetBucket = "XL"
)

// budgetOrder fixes the bucket ordering used for distance computation.
var budgetOrder = map[BudgetBucket]int{
	BudgetXS: 0,
	BudgetS:  1,
	BudgetM:  2,
	BudgetL:  3,
	BudgetXL: 4,
}

// BudgetBucketCount is the number of defined budget buckets.
const BudgetBucketCount = 5

// IsValid returns true if the bucket is a known budget bucket.
func (b BudgetBucket) IsValid() bool {
	_, ok := budgetOrder[b]
	return ok
}

// Index returns the bucket's position in the budget ordering, or -1 for an
// unknown bucket.
func (b BudgetBucket) Index() int {
	idx, ok := budgetOrder[b]
	if !ok {
		return -1
	}
	return idx
}

// TeamSizeBucket is an ordered organization headcount band.
type TeamSizeBucket string

const (
	TeamSolo   TeamSizeBucket = "SOLO"
	TeamSmall  TeamSizeBucket = "SMALL"
	TeamMedium TeamSizeBucket = "MEDIUM"
	TeamLarge  TeamSizeBucket = "LARGE"
)

// OrgProfile holds an organization's matching attributes. It is a read-only
// input to the match scorer; edits happen through org settings outside this
// engine. TrustScore is computed externally and only displayed here.
type OrgProfile struct {
	OrgID              uuid.UUID      `json:"org_id"`
	Name               string         `json:"name"`
	Markets            []string       `json:"markets"`
	Industries         []string       `json:"industries"`
	ClientTypes        []string       `json:"client_types"`
	ServicePortfolio   []string       `json:"service_portfolio"`
	TechStack          []string       `json:"tech_stack"`
	ExcludedSectors    []string       `json:"excluded_sectors"`
	PreferredLanguages []string       `json:"preferred_languages"`
	BudgetBucket       BudgetBucket   `json:"budget_bucket"`
	TeamSizeBucket     TeamSizeBucket `json:"team_size_bucket"`
	TrustScore         *float64       `json:"trust_score,omitempty"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
