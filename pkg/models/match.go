package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchFactor identifies one of the five scoring factors. Evaluation order
// is fixed: language, tech, industry, region, budget.
type MatchFactor string

const (
	FactorLanguage MatchFactor = "language"
	FactorTech     MatchFactor = "tech"
	FactorIndustry MatchFactor = "industry"
	FactorRegion   MatchFactor = "region"
	FactorBudget   MatchFactor = "budget"
)

// MatchFactors lists the factors in evaluation order.
var MatchFactors = []MatchFactor{
	FactorLanguage,
	FactorTech,
	FactorIndustry,
	FactorRegion,
	FactorBudget,
}

// FactorScore is the per-factor scoring detail kept for explainability.
// Contribution = Weight * NormalizedScore.
type FactorScore struct {
	Weight            float64  `json:"weight"`
	NormalizedScore   float64  `json:"normalized_score"`
	Contribution      float64  `json:"contribution"`
	MatchedAttributes []string `json:"matched_attributes"`
	Notes             string   `json:"notes,omitempty"`
}

// FactorWeights holds the weight configuration for one scoring run.
// Weights must sum to 1.0 across the five factors.
type FactorWeights struct {
	Language float64 `json:"language"`
	Tech     float64 `json:"tech"`
	Industry float64 `json:"industry"`
	Region   float64 `json:"region"`
	Budget   float64 `json:"budget"`
}

// Sum returns the total of all five weights.
func (w FactorWeights) Sum() float64 {
	return w.Language + w.Tech + w.Industry + w.Region + w.Budget
}

// For returns the weight configured for the given factor.
func (w FactorWeights) For(f MatchFactor) float64 {
	switch f {
	case FactorLanguage:
		return w.Language
	case FactorTech:
		return w.Tech
	case FactorIndustry:
		return w.Industry
	case FactorRegion:
		return w.Region
	case FactorBudget:
		return w.Budget
	default:
		return 0
	}
}

// MatchCandidate is one ranked organization within a MatchList.
// TotalScore = 100 * sum of contributions. FeedbackStatus is a live view
// over the feedback store joined at read time; it is not part of the stored
// candidate snapshot.
type MatchCandidate struct {
	OrgID      uuid.UUID                   `json:"org_id"`
	OrgName    string                      `json:"org_name"`
	TrustScore *float64                    `json:"trust_score,omitempty"`
	TotalScore float64                     `json:"total_score"`
	Breakdown  map[MatchFactor]FactorScore `json:"breakdown"`

	FeedbackStatus FeedbackStatus `json:"feedback_status,omitempty"`
}

// MatchList is the immutable ranked output of one matching run. A new run
// writes a new MatchList; prior lists are never mutated or deleted.
type MatchList struct {
	ID               uuid.UUID         `json:"id"`
	IntentID         uuid.UUID         `json:"intent_id"`
	AlgorithmVersion string            `json:"algorithm_version"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Candidates       []*MatchCandidate `json:"candidates"`
}
