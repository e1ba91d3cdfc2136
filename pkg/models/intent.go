// Package models contains domain types for intentlane-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PipelineStage represents an Intent's position in the pre-sales workflow.
type PipelineStage string

// Pipeline stage constants. Transitions between any two stages are accepted
// at the API boundary; WON and LOST are not enforced as terminal.
const (
	StageNew     PipelineStage = "NEW"
	StageClarify PipelineStage = "CLARIFY"
	StageMatch   PipelineStage = "MATCH"
	StageCommit  PipelineStage = "COMMIT"
	StageWon     PipelineStage = "WON"
	StageLost    PipelineStage = "LOST"
)

// String returns the string representation of a PipelineStage.
func (s PipelineStage) String() string {
	return string(s)
}

// IsValid returns true if the stage is a known pipeline stage.
func (s PipelineStage) IsValid() bool {
	switch s {
	case StageNew, StageClarify, StageMatch, StageCommit, StageWon, StageLost:
		return true
	default:
		return false
	}
}

// ConfidentialityLevel represents a disclosure tier for Intent content.
type ConfidentialityLevel string

// Disclosure tiers. L1 is public, L2 requires a mutual NDA between the
// owner org and the requester org, L3 is reserved and never disclosed.
const (
	LevelL1 ConfidentialityLevel = "L1"
	LevelL2 ConfidentialityLevel = "L2"
	LevelL3 ConfidentialityLevel = "L3"
)

// IsValid returns true if the level is a known confidentiality level.
func (l ConfidentialityLevel) IsValid() bool {
	switch l {
	case LevelL1, LevelL2, LevelL3:
		return true
	default:
		return false
	}
}

// Intent represents a structured client request moving through the pipeline.
// The attribute sets (languages, tech stack, industries, markets, budget)
// drive match scoring against candidate org profiles.
type Intent struct {
	ID                   uuid.UUID            `json:"id"`
	OwnerOrgID           uuid.UUID            `json:"owner_org_id"`
	Title                string               `json:"title"`
	Goal                 string               `json:"goal"`
	ClientName           string               `json:"client_name"`
	Stage                PipelineStage        `json:"stage"`
	ConfidentialityLevel ConfidentialityLevel `json:"confidentiality_level"`

	// SourceTextRaw is L2-tagged content: the client's original request text.
	// Nil when the Intent has none. Never emitted to a non-owner requester
	// without a mutual NDA.
	SourceTextRaw *string `json:"source_text_raw,omitempty"`

	RequiredLanguages  []string     `json:"required_languages"`
	RequiredTechStack  []string     `json:"required_tech_stack"`
	RequiredIndustries []string     `json:"required_industries"`
	RequiredMarkets    []string     `json:"required_markets"`
	BudgetBucket       BudgetBucket `json:"budget_bucket"`

	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasMatchSignal returns true if at least one scoring factor has input to
// work with. An Intent with no signal produces an empty MatchList instead
// of a directory-wide zero-score ranking.
func (i *Intent) HasMatchSignal() bool {
	return len(i.RequiredLanguages) > 0 ||
		len(i.RequiredTechStack) > 0 ||
		len(i.RequiredIndustries) > 0 ||
		len(i.RequiredMarkets) > 0 ||
		i.BudgetBucket.IsValid()
}

// IntentView is the confidentiality-gated projection of an Intent returned
// to a requester. L2Redacted distinguishes "redacted" from "empty": when
// true, SourceTextRaw was withheld because no mutual NDA covers the
// relationship; when false, the field carries the Intent's actual value
// (which may itself be nil).
type IntentView struct {
	ID                   uuid.UUID            `json:"id"`
	OwnerOrgID           uuid.UUID            `json:"owner_org_id"`
	Title                string               `json:"title"`
	Goal                 string               `json:"goal"`
	ClientName           string               `json:"client_name"`
	Stage                PipelineStage        `json:"stage"`
	ConfidentialityLevel ConfidentialityLevel `json:"confidentiality_level"`
	SourceTextRaw        *string              `json:"source_text_raw"`
	L2Redacted           bool                 `json:"l2_redacted"`
	LastActivityAt       time.Time            `json:"last_activity_at"`
	CreatedAt            time.Time            `json:"created_at"`
}
