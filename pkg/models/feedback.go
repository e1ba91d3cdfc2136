package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus is a client org's disposition toward one match candidate.
// It reshapes grouping in the client view only; scores and ordering within
// the stored MatchList are never touched by feedback.
type FeedbackStatus string

const (
	FeedbackNeutral     FeedbackStatus = "NEUTRAL"
	FeedbackShortlisted FeedbackStatus = "SHORTLISTED"
	FeedbackHidden      FeedbackStatus = "HIDDEN"
	FeedbackNotRelevant FeedbackStatus = "NOT_RELEVANT"
)

// IsValid returns true if the status is a known feedback status.
func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackNeutral, FeedbackShortlisted, FeedbackHidden, FeedbackNotRelevant:
		return true
	default:
		return false
	}
}

// FeedbackAction is the action vocabulary accepted at the API boundary.
// Actions map onto statuses; unknown actions are rejected before any write.
type FeedbackAction string

const (
	ActionShortlist   FeedbackAction = "SHORTLIST"
	ActionHide        FeedbackAction = "HIDE"
	ActionNotRelevant FeedbackAction = "NOT_RELEVANT"
)

// Status maps a boundary action to its stored feedback status.
// Returns false for an unknown action.
func (a FeedbackAction) Status() (FeedbackStatus, bool) {
	switch a {
	case ActionShortlist:
		return FeedbackShortlisted, true
	case ActionHide:
		return FeedbackHidden, true
	case ActionNotRelevant:
		return FeedbackNotRelevant, true
	default:
		return "", false
	}
}

// FeedbackRecord is the single logical feedback state for one candidate org
// within one MatchList. Later writes supersede earlier ones by the
// server-assigned UpdatedAt.
type FeedbackRecord struct {
	MatchListID  uuid.UUID      `json:"match_list_id"`
	OrgID        uuid.UUID      `json:"org_id"`
	Status       FeedbackStatus `json:"status"`
	ActingUserID uuid.UUID      `json:"acting_user_id"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
