package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types recorded in the append-only audit log.
const (
	EventStageChanged   = "pipeline.stage_changed"
	EventMatchGenerated = "match.generated"
	EventNdaAccepted    = "nda.accepted"
)

// PipelineEvent is one entry in the append-only audit log. Exactly one
// event is written per accepted pipeline transition; match runs and NDA
// acceptances ride the same store.
type PipelineEvent struct {
	ID          uuid.UUID      `json:"id"`
	EventType   string         `json:"event_type"`
	SubjectID   uuid.UUID      `json:"subject_id"`
	ActorOrgID  uuid.UUID      `json:"actor_org_id"`
	ActorUserID uuid.UUID      `json:"actor_user_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EventFilter narrows an audit log read. Zero values mean "no constraint";
// Limit is defaulted by the service when unset.
type EventFilter struct {
	SubjectID uuid.UUID
	EventType string
	Limit     int
	Offset    int
}
