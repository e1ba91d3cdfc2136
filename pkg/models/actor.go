package models

import (
	"context"

	"github.com/google/uuid"
)

// Actor identifies WHO is making a request: the caller's organization and
// user. Every gate resolution, match run, transition and feedback write is
// evaluated against the actor's org.
type Actor struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
}

type actorContextKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor retrieves the actor from the context.
// Returns a zero Actor and false if not present.
func GetActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
