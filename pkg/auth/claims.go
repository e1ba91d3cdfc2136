// Package auth provides JWT-based authentication for intentlane-engine.
// Tokens carry the caller's organization and user identity; when
// verification is disabled for local development, identity comes from
// X-Org-ID / X-User-ID headers instead.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims structure issued by the platform.
// It embeds RegisteredClaims for standard JWT fields (sub, iss, exp, etc.)
// and adds custom claims for org and user context.
type Claims struct {
	jwt.RegisteredClaims
	OrgID  string `json:"oid,omitempty"` // Organization UUID
	UserID string `json:"uid,omitempty"` // User UUID
}

// Actor parses the org and user IDs from the claims.
// Returns an error if either is missing or malformed.
func (c *Claims) Actor() (uuid.UUID, uuid.UUID, error) {
	if c.OrgID == "" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing org ID in claims")
	}
	orgID, err := uuid.Parse(c.OrgID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid org ID format: %w", err)
	}

	if c.UserID == "" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing user ID in claims")
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	return orgID, userID, nil
}
