package models

import (
	"time"

	"github.com/google/uuid"
)

// NdaChannel represents how an acceptance was recorded.
type NdaChannel string

const (
	NdaChannelWeb NdaChannel = "web"
	NdaChannelAPI NdaChannel = "api"
)

// NdaAcceptance is one organization's acceptance of one NDA version.
// The ledger is append-only per version: re-accepting the same version
// updates the acceptor metadata instead of creating a second logical record.
type NdaAcceptance struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	NdaVersion  string     `json:"nda_version"`
	ContentHash string     `json:"content_hash"`
	TypedName   string     `json:"typed_name"`
	TypedRole   string     `json:"typed_role"`
	Language    string     `json:"language"`
	Channel     NdaChannel `json:"channel"`
	AcceptedAt  time.Time  `json:"accepted_at"`
}

// NdaDocument is the currently active mutual NDA text served to clients
// before acceptance. Version and content hash come from configuration so
// gate decisions are reproducible for a given version argument.
type NdaDocument struct {
	Version     string `json:"version"`
	ContentHash string `json:"content_hash"`
	Language    string `json:"language"`
	Text        string `json:"text"`
}

// MutualNdaStatus is the derived answer to "is L2 disclosure open between
// these two orgs under this NDA version". It is computed per call, never
// stored.
type MutualNdaStatus struct {
	Accepted   bool           `json:"accepted"`
	Acceptance *NdaAcceptance `json:"acceptance,omitempty"`
}
