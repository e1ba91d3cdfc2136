package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment belongs to exactly one Intent. ContentRef is an immutable
// pointer into external file storage; the confidentiality tag is mutable.
// Attachments only use L1 and L2 (L3 is reserved).
type Attachment struct {
	ID                   uuid.UUID            `json:"id"`
	IntentID             uuid.UUID            `json:"intent_id"`
	FileName             string               `json:"file_name"`
	ContentRef           string               `json:"content_ref"`
	ConfidentialityLevel ConfidentialityLevel `json:"confidentiality_level"`
	CreatedAt            time.Time            `json:"created_at"`
}

// AttachmentView is the gated projection of an Attachment. CanDownload is
// derived from the gate decision at read time; the raw confidentiality
// level alone is never the download signal.
type AttachmentView struct {
	ID                   uuid.UUID            `json:"id"`
	IntentID             uuid.UUID            `json:"intent_id"`
	FileName             string               `json:"file_name"`
	ConfidentialityLevel ConfidentialityLevel `json:"confidentiality_level"`
	CanDownload          bool                 `json:"can_download"`
	CreatedAt            time.Time            `json:"created_at"`
}
