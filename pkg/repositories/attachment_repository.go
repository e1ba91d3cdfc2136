package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// AttachmentRepository provides data access for intent attachments.
type AttachmentRepository interface {
	// GetByIntent returns all attachments for an intent, oldest first.
	GetByIntent(ctx context.Context, intentID uuid.UUID) ([]*models.Attachment, error)
}

type attachmentRepository struct{}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository() AttachmentRepository {
	return &attachmentRepository{}
}

var _ AttachmentRepository = (*attachmentRepository)(nil)

func (r *attachmentRepository) GetByIntent(ctx context.Context, intentID uuid.UUID) ([]*models.Attachment, error) {
	scope, ok := database.GetRequestScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no request scope in context")
	}

	query := `
		SELECT id, intent_id, file_name, content_ref, confidentiality_level, created_at
		FROM intent_attachments
		WHERE intent_id = $1
		ORDER BY created_at, id`

	rows, err := scope.Conn.Query(ctx, query, intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		var att models.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.IntentID,
			&att.FileName,
			&att.ContentRef,
			&att.ConfidentialityLevel,
			&att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, &att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}

	return attachments, nil
}
