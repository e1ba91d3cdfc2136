package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

// IntentService serves requester-facing reads of intents and their
// attachments. Every read passes through the confidentiality gate.
type IntentService interface {
	// GetView returns the gated view of an intent for the requesting org.
	GetView(ctx context.Context, intentID, requestingOrgID uuid.UUID) (*models.IntentView, error)

	// GetAttachments returns gated attachment views for the requesting org.
	GetAttachments(ctx context.Context, intentID, requestingOrgID uuid.UUID) ([]*models.AttachmentView, error)
}

type intentService struct {
	intentRepo     repositories.IntentRepository
	attachmentRepo repositories.AttachmentRepository
	gate           ConfidentialityService
	logger         *zap.Logger
}

// NewIntentService creates a new IntentService.
func NewIntentService(
	intentRepo repositories.IntentRepository,
	attachmentRepo repositories.AttachmentRepository,
	gate ConfidentialityService,
	logger *zap.Logger,
) IntentService {
	return &intentService{
		intentRepo:     intentRepo,
		attachmentRepo: attachmentRepo,
		gate:           gate,
		logger:         logger.Named("intent-service"),
	}
}

var _ IntentService = (*intentService)(nil)

func (s *intentService) GetView(ctx context.Context, intentID, requestingOrgID uuid.UUID) (*models.IntentView, error) {
	intent, err := s.intentRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load intent: %w", err)
	}

	return s.gate.ResolveIntent(ctx, intent, requestingOrgID)
}

func (s *intentService) GetAttachments(ctx context.Context, intentID, requestingOrgID uuid.UUID) ([]*models.AttachmentView, error) {
	intent, err := s.intentRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load intent: %w", err)
	}

	attachments, err := s.attachmentRepo.GetByIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load attachments: %w", err)
	}

	return s.gate.ResolveAttachments(ctx, intent, attachments, requestingOrgID)
}
