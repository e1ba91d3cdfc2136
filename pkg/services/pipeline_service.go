package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

// PipelineService applies Intent stage transitions. Any known stage may
// transition to any other known stage, including out of WON and LOST; the
// contract imposes no restriction on the target and none is invented here.
// Requesting the current stage is not suppressed: it still stamps activity
// and still emits an event.
type PipelineService interface {
	// ChangeStage moves the intent to the given stage, stamps activity time
	// and emits exactly one stage-change audit event.
	ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage) (*models.Intent, error)

	// Get returns the raw intent. Callers wanting a requester-facing view
	// must pass it through the confidentiality gate.
	Get(ctx context.Context, intentID uuid.UUID) (*models.Intent, error)
}

type pipelineService struct {
	intentRepo repositories.IntentRepository
	logger     *zap.Logger
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(intentRepo repositories.IntentRepository, logger *zap.Logger) PipelineService {
	return &pipelineService{
		intentRepo: intentRepo,
		logger:     logger.Named("pipeline-service"),
	}
}

var _ PipelineService = (*pipelineService)(nil)

func (s *pipelineService) ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage) (*models.Intent, error) {
	if !toStage.IsValid() {
		return nil, fmt.Errorf("%w: unknown pipeline stage %q", apperrors.ErrValidation, toStage)
	}

	actor, ok := models.GetActor(ctx)
	if !ok {
		return nil, fmt.Errorf("no actor in context")
	}

	intent, event, err := s.intentRepo.ChangeStage(ctx, intentID, toStage, actor)
	if err != nil {
		return nil, fmt.Errorf("change stage: %w", err)
	}

	s.logger.Info("Pipeline stage changed",
		zap.String("intent_id", intentID.String()),
		zap.Any("from_stage", event.Payload["from_stage"]),
		zap.String("to_stage", toStage.String()),
		zap.String("actor_org_id", actor.OrgID.String()))

	return intent, nil
}

func (s *pipelineService) Get(ctx context.Context, intentID uuid.UUID) (*models.Intent, error) {
	intent, err := s.intentRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load intent: %w", err)
	}
	return intent, nil
}
