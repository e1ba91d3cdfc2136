package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

// FeedbackService records per-candidate feedback against a match list.
// Feedback reshapes client-visible grouping only: it never alters scores,
// breakdowns or candidate ordering within the stored MatchList.
type FeedbackService interface {
	// SetFeedback applies a feedback action for one candidate of one match
	// list. Idempotent: applying the same status twice leaves state
	// unchanged. Concurrent writers for the same pair resolve
	// last-write-wins by server timestamp; a conflict is never surfaced as
	// an error.
	SetFeedback(ctx context.Context, intentID, matchListID, candidateOrgID uuid.UUID, action models.FeedbackAction) (*models.FeedbackRecord, error)
}

type feedbackService struct {
	matchRepo    repositories.MatchRepository
	feedbackRepo repositories.FeedbackRepository
	logger       *zap.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(matchRepo repositories.MatchRepository, feedbackRepo repositories.FeedbackRepository, logger *zap.Logger) FeedbackService {
	return &feedbackService{
		matchRepo:    matchRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger.Named("feedback-service"),
	}
}

var _ FeedbackService = (*feedbackService)(nil)

func (s *feedbackService) SetFeedback(ctx context.Context, intentID, matchListID, candidateOrgID uuid.UUID, action models.FeedbackAction) (*models.FeedbackRecord, error) {
	status, ok := action.Status()
	if !ok {
		return nil, fmt.Errorf("%w: unknown feedback action %q", apperrors.ErrValidation, action)
	}

	list, err := s.matchRepo.GetByID(ctx, matchListID)
	if err != nil {
		return nil, fmt.Errorf("load match list: %w", err)
	}
	if list == nil || list.IntentID != intentID {
		return nil, apperrors.ErrNotFound
	}

	if !containsCandidate(list, candidateOrgID) {
		return nil, fmt.Errorf("%w: org %s is not a candidate of match list %s",
			apperrors.ErrValidation, candidateOrgID, matchListID)
	}

	actor, ok := models.GetActor(ctx)
	if !ok {
		return nil, fmt.Errorf("no actor in context")
	}

	// Same status again is a no-op: no duplicate transition is recorded.
	existing, err := s.feedbackRepo.Get(ctx, matchListID, candidateOrgID)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if existing != nil && existing.Status == status {
		return existing, nil
	}

	record := &models.FeedbackRecord{
		MatchListID:  matchListID,
		OrgID:        candidateOrgID,
		Status:       status,
		ActingUserID: actor.UserID,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.feedbackRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("write feedback: %w", err)
	}

	s.logger.Info("Feedback recorded",
		zap.String("match_list_id", matchListID.String()),
		zap.String("candidate_org_id", candidateOrgID.String()),
		zap.String("status", string(status)))

	return record, nil
}

func containsCandidate(list *models.MatchList, orgID uuid.UUID) bool {
	for _, candidate := range list.Candidates {
		if candidate.OrgID == orgID {
			return true
		}
	}
	return false
}
