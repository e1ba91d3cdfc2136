package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

// MatchingService orchestrates the match scorer over the organization
// directory and manages the resulting match lists.
type MatchingService interface {
	// Run scores the full directory snapshot against the intent and writes
	// one new immutable MatchList. An empty directory or an intent without
	// match signal yields a list with zero candidates, not an error.
	Run(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error)

	// Latest returns the newest MatchList for the intent with the current
	// feedback status joined onto each candidate.
	Latest(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error)
}

type matchingService struct {
	intentRepo   repositories.IntentRepository
	profileRepo  repositories.OrgProfileRepository
	matchRepo    repositories.MatchRepository
	feedbackRepo repositories.FeedbackRepository
	eventRepo    repositories.EventRepository

	weights          models.FactorWeights
	algorithmVersion string
	logger           *zap.Logger
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(
	intentRepo repositories.IntentRepository,
	profileRepo repositories.OrgProfileRepository,
	matchRepo repositories.MatchRepository,
	feedbackRepo repositories.FeedbackRepository,
	eventRepo repositories.EventRepository,
	weights models.FactorWeights,
	algorithmVersion string,
	logger *zap.Logger,
) MatchingService {
	return &matchingService{
		intentRepo:       intentRepo,
		profileRepo:      profileRepo,
		matchRepo:        matchRepo,
		feedbackRepo:     feedbackRepo,
		eventRepo:        eventRepo,
		weights:          weights,
		algorithmVersion: algorithmVersion,
		logger:           logger.Named("matching-service"),
	}
}

var _ MatchingService = (*matchingService)(nil)

func (s *matchingService) Run(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	intent, err := s.intentRepo.GetByID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load intent: %w", err)
	}

	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		// Directory unavailable: no partial MatchList is persisted, the
		// caller may retry.
		return nil, fmt.Errorf("%w: org directory unavailable: %v", apperrors.ErrEngineFailure, err)
	}

	list := &models.MatchList{
		ID:               uuid.New(),
		IntentID:         intent.ID,
		AlgorithmVersion: s.algorithmVersion,
		GeneratedAt:      time.Now().UTC(),
		Candidates:       s.scoreDirectory(intent, profiles),
	}

	if err := s.matchRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("%w: persist match list: %v", apperrors.ErrEngineFailure, err)
	}

	s.logger.Info("Generated match list",
		zap.String("intent_id", intent.ID.String()),
		zap.String("match_list_id", list.ID.String()),
		zap.String("algorithm_version", list.AlgorithmVersion),
		zap.Int("candidates", len(list.Candidates)))

	s.emitGenerated(ctx, list)

	// Feedback status is a live view; a fresh list starts neutral.
	for _, candidate := range list.Candidates {
		candidate.FeedbackStatus = models.FeedbackNeutral
	}

	return list, nil
}

func (s *matchingService) Latest(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	if _, err := s.intentRepo.GetByID(ctx, intentID); err != nil {
		return nil, fmt.Errorf("load intent: %w", err)
	}

	list, err := s.matchRepo.GetLatestByIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("load latest match list: %w", err)
	}
	if list == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.joinFeedback(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// scoreDirectory scores every eligible candidate and orders the result:
// total score descending, ties broken by organization name ascending, then
// org ID, so re-running with identical inputs reproduces identical order.
func (s *matchingService) scoreDirectory(intent *models.Intent, profiles []*models.OrgProfile) []*models.MatchCandidate {
	if !intent.HasMatchSignal() {
		s.logger.Info("Intent has no match signal, producing empty list",
			zap.String("intent_id", intent.ID.String()))
		return nil
	}

	var candidates []*models.MatchCandidate
	for _, profile := range profiles {
		if profile.OrgID == intent.OwnerOrgID {
			continue
		}
		if hasExcludedSectorConflict(intent, profile) {
			continue
		}
		candidates = append(candidates, ScoreCandidate(intent, profile, s.weights))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore > candidates[j].TotalScore
		}
		if candidates[i].OrgName != candidates[j].OrgName {
			return candidates[i].OrgName < candidates[j].OrgName
		}
		return candidates[i].OrgID.String() < candidates[j].OrgID.String()
	})

	return candidates
}

// joinFeedback overlays the stored feedback state onto the candidates.
// The stored list itself is never modified.
func (s *matchingService) joinFeedback(ctx context.Context, list *models.MatchList) error {
	records, err := s.feedbackRepo.GetByMatchList(ctx, list.ID)
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}

	statusByOrg := make(map[uuid.UUID]models.FeedbackStatus, len(records))
	for _, record := range records {
		statusByOrg[record.OrgID] = record.Status
	}

	for _, candidate := range list.Candidates {
		if status, ok := statusByOrg[candidate.OrgID]; ok {
			candidate.FeedbackStatus = status
		} else {
			candidate.FeedbackStatus = models.FeedbackNeutral
		}
	}

	return nil
}

func (s *matchingService) emitGenerated(ctx context.Context, list *models.MatchList) {
	actor, ok := models.GetActor(ctx)
	if !ok {
		s.logger.Warn("No actor context for match event",
			zap.String("match_list_id", list.ID.String()))
		return
	}

	event := &models.PipelineEvent{
		EventType:   models.EventMatchGenerated,
		SubjectID:   list.IntentID,
		ActorOrgID:  actor.OrgID,
		ActorUserID: actor.UserID,
		Payload: map[string]any{
			"match_list_id":     list.ID.String(),
			"algorithm_version": list.AlgorithmVersion,
			"candidate_count":   len(list.Candidates),
		},
	}

	// Audit logging must not fail the run itself.
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to record match event",
			zap.String("match_list_id", list.ID.String()),
			zap.Error(err))
	}
}
