package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

type feedbackTestEnv struct {
	svc          FeedbackService
	matchRepo    *mockMatchRepository
	feedbackRepo *mockFeedbackRepository

	intentID    uuid.UUID
	matchListID uuid.UUID
	candidateID uuid.UUID
}

func setupFeedbackTest(t *testing.T) *feedbackTestEnv {
	t.Helper()

	env := &feedbackTestEnv{
		matchRepo:    &mockMatchRepository{},
		feedbackRepo: newMockFeedbackRepository(),
		intentID:     uuid.New(),
		matchListID:  uuid.New(),
		candidateID:  uuid.New(),
	}
	env.matchRepo.lists = []*models.MatchList{{
		ID:               env.matchListID,
		IntentID:         env.intentID,
		AlgorithmVersion: "v1",
		GeneratedAt:      time.Now().UTC(),
		Candidates: []*models.MatchCandidate{
			{OrgID: env.candidateID, OrgName: "Candidate Org", TotalScore: 72.5},
		},
	}}
	env.svc = NewFeedbackService(env.matchRepo, env.feedbackRepo, zap.NewNop())
	return env
}

func TestFeedbackService_SetFeedback(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, actor := actorContext()

	record, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionShortlist)
	require.NoError(t, err)

	assert.Equal(t, models.FeedbackShortlisted, record.Status)
	assert.Equal(t, env.candidateID, record.OrgID)
	assert.Equal(t, actor.UserID, record.ActingUserID)
	assert.False(t, record.UpdatedAt.IsZero())
	assert.Len(t, env.feedbackRepo.records, 1)
}

func TestFeedbackService_SetFeedback_ActionMapping(t *testing.T) {
	tests := []struct {
		action models.FeedbackAction
		want   models.FeedbackStatus
	}{
		{models.ActionShortlist, models.FeedbackShortlisted},
		{models.ActionHide, models.FeedbackHidden},
		{models.ActionNotRelevant, models.FeedbackNotRelevant},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			env := setupFeedbackTest(t)
			ctx, _ := actorContext()

			record, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Status)
		})
	}
}

func TestFeedbackService_SetFeedback_Idempotent(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	first, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionShortlist)
	require.NoError(t, err)
	second, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionShortlist)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt, "repeated action must not record a new transition")
	assert.Len(t, env.feedbackRepo.records, 1, "one logical record per (list, org)")
}

func TestFeedbackService_SetFeedback_StatusTransition(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	_, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionShortlist)
	require.NoError(t, err)

	record, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionHide)
	require.NoError(t, err)

	assert.Equal(t, models.FeedbackHidden, record.Status)
	assert.Len(t, env.feedbackRepo.records, 1, "transition supersedes, never duplicates")
}

func TestFeedbackService_SetFeedback_DoesNotTouchMatchList(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	before := env.matchRepo.lists[0].Candidates[0].TotalScore

	_, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, models.ActionHide)
	require.NoError(t, err)

	assert.Equal(t, before, env.matchRepo.lists[0].Candidates[0].TotalScore)
	assert.Len(t, env.matchRepo.lists[0].Candidates, 1)
}

func TestFeedbackService_SetFeedback_UnknownAction(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	_, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, env.candidateID, "LOVE_IT")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, env.feedbackRepo.records)
}

func TestFeedbackService_SetFeedback_CandidateNotInList(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	_, err := env.svc.SetFeedback(ctx, env.intentID, env.matchListID, uuid.New(), models.ActionShortlist)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFeedbackService_SetFeedback_UnknownMatchList(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	_, err := env.svc.SetFeedback(ctx, env.intentID, uuid.New(), env.candidateID, models.ActionShortlist)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFeedbackService_SetFeedback_MismatchedIntent(t *testing.T) {
	env := setupFeedbackTest(t)
	ctx, _ := actorContext()

	_, err := env.svc.SetFeedback(ctx, uuid.New(), env.matchListID, env.candidateID, models.ActionShortlist)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "match list of another intent is not addressable")
}
