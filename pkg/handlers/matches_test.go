package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

func testMatchList(intentID uuid.UUID) *models.MatchList {
	return &models.MatchList{
		ID:               uuid.New(),
		IntentID:         intentID,
		AlgorithmVersion: "v1",
		GeneratedAt:      time.Now().UTC(),
		Candidates: []*models.MatchCandidate{
			{OrgID: uuid.New(), OrgName: "Top Org", TotalScore: 87.5, FeedbackStatus: models.FeedbackNeutral},
		},
	}
}

func TestMatchesHandler_Run(t *testing.T) {
	intentID := uuid.New()
	matching := &mockMatchingService{list: testMatchList(intentID)}
	handler := NewMatchesHandler(matching, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodPost, "/intents/"+intentID.String()+"/matches/run", nil)
	req.SetPathValue("iid", intentID.String())
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decodeEnvelope(t, rec)
	assert.Equal(t, intentID.String(), data["intent_id"])
	assert.Equal(t, "v1", data["algorithm_version"])
}

func TestMatchesHandler_Run_EngineFailure(t *testing.T) {
	intentID := uuid.New()
	matching := &mockMatchingService{runErr: apperrors.ErrEngineFailure}
	handler := NewMatchesHandler(matching, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodPost, "/intents/"+intentID.String()+"/matches/run", nil)
	req.SetPathValue("iid", intentID.String())
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMatchesHandler_Latest(t *testing.T) {
	intentID := uuid.New()
	matching := &mockMatchingService{list: testMatchList(intentID)}
	handler := NewMatchesHandler(matching, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodGet, "/intents/"+intentID.String()+"/matches", nil)
	req.SetPathValue("iid", intentID.String())
	rec := httptest.NewRecorder()

	handler.Latest(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)

	candidates, ok := data["candidates"].([]any)
	require.True(t, ok)
	require.Len(t, candidates, 1)
	first := candidates[0].(map[string]any)
	assert.Equal(t, "NEUTRAL", first["feedback_status"])
}

func TestMatchesHandler_Latest_NoRunYet(t *testing.T) {
	intentID := uuid.New()
	matching := &mockMatchingService{getErr: apperrors.ErrNotFound}
	handler := NewMatchesHandler(matching, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodGet, "/intents/"+intentID.String()+"/matches", nil)
	req.SetPathValue("iid", intentID.String())
	rec := httptest.NewRecorder()

	handler.Latest(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchesHandler_SetFeedback(t *testing.T) {
	intentID := uuid.New()
	matchListID := uuid.New()
	candidateOrgID := uuid.New()

	feedback := &mockFeedbackService{record: &models.FeedbackRecord{
		MatchListID: matchListID,
		OrgID:       candidateOrgID,
		Status:      models.FeedbackShortlisted,
		UpdatedAt:   time.Now().UTC(),
	}}
	handler := NewMatchesHandler(&mockMatchingService{}, feedback, zap.NewNop())

	body, _ := json.Marshal(FeedbackRequest{
		CandidateOrgID: candidateOrgID.String(),
		Action:         "SHORTLIST",
	})
	req, _ := requestWithActor(t, http.MethodPost,
		"/intents/"+intentID.String()+"/matches/"+matchListID.String()+"/feedback", body)
	req.SetPathValue("iid", intentID.String())
	req.SetPathValue("mlid", matchListID.String())
	rec := httptest.NewRecorder()

	handler.SetFeedback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FeedbackAction("SHORTLIST"), feedback.lastAction)
	data := decodeEnvelope(t, rec)
	assert.Equal(t, "SHORTLISTED", data["status"])
}

func TestMatchesHandler_SetFeedback_InvalidCandidateID(t *testing.T) {
	intentID := uuid.New()
	matchListID := uuid.New()
	handler := NewMatchesHandler(&mockMatchingService{}, &mockFeedbackService{}, zap.NewNop())

	body, _ := json.Marshal(FeedbackRequest{CandidateOrgID: "nope", Action: "SHORTLIST"})
	req, _ := requestWithActor(t, http.MethodPost,
		"/intents/"+intentID.String()+"/matches/"+matchListID.String()+"/feedback", body)
	req.SetPathValue("iid", intentID.String())
	req.SetPathValue("mlid", matchListID.String())
	rec := httptest.NewRecorder()

	handler.SetFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchesHandler_SetFeedback_UnknownAction(t *testing.T) {
	intentID := uuid.New()
	matchListID := uuid.New()
	feedback := &mockFeedbackService{err: apperrors.ErrValidation}
	handler := NewMatchesHandler(&mockMatchingService{}, feedback, zap.NewNop())

	body, _ := json.Marshal(FeedbackRequest{CandidateOrgID: uuid.New().String(), Action: "LOVE_IT"})
	req, _ := requestWithActor(t, http.MethodPost,
		"/intents/"+intentID.String()+"/matches/"+matchListID.String()+"/feedback", body)
	req.SetPathValue("iid", intentID.String())
	req.SetPathValue("mlid", matchListID.String())
	rec := httptest.NewRecorder()

	handler.SetFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchesHandler_SetFeedback_InvalidMatchListID(t *testing.T) {
	intentID := uuid.New()
	handler := NewMatchesHandler(&mockMatchingService{}, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodPost,
		"/intents/"+intentID.String()+"/matches/nope/feedback", []byte("{}"))
	req.SetPathValue("iid", intentID.String())
	req.SetPathValue("mlid", "nope")
	rec := httptest.NewRecorder()

	handler.SetFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchesHandler_Run_UnexpectedError(t *testing.T) {
	intentID := uuid.New()
	matching := &mockMatchingService{runErr: errors.New("boom")}
	handler := NewMatchesHandler(matching, &mockFeedbackService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodPost, "/intents/"+intentID.String()+"/matches/run", nil)
	req.SetPathValue("iid", intentID.String())
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
