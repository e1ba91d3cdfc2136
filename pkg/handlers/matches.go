package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/auth"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/services"
)

// FeedbackRequest for POST /intents/{iid}/matches/{mlid}/feedback
type FeedbackRequest struct {
	CandidateOrgID string `json:"candidateOrgId"`
	Action         string `json:"action"`
}

// MatchesHandler handles match run, retrieval and feedback requests.
type MatchesHandler struct {
	matchingService services.MatchingService
	feedbackService services.FeedbackService
	logger          *zap.Logger
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(
	matchingService services.MatchingService,
	feedbackService services.FeedbackService,
	logger *zap.Logger,
) *MatchesHandler {
	return &MatchesHandler{
		matchingService: matchingService,
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// RegisterRoutes registers the matches handler's routes on the given mux.
func (h *MatchesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scopeMiddleware ScopeMiddleware) {
	mux.HandleFunc("POST /intents/{iid}/matches/run",
		authMiddleware.RequireAuth(scopeMiddleware(h.Run)))
	mux.HandleFunc("GET /intents/{iid}/matches",
		authMiddleware.RequireAuth(scopeMiddleware(h.Latest)))
	mux.HandleFunc("POST /intents/{iid}/matches/{mlid}/feedback",
		authMiddleware.RequireAuth(scopeMiddleware(h.SetFeedback)))
}

// Run handles POST /intents/{iid}/matches/run
// Triggers one matching run and returns the newly written MatchList.
func (h *MatchesHandler) Run(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	list, err := h.matchingService.Run(r.Context(), intentID)
	if err != nil {
		h.logger.Error("Match run failed",
			zap.String("intent_id", intentID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "match_run_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: list}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Latest handles GET /intents/{iid}/matches
// Returns the newest MatchList with live feedback status per candidate.
func (h *MatchesHandler) Latest(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	list, err := h.matchingService.Latest(r.Context(), intentID)
	if err != nil {
		h.logger.Error("Failed to load latest match list",
			zap.String("intent_id", intentID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "get_matches_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SetFeedback handles POST /intents/{iid}/matches/{mlid}/feedback
func (h *MatchesHandler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	matchListID, ok := ParseMatchListID(w, r, h.logger)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	candidateOrgID, err := uuid.Parse(req.CandidateOrgID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_candidate_org_id", "Invalid candidate org ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	record, err := h.feedbackService.SetFeedback(r.Context(), intentID, matchListID, candidateOrgID, models.FeedbackAction(req.Action))
	if err != nil {
		h.logger.Error("Failed to set feedback",
			zap.String("match_list_id", matchListID.String()),
			zap.String("candidate_org_id", candidateOrgID.String()),
			zap.String("action", req.Action),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "set_feedback_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: record}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
