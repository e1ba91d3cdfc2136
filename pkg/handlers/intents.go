// Package handlers exposes the engine's HTTP contracts.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/auth"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/services"
)

// UpdateIntentRequest for PATCH /intents/{iid}
type UpdateIntentRequest struct {
	PipelineStage string `json:"pipelineStage"`
}

// AttachmentListResponse for GET /intents/{iid}/attachments
type AttachmentListResponse struct {
	Attachments []*models.AttachmentView `json:"attachments"`
	Total       int                      `json:"total"`
}

// IntentsHandler handles intent read and pipeline transition requests.
type IntentsHandler struct {
	intentService   services.IntentService
	pipelineService services.PipelineService
	logger          *zap.Logger
}

// NewIntentsHandler creates a new intents handler.
func NewIntentsHandler(
	intentService services.IntentService,
	pipelineService services.PipelineService,
	logger *zap.Logger,
) *IntentsHandler {
	return &IntentsHandler{
		intentService:   intentService,
		pipelineService: pipelineService,
		logger:          logger,
	}
}

// RegisterRoutes registers the intents handler's routes on the given mux.
func (h *IntentsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scopeMiddleware ScopeMiddleware) {
	mux.HandleFunc("GET /intents/{iid}",
		authMiddleware.RequireAuth(scopeMiddleware(h.Get)))
	mux.HandleFunc("PATCH /intents/{iid}",
		authMiddleware.RequireAuth(scopeMiddleware(h.Update)))
	mux.HandleFunc("GET /intents/{iid}/attachments",
		authMiddleware.RequireAuth(scopeMiddleware(h.ListAttachments)))
}

// Get handles GET /intents/{iid}
// Returns the confidentiality-gated view for the calling org.
func (h *IntentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	actor, ok := models.GetActor(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	view, err := h.intentService.GetView(r.Context(), intentID, actor.OrgID)
	if err != nil {
		h.logger.Error("Failed to get intent view",
			zap.String("intent_id", intentID.String()),
			zap.String("requesting_org_id", actor.OrgID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "get_intent_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: view}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /intents/{iid}
// Applies a pipeline stage transition and returns the caller's gated view.
func (h *IntentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	actor, ok := models.GetActor(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req UpdateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if _, err := h.pipelineService.ChangeStage(r.Context(), intentID, models.PipelineStage(req.PipelineStage)); err != nil {
		h.logger.Error("Failed to change pipeline stage",
			zap.String("intent_id", intentID.String()),
			zap.String("to_stage", req.PipelineStage),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "change_stage_failed")
		return
	}

	view, err := h.intentService.GetView(r.Context(), intentID, actor.OrgID)
	if err != nil {
		h.logger.Error("Failed to get intent view after transition",
			zap.String("intent_id", intentID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "get_intent_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: view}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListAttachments handles GET /intents/{iid}/attachments
// Every attachment carries can_download derived from the gate decision.
func (h *IntentsHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	intentID, ok := ParseIntentID(w, r, h.logger)
	if !ok {
		return
	}

	actor, ok := models.GetActor(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	attachments, err := h.intentService.GetAttachments(r.Context(), intentID, actor.OrgID)
	if err != nil {
		h.logger.Error("Failed to list attachments",
			zap.String("intent_id", intentID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "list_attachments_failed")
		return
	}

	response := AttachmentListResponse{
		Attachments: attachments,
		Total:       len(attachments),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
