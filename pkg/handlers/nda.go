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

// AcceptNdaRequest for POST /nda/mutual/accept
type AcceptNdaRequest struct {
	TypedName string `json:"typedName"`
	TypedRole string `json:"typedRole"`
	Language  string `json:"language,omitempty"`
}

// NdaHandler handles mutual NDA document, status and acceptance requests.
type NdaHandler struct {
	ndaService services.NdaService
	logger     *zap.Logger
}

// NewNdaHandler creates a new NDA handler.
func NewNdaHandler(ndaService services.NdaService, logger *zap.Logger) *NdaHandler {
	return &NdaHandler{
		ndaService: ndaService,
		logger:     logger,
	}
}

// RegisterRoutes registers the NDA handler's routes on the given mux.
func (h *NdaHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scopeMiddleware ScopeMiddleware) {
	mux.HandleFunc("GET /nda/mutual/current",
		authMiddleware.RequireAuth(h.Current))
	mux.HandleFunc("GET /nda/mutual/status",
		authMiddleware.RequireAuth(scopeMiddleware(h.Status)))
	mux.HandleFunc("POST /nda/mutual/accept",
		authMiddleware.RequireAuth(scopeMiddleware(h.Accept)))
}

// Current handles GET /nda/mutual/current?lang=
// Serves the active NDA document; no database access needed.
func (h *NdaHandler) Current(w http.ResponseWriter, r *http.Request) {
	document := h.ndaService.CurrentDocument(r.URL.Query().Get("lang"))

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: document}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Status handles GET /nda/mutual/status?counterpartyOrgId=
func (h *NdaHandler) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := models.GetActor(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	counterpartyOrgID, err := uuid.Parse(r.URL.Query().Get("counterpartyOrgId"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_counterparty_org_id", "Invalid counterparty org ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	status, err := h.ndaService.Status(r.Context(), actor.OrgID, counterpartyOrgID)
	if err != nil {
		h.logger.Error("Failed to get mutual NDA status",
			zap.String("org_id", actor.OrgID.String()),
			zap.String("counterparty_org_id", counterpartyOrgID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "nda_status_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: status}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Accept handles POST /nda/mutual/accept
// Records the calling org's acceptance of the active NDA version.
func (h *NdaHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := models.GetActor(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AcceptNdaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	acceptance, err := h.ndaService.RecordAcceptance(r.Context(), actor, req.TypedName, req.TypedRole, req.Language)
	if err != nil {
		h.logger.Error("Failed to record NDA acceptance",
			zap.String("org_id", actor.OrgID.String()),
			zap.Error(err))
		RespondServiceError(w, h.logger, err, "nda_accept_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: acceptance}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
