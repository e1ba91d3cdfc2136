package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/auth"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/services"
)

// EventListResponse for GET /events
type EventListResponse struct {
	Events []*models.PipelineEvent `json:"events"`
	Total  int                     `json:"total"`
}

// EventsHandler serves the append-only audit log read endpoint.
type EventsHandler struct {
	eventService services.EventService
	logger       *zap.Logger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(eventService services.EventService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// RegisterRoutes registers the events handler's routes on the given mux.
func (h *EventsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, scopeMiddleware ScopeMiddleware) {
	mux.HandleFunc("GET /events",
		authMiddleware.RequireAuth(scopeMiddleware(h.List)))
}

// List handles GET /events?subjectId=&type=&limit=&offset=
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.EventFilter{
		EventType: query.Get("type"),
	}

	if raw := query.Get("subjectId"); raw != "" {
		subjectID, err := uuid.Parse(raw)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_subject_id", "Invalid subject ID format"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.SubjectID = subjectID
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_limit", "Invalid limit value"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_offset", "Invalid offset value"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.Offset = offset
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list events", zap.Error(err))
		RespondServiceError(w, h.logger, err, "list_events_failed")
		return
	}

	response := EventListResponse{
		Events: events,
		Total:  len(events),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
