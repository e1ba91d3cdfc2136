package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/database"
)

// ScopeMiddleware wraps a handler with a request-scoped database connection.
type ScopeMiddleware func(http.HandlerFunc) http.HandlerFunc

// NewScopeMiddleware builds the middleware that acquires one pooled
// connection per request and releases it when the handler returns.
func NewScopeMiddleware(db *database.DB, logger *zap.Logger) ScopeMiddleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			scope, err := db.Acquire(r.Context())
			if err != nil {
				logger.Error("Failed to acquire database connection", zap.Error(err))
				if err := ErrorResponse(w, http.StatusInternalServerError, "database_unavailable", "Database unavailable"); err != nil {
					logger.Error("Failed to write error response", zap.Error(err))
				}
				return
			}
			defer scope.Close()

			next(w, r.WithContext(database.SetRequestScope(r.Context(), scope)))
		}
	}
}

// ParseIntentID extracts and validates the intent ID from the request path.
// Returns the parsed UUID and true on success, or uuid.Nil and false on
// error (after writing an error response).
// Expects path parameter: iid
func ParseIntentID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "iid", "invalid_intent_id", "Invalid intent ID format", logger)
}

// ParseMatchListID extracts and validates the match list ID from the request
// path. Returns the parsed UUID and true on success, or uuid.Nil and false
// on error (after writing an error response).
// Expects path parameter: mlid
func ParseMatchListID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "mlid", "invalid_match_list_id", "Invalid match list ID format", logger)
}

func parseUUID(w http.ResponseWriter, r *http.Request, pathParam, errorCode, message string, logger *zap.Logger) (uuid.UUID, bool) {
	raw := r.PathValue(pathParam)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Debug("Invalid UUID path parameter",
			zap.String("param", pathParam),
			zap.String("value", raw),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, message); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
