package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

func TestMiddleware_RequireAuth(t *testing.T) {
	middleware := NewMiddleware(NewAuthService("", false), zap.NewNop())
	orgID := uuid.New()
	userID := uuid.New()

	var gotActor models.Actor
	handler := middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := models.GetActor(r.Context())
		require.True(t, ok, "actor must be stored in the request context")
		gotActor = actor
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/intents", nil)
	req.Header.Set("X-Org-ID", orgID.String())
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, orgID, gotActor.OrgID)
	assert.Equal(t, userID, gotActor.UserID)
}

func TestMiddleware_RequireAuth_Rejects(t *testing.T) {
	middleware := NewMiddleware(NewAuthService("secret", true), zap.NewNop())

	called := false
	handler := middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/intents", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without authentication")
}
