package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

func TestNdaHandler_Current(t *testing.T) {
	nda := &mockNdaService{document: &models.NdaDocument{
		Version:  "2025-03",
		Language: "de",
		Text:     "Mutual NDA text",
	}}
	handler := NewNdaHandler(nda, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodGet, "/nda/mutual/current?lang=de", nil)
	rec := httptest.NewRecorder()

	handler.Current(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "de", nda.lastLanguage)
	data := decodeEnvelope(t, rec)
	assert.Equal(t, "2025-03", data["version"])
	assert.Equal(t, "Mutual NDA text", data["text"])
}

func TestNdaHandler_Status(t *testing.T) {
	counterparty := uuid.New()
	nda := &mockNdaService{status: &models.MutualNdaStatus{Accepted: true}}
	handler := NewNdaHandler(nda, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodGet, "/nda/mutual/status?counterpartyOrgId="+counterparty.String(), nil)
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)
	assert.Equal(t, true, data["accepted"])
}

func TestNdaHandler_Status_MissingCounterparty(t *testing.T) {
	handler := NewNdaHandler(&mockNdaService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodGet, "/nda/mutual/status", nil)
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNdaHandler_Status_NoActor(t *testing.T) {
	handler := NewNdaHandler(&mockNdaService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/nda/mutual/status?counterpartyOrgId="+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNdaHandler_Accept(t *testing.T) {
	nda := &mockNdaService{acceptance: &models.NdaAcceptance{
		ID:         uuid.New(),
		NdaVersion: "2025-03",
		TypedName:  "Jane Doe",
		TypedRole:  "CEO",
		AcceptedAt: time.Now().UTC(),
	}}
	handler := NewNdaHandler(nda, zap.NewNop())

	body, _ := json.Marshal(AcceptNdaRequest{TypedName: "Jane Doe", TypedRole: "CEO"})
	req, _ := requestWithActor(t, http.MethodPost, "/nda/mutual/accept", body)
	rec := httptest.NewRecorder()

	handler.Accept(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decodeEnvelope(t, rec)
	assert.Equal(t, "2025-03", data["nda_version"])
	assert.Equal(t, "Jane Doe", data["typed_name"])
}

func TestNdaHandler_Accept_ValidationFailure(t *testing.T) {
	nda := &mockNdaService{err: apperrors.ErrValidation}
	handler := NewNdaHandler(nda, zap.NewNop())

	body, _ := json.Marshal(AcceptNdaRequest{TypedRole: "CEO"})
	req, _ := requestWithActor(t, http.MethodPost, "/nda/mutual/accept", body)
	rec := httptest.NewRecorder()

	handler.Accept(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNdaHandler_Accept_MalformedBody(t *testing.T) {
	handler := NewNdaHandler(&mockNdaService{}, zap.NewNop())

	req, _ := requestWithActor(t, http.MethodPost, "/nda/mutual/accept", []byte("{not json"))
	rec := httptest.NewRecorder()

	handler.Accept(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
