package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// mockIntentService is a canned-response IntentService for handler tests.
type mockIntentService struct {
	view        *models.IntentView
	attachments []*models.AttachmentView
	err         error
}

func (m *mockIntentService) GetView(ctx context.Context, intentID, requestingOrgID uuid.UUID) (*models.IntentView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockIntentService) GetAttachments(ctx context.Context, intentID, requestingOrgID uuid.UUID) ([]*models.AttachmentView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attachments, nil
}

// mockPipelineService is a canned-response PipelineService for handler tests.
type mockPipelineService struct {
	intent      *models.Intent
	err         error
	lastToStage models.PipelineStage
}

func (m *mockPipelineService) ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage) (*models.Intent, error) {
	m.lastToStage = toStage
	if m.err != nil {
		return nil, m.err
	}
	return m.intent, nil
}

func (m *mockPipelineService) Get(ctx context.Context, intentID uuid.UUID) (*models.Intent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.intent, nil
}

// mockMatchingService is a canned-response MatchingService for handler tests.
type mockMatchingService struct {
	list   *models.MatchList
	runErr error
	getErr error
}

func (m *mockMatchingService) Run(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.list, nil
}

func (m *mockMatchingService) Latest(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.list, nil
}

// mockFeedbackService is a canned-response FeedbackService for handler tests.
type mockFeedbackService struct {
	record     *models.FeedbackRecord
	err        error
	lastAction models.FeedbackAction
}

func (m *mockFeedbackService) SetFeedback(ctx context.Context, intentID, matchListID, candidateOrgID uuid.UUID, action models.FeedbackAction) (*models.FeedbackRecord, error) {
	m.lastAction = action
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}

// mockNdaService is a canned-response NdaService for handler tests.
type mockNdaService struct {
	acceptance *models.NdaAcceptance
	status     *models.MutualNdaStatus
	document   *models.NdaDocument
	err        error

	lastLanguage string
}

func (m *mockNdaService) RecordAcceptance(ctx context.Context, actor models.Actor, typedName, typedRole, language string) (*models.NdaAcceptance, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.acceptance, nil
}

func (m *mockNdaService) MutualStatus(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.status != nil && m.status.Accepted, nil
}

func (m *mockNdaService) Status(ctx context.Context, orgID, counterpartyOrgID uuid.UUID) (*models.MutualNdaStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func (m *mockNdaService) ActiveVersion() string {
	return "2025-03"
}

func (m *mockNdaService) CurrentDocument(language string) *models.NdaDocument {
	m.lastLanguage = language
	return m.document
}

// mockEventService is a canned-response EventService for handler tests.
type mockEventService struct {
	events     []*models.PipelineEvent
	err        error
	lastFilter models.EventFilter
}

func (m *mockEventService) List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}
