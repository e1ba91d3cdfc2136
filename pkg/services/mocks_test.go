package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// mockIntentRepository is an in-memory IntentRepository for tests.
type mockIntentRepository struct {
	intents map[uuid.UUID]*models.Intent
	events  []*models.PipelineEvent

	getErr    error
	changeErr error
}

func newMockIntentRepository() *mockIntentRepository {
	return &mockIntentRepository{intents: make(map[uuid.UUID]*models.Intent)}
}

func (m *mockIntentRepository) GetByID(ctx context.Context, intentID uuid.UUID) (*models.Intent, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	intent, ok := m.intents[intentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *intent
	return &copied, nil
}

func (m *mockIntentRepository) ChangeStage(ctx context.Context, intentID uuid.UUID, toStage models.PipelineStage, actor models.Actor) (*models.Intent, *models.PipelineEvent, error) {
	if m.changeErr != nil {
		return nil, nil, m.changeErr
	}
	intent, ok := m.intents[intentID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	fromStage := intent.Stage
	intent.Stage = toStage
	intent.LastActivityAt = now
	intent.UpdatedAt = now

	event := &models.PipelineEvent{
		ID:          uuid.New(),
		EventType:   models.EventStageChanged,
		SubjectID:   intentID,
		ActorOrgID:  actor.OrgID,
		ActorUserID: actor.UserID,
		Payload: map[string]any{
			"from_stage": fromStage.String(),
			"to_stage":   toStage.String(),
		},
		CreatedAt: now,
	}
	m.events = append(m.events, event)

	copied := *intent
	return &copied, event, nil
}

// mockAttachmentRepository is an in-memory AttachmentRepository for tests.
type mockAttachmentRepository struct {
	attachments []*models.Attachment
	getErr      error
}

func (m *mockAttachmentRepository) GetByIntent(ctx context.Context, intentID uuid.UUID) ([]*models.Attachment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var matched []*models.Attachment
	for _, att := range m.attachments {
		if att.IntentID == intentID {
			matched = append(matched, att)
		}
	}
	return matched, nil
}

// mockOrgProfileRepository is an in-memory OrgProfileRepository for tests.
type mockOrgProfileRepository struct {
	profiles []*models.OrgProfile
	getErr   error
}

func (m *mockOrgProfileRepository) GetAll(ctx context.Context) ([]*models.OrgProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	sorted := make([]*models.OrgProfile, len(m.profiles))
	copy(sorted, m.profiles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].OrgID.String() < sorted[j].OrgID.String()
	})
	return sorted, nil
}

func (m *mockOrgProfileRepository) GetByID(ctx context.Context, orgID uuid.UUID) (*models.OrgProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, profile := range m.profiles {
		if profile.OrgID == orgID {
			return profile, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// mockMatchRepository is an in-memory MatchRepository for tests.
type mockMatchRepository struct {
	lists     []*models.MatchList
	createErr error
	getErr    error
}

func (m *mockMatchRepository) Create(ctx context.Context, list *models.MatchList) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.lists = append(m.lists, list)
	return nil
}

func (m *mockMatchRepository) GetLatestByIntent(ctx context.Context, intentID uuid.UUID) (*models.MatchList, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var latest *models.MatchList
	for _, list := range m.lists {
		if list.IntentID != intentID {
			continue
		}
		if latest == nil || list.GeneratedAt.After(latest.GeneratedAt) {
			latest = list
		}
	}
	return latest, nil
}

func (m *mockMatchRepository) GetByID(ctx context.Context, matchListID uuid.UUID) (*models.MatchList, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, list := range m.lists {
		if list.ID == matchListID {
			return list, nil
		}
	}
	return nil, nil
}

// mockFeedbackRepository is an in-memory FeedbackRepository for tests.
type mockFeedbackRepository struct {
	records   map[string]*models.FeedbackRecord
	upsertErr error
	getErr    error
}

func newMockFeedbackRepository() *mockFeedbackRepository {
	return &mockFeedbackRepository{records: make(map[string]*models.FeedbackRecord)}
}

func feedbackKey(matchListID, orgID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", matchListID, orgID)
}

func (m *mockFeedbackRepository) Upsert(ctx context.Context, record *models.FeedbackRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := feedbackKey(record.MatchListID, record.OrgID)
	if existing, ok := m.records[key]; ok && existing.UpdatedAt.After(record.UpdatedAt) {
		return nil
	}
	copied := *record
	m.records[key] = &copied
	return nil
}

func (m *mockFeedbackRepository) GetByMatchList(ctx context.Context, matchListID uuid.UUID) ([]*models.FeedbackRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var records []*models.FeedbackRecord
	for _, record := range m.records {
		if record.MatchListID == matchListID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *mockFeedbackRepository) Get(ctx context.Context, matchListID, orgID uuid.UUID) (*models.FeedbackRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	record, ok := m.records[feedbackKey(matchListID, orgID)]
	if !ok {
		return nil, nil
	}
	return record, nil
}

// mockNdaRepository is an in-memory NdaRepository for tests.
type mockNdaRepository struct {
	acceptances map[string]*models.NdaAcceptance
	upsertErr   error
	queryErr    error
}

func newMockNdaRepository() *mockNdaRepository {
	return &mockNdaRepository{acceptances: make(map[string]*models.NdaAcceptance)}
}

func ndaKey(orgID uuid.UUID, version string) string {
	return fmt.Sprintf("%s/%s", orgID, version)
}

func (m *mockNdaRepository) Upsert(ctx context.Context, acceptance *models.NdaAcceptance) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := ndaKey(acceptance.OrgID, acceptance.NdaVersion)
	if existing, ok := m.acceptances[key]; ok {
		acceptance.ID = existing.ID
	} else if acceptance.ID == uuid.Nil {
		acceptance.ID = uuid.New()
	}
	copied := *acceptance
	m.acceptances[key] = &copied
	return nil
}

func (m *mockNdaRepository) GetAcceptance(ctx context.Context, orgID uuid.UUID, ndaVersion string) (*models.NdaAcceptance, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	acceptance, ok := m.acceptances[ndaKey(orgID, ndaVersion)]
	if !ok {
		return nil, nil
	}
	return acceptance, nil
}

func (m *mockNdaRepository) BothAccepted(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error) {
	if m.queryErr != nil {
		return false, m.queryErr
	}
	_, okA := m.acceptances[ndaKey(orgA, ndaVersion)]
	_, okB := m.acceptances[ndaKey(orgB, ndaVersion)]
	return okA && okB, nil
}

// mockEventRepository is an in-memory EventRepository for tests.
type mockEventRepository struct {
	events    []*models.PipelineEvent
	createErr error
	listErr   error
	lastLimit int
}

func (m *mockEventRepository) Create(ctx context.Context, event *models.PipelineEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error) {
	m.lastLimit = filter.Limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	var events []*models.PipelineEvent
	for _, event := range m.events {
		if filter.SubjectID != uuid.Nil && event.SubjectID != filter.SubjectID {
			continue
		}
		if filter.EventType != "" && event.EventType != filter.EventType {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if filter.Offset < len(events) {
		events = events[filter.Offset:]
	} else {
		events = nil
	}
	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}
	return events, nil
}

// eventsOfType filters captured events for assertions.
func (m *mockEventRepository) eventsOfType(eventType string) []*models.PipelineEvent {
	var matched []*models.PipelineEvent
	for _, event := range m.events {
		if event.EventType == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
