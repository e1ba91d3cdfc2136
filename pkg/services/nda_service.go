package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/apperrors"
	"github.com/intentlane-inc/intentlane-engine/pkg/config"
	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

// NdaService is the acceptance ledger for the platform's mutual NDA.
// The active version comes from configuration and is passed explicitly into
// every ledger query, so decisions are reproducible for a version argument.
type NdaService interface {
	// RecordAcceptance records the actor org's acceptance of the active NDA
	// version. Idempotent per (org, version): re-accepting updates acceptor
	// metadata without creating a second logical acceptance.
	RecordAcceptance(ctx context.Context, actor models.Actor, typedName, typedRole, language string) (*models.NdaAcceptance, error)

	// MutualStatus reports whether L2 disclosure is open between two orgs
	// under the given NDA version. Symmetric in its org arguments.
	MutualStatus(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error)

	// Status returns the mutual status between the caller org and a
	// counterparty for the active version, plus the caller's own acceptance.
	Status(ctx context.Context, orgID, counterpartyOrgID uuid.UUID) (*models.MutualNdaStatus, error)

	// ActiveVersion returns the currently active NDA version.
	ActiveVersion() string

	// CurrentDocument returns the active NDA document for a language,
	// falling back to the configured default language.
	CurrentDocument(language string) *models.NdaDocument
}

type ndaService struct {
	repo      repositories.NdaRepository
	eventRepo repositories.EventRepository
	cfg       config.NdaConfig
	logger    *zap.Logger
}

// NewNdaService creates a new NdaService.
func NewNdaService(repo repositories.NdaRepository, eventRepo repositories.EventRepository, cfg config.NdaConfig, logger *zap.Logger) NdaService {
	return &ndaService{
		repo:      repo,
		eventRepo: eventRepo,
		cfg:       cfg,
		logger:    logger.Named("nda-service"),
	}
}

var _ NdaService = (*ndaService)(nil)

func (s *ndaService) RecordAcceptance(ctx context.Context, actor models.Actor, typedName, typedRole, language string) (*models.NdaAcceptance, error) {
	typedName = strings.TrimSpace(typedName)
	typedRole = strings.TrimSpace(typedRole)
	if typedName == "" {
		return nil, fmt.Errorf("%w: typed name is required", apperrors.ErrValidation)
	}
	if typedRole == "" {
		return nil, fmt.Errorf("%w: typed role is required", apperrors.ErrValidation)
	}
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	acceptance := &models.NdaAcceptance{
		OrgID:       actor.OrgID,
		NdaVersion:  s.cfg.ActiveVersion,
		ContentHash: s.cfg.ContentHash,
		TypedName:   typedName,
		TypedRole:   typedRole,
		Language:    language,
		Channel:     models.NdaChannelAPI,
		AcceptedAt:  time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, acceptance); err != nil {
		return nil, fmt.Errorf("record nda acceptance: %w", err)
	}

	s.logger.Info("Recorded NDA acceptance",
		zap.String("org_id", actor.OrgID.String()),
		zap.String("nda_version", acceptance.NdaVersion))

	event := &models.PipelineEvent{
		EventType:   models.EventNdaAccepted,
		SubjectID:   actor.OrgID,
		ActorOrgID:  actor.OrgID,
		ActorUserID: actor.UserID,
		Payload: map[string]any{
			"nda_version":  acceptance.NdaVersion,
			"content_hash": acceptance.ContentHash,
		},
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to record nda acceptance event",
			zap.String("org_id", actor.OrgID.String()),
			zap.Error(err))
	}

	return acceptance, nil
}

func (s *ndaService) MutualStatus(ctx context.Context, orgA, orgB uuid.UUID, ndaVersion string) (bool, error) {
	accepted, err := s.repo.BothAccepted(ctx, orgA, orgB, ndaVersion)
	if err != nil {
		return false, fmt.Errorf("query mutual nda status: %w", err)
	}
	return accepted, nil
}

func (s *ndaService) Status(ctx context.Context, orgID, counterpartyOrgID uuid.UUID) (*models.MutualNdaStatus, error) {
	accepted, err := s.MutualStatus(ctx, orgID, counterpartyOrgID, s.cfg.ActiveVersion)
	if err != nil {
		return nil, err
	}

	acceptance, err := s.repo.GetAcceptance(ctx, orgID, s.cfg.ActiveVersion)
	if err != nil {
		return nil, fmt.Errorf("query own nda acceptance: %w", err)
	}

	return &models.MutualNdaStatus{
		Accepted:   accepted,
		Acceptance: acceptance,
	}, nil
}

func (s *ndaService) ActiveVersion() string {
	return s.cfg.ActiveVersion
}

func (s *ndaService) CurrentDocument(language string) *models.NdaDocument {
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	text, ok := s.cfg.Documents[language]
	if !ok {
		language = s.cfg.DefaultLanguage
		text = s.cfg.Documents[language]
	}

	return &models.NdaDocument{
		Version:     s.cfg.ActiveVersion,
		ContentHash: s.cfg.ContentHash,
		Language:    language,
		Text:        text,
	}
}
