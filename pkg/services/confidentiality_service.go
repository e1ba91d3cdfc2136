package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// ConfidentialityService is the gate in front of every Intent read. It
// decides, per request, whether L2 content is visible to the requesting org
// and produces explicitly redacted views otherwise.
//
// The decision is recomputed on every call and never cached across a
// request boundary: acceptance state can change between two reads of the
// same Intent, and a revoked or rotated NDA must close L2 immediately.
type ConfidentialityService interface {
	// ResolveIntent returns the requester's view of the intent. Owners see
	// everything; other orgs see L2 content only under a mutual NDA for the
	// active version. Redaction is a structured marker (nil text plus
	// l2_redacted=true), never a silently missing field.
	ResolveIntent(ctx context.Context, intent *models.Intent, requestingOrgID uuid.UUID) (*models.IntentView, error)

	// ResolveAttachments returns attachment views with can_download derived
	// from the same gate decision. L1 attachments are always downloadable;
	// L2 attachments follow the relationship's L2 visibility as a whole.
	ResolveAttachments(ctx context.Context, intent *models.Intent, attachments []*models.Attachment, requestingOrgID uuid.UUID) ([]*models.AttachmentView, error)
}

type confidentialityService struct {
	ndaService NdaService
	logger     *zap.Logger
}

// NewConfidentialityService creates a new ConfidentialityService.
func NewConfidentialityService(ndaService NdaService, logger *zap.Logger) ConfidentialityService {
	return &confidentialityService{
		ndaService: ndaService,
		logger:     logger.Named("confidentiality-gate"),
	}
}

var _ ConfidentialityService = (*confidentialityService)(nil)

func (s *confidentialityService) ResolveIntent(ctx context.Context, intent *models.Intent, requestingOrgID uuid.UUID) (*models.IntentView, error) {
	l2Open := s.l2Open(ctx, intent.OwnerOrgID, requestingOrgID)

	view := &models.IntentView{
		ID:                   intent.ID,
		OwnerOrgID:           intent.OwnerOrgID,
		Title:                intent.Title,
		Goal:                 intent.Goal,
		ClientName:           intent.ClientName,
		Stage:                intent.Stage,
		ConfidentialityLevel: intent.ConfidentialityLevel,
		LastActivityAt:       intent.LastActivityAt,
		CreatedAt:            intent.CreatedAt,
	}

	if l2Open {
		view.SourceTextRaw = intent.SourceTextRaw
	} else {
		view.SourceTextRaw = nil
		view.L2Redacted = true
	}

	return view, nil
}

func (s *confidentialityService) ResolveAttachments(ctx context.Context, intent *models.Intent, attachments []*models.Attachment, requestingOrgID uuid.UUID) ([]*models.AttachmentView, error) {
	l2Open := s.l2Open(ctx, intent.OwnerOrgID, requestingOrgID)

	views := make([]*models.AttachmentView, 0, len(attachments))
	for _, att := range attachments {
		views = append(views, &models.AttachmentView{
			ID:                   att.ID,
			IntentID:             att.IntentID,
			FileName:             att.FileName,
			ConfidentialityLevel: att.ConfidentialityLevel,
			CanDownload:          att.ConfidentialityLevel == models.LevelL1 || l2Open,
			CreatedAt:            att.CreatedAt,
		})
	}

	return views, nil
}

// l2Open computes the L2 visibility decision for one (owner, requester)
// relationship. An org always sees its own data. A ledger failure counts as
// closed: on uncertainty the gate redacts rather than discloses.
func (s *confidentialityService) l2Open(ctx context.Context, ownerOrgID, requestingOrgID uuid.UUID) bool {
	if ownerOrgID == requestingOrgID {
		return true
	}

	open, err := s.ndaService.MutualStatus(ctx, ownerOrgID, requestingOrgID, s.ndaService.ActiveVersion())
	if err != nil {
		s.logger.Warn("NDA ledger lookup failed, failing closed",
			zap.String("owner_org_id", ownerOrgID.String()),
			zap.String("requesting_org_id", requestingOrgID.String()),
			zap.Error(err))
		return false
	}

	return open
}
