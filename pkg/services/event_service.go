package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
	"github.com/intentlane-inc/intentlane-engine/pkg/repositories"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 200
)

// EventService is the read side of the append-only audit log.
type EventService interface {
	// List returns audit events matching the filter, newest first.
	List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error)
}

type eventService struct {
	repo   repositories.EventRepository
	logger *zap.Logger
}

// NewEventService creates a new EventService.
func NewEventService(repo repositories.EventRepository, logger *zap.Logger) EventService {
	return &eventService{
		repo:   repo,
		logger: logger.Named("event-service"),
	}
}

var _ EventService = (*eventService)(nil)

func (s *eventService) List(ctx context.Context, filter models.EventFilter) ([]*models.PipelineEvent, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultEventLimit
	}
	if filter.Limit > maxEventLimit {
		filter.Limit = maxEventLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}
