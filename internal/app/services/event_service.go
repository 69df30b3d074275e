package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/auth"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
)

// EventService defines the interface for calendar events
type EventService interface {
	ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*models.Event, error)
}

type eventServiceImpl struct {
	eventRepo    repositories.EventRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository, authzService *auth.AuthorizationService, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		authzService: authzService,
		logger:       logger,
	}
}

func (s *eventServiceImpl) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return s.eventRepo.GetEvents(ctx, limit, offset)
}

func (s *eventServiceImpl) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetEvent(ctx, id)
}

// CreateEvent stores an event created by the caller. Any user type may create events.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	if _, err := s.authzService.CurrentUser(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.CreateEvent(ctx, req.ToModel(userID))
	if err != nil {
		return nil, fmt.Errorf("event creation error: %w", err)
	}

	s.logger.Info().Int64("eventID", event.ID).Int64("createdBy", userID).Msg("Event created")
	return event, nil
}
