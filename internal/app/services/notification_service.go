package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/websocket"
)

// Publisher pushes live messages to a connected user
type Publisher interface {
	PublishToUser(userID int64, msgType string, payload interface{})
}

// NotificationRequest describes a notification produced by an action
type NotificationRequest struct {
	RecipientID int64
	ActorID     int64
	Type        models.NotificationType
	Content     string
	SourceID    *int64
	SourceType  string
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Notify(ctx context.Context, req NotificationRequest) (*models.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	publisher        Publisher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher Publisher,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// Notify stores a notification and pushes it to the recipient's live connections.
// Nothing is created when the actor is the recipient.
func (s *notificationServiceImpl) Notify(ctx context.Context, req NotificationRequest) (*models.Notification, error) {
	if req.RecipientID == req.ActorID {
		return nil, nil
	}

	n := &models.Notification{
		UserID:   req.RecipientID,
		Type:     req.Type,
		Content:  req.Content,
		SourceID: req.SourceID,
	}
	if req.SourceType != "" {
		sourceType := req.SourceType
		n.SourceType = &sourceType
	}

	created, err := s.notificationRepo.CreateNotification(ctx, n)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("recipientID", req.RecipientID).
			Str("type", string(req.Type)).
			Msg("Failed to create notification")
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishToUser(created.UserID, websocket.TypeNotification, created)
	}

	s.logger.Debug().
		Int64("notificationID", created.ID).
		Int64("recipientID", created.UserID).
		Str("type", string(created.Type)).
		Msg("Notification created")
	return created, nil
}

// ListForUser returns the user's notifications newest first
func (s *notificationServiceImpl) ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.notificationRepo.GetNotificationsByUser(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
// Unknown ids and notifications owned by someone else are left untouched.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	n, err := s.notificationRepo.GetNotification(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		return err
	}
	if n.UserID != userID {
		s.logger.Warn().
			Int64("notificationID", notificationID).
			Int64("userID", userID).
			Msg("Ignoring mark-read on another user's notification")
		return nil
	}

	_, err = s.notificationRepo.MarkNotificationAsRead(ctx, notificationID)
	return err
}
