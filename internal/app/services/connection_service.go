package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/auth"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// ConnectionService defines the interface for connection requests between users
type ConnectionService interface {
	Request(ctx context.Context, userID int64, req *dto.CreateConnectionRequest) (*models.Connection, error)
	UpdateStatus(ctx context.Context, userID, connectionID int64, req *dto.UpdateConnectionRequest) (*models.Connection, error)
	ListForUser(ctx context.Context, userID int64) ([]*dto.ConnectionResponse, error)
}

type connectionServiceImpl struct {
	connectionRepo      repositories.ConnectionRepository
	userRepo            repositories.UserRepository
	authzService        *auth.AuthorizationService
	notificationService NotificationService
	logger              zerolog.Logger

	requestMu sync.Mutex
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	connectionRepo repositories.ConnectionRepository,
	userRepo repositories.UserRepository,
	authzService *auth.AuthorizationService,
	notificationService NotificationService,
	logger zerolog.Logger,
) ConnectionService {
	return &connectionServiceImpl{
		connectionRepo:      connectionRepo,
		userRepo:            userRepo,
		authzService:        authzService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Request creates a pending connection and notifies the receiver
func (s *connectionServiceImpl) Request(ctx context.Context, userID int64, req *dto.CreateConnectionRequest) (*models.Connection, error) {
	requester, err := s.authzService.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID == userID {
		return nil, apperrors.NewBadRequestError("You cannot connect with yourself")
	}
	if _, err := s.userRepo.GetUser(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	s.requestMu.Lock()
	existing, err := s.connectionRepo.GetConnectionsByUser(ctx, userID)
	if err != nil {
		s.requestMu.Unlock()
		return nil, err
	}
	for _, c := range existing {
		if c.OtherParty(userID) == req.ReceiverID && c.Status != models.ConnectionStatusRejected {
			s.requestMu.Unlock()
			return nil, apperrors.NewConflictError("A connection with this user already exists")
		}
	}
	connection, err := s.connectionRepo.CreateConnection(ctx, &models.Connection{
		RequesterID: userID,
		ReceiverID:  req.ReceiverID,
	})
	s.requestMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("connection creation error: %w", err)
	}

	if _, err := s.notificationService.Notify(ctx, NotificationRequest{
		RecipientID: connection.ReceiverID,
		ActorID:     userID,
		Type:        models.NotificationTypeConnection,
		Content:     fmt.Sprintf("%s sent you a connection request", requester.DisplayName),
		SourceID:    &connection.ID,
		SourceType:  models.SourceTypeConnection,
	}); err != nil {
		return nil, err
	}

	return connection, nil
}

// UpdateStatus accepts or rejects a connection and notifies the requester.
// Re-applying the current status is allowed and notifies again.
func (s *connectionServiceImpl) UpdateStatus(ctx context.Context, userID, connectionID int64, req *dto.UpdateConnectionRequest) (*models.Connection, error) {
	actor, err := s.authzService.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var verb string
	switch req.Status {
	case models.ConnectionStatusAccepted:
		verb = "accepted"
	case models.ConnectionStatusRejected:
		verb = "declined"
	default:
		return nil, apperrors.NewBadRequestError("Status must be accepted or rejected")
	}

	connection, err := s.connectionRepo.UpdateConnection(ctx, connectionID, req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.notificationService.Notify(ctx, NotificationRequest{
		RecipientID: connection.RequesterID,
		ActorID:     userID,
		Type:        models.NotificationTypeConnection,
		Content:     fmt.Sprintf("%s %s your connection request", actor.DisplayName, verb),
		SourceID:    &connection.ID,
		SourceType:  models.SourceTypeConnection,
	}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("connectionID", connection.ID).
		Str("status", string(connection.Status)).
		Msg("Connection status updated")
	return connection, nil
}

// ListForUser lists the caller's connections with the other party embedded
func (s *connectionServiceImpl) ListForUser(ctx context.Context, userID int64) ([]*dto.ConnectionResponse, error) {
	connections, err := s.connectionRepo.GetConnectionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ConnectionResponse, 0, len(connections))
	for _, c := range connections {
		other, err := s.userRepo.GetUser(ctx, c.OtherParty(userID))
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		out = append(out, &dto.ConnectionResponse{Connection: *c, User: dto.NewUserProfile(other)})
	}
	return out, nil
}
