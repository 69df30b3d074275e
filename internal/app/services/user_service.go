package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/auth"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetUser(ctx context.Context, id int64) (*dto.UserProfile, error)
	ListUsers(ctx context.Context) ([]*dto.UserProfile, error)
	UpdateUser(ctx context.Context, actorID, userID int64, req *dto.UpdateUserRequest) (*dto.UserProfile, error)
	GetUserPosts(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo     repositories.UserRepository
	postRepo     repositories.PostRepository
	authzService *auth.AuthorizationService
	accountMu    *sync.Mutex
	logger       zerolog.Logger
}

// NewUserService creates a new UserService. accountMu must be the mutex
// given to NewAuthService so email changes and registrations cannot interleave.
func NewUserService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	authzService *auth.AuthorizationService,
	accountMu *sync.Mutex,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		postRepo:     postRepo,
		authzService: authzService,
		accountMu:    accountMu,
		logger:       logger,
	}
}

// GetUser retrieves a user profile by ID
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// ListUsers returns every user profile
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserProfile, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfiles(users), nil
}

// UpdateUser merges a partial update into the caller's own profile
func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, userID int64, req *dto.UpdateUserRequest) (*dto.UserProfile, error) {
	if err := s.authzService.ValidateSelf(actorID, userID, "You can only update your own profile"); err != nil {
		return nil, err
	}

	s.accountMu.Lock()
	defer s.accountMu.Unlock()

	if req.Email != nil {
		existing, err := s.userRepo.GetUserByEmail(ctx, *req.Email)
		if err == nil && existing.ID != userID {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already exists")
		}
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, req.ToModel())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("User profile updated")
	return dto.NewUserProfile(updated), nil
}

// GetUserPosts lists a user's posts newest first
func (s *userServiceImpl) GetUserPosts(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, error) {
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetPostsByAuthor(ctx, userID, limit, offset)
}
