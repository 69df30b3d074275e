package auth

import (
	"context"
	"errors"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/logger"
)

// Content kinds professionals may not create
const (
	ContentPosts         = "posts"
	ContentComments      = "comments"
	ContentTopics        = "topics"
	ContentLearningPaths = "learning paths"
)

// AuthorizationService handles role and ownership checks
type AuthorizationService struct {
	userRepo repositories.UserRepository
	pathRepo repositories.LearningPathRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserRepository, pathRepo repositories.LearningPathRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		pathRepo: pathRepo,
	}
}

// CurrentUser loads the authenticated user. A token for a user that no longer
// exists is treated as unauthenticated.
func (s *AuthorizationService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewUnauthorizedError("Not authenticated")
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user in CurrentUser")
		return nil, err
	}
	return user, nil
}

// ValidateContentCreator rejects professionals creating the given kind of content
func (s *AuthorizationService) ValidateContentCreator(ctx context.Context, userID int64, content string) (*models.User, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsProfessional() {
		return nil, apperrors.NewForbiddenError("Industry professionals cannot create " + content)
	}
	return user, nil
}

// ValidateSelf ensures the actor is acting on their own account
func (s *AuthorizationService) ValidateSelf(actorID, userID int64, message string) error {
	if actorID != userID {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// ValidatePathOwnership ensures userID created the learning path
func (s *AuthorizationService) ValidatePathOwnership(ctx context.Context, pathID, userID int64) (*models.LearningPath, error) {
	path, err := s.pathRepo.GetLearningPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	if path.CreatedBy != userID {
		return nil, apperrors.NewForbiddenError("Only the creator can add steps to this learning path")
	}
	return path, nil
}
