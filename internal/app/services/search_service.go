package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/validation"
)

// SearchResultLimit caps the hits returned per category
const SearchResultLimit = 5

// SearchService defines the interface for free-text search
type SearchService interface {
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
}

type searchServiceImpl struct {
	postRepo  repositories.PostRepository
	userRepo  repositories.UserRepository
	topicRepo repositories.TopicRepository
	logger    zerolog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	topicRepo repositories.TopicRepository,
	logger zerolog.Logger,
) SearchService {
	return &searchServiceImpl{
		postRepo:  postRepo,
		userRepo:  userRepo,
		topicRepo: topicRepo,
		logger:    logger,
	}
}

// Search matches the lower-cased query as a substring of post titles and content,
// user display names and usernames, and topic names.
func (s *searchServiceImpl) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	if query == "" {
		return nil, apperrors.NewBadRequestError("Search query is required")
	}
	if !validation.NewStringValidation(query).WithMaxLength(validation.SearchQueryMaxLength).Validate() {
		return nil, apperrors.NewBadRequestError("Search query is too long")
	}
	q := strings.ToLower(query)

	posts, err := s.postRepo.SearchPosts(ctx, q, SearchResultLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", q).Msg("Post search failed")
		return nil, err
	}
	users, err := s.userRepo.SearchUsers(ctx, q, SearchResultLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", q).Msg("User search failed")
		return nil, err
	}
	topics, err := s.topicRepo.SearchTopics(ctx, q, SearchResultLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", q).Msg("Topic search failed")
		return nil, err
	}

	return &dto.SearchResponse{
		Posts:  posts,
		Users:  dto.NewUserProfiles(users),
		Topics: topics,
	}, nil
}
