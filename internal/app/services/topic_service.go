package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/auth"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]*models.Topic, error)
	CreateTopic(ctx context.Context, userID int64, req *dto.CreateTopicRequest) (*models.Topic, error)
	GetTopicPosts(ctx context.Context, topicID int64, limit, offset int) ([]*models.Post, error)
}

type topicServiceImpl struct {
	topicRepo    repositories.TopicRepository
	postRepo     repositories.PostRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger

	createMu sync.Mutex
}

// NewTopicService creates a new TopicService
func NewTopicService(
	topicRepo repositories.TopicRepository,
	postRepo repositories.PostRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) TopicService {
	return &topicServiceImpl{
		topicRepo:    topicRepo,
		postRepo:     postRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// ListTopics returns every topic
func (s *topicServiceImpl) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	return s.topicRepo.GetTopics(ctx)
}

// CreateTopic adds a topic; names are unique ignoring case
func (s *topicServiceImpl) CreateTopic(ctx context.Context, userID int64, req *dto.CreateTopicRequest) (*models.Topic, error) {
	if _, err := s.authzService.ValidateContentCreator(ctx, userID, auth.ContentTopics); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Topic name is required")
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	if _, err := s.topicRepo.GetTopicByName(ctx, name); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "Topic already exists")
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	topic, err := s.topicRepo.CreateTopic(ctx, &models.Topic{Name: name, Color: req.Color})
	if err != nil {
		return nil, fmt.Errorf("topic creation error: %w", err)
	}

	s.logger.Info().Int64("topicID", topic.ID).Str("name", topic.Name).Msg("Topic created")
	return topic, nil
}

// GetTopicPosts lists the posts tagged with a topic
func (s *topicServiceImpl) GetTopicPosts(ctx context.Context, topicID int64, limit, offset int) ([]*models.Post, error) {
	if _, err := s.topicRepo.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}
	return s.postRepo.GetPostsByTopic(ctx, topicID, limit, offset)
}
