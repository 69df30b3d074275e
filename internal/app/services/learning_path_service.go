package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/auth"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// LearningPathService defines the interface for learning paths and progress tracking
type LearningPathService interface {
	List(ctx context.Context, limit, offset int) ([]*models.LearningPath, error)
	Get(ctx context.Context, id int64) (*dto.LearningPathDetailResponse, error)
	Create(ctx context.Context, userID int64, req *dto.CreateLearningPathRequest) (*dto.LearningPathDetailResponse, error)
	AddStep(ctx context.Context, userID, pathID int64, req *dto.CreateStepRequest) (*models.LearningPathStep, error)
	GetProgress(ctx context.Context, actorID, userID, pathID int64) (*dto.LearningProgressResponse, error)
	// UpsertProgress reports created=true when a new row was inserted
	UpsertProgress(ctx context.Context, actorID, userID, pathID, stepID int64, req *dto.UpdateProgressRequest) (progress *models.UserLearningProgress, created bool, err error)
}

type learningPathServiceImpl struct {
	pathRepo     repositories.LearningPathRepository
	postRepo     repositories.PostRepository
	userRepo     repositories.UserRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger

	// stepMu serializes order assignment; progressMu serializes the progress upsert
	stepMu     sync.Mutex
	progressMu sync.Mutex
}

// NewLearningPathService creates a new LearningPathService
func NewLearningPathService(
	pathRepo repositories.LearningPathRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) LearningPathService {
	return &learningPathServiceImpl{
		pathRepo:     pathRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// List returns learning paths newest first
func (s *learningPathServiceImpl) List(ctx context.Context, limit, offset int) ([]*models.LearningPath, error) {
	return s.pathRepo.GetLearningPaths(ctx, limit, offset)
}

// Get returns a path with its creator and steps, each step with its linked resource or post
func (s *learningPathServiceImpl) Get(ctx context.Context, id int64) (*dto.LearningPathDetailResponse, error) {
	path, err := s.pathRepo.GetLearningPath(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, path)
}

func (s *learningPathServiceImpl) detail(ctx context.Context, path *models.LearningPath) (*dto.LearningPathDetailResponse, error) {
	creator, err := s.userRepo.GetUser(ctx, path.CreatedBy)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	steps, err := s.pathRepo.GetLearningPathSteps(ctx, path.ID)
	if err != nil {
		return nil, err
	}

	details := make([]dto.StepDetail, 0, len(steps))
	for _, step := range steps {
		var resource *models.Resource
		var post *models.Post
		if id, ok := step.Content.ResourceID(); ok {
			if resource, err = s.postRepo.GetResource(ctx, id); err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, err
			}
		}
		if id, ok := step.Content.PostID(); ok {
			if post, err = s.postRepo.GetPost(ctx, id); err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, err
			}
		}
		details = append(details, dto.NewStepDetail(step, resource, post))
	}

	return &dto.LearningPathDetailResponse{
		LearningPath: *path,
		Creator:      dto.NewUserProfile(creator),
		Steps:        details,
	}, nil
}

// Create stores a learning path and its initial steps, numbered from 1
func (s *learningPathServiceImpl) Create(ctx context.Context, userID int64, req *dto.CreateLearningPathRequest) (*dto.LearningPathDetailResponse, error) {
	if _, err := s.authzService.ValidateContentCreator(ctx, userID, auth.ContentLearningPaths); err != nil {
		return nil, err
	}

	contents := make([]models.StepContent, 0, len(req.Steps))
	for i := range req.Steps {
		content, err := s.stepContent(ctx, &req.Steps[i])
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}

	path, err := s.pathRepo.CreateLearningPath(ctx, &models.LearningPath{
		Title:                   req.Title,
		Description:             req.Description,
		CreatedBy:               userID,
		Difficulty:              req.Difficulty,
		EstimatedTimeToComplete: req.EstimatedTimeToComplete,
		ImageURL:                req.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("learning path creation error: %w", err)
	}

	for i, step := range req.Steps {
		if _, err := s.pathRepo.CreateLearningPathStep(ctx, &models.LearningPathStep{
			LearningPathID: path.ID,
			Title:          step.Title,
			Description:    step.Description,
			Order:          i + 1,
			Content:        contents[i],
		}); err != nil {
			return nil, fmt.Errorf("learning path step creation error: %w", err)
		}
	}

	s.logger.Info().
		Int64("pathID", path.ID).
		Int64("createdBy", userID).
		Int("steps", len(req.Steps)).
		Msg("Learning path created")
	return s.detail(ctx, path)
}

// AddStep appends a step after the current last one. Only the path creator may add steps.
func (s *learningPathServiceImpl) AddStep(ctx context.Context, userID, pathID int64, req *dto.CreateStepRequest) (*models.LearningPathStep, error) {
	path, err := s.authzService.ValidatePathOwnership(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.stepContent(ctx, req)
	if err != nil {
		return nil, err
	}

	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	steps, err := s.pathRepo.GetLearningPathSteps(ctx, path.ID)
	if err != nil {
		return nil, err
	}
	order := 1
	for _, st := range steps {
		if st.Order >= order {
			order = st.Order + 1
		}
	}

	return s.pathRepo.CreateLearningPathStep(ctx, &models.LearningPathStep{
		LearningPathID: path.ID,
		Title:          req.Title,
		Description:    req.Description,
		Order:          order,
		Content:        content,
	})
}

// stepContent validates that a step links at most one existing source
func (s *learningPathServiceImpl) stepContent(ctx context.Context, req *dto.CreateStepRequest) (models.StepContent, error) {
	content, err := models.NewStepContent(req.ResourceID, req.PostID, req.ExternalURL)
	if err != nil {
		return models.StepContent{}, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	if id, ok := content.ResourceID(); ok {
		if _, err := s.postRepo.GetResource(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return models.StepContent{}, apperrors.NewBadRequestError(fmt.Sprintf("Unknown resource %d", id))
			}
			return models.StepContent{}, err
		}
	}
	if id, ok := content.PostID(); ok {
		if _, err := s.postRepo.GetPost(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return models.StepContent{}, apperrors.NewBadRequestError(fmt.Sprintf("Unknown post %d", id))
			}
			return models.StepContent{}, err
		}
	}
	return content, nil
}

// GetProgress returns the caller's progress through a path with completion stats
func (s *learningPathServiceImpl) GetProgress(ctx context.Context, actorID, userID, pathID int64) (*dto.LearningProgressResponse, error) {
	if err := s.authzService.ValidateSelf(actorID, userID, "You can only view your own learning progress"); err != nil {
		return nil, err
	}

	path, err := s.pathRepo.GetLearningPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	steps, err := s.pathRepo.GetLearningPathSteps(ctx, pathID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pathRepo.GetUserLearningProgress(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}

	return &dto.LearningProgressResponse{
		LearningPath: path,
		Progress:     rows,
		Stats:        progressStats(rows, len(steps)),
	}, nil
}

func progressStats(rows []*models.UserLearningProgress, totalSteps int) dto.ProgressStats {
	completed := 0
	for _, r := range rows {
		if r.Completed {
			completed++
		}
	}
	percent := 0
	if totalSteps > 0 {
		percent = int(math.Round(float64(completed) / float64(totalSteps) * 100))
	}
	return dto.ProgressStats{
		CompletedSteps:  completed,
		TotalSteps:      totalSteps,
		PercentComplete: percent,
	}
}

// UpsertProgress updates the caller's row for a step or inserts one when none exists
func (s *learningPathServiceImpl) UpsertProgress(ctx context.Context, actorID, userID, pathID, stepID int64, req *dto.UpdateProgressRequest) (*models.UserLearningProgress, bool, error) {
	if err := s.authzService.ValidateSelf(actorID, userID, "You can only update your own learning progress"); err != nil {
		return nil, false, err
	}

	if _, err := s.pathRepo.GetLearningPath(ctx, pathID); err != nil {
		return nil, false, err
	}
	step, err := s.pathRepo.GetLearningPathStep(ctx, stepID)
	if err != nil {
		return nil, false, err
	}
	if step.LearningPathID != pathID {
		return nil, false, apperrors.NewResourceNotFoundError("Step does not belong to this learning path")
	}

	completed := req.Completed != nil && *req.Completed

	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	rows, err := s.pathRepo.GetUserLearningProgress(ctx, userID, pathID)
	if err != nil {
		return nil, false, err
	}
	for _, row := range rows {
		if row.StepID == stepID {
			updated, err := s.pathRepo.UpdateLearningProgress(ctx, row.ID, completed, req.Notes)
			return updated, false, err
		}
	}

	created, err := s.pathRepo.CreateLearningProgress(ctx, &models.UserLearningProgress{
		UserID:         userID,
		LearningPathID: pathID,
		StepID:         stepID,
		Completed:      completed,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, false, fmt.Errorf("learning progress creation error: %w", err)
	}
	return created, true, nil
}
