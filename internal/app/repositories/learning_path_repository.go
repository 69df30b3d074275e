package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// CreateLearningPath stores a new learning path and stamps id and createdAt
func (s *MemStorage) CreateLearningPath(ctx context.Context, path *models.LearningPath) (*models.LearningPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *path
	p.ID = s.nextID(seqLearningPaths)
	p.CreatedAt = s.now()
	s.learningPaths[p.ID] = p
	return &p, nil
}

// GetLearningPath retrieves a learning path by ID
func (s *MemStorage) GetLearningPath(ctx context.Context, id int64) (*models.LearningPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.learningPaths[id]
	if !ok {
		return nil, apperrors.ErrLearningPathNotFound
	}
	return &p, nil
}

// GetLearningPaths lists learning paths newest first
func (s *MemStorage) GetLearningPaths(ctx context.Context, limit, offset int) ([]*models.LearningPath, error) {
	s.mu.RLock()
	paths := values(s.learningPaths)
	s.mu.RUnlock()

	slices.SortFunc(paths, func(a, b models.LearningPath) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return pointers(helpers.Page(paths, limit, offset)), nil
}

// CreateLearningPathStep stores a step; Order is assigned by the caller
func (s *MemStorage) CreateLearningPathStep(ctx context.Context, step *models.LearningPathStep) (*models.LearningPathStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := *step
	st.ID = s.nextID(seqLearningPathSteps)
	s.learningSteps[st.ID] = st
	return &st, nil
}

// GetLearningPathStep retrieves a step by ID
func (s *MemStorage) GetLearningPathStep(ctx context.Context, id int64) (*models.LearningPathStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.learningSteps[id]
	if !ok {
		return nil, apperrors.ErrStepNotFound
	}
	return &st, nil
}

// GetLearningPathSteps lists the steps of a path by order
func (s *MemStorage) GetLearningPathSteps(ctx context.Context, pathID int64) ([]*models.LearningPathStep, error) {
	s.mu.RLock()
	steps := make([]models.LearningPathStep, 0)
	for _, st := range s.learningSteps {
		if st.LearningPathID == pathID {
			steps = append(steps, st)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(steps, func(a, b models.LearningPathStep) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return cmpID(a.ID, b.ID)
	})
	return pointers(steps), nil
}

// CreateLearningProgress stores a progress row; completedAt is set iff completed
func (s *MemStorage) CreateLearningProgress(ctx context.Context, progress *models.UserLearningProgress) (*models.UserLearningProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *progress
	p.ID = s.nextID(seqLearningProgress)
	p.CompletedAt = s.completedAt(p.Completed)
	s.learningProgress[p.ID] = p
	return &p, nil
}

// GetUserLearningProgress lists a user's progress rows for one path
func (s *MemStorage) GetUserLearningProgress(ctx context.Context, userID, pathID int64) ([]*models.UserLearningProgress, error) {
	s.mu.RLock()
	rows := make([]models.UserLearningProgress, 0)
	for _, p := range s.learningProgress {
		if p.UserID == userID && p.LearningPathID == pathID {
			rows = append(rows, p)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(rows, func(a, b models.UserLearningProgress) int { return cmpID(a.ID, b.ID) })
	return pointers(rows), nil
}

// UpdateLearningProgress sets completed and recomputes completedAt.
// notes replaces the stored notes when non-nil.
func (s *MemStorage) UpdateLearningProgress(ctx context.Context, id int64, completed bool, notes *string) (*models.UserLearningProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.learningProgress[id]
	if !ok {
		return nil, apperrors.ErrLearningProgressNotFound
	}
	p.Completed = completed
	p.CompletedAt = s.completedAt(completed)
	if notes != nil {
		p.Notes = notes
	}
	s.learningProgress[id] = p
	return &p, nil
}

func (s *MemStorage) completedAt(completed bool) *time.Time {
	if !completed {
		return nil
	}
	t := s.now()
	return &t
}
