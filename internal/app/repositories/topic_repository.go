package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// CreateTopic stores a new topic. Name uniqueness is checked by callers.
func (s *MemStorage) CreateTopic(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *topic
	t.ID = s.nextID(seqTopics)
	s.topics[t.ID] = t
	return &t, nil
}

// GetTopic retrieves a topic by ID
func (s *MemStorage) GetTopic(ctx context.Context, id int64) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.topics[id]
	if !ok {
		return nil, apperrors.ErrTopicNotFound
	}
	return &t, nil
}

// GetTopicByName finds a topic by name, ignoring case
func (s *MemStorage) GetTopicByName(ctx context.Context, name string) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.topics {
		if strings.EqualFold(t.Name, name) {
			return &t, nil
		}
	}
	return nil, apperrors.ErrTopicNotFound
}

// GetTopics lists all topics by name
func (s *MemStorage) GetTopics(ctx context.Context) ([]*models.Topic, error) {
	s.mu.RLock()
	topics := values(s.topics)
	s.mu.RUnlock()

	slices.SortFunc(topics, func(a, b models.Topic) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return pointers(topics), nil
}

// SearchTopics returns up to limit topics whose name contains query, in id order.
// query must already be lower-cased.
func (s *MemStorage) SearchTopics(ctx context.Context, query string, limit int) ([]*models.Topic, error) {
	s.mu.RLock()
	topics := values(s.topics)
	s.mu.RUnlock()

	slices.SortFunc(topics, func(a, b models.Topic) int { return cmpID(a.ID, b.ID) })
	out := make([]*models.Topic, 0, limit)
	for i := range topics {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(topics[i].Name), query) {
			t := topics[i]
			out = append(out, &t)
		}
	}
	return out, nil
}
