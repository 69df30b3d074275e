package repositories

import (
	"context"
	"slices"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// CreateEvent stores a new event
func (s *MemStorage) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := *event
	e.ID = s.nextID(seqEvents)
	s.events[e.ID] = e
	return &e, nil
}

// GetEvent retrieves an event by ID
func (s *MemStorage) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return &e, nil
}

// GetEvents lists events by date, soonest first
func (s *MemStorage) GetEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	s.mu.RLock()
	events := values(s.events)
	s.mu.RUnlock()

	slices.SortFunc(events, func(a, b models.Event) int {
		return oldestFirst(a.EventDate, b.EventDate, a.ID, b.ID)
	})
	return pointers(helpers.Page(events, limit, offset)), nil
}
