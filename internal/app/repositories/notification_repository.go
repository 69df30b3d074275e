package repositories

import (
	"context"
	"slices"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// CreateNotification stores an unread notification
func (s *MemStorage) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := *notification
	n.ID = s.nextID(seqNotifications)
	n.Read = false
	n.CreatedAt = s.now()
	s.notifications[n.ID] = n
	return &n, nil
}

// GetNotification retrieves a notification by ID
func (s *MemStorage) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return &n, nil
}

// GetNotificationsByUser lists a user's notifications newest first
func (s *MemStorage) GetNotificationsByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	s.mu.RLock()
	notifications := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(notifications, func(a, b models.Notification) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return pointers(notifications), nil
}

// MarkNotificationAsRead flags a notification as read
func (s *MemStorage) MarkNotificationAsRead(ctx context.Context, id int64) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return &n, nil
}
