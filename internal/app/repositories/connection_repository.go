package repositories

import (
	"context"
	"slices"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// CreateConnection stores a new connection request in the pending state
func (s *MemStorage) CreateConnection(ctx context.Context, connection *models.Connection) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *connection
	c.ID = s.nextID(seqConnections)
	c.Status = models.ConnectionStatusPending
	c.CreatedAt = s.now()
	s.connections[c.ID] = c
	return &c, nil
}

// GetConnection retrieves a connection by ID
func (s *MemStorage) GetConnection(ctx context.Context, id int64) (*models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.connections[id]
	if !ok {
		return nil, apperrors.ErrConnectionNotFound
	}
	return &c, nil
}

// GetConnectionsByUser lists connections where the user is requester or receiver
func (s *MemStorage) GetConnectionsByUser(ctx context.Context, userID int64) ([]*models.Connection, error) {
	s.mu.RLock()
	connections := make([]models.Connection, 0)
	for _, c := range s.connections {
		if c.RequesterID == userID || c.ReceiverID == userID {
			connections = append(connections, c)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(connections, func(a, b models.Connection) int { return cmpID(a.ID, b.ID) })
	return pointers(connections), nil
}

// UpdateConnection sets the status of a connection
func (s *MemStorage) UpdateConnection(ctx context.Context, id int64, status models.ConnectionStatus) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.connections[id]
	if !ok {
		return nil, apperrors.ErrConnectionNotFound
	}
	c.Status = status
	s.connections[id] = c
	return &c, nil
}
