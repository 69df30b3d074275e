package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// CreateUser stores a new user and stamps id and createdAt
func (s *MemStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	u.ID = s.nextID(seqUsers)
	u.CreatedAt = s.now()
	s.users[u.ID] = u
	return &u, nil
}

// GetUser retrieves a user by ID
func (s *MemStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by exact username
func (s *MemStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.Username == username })
}

// GetUserByEmail retrieves a user by exact email
func (s *MemStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.Email == email })
}

func (s *MemStorage) findUser(match func(*models.User) bool) (*models.User, error) {
	for _, u := range s.sortedUsers() {
		if match(u) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetUsers returns every user ordered by id. The result is never nil.
func (s *MemStorage) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.sortedUsers(), nil
}

// UpdateUser merges the non-nil fields of update into the stored user
func (s *MemStorage) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Apply(update)
	s.users[id] = u
	return &u, nil
}

// SearchUsers returns up to limit users whose display name or username contains query.
// query must already be lower-cased.
func (s *MemStorage) SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error) {
	out := make([]*models.User, 0, limit)
	for _, u := range s.sortedUsers() {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(u.DisplayName), query) ||
			strings.Contains(strings.ToLower(u.Username), query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemStorage) sortedUsers() []*models.User {
	s.mu.RLock()
	users := values(s.users)
	s.mu.RUnlock()

	slices.SortFunc(users, func(a, b models.User) int { return cmpID(a.ID, b.ID) })
	return pointers(users)
}
