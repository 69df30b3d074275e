package repositories

import (
	"context"
	"slices"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// CreateLike stores a like. Callers check for an existing (user, post) pair first.
func (s *MemStorage) CreateLike(ctx context.Context, like *models.Like) (*models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := *like
	l.ID = s.nextID(seqLikes)
	s.likes[l.ID] = l
	return &l, nil
}

// GetLikesByPost lists the likes on a post in creation order
func (s *MemStorage) GetLikesByPost(ctx context.Context, postID int64) ([]*models.Like, error) {
	s.mu.RLock()
	likes := make([]models.Like, 0)
	for _, l := range s.likes {
		if l.PostID == postID {
			likes = append(likes, l)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(likes, func(a, b models.Like) int { return cmpID(a.ID, b.ID) })
	return pointers(likes), nil
}

// GetLikeByUserAndPost finds the like a user left on a post
func (s *MemStorage) GetLikeByUserAndPost(ctx context.Context, userID, postID int64) (*models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			return &l, nil
		}
	}
	return nil, apperrors.ErrLikeNotFound
}

// DeleteLike removes a like; unknown ids are ignored
func (s *MemStorage) DeleteLike(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes, id)
	return nil
}

// CreateBookmark stores a bookmark. Callers check for an existing (user, post) pair first.
func (s *MemStorage) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := *bookmark
	b.ID = s.nextID(seqBookmarks)
	s.bookmarks[b.ID] = b
	return &b, nil
}

// GetBookmarksByUser lists a user's bookmarks, most recent first
func (s *MemStorage) GetBookmarksByUser(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	s.mu.RLock()
	bookmarks := make([]models.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID == userID {
			bookmarks = append(bookmarks, b)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(bookmarks, func(a, b models.Bookmark) int { return cmpID(b.ID, a.ID) })
	return pointers(bookmarks), nil
}

// GetBookmarkByUserAndPost finds the bookmark a user set on a post
func (s *MemStorage) GetBookmarkByUserAndPost(ctx context.Context, userID, postID int64) (*models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookmarks {
		if b.UserID == userID && b.PostID == postID {
			return &b, nil
		}
	}
	return nil, apperrors.ErrBookmarkNotFound
}

// DeleteBookmark removes a bookmark; unknown ids are ignored
func (s *MemStorage) DeleteBookmark(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bookmarks, id)
	return nil
}
