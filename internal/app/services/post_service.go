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
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// PostService defines the interface for posts and their comments, likes and bookmarks
type PostService interface {
	ListPosts(ctx context.Context, filter dto.PostFilter, limit, offset int) ([]*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest) (*models.Post, error)
	GetPostTopics(ctx context.Context, postID int64) ([]*models.Topic, error)
	GetPostResources(ctx context.Context, postID int64) ([]*models.Resource, error)

	ListComments(ctx context.Context, postID int64) ([]*dto.CommentResponse, error)
	CreateComment(ctx context.Context, userID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)

	ListLikes(ctx context.Context, postID int64) ([]*models.Like, error)
	LikePost(ctx context.Context, userID, postID int64) (*models.Like, error)
	UnlikePost(ctx context.Context, userID, postID int64) error

	BookmarkPost(ctx context.Context, userID, postID int64) (*models.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, postID int64) error
	ListBookmarks(ctx context.Context, userID int64) ([]*dto.BookmarkResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo            repositories.PostRepository
	topicRepo           repositories.TopicRepository
	userRepo            repositories.UserRepository
	authzService        *auth.AuthorizationService
	notificationService NotificationService
	logger              zerolog.Logger

	// serializes the duplicate check and insert for likes and bookmarks
	likeMu     sync.Mutex
	bookmarkMu sync.Mutex
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	topicRepo repositories.TopicRepository,
	userRepo repositories.UserRepository,
	authzService *auth.AuthorizationService,
	notificationService NotificationService,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:            postRepo,
		topicRepo:           topicRepo,
		userRepo:            userRepo,
		authzService:        authzService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListPosts lists posts newest first, optionally narrowed to a topic and/or author
func (s *postServiceImpl) ListPosts(ctx context.Context, filter dto.PostFilter, limit, offset int) ([]*models.Post, error) {
	switch {
	case filter.TopicID != nil && filter.AuthorID != nil:
		posts, err := s.postRepo.GetPostsByTopic(ctx, *filter.TopicID, math.MaxInt, 0)
		if err != nil {
			return nil, err
		}
		byAuthor := make([]*models.Post, 0, len(posts))
		for _, p := range posts {
			if p.AuthorID == *filter.AuthorID {
				byAuthor = append(byAuthor, p)
			}
		}
		return helpers.Page(byAuthor, limit, offset), nil
	case filter.TopicID != nil:
		return s.postRepo.GetPostsByTopic(ctx, *filter.TopicID, limit, offset)
	case filter.AuthorID != nil:
		return s.postRepo.GetPostsByAuthor(ctx, *filter.AuthorID, limit, offset)
	default:
		return s.postRepo.GetPosts(ctx, limit, offset)
	}
}

// GetPost retrieves a post by ID
func (s *postServiceImpl) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.postRepo.GetPost(ctx, id)
}

// CreatePost creates a post, links its topics and attaches its resources
func (s *postServiceImpl) CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest) (*models.Post, error) {
	if _, err := s.authzService.ValidateContentCreator(ctx, userID, auth.ContentPosts); err != nil {
		return nil, err
	}

	for _, topicID := range req.Topics {
		if _, err := s.topicRepo.GetTopic(ctx, topicID); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown topic %d", topicID))
			}
			return nil, err
		}
	}

	post, err := s.postRepo.CreatePost(ctx, &models.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		PostType: req.PostType,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("post creation error: %w", err)
	}

	for _, topicID := range req.Topics {
		if _, err := s.postRepo.CreatePostTopic(ctx, &models.PostTopic{PostID: post.ID, TopicID: topicID}); err != nil {
			return nil, fmt.Errorf("post topic creation error: %w", err)
		}
	}

	for _, r := range req.Resources {
		if _, err := s.postRepo.CreateResource(ctx, r.ToModel(post.ID)); err != nil {
			return nil, fmt.Errorf("resource creation error: %w", err)
		}
	}

	s.logger.Info().
		Int64("postID", post.ID).
		Int64("authorID", userID).
		Int("topics", len(req.Topics)).
		Int("resources", len(req.Resources)).
		Msg("Post created")
	return post, nil
}

// GetPostTopics lists the topics of a post
func (s *postServiceImpl) GetPostTopics(ctx context.Context, postID int64) ([]*models.Topic, error) {
	if _, err := s.postRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetTopicsByPost(ctx, postID)
}

// GetPostResources lists the resources attached to a post
func (s *postServiceImpl) GetPostResources(ctx context.Context, postID int64) ([]*models.Resource, error) {
	if _, err := s.postRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetResourcesByPost(ctx, postID)
}

// ListComments lists a post's comments with each author embedded
func (s *postServiceImpl) ListComments(ctx context.Context, postID int64) ([]*dto.CommentResponse, error) {
	comments, err := s.postRepo.GetCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		author, err := s.lookupUser(ctx, c.AuthorID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.CommentResponse{Comment: *c, Author: dto.NewUserSummary(author)})
	}
	return out, nil
}

// CreateComment adds a comment and notifies the post author
func (s *postServiceImpl) CreateComment(ctx context.Context, userID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	user, err := s.authzService.ValidateContentCreator(ctx, userID, auth.ContentComments)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.postRepo.CreateComment(ctx, &models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  req.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("comment creation error: %w", err)
	}

	if _, err := s.notificationService.Notify(ctx, NotificationRequest{
		RecipientID: post.AuthorID,
		ActorID:     userID,
		Type:        models.NotificationTypeComment,
		Content:     fmt.Sprintf("%s commented on your post %q", user.DisplayName, post.Title),
		SourceID:    &comment.ID,
		SourceType:  models.SourceTypeComment,
	}); err != nil {
		return nil, err
	}

	return &dto.CommentResponse{Comment: *comment, Author: dto.NewUserSummary(user)}, nil
}

// ListLikes lists the likes on a post
func (s *postServiceImpl) ListLikes(ctx context.Context, postID int64) ([]*models.Like, error) {
	return s.postRepo.GetLikesByPost(ctx, postID)
}

// LikePost records a like and notifies the post author. A second like by the same user is rejected.
func (s *postServiceImpl) LikePost(ctx context.Context, userID, postID int64) (*models.Like, error) {
	user, err := s.authzService.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.likeMu.Lock()
	_, err = s.postRepo.GetLikeByUserAndPost(ctx, userID, postID)
	if err == nil {
		s.likeMu.Unlock()
		return nil, apperrors.NewConflictError("You have already liked this post")
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		s.likeMu.Unlock()
		return nil, err
	}
	like, err := s.postRepo.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID})
	s.likeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("like creation error: %w", err)
	}

	if _, err := s.notificationService.Notify(ctx, NotificationRequest{
		RecipientID: post.AuthorID,
		ActorID:     userID,
		Type:        models.NotificationTypeLike,
		Content:     fmt.Sprintf("%s liked your post %q", user.DisplayName, post.Title),
		SourceID:    &post.ID,
		SourceType:  models.SourceTypePost,
	}); err != nil {
		return nil, err
	}

	return like, nil
}

// UnlikePost removes the caller's like from a post
func (s *postServiceImpl) UnlikePost(ctx context.Context, userID, postID int64) error {
	s.likeMu.Lock()
	defer s.likeMu.Unlock()

	like, err := s.postRepo.GetLikeByUserAndPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	return s.postRepo.DeleteLike(ctx, like.ID)
}

// BookmarkPost saves a post for the caller. A second bookmark of the same post is rejected.
func (s *postServiceImpl) BookmarkPost(ctx context.Context, userID, postID int64) (*models.Bookmark, error) {
	if _, err := s.postRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	s.bookmarkMu.Lock()
	defer s.bookmarkMu.Unlock()

	_, err := s.postRepo.GetBookmarkByUserAndPost(ctx, userID, postID)
	if err == nil {
		return nil, apperrors.NewConflictError("You have already bookmarked this post")
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	return s.postRepo.CreateBookmark(ctx, &models.Bookmark{PostID: postID, UserID: userID})
}

// RemoveBookmark removes the caller's bookmark of a post
func (s *postServiceImpl) RemoveBookmark(ctx context.Context, userID, postID int64) error {
	s.bookmarkMu.Lock()
	defer s.bookmarkMu.Unlock()

	bookmark, err := s.postRepo.GetBookmarkByUserAndPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	return s.postRepo.DeleteBookmark(ctx, bookmark.ID)
}

// ListBookmarks lists the caller's bookmarks with each post embedded
func (s *postServiceImpl) ListBookmarks(ctx context.Context, userID int64) ([]*dto.BookmarkResponse, error) {
	bookmarks, err := s.postRepo.GetBookmarksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		post, err := s.postRepo.GetPost(ctx, b.PostID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		out = append(out, &dto.BookmarkResponse{Bookmark: *b, Post: post})
	}
	return out, nil
}

// lookupUser returns nil without error when the user does not exist
func (s *postServiceImpl) lookupUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
