package repositories

import (
	"context"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

// UserRepository stores users. Uniqueness of username and email is not enforced here.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error)
}

// PostRepository stores posts and the entities hanging off them
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	GetPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Post, error)
	GetPostsByTopic(ctx context.Context, topicID int64, limit, offset int) ([]*models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*models.Post, error)

	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error)

	CreatePostTopic(ctx context.Context, postTopic *models.PostTopic) (*models.PostTopic, error)
	GetTopicsByPost(ctx context.Context, postID int64) ([]*models.Topic, error)

	CreateResource(ctx context.Context, resource *models.Resource) (*models.Resource, error)
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	GetResourcesByPost(ctx context.Context, postID int64) ([]*models.Resource, error)

	CreateLike(ctx context.Context, like *models.Like) (*models.Like, error)
	GetLikesByPost(ctx context.Context, postID int64) ([]*models.Like, error)
	GetLikeByUserAndPost(ctx context.Context, userID, postID int64) (*models.Like, error)
	DeleteLike(ctx context.Context, id int64) error

	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	GetBookmarksByUser(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	GetBookmarkByUserAndPost(ctx context.Context, userID, postID int64) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error
}

// TopicRepository stores the topic taxonomy
type TopicRepository interface {
	CreateTopic(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	GetTopic(ctx context.Context, id int64) (*models.Topic, error)
	GetTopicByName(ctx context.Context, name string) (*models.Topic, error)
	GetTopics(ctx context.Context) ([]*models.Topic, error)
	SearchTopics(ctx context.Context, query string, limit int) ([]*models.Topic, error)
}

// EventRepository stores calendar events
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	GetEvents(ctx context.Context, limit, offset int) ([]*models.Event, error)
}

// ConnectionRepository stores connection requests
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, connection *models.Connection) (*models.Connection, error)
	GetConnection(ctx context.Context, id int64) (*models.Connection, error)
	GetConnectionsByUser(ctx context.Context, userID int64) ([]*models.Connection, error)
	UpdateConnection(ctx context.Context, id int64, status models.ConnectionStatus) (*models.Connection, error)
}

// NotificationRepository stores notifications
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	GetNotification(ctx context.Context, id int64) (*models.Notification, error)
	GetNotificationsByUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id int64) (*models.Notification, error)
}

// LearningPathRepository stores learning paths, their steps and user progress
type LearningPathRepository interface {
	CreateLearningPath(ctx context.Context, path *models.LearningPath) (*models.LearningPath, error)
	GetLearningPath(ctx context.Context, id int64) (*models.LearningPath, error)
	GetLearningPaths(ctx context.Context, limit, offset int) ([]*models.LearningPath, error)

	CreateLearningPathStep(ctx context.Context, step *models.LearningPathStep) (*models.LearningPathStep, error)
	GetLearningPathStep(ctx context.Context, id int64) (*models.LearningPathStep, error)
	GetLearningPathSteps(ctx context.Context, pathID int64) ([]*models.LearningPathStep, error)

	CreateLearningProgress(ctx context.Context, progress *models.UserLearningProgress) (*models.UserLearningProgress, error)
	GetUserLearningProgress(ctx context.Context, userID, pathID int64) ([]*models.UserLearningProgress, error)
	UpdateLearningProgress(ctx context.Context, id int64, completed bool, notes *string) (*models.UserLearningProgress, error)
}

// Storage is the full repository surface
type Storage interface {
	UserRepository
	PostRepository
	TopicRepository
	EventRepository
	ConnectionRepository
	NotificationRepository
	LearningPathRepository
}

var _ Storage = (*MemStorage)(nil)
