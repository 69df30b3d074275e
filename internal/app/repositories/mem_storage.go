package repositories

import (
	"sync"
	"time"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

// entity kinds with their own id sequence
const (
	seqUsers = iota
	seqPosts
	seqComments
	seqTopics
	seqPostTopics
	seqResources
	seqLikes
	seqBookmarks
	seqEvents
	seqConnections
	seqNotifications
	seqLearningPaths
	seqLearningPathSteps
	seqLearningProgress
	seqCount
)

// MemStorage keeps every entity in process memory.
// A single RWMutex guards all maps; returned entities are copies.
type MemStorage struct {
	mu  sync.RWMutex
	now func() time.Time
	seq [seqCount]int64

	users            map[int64]models.User
	posts            map[int64]models.Post
	comments         map[int64]models.Comment
	topics           map[int64]models.Topic
	postTopics       map[int64]models.PostTopic
	resources        map[int64]models.Resource
	likes            map[int64]models.Like
	bookmarks        map[int64]models.Bookmark
	events           map[int64]models.Event
	connections      map[int64]models.Connection
	notifications    map[int64]models.Notification
	learningPaths    map[int64]models.LearningPath
	learningSteps    map[int64]models.LearningPathStep
	learningProgress map[int64]models.UserLearningProgress

	// topicID -> set of postIDs, maintained on CreatePostTopic
	postsByTopic map[int64]map[int64]struct{}
}

// Option configures a MemStorage
type Option func(*MemStorage)

// WithClock overrides the time source used for createdAt and completedAt
func WithClock(now func() time.Time) Option {
	return func(s *MemStorage) {
		s.now = now
	}
}

// NewMemStorage creates an empty store
func NewMemStorage(opts ...Option) *MemStorage {
	s := &MemStorage{
		now:              time.Now,
		users:            make(map[int64]models.User),
		posts:            make(map[int64]models.Post),
		comments:         make(map[int64]models.Comment),
		topics:           make(map[int64]models.Topic),
		postTopics:       make(map[int64]models.PostTopic),
		resources:        make(map[int64]models.Resource),
		likes:            make(map[int64]models.Like),
		bookmarks:        make(map[int64]models.Bookmark),
		events:           make(map[int64]models.Event),
		connections:      make(map[int64]models.Connection),
		notifications:    make(map[int64]models.Notification),
		learningPaths:    make(map[int64]models.LearningPath),
		learningSteps:    make(map[int64]models.LearningPathStep),
		learningProgress: make(map[int64]models.UserLearningProgress),
		postsByTopic:     make(map[int64]map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nextID must be called with mu held for writing
func (s *MemStorage) nextID(kind int) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

// values copies the map values into a slice; mu must be held
func values[T any](m map[int64]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// pointers returns pointers to copies of items
func pointers[T any](items []T) []*T {
	out := make([]*T, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out
}

// newestFirst orders by createdAt descending, newer ids first on ties
func newestFirst(aTime, bTime time.Time, aID, bID int64) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}
	return cmpID(bID, aID)
}

// oldestFirst orders by createdAt ascending, older ids first on ties
func oldestFirst(aTime, bTime time.Time, aID, bID int64) int {
	if c := aTime.Compare(bTime); c != 0 {
		return c
	}
	return cmpID(aID, bID)
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
