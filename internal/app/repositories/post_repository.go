package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// CreatePost stores a new post and stamps id and createdAt
func (s *MemStorage) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *post
	p.ID = s.nextID(seqPosts)
	p.CreatedAt = s.now()
	s.posts[p.ID] = p
	return &p, nil
}

// GetPost retrieves a post by ID
func (s *MemStorage) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return &p, nil
}

// GetPosts lists posts newest first
func (s *MemStorage) GetPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listPosts(func(*models.Post) bool { return true }, limit, offset), nil
}

// GetPostsByAuthor lists an author's posts newest first
func (s *MemStorage) GetPostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Post, error) {
	return s.listPosts(func(p *models.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

// GetPostsByTopic lists the posts tagged with a topic newest first, using the topic index
func (s *MemStorage) GetPostsByTopic(ctx context.Context, topicID int64, limit, offset int) ([]*models.Post, error) {
	s.mu.RLock()
	posts := make([]models.Post, 0, len(s.postsByTopic[topicID]))
	for postID := range s.postsByTopic[topicID] {
		if p, ok := s.posts[postID]; ok {
			posts = append(posts, p)
		}
	}
	s.mu.RUnlock()

	sortNewestPosts(posts)
	return pointers(helpers.Page(posts, limit, offset)), nil
}

// SearchPosts returns up to limit posts whose title or content contains query, in id order.
// query must already be lower-cased.
func (s *MemStorage) SearchPosts(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	s.mu.RLock()
	posts := values(s.posts)
	s.mu.RUnlock()

	slices.SortFunc(posts, func(a, b models.Post) int { return cmpID(a.ID, b.ID) })
	out := make([]*models.Post, 0, limit)
	for i := range posts {
		if len(out) == limit {
			break
		}
		p := posts[i]
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Content), query) {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (s *MemStorage) listPosts(match func(*models.Post) bool, limit, offset int) []*models.Post {
	s.mu.RLock()
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if match(&p) {
			posts = append(posts, p)
		}
	}
	s.mu.RUnlock()

	sortNewestPosts(posts)
	return pointers(helpers.Page(posts, limit, offset))
}

func sortNewestPosts(posts []models.Post) {
	slices.SortFunc(posts, func(a, b models.Post) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// CreateComment stores a new comment and stamps id and createdAt
func (s *MemStorage) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *comment
	c.ID = s.nextID(seqComments)
	c.CreatedAt = s.now()
	s.comments[c.ID] = c
	return &c, nil
}

// GetComment retrieves a comment by ID
func (s *MemStorage) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return &c, nil
}

// GetCommentsByPost lists a post's comments oldest first
func (s *MemStorage) GetCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	s.mu.RLock()
	comments := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(comments, func(a, b models.Comment) int {
		return oldestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return pointers(comments), nil
}

// CreatePostTopic links a post to a topic. Duplicate links are stored as given.
func (s *MemStorage) CreatePostTopic(ctx context.Context, postTopic *models.PostTopic) (*models.PostTopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := *postTopic
	pt.ID = s.nextID(seqPostTopics)
	s.postTopics[pt.ID] = pt

	set, ok := s.postsByTopic[pt.TopicID]
	if !ok {
		set = make(map[int64]struct{})
		s.postsByTopic[pt.TopicID] = set
	}
	set[pt.PostID] = struct{}{}
	return &pt, nil
}

// GetTopicsByPost returns the distinct topics linked to a post, in link order
func (s *MemStorage) GetTopicsByPost(ctx context.Context, postID int64) ([]*models.Topic, error) {
	s.mu.RLock()
	links := make([]models.PostTopic, 0)
	for _, pt := range s.postTopics {
		if pt.PostID == postID {
			links = append(links, pt)
		}
	}
	slices.SortFunc(links, func(a, b models.PostTopic) int { return cmpID(a.ID, b.ID) })

	// duplicate links collapse to one topic
	seen := make(map[int64]bool, len(links))
	topics := make([]models.Topic, 0, len(links))
	for _, pt := range links {
		t, ok := s.topics[pt.TopicID]
		if !ok || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		topics = append(topics, t)
	}
	s.mu.RUnlock()

	return pointers(topics), nil
}

// CreateResource stores a resource attached to a post
func (s *MemStorage) CreateResource(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *resource
	r.ID = s.nextID(seqResources)
	s.resources[r.ID] = r
	return &r, nil
}

// GetResource retrieves a resource by ID
func (s *MemStorage) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return nil, apperrors.ErrPostResourceNotFound
	}
	return &r, nil
}

// GetResourcesByPost lists a post's resources in creation order
func (s *MemStorage) GetResourcesByPost(ctx context.Context, postID int64) ([]*models.Resource, error) {
	s.mu.RLock()
	resources := make([]models.Resource, 0)
	for _, r := range s.resources {
		if r.PostID == postID {
			resources = append(resources, r)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(resources, func(a, b models.Resource) int { return cmpID(a.ID, b.ID) })
	return pointers(resources), nil
}
