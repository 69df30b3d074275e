package dto

import "github.com/znurfzh/ethic-sub000/internal/app/models"

// CreateResourceRequest describes a resource attached to a new post
type CreateResourceRequest struct {
	Title           string  `json:"title" binding:"required,min=1,max=200"`
	Type            string  `json:"type" binding:"required"`
	ResourceType    *string `json:"resourceType"`
	URL             *string `json:"url" binding:"omitempty,url"`
	Description     *string `json:"description"`
	DifficultyLevel *string `json:"difficultyLevel"`
	EstimatedTime   *string `json:"estimatedTime"`
	TargetAudience  *string `json:"targetAudience"`
}

// ToModel converts the request into a resource for the given post
func (r CreateResourceRequest) ToModel(postID int64) *models.Resource {
	return &models.Resource{
		PostID:          postID,
		Title:           r.Title,
		Type:            r.Type,
		ResourceType:    r.ResourceType,
		URL:             r.URL,
		Description:     r.Description,
		DifficultyLevel: r.DifficultyLevel,
		EstimatedTime:   r.EstimatedTime,
		TargetAudience:  r.TargetAudience,
	}
}

// CreatePostRequest represents post creation data.
// Topics holds topic ids to associate with the post.
type CreatePostRequest struct {
	Title     string                  `json:"title" binding:"required,min=1,max=200"`
	Content   string                  `json:"content" binding:"required"`
	PostType  models.PostType         `json:"postType" binding:"required,posttype"`
	ImageURL  *string                 `json:"imageUrl" binding:"omitempty,url"`
	Topics    []int64                 `json:"topics" binding:"omitempty,dive,gt=0"`
	Resources []CreateResourceRequest `json:"resources" binding:"omitempty,dive"`
}

// PostFilter narrows a post listing
type PostFilter struct {
	TopicID  *int64
	AuthorID *int64
}

// CreateCommentRequest represents comment creation data
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse is a comment with its author embedded.
// Author is null when the author no longer exists.
type CommentResponse struct {
	models.Comment
	Author *UserSummary `json:"author"`
}

// BookmarkResponse is a bookmark with its post embedded
type BookmarkResponse struct {
	models.Bookmark
	Post *models.Post `json:"post"`
}

// CreateTopicRequest represents topic creation data
type CreateTopicRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color" binding:"required,max=30"`
}

// SearchResponse groups search hits per category
type SearchResponse struct {
	Posts  []*models.Post  `json:"posts"`
	Users  []*UserProfile  `json:"users"`
	Topics []*models.Topic `json:"topics"`
}
