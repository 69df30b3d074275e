package models

import "time"

// Post is an article, question or discussion written by a user
type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	PostType  PostType  `json:"postType"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a reply to a post
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Topic is a taxonomy entry posts can be tagged with
type Topic struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PostTopic joins posts and topics. Duplicate pairs are not rejected.
type PostTopic struct {
	ID      int64 `json:"id"`
	PostID  int64 `json:"postId"`
	TopicID int64 `json:"topicId"`
}

// Resource is learning material attached to a post
type Resource struct {
	ID              int64   `json:"id"`
	PostID          int64   `json:"postId"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	ResourceType    *string `json:"resourceType"`
	URL             *string `json:"url"`
	Description     *string `json:"description"`
	DifficultyLevel *string `json:"difficultyLevel"`
	EstimatedTime   *string `json:"estimatedTime"`
	TargetAudience  *string `json:"targetAudience"`
}

// Like marks that a user liked a post
type Like struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
	UserID int64 `json:"userId"`
}

// Bookmark marks that a user saved a post
type Bookmark struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
	UserID int64 `json:"userId"`
}
