package models

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrMultipleStepContent is returned when a step is given more than one content source
var ErrMultipleStepContent = errors.New("a learning path step can link at most one of resourceId, postId or externalUrl")

// LearningPath is a curated, ordered sequence of steps
type LearningPath struct {
	ID                      int64     `json:"id"`
	Title                   string    `json:"title"`
	Description             string    `json:"description"`
	CreatedBy               int64     `json:"createdBy"`
	Difficulty              string    `json:"difficulty"`
	EstimatedTimeToComplete *string   `json:"estimatedTimeToComplete"`
	CreatedAt               time.Time `json:"createdAt"`
	ImageURL                *string   `json:"imageUrl"`
}

// StepContentKind identifies what a learning path step links to
type StepContentKind string

const (
	StepContentNone     StepContentKind = "none"
	StepContentResource StepContentKind = "resource"
	StepContentPost     StepContentKind = "post"
	StepContentExternal StepContentKind = "external"
)

// StepContent is the single optional content source of a step.
// The zero value links nothing.
type StepContent struct {
	kind StepContentKind
	ref  int64
	url  string
}

// ResourceContent links a step to a resource
func ResourceContent(resourceID int64) StepContent {
	return StepContent{kind: StepContentResource, ref: resourceID}
}

// PostContent links a step to a post
func PostContent(postID int64) StepContent {
	return StepContent{kind: StepContentPost, ref: postID}
}

// ExternalContent links a step to an outside URL
func ExternalContent(url string) StepContent {
	return StepContent{kind: StepContentExternal, url: url}
}

// NewStepContent builds a StepContent from the flat optional fields used on the wire
func NewStepContent(resourceID, postID *int64, externalURL *string) (StepContent, error) {
	set := 0
	var c StepContent
	if resourceID != nil {
		set++
		c = ResourceContent(*resourceID)
	}
	if postID != nil {
		set++
		c = PostContent(*postID)
	}
	if externalURL != nil && *externalURL != "" {
		set++
		c = ExternalContent(*externalURL)
	}
	if set > 1 {
		return StepContent{}, ErrMultipleStepContent
	}
	return c, nil
}

// Kind returns the content kind
func (c StepContent) Kind() StepContentKind {
	if c.kind == "" {
		return StepContentNone
	}
	return c.kind
}

// ResourceID returns the linked resource id, if any
func (c StepContent) ResourceID() (int64, bool) {
	return c.ref, c.kind == StepContentResource
}

// PostID returns the linked post id, if any
func (c StepContent) PostID() (int64, bool) {
	return c.ref, c.kind == StepContentPost
}

// ExternalURL returns the linked URL, if any
func (c StepContent) ExternalURL() (string, bool) {
	return c.url, c.kind == StepContentExternal
}

// LearningPathStep is one entry in a learning path, ordered by Order
type LearningPathStep struct {
	ID             int64       `json:"id"`
	LearningPathID int64       `json:"learningPathId"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Order          int         `json:"order"`
	Content        StepContent `json:"-"`
}

type stepWire struct {
	ID             int64           `json:"id"`
	LearningPathID int64           `json:"learningPathId"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Order          int             `json:"order"`
	ContentType    StepContentKind `json:"contentType"`
	ResourceID     *int64          `json:"resourceId"`
	PostID         *int64          `json:"postId"`
	ExternalURL    *string         `json:"externalUrl"`
}

// MarshalJSON flattens Content into resourceId, postId and externalUrl
func (s LearningPathStep) MarshalJSON() ([]byte, error) {
	w := stepWire{
		ID:             s.ID,
		LearningPathID: s.LearningPathID,
		Title:          s.Title,
		Description:    s.Description,
		Order:          s.Order,
		ContentType:    s.Content.Kind(),
	}
	if id, ok := s.Content.ResourceID(); ok {
		w.ResourceID = &id
	}
	if id, ok := s.Content.PostID(); ok {
		w.PostID = &id
	}
	if url, ok := s.Content.ExternalURL(); ok {
		w.ExternalURL = &url
	}
	return json.Marshal(w)
}

// UnmarshalJSON is the inverse of MarshalJSON
func (s *LearningPathStep) UnmarshalJSON(data []byte) error {
	var w stepWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := NewStepContent(w.ResourceID, w.PostID, w.ExternalURL)
	if err != nil {
		return err
	}
	*s = LearningPathStep{
		ID:             w.ID,
		LearningPathID: w.LearningPathID,
		Title:          w.Title,
		Description:    w.Description,
		Order:          w.Order,
		Content:        content,
	}
	return nil
}

// UserLearningProgress tracks one user's completion of one step
type UserLearningProgress struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	LearningPathID int64      `json:"learningPathId"`
	StepID         int64      `json:"stepId"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt"`
	Notes          *string    `json:"notes"`
}
