package dto

import "github.com/znurfzh/ethic-sub000/internal/app/models"

// CreateStepRequest describes one learning path step.
// At most one of ResourceID, PostID and ExternalURL may be set.
type CreateStepRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	ResourceID  *int64  `json:"resourceId" binding:"omitempty,gt=0"`
	PostID      *int64  `json:"postId" binding:"omitempty,gt=0"`
	ExternalURL *string `json:"externalUrl" binding:"omitempty,url"`
}

// CreateLearningPathRequest represents learning path creation data
type CreateLearningPathRequest struct {
	Title                   string              `json:"title" binding:"required,min=1,max=200"`
	Description             string              `json:"description" binding:"required"`
	Difficulty              string              `json:"difficulty" binding:"required,max=50"`
	EstimatedTimeToComplete *string             `json:"estimatedTimeToComplete"`
	ImageURL                *string             `json:"imageUrl" binding:"omitempty,url"`
	Steps                   []CreateStepRequest `json:"steps" binding:"omitempty,dive"`
}

// StepDetail is a step with its linked resource or post resolved
type StepDetail struct {
	ID             int64                  `json:"id"`
	LearningPathID int64                  `json:"learningPathId"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Order          int                    `json:"order"`
	ContentType    models.StepContentKind `json:"contentType"`
	ResourceID     *int64                 `json:"resourceId"`
	PostID         *int64                 `json:"postId"`
	ExternalURL    *string                `json:"externalUrl"`
	Resource       *models.Resource       `json:"resource"`
	Post           *models.Post           `json:"post"`
}

// NewStepDetail flattens a step and attaches the resolved resource and post
func NewStepDetail(step *models.LearningPathStep, resource *models.Resource, post *models.Post) StepDetail {
	d := StepDetail{
		ID:             step.ID,
		LearningPathID: step.LearningPathID,
		Title:          step.Title,
		Description:    step.Description,
		Order:          step.Order,
		ContentType:    step.Content.Kind(),
		Resource:       resource,
		Post:           post,
	}
	if id, ok := step.Content.ResourceID(); ok {
		d.ResourceID = &id
	}
	if id, ok := step.Content.PostID(); ok {
		d.PostID = &id
	}
	if url, ok := step.Content.ExternalURL(); ok {
		d.ExternalURL = &url
	}
	return d
}

// LearningPathDetailResponse is a learning path with its creator and steps
type LearningPathDetailResponse struct {
	models.LearningPath
	Creator *UserProfile `json:"creator"`
	Steps   []StepDetail `json:"steps"`
}

// UpdateProgressRequest marks a step complete or incomplete.
// Completed defaults to false when omitted.
type UpdateProgressRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// ProgressStats summarizes completion of a learning path
type ProgressStats struct {
	CompletedSteps  int `json:"completedSteps"`
	TotalSteps      int `json:"totalSteps"`
	PercentComplete int `json:"percentComplete"`
}

// LearningProgressResponse is a user's progress through one learning path
type LearningProgressResponse struct {
	LearningPath *models.LearningPath           `json:"learningPath"`
	Progress     []*models.UserLearningProgress `json:"progress"`
	Stats        ProgressStats                  `json:"stats"`
}
