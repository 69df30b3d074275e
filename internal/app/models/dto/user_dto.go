package dto

import (
	"time"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

// UserProfile is a user without credentials
type UserProfile struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	DisplayName    string          `json:"displayName"`
	Email          string          `json:"email"`
	UserType       models.UserType `json:"userType"`
	AvatarURL      *string         `json:"avatarUrl"`
	Bio            *string         `json:"bio"`
	JobTitle       *string         `json:"jobTitle"`
	Organization   *string         `json:"organization"`
	GraduationYear *int            `json:"graduationYear"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewUserProfile strips the password from a user. A nil user yields nil.
func NewUserProfile(u *models.User) *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		UserType:       u.UserType,
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		JobTitle:       u.JobTitle,
		Organization:   u.Organization,
		GraduationYear: u.GraduationYear,
		CreatedAt:      u.CreatedAt,
	}
}

// NewUserProfiles converts a slice of users, never returning nil
func NewUserProfiles(users []*models.User) []*UserProfile {
	out := make([]*UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserProfile(u))
	}
	return out
}

// UserSummary is the compact author shape embedded in comments
type UserSummary struct {
	ID          int64           `json:"id"`
	DisplayName string          `json:"displayName"`
	UserType    models.UserType `json:"userType"`
	AvatarURL   *string         `json:"avatarUrl"`
}

// NewUserSummary builds a summary; a nil user yields nil
func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		UserType:    u.UserType,
		AvatarURL:   u.AvatarURL,
	}
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	DisplayName    *string          `json:"displayName" binding:"omitempty,min=1,max=100"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	UserType       *models.UserType `json:"userType" binding:"omitempty,usertype"`
	AvatarURL      *string          `json:"avatarUrl" binding:"omitempty,url"`
	Bio            *string          `json:"bio" binding:"omitempty,max=1000"`
	JobTitle       *string          `json:"jobTitle" binding:"omitempty,max=100"`
	Organization   *string          `json:"organization" binding:"omitempty,max=100"`
	GraduationYear *int             `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
}

// ToModel converts the request into a repository update
func (r UpdateUserRequest) ToModel() models.UserUpdate {
	return models.UserUpdate{
		DisplayName:    r.DisplayName,
		Email:          r.Email,
		UserType:       r.UserType,
		AvatarURL:      r.AvatarURL,
		Bio:            r.Bio,
		JobTitle:       r.JobTitle,
		Organization:   r.Organization,
		GraduationYear: r.GraduationYear,
	}
}
