package dto

import "github.com/znurfzh/ethic-sub000/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request.
// UserType defaults to student when omitted.
type RegisterRequest struct {
	Username       string          `json:"username" binding:"required,username"`
	Password       string          `json:"password" binding:"required,min=6,max=128"`
	DisplayName    string          `json:"displayName" binding:"required,min=1,max=100"`
	Email          string          `json:"email" binding:"required,email"`
	UserType       models.UserType `json:"userType" binding:"omitempty,usertype"`
	AvatarURL      *string         `json:"avatarUrl" binding:"omitempty,url"`
	Bio            *string         `json:"bio" binding:"omitempty,max=1000"`
	JobTitle       *string         `json:"jobTitle" binding:"omitempty,max=100"`
	Organization   *string         `json:"organization" binding:"omitempty,max=100"`
	GraduationYear *int            `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
}

// ToModel converts the request into a user; the password is set by the caller
func (r RegisterRequest) ToModel() *models.User {
	userType := r.UserType
	if userType == "" {
		userType = models.UserTypeStudent
	}
	return &models.User{
		Username:       r.Username,
		DisplayName:    r.DisplayName,
		Email:          r.Email,
		UserType:       userType,
		AvatarURL:      r.AvatarURL,
		Bio:            r.Bio,
		JobTitle:       r.JobTitle,
		Organization:   r.Organization,
		GraduationYear: r.GraduationYear,
	}
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserProfile  `json:"user"`
}
