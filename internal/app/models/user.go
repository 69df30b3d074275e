package models

import (
	"time"
)

// User is a registered community member.
// Password is stored exactly as given unless hashing is enabled in configuration.
type User struct {
	ID             int64     `json:"id" example:"1"`
	Username       string    `json:"username" example:"alice"`
	Password       string    `json:"-"`
	DisplayName    string    `json:"displayName" example:"Alice Smith"`
	Email          string    `json:"email" example:"alice@ethic.edu"`
	UserType       UserType  `json:"userType" example:"student"`
	AvatarURL      *string   `json:"avatarUrl"`
	Bio            *string   `json:"bio"`
	JobTitle       *string   `json:"jobTitle"`
	Organization   *string   `json:"organization"`
	GraduationYear *int      `json:"graduationYear"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	DisplayName    *string
	Email          *string
	UserType       *UserType
	AvatarURL      *string
	Bio            *string
	JobTitle       *string
	Organization   *string
	GraduationYear *int
}

// Apply merges the non-nil fields of upd into u
func (u *User) Apply(upd UserUpdate) {
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.UserType != nil {
		u.UserType = *upd.UserType
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = upd.AvatarURL
	}
	if upd.Bio != nil {
		u.Bio = upd.Bio
	}
	if upd.JobTitle != nil {
		u.JobTitle = upd.JobTitle
	}
	if upd.Organization != nil {
		u.Organization = upd.Organization
	}
	if upd.GraduationYear != nil {
		u.GraduationYear = upd.GraduationYear
	}
}

// IsProfessional reports whether the user is an industry professional
func (u *User) IsProfessional() bool {
	return u.UserType == UserTypeProfessional
}
