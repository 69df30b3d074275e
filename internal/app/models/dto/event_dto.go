package dto

import (
	"time"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

// DefaultEventColor is used when an event is created without a color
const DefaultEventColor = "#6366f1"

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required,min=1,max=200"`
	Description      string    `json:"description" binding:"required"`
	EventDate        time.Time `json:"eventDate" binding:"required"`
	Color            string    `json:"color" binding:"omitempty,max=30"`
	Location         *string   `json:"location"`
	ImageURL         *string   `json:"imageUrl" binding:"omitempty,url"`
	RegistrationLink *string   `json:"registrationLink" binding:"omitempty,url"`
}

// ToModel converts the request into an event created by userID
func (r CreateEventRequest) ToModel(userID int64) *models.Event {
	color := r.Color
	if color == "" {
		color = DefaultEventColor
	}
	return &models.Event{
		Title:            r.Title,
		Description:      r.Description,
		EventDate:        r.EventDate,
		CreatedBy:        userID,
		Color:            color,
		Location:         r.Location,
		ImageURL:         r.ImageURL,
		RegistrationLink: r.RegistrationLink,
	}
}
