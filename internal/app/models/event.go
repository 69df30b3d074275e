package models

import "time"

// Event is a community event shown on the calendar
type Event struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"eventDate"`
	CreatedBy        int64     `json:"createdBy"`
	Color            string    `json:"color"`
	Location         *string   `json:"location"`
	ImageURL         *string   `json:"imageUrl"`
	RegistrationLink *string   `json:"registrationLink"`
}
