package models

import "time"

// Notification is a message delivered to a user as a side effect of another action
type Notification struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"userId"`
	Type       NotificationType `json:"type"`
	Content    string           `json:"content"`
	SourceID   *int64           `json:"sourceId"`
	SourceType *string          `json:"sourceType"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"createdAt"`
}
