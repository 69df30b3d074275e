package models

// UserType defines the community role of a user
type UserType string

const (
	UserTypeStudent      UserType = "student"
	UserTypeAlumni       UserType = "alumni"
	UserTypeFaculty      UserType = "faculty"
	UserTypeProfessional UserType = "professional"
)

// Valid reports whether t is one of the known user types
func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeAlumni, UserTypeFaculty, UserTypeProfessional:
		return true
	}
	return false
}

// PostType classifies a post
type PostType string

const (
	PostTypeArticle    PostType = "article"
	PostTypeResource   PostType = "resource"
	PostTypeQuestion   PostType = "question"
	PostTypeDiscussion PostType = "discussion"
	PostTypeEvent      PostType = "event"
	PostTypeMentorship PostType = "mentorship"
)

// ConnectionStatus is the state of a connection request
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationTypeLike       NotificationType = "like"
	NotificationTypeComment    NotificationType = "comment"
	NotificationTypeConnection NotificationType = "connection"
	NotificationTypeMention    NotificationType = "mention"
	NotificationTypeEvent      NotificationType = "event"
	NotificationTypeSystem     NotificationType = "system"
)

// Source types stored on notifications
const (
	SourceTypePost       = "post"
	SourceTypeComment    = "comment"
	SourceTypeConnection = "connection"
	SourceTypeEvent      = "event"
)
