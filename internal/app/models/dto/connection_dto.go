package dto

import "github.com/znurfzh/ethic-sub000/internal/app/models"

// CreateConnectionRequest asks to connect with another user
type CreateConnectionRequest struct {
	ReceiverID int64 `json:"receiverId" binding:"required,gt=0"`
}

// UpdateConnectionRequest answers a connection request
type UpdateConnectionRequest struct {
	Status models.ConnectionStatus `json:"status" binding:"required,oneof=accepted rejected"`
}

// ConnectionResponse is a connection with the other party embedded
type ConnectionResponse struct {
	models.Connection
	User *UserProfile `json:"user"`
}
