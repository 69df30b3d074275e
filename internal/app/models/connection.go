package models

import "time"

// Connection is a request between two users to connect.
// Status starts as pending and is moved to accepted or rejected by the receiver.
type Connection struct {
	ID          int64            `json:"id"`
	RequesterID int64            `json:"requesterId"`
	ReceiverID  int64            `json:"receiverId"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// OtherParty returns the id of the user on the other side of the connection
func (c *Connection) OtherParty(userID int64) int64 {
	if c.RequesterID == userID {
		return c.ReceiverID
	}
	return c.RequesterID
}
