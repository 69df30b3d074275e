package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Envelope types pushed to clients
const (
	TypeNotification = "notification"
)

// publishBuffer bounds the number of envelopes waiting for the hub loop
const publishBuffer = 256

// Hub maintains the set of active clients and pushes envelopes to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Outbound envelopes waiting to be delivered
	publish chan *Envelope

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Envelope is a message pushed over WebSocket to one user
type Envelope struct {
	// Type of message, e.g. "notification"
	Type string `json:"type"`

	// Recipient user
	UserID int64 `json:"userId"`

	// Message body
	Payload interface{} `json:"payload"`

	// Timestamp when the message was published
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		publish:    make(chan *Envelope, publishBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and deliveries until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case envelope := <-h.publish:
			h.deliver(envelope)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

// removeLocked drops a client; mu must be held for writing
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// deliver sends an envelope to every connection of its recipient.
// Clients whose send buffer is full are dropped.
func (h *Hub) deliver(envelope *Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", envelope.UserID).
			Msg("Failed to marshal envelope")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[envelope.UserID]
	if !ok {
		h.logger.Debug().
			Int64("userID", envelope.UserID).
			Msg("No live connections for user")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().
				Int64("userID", envelope.UserID).
				Msg("Dropping slow client")
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// attach hands a client to the hub loop; false when the hub has stopped
func (h *Hub) attach(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// detach hands a client back to the hub loop for removal
func (h *Hub) detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// PublishToUser queues a message for every live connection of userID.
// It never blocks; when the queue is full the message is dropped.
func (h *Hub) PublishToUser(userID int64, msgType string, payload interface{}) {
	envelope := &Envelope{
		Type:      msgType,
		UserID:    userID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	select {
	case h.publish <- envelope:
	default:
		h.logger.Warn().
			Int64("userID", userID).
			Str("type", msgType).
			Msg("Publish queue full, dropping message")
	}
}

// GetClientsCount returns the number of live connections for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}
