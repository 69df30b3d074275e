package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToUserReachesOnlyThatUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/:uid", func(c *gin.Context) {
		if c.Param("uid") == "1" {
			c.Set("userID", int64(1))
		} else {
			c.Set("userID", int64(2))
		}
	}, NewHandler(hub, nil, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	alice, _, err := gorilla.DefaultDialer.Dial(wsURL+"/ws/1", nil)
	require.NoError(t, err)
	defer alice.Close()
	bob, _, err := gorilla.DefaultDialer.Dial(wsURL+"/ws/2", nil)
	require.NoError(t, err)
	defer bob.Close()

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(1) == 1 && hub.GetClientsCount(2) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.PublishToUser(1, TypeNotification, map[string]string{"content": "hello"})

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := alice.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, TypeNotification, env.Type)
	assert.Equal(t, int64(1), env.UserID)

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err)
}

func TestHub_PublishWithoutRunDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < publishBuffer+10; i++ {
			hub.PublishToUser(1, TypeNotification, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishToUser blocked")
	}
}
