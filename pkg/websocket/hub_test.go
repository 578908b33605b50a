package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	hub.now = func() time.Time { return time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC) }
	go hub.Run(ctx)

	client := &Client{Hub: hub, Send: make(chan []byte, 1), logger: zap.NewNop()}
	require.True(t, hub.Add(client))

	require.NoError(t, hub.Broadcast(ctx, "plantilla.actualizada", map[string]int{"ticket_id": 5932}))

	select {
	case raw := <-client.Send:
		var env struct {
			Type      string         `json:"type"`
			Payload   map[string]int `json:"payload"`
			Timestamp time.Time      `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "plantilla.actualizada", env.Type)
		assert.Equal(t, 5932, env.Payload["ticket_id"])
		assert.True(t, env.Timestamp.Equal(hub.now()))
	case <-time.After(time.Second):
		t.Fatal("broadcast was not delivered")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	client := &Client{Hub: hub, Send: make(chan []byte, 1), logger: zap.NewNop()}
	require.True(t, hub.Add(client))
	hub.Remove(client)

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	registered := &Client{Hub: hub, Send: make(chan []byte, 1), logger: zap.NewNop()}
	require.True(t, hub.Add(registered))

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, ok := <-registered.Send
	assert.False(t, ok, "shutdown closes the send channel of connected clients")

	finished := make(chan struct{})
	go func() {
		late := &Client{Hub: hub, Send: make(chan []byte, 1), logger: zap.NewNop()}
		assert.False(t, hub.Add(late))
		hub.Remove(registered)
		assert.Error(t, hub.Broadcast(context.Background(), "tickets.actualizados", nil))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("calls on a stopped hub blocked")
	}
}
