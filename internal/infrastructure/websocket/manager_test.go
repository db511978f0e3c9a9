package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerClient(t *testing.T, m *Manager, userID string, buffer int) *Client {
	t.Helper()

	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
	m.Register <- client

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return m.clients[userID] == client
	}, time.Second, 10*time.Millisecond)

	return client
}

func TestSendToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := registerClient(t, m, "alice", 1)

	m.SendToUser("alice", []byte("hello"))
	assert.Equal(t, []byte("hello"), <-client.Send)

	// Unknown recipients are a no-op.
	m.SendToUser("nobody", []byte("void"))
}

func TestSendToUserDropsWhenBufferFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := registerClient(t, m, "alice", 1)

	m.SendToUser("alice", []byte("one"))
	m.SendToUser("alice", []byte("two"))

	assert.Equal(t, []byte("one"), <-client.Send)
	select {
	case payload := <-client.Send:
		t.Fatalf("expected overflow payload to be dropped, got %q", payload)
	default:
	}
}

func TestRoomFanoutExcludesSender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	alice := registerClient(t, m, "alice", 4)
	bob := registerClient(t, m, "bob", 4)

	m.JoinRoom("alice_bob", alice)
	m.JoinRoom("alice_bob", bob)

	m.SendToRoom("alice_bob", []byte("typing"), "alice")

	assert.Equal(t, []byte("typing"), <-bob.Send)
	select {
	case payload := <-alice.Send:
		t.Fatalf("sender must not receive its own room payload, got %q", payload)
	default:
	}
}

func TestUnregisterRunsOnCloseAndLeavesRooms(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := registerClient(t, m, "alice", 1)
	m.JoinRoom("alice_bob", client)

	closed := make(chan struct{})
	client.OnClose = func(*Client) { close(closed) }

	m.Unregister <- client

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("OnClose was not invoked")
	}

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, stillRegistered := m.clients["alice"]
		_, roomExists := m.rooms["alice_bob"]
		return !stillRegistered && !roomExists
	}, time.Second, 10*time.Millisecond)

	// The send channel is closed exactly once.
	_, open := <-client.Send
	assert.False(t, open)
}
