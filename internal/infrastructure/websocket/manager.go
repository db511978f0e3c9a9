package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"vibely/pkg/logger"
)

// Client is one WebSocket connection belonging to an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	// OnMessage handles an inbound frame; OnClose runs once when the
	// connection goes away so owners can stop any live subscriptions.
	OnMessage func(client *Client, payload []byte)
	OnClose   func(client *Client)

	closeOnce sync.Once
}

// Manager tracks active connections and per-conversation rooms.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if m.clients[client.UserID] == client {
					delete(m.clients, client.UserID)
				}
				for room, members := range m.rooms {
					if members[client] {
						delete(members, client)
						if len(members) == 0 {
							delete(m.rooms, room)
						}
					}
				}
				m.mutex.Unlock()
				client.close()
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) JoinRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[*Client]bool)
	}
	m.rooms[roomID][client] = true
}

func (m *Manager) LeaveRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[roomID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}
}

// SendToUser delivers a payload to a user's connection, dropping it if the
// client's buffer is full rather than blocking the caller.
func (m *Manager) SendToUser(userID string, payload []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("Dropping payload for slow WebSocket client %s", userID)
	}
}

// SendToRoom fans a payload out to every room member except excludeUserID.
func (m *Manager) SendToRoom(roomID string, payload []byte, excludeUserID string) {
	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[roomID]))
	for client := range m.rooms[roomID] {
		if client.UserID != excludeUserID {
			members = append(members, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range members {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("Dropping room payload for slow WebSocket client %s", client.UserID)
		}
	}
}

// ReadPump reads inbound frames until the connection dies, then unregisters.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		if c.OnMessage != nil {
			c.OnMessage(c, payload)
		}
	}
}

// WritePump drains the send channel into the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		if c.OnClose != nil {
			c.OnClose(c)
		}
		close(c.Send)
	})
}
