package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"vibely/internal/adapter/api/middleware"
	ws "vibely/internal/infrastructure/websocket"
	"vibely/internal/usecase"
	"vibely/pkg/errors"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	chatUseCase    *usecase.ChatUseCase
	postUseCase    *usecase.PostUseCase
	storyUseCase   *usecase.StoryUseCase
	callUseCase    *usecase.CallUseCase
	userUseCase    *usecase.UserUseCase
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	chatUseCase *usecase.ChatUseCase,
	postUseCase *usecase.PostUseCase,
	storyUseCase *usecase.StoryUseCase,
	callUseCase *usecase.CallUseCase,
	userUseCase *usecase.UserUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		chatUseCase:    chatUseCase,
		postUseCase:    postUseCase,
		storyUseCase:   storyUseCase,
		callUseCase:    callUseCase,
		userUseCase:    userUseCase,
	}
}

// stopper is the slice of a live stream a session needs to shut it down.
type stopper interface {
	Stop()
}

// session tracks one connection's live subscriptions so they can be stopped
// individually on unsubscribe and together on disconnect.
type session struct {
	userID  string
	client  *ws.Client
	cancel  context.CancelFunc
	mutex   sync.Mutex
	streams map[string]stopper
}

func (s *session) add(key string, stream stopper) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if old, ok := s.streams[key]; ok {
		old.Stop()
	}
	s.streams[key] = stream
}

func (s *session) remove(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if stream, ok := s.streams[key]; ok {
		stream.Stop()
		delete(s.streams, key)
	}
}

func (s *session) stopAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, stream := range s.streams {
		stream.Stop()
		delete(s.streams, key)
	}
}

// HandleWebSocket upgrades the connection and serves live subscriptions
// over it. Browsers cannot set headers on upgrade requests, so the token
// rides in the query string.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthenticated("Token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthenticated("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	sess := &session{
		userID:  userID,
		client:  client,
		cancel:  cancel,
		streams: make(map[string]stopper),
	}

	client.OnMessage = func(_ *ws.Client, payload []byte) {
		h.dispatch(ctx, sess, payload)
	}
	client.OnClose = func(_ *ws.Client) {
		sess.stopAll()
		cancel()
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) dispatch(ctx context.Context, sess *session, payload []byte) {
	var event ws.InboundEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.sendError(sess, "", "Malformed event")
		return
	}

	switch event.Type {
	case ws.EventPing:
		h.wsManager.SendToUser(sess.userID, ws.MarshalEvent(ws.Event{Type: ws.EventPong}))

	case ws.EventSubscribeMessages:
		h.subscribeMessages(ctx, sess, event.Target)
	case ws.EventUnsubscribeMessages:
		sess.remove("messages:" + event.Target)
		h.wsManager.LeaveRoom(event.Target, sess.client)

	case ws.EventSubscribeConversations:
		h.subscribeConversations(ctx, sess)
	case ws.EventUnsubscribeConversations:
		sess.remove("conversations")

	case ws.EventSubscribeFeed:
		h.subscribeFeed(ctx, sess)
	case ws.EventUnsubscribeFeed:
		sess.remove("feed")

	case ws.EventSubscribeComments:
		h.subscribeComments(ctx, sess, event.Target)
	case ws.EventUnsubscribeComments:
		sess.remove("comments:" + event.Target)

	case ws.EventSubscribeStories:
		h.subscribeStories(ctx, sess, event.Target)
	case ws.EventUnsubscribeStories:
		sess.remove("stories:" + event.Target)

	case ws.EventSubscribeCalls:
		h.subscribeCalls(ctx, sess)
	case ws.EventUnsubscribeCalls:
		sess.remove("calls")

	case ws.EventTyping:
		h.relayTyping(ctx, sess, event.Data)

	default:
		h.sendError(sess, event.Target, "Unknown event type: "+event.Type)
	}
}

func (h *WebSocketHandler) subscribeMessages(ctx context.Context, sess *session, conversationID string) {
	if conversationID == "" {
		h.sendError(sess, "", "Conversation target is required")
		return
	}

	stream, err := h.chatUseCase.WatchMessages(ctx, sess.userID, conversationID)
	if err != nil {
		h.sendError(sess, conversationID, errorMessage(err))
		return
	}

	sess.add("messages:"+conversationID, stream)
	h.wsManager.JoinRoom(conversationID, sess.client)

	go pumpStream(h, sess, "messages:"+conversationID, ws.EventMessagesSnapshot, conversationID, stream.Updates())
}

func (h *WebSocketHandler) subscribeConversations(ctx context.Context, sess *session) {
	stream, err := h.chatUseCase.WatchConversations(ctx, sess.userID)
	if err != nil {
		h.sendError(sess, "", errorMessage(err))
		return
	}

	sess.add("conversations", stream)

	go pumpStream(h, sess, "conversations", ws.EventConversationsSnapshot, "", stream.Updates())
}

func (h *WebSocketHandler) subscribeFeed(ctx context.Context, sess *session) {
	stream, err := h.postUseCase.WatchFeed(ctx, 50)
	if err != nil {
		h.sendError(sess, "", errorMessage(err))
		return
	}

	sess.add("feed", stream)

	go pumpStream(h, sess, "feed", ws.EventFeedSnapshot, "", stream.Updates())
}

func (h *WebSocketHandler) subscribeComments(ctx context.Context, sess *session, postID string) {
	if postID == "" {
		h.sendError(sess, "", "Post target is required")
		return
	}

	stream, err := h.postUseCase.WatchComments(ctx, postID)
	if err != nil {
		h.sendError(sess, postID, errorMessage(err))
		return
	}

	sess.add("comments:"+postID, stream)

	go pumpStream(h, sess, "comments:"+postID, ws.EventCommentsSnapshot, postID, stream.Updates())
}

func (h *WebSocketHandler) subscribeStories(ctx context.Context, sess *session, userID string) {
	if userID == "" {
		h.sendError(sess, "", "User target is required")
		return
	}

	stream, err := h.storyUseCase.WatchUserStories(ctx, sess.userID, userID)
	if err != nil {
		h.sendError(sess, userID, errorMessage(err))
		return
	}

	sess.add("stories:"+userID, stream)

	go pumpStream(h, sess, "stories:"+userID, ws.EventStoriesSnapshot, userID, stream.Updates())
}

func (h *WebSocketHandler) subscribeCalls(ctx context.Context, sess *session) {
	stream, err := h.callUseCase.WatchCalls(ctx, sess.userID)
	if err != nil {
		h.sendError(sess, "", errorMessage(err))
		return
	}

	sess.add("calls", stream)

	go pumpStream(h, sess, "calls", ws.EventCallsSnapshot, "", stream.Updates())
}

// pumpStream forwards every snapshot the stream delivers until its channel
// closes, then drops the subscription and tells the client it ended.
func pumpStream[T any](h *WebSocketHandler, sess *session, key, eventType, target string, updates <-chan []*T) {
	for snapshot := range updates {
		h.wsManager.SendToUser(sess.userID, ws.MarshalEvent(ws.Event{
			Type:   eventType,
			Target: target,
			Data:   snapshot,
		}))
	}

	sess.remove(key)
	h.wsManager.SendToUser(sess.userID, ws.MarshalEvent(ws.Event{
		Type:   ws.EventSubscriptionEnded,
		Target: target,
	}))
}

// relayTyping fans a typing indicator out to the conversation room. It is
// transient presence, never persisted.
func (h *WebSocketHandler) relayTyping(ctx context.Context, sess *session, raw json.RawMessage) {
	var data ws.TypingData
	if err := json.Unmarshal(raw, &data); err != nil || data.ConversationID == "" {
		h.sendError(sess, "", "Malformed typing event")
		return
	}

	data.UserID = sess.userID
	if user, err := h.userUseCase.GetProfile(ctx, sess.userID); err == nil {
		data.Username = user.Username
	}

	h.wsManager.SendToRoom(data.ConversationID, ws.MarshalEvent(ws.Event{
		Type:   ws.EventTyping,
		Target: data.ConversationID,
		Data:   data,
	}), sess.userID)
}

func (h *WebSocketHandler) sendError(sess *session, target, message string) {
	h.wsManager.SendToUser(sess.userID, ws.MarshalEvent(ws.Event{
		Type:   ws.EventError,
		Target: target,
		Data:   map[string]string{"message": message},
	}))
}

func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Subscription failed"
}
