package websocket

import "encoding/json"

// Inbound event types (client to server).
const (
	EventSubscribeMessages        = "subscribe_messages"
	EventUnsubscribeMessages      = "unsubscribe_messages"
	EventSubscribeConversations   = "subscribe_conversations"
	EventUnsubscribeConversations = "unsubscribe_conversations"
	EventSubscribeFeed            = "subscribe_feed"
	EventUnsubscribeFeed          = "unsubscribe_feed"
	EventSubscribeComments        = "subscribe_comments"
	EventUnsubscribeComments      = "unsubscribe_comments"
	EventSubscribeStories         = "subscribe_stories"
	EventUnsubscribeStories       = "unsubscribe_stories"
	EventSubscribeCalls           = "subscribe_calls"
	EventUnsubscribeCalls         = "unsubscribe_calls"
	EventTyping                   = "typing"
	EventPing                     = "ping"
)

// Outbound event types (server to client).
const (
	EventMessagesSnapshot      = "messages_snapshot"
	EventConversationsSnapshot = "conversations_snapshot"
	EventFeedSnapshot          = "feed_snapshot"
	EventCommentsSnapshot      = "comments_snapshot"
	EventStoriesSnapshot       = "stories_snapshot"
	EventCallsSnapshot         = "calls_snapshot"
	EventSubscriptionEnded     = "subscription_ended"
	EventError                 = "error"
	EventPong                  = "pong"
)

// Event is the frame envelope in both directions. Target carries the
// subscription argument (conversation ID, post ID, user ID) where one is
// needed; snapshots go out in Data.
type Event struct {
	Type   string      `json:"type"`
	Target string      `json:"target,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// InboundEvent defers Data decoding until the type is known.
type InboundEvent struct {
	Type   string          `json:"type"`
	Target string          `json:"target,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type TypingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username,omitempty"`
	Typing         bool   `json:"typing"`
}

func MarshalEvent(event Event) []byte {
	payload, _ := json.Marshal(event)
	return payload
}
