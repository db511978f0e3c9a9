package entity

import "time"

const (
	MessageKindText  = "text"
	MessageKindVoice = "voice"
	MessageKindImage = "image"
	MessageKindVideo = "video"
)

// Message is immutable after creation: no edit or delete path exists.
// Reactions and the read flag are the only post-creation mutations.
// CreatedAt is the sole ordering key within a conversation.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	SenderName     string    `json:"sender_name" firestore:"senderName"`
	SenderAvatar   string    `json:"sender_avatar,omitempty" firestore:"senderAvatar,omitempty"`
	Text           string    `json:"text" firestore:"text"`
	Kind           string    `json:"kind" firestore:"kind"`
	MediaURL       string    `json:"media_url,omitempty" firestore:"mediaUrl,omitempty"`
	Read           bool      `json:"read" firestore:"read"`
	Reactions      []string  `json:"reactions" firestore:"reactions"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

// ValidMessageKind reports whether kind names a supported message kind.
func ValidMessageKind(kind string) bool {
	switch kind {
	case MessageKindText, MessageKindVoice, MessageKindImage, MessageKindVideo:
		return true
	}
	return false
}
