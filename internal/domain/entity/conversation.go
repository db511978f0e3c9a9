package entity

import (
	"sort"
	"strings"
	"time"
)

// Conversation groups exactly two participants and their messages. The
// document ID is derived from the sorted participant pair, so both sides
// always resolve the same conversation and concurrent first contact cannot
// produce duplicates.
type Conversation struct {
	ID               string            `json:"id" firestore:"id"`
	ParticipantIDs   []string          `json:"participant_ids" firestore:"participantIds"`
	ParticipantNames map[string]string `json:"participant_names,omitempty" firestore:"participantNames,omitempty"`
	CreatedAt        time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time         `json:"updated_at" firestore:"updatedAt"`
	LastMessage      string            `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt    time.Time         `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount      map[string]int    `json:"unread_count" firestore:"unreadCount"`
}

// ConversationKey returns the deterministic conversation ID for an unordered
// pair of participant IDs.
func ConversationKey(userID1, userID2 string) string {
	pair := []string{userID1, userID2}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// HasParticipant reports whether the given user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of the given user in a two-party
// conversation, or an empty string if the user is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	if !c.HasParticipant(userID) {
		return ""
	}
	for _, id := range c.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}
