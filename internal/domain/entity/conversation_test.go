package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationKey("alice", "bob"), ConversationKey("bob", "alice"))
	assert.Equal(t, "alice_bob", ConversationKey("bob", "alice"))
}

func TestHasParticipant(t *testing.T) {
	conversation := &Conversation{ParticipantIDs: []string{"alice", "bob"}}

	assert.True(t, conversation.HasParticipant("alice"))
	assert.False(t, conversation.HasParticipant("mallory"))
}

func TestOtherParticipant(t *testing.T) {
	conversation := &Conversation{ParticipantIDs: []string{"alice", "bob"}}

	assert.Equal(t, "bob", conversation.OtherParticipant("alice"))
	assert.Equal(t, "alice", conversation.OtherParticipant("bob"))
	assert.Empty(t, conversation.OtherParticipant("mallory"), "a non-participant has no peer")
}
