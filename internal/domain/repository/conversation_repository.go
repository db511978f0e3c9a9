package repository

import (
	"context"
	"time"

	"vibely/internal/domain/entity"
)

type ConversationRepository interface {
	// Create persists a conversation under its preset deterministic ID and
	// fails with a CONFLICT error if the document already exists.
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	WatchByUserID(ctx context.Context, userID string) (ConversationStream, error)

	// RecordMessagePreview sets the last-message preview fields and atomically
	// increments each recipient's unread counter. Field-level updates, so
	// concurrent sends from both sides cannot clobber each other.
	RecordMessagePreview(ctx context.Context, conversationID, preview string, at time.Time, recipientIDs []string) error
	// ResetUnread zeroes one participant's unread counter.
	ResetUnread(ctx context.Context, conversationID, userID string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	WatchMessages(ctx context.Context, conversationID string) (MessageStream, error)
	AddReaction(ctx context.Context, conversationID, messageID, reaction string) error
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}
