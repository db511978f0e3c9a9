package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	// Create (not Set) so a concurrent resolver on the other side loses
	// cleanly instead of clobbering the winner's document.
	_, err := r.client.Collection("conversations").Doc(conversation.ID).Create(ctx, conversation)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Conversation already exists", err)
		}
		return errors.Unavailable("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Unavailable("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conversation.ID = doc.Ref.ID

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	query := r.client.Collection("conversations").
		Where("participantIds", "array-contains", userID).
		OrderBy("lastMessageAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching conversations for user %s: %v", userID, err)
		return nil, 0, errors.Unavailable("Failed to fetch conversations", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var conversations []*entity.Conversation
	for i := start; i < end; i++ {
		var conversation entity.Conversation
		if err := allDocs[i].DataTo(&conversation); err != nil {
			logger.Warn("Skipping malformed conversation %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		conversation.ID = allDocs[i].Ref.ID
		conversations = append(conversations, &conversation)
	}

	return conversations, total, nil
}

func (r *firestoreConversationRepository) RecordMessagePreview(ctx context.Context, conversationID, preview string, at time.Time, recipientIDs []string) error {
	updates := []firestore.Update{
		{Path: "lastMessage", Value: preview},
		{Path: "lastMessageAt", Value: at},
		{Path: "updatedAt", Value: time.Now()},
	}
	for _, recipientID := range recipientIDs {
		updates = append(updates, firestore.Update{
			Path:  "unreadCount." + recipientID,
			Value: firestore.Increment(1),
		})
	}

	_, err := r.client.Collection("conversations").Doc(conversationID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Unavailable("Failed to update conversation preview", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	_, err := r.client.Collection("conversations").Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: 0},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Unavailable("Failed to reset unread counter", err)
	}

	return nil
}

func (r *firestoreConversationRepository) WatchByUserID(ctx context.Context, userID string) (repository.ConversationStream, error) {
	query := r.client.Collection("conversations").
		Where("participantIds", "array-contains", userID).
		OrderBy("lastMessageAt", firestore.Desc)

	return watchQuery(ctx, query, "conversations/"+userID, decodeConversation), nil
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(message.ConversationID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Unavailable("Failed to create message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messagesQuery(conversationID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Unavailable("Failed to fetch messages", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var messages []*entity.Message
	for i := start; i < end; i++ {
		message, err := decodeMessage(allDocs[i])
		if err != nil {
			logger.Warn("Skipping malformed message %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		messages = append(messages, message)
	}

	return messages, total, nil
}

func (r *firestoreConversationRepository) WatchMessages(ctx context.Context, conversationID string) (repository.MessageStream, error) {
	return watchQuery(ctx, r.messagesQuery(conversationID), "messages/"+conversationID, decodeMessage), nil
}

func (r *firestoreConversationRepository) AddReaction(ctx context.Context, conversationID, messageID, reaction string) error {
	docRef := r.client.Collection("conversations").Doc(conversationID).Collection("messages").Doc(messageID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "reactions", Value: firestore.ArrayUnion(reaction)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Message", err)
		}
		return errors.Unavailable("Failed to add reaction", err)
	}

	return nil
}

func (r *firestoreConversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").Where("read", "==", false)

	iter := query.Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Unavailable("Failed to iterate unread messages", err)
		}

		message, err := decodeMessage(doc)
		if err != nil {
			logger.Warn("Skipping malformed message %s: %v", doc.Ref.ID, err)
			continue
		}

		// Only the recipient's view of the peer's messages flips to read.
		if message.SenderID == readerID {
			continue
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
		}); err != nil {
			return errors.Unavailable("Failed to mark message read", err)
		}
	}

	return nil
}

func (r *firestoreConversationRepository) messagesQuery(conversationID string) firestore.Query {
	return r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)
}

func decodeConversation(doc *firestore.DocumentSnapshot) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, err
	}
	conversation.ID = doc.Ref.ID
	return &conversation, nil
}

func decodeMessage(doc *firestore.DocumentSnapshot) (*entity.Message, error) {
	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, err
	}
	message.ID = doc.Ref.ID
	return &message, nil
}
