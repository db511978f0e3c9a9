package usecase

import (
	"context"
	"time"

	"vibely/internal/domain/entity"
	"vibely/internal/domain/repository"
	"vibely/pkg/errors"
	"vibely/pkg/logger"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
}

func NewChatUseCase(conversationRepo repository.ConversationRepository, userRepo repository.UserRepository) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
	}
}

type SendMessageInput struct {
	ConversationID string
	Kind           string
	Text           string
	MediaURL       string
}

type ConversationResponse struct {
	*entity.Conversation
	OtherUser *entity.User `json:"other_user,omitempty"`
}

// StartConversation resolves the conversation between the caller and the
// target, creating it on first contact. The document ID is derived from the
// sorted participant pair, so both sides resolve the same conversation and a
// concurrent first contact from the peer cannot produce a duplicate.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID, targetID string) (*ConversationResponse, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to start a conversation", nil)
	}
	if targetID == "" {
		return nil, errors.Validation("Recipient is required", nil)
	}
	if targetID == userID {
		return nil, errors.Validation("You cannot start a conversation with yourself", nil)
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		logger.Warn("StartConversation: recipient %s not found: %v", targetID, err)
		return nil, errors.NotFound("Recipient", err)
	}

	key := entity.ConversationKey(userID, targetID)

	conversation, err := uc.conversationRepo.GetByID(ctx, key)
	if err == nil {
		return &ConversationResponse{Conversation: conversation, OtherUser: target}, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	conversation = &entity.Conversation{
		ID:             key,
		ParticipantIDs: []string{userID, targetID},
		ParticipantNames: map[string]string{
			userID:   caller.Username,
			targetID: target.Username,
		},
		UnreadCount:   make(map[string]int),
		LastMessageAt: time.Now(),
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		// The peer resolved the same pair first; their document wins.
		if errors.Is(err, "CONFLICT") {
			logger.Info("StartConversation: lost create race for %s, reusing existing conversation", key)
			conversation, err = uc.conversationRepo.GetByID(ctx, key)
			if err != nil {
				return nil, err
			}
			return &ConversationResponse{Conversation: conversation, OtherUser: target}, nil
		}
		return nil, err
	}

	return &ConversationResponse{Conversation: conversation, OtherUser: target}, nil
}

// SendMessage appends a message to a conversation. The write is acknowledged
// once persisted; delivery to the recipient is the live subscription's job.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*entity.Message, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to send messages", nil)
	}

	if input.Kind == "" {
		input.Kind = entity.MessageKindText
	}
	if !entity.ValidMessageKind(input.Kind) {
		return nil, errors.Validation("Unsupported message kind", nil)
	}
	if input.Kind == entity.MessageKindText && input.Text == "" {
		return nil, errors.Validation("Message text is required", nil)
	}
	if input.Kind != entity.MessageKindText && input.MediaURL == "" {
		return nil, errors.Validation("Media is required for "+input.Kind+" messages", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		logger.Warn("SendMessage: conversation %s not found: %v", input.ConversationID, err)
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	message := &entity.Message{
		ConversationID: input.ConversationID,
		SenderID:       userID,
		SenderName:     sender.Username,
		SenderAvatar:   sender.AvatarURL,
		Text:           input.Text,
		Kind:           input.Kind,
		MediaURL:       input.MediaURL,
		Read:           false,
		Reactions:      []string{},
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("SendMessage: failed to append message to conversation %s: %v", input.ConversationID, err)
		return nil, err
	}

	recipients := make([]string, 0, len(conversation.ParticipantIDs)-1)
	for _, participantID := range conversation.ParticipantIDs {
		if participantID != userID {
			recipients = append(recipients, participantID)
		}
	}

	if err := uc.conversationRepo.RecordMessagePreview(ctx, conversation.ID, previewText(message), message.CreatedAt, recipients); err != nil {
		logger.Error("SendMessage: failed to update conversation %s preview: %v", conversation.ID, err)
	}

	return message, nil
}

// WatchMessages opens a live, time-ordered view of a conversation. The
// caller owns the returned stream and must Stop it when the view goes away.
func (uc *ChatUseCase) WatchMessages(ctx context.Context, userID, conversationID string) (repository.MessageStream, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to read messages", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.WatchMessages(ctx, conversationID)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	if userID == "" {
		return nil, 0, errors.Unauthenticated("Sign in to read messages", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*ConversationResponse, int64, error) {
	if userID == "" {
		return nil, 0, errors.Unauthenticated("Sign in to list conversations", nil)
	}

	conversations, total, err := uc.conversationRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		response := &ConversationResponse{Conversation: conversation}
		if otherID := conversation.OtherParticipant(userID); otherID != "" {
			if other, err := uc.userRepo.GetByID(ctx, otherID); err == nil {
				response.OtherUser = other
			}
		}
		responses = append(responses, response)
	}

	return responses, total, nil
}

func (uc *ChatUseCase) WatchConversations(ctx context.Context, userID string) (repository.ConversationStream, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to watch conversations", nil)
	}

	return uc.conversationRepo.WatchByUserID(ctx, userID)
}

func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*ConversationResponse, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to read conversations", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	response := &ConversationResponse{Conversation: conversation}
	if otherID := conversation.OtherParticipant(userID); otherID != "" {
		if other, err := uc.userRepo.GetByID(ctx, otherID); err == nil {
			response.OtherUser = other
		}
	}

	return response, nil
}

// MarkConversationRead flips the peer's unread messages to read and resets
// the caller's unread counter.
func (uc *ChatUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to update conversations", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}

	if err := uc.conversationRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		return err
	}

	return uc.conversationRepo.ResetUnread(ctx, conversationID, userID)
}

func (uc *ChatUseCase) AddReaction(ctx context.Context, userID, conversationID, messageID, reaction string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to react to messages", nil)
	}
	if reaction == "" {
		return errors.Validation("Reaction is required", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.AddReaction(ctx, conversationID, messageID, reaction)
}

func previewText(message *entity.Message) string {
	if message.Kind == entity.MessageKindText {
		return message.Text
	}
	return "[" + message.Kind + "]"
}
