package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vibely/internal/usecase"
	"vibely/pkg/response"
	"vibely/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type sendMessageRequest struct {
	Text     string `json:"text"`
	Kind     string `json:"kind" validate:"omitempty,oneof=text voice image video"`
	MediaURL string `json:"media_url,omitempty" validate:"omitempty,url"`
}

type addReactionRequest struct {
	Reaction string `json:"reaction" validate:"required"`
}

// StartConversation resolves or creates the conversation with the recipient.
func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), userID, req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

// ListConversations returns the user's conversations ordered by recency.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	conversations, total, err := h.chatUseCase.ListConversations(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, params.PageSize, params.Offset)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.GetConversation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

// SendMessage appends a message to the conversation.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	conversationID := c.Param("id")
	userID := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ConversationID: conversationID,
		Kind:           req.Kind,
		Text:           req.Text,
		MediaURL:       req.MediaURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	conversationID := c.Param("id")
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, conversationID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, params.PageSize, params.Offset)
}

// MarkAsRead flips the peer's messages to read and resets the caller's
// unread counter.
func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	conversationID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.MarkConversationRead(c.Request().Context(), userID, conversationID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *ChatHandler) AddReaction(c echo.Context) error {
	conversationID := c.Param("id")
	messageID := c.Param("messageId")
	userID := c.Get("uid").(string)

	var req addReactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.chatUseCase.AddReaction(c.Request().Context(), userID, conversationID, messageID, req.Reaction); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Reaction added"})
}
