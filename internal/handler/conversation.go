package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/domain"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// ConversationHandler handles HTTP requests for messaging.
type ConversationHandler struct {
	conversationService *service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// StartConversationRequest is the HTTP request body for opening a chat.
type StartConversationRequest struct {
	ProductID string `json:"product_id"`
}

// MessageResponse is the HTTP representation of a chat message.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ConversationResponse is the HTTP representation of a conversation.
type ConversationResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	BuyerID       string           `json:"buyer_id"`
	SellerID      string           `json:"seller_id"`
	LastMessageAt time.Time        `json:"last_message_at"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	UnreadCount   int              `json:"unread_count"`
}

// Start handles POST /v1/conversations
func (h *ConversationHandler) Start(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conv, err := h.conversationService.StartConversation(c.Request.Context(), req.ProductID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ConversationResponse{
		ID:            conv.ID,
		ProductID:     conv.ProductID,
		BuyerID:       conv.BuyerID,
		SellerID:      conv.SellerID,
		LastMessageAt: conv.LastMessageAt,
	})
}

// Inbox handles GET /v1/conversations
func (h *ConversationHandler) Inbox(c *gin.Context) {
	summaries, err := h.conversationService.Inbox(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := ConversationResponse{
			ID:            s.Conversation.ID,
			ProductID:     s.Conversation.ProductID,
			BuyerID:       s.Conversation.BuyerID,
			SellerID:      s.Conversation.SellerID,
			LastMessageAt: s.Conversation.LastMessageAt,
			UnreadCount:   s.UnreadCount,
		}
		if s.LastMessage != nil {
			msg := toMessageResponse(s.LastMessage)
			resp.LastMessage = &msg
		}
		out = append(out, resp)
	}
	respondJSON(c, http.StatusOK, out)
}

// Messages handles GET /v1/conversations/:id/messages
func (h *ConversationHandler) Messages(c *gin.Context) {
	msgs, err := h.conversationService.Messages(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	respondJSON(c, http.StatusOK, out)
}

// SendMessageRequest is the HTTP request body for sending a message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Send handles POST /v1/conversations/:id/messages
func (h *ConversationHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.conversationService.SendMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toMessageResponse(msg))
}
