package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// ConversationRepository defines the persistence operations for chats.
type ConversationRepository interface {
	// Create persists a new conversation.
	Create(ctx context.Context, conv *domain.Conversation) error

	// GetByID retrieves a conversation by ID.
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)

	// GetByProductAndBuyer retrieves the conversation for a (product,
	// buyer) pair. Returns nil if none exists.
	GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*domain.Conversation, error)

	// ListForUser retrieves all conversations a user participates in,
	// most recently active first.
	ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error)

	// TouchLastMessage bumps the conversation's last-message timestamp.
	TouchLastMessage(ctx context.Context, id string) error
}

// MessageRepository defines the persistence operations for chat messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, msg *domain.Message) error

	// ListByConversation retrieves messages of a conversation, oldest first.
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)

	// GetLast retrieves the most recent message of a conversation.
	// Returns nil if the conversation has no messages.
	GetLast(ctx context.Context, conversationID string) (*domain.Message, error)

	// CountUnread counts messages in a conversation not yet read and not
	// sent by the given user.
	CountUnread(ctx context.Context, conversationID, userID string) (int, error)

	// MarkRead marks all messages in a conversation as read except those
	// sent by the given user.
	MarkRead(ctx context.Context, conversationID, userID string) error
}
