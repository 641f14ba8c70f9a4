package domain

import "time"

// Conversation represents a buyer/seller chat about a product.
// There is at most one conversation per (product, buyer) pair.
type Conversation struct {
	ID            string
	ProductID     string
	BuyerID       string
	SellerID      string
	CreatedAt     time.Time
	LastMessageAt time.Time
}

// Message is a single chat message within a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	Read           bool
	CreatedAt      time.Time
}

// ConversationSummary is a conversation with its unread count for one
// participant, used for the inbox view.
type ConversationSummary struct {
	Conversation Conversation
	LastMessage  *Message
	UnreadCount  int
}
