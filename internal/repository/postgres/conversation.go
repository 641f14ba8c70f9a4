package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ConversationRepository is a PostgreSQL implementation of repository.ConversationRepository.
type ConversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new PostgreSQL conversation repository.
func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

const conversationColumns = `id, product_id, buyer_id, seller_id, created_at, last_message_at`

// Create persists a new conversation.
func (r *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, product_id, buyer_id, seller_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.ProductID, conv.BuyerID, conv.SellerID)
	return err
}

// GetByID retrieves a conversation by ID.
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conv, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return conv, nil
}

// GetByProductAndBuyer retrieves the conversation for a (product, buyer) pair.
// Returns nil if none exists.
func (r *ConversationRepository) GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE product_id = $1 AND buyer_id = $2`

	conv, err := r.scan(r.db.QueryRowContext(ctx, query, productID, buyerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return conv, nil
}

// ListForUser retrieves all conversations a user participates in,
// most recently active first.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY last_message_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.ProductID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.LastMessageAt); err != nil {
			return nil, err
		}
		convs = append(convs, &c)
	}
	return convs, rows.Err()
}

// TouchLastMessage bumps the conversation's last-message timestamp.
func (r *ConversationRepository) TouchLastMessage(ctx context.Context, id string) error {
	query := `UPDATE conversations SET last_message_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ConversationRepository) scan(row *sql.Row) (*domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(&c.ID, &c.ProductID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.LastMessageAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MessageRepository is a PostgreSQL implementation of repository.MessageRepository.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new PostgreSQL message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, conversation_id, sender_id, content, read, created_at`

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, read)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.Read)
	return err
}

// ListByConversation retrieves messages of a conversation, oldest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// GetLast retrieves the most recent message of a conversation.
// Returns nil if the conversation has no messages.
func (r *MessageRepository) GetLast(ctx context.Context, conversationID string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT 1`

	var m domain.Message
	err := r.db.QueryRowContext(ctx, query, conversationID).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// CountUnread counts unread messages in a conversation not sent by the user.
func (r *MessageRepository) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = FALSE
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, conversationID, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks all messages in a conversation as read except those sent
// by the given user.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	query := `
		UPDATE messages
		SET read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = FALSE
	`

	_, err := r.db.ExecContext(ctx, query, conversationID, userID)
	return err
}
