package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ConversationService handles buyer/seller messaging.
type ConversationService struct {
	convRepo      repository.ConversationRepository
	messageRepo   repository.MessageRepository
	productRepo   repository.ProductRepository
	notifications *NotificationService
	logger        *zap.SugaredLogger
}

// NewConversationService creates a new ConversationService.
func NewConversationService(
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	productRepo repository.ProductRepository,
	notifications *NotificationService,
	logger *zap.SugaredLogger,
) *ConversationService {
	return &ConversationService{
		convRepo:      convRepo,
		messageRepo:   messageRepo,
		productRepo:   productRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// StartConversation opens (or returns the existing) conversation between a
// buyer and the seller of a product. At most one conversation exists per
// (product, buyer) pair.
func (s *ConversationService) StartConversation(ctx context.Context, productID, buyerID string) (*domain.Conversation, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == buyerID {
		return nil, ErrConversationWithSelf
	}

	existing, err := s.convRepo.GetByProductAndBuyer(ctx, productID, buyerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Infow("conversation started", "conversation_id", conv.ID, "product_id", productID)
	return conv, nil
}

// Inbox lists a user's conversations with unread counts, most recently
// active first.
func (s *ConversationService) Inbox(ctx context.Context, userID string) ([]*domain.ConversationSummary, error) {
	convs, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		unread, err := s.messageRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		last, err := s.messageRepo.GetLast(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &domain.ConversationSummary{
			Conversation: *conv,
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

// Messages returns a conversation's messages and marks the other party's
// messages as read.
func (s *ConversationService) Messages(ctx context.Context, conversationID, userID string) ([]*domain.Message, error) {
	conv, err := s.memberConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messageRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, conv.ID, userID); err != nil {
		s.logger.Warnw("mark read failed", "conversation_id", conv.ID, "error", err)
	}
	return msgs, nil
}

// SendMessage appends a message to a conversation and notifies the other
// participant.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, senderID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.memberConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.convRepo.TouchLastMessage(ctx, conv.ID); err != nil {
		s.logger.Warnw("conversation touch failed", "conversation_id", conv.ID, "error", err)
	}

	recipient := conv.BuyerID
	if senderID == conv.BuyerID {
		recipient = conv.SellerID
	}
	_ = s.notifications.NotifyNewMessage(ctx, recipient, msg)

	return msg, nil
}

func (s *ConversationService) memberConversation(ctx context.Context, conversationID, userID string) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.BuyerID != userID && conv.SellerID != userID {
		return nil, ErrNotConversationMember
	}
	return conv, nil
}
