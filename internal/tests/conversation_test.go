package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/service"
)

type conversationFixture struct {
	convRepo    *MockConversationRepository
	messageRepo *MockMessageRepository
	productRepo *MockProductRepository
	service     *service.ConversationService
}

func newConversationFixture() *conversationFixture {
	logger := zap.NewNop().Sugar()
	f := &conversationFixture{
		convRepo:    NewMockConversationRepository(),
		messageRepo: NewMockMessageRepository(),
		productRepo: NewMockProductRepository(),
	}
	f.service = service.NewConversationService(
		f.convRepo, f.messageRepo, f.productRepo,
		service.NewNotificationService(logger), logger,
	)
	f.productRepo.AddProduct(&domain.Product{
		ID:       "product-1",
		SellerID: "seller-1",
		Status:   domain.ProductStatusActive,
	})
	return f
}

func TestStartConversation_CreatesOnePerProductAndBuyer(t *testing.T) {
	t.Parallel()

	f := newConversationFixture()

	first, err := f.service.StartConversation(context.Background(), "product-1", "buyer-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	second, err := f.service.StartConversation(context.Background(), "product-1", "buyer-1")
	if err != nil {
		t.Fatalf("repeated start failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the existing conversation, got %q and %q", first.ID, second.ID)
	}
	if f.convRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 conversation, got %d creations", f.convRepo.CreateCallCount)
	}
	if first.SellerID != "seller-1" {
		t.Errorf("expected seller from product, got %q", first.SellerID)
	}
}

func TestStartConversation_SellerCannotMessageThemselves(t *testing.T) {
	t.Parallel()

	f := newConversationFixture()

	_, err := f.service.StartConversation(context.Background(), "product-1", "seller-1")
	if !errors.Is(err, service.ErrConversationWithSelf) {
		t.Fatalf("expected ErrConversationWithSelf, got %v", err)
	}
}

func TestSendMessage_OnlyMembersMaySend(t *testing.T) {
	t.Parallel()

	f := newConversationFixture()
	conv, err := f.service.StartConversation(context.Background(), "product-1", "buyer-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := f.service.SendMessage(context.Background(), conv.ID, "stranger", "hi"); !errors.Is(err, service.ErrNotConversationMember) {
		t.Fatalf("expected ErrNotConversationMember, got %v", err)
	}
	if _, err := f.service.SendMessage(context.Background(), conv.ID, "buyer-1", ""); !errors.Is(err, service.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := f.service.SendMessage(context.Background(), conv.ID, "buyer-1", "is this available?"); err != nil {
		t.Fatalf("member send failed: %v", err)
	}
}

func TestInbox_CountsUnreadForTheOtherParty(t *testing.T) {
	t.Parallel()

	f := newConversationFixture()
	conv, err := f.service.StartConversation(context.Background(), "product-1", "buyer-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.service.SendMessage(context.Background(), conv.ID, "buyer-1", "is this available?"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := f.service.SendMessage(context.Background(), conv.ID, "buyer-1", "still interested"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	sellerInbox, err := f.service.Inbox(context.Background(), "seller-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(sellerInbox) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(sellerInbox))
	}
	if sellerInbox[0].UnreadCount != 2 {
		t.Errorf("expected 2 unread for seller, got %d", sellerInbox[0].UnreadCount)
	}
	if sellerInbox[0].LastMessage == nil || sellerInbox[0].LastMessage.Content != "still interested" {
		t.Error("expected last message in summary")
	}

	// The sender has nothing unread.
	buyerInbox, err := f.service.Inbox(context.Background(), "buyer-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if buyerInbox[0].UnreadCount != 0 {
		t.Errorf("expected 0 unread for buyer, got %d", buyerInbox[0].UnreadCount)
	}
}

func TestMessages_ReadingClearsUnread(t *testing.T) {
	t.Parallel()

	f := newConversationFixture()
	conv, err := f.service.StartConversation(context.Background(), "product-1", "buyer-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.service.SendMessage(context.Background(), conv.ID, "buyer-1", "hello"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	msgs, err := f.service.Messages(context.Background(), conv.ID, "seller-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	inbox, err := f.service.Inbox(context.Background(), "seller-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if inbox[0].UnreadCount != 0 {
		t.Errorf("expected unread cleared after reading, got %d", inbox[0].UnreadCount)
	}
}
