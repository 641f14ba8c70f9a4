package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationPaymentSuccess  NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed   NotificationType = "PAYMENT_FAILED"
	NotificationListingActive   NotificationType = "LISTING_ACTIVE"
	NotificationListingReported NotificationType = "LISTING_REPORTED"
	NotificationNewMessage      NotificationType = "NEW_MESSAGE"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would carry a World App notification API
	// client; delivery is currently logged only.
	logger *zap.SugaredLogger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{logger: logger}
}

// NotifyPaymentSuccess notifies the seller that the listing fee cleared.
func (s *NotificationService) NotifyPaymentSuccess(ctx context.Context, payment *domain.ListingPayment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentSuccess,
		RecipientID: payment.SellerID,
		Title:       "Payment Successful",
		Message:     fmt.Sprintf("Listing fee of %.2f %s received. Your listing is now live.", payment.Amount, payment.Currency),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"product_id": payment.ProductID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyPaymentFailed notifies the seller of a failed listing payment.
func (s *NotificationService) NotifyPaymentFailed(ctx context.Context, payment *domain.ListingPayment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentFailed,
		RecipientID: payment.SellerID,
		Title:       "Payment Failed",
		Message:     fmt.Sprintf("Listing fee payment of %.2f %s failed.", payment.Amount, payment.Currency),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"product_id": payment.ProductID,
			"reason":     payment.FailureReason,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyNewMessage notifies a conversation participant of a new message.
func (s *NotificationService) NotifyNewMessage(ctx context.Context, recipientID string, msg *domain.Message) error {
	return s.send(ctx, Notification{
		Type:        NotificationNewMessage,
		RecipientID: recipientID,
		Title:       "New Message",
		Message:     "You have a new message about a listing.",
		Data: map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"message_id":      msg.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyListingReported notifies an admin queue of a new report.
func (s *NotificationService) NotifyListingReported(ctx context.Context, report *domain.Report) error {
	return s.send(ctx, Notification{
		Type:        NotificationListingReported,
		RecipientID: "admin",
		Title:       "Listing Reported",
		Message:     fmt.Sprintf("A listing was reported: %s", report.Reason),
		Data: map[string]interface{}{
			"report_id":  report.ID,
			"product_id": report.ProductID,
		},
		CreatedAt: time.Now(),
	})
}

// send delivers a notification (log-backed implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	s.logger.Infow("notification",
		"type", notification.Type,
		"recipient", notification.RecipientID,
		"title", notification.Title,
		"message", notification.Message,
	)
	return nil
}
