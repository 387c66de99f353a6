package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRefundCreated, n.handleRefundCreated)
	n.dispatcher.Subscribe(events.EventReceiptUploaded, n.handleReceiptUploaded)
}

func (n *NotificationService) handleRefundCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RefundCreated", zap.String("refund_id", event.ResourceID), zap.String("user_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReceiptUploaded(ctx context.Context, event events.Event) error {
	n.logger.Info("ReceiptUploaded", zap.String("filename", event.ResourceID), zap.String("user_id", event.ActorID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// sendEmailNotificationStub would tell managers a new request is awaiting review.
func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}
