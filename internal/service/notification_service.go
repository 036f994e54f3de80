package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/config"
	"github.com/spec-kit/relief-service/internal/events"
)

// NotificationService fans domain events out to logs and the stub
// webhook/email channels.
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
	n.dispatcher.Subscribe(events.EventResourceCreated, n.handleResourceCreated)
	n.dispatcher.Subscribe(events.EventResourceUpdated, n.handleResourceUpdated)
	n.dispatcher.Subscribe(events.EventResponseCreated, n.handleResponseCreated)
	n.dispatcher.Subscribe(events.EventResponseUpdated, n.handleResponseUpdated)
	n.dispatcher.Subscribe(events.EventUsersUpdated, n.handleUsersUpdated)
}

func (n *NotificationService) handleResourceCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ResourceCreated", zap.String("key", event.Key), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleResourceUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("ResourceUpdated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleResponseCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ResponseCreated", zap.String("key", event.Key), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleResponseUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("ResponseUpdated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUsersUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("UsersUpdated", zap.String("key", event.Key))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
