package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/events"
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
	n.dispatcher.Subscribe(events.EventTicketOpened, n.handleTicketOpened)
	n.dispatcher.Subscribe(events.EventTicketClosed, n.handleTicketClosed)
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleTicketCommentAdded)
}

func (n *NotificationService) handleTicketOpened(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketOpened", eventFields(event)...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketClosed(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketClosed", eventFields(event)...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketCommentAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCommentAdded", eventFields(event)...)
	// the owner only hears about comments written by someone else
	if event.Actor.Username != event.Owner {
		n.sendEmailNotificationStub(ctx, event)
	}
	return nil
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("ticket_id", event.TicketID),
		zap.String("owner", event.Owner),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload),
	}
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", event.Owner),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
