package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
)

func newObservedNotifications(cfg config.NotificationConfig) (events.Dispatcher, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), cfg).RegisterHandlers()
	return dispatcher, logs
}

func TestNotificationService_LogsTicketEvents(t *testing.T) {
	dispatcher, logs := newObservedNotifications(config.NotificationConfig{})
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketOpened,
		TicketID: "a1b2c3d4",
		Owner:    "alice",
		Actor:    events.Actor{Username: "alice"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketClosed,
		TicketID: "a1b2c3d4",
		Owner:    "alice",
		Actor:    events.Actor{Username: "bob", Role: domain.RoleSupport},
	}))

	entries := logs.FilterField(zap.String("ticket_id", "a1b2c3d4")).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "TicketOpened", entries[0].Message)
	assert.Equal(t, "TicketClosed", entries[1].Message)
	assert.Zero(t, logs.FilterMessage("sendEmailNotificationStub").Len(), "stubs are off without endpoints")
}

func TestNotificationService_CommentEmailsOnlyForOthers(t *testing.T) {
	dispatcher, logs := newObservedNotifications(config.NotificationConfig{
		EmailFrom:  "board@example.com",
		WebhookURL: "https://hooks.example.com/board",
	})
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: "a1b2c3d4",
		Owner:    "alice",
		Actor:    events.Actor{Username: "alice", Role: domain.RoleUser},
	}))
	assert.Zero(t, logs.FilterMessage("sendEmailNotificationStub").Len())

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: "a1b2c3d4",
		Owner:    "alice",
		Actor:    events.Actor{Username: "bob", Role: domain.RoleSupport},
	}))
	emails := logs.FilterMessage("sendEmailNotificationStub").All()
	require.Len(t, emails, 1)
	assert.Equal(t, "alice", emails[0].ContextMap()["to"])
	assert.Zero(t, logs.FilterMessage("sendWebhookNotificationStub").Len(), "comments never hit the webhook")
}
