package worker

import (
	"github.com/spec-kit/ticket-board/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to ticket events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
