package worker

import (
	"github.com/spec-kit/refund-service/internal/events"
	"github.com/spec-kit/refund-service/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a
// publisher is configured, forwards every refund event to Kafka as well.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, publisher *events.KafkaPublisher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher != nil && publisher != nil {
		publisher.Register(dispatcher)
	}
}
