package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/refund-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRefundCreated   EventType = "refund.created"
	EventReceiptUploaded EventType = "receipt.uploaded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, resourceID, actorID string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// RefundCreatedPayload payload.
type RefundCreatedPayload struct {
	Name     string                `json:"name"`
	Category domain.RefundCategory `json:"category"`
	Amount   float64               `json:"amount"`
	Filename string                `json:"filename"`
}

// ReceiptUploadedPayload payload.
type ReceiptUploadedPayload struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
}
