package events

import "time"

// Lifecycle event codes published on the audit topic.
const (
	TenderCreated       = "TENDER_CREATED"
	TenderStatusChanged = "TENDER_STATUS_CHANGED"
	TenderAnalyzed      = "TENDER_ANALYZED"
	TenderDeleted       = "TENDER_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TENDER_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation every publisher uses.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTenderEvent builds a lifecycle event for one tender.
func NewTenderEvent(eventType, tenderId string, data map[string]interface{}) Event {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["tender_id"] = tenderId
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
