package events

import "time"

// Event type codes published on the activity bus.
const (
	TypeUserLogin    = "USER_LOGIN"
	TypeUserDeleted  = "USER_DELETED"
	TypeEntryCreated = "ENTRY_CREATED"
	TypeEntryUpdated = "ENTRY_UPDATED"
	TypeEntryDeleted = "ENTRY_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
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
