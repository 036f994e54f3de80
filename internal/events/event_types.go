package events

import "time"

// EventType enumerates supported notification identifiers. These mirror
// the change signals the rest of the system filters on: mutations to the
// resource store, auth session changes, and directory updates.
type EventType string

const (
	EventResourceCreated  EventType = "resource-created"
	EventResourceUpdated  EventType = "resource-updated"
	EventResponseCreated  EventType = "response-created"
	EventResponseUpdated  EventType = "response-updated"
	EventAuthStateChanged EventType = "auth-state-changed"
	EventUsersUpdated     EventType = "users-updated"
)

// Event is a fire-and-forget notification. Key names the storage
// partition the change touched, when one applies; Payload carries
// optional detail for log fan-out and is ignored by reload subscribers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Key       string      `json:"key,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ResourceCreatedPayload payload.
type ResourceCreatedPayload struct {
	ResourceID string `json:"resource_id"`
	Title      string `json:"title"`
	Urgent     bool   `json:"urgent,omitempty"`
}

// ResourceUpdatedPayload payload.
type ResourceUpdatedPayload struct {
	ResourceID string `json:"resource_id"`
	NewStatus  string `json:"new_status"`
}

// ResponseCreatedPayload payload.
type ResponseCreatedPayload struct {
	ResponseID string `json:"response_id"`
	RequestID  string `json:"request_id"`
	UserID     string `json:"user_id"`
}

// ResponseUpdatedPayload payload.
type ResponseUpdatedPayload struct {
	ResponseID string `json:"response_id"`
	UserID     string `json:"user_id"`
	NewStatus  string `json:"new_status"`
}

// AuthStateChangedPayload payload.
type AuthStateChangedPayload struct {
	UserID string `json:"user_id,omitempty"`
	Reason string `json:"reason"`
}
