package domain

// EventType tags a notification event published on an order transition.
type EventType string

const (
	EventOrderCreated       EventType = "ORDER_CREATED"
	EventOrderStatusUpdated EventType = "ORDER_STATUS_UPDATED"
	EventOrderCompleted     EventType = "ORDER_COMPLETED"
)

// Event is the fan-out payload. It is ephemeral: delivery is best-effort from
// this side, and under at-least-once queue semantics subscribers may see
// duplicates. No dedup is attempted.
type Event struct {
	Type  EventType `json:"type"`
	Order Order     `json:"order"`
}
