package sse

import "time"

// Event type constants used on the wire.
const (
	// EventTypeConnected is sent when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive is used for keep-alive comments.
	EventTypeKeepAlive = "keepalive"

	// EventTypeValue carries a settled cell value.
	EventTypeValue = "value"

	// EventTypeError is sent when an error occurs.
	EventTypeError = "error"
)

// ValueEvent is the JSON payload broadcast when a bound cell settles
// on a new value.
type ValueEvent struct {
	Topic     string    `json:"topic"`
	Value     any       `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// ConnectedEvent is sent when a client successfully connects.
type ConnectedEvent struct {
	ClientID string   `json:"client_id"`
	Topics   []string `json:"topics,omitempty"`
}
