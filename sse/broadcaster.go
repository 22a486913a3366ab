// Package sse provides Server-Sent Events (SSE) support for real-time streaming.
package sse

// Broadcaster is an interface for broadcasting events to clients.
// This allows bindings to depend on an abstraction rather than a concrete Hub.
type Broadcaster interface {
	// Broadcast sends data to all clients subscribed to the topic.
	Broadcast(topic string, data []byte)
}
