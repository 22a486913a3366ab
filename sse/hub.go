package sse

import (
	"path/filepath"
	"sync"

	"github.com/kbukum/reactive/logger"
)

// Client represents a connected SSE client.
type Client struct {
	id     string      // Unique client ID
	topics []string    // Topic patterns the client subscribed to; empty means all
	events chan []byte // Channel for sending events to client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTopics restricts the client to the given topic patterns.
// Patterns use glob-style matching (e.g., "search" or "cells/*").
// A client with no topics receives events for every topic.
func WithTopics(topics ...string) ClientOption {
	return func(c *Client) {
		c.topics = append(c.topics, topics...)
	}
}

// NewClient creates a new SSE client.
func NewClient(id string, opts ...ClientOption) *Client {
	c := &Client{
		id:     id,
		events: make(chan []byte, 256), // Buffered channel
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Topics returns the topic patterns the client subscribed to.
func (c *Client) Topics() []string {
	return c.topics
}

// Events returns the channel for receiving events.
func (c *Client) Events() <-chan []byte {
	return c.events
}

// matches reports whether the client should receive events for topic.
func (c *Client) matches(topic string) bool {
	if len(c.topics) == 0 {
		return true
	}
	for _, pattern := range c.topics {
		matched, err := filepath.Match(pattern, topic)
		if err != nil {
			logger.Error("topic pattern match error", logger.Fields(
				logger.FieldClientID, c.id,
				"pattern", pattern,
				logger.FieldError, err.Error(),
			))
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Send sends data to the client's event channel.
// Returns false if the channel is full (client is slow).
func (c *Client) Send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		// Channel full, client is too slow
		logger.Warn("client channel full, dropping message", logger.Fields(
			logger.FieldClientID, c.id,
		))
		return false
	}
}

// Close closes the client's event channel.
func (c *Client) Close() {
	close(c.events)
}

// Hub manages SSE client connections and topic-based broadcasting.
type Hub struct {
	clients    map[string]*Client // client ID -> Client
	register   chan *Client       // Channel for registering clients
	unregister chan *Client       // Channel for unregistering clients
	broadcast  chan *Message      // Channel for broadcasting messages
	done       chan struct{}      // Signals the hub to stop
	stopped    bool               // Whether the hub has been stopped
	mu         sync.RWMutex       // Protects clients map for reads during matching
}

// Message represents a message to broadcast.
type Message struct {
	Topic string // Topic the event belongs to
	Data  []byte // Event data to send
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop.
// It blocks until Stop is called. This should be run in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("client registered", logger.Fields(
				logger.FieldClientID, client.id,
				"total_clients", total,
			))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				client.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("client unregistered", logger.Fields(
				logger.FieldClientID, client.id,
				"total_clients", total,
			))

		case msg := <-h.broadcast:
			h.broadcastToTopic(msg.Topic, msg.Data)
		}
	}
}

// Stop signals the hub to shut down. It closes all client connections
// and causes Run to return. Safe to call multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// closeAllClients disconnects all clients during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
	}
	logger.Debug("all clients closed during shutdown")
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends data to all clients subscribed to the topic.
func (h *Hub) Broadcast(topic string, data []byte) {
	h.broadcast <- &Message{
		Topic: topic,
		Data:  data,
	}
}

// broadcastToTopic sends data to subscribed clients.
// This is called from the hub's main goroutine.
func (h *Hub) broadcastToTopic(topic string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if client.matches(topic) {
			if client.Send(data) {
				sent++
			}
		}
	}

	if sent > 0 {
		logger.Debug("broadcast sent", logger.Fields(
			logger.FieldTopic, topic,
			"sent_count", sent,
			"data_size", len(data),
		))
	} else {
		logger.Debug("no clients subscribed to topic", logger.Fields(
			logger.FieldTopic, topic,
			"total_clients", len(h.clients),
		))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ClientIDs returns a list of all connected client IDs.
func (h *Hub) ClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// GetClient returns a client by ID, or nil if not found.
func (h *Hub) GetClient(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// Ensure Hub implements Broadcaster.
var _ Broadcaster = (*Hub)(nil)
