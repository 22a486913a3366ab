package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/reactive/logger"
)

// KeepAliveInterval is how often keep-alive comments are written to
// idle connections. It should be below typical proxy timeouts (60s).
const KeepAliveInterval = 30 * time.Second

// ServeSSE handles an SSE connection for a specific client.
// This is the main entry point called from HTTP handlers.
func ServeSSE(hub *Hub, w http.ResponseWriter, r *http.Request, clientID string, opts ...ClientOption) {
	// Check SSE support (requires http.Flusher interface)
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported", logger.Fields(
			logger.FieldClientID, clientID,
		))
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Disable write deadline for SSE connections using ResponseController.
	// SSE connections are long-lived and shouldn't be terminated by the
	// server's WriteTimeout setting.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("could not disable write deadline", logger.Fields(
			logger.FieldClientID, clientID,
			logger.FieldError, err.Error(),
		))
		// Continue anyway - the connection might still work with keep-alives
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Create and register client with options
	client := NewClient(clientID, opts...)
	hub.Register(client)
	defer func() {
		hub.Unregister(client)
	}()

	// Send initial connection event
	connectedEvent := ConnectedEvent{
		ClientID: clientID,
		Topics:   client.Topics(),
	}
	connectedData, _ := json.Marshal(connectedEvent)
	_, _ = fmt.Fprintf(w, "event: %s\n", EventTypeConnected)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", connectedData)
	flusher.Flush()

	logger.Debug("client connected", logger.Fields(
		logger.FieldClientID, clientID,
		"topics", client.Topics(),
		"remote_addr", r.RemoteAddr,
	))

	// Event loop - stream events to client
	keepAlive := time.NewTicker(KeepAliveInterval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			// Client disconnected (browser closed, network issue, etc.)
			logger.Debug("client disconnected", logger.Fields(
				logger.FieldClientID, clientID,
				"reason", ctx.Err().Error(),
			))
			return

		case event, ok := <-client.Events():
			if !ok {
				// Channel closed, client unregistered
				logger.Debug("events channel closed", logger.Fields(
					logger.FieldClientID, clientID,
				))
				return
			}
			// Send event in SSE format: event: value\ndata: {...}\n\n
			_, _ = fmt.Fprintf(w, "event: %s\n", EventTypeValue)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()

		case <-keepAlive.C:
			// SSE spec: lines starting with : are comments. Keeps the
			// connection alive through proxies and load balancers.
			_, _ = fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}
