package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/services"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	Channel chan string
}

// SSEHandler pushes change notifications to connected clients. The UI
// re-fetches the snapshot and recomputes its views on every event, so
// the payload only needs to say what changed, not carry the data.
type SSEHandler struct {
	mu             sync.RWMutex
	sseClients     map[*SSEClient]bool
	messageCounter uint64
	heartbeat      *time.Ticker
	stopHeartbeat  chan bool
	logger         *logging.Logger
}

// NewSSEHandler creates a new SSE handler and starts its heartbeat
func NewSSEHandler() *SSEHandler {
	handler := &SSEHandler{
		sseClients:    make(map[*SSEClient]bool),
		stopHeartbeat: make(chan bool),
		logger:        logging.WithPrefix("SSE"),
	}

	handler.startHeartbeat()
	return handler
}

// Handle serves the event stream for one client connection
func (h *SSEHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Infof("New client connected from %s", r.RemoteAddr)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	client := &SSEClient{
		Channel: make(chan string, 100),
	}

	h.mu.Lock()
	h.sseClients[client] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.sseClients, client)
		h.mu.Unlock()
		close(client.Channel)
		h.logger.Info("Client disconnected")
	}()

	fmt.Fprintf(w, "event: connection\ndata: SSE connection established\n\n")
	flusher.Flush()

	for {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return
			}
			fmt.Fprint(w, message)
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// HandleDatabaseChange forwards a change stream event to all clients
func (h *SSEHandler) HandleDatabaseChange(event services.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Failed to encode change event: %v", err)
		return
	}

	switch event.Collection {
	case "scores":
		h.BroadcastToAllClients("scores", string(payload))
	case "config":
		h.BroadcastToAllClients("roster", string(payload))
	}
}

// BroadcastToAllClients sends a message with sequence ID to all connected clients
func (h *SSEHandler) BroadcastToAllClients(eventType, data string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.sseClients) == 0 {
		return
	}

	msgID := atomic.AddUint64(&h.messageCounter, 1)
	message := fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", msgID, eventType, data)

	for client := range h.sseClients {
		select {
		case client.Channel <- message:
		default:
			h.logger.Warn("Client channel full, skipping message")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sseClients)
}

func (h *SSEHandler) startHeartbeat() {
	h.heartbeat = time.NewTicker(30 * time.Second)

	go func() {
		for {
			select {
			case <-h.heartbeat.C:
				if h.ClientCount() > 0 {
					h.BroadcastToAllClients("heartbeat", "keep-alive")
				}
			case <-h.stopHeartbeat:
				h.heartbeat.Stop()
				return
			}
		}
	}()
}

// Stop stops the heartbeat timer
func (h *SSEHandler) Stop() {
	if h.stopHeartbeat != nil {
		close(h.stopHeartbeat)
	}
	if h.heartbeat != nil {
		h.heartbeat.Stop()
	}
}
