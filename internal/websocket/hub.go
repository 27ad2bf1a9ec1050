// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful path (e.g. SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message is an outbound WebSocket message.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// InboundMessage is a message read from a client. Data is decoded by the
// handler for its type.
type InboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ConnectFunc runs on the hub goroutine when a client registers. Use it to
// send initial state with Hub.SendTo.
type ConnectFunc func(c *Client)

// MessageFunc handles a non-ping inbound message on the client's read
// goroutine.
type MessageFunc func(c *Client, msg InboundMessage)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	handlerMu sync.RWMutex
	onConnect ConnectFunc
	onMessage MessageFunc
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// SetHandlers installs the connect and message callbacks. Either may be nil.
func (h *Hub) SetHandlers(onConnect ConnectFunc, onMessage MessageFunc) {
	h.handlerMu.Lock()
	defer h.handlerMu.Unlock()
	h.onConnect = onConnect
	h.onMessage = onMessage
}

// RunWithContext runs the hub until ctx is canceled, then closes every
// client and returns ctx.Err(). Designed for suture supervision.
//
// DETERMINISM: Uses priority-based selection:
//   - Priority 1: Context cancellation (shutdown)
//   - Priority 2: Client lifecycle events (Register/Unregister)
//   - Priority 3: Broadcast messages
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("websocket client connected")

	h.handlerMu.RLock()
	onConnect := h.onConnect
	h.handlerMu.RUnlock()
	if onConnect != nil {
		onConnect(client)
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	removed := h.removeLocked(client)
	total := len(h.clients)
	h.mu.Unlock()

	if removed {
		logging.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("websocket client disconnected")
	}
}

// removeLocked closes and forgets client. Must be called with mu held.
func (h *Hub) removeLocked(client *Client) bool {
	if _, ok := h.clients[client]; !ok {
		return false
	}
	delete(h.clients, client)
	close(client.send)
	metrics.WSConnections.Dec()
	return true
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClientsLocked returns clients in ID order. Must be called with mu held.
func (h *Hub) sortedClientsLocked() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients sends a message to every client in ID order. Clients
// whose buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClientsLocked() {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
		h.removeLocked(client)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClientsLocked() {
		h.removeLocked(client)
	}
}

// BroadcastJSON queues a message for every connected client. It never
// blocks; a full queue drops the message.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		metrics.WSErrors.WithLabelValues("broadcast_full").Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// SendTo queues a message for one client. It reports false when the client
// is gone or its buffer is full.
func (h *Hub) SendTo(c *Client, messageType string, data interface{}) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[c] {
		return false
	}
	select {
	case c.send <- Message{Type: messageType, Data: data}:
		return true
	default:
		return false
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dispatch(c *Client, msg InboundMessage) {
	if msg.Type == MessageTypePing {
		h.SendTo(c, MessageTypePong, nil)
		return
	}

	h.handlerMu.RLock()
	onMessage := h.onMessage
	h.handlerMu.RUnlock()
	if onMessage != nil {
		onMessage(c, msg)
	}
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
