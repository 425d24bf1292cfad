package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Message is a single server-sent event
type Message struct {
	Event string
	Data  string
}

// WriteTo writes the message in text/event-stream framing
func (m Message) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.Event, m.Data)
	return int64(n), err
}

// Hub fans events out to every stream watching one session
type Hub struct {
	clients map[chan Message]struct{}
	closed  bool
	mu      deadlock.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a new client channel. It returns nil once the hub is closed.
func (h *Hub) Subscribe() chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	client := make(chan Message, BufferSize)
	h.clients[client] = struct{}{}
	return client
}

// Unsubscribe removes a client channel and closes it
func (h *Hub) Unsubscribe(client chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// ClientCount returns the number of connected streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client without blocking. A client
// whose buffer is full misses the event.
func (h *Hub) Broadcast(event, data string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Event: event, Data: data}
	sent := 0
	for client := range h.clients {
		select {
		case client <- msg:
			sent++
		default:
			log.Warn().Str("event", event).Msg("sse client buffer full, dropping event")
		}
	}
	if debug {
		log.Debug().Str("event", event).Msgf("broadcast to %d/%d clients", sent, len(h.clients))
	}
}

// BroadcastJSON encodes v and broadcasts it
func (h *Hub) BroadcastJSON(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to encode sse payload")
		return
	}
	h.Broadcast(event, string(data))
}

// Close tells every client the session is gone and disconnects them
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		select {
		case client <- Message{Event: EventSessionClosed, Data: "{}"}:
		default:
		}
		close(client)
		delete(h.clients, client)
	}
}
