package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/sse"
)

// HandleSSE streams a session's events to one listening device
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	code, room, err := ctx.room(r)
	if err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies
	flusher.Flush()

	client := room.Hub.Subscribe()
	if client == nil {
		sse.Message{Event: sse.EventSessionClosed, Data: "{}"}.WriteTo(w)
		flusher.Flush()
		return
	}
	defer room.Hub.Unsubscribe(client)

	if debug {
		log.Debug().Str("code", code).Int("clients", room.Hub.ClientCount()).Msg("sse client connected")
	}

	// Start every stream from the current phase
	phase, err := json.Marshal(room.Session.Phase())
	if err == nil {
		sse.Message{Event: sse.EventPhase, Data: string(phase)}.WriteTo(w)
		flusher.Flush()
	}

	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			if debug {
				log.Debug().Str("code", code).Msg("sse client disconnected")
			}
			return
		case msg, open := <-client:
			if !open {
				return
			}
			if _, err := msg.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
