package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"jobscreen-engine/internal/events"
)

// keepaliveEvery keeps intermediaries from reaping idle SSE streams.
const keepaliveEvery = 25 * time.Second

type EventsHandler struct {
	Hub *events.Hub
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "streaming unsupported")
		return
	}

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	reqID := RequestIDFrom(r.Context())
	writeSSE(w, events.MakeEvent(reqID, "ping", 1, nil))
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveEvery)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			writeSSE(w, events.MakeEvent(reqID, "ping", 1, nil))
			flusher.Flush()
		case msg := <-ch:
			writeSSE(w, msg)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, payload string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
}
