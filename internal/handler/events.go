package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/realtime"
)

type eventsHandler struct {
	hub    *realtime.Hub
	teamID string
}

func NewEventsHandler(hub *realtime.Hub, teamID string) *eventsHandler {
	return &eventsHandler{
		hub:    hub,
		teamID: teamID,
	}
}

// Stream serves the team's change feed over server-sent events. The
// subscription lives for the duration of the request and is torn down when
// the client disconnects or the hub drops a subscriber that stopped reading.
func (h *eventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	user := ctxkeys.User(r.Context())
	sub := h.hub.Subscribe(h.teamID)
	defer sub.Close()

	slog.Debug("realtime subscriber connected", "team_id", h.teamID, "email", user.Email)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.C:
			if !open {
				return
			}

			payload, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode realtime event", "error", err)
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}
