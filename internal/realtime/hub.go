// Package realtime fans entry change notifications out to connected
// clients, partitioned by team.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/teamjokbo/jokbo/internal/model"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one change notification. Entry is set for insert/update; delete
// carries only the id of the removed row.
type Event struct {
	Type  EventType    `json:"type"`
	Entry *model.Entry `json:"entry,omitempty"`
	ID    int64        `json:"id"`
}

// subscriberBuffer is the per-connection channel depth. A subscriber that
// falls this far behind is closed rather than allowed to block the hub.
const subscriberBuffer = 16

type Subscriber struct {
	C      <-chan Event
	ch     chan Event
	teamID string
	hub    *Hub
	once   sync.Once
}

// Close tears the subscription down. Safe to call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.ch)
	})
}

// Hub routes events to the subscribers of each team partition. Events are
// delivered to every subscriber in publish order.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

func New() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers a listener for one team's changes.
func (h *Hub) Subscribe(teamID string) *Subscriber {
	ch := make(chan Event, subscriberBuffer)
	sub := &Subscriber{
		C:      ch,
		ch:     ch,
		teamID: teamID,
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[teamID] == nil {
		h.subs[teamID] = make(map[*Subscriber]struct{})
	}
	h.subs[teamID][sub] = struct{}{}

	return sub
}

func (h *Hub) unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[sub.teamID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subs, sub.teamID)
	}
}

// Publish delivers ev to every subscriber of the team. A subscriber whose
// buffer is full is dropped so one slow client cannot stall the rest.
func (h *Hub) Publish(teamID string, ev Event) {
	h.mu.RLock()
	var overflowed []*Subscriber
	for sub := range h.subs[teamID] {
		select {
		case sub.ch <- ev:
		default:
			overflowed = append(overflowed, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range overflowed {
		slog.Warn("realtime subscriber too slow, dropping", "team_id", teamID)
		sub.Close()
	}
}

// PublishInsert notifies subscribers of a freshly created entry.
func (h *Hub) PublishInsert(entry *model.Entry) {
	h.Publish(entry.TeamID, Event{Type: EventInsert, Entry: entry, ID: entry.ID})
}

// PublishUpdate notifies subscribers of an in-place edit.
func (h *Hub) PublishUpdate(entry *model.Entry) {
	h.Publish(entry.TeamID, Event{Type: EventUpdate, Entry: entry, ID: entry.ID})
}

// PublishDelete notifies subscribers that a row was removed.
func (h *Hub) PublishDelete(teamID string, id int64) {
	h.Publish(teamID, Event{Type: EventDelete, ID: id})
}
