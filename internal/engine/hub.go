package engine

import (
	"slices"
	"sync"
)

// UpdateType identifies a notification.
type UpdateType string

const (
	UpdateGame    UpdateType = "game"
	UpdateSettled UpdateType = "settled"
	UpdateClear   UpdateType = "clear"
)

// Update is delivered to room subscribers. State is a private copy.
type Update struct {
	Type   UpdateType  `json:"type"`
	RoomID string      `json:"roomId"`
	State  *HandState  `json:"state,omitempty"`
	Auto   *AutoAction `json:"auto,omitempty"`
}

// Handler receives updates on the goroutine that changed the room, after the
// room's lock is released. Handlers may call back into the engine.
type Handler func(Update)

// Hub is a publish/subscribe registry keyed by room id.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[uint64]Handler
	nextID uint64
}

// NewHub creates an empty registry.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[uint64]Handler)}
}

// Subscribe registers h for roomID. The returned func unsubscribes and is
// safe to call more than once.
func (h *Hub) Subscribe(roomID string, handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[uint64]Handler)
		h.rooms[roomID] = subs
	}
	subs[id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.rooms[roomID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Publish delivers u to every subscriber of u.RoomID.
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	subs := h.rooms[u.RoomID]
	ids := make([]uint64, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, subs[id])
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(u)
	}
}

// Close removes every subscriber of roomID.
func (h *Hub) Close(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomID)
}

// Subscribers reports how many handlers roomID has.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}
