// Package realtime fans committed order changes out to the other
// viewers of a board over websockets. Delivery is fire-and-forget:
// at most once, no ordering across boards, no catch-up for viewers
// that were offline. Persistence never waits on, or fails because of,
// a broadcast.
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event types pushed to board groups. Payload shapes match the
// corresponding persistence request bodies.
const (
	EventListReordered = "list:reordered"
	EventCardMoved     = "card:moved"
	EventListCreated   = "list:created"
	EventCardCreated   = "card:created"
)

// Event is a single notification scoped to one board.
type Event struct {
	Type    string    `json:"type"`
	BoardID uuid.UUID `json:"board_id"`
	Payload any       `json:"payload,omitempty"`
}

// Hub tracks which connections are viewing which board. A connection
// joins at most one board group at a time; rejoining switches groups.
type Hub struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{boards: make(map[uuid.UUID]map[*Client]struct{})}
}

// Join adds the client to boardID's group, leaving its previous group
// first.
func (h *Hub) Join(c *Client, boardID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c)
	if h.boards[boardID] == nil {
		h.boards[boardID] = make(map[*Client]struct{})
	}
	h.boards[boardID][c] = struct{}{}
	c.boardID = boardID
}

// Leave removes the client from whatever group it is in.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
}

func (h *Hub) leaveLocked(c *Client) {
	if c.boardID == uuid.Nil {
		return
	}
	if members, ok := h.boards[c.boardID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.boards, c.boardID)
		}
	}
	c.boardID = uuid.Nil
}

// Publish delivers the event to every member of the board's group
// except the origin connection, which already applied the change
// optimistically. Slow consumers are skipped rather than blocked on.
func (h *Hub) Publish(ev Event, originID uuid.UUID) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("realtime: dropping %s event for board %s: %v", ev.Type, ev.BoardID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.boards[ev.BoardID] {
		if c.ID == originID {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// MemberCount reports the current group size for a board.
func (h *Hub) MemberCount(boardID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}
