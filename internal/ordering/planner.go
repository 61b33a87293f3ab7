// Package ordering computes new sibling orderings for drag-and-drop
// moves of lists and cards. Planning is pure: callers pass a snapshot
// of the affected rows and receive the renumbered snapshot plus the
// minimal update batch to persist. Every touched sibling sequence is
// renumbered 1..N in full on each move, so drift in stored order
// values self-heals instead of accumulating.
package ordering

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"taskflow/internal/model"
)

var (
	ErrListNotFound = errors.New("list not found in snapshot")
	ErrCardNotFound = errors.New("card not found in snapshot")
)

// ListUpdate assigns a new order value to one list.
type ListUpdate struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// CardUpdate assigns a new owning list and order value to one card.
type CardUpdate struct {
	ID     uuid.UUID `json:"id"`
	ListID uuid.UUID `json:"list_id"`
	Order  int       `json:"order"`
}

// PlanListReorder moves the dragged list to destIndex within its board
// and renumbers the whole sequence. The returned lists are sorted by
// their new order; the batch contains an entry for every list whose
// order changed. An empty batch means the gesture was a no-op.
func PlanListReorder(lists []model.List, draggedID uuid.UUID, destIndex int) ([]model.List, []ListUpdate, error) {
	seq := make([]model.List, len(lists))
	copy(seq, lists)
	sort.Slice(seq, func(i, j int) bool { return seq[i].OrderIndex < seq[j].OrderIndex })

	from := -1
	for i, l := range seq {
		if l.ID == draggedID {
			from = i
			break
		}
	}
	if from == -1 {
		return nil, nil, ErrListNotFound
	}

	dragged := seq[from]
	seq = append(seq[:from], seq[from+1:]...)
	destIndex = clamp(destIndex, len(seq))
	seq = append(seq[:destIndex], append([]model.List{dragged}, seq[destIndex:]...)...)

	var batch []ListUpdate
	for i := range seq {
		order := i + 1
		if seq[i].OrderIndex != order {
			batch = append(batch, ListUpdate{ID: seq[i].ID, Order: order})
			seq[i].OrderIndex = order
		}
	}
	return seq, batch, nil
}

// PlanCardMove moves the dragged card to destIndex within destListID,
// which may differ from the card's current list. All the board's cards
// are passed in; every list's sibling sequence is rebuilt and
// renumbered, and the batch collects each card whose order or owning
// list changed. The dragged card is always included so a move is never
// silently dropped even when its numbers happen to be unchanged.
func PlanCardMove(lists []model.List, cards []model.Card, draggedID uuid.UUID, destListID uuid.UUID, destIndex int) ([]model.Card, []CardUpdate, error) {
	var dragged *model.Card
	snapshot := make([]model.Card, len(cards))
	copy(snapshot, cards)
	for i := range snapshot {
		if snapshot[i].ID == draggedID {
			dragged = &snapshot[i]
			break
		}
	}
	if dragged == nil {
		return nil, nil, ErrCardNotFound
	}

	destKnown := false
	for _, l := range lists {
		if l.ID == destListID {
			destKnown = true
			break
		}
	}
	if !destKnown {
		return nil, nil, ErrListNotFound
	}

	sourceListID := dragged.ListID

	byList := make(map[uuid.UUID][]*model.Card, len(lists))
	for i := range snapshot {
		c := &snapshot[i]
		byList[c.ListID] = append(byList[c.ListID], c)
	}
	for id := range byList {
		seq := byList[id]
		sort.Slice(seq, func(i, j int) bool { return seq[i].OrderIndex < seq[j].OrderIndex })
		byList[id] = seq
	}

	source := byList[sourceListID]
	from := -1
	for i, c := range source {
		if c.ID == draggedID {
			from = i
			break
		}
	}

	// Dropping a card back onto its own slot is a no-op.
	if sourceListID == destListID && clamp(destIndex, len(source)-1) == from {
		return snapshot, nil, nil
	}

	source = append(source[:from], source[from+1:]...)
	byList[sourceListID] = source

	dragged.ListID = destListID
	dest := byList[destListID]
	destIndex = clamp(destIndex, len(dest))
	dest = append(dest[:destIndex], append([]*model.Card{dragged}, dest[destIndex:]...)...)
	byList[destListID] = dest

	var batch []CardUpdate
	for _, l := range lists {
		for i, c := range byList[l.ID] {
			order := i + 1
			if c.OrderIndex != order || c.ListID != l.ID || c.ID == draggedID {
				batch = append(batch, CardUpdate{ID: c.ID, ListID: l.ID, Order: order})
			}
			c.OrderIndex = order
			c.ListID = l.ID
		}
	}

	return snapshot, batch, nil
}

// NextOrderIndex is the order a newly created sibling takes.
func NextOrderIndex(siblingCount int) int {
	return siblingCount + 1
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
