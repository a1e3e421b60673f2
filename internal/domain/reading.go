package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority bounds for incremental-reading items.
const (
	MinPriority = 1
	MaxPriority = 10
)

// IRState is the scheduling state of an incremental-reading item.
type IRState struct {
	Priority  int
	LastRead  *time.Time
	ReadCount int
	Due       time.Time
	// Position orders topics in the reading queue; nil for extracts.
	Position *float64
}

// ReadingItem is a topic or extract in the incremental-reading queue.
type ReadingItem struct {
	ID   uuid.UUID
	Kind ItemKind
	IRState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDue reports whether the item belongs in the queue of the day that ends
// at nextDayStart.
func (i *ReadingItem) IsDue(nextDayStart time.Time) bool {
	return i.Due.Before(nextDayStart)
}
