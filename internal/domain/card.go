package domain

import (
	"time"

	"github.com/google/uuid"
)

// Card is a persisted flashcard with its FSRS memory state.
type Card struct {
	ID            uuid.UUID
	State         CardState
	Due           time.Time
	Stability     float64
	Difficulty    float64
	ElapsedDays   int
	ScheduledDays int
	Reps          int
	Lapses        int
	LearningSteps int
	LastReview    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDue returns true if the card needs review at the given time.
//   - NEW cards are always due.
//   - Other cards are due when Due <= now.
func (c *Card) IsDue(now time.Time) bool {
	if c.State == CardStateNew {
		return true
	}
	return !c.Due.After(now)
}

// ReviewLog records one review event. Every field except Grade, ElapsedDays
// and ReviewedAt holds the card's value from before the review, so the
// entry is enough to roll the card back.
type ReviewLog struct {
	ID              uuid.UUID
	CardID          uuid.UUID
	Grade           ReviewGrade
	State           CardState
	Due             time.Time
	LastReview      *time.Time
	Stability       float64
	Difficulty      float64
	ElapsedDays     int
	LastElapsedDays int
	ScheduledDays   int
	LearningSteps   int
	ReviewedAt      time.Time
}
