package fsrs

import (
	"fmt"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// Rating represents the user's recall quality. Manual marks a state change
// made outside the scheduler and is never a valid review grade.
type Rating int

const (
	Manual Rating = iota
	Again
	Hard
	Good
	Easy
)

// Grades lists the four review grades in order.
var Grades = [4]Rating{Again, Hard, Good, Easy}

func (r Rating) String() string {
	switch r {
	case Manual:
		return "Manual"
	case Again:
		return "Again"
	case Hard:
		return "Hard"
	case Good:
		return "Good"
	case Easy:
		return "Easy"
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsGrade reports whether r is one of Again, Hard, Good or Easy.
func (r Rating) IsGrade() bool { return r >= Again && r <= Easy }

// Card holds the FSRS state of a flashcard.
type Card struct {
	State         domain.CardState
	Due           time.Time
	Stability     float64
	Difficulty    float64
	ElapsedDays   int
	ScheduledDays int
	Reps          int
	Lapses        int
	LearningSteps int
	LastReview    *time.Time
}

// NewCard returns an unreviewed card due at now.
func NewCard(now time.Time) Card {
	return Card{State: domain.CardStateNew, Due: now}
}

func (c Card) clone() Card {
	if c.LastReview != nil {
		lr := *c.LastReview
		c.LastReview = &lr
	}
	return c
}

func (c Card) validate() error {
	if !c.State.IsValid() {
		return fmt.Errorf("%w: card state %q", domain.ErrInvalidMemoryState, c.State)
	}
	if c.Due.IsZero() {
		return fmt.Errorf("%w: card due is not set", domain.ErrInvalidDate)
	}
	if c.ElapsedDays < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidElapsedDays, c.ElapsedDays)
	}
	if c.State != domain.CardStateNew && (c.Difficulty < 1 || c.Stability < SMin) {
		return fmt.Errorf("%w: stability=%v difficulty=%v",
			domain.ErrInvalidMemoryState, c.Stability, c.Difficulty)
	}
	return nil
}

// ReviewLog records a review. All fields but Rating, ElapsedDays and Review
// hold the card's values from before the review.
type ReviewLog struct {
	Rating          Rating
	State           domain.CardState
	Due             time.Time
	LastReview      *time.Time
	Stability       float64
	Difficulty      float64
	ElapsedDays     int
	LastElapsedDays int
	ScheduledDays   int
	LearningSteps   int
	Review          time.Time
}

// RecordLogItem is the outcome of one review: the updated card and its log.
type RecordLogItem struct {
	Card Card
	Log  ReviewLog
}

// Preview holds the outcome for each grade, in Again..Easy order.
type Preview [4]RecordLogItem

// For returns the outcome for a grade. r must satisfy IsGrade.
func (p Preview) For(r Rating) RecordLogItem {
	return p[r-1]
}
