package study

import (
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// GradeOutcome is the card a grade would produce, without persisting it.
type GradeOutcome struct {
	Grade         domain.ReviewGrade
	State         domain.CardState
	Due           time.Time
	ScheduledDays int
	Stability     float64
	Difficulty    float64
}

// CardPreview lists the outcome of each grade, in AGAIN..EASY order.
type CardPreview struct {
	Card           *domain.Card
	Retrievability float64
	Outcomes       []GradeOutcome
}

// CardRetention is the current recall probability of a card.
type CardRetention struct {
	Card           *domain.Card
	Retrievability float64
	Percent        string
}

// RescheduleResult reports whether replaying a card's history moved it.
type RescheduleResult struct {
	Card     *domain.Card
	Replayed int
	Changed  bool
}

// BatchRescheduleResult summarizes a best-effort batch reschedule.
type BatchRescheduleResult struct {
	Processed int
	Changed   int
	Failed    []domain.ItemFailure
}

// ImportHistoryResult summarizes an imported review history. Log writes
// are best-effort: failures are listed and the rest are kept.
type ImportHistoryResult struct {
	Card   *domain.Card
	Logged int
	Failed []domain.ItemFailure
}
