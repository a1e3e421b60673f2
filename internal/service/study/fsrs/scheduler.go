package fsrs

import (
	"fmt"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// Scheduler computes review outcomes for one card at one review time.
// Outcomes are computed lazily and memoized per grade.
type Scheduler interface {
	Preview() (Preview, error)
	Review(rating Rating) (RecordLogItem, error)
}

// SeedStrategy builds the fuzz seed for a review. current already has the
// incremented review count and the new review time applied.
type SeedStrategy func(review time.Time, current Card) string

// DefaultSeedStrategy seeds fuzz from the review time, review count and
// memory state.
func DefaultSeedStrategy(review time.Time, current Card) string {
	return Seed(review, current.Reps, current.Difficulty, current.Stability)
}

// statePolicy is the per-state transition logic of a scheduler variant.
type statePolicy interface {
	newState(r Rating) RecordLogItem
	learningState(r Rating) RecordLogItem
	reviewState(r Rating) RecordLogItem
}

// reviewContext is the state shared by both scheduler variants.
type reviewContext struct {
	model       *Model
	steps       LearningStepsStrategy
	last        Card
	current     Card
	reviewTime  time.Time
	elapsedDays int
	fuzz        Fuzzer
	memo        map[Rating]RecordLogItem
}

func newReviewContext(model *Model, steps LearningStepsStrategy, seed SeedStrategy, card Card, now time.Time) (*reviewContext, error) {
	if now.IsZero() {
		return nil, fmt.Errorf("%w: review time is not set", domain.ErrInvalidDate)
	}
	if err := card.validate(); err != nil {
		return nil, err
	}

	elapsed := 0
	if card.State != domain.CardStateNew && card.LastReview != nil {
		elapsed = DateDiffInDays(*card.LastReview, now)
		if elapsed < 0 {
			return nil, fmt.Errorf("%w: review at %s precedes last review at %s",
				domain.ErrInvalidElapsedDays, now.Format(time.RFC3339), card.LastReview.Format(time.RFC3339))
		}
	}

	current := card.clone()
	reviewed := now
	current.LastReview = &reviewed
	current.ElapsedDays = elapsed
	current.Reps++

	params := model.params
	return &reviewContext{
		model:       model,
		steps:       steps,
		last:        card.clone(),
		current:     current,
		reviewTime:  now,
		elapsedDays: elapsed,
		fuzz: Fuzzer{
			Seed:            seed(now, current),
			Enabled:         params.EnableFuzz,
			MaximumInterval: params.MaximumInterval,
		},
		memo: make(map[Rating]RecordLogItem, 4),
	}, nil
}

func (c *reviewContext) review(p statePolicy, r Rating) (RecordLogItem, error) {
	if !r.IsGrade() {
		return RecordLogItem{}, fmt.Errorf("%w: %s", domain.ErrInvalidGrade, r)
	}
	if item, ok := c.memo[r]; ok {
		return item, nil
	}

	var item RecordLogItem
	switch c.last.State {
	case domain.CardStateNew:
		item = p.newState(r)
	case domain.CardStateLearning, domain.CardStateRelearning:
		item = p.learningState(r)
	case domain.CardStateReview:
		item = p.reviewState(r)
	}
	return item, nil
}

func (c *reviewContext) preview(p statePolicy) (Preview, error) {
	var out Preview
	for i, r := range Grades {
		item, err := c.review(p, r)
		if err != nil {
			return Preview{}, err
		}
		out[i] = item
	}
	return out, nil
}

func (c *reviewContext) buildLog(r Rating) ReviewLog {
	var lastReview *time.Time
	if c.last.LastReview != nil {
		lr := *c.last.LastReview
		lastReview = &lr
	}
	return ReviewLog{
		Rating:          r,
		State:           c.last.State,
		Due:             c.last.Due,
		LastReview:      lastReview,
		Stability:       c.last.Stability,
		Difficulty:      c.last.Difficulty,
		ElapsedDays:     c.elapsedDays,
		LastElapsedDays: c.last.ElapsedDays,
		ScheduledDays:   c.last.ScheduledDays,
		LearningSteps:   c.last.LearningSteps,
		Review:          c.reviewTime,
	}
}

func (c *reviewContext) record(r Rating, next Card) RecordLogItem {
	item := RecordLogItem{Card: next, Log: c.buildLog(r)}
	c.memo[r] = item
	return item
}

// scheduleDays moves next into Review with an interval of ivl days.
func (c *reviewContext) scheduleDays(next *Card, ivl int) {
	next.State = domain.CardStateReview
	next.LearningSteps = 0
	next.ScheduledDays = ivl
	next.Due = addDays(c.reviewTime, ivl)
}

// retrievability is the recall probability of the pre-review card.
func (c *reviewContext) retrievability() float64 {
	return c.model.ForgettingCurve(float64(c.elapsedDays), c.last.Stability)
}

// recallStates sets the post-recall memory state for Hard, Good and Easy.
// Intervals are left to the caller.
func (c *reviewContext) recallStates(r float64) (hard, good, easy Card) {
	d, s := c.last.Difficulty, c.last.Stability
	m := c.model

	hard, good, easy = c.current.clone(), c.current.clone(), c.current.clone()
	hard.Difficulty = m.NextDifficulty(d, Hard)
	good.Difficulty = m.NextDifficulty(d, Good)
	easy.Difficulty = m.NextDifficulty(d, Easy)
	hard.Stability = m.NextRecallStability(d, s, r, Hard)
	good.Stability = m.NextRecallStability(d, s, r, Good)
	easy.Stability = m.NextRecallStability(d, s, r, Easy)
	return hard, good, easy
}

func (c *reviewContext) interval(stability float64) int {
	return c.model.NextInterval(stability, c.elapsedDays, c.fuzz)
}
