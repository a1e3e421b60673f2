package fsrs

import (
	"fmt"
	"math"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// FSRS is the scheduling facade: it owns a Model and picks the scheduler
// variant from the parameters.
type FSRS struct {
	model *Model
	steps LearningStepsStrategy
	seed  SeedStrategy
}

// Option customizes an FSRS instance.
type Option func(*FSRS)

// WithLearningStepsStrategy replaces BasicLearningStepsStrategy.
func WithLearningStepsStrategy(s LearningStepsStrategy) Option {
	return func(f *FSRS) { f.steps = s }
}

// WithSeedStrategy replaces DefaultSeedStrategy.
func WithSeedStrategy(s SeedStrategy) Option {
	return func(f *FSRS) { f.seed = s }
}

// New creates an FSRS instance from params.
func New(params Parameters, opts ...Option) (*FSRS, error) {
	model, err := NewModel(params)
	if err != nil {
		return nil, err
	}
	f := &FSRS{
		model: model,
		steps: BasicLearningStepsStrategy,
		seed:  DefaultSeedStrategy,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Model returns the underlying memory model.
func (f *FSRS) Model() *Model { return f.model }

// Parameters returns a copy of the active parameters.
func (f *FSRS) Parameters() Parameters { return f.model.Parameters() }

// WithParameters returns a copy of f with patch applied. The receiver is
// left untouched.
func (f *FSRS) WithParameters(patch PartialParameters) (*FSRS, error) {
	model, err := f.model.Update(patch)
	if err != nil {
		return nil, err
	}
	return &FSRS{model: model, steps: f.steps, seed: f.seed}, nil
}

// Scheduler returns the scheduler for reviewing card at now.
func (f *FSRS) Scheduler(card Card, now time.Time) (Scheduler, error) {
	ctx, err := newReviewContext(f.model, f.steps, f.seed, card, now)
	if err != nil {
		return nil, err
	}
	if f.model.params.EnableShortTerm {
		return &shortTermScheduler{ctx}, nil
	}
	return &longTermScheduler{ctx}, nil
}

// Repeat previews the outcome of every grade.
func (f *FSRS) Repeat(card Card, now time.Time) (Preview, error) {
	s, err := f.Scheduler(card, now)
	if err != nil {
		return Preview{}, err
	}
	return s.Preview()
}

// Next reviews card with a single grade.
func (f *FSRS) Next(card Card, now time.Time, rating Rating) (RecordLogItem, error) {
	if !rating.IsGrade() {
		return RecordLogItem{}, fmt.Errorf("%w: %s", domain.ErrInvalidGrade, rating)
	}
	s, err := f.Scheduler(card, now)
	if err != nil {
		return RecordLogItem{}, err
	}
	return s.Review(rating)
}

// Retrievability returns the probability of recalling card at now.
// New cards have no memory and return 0.
func (f *FSRS) Retrievability(card Card, now time.Time) float64 {
	if card.State == domain.CardStateNew || card.Stability <= 0 {
		return 0
	}
	elapsed := 0
	if card.LastReview != nil {
		elapsed = max(DateDiffInDays(*card.LastReview, now), 0)
	}
	return f.model.ForgettingCurve(float64(elapsed), card.Stability)
}

// RetrievabilityPercent formats Retrievability as a percentage with two
// decimals, e.g. "90.00%".
func (f *FSRS) RetrievabilityPercent(card Card, now time.Time) string {
	r := f.Retrievability(card, now)
	return fmt.Sprintf("%.2f%%", math.Round(r*10000)/100)
}

// Forget resets card to New, due at now. Review and lapse counters are kept
// unless resetCount is set. The returned log uses the Manual rating.
func (f *FSRS) Forget(card Card, now time.Time, resetCount bool) RecordLogItem {
	scheduled := 0
	if card.State != domain.CardStateNew {
		scheduled = max(DateDiffInDays(card.Due, now), 0)
	}

	log := ReviewLog{
		Rating:          Manual,
		State:           card.State,
		Due:             card.Due,
		LastReview:      card.clone().LastReview,
		Stability:       card.Stability,
		Difficulty:      card.Difficulty,
		ElapsedDays:     0,
		LastElapsedDays: card.ElapsedDays,
		ScheduledDays:   scheduled,
		LearningSteps:   card.LearningSteps,
		Review:          now,
	}

	next := card.clone()
	next.State = domain.CardStateNew
	next.Due = now
	next.Stability = 0
	next.Difficulty = 0
	next.ElapsedDays = 0
	next.ScheduledDays = 0
	next.LearningSteps = 0
	if resetCount {
		next.Reps = 0
		next.Lapses = 0
	}
	return RecordLogItem{Card: next, Log: log}
}

// Rollback undoes the review described by log, restoring the card it was
// taken from. Manual logs cannot be rolled back.
func (f *FSRS) Rollback(card Card, log ReviewLog) (Card, error) {
	if !log.Rating.IsGrade() {
		return Card{}, fmt.Errorf("%w: cannot roll back a %s review", domain.ErrInvalidGrade, log.Rating)
	}

	prev := card.clone()
	prev.State = log.State
	prev.Due = log.Due
	prev.Stability = log.Stability
	prev.Difficulty = log.Difficulty
	prev.ElapsedDays = log.LastElapsedDays
	prev.ScheduledDays = log.ScheduledDays
	prev.LearningSteps = log.LearningSteps
	prev.LastReview = nil
	if log.LastReview != nil {
		lr := *log.LastReview
		prev.LastReview = &lr
	}

	prev.Reps = max(0, card.Reps-1)
	if log.Rating == Again && log.State == domain.CardStateReview {
		prev.Lapses = max(0, card.Lapses-1)
	}
	return prev, nil
}
