package fsrs

import (
	"fmt"
	"slices"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// ReviewInput is one historical review to replay. State, Due, Stability and
// Difficulty are only read for Manual reviews, where they describe the
// state the card was set to.
type ReviewInput struct {
	Rating     Rating
	Review     time.Time
	State      *domain.CardState
	Due        *time.Time
	Stability  *float64
	Difficulty *float64
}

// RescheduleOptions controls Reschedule.
type RescheduleOptions struct {
	// IncludeManual replays Manual reviews instead of skipping them.
	IncludeManual bool
	// UpdateMemoryState carries the replayed stability and difficulty onto
	// the manual reschedule item.
	UpdateMemoryState bool
	// Now stamps the manual reschedule item; zero means time.Now.
	Now time.Time
	// FirstCard is the card replay starts from; nil means a new card due
	// at the current card's due date.
	FirstCard *Card
}

// RescheduleResult holds every replayed outcome plus, when the replay
// disagrees with the current card, the Manual item that realigns it.
type RescheduleResult struct {
	Collections    []RecordLogItem
	RescheduleItem *RecordLogItem
}

// Replay applies reviews to initial in the given order.
func (f *FSRS) Replay(initial Card, reviews []ReviewInput) ([]RecordLogItem, error) {
	cur := initial
	out := make([]RecordLogItem, 0, len(reviews))
	for i, rv := range reviews {
		var (
			item RecordLogItem
			err  error
		)
		if rv.Rating == Manual {
			item, err = f.applyManual(cur, rv)
		} else {
			item, err = f.Next(cur, rv.Review, rv.Rating)
		}
		if err != nil {
			return nil, fmt.Errorf("replay review %d: %w", i, err)
		}
		out = append(out, item)
		cur = item.Card
	}
	return out, nil
}

// Reschedule replays reviews in time order from a fresh card and compares the
// result with current.
func (f *FSRS) Reschedule(current Card, reviews []ReviewInput, opts RescheduleOptions) (RescheduleResult, error) {
	sorted := make([]ReviewInput, 0, len(reviews))
	for _, rv := range reviews {
		if rv.Rating == Manual && !opts.IncludeManual {
			continue
		}
		sorted = append(sorted, rv)
	}
	slices.SortStableFunc(sorted, func(a, b ReviewInput) int {
		return a.Review.Compare(b.Review)
	})

	initial := NewCard(current.Due)
	if opts.FirstCard != nil {
		initial = opts.FirstCard.clone()
	}

	collections, err := f.Replay(initial, sorted)
	if err != nil {
		return RescheduleResult{}, err
	}

	result := RescheduleResult{Collections: collections}
	if len(collections) == 0 {
		return result, nil
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	item, err := f.manualRecord(current, collections[len(collections)-1], now, opts.UpdateMemoryState)
	if err != nil {
		return RescheduleResult{}, err
	}
	result.RescheduleItem = item
	return result, nil
}

// manualRecord returns the Manual item that moves current onto the replayed
// schedule, or nil when current already matches it.
func (f *FSRS) manualRecord(current Card, replayed RecordLogItem, now time.Time, updateMemory bool) (*RecordLogItem, error) {
	target := replayed.Card
	if current.Due.Equal(target.Due) {
		return nil, nil
	}

	state := target.State
	due := target.Due
	in := ReviewInput{
		Rating: Manual,
		Review: now,
		State:  &state,
		Due:    &due,
	}
	// A card that was never reviewed has no memory state to keep.
	if updateMemory || current.State == domain.CardStateNew {
		s, d := target.Stability, target.Difficulty
		in.Stability = &s
		in.Difficulty = &d
	}

	cur := current.clone()
	cur.ScheduledDays = max(DateDiffInDays(current.Due, target.Due), 0)
	item, err := f.applyManual(cur, in)
	if err != nil {
		return nil, err
	}
	item.Log.ElapsedDays = replayed.Log.ElapsedDays
	return &item, nil
}

// applyManual sets card to the externally supplied state in rv.
func (f *FSRS) applyManual(card Card, rv ReviewInput) (RecordLogItem, error) {
	if rv.State == nil {
		return RecordLogItem{}, fmt.Errorf("%w: state is required for a manual review", domain.ErrMissingRequiredField)
	}
	if !rv.State.IsValid() {
		return RecordLogItem{}, fmt.Errorf("%w: card state %q", domain.ErrInvalidMemoryState, *rv.State)
	}
	if rv.Review.IsZero() {
		return RecordLogItem{}, fmt.Errorf("%w: review time is not set", domain.ErrInvalidDate)
	}

	elapsed := 0
	if card.State != domain.CardStateNew && card.LastReview != nil {
		elapsed = max(DateDiffInDays(*card.LastReview, rv.Review), 0)
	}

	log := ReviewLog{
		Rating:          Manual,
		State:           card.State,
		Due:             card.Due,
		LastReview:      card.clone().LastReview,
		Stability:       card.Stability,
		Difficulty:      card.Difficulty,
		ElapsedDays:     elapsed,
		LastElapsedDays: card.ElapsedDays,
		ScheduledDays:   card.ScheduledDays,
		LearningSteps:   card.LearningSteps,
		Review:          rv.Review,
	}

	reviewed := rv.Review
	if *rv.State == domain.CardStateNew {
		next := NewCard(rv.Review)
		next.LastReview = &reviewed
		return RecordLogItem{Card: next, Log: log}, nil
	}

	if rv.Due == nil {
		return RecordLogItem{}, fmt.Errorf("%w: due is required for a manual review", domain.ErrMissingRequiredField)
	}

	next := card.clone()
	next.State = *rv.State
	next.Due = *rv.Due
	next.LastReview = &reviewed
	next.ElapsedDays = elapsed
	next.ScheduledDays = max(DateDiffInDays(rv.Review, *rv.Due), 0)
	next.Reps++
	if rv.Stability != nil && *rv.Stability > 0 {
		next.Stability = *rv.Stability
	}
	if rv.Difficulty != nil && *rv.Difficulty > 0 {
		next.Difficulty = *rv.Difficulty
	}
	if next.Stability < SMin || next.Difficulty < 1 || next.Difficulty > 10 {
		return RecordLogItem{}, fmt.Errorf("%w: stability and difficulty are required for a manual %s review",
			domain.ErrMissingRequiredField, next.State)
	}
	return RecordLogItem{Card: next, Log: log}, nil
}
