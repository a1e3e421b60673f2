package fsrs

import "github.com/heartmarshall/srs-scheduler/internal/domain"

// shortTermScheduler walks new and lapsed cards through minute-scale
// learning steps before handing them to the memory model.
type shortTermScheduler struct {
	*reviewContext
}

var _ Scheduler = (*shortTermScheduler)(nil)

func (s *shortTermScheduler) Preview() (Preview, error)              { return s.preview(s) }
func (s *shortTermScheduler) Review(r Rating) (RecordLogItem, error) { return s.review(s, r) }

func (s *shortTermScheduler) newState(r Rating) RecordLogItem {
	next := s.current.clone()
	next.Difficulty = s.model.InitDifficulty(r)
	next.Stability = s.model.InitStability(r)
	s.applyLearningSteps(&next, r, domain.CardStateLearning)
	return s.record(r, next)
}

func (s *shortTermScheduler) learningState(r Rating) RecordLogItem {
	next := s.current.clone()
	prev := MemoryState{Stability: s.last.Stability, Difficulty: s.last.Difficulty}
	// The card was validated on construction, so NextState cannot fail here.
	state, _ := s.model.NextState(&prev, s.elapsedDays, r)
	next.Difficulty = state.Difficulty
	next.Stability = state.Stability
	s.applyLearningSteps(&next, r, s.last.State)
	return s.record(r, next)
}

func (s *shortTermScheduler) reviewState(r Rating) RecordLogItem {
	m := s.model
	d, st := s.last.Difficulty, s.last.Stability
	retr := s.retrievability()

	again := s.current.clone()
	again.Difficulty = m.NextDifficulty(d, Again)
	again.Stability = m.againStability(st, m.NextForgetStability(d, st, retr))
	again.Lapses++

	hard, good, easy := s.recallStates(retr)
	hardIvl := s.interval(hard.Stability)
	goodIvl := s.interval(good.Stability)
	hardIvl = min(hardIvl, goodIvl)
	goodIvl = max(goodIvl, hardIvl+1)
	easyIvl := max(s.interval(easy.Stability), goodIvl+1)

	s.applyLearningSteps(&again, Again, domain.CardStateRelearning)
	s.scheduleDays(&hard, hardIvl)
	s.scheduleDays(&good, goodIvl)
	s.scheduleDays(&easy, easyIvl)

	s.record(Again, again)
	s.record(Hard, hard)
	s.record(Good, good)
	s.record(Easy, easy)
	return s.memo[r]
}

// applyLearningSteps places next on the step ladder, or graduates it to
// Review when the ladder has nothing for the grade.
func (s *shortTermScheduler) applyLearningSteps(next *Card, r Rating, to domain.CardState) {
	curStep := s.last.LearningSteps
	if s.last.State == domain.CardStateReview {
		curStep = 0
	}

	outcome, ok := s.steps(s.model.params, s.last.State, curStep)[r]
	minutes := outcome.ScheduledMinutes
	switch {
	case ok && minutes > 0 && minutes < minutesPerDay:
		next.State = to
		next.LearningSteps = outcome.NextStep
		next.ScheduledDays = 0
		next.Due = addMinutes(s.reviewTime, minutes)
	case ok && minutes >= minutesPerDay:
		next.State = domain.CardStateReview
		next.LearningSteps = outcome.NextStep
		next.ScheduledDays = minutes / minutesPerDay
		next.Due = addMinutes(s.reviewTime, minutes)
	default:
		s.scheduleDays(next, s.interval(next.Stability))
	}
}
