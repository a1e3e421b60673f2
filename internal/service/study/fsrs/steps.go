package fsrs

import (
	"math"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// StepOutcome is where a learning-step ladder sends a card for one grade.
type StepOutcome struct {
	ScheduledMinutes int
	NextStep         int
}

// LearningStepsStrategy maps a card's state and step index to per-grade
// step outcomes. A grade missing from the result leaves the ladder and is
// scheduled by the memory model.
type LearningStepsStrategy func(params Parameters, state domain.CardState, curStep int) map[Rating]StepOutcome

// BasicLearningStepsStrategy walks LearningSteps for new and learning cards
// and RelearningSteps for review and relearning cards.
//   - Again restarts the ladder.
//   - Hard repeats the current step: 1.5x a single step, or the mean of the
//     first two.
//   - Good advances; past the last step it graduates.
//   - Easy always graduates.
func BasicLearningStepsStrategy(params Parameters, state domain.CardState, curStep int) map[Rating]StepOutcome {
	steps := params.RelearningSteps
	if state == domain.CardStateNew || state == domain.CardStateLearning {
		steps = params.LearningSteps
	}
	if len(steps) == 0 || curStep < 0 || curStep >= len(steps) {
		return map[Rating]StepOutcome{}
	}

	first := stepMinutes(steps[0])
	if state == domain.CardStateReview {
		return map[Rating]StepOutcome{
			Again: {ScheduledMinutes: first, NextStep: 0},
		}
	}

	out := map[Rating]StepOutcome{
		Again: {ScheduledMinutes: first, NextStep: 0},
		Hard:  {ScheduledMinutes: hardStepMinutes(steps), NextStep: curStep},
	}
	if curStep+1 < len(steps) {
		out[Good] = StepOutcome{ScheduledMinutes: stepMinutes(steps[curStep+1]), NextStep: curStep + 1}
	}
	return out
}

func hardStepMinutes(steps []time.Duration) int {
	first := stepMinutes(steps[0])
	if len(steps) == 1 {
		return int(math.Round(float64(first) * 1.5))
	}
	return int(math.Round(float64(first+stepMinutes(steps[1])) / 2))
}

func stepMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
