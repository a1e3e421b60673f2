package fsrs

import "github.com/heartmarshall/srs-scheduler/internal/domain"

// longTermScheduler skips learning steps: every outcome is a whole-day
// Review interval.
type longTermScheduler struct {
	*reviewContext
}

var _ Scheduler = (*longTermScheduler)(nil)

func (l *longTermScheduler) Preview() (Preview, error)              { return l.preview(l) }
func (l *longTermScheduler) Review(r Rating) (RecordLogItem, error) { return l.review(l, r) }

func (l *longTermScheduler) newState(r Rating) RecordLogItem {
	base := l.current.clone()
	base.ElapsedDays = 0
	base.ScheduledDays = 0

	var cards [4]Card
	for i, g := range Grades {
		c := base.clone()
		c.Difficulty = l.model.InitDifficulty(g)
		c.Stability = l.model.InitStability(g)
		cards[i] = c
	}
	l.schedule(cards)
	return l.memo[r]
}

// learningState treats a learning card like a review card.
func (l *longTermScheduler) learningState(r Rating) RecordLogItem {
	return l.reviewState(r)
}

func (l *longTermScheduler) reviewState(r Rating) RecordLogItem {
	m := l.model
	d, st := l.last.Difficulty, l.last.Stability
	retr := l.retrievability()

	again := l.current.clone()
	again.Difficulty = m.NextDifficulty(d, Again)
	again.Stability = clamp(st, SMin, m.NextForgetStability(d, st, retr))
	if l.last.State == domain.CardStateReview {
		again.Lapses++
	}

	hard, good, easy := l.recallStates(retr)
	l.schedule([4]Card{again, hard, good, easy})
	return l.memo[r]
}

// schedule assigns strictly increasing intervals Again < Hard < Good < Easy
// and records all four outcomes.
func (l *longTermScheduler) schedule(cards [4]Card) {
	var ivl [4]int
	for i := range cards {
		ivl[i] = l.interval(cards[i].Stability)
	}
	ivl[0] = min(ivl[0], ivl[1])
	ivl[1] = max(ivl[1], ivl[0]+1)
	ivl[2] = max(ivl[2], ivl[1]+1)
	ivl[3] = max(ivl[3], ivl[2]+1)

	for i, g := range Grades {
		c := cards[i]
		l.scheduleDays(&c, ivl[i])
		l.record(g, c)
	}
}
