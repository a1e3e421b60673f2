package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/pkg/timeutil"
)

const (
	defaultQueueLimit = 50
	// dueBeforeNew is how many due cards are shown for every new card.
	dueBeforeNew = 2
)

// GetStudyQueue returns the cards to study today: cards due before the
// learner's next midnight, drip-fed with new cards within the daily limit.
func (s *Service) GetStudyQueue(ctx context.Context, input GetQueueInput) ([]*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.srsConfig.QueueLimit
	}
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	now := s.now()
	tz := timeutil.ParseTimezone(s.srsConfig.Timezone)
	dayStart := timeutil.DayStart(now, tz)
	nextDayStart := timeutil.NextDayStart(now, tz)

	newToday, err := s.reviews.CountNewToday(ctx, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new today: %w", err)
	}
	newRemaining := max(0, s.srsConfig.NewCardsPerDay-newToday)

	dueCards, err := s.cards.GetDueCards(ctx, nextDayStart, limit)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}

	var newCards []*domain.Card
	if newRemaining > 0 {
		newCards, err = s.cards.GetNewCards(ctx, min(limit, newRemaining))
		if err != nil {
			return nil, fmt.Errorf("get new cards: %w", err)
		}
	}

	queue := BuildReviewQueue(dueCards, newCards)
	if len(queue) > limit {
		queue = queue[:limit]
	}

	s.log.InfoContext(ctx, "study queue generated",
		slog.Int("due_count", len(dueCards)),
		slog.Int("new_count", len(newCards)),
		slog.Int("total", len(queue)),
	)

	return queue, nil
}

// BuildReviewQueue interleaves two due cards for every new card, keeping the
// relative order of each pool. Whatever remains of the longer pool is
// appended once the other runs out.
func BuildReviewQueue(due, fresh []*domain.Card) []*domain.Card {
	queue := make([]*domain.Card, 0, len(due)+len(fresh))
	i, j := 0, 0
	for i < len(due) || j < len(fresh) {
		for k := 0; k < dueBeforeNew && i < len(due); k++ {
			queue = append(queue, due[i])
			i++
		}
		if j < len(fresh) {
			queue = append(queue, fresh[j])
			j++
		}
	}
	return queue
}
