package reading

import "github.com/heartmarshall/srs-scheduler/internal/domain"

// DailyQueue is today's reading queue. Deferral writes are best-effort:
// Deferred counts the ones that succeeded and Failed lists the rest.
type DailyQueue struct {
	Items    []*domain.ReadingItem
	Topics   int
	Extracts int
	Deferred int
	Failed   []domain.ItemFailure
}
