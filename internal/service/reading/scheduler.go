package reading

import (
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// randSource is the subset of *rand.Rand the interval jitter needs.
type randSource interface {
	Intn(n int) int
	Float64() float64
}

// Tier groups priorities for the randomized intervals.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// dayRange is an inclusive range of whole days.
type dayRange struct{ min, max int }

var (
	topicIntervals = map[Tier]dayRange{
		TierHigh:   {1, 2},
		TierMedium: {3, 5},
		TierLow:    {7, 10},
	}
	extractIntervals = map[Tier]dayRange{
		TierHigh:   {1, 1},
		TierMedium: {2, 2},
		TierLow:    {3, 3},
	}
	postponeIntervals = map[Tier]dayRange{
		TierHigh:   {1, 2},
		TierMedium: {3, 5},
		TierLow:    {7, 14},
	}
)

// ClampPriority limits p to [domain.MinPriority, domain.MaxPriority].
func ClampPriority(p int) int {
	return min(max(p, domain.MinPriority), domain.MaxPriority)
}

// PriorityTier maps a priority to its tier: 8..10 high, 4..7 medium, 1..3 low.
func PriorityTier(priority int) Tier {
	switch p := ClampPriority(priority); {
	case p >= 8:
		return TierHigh
	case p >= 4:
		return TierMedium
	default:
		return TierLow
	}
}

// BaseInterval returns the fixed interval in days for a priority.
func BaseInterval(priority int) int {
	switch p := ClampPriority(priority); {
	case p == 10:
		return 1
	case p >= 8:
		return 2
	case p >= 6:
		return 3
	case p >= 4:
		return 5
	default:
		return 7
	}
}

// RandomInterval draws the next reading interval in days for an item.
// Topics get a jittered band per tier; extracts use a fixed, tighter one.
func RandomInterval(rng randSource, kind domain.ItemKind, priority int) int {
	bands := topicIntervals
	if kind == domain.ItemKindExtract {
		bands = extractIntervals
	}
	return draw(rng, bands[PriorityTier(priority)])
}

// PostponeInterval draws how many days an item is pushed back when deferred.
func PostponeInterval(rng randSource, priority int) int {
	return draw(rng, postponeIntervals[PriorityTier(priority)])
}

func draw(rng randSource, r dayRange) int {
	if r.max <= r.min {
		return r.min
	}
	return r.min + rng.Intn(r.max-r.min+1)
}

// CalculateNextDue returns base moved forward by the priority's base interval.
func CalculateNextDue(priority int, base time.Time) time.Time {
	return base.AddDate(0, 0, BaseInterval(priority))
}

// SpreadChapters spreads n due dates evenly over totalDays starting at start,
// each with up to half a day of jitter. The result is strictly increasing.
func SpreadChapters(rng randSource, start time.Time, n, totalDays int) []time.Time {
	if n <= 0 {
		return nil
	}

	stepDays := 0.0
	if n > 1 {
		stepDays = float64(totalDays) / float64(n-1)
	}

	out := make([]time.Time, n)
	for i := range out {
		offset := float64(i)*stepDays + rng.Float64()*0.5
		due := start.Add(time.Duration(offset * float64(24*time.Hour)))
		if i > 0 && !due.After(out[i-1]) {
			due = out[i-1].Add(time.Minute)
		}
		out[i] = due
	}
	return out
}
