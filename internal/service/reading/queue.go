package reading

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

const (
	DefaultTopicQuotaPercent = 20
	DefaultDailyLimit        = 30
)

// QueueOptions controls how the daily queue is assembled.
type QueueOptions struct {
	TopicQuotaPercent int
	// DailyLimit caps the queue size; 0 means unlimited.
	DailyLimit      int
	EnableAutoDefer bool
}

// QueueInput is everything BuildQueue needs. NextDayStart is the learner's
// next local midnight, computed once by the caller.
type QueueInput struct {
	Topics           []*domain.ReadingItem
	Extracts         []*domain.ReadingItem
	NextDayStart     time.Time
	MaxTopicPosition float64
	Options          QueueOptions
}

// Deferral is a pending write that moves an unselected item out of today's
// queue. Exactly one of Position and Due is set.
type Deferral struct {
	ItemID   uuid.UUID
	Kind     domain.ItemKind
	Position *float64
	Due      *time.Time
}

// QueuePlan is the ordered queue for today plus the deferrals to apply.
type QueuePlan struct {
	Items     []*domain.ReadingItem
	Deferrals []Deferral
	Topics    int
	Extracts  int
}

// BuildQueue selects today's reading items and interleaves topics with
// extracts by the topic quota. Inputs are not modified.
func BuildQueue(in QueueInput) QueuePlan {
	topics := dueItems(in.Topics, in.NextDayStart)
	extracts := dueItems(in.Extracts, in.NextDayStart)
	SortTopics(topics)
	SortExtracts(extracts)

	percent := min(max(in.Options.TopicQuotaPercent, 0), 100)
	ratio := float64(percent) / 100

	if in.Options.DailyLimit <= 0 {
		return QueuePlan{
			Items:    interleave(topics, extracts, ratio),
			Topics:   len(topics),
			Extracts: len(extracts),
		}
	}

	topicQuota, extractQuota := quotas(len(topics), len(extracts), in.Options.DailyLimit, ratio)

	plan := QueuePlan{
		Items:    interleave(topics[:topicQuota], extracts[:extractQuota], ratio),
		Topics:   topicQuota,
		Extracts: extractQuota,
	}
	if in.Options.EnableAutoDefer {
		plan.Deferrals = deferrals(topics[topicQuota:], extracts[extractQuota:], in.MaxTopicPosition, in.NextDayStart)
	}
	return plan
}

// quotas splits min(limit, available) between topics and extracts by ratio,
// moving any shortfall of one pool to the other.
func quotas(topics, extracts, limit int, ratio float64) (topicQuota, extractQuota int) {
	total := min(limit, topics+extracts)

	topicQuota = min(int(math.Round(float64(total)*ratio)), topics)
	extractQuota = min(total-topicQuota, extracts)

	if short := total - topicQuota - extractQuota; short > 0 {
		topicQuota += min(short, topics-topicQuota)
	}
	if short := total - topicQuota - extractQuota; short > 0 {
		extractQuota += min(short, extracts-extractQuota)
	}
	return topicQuota, extractQuota
}

// interleave merges the two lists so that topics make up ratio of every
// prefix as closely as possible. Once one list runs out the other follows.
func interleave(topics, extracts []*domain.ReadingItem, ratio float64) []*domain.ReadingItem {
	out := make([]*domain.ReadingItem, 0, len(topics)+len(extracts))
	ti, ei := 0, 0
	for ti < len(topics) || ei < len(extracts) {
		wantTopic := float64(ti) < float64(len(out)+1)*ratio
		switch {
		case ti < len(topics) && (wantTopic || ei >= len(extracts)):
			out = append(out, topics[ti])
			ti++
		default:
			out = append(out, extracts[ei])
			ei++
		}
	}
	return out
}

func deferrals(topics, extracts []*domain.ReadingItem, maxPosition float64, nextDayStart time.Time) []Deferral {
	out := make([]Deferral, 0, len(topics)+len(extracts))
	for i, t := range topics {
		pos := maxPosition + float64(i+1)
		out = append(out, Deferral{ItemID: t.ID, Kind: domain.ItemKindTopic, Position: &pos})
	}
	for _, e := range extracts {
		due := nextDayStart
		out = append(out, Deferral{ItemID: e.ID, Kind: domain.ItemKindExtract, Due: &due})
	}
	return out
}

func dueItems(items []*domain.ReadingItem, nextDayStart time.Time) []*domain.ReadingItem {
	out := make([]*domain.ReadingItem, 0, len(items))
	for _, it := range items {
		if it.IsDue(nextDayStart) {
			out = append(out, it)
		}
	}
	return out
}

// SortTopics orders topics by position, ties and unpositioned topics by id.
// Unpositioned topics come last.
func SortTopics(items []*domain.ReadingItem) {
	slices.SortStableFunc(items, func(a, b *domain.ReadingItem) int {
		switch {
		case a.Position != nil && b.Position == nil:
			return -1
		case a.Position == nil && b.Position != nil:
			return 1
		case a.Position != nil && b.Position != nil:
			if c := cmp.Compare(*a.Position, *b.Position); c != 0 {
				return c
			}
		}
		return compareIDs(a.ID, b.ID)
	})
}

// SortExtracts orders extracts by due date, then priority descending, then id.
func SortExtracts(items []*domain.ReadingItem) {
	slices.SortStableFunc(items, func(a, b *domain.ReadingItem) int {
		if c := a.Due.Compare(b.Due); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
}

func compareIDs(a, b uuid.UUID) int {
	return cmp.Compare(a.String(), b.String())
}
