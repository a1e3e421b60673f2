package reading

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/pkg/timeutil"
)

// BuildDailyQueue assembles today's reading queue and, when auto-defer is
// on, pushes the items that did not fit to a later day. Deferral writes are
// independent of each other: a failed write is reported, not fatal.
func (s *Service) BuildDailyQueue(ctx context.Context, input BuildQueueInput) (*DailyQueue, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	opts := s.queueOptions(input)
	now := s.now()
	nextDayStart := timeutil.NextDayStart(now, timeutil.ParseTimezone(s.cfg.Timezone))

	var (
		topics      []*domain.ReadingItem
		extracts    []*domain.ReadingItem
		maxPosition float64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		topics, err = s.items.ListDueByKind(gctx, domain.ItemKindTopic, nextDayStart)
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		extracts, err = s.items.ListDueByKind(gctx, domain.ItemKindExtract, nextDayStart)
		if err != nil {
			return fmt.Errorf("list extracts: %w", err)
		}
		return nil
	})

	if opts.EnableAutoDefer {
		g.Go(func() error {
			var err error
			maxPosition, err = s.items.MaxTopicPosition(gctx)
			if err != nil {
				return fmt.Errorf("max topic position: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := BuildQueue(QueueInput{
		Topics:           topics,
		Extracts:         extracts,
		NextDayStart:     nextDayStart,
		MaxTopicPosition: maxPosition,
		Options:          opts,
	})

	queue := &DailyQueue{
		Items:    plan.Items,
		Topics:   plan.Topics,
		Extracts: plan.Extracts,
	}
	for _, d := range plan.Deferrals {
		if err := s.applyDeferral(ctx, d); err != nil {
			queue.Failed = append(queue.Failed, domain.ItemFailure{ID: d.ItemID, Err: err})
			s.log.WarnContext(ctx, "defer reading item failed",
				slog.String("item_id", d.ItemID.String()),
				slog.String("kind", d.Kind.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		queue.Deferred++
	}

	s.log.InfoContext(ctx, "reading queue built",
		slog.Int("topics", queue.Topics),
		slog.Int("extracts", queue.Extracts),
		slog.Int("deferred", queue.Deferred),
		slog.Int("failed", len(queue.Failed)),
	)

	return queue, nil
}

func (s *Service) queueOptions(input BuildQueueInput) QueueOptions {
	opts := QueueOptions{
		TopicQuotaPercent: s.cfg.TopicQuotaPercent,
		DailyLimit:        s.cfg.DailyLimit,
		EnableAutoDefer:   s.cfg.EnableAutoDefer,
	}
	if input.TopicQuotaPercent != nil {
		opts.TopicQuotaPercent = *input.TopicQuotaPercent
	}
	if input.DailyLimit != nil {
		opts.DailyLimit = *input.DailyLimit
	}
	if input.EnableAutoDefer != nil {
		opts.EnableAutoDefer = *input.EnableAutoDefer
	}
	return opts
}

func (s *Service) applyDeferral(ctx context.Context, d Deferral) error {
	switch {
	case d.Position != nil:
		if err := s.items.UpdatePosition(ctx, d.ItemID, *d.Position); err != nil {
			return fmt.Errorf("update position: %w", err)
		}
	case d.Due != nil:
		if err := s.items.UpdateDue(ctx, d.ItemID, *d.Due); err != nil {
			return fmt.Errorf("update due: %w", err)
		}
	}
	return nil
}
