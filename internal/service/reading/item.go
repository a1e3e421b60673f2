package reading

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// CreateItem adds a topic or extract, due at the priority's base interval.
// A topic without a position is appended after the last one.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.ReadingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	item := &domain.ReadingItem{
		ID:   uuid.New(),
		Kind: input.Kind,
		IRState: domain.IRState{
			Priority: input.Priority,
			Due:      CalculateNextDue(input.Priority, now),
			Position: input.Position,
		},
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if item.Kind == domain.ItemKindTopic && item.Position == nil {
			maxPos, err := s.items.MaxTopicPosition(txCtx)
			if err != nil {
				return fmt.Errorf("max topic position: %w", err)
			}
			pos := maxPos + 1
			item.Position = &pos
		}

		var err error
		item, err = s.items.Create(txCtx, item)
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "reading item created",
		slog.String("item_id", item.ID.String()),
		slog.String("kind", item.Kind.String()),
		slog.Int("priority", item.Priority),
	)
	return item, nil
}

// MarkRead records a reading of the item and schedules the next one from
// its priority.
func (s *Service) MarkRead(ctx context.Context, input ItemIDInput) (*domain.ReadingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.reschedule(ctx, input.ItemID, "item read", func(item *domain.ReadingItem) {
		now := s.now()
		item.ReadCount++
		item.LastRead = &now
		item.Due = now.AddDate(0, 0, RandomInterval(s.rng, item.Kind, item.Priority))
	})
}

// Postpone pushes the item back by the postpone interval of its priority.
func (s *Service) Postpone(ctx context.Context, input ItemIDInput) (*domain.ReadingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.reschedule(ctx, input.ItemID, "item postponed", func(item *domain.ReadingItem) {
		base := s.now()
		if item.Due.After(base) {
			base = item.Due
		}
		item.Due = base.AddDate(0, 0, PostponeInterval(s.rng, item.Priority))
	})
}

// SetPriority changes an item's priority. The due date is left alone; the
// new priority applies from the next reading.
func (s *Service) SetPriority(ctx context.Context, input SetPriorityInput) (*domain.ReadingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.reschedule(ctx, input.ItemID, "item priority set", func(item *domain.ReadingItem) {
		item.Priority = input.Priority
	})
}

// reschedule applies mutate to a locked copy of the item and saves it.
func (s *Service) reschedule(ctx context.Context, id uuid.UUID, msg string, mutate func(item *domain.ReadingItem)) (*domain.ReadingItem, error) {
	var updated *domain.ReadingItem
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		next := *item
		mutate(&next)

		updated, err = s.items.Update(txCtx, &next)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, msg,
		slog.String("item_id", updated.ID.String()),
		slog.Int("priority", updated.Priority),
		slog.Time("due", updated.Due),
	)
	return updated, nil
}

// ScheduleChapters adds count topics spread evenly over totalDays, in order,
// after the last queued topic.
func (s *Service) ScheduleChapters(ctx context.Context, input ScheduleChaptersInput) ([]*domain.ReadingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	if input.Start != nil {
		start = input.Start.UTC()
	}
	dues := SpreadChapters(s.rng, start, input.Count, input.TotalDays)

	created := make([]*domain.ReadingItem, 0, len(dues))
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		maxPos, err := s.items.MaxTopicPosition(txCtx)
		if err != nil {
			return fmt.Errorf("max topic position: %w", err)
		}

		for i, due := range dues {
			pos := maxPos + float64(i+1)
			item, err := s.items.Create(txCtx, &domain.ReadingItem{
				ID:   uuid.New(),
				Kind: domain.ItemKindTopic,
				IRState: domain.IRState{
					Priority: input.Priority,
					Due:      due,
					Position: &pos,
				},
			})
			if err != nil {
				return fmt.Errorf("create chapter %d: %w", i+1, err)
			}
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "chapters scheduled",
		slog.Int("count", len(created)),
		slog.Int("total_days", input.TotalDays),
		slog.Int("priority", input.Priority),
	)
	return created, nil
}
