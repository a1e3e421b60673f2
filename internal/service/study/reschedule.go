package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

const defaultRescheduleBatch = 200

// RescheduleCard replays a card's review history under the current
// parameters and, when the replayed due date differs, moves the card and
// records a MANUAL review.
func (s *Service) RescheduleCard(ctx context.Context, input RescheduleCardInput) (*RescheduleResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *RescheduleResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.rescheduleInTx(txCtx, input.CardID, input.UpdateMemoryState)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "card rescheduled",
		slog.String("card_id", input.CardID.String()),
		slog.Int("replayed", result.Replayed),
		slog.Bool("changed", result.Changed),
	)
	return result, nil
}

func (s *Service) rescheduleInTx(ctx context.Context, cardID uuid.UUID, updateMemory bool) (*RescheduleResult, error) {
	card, err := s.cards.GetByIDForUpdate(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	logs, err := s.reviews.GetByCardID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("get review logs: %w", err)
	}

	replay, err := s.scheduler.Reschedule(cardToFSRS(card), historyToInputs(logs), fsrs.RescheduleOptions{
		UpdateMemoryState: updateMemory,
		Now:               s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("replay history: %w", err)
	}

	result := &RescheduleResult{Card: card, Replayed: len(replay.Collections)}
	if replay.RescheduleItem == nil {
		return result, nil
	}

	updated, err := s.cards.Update(ctx, applyFSRS(card, replay.RescheduleItem.Card))
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	if _, err := s.reviews.Create(ctx, logFromFSRS(card.ID, replay.RescheduleItem.Log)); err != nil {
		return nil, fmt.Errorf("create review log: %w", err)
	}

	result.Card = updated
	result.Changed = true
	return result, nil
}

// RescheduleAll reschedules every card, one transaction per card. It is
// best-effort: a failing card is recorded and the batch continues.
func (s *Service) RescheduleAll(ctx context.Context, input RescheduleAllInput) (*BatchRescheduleResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	batch := input.BatchSize
	if batch == 0 {
		batch = defaultRescheduleBatch
	}

	result := &BatchRescheduleResult{}
	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ids, err := s.cards.ListIDs(ctx, after, batch)
		if err != nil {
			return result, fmt.Errorf("list cards: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			var res *RescheduleResult
			err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
				var err error
				res, err = s.rescheduleInTx(txCtx, id, input.UpdateMemoryState)
				return err
			})
			result.Processed++
			if err != nil {
				result.Failed = append(result.Failed, domain.ItemFailure{ID: id, Err: err})
				s.log.WarnContext(ctx, "reschedule card failed",
					slog.String("card_id", id.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if res.Changed {
				result.Changed++
			}
		}

		after = ids[len(ids)-1]
		if len(ids) < batch {
			break
		}
	}

	s.log.InfoContext(ctx, "cards rescheduled",
		slog.Int("processed", result.Processed),
		slog.Int("changed", result.Changed),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// ImportHistory replays an external review history onto a card and stores
// every produced review log. Each write is attempted independently; failed
// writes are reported and the remaining ones are kept.
func (s *Service) ImportHistory(ctx context.Context, input ImportHistoryInput) (*ImportHistoryResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	inputs := make([]fsrs.ReviewInput, 0, len(input.Reviews))
	for _, r := range input.Reviews {
		inputs = append(inputs, fsrs.ReviewInput{
			Rating:     gradeToRating(r.Grade),
			Review:     r.ReviewedAt.UTC(),
			State:      r.State,
			Due:        r.Due,
			Stability:  r.Stability,
			Difficulty: r.Difficulty,
		})
	}

	first := fsrs.NewCard(card.CreatedAt)
	if card.CreatedAt.IsZero() {
		first = fsrs.NewCard(inputs[0].Review)
	}
	items, err := s.scheduler.Replay(first, inputs)
	if err != nil {
		return nil, fmt.Errorf("replay history: %w", err)
	}

	result := &ImportHistoryResult{Card: card}
	for _, item := range items {
		l := logFromFSRS(card.ID, item.Log)
		if _, err := s.reviews.Create(ctx, l); err != nil {
			result.Failed = append(result.Failed, domain.ItemFailure{ID: l.ID, Err: err})
			continue
		}
		result.Logged++
	}

	updated, err := s.cards.Update(ctx, applyFSRS(card, items[len(items)-1].Card))
	if err != nil {
		result.Failed = append(result.Failed, domain.ItemFailure{ID: card.ID, Err: fmt.Errorf("update card: %w", err)})
	} else {
		result.Card = updated
	}

	s.log.InfoContext(ctx, "review history imported",
		slog.String("card_id", card.ID.String()),
		slog.Int("logged", result.Logged),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}
