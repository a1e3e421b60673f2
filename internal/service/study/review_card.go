package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// ReviewCard records a review and updates the card's SRS state using FSRS.
func (s *Service) ReviewCard(ctx context.Context, input ReviewCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		before  *domain.Card
		updated *domain.Card
	)

	// Transaction: lock card, schedule, update card, create log
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		card, err := s.cards.GetByIDForUpdate(txCtx, input.CardID)
		if err != nil {
			return fmt.Errorf("get card: %w", err)
		}
		before = card

		result, err := s.scheduler.Next(cardToFSRS(card), now, gradeToRating(input.Grade))
		if err != nil {
			return fmt.Errorf("schedule card: %w", err)
		}

		updated, err = s.cards.Update(txCtx, applyFSRS(card, result.Card))
		if err != nil {
			return fmt.Errorf("update card: %w", err)
		}

		if _, err := s.reviews.Create(txCtx, logFromFSRS(card.ID, result.Log)); err != nil {
			return fmt.Errorf("create review log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.String("card_id", input.CardID.String()),
		slog.String("grade", string(input.Grade)),
		slog.String("old_state", string(before.State)),
		slog.String("new_state", string(updated.State)),
		slog.Float64("stability", updated.Stability),
		slog.Int("scheduled_days", updated.ScheduledDays),
	)

	return updated, nil
}

// PreviewCard computes the outcome of every grade without persisting.
func (s *Service) PreviewCard(ctx context.Context, input CardIDInput) (*CardPreview, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	now := s.now()
	fc := cardToFSRS(card)
	preview, err := s.scheduler.Repeat(fc, now)
	if err != nil {
		return nil, fmt.Errorf("preview card: %w", err)
	}

	outcomes := make([]GradeOutcome, 0, len(fsrs.Grades))
	for _, r := range fsrs.Grades {
		next := preview.For(r).Card
		outcomes = append(outcomes, GradeOutcome{
			Grade:         ratingToGrade(r),
			State:         next.State,
			Due:           next.Due,
			ScheduledDays: next.ScheduledDays,
			Stability:     next.Stability,
			Difficulty:    next.Difficulty,
		})
	}

	return &CardPreview{
		Card:           card,
		Retrievability: s.scheduler.Retrievability(fc, now),
		Outcomes:       outcomes,
	}, nil
}
