package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// CreateCard creates an unreviewed card that is due immediately.
func (s *Service) CreateCard(ctx context.Context) (*domain.Card, error) {
	fresh := fsrs.NewCard(s.now())
	card, err := s.cards.Create(ctx, applyFSRS(&domain.Card{ID: uuid.New()}, fresh))
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.log.InfoContext(ctx, "card created", slog.String("card_id", card.ID.String()))
	return card, nil
}

// GetCardRetention returns the card's current probability of recall.
func (s *Service) GetCardRetention(ctx context.Context, input CardIDInput) (*CardRetention, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	now := s.now()
	fc := cardToFSRS(card)
	return &CardRetention{
		Card:           card,
		Retrievability: s.scheduler.Retrievability(fc, now),
		Percent:        s.scheduler.RetrievabilityPercent(fc, now),
	}, nil
}

// ForgetCard resets a card to NEW and records the reset as a MANUAL review.
func (s *Service) ForgetCard(ctx context.Context, input ForgetCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var updated *domain.Card

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		card, err := s.cards.GetByIDForUpdate(txCtx, input.CardID)
		if err != nil {
			return fmt.Errorf("get card: %w", err)
		}

		result := s.scheduler.Forget(cardToFSRS(card), now, input.ResetCount)

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

	s.log.InfoContext(ctx, "card forgotten",
		slog.String("card_id", input.CardID.String()),
		slog.Bool("reset_count", input.ResetCount),
	)
	return updated, nil
}
