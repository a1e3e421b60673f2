package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// UndoReview reverts the last review of a card within the undo window.
func (s *Service) UndoReview(ctx context.Context, input CardIDInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		restored    *domain.Card
		undoneGrade domain.ReviewGrade
	)

	// Transaction: lock card, validate, roll back, delete log
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		card, err := s.cards.GetByIDForUpdate(txCtx, input.CardID)
		if err != nil {
			return fmt.Errorf("get card: %w", err)
		}

		lastLog, err := s.reviews.GetLastByCardID(txCtx, input.CardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError("card_id", "card has no reviews to undo")
			}
			return fmt.Errorf("get last review: %w", err)
		}

		if lastLog.Grade == domain.ReviewGradeManual {
			return domain.NewValidationError("review", "manual changes cannot be undone")
		}

		if s.srsConfig.UndoWindowMinutes > 0 {
			undoWindow := time.Duration(s.srsConfig.UndoWindowMinutes) * time.Minute
			if now.Sub(lastLog.ReviewedAt) > undoWindow {
				return domain.NewValidationError("review", "undo window expired")
			}
		}

		prev, err := s.scheduler.Rollback(cardToFSRS(card), logToFSRS(lastLog))
		if err != nil {
			return fmt.Errorf("roll back card: %w", err)
		}

		restored, err = s.cards.Update(txCtx, applyFSRS(card, prev))
		if err != nil {
			return fmt.Errorf("restore card: %w", err)
		}

		if err := s.reviews.Delete(txCtx, lastLog.ID); err != nil {
			return fmt.Errorf("delete review log: %w", err)
		}

		undoneGrade = lastLog.Grade
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "review undone",
		slog.String("card_id", input.CardID.String()),
		slog.String("undone_grade", string(undoneGrade)),
		slog.String("restored_state", string(restored.State)),
	)

	return restored, nil
}
