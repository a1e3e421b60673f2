package study

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// GetQueueInput holds the parameters for fetching the study queue.
type GetQueueInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *GetQueueInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewCardInput holds the parameters for reviewing a card.
type ReviewCardInput struct {
	CardID uuid.UUID
	Grade  domain.ReviewGrade
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if !i.Grade.IsRecall() {
		errs = append(errs, domain.FieldError{Field: "grade", Message: "must be AGAIN, HARD, GOOD, or EASY"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CardIDInput identifies a single card.
type CardIDInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CardIDInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// ForgetCardInput holds the parameters for resetting a card to NEW.
type ForgetCardInput struct {
	CardID     uuid.UUID
	ResetCount bool
}

// Validate checks all fields and collects all errors.
func (i *ForgetCardInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// RescheduleCardInput holds the parameters for replaying a card's history.
type RescheduleCardInput struct {
	CardID            uuid.UUID
	UpdateMemoryState bool
}

// Validate checks all fields and collects all errors.
func (i *RescheduleCardInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// RescheduleAllInput holds the parameters for a batch reschedule.
type RescheduleAllInput struct {
	UpdateMemoryState bool
	BatchSize         int
}

// Validate checks all fields and collects all errors.
func (i *RescheduleAllInput) Validate() error {
	if i.BatchSize < 0 || i.BatchSize > 1000 {
		return domain.NewValidationError("batch_size", "must be between 0 and 1000")
	}
	return nil
}

// ImportedReview is one review of an external history. Manual reviews set
// the card state directly and need State (and Due unless State is NEW).
type ImportedReview struct {
	Grade      domain.ReviewGrade
	ReviewedAt time.Time
	State      *domain.CardState
	Due        *time.Time
	Stability  *float64
	Difficulty *float64
}

// ImportHistoryInput holds the parameters for importing a review history.
type ImportHistoryInput struct {
	CardID  uuid.UUID
	Reviews []ImportedReview
}

// Validate checks all fields and collects all errors.
func (i *ImportHistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if len(i.Reviews) == 0 {
		errs = append(errs, domain.FieldError{Field: "reviews", Message: "at least one review required"})
	}
	if len(i.Reviews) > 10_000 {
		errs = append(errs, domain.FieldError{Field: "reviews", Message: "max 10000 reviews"})
	}
	for _, r := range i.Reviews {
		if !r.Grade.IsValid() {
			errs = append(errs, domain.FieldError{Field: "reviews.grade", Message: "invalid value"})
			break
		}
	}
	for _, r := range i.Reviews {
		if r.ReviewedAt.IsZero() {
			errs = append(errs, domain.FieldError{Field: "reviews.reviewed_at", Message: "required"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
