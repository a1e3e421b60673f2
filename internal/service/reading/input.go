package reading

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// BuildQueueInput overrides the configured queue options for one call.
type BuildQueueInput struct {
	TopicQuotaPercent *int
	DailyLimit        *int
	EnableAutoDefer   *bool
}

// Validate checks all fields and collects all errors.
func (i *BuildQueueInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicQuotaPercent != nil && (*i.TopicQuotaPercent < 0 || *i.TopicQuotaPercent > 100) {
		errs = append(errs, domain.FieldError{Field: "topic_quota_percent", Message: "must be between 0 and 100"})
	}
	if i.DailyLimit != nil && (*i.DailyLimit < 0 || *i.DailyLimit > 1000) {
		errs = append(errs, domain.FieldError{Field: "daily_limit", Message: "must be between 0 and 1000"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateItemInput holds the parameters for adding a reading item.
type CreateItemInput struct {
	Kind     domain.ItemKind
	Priority int
	// Position is only used for topics; nil appends the topic at the end.
	Position *float64
}

// Validate checks all fields and collects all errors.
func (i *CreateItemInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be TOPIC or EXTRACT"})
	}
	if !validPriority(i.Priority) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be between 1 and 10"})
	}
	if i.Position != nil && i.Kind == domain.ItemKindExtract {
		errs = append(errs, domain.FieldError{Field: "position", Message: "only topics have a position"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ItemIDInput identifies a single reading item.
type ItemIDInput struct {
	ItemID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *ItemIDInput) Validate() error {
	if i.ItemID == uuid.Nil {
		return domain.NewValidationError("item_id", "required")
	}
	return nil
}

// SetPriorityInput holds the parameters for changing an item's priority.
type SetPriorityInput struct {
	ItemID   uuid.UUID
	Priority int
}

// Validate checks all fields and collects all errors.
func (i *SetPriorityInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if !validPriority(i.Priority) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be between 1 and 10"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ScheduleChaptersInput holds the parameters for adding a batch of chapters
// as topics spread over a number of days.
type ScheduleChaptersInput struct {
	Count     int
	TotalDays int
	Priority  int
	// Start defaults to now.
	Start *time.Time
}

// Validate checks all fields and collects all errors.
func (i *ScheduleChaptersInput) Validate() error {
	var errs []domain.FieldError

	if i.Count < 1 || i.Count > 500 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be between 1 and 500"})
	}
	if i.TotalDays < 0 || i.TotalDays > 3650 {
		errs = append(errs, domain.FieldError{Field: "total_days", Message: "must be between 0 and 3650"})
	}
	if !validPriority(i.Priority) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be between 1 and 10"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validPriority(p int) bool {
	return p >= domain.MinPriority && p <= domain.MaxPriority
}
