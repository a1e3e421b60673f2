package study

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

func TestGetQueueInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   GetQueueInput
		wantErr bool
	}{
		{name: "valid zero (means default)", input: GetQueueInput{Limit: 0}, wantErr: false},
		{name: "valid 1", input: GetQueueInput{Limit: 1}, wantErr: false},
		{name: "valid 200", input: GetQueueInput{Limit: 200}, wantErr: false},
		{name: "invalid negative", input: GetQueueInput{Limit: -1}, wantErr: true},
		{name: "invalid 201", input: GetQueueInput{Limit: 201}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestReviewCardInput_Validate(t *testing.T) {
	t.Parallel()

	validID := uuid.New()

	tests := []struct {
		name       string
		input      ReviewCardInput
		wantErr    bool
		wantFields []string
	}{
		{
			name:  "valid",
			input: ReviewCardInput{CardID: validID, Grade: domain.ReviewGradeGood},
		},
		{
			name:       "nil card id",
			input:      ReviewCardInput{CardID: uuid.Nil, Grade: domain.ReviewGradeAgain},
			wantErr:    true,
			wantFields: []string{"card_id"},
		},
		{
			name:       "manual grade rejected",
			input:      ReviewCardInput{CardID: validID, Grade: domain.ReviewGradeManual},
			wantErr:    true,
			wantFields: []string{"grade"},
		},
		{
			name:       "unknown grade and nil id",
			input:      ReviewCardInput{Grade: "PERFECT"},
			wantErr:    true,
			wantFields: []string{"card_id", "grade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if len(ve.Errors) != len(tt.wantFields) {
				t.Fatalf("field errors: got %d, want %d (%v)", len(ve.Errors), len(tt.wantFields), ve.Errors)
			}
			for i, f := range tt.wantFields {
				if ve.Errors[i].Field != f {
					t.Errorf("field[%d]: got %q, want %q", i, ve.Errors[i].Field, f)
				}
			}
		})
	}
}

func TestCardIDInputs_Validate(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		input   interface{ Validate() error }
		wantErr bool
	}{
		{"card id valid", &CardIDInput{CardID: id}, false},
		{"card id nil", &CardIDInput{}, true},
		{"forget valid", &ForgetCardInput{CardID: id, ResetCount: true}, false},
		{"forget nil", &ForgetCardInput{}, true},
		{"reschedule valid", &RescheduleCardInput{CardID: id}, false},
		{"reschedule nil", &RescheduleCardInput{UpdateMemoryState: true}, true},
		{"reschedule all default batch", &RescheduleAllInput{}, false},
		{"reschedule all max batch", &RescheduleAllInput{BatchSize: 1000}, false},
		{"reschedule all batch too large", &RescheduleAllInput{BatchSize: 1001}, true},
		{"reschedule all negative batch", &RescheduleAllInput{BatchSize: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestImportHistoryInput_Validate(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	tooMany := make([]ImportedReview, 10_001)
	for i := range tooMany {
		tooMany[i] = ImportedReview{Grade: domain.ReviewGradeGood, ReviewedAt: at}
	}

	tests := []struct {
		name    string
		input   ImportHistoryInput
		wantErr bool
	}{
		{
			name: "valid",
			input: ImportHistoryInput{CardID: id, Reviews: []ImportedReview{
				{Grade: domain.ReviewGradeGood, ReviewedAt: at},
				{Grade: domain.ReviewGradeManual, ReviewedAt: at.Add(time.Hour)},
			}},
		},
		{name: "no reviews", input: ImportHistoryInput{CardID: id}, wantErr: true},
		{name: "too many reviews", input: ImportHistoryInput{CardID: id, Reviews: tooMany}, wantErr: true},
		{
			name:    "invalid grade",
			input:   ImportHistoryInput{CardID: id, Reviews: []ImportedReview{{Grade: "BAD", ReviewedAt: at}}},
			wantErr: true,
		},
		{
			name:    "missing review time",
			input:   ImportHistoryInput{CardID: id, Reviews: []ImportedReview{{Grade: domain.ReviewGradeGood}}},
			wantErr: true,
		},
		{
			name:    "nil card id",
			input:   ImportHistoryInput{Reviews: []ImportedReview{{Grade: domain.ReviewGradeGood, ReviewedAt: at}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}
