package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// SeedCard inserts a card. Zero ID, Due, CreatedAt and UpdatedAt are filled
// in; State defaults to NEW.
func SeedCard(t *testing.T, pool *pgxpool.Pool, card domain.Card) domain.Card {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if card.State == "" {
		card.State = domain.CardStateNew
	}
	if card.Due.IsZero() {
		card.Due = now
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	if card.UpdatedAt.IsZero() {
		card.UpdatedAt = card.CreatedAt
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cards (id, state, due, stability, difficulty, elapsed_days, scheduled_days,
		                    reps, lapses, learning_steps, last_review, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		card.ID, string(card.State), card.Due, card.Stability, card.Difficulty, card.ElapsedDays,
		card.ScheduledDays, card.Reps, card.Lapses, card.LearningSteps, card.LastReview,
		card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard insert: %v", err)
	}

	return card
}

// SeedReviewLog inserts a review log for cardID.
func SeedReviewLog(t *testing.T, pool *pgxpool.Pool, cardID uuid.UUID, state domain.CardState, grade domain.ReviewGrade, reviewedAt time.Time) domain.ReviewLog {
	t.Helper()

	l := domain.ReviewLog{
		ID:         uuid.New(),
		CardID:     cardID,
		Grade:      grade,
		State:      state,
		Due:        reviewedAt,
		ReviewedAt: reviewedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO review_logs (id, card_id, grade, state, due, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.CardID, string(l.Grade), string(l.State), l.Due, l.ReviewedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewLog insert: %v", err)
	}

	return l
}

// SeedReadingItem inserts a reading item. Zero ID and timestamps are filled
// in; Priority defaults to 5.
func SeedReadingItem(t *testing.T, pool *pgxpool.Pool, item domain.ReadingItem) domain.ReadingItem {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Priority == 0 {
		item.Priority = 5
	}
	if item.Due.IsZero() {
		item.Due = now
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO reading_items (id, kind, priority, last_read, read_count, due, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, string(item.Kind), item.Priority, item.LastRead, item.ReadCount, item.Due,
		item.Position, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReadingItem insert: %v", err)
	}

	return item
}
