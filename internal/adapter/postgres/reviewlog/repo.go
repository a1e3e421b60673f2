// Package reviewlog implements the ReviewLog repository using PostgreSQL.
// Logs are append-only except for Delete, which backs review undo.
package reviewlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/srs-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

const table = "review_logs"

var columns = []string{
	"id", "card_id", "grade", "state", "due", "last_review", "stability", "difficulty",
	"elapsed_days", "last_elapsed_days", "scheduled_days", "learning_steps", "reviewed_at",
}

type row struct {
	ID              uuid.UUID  `db:"id"`
	CardID          uuid.UUID  `db:"card_id"`
	Grade           string     `db:"grade"`
	State           string     `db:"state"`
	Due             time.Time  `db:"due"`
	LastReview      *time.Time `db:"last_review"`
	Stability       float64    `db:"stability"`
	Difficulty      float64    `db:"difficulty"`
	ElapsedDays     int        `db:"elapsed_days"`
	LastElapsedDays int        `db:"last_elapsed_days"`
	ScheduledDays   int        `db:"scheduled_days"`
	LearningSteps   int        `db:"learning_steps"`
	ReviewedAt      time.Time  `db:"reviewed_at"`
}

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByCardID returns every review log of a card, oldest first.
func (r *Repo) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewLog, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"card_id": cardID}).
		OrderBy("reviewed_at ASC", "id ASC")

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, q); err != nil {
		return nil, fmt.Errorf("get review_logs by card_id: %w", err)
	}

	logs := make([]*domain.ReviewLog, len(rows))
	for i, rw := range rows {
		logs[i] = toDomain(rw)
	}
	return logs, nil
}

// GetLastByCardID returns the most recent review log for a card.
// Returns domain.ErrNotFound if the card has no logs.
func (r *Repo) GetLastByCardID(ctx context.Context, cardID uuid.UUID) (*domain.ReviewLog, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"card_id": cardID}).
		OrderBy("reviewed_at DESC", "id DESC").
		Limit(1)

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &dst, q); err != nil {
		return nil, postgres.MapError(err, "review_log", cardID)
	}
	return toDomain(dst), nil
}

// CountNewToday counts first reviews (logs taken from a NEW card) made at or
// after dayStart.
func (r *Repo) CountNewToday(ctx context.Context, dayStart time.Time) (int, error) {
	q := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"state": string(domain.CardStateNew)}).
		Where(squirrel.NotEq{"grade": string(domain.ReviewGradeManual)}).
		Where(squirrel.GtOrEq{"reviewed_at": dayStart})

	var count int
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &count, q); err != nil {
		return 0, fmt.Errorf("count new reviews today: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends a review log. A zero id is replaced with a fresh one.
func (r *Repo) Create(ctx context.Context, l *domain.ReviewLog) (*domain.ReviewLog, error) {
	id := l.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			id, l.CardID, string(l.Grade), string(l.State), l.Due, l.LastReview,
			l.Stability, l.Difficulty, l.ElapsedDays, l.LastElapsedDays, l.ScheduledDays,
			l.LearningSteps, l.ReviewedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &dst, q); err != nil {
		return nil, postgres.MapError(err, "review_log", id)
	}
	return toDomain(dst), nil
}

// Delete removes a review log by id.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id})

	affected, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return postgres.MapError(err, "review_log", id)
	}
	return postgres.NotFoundIfNone(affected, "review_log", id)
}

func toDomain(r row) *domain.ReviewLog {
	l := &domain.ReviewLog{
		ID:              r.ID,
		CardID:          r.CardID,
		Grade:           domain.ReviewGrade(r.Grade),
		State:           domain.CardState(r.State),
		Due:             r.Due.UTC(),
		Stability:       r.Stability,
		Difficulty:      r.Difficulty,
		ElapsedDays:     r.ElapsedDays,
		LastElapsedDays: r.LastElapsedDays,
		ScheduledDays:   r.ScheduledDays,
		LearningSteps:   r.LearningSteps,
		ReviewedAt:      r.ReviewedAt.UTC(),
	}
	if r.LastReview != nil {
		lr := r.LastReview.UTC()
		l.LastReview = &lr
	}
	return l
}
