// Package card implements the Card repository using PostgreSQL.
package card

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

const table = "cards"

var columns = []string{
	"id", "state", "due", "stability", "difficulty", "elapsed_days", "scheduled_days",
	"reps", "lapses", "learning_steps", "last_review", "created_at", "updated_at",
}

// row mirrors the cards table for pgxscan.
type row struct {
	ID            uuid.UUID  `db:"id"`
	State         string     `db:"state"`
	Due           time.Time  `db:"due"`
	Stability     float64    `db:"stability"`
	Difficulty    float64    `db:"difficulty"`
	ElapsedDays   int        `db:"elapsed_days"`
	ScheduledDays int        `db:"scheduled_days"`
	Reps          int        `db:"reps"`
	Lapses        int        `db:"lapses"`
	LearningSteps int        `db:"learning_steps"`
	LastReview    *time.Time `db:"last_review"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a card by primary key.
func (r *Repo) GetByID(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	return r.get(ctx, cardID, r.selectBuilder().Where(squirrel.Eq{"id": cardID}))
}

// GetByIDForUpdate is GetByID with a row lock held until the surrounding
// transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	return r.get(ctx, cardID, r.selectBuilder().Where(squirrel.Eq{"id": cardID}).Suffix("FOR UPDATE"))
}

// GetDueCards returns non-NEW cards due strictly before the given instant,
// most overdue first.
func (r *Repo) GetDueCards(ctx context.Context, before time.Time, limit int) ([]*domain.Card, error) {
	q := r.selectBuilder().
		Where(squirrel.NotEq{"state": string(domain.CardStateNew)}).
		Where(squirrel.Lt{"due": before}).
		OrderBy("due ASC", "id ASC").
		Limit(uint64(max(limit, 0)))

	return r.list(ctx, "get due cards", q)
}

// GetNewCards returns NEW cards in creation order.
func (r *Repo) GetNewCards(ctx context.Context, limit int) ([]*domain.Card, error) {
	q := r.selectBuilder().
		Where(squirrel.Eq{"state": string(domain.CardStateNew)}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(max(limit, 0)))

	return r.list(ctx, "get new cards", q)
}

// ListIDs returns up to limit card ids greater than afterID in id order.
// Pass uuid.Nil to start from the beginning.
func (r *Repo) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	q := postgres.Builder().
		Select("id").
		From(table).
		Where(squirrel.Gt{"id": afterID}).
		OrderBy("id ASC").
		Limit(uint64(max(limit, 0)))

	var ids []uuid.UUID
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &ids, q); err != nil {
		return nil, fmt.Errorf("list card ids: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a card and returns the persisted row. Zero timestamps are
// set to now; a duplicate id results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	createdAt := card.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			card.ID, string(card.State), card.Due, card.Stability, card.Difficulty,
			card.ElapsedDays, card.ScheduledDays, card.Reps, card.Lapses, card.LearningSteps,
			card.LastReview, createdAt, now,
		).
		Suffix(returning())

	return r.get(ctx, card.ID, q)
}

// Update writes every scheduling field of the card and bumps updated_at.
// Returns domain.ErrNotFound if the card does not exist.
func (r *Repo) Update(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	q := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"state":          string(card.State),
			"due":            card.Due,
			"stability":      card.Stability,
			"difficulty":     card.Difficulty,
			"elapsed_days":   card.ElapsedDays,
			"scheduled_days": card.ScheduledDays,
			"reps":           card.Reps,
			"lapses":         card.Lapses,
			"learning_steps": card.LearningSteps,
			"last_review":    card.LastReview,
			"updated_at":     time.Now().UTC().Truncate(time.Microsecond),
		}).
		Where(squirrel.Eq{"id": card.ID}).
		Suffix(returning())

	return r.get(ctx, card.ID, q)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, q squirrel.Sqlizer) (*domain.Card, error) {
	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &dst, q); err != nil {
		return nil, postgres.MapError(err, "card", id)
	}
	return toDomain(dst), nil
}

func (r *Repo) list(ctx context.Context, op string, q squirrel.Sqlizer) ([]*domain.Card, error) {
	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cards := make([]*domain.Card, len(rows))
	for i, rw := range rows {
		cards[i] = toDomain(rw)
	}
	return cards, nil
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toDomain(r row) *domain.Card {
	return &domain.Card{
		ID:            r.ID,
		State:         domain.CardState(r.State),
		Due:           r.Due.UTC(),
		Stability:     r.Stability,
		Difficulty:    r.Difficulty,
		ElapsedDays:   r.ElapsedDays,
		ScheduledDays: r.ScheduledDays,
		Reps:          r.Reps,
		Lapses:        r.Lapses,
		LearningSteps: r.LearningSteps,
		LastReview:    utcPtr(r.LastReview),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
