// Package reading implements the incremental-reading item repository using
// PostgreSQL.
package reading

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

const (
	table  = "reading_items"
	entity = "reading_item"
)

var columns = []string{
	"id", "kind", "priority", "last_read", "read_count", "due", "position", "created_at", "updated_at",
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	Kind      string     `db:"kind"`
	Priority  int        `db:"priority"`
	LastRead  *time.Time `db:"last_read"`
	ReadCount int        `db:"read_count"`
	Due       time.Time  `db:"due"`
	Position  *float64   `db:"position"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Repo provides reading item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reading item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns an item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error) {
	return r.get(ctx, id, r.selectBuilder().Where(squirrel.Eq{"id": id}))
}

// GetByIDForUpdate is GetByID with a row lock.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error) {
	return r.get(ctx, id, r.selectBuilder().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// ListDueByKind returns items of one kind due strictly before the given
// instant. Topics come in queue order (position, unpositioned last);
// extracts by due date, then priority descending.
func (r *Repo) ListDueByKind(ctx context.Context, kind domain.ItemKind, before time.Time) ([]*domain.ReadingItem, error) {
	q := r.selectBuilder().
		Where(squirrel.Eq{"kind": string(kind)}).
		Where(squirrel.Lt{"due": before})

	if kind == domain.ItemKindTopic {
		q = q.OrderBy("position ASC NULLS LAST", "id ASC")
	} else {
		q = q.OrderBy("due ASC", "priority DESC", "id ASC")
	}

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, q); err != nil {
		return nil, fmt.Errorf("list due %s items: %w", strings.ToLower(string(kind)), err)
	}

	items := make([]*domain.ReadingItem, len(rows))
	for i, rw := range rows {
		items[i] = toDomain(rw)
	}
	return items, nil
}

// MaxTopicPosition returns the largest topic position, or 0 when no topic
// has one.
func (r *Repo) MaxTopicPosition(ctx context.Context) (float64, error) {
	q := postgres.Builder().
		Select("COALESCE(MAX(position), 0)").
		From(table).
		Where(squirrel.Eq{"kind": string(domain.ItemKindTopic)})

	var pos float64
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &pos, q); err != nil {
		return 0, fmt.Errorf("max topic position: %w", err)
	}
	return pos, nil
}

// Create inserts an item. Zero timestamps are set to now.
func (r *Repo) Create(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			item.ID, string(item.Kind), item.Priority, item.LastRead, item.ReadCount,
			item.Due, item.Position, createdAt, now,
		).
		Suffix(returning())

	return r.get(ctx, item.ID, q)
}

// Update writes the item's scheduling state.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) Update(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error) {
	q := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"priority":   item.Priority,
			"last_read":  item.LastRead,
			"read_count": item.ReadCount,
			"due":        item.Due,
			"position":   item.Position,
			"updated_at": time.Now().UTC().Truncate(time.Microsecond),
		}).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix(returning())

	return r.get(ctx, item.ID, q)
}

// UpdatePosition moves a topic within the queue.
func (r *Repo) UpdatePosition(ctx context.Context, id uuid.UUID, position float64) error {
	return r.set(ctx, id, "position", position)
}

// UpdateDue moves an item's due date.
func (r *Repo) UpdateDue(ctx context.Context, id uuid.UUID, due time.Time) error {
	return r.set(ctx, id, "due", due)
}

func (r *Repo) set(ctx context.Context, id uuid.UUID, column string, value any) error {
	q := postgres.Builder().
		Update(table).
		Set(column, value).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(squirrel.Eq{"id": id})

	affected, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	return postgres.NotFoundIfNone(affected, entity, id)
}

func (r *Repo) selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, q squirrel.Sqlizer) (*domain.ReadingItem, error) {
	var dst row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &dst, q); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return toDomain(dst), nil
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toDomain(r row) *domain.ReadingItem {
	item := &domain.ReadingItem{
		ID:   r.ID,
		Kind: domain.ItemKind(r.Kind),
		IRState: domain.IRState{
			Priority:  r.Priority,
			ReadCount: r.ReadCount,
			Due:       r.Due.UTC(),
			Position:  r.Position,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if r.LastRead != nil {
		lr := r.LastRead.UTC()
		item.LastRead = &lr
	}
	return item
}
