package reading

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error)
	Create(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error)
	Update(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error)
	ListDueByKind(ctx context.Context, kind domain.ItemKind, before time.Time) ([]*domain.ReadingItem, error)
	MaxTopicPosition(ctx context.Context) (float64, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position float64) error
	UpdateDue(ctx context.Context, id uuid.UUID, due time.Time) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service schedules incremental-reading topics and extracts.
type Service struct {
	items itemRepo
	tx    txManager
	log   *slog.Logger
	cfg   domain.ReadingConfig
	rng   randSource
	clock func() time.Time
}

// NewService creates a new Reading service.
func NewService(log *slog.Logger, items itemRepo, tx txManager, cfg domain.ReadingConfig) *Service {
	return &Service{
		items: items,
		tx:    tx,
		log:   log.With("service", "reading"),
		cfg:   cfg,
		rng:   &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
		clock: time.Now,
	}
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// lockedRand makes a *rand.Rand safe for concurrent requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
