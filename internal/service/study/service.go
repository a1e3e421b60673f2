package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	GetByID(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)
	GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) (*domain.Card, error)
	GetDueCards(ctx context.Context, before time.Time, limit int) ([]*domain.Card, error)
	GetNewCards(ctx context.Context, limit int) ([]*domain.Card, error)
	ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	GetByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewLog, error)
	GetLastByCardID(ctx context.Context, cardID uuid.UUID) (*domain.ReviewLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountNewToday(ctx context.Context, dayStart time.Time) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the flashcard study business logic on top of FSRS.
type Service struct {
	cards     cardRepo
	reviews   reviewLogRepo
	tx        txManager
	log       *slog.Logger
	srsConfig domain.SRSConfig
	scheduler *fsrs.FSRS
	clock     func() time.Time
}

// NewService creates a new Study service.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	reviews reviewLogRepo,
	tx txManager,
	srsConfig domain.SRSConfig,
	params fsrs.Parameters,
) (*Service, error) {
	scheduler, err := fsrs.New(params)
	if err != nil {
		return nil, fmt.Errorf("invalid FSRS parameters: %w", err)
	}

	return &Service{
		cards:     cards,
		reviews:   reviews,
		tx:        tx,
		log:       log.With("service", "study"),
		srsConfig: srsConfig,
		scheduler: scheduler,
		clock:     time.Now,
	}, nil
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}
