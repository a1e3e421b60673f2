package study

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"sync"
	"time"
)

var _ cardRepo = &cardRepoMock{}

type cardRepoMock struct {
	CreateFunc           func(ctx context.Context, card *domain.Card) (*domain.Card, error)
	GetByIDFunc          func(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)
	GetByIDForUpdateFunc func(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)
	GetDueCardsFunc      func(ctx context.Context, before time.Time, limit int) ([]*domain.Card, error)
	GetNewCardsFunc      func(ctx context.Context, limit int) ([]*domain.Card, error)
	ListIDsFunc          func(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
	UpdateFunc           func(ctx context.Context, card *domain.Card) (*domain.Card, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Card *domain.Card
		}
		GetByID []struct {
			Ctx    context.Context
			CardID uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx    context.Context
			CardID uuid.UUID
		}
		GetDueCards []struct {
			Ctx    context.Context
			Before time.Time
			Limit  int
		}
		GetNewCards []struct {
			Ctx   context.Context
			Limit int
		}
		ListIDs []struct {
			Ctx     context.Context
			AfterID uuid.UUID
			Limit   int
		}
		Update []struct {
			Ctx  context.Context
			Card *domain.Card
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockGetDueCards      sync.RWMutex
	lockGetNewCards      sync.RWMutex
	lockListIDs          sync.RWMutex
	lockUpdate           sync.RWMutex
}

func (mock *cardRepoMock) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if mock.CreateFunc == nil {
		panic("cardRepoMock.CreateFunc: method is nil but cardRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Card *domain.Card
	}{Ctx: ctx, Card: card}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, card)
}

func (mock *cardRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Card *domain.Card
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *cardRepoMock) GetByID(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	if mock.GetByIDFunc == nil {
		panic("cardRepoMock.GetByIDFunc: method is nil but cardRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CardID uuid.UUID
	}{Ctx: ctx, CardID: cardID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, cardID)
}

func (mock *cardRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	CardID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *cardRepoMock) GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("cardRepoMock.GetByIDForUpdateFunc: method is nil but cardRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CardID uuid.UUID
	}{Ctx: ctx, CardID: cardID}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, cardID)
}

func (mock *cardRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx    context.Context
	CardID uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *cardRepoMock) GetDueCards(ctx context.Context, before time.Time, limit int) ([]*domain.Card, error) {
	if mock.GetDueCardsFunc == nil {
		panic("cardRepoMock.GetDueCardsFunc: method is nil but cardRepo.GetDueCards was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Before time.Time
		Limit  int
	}{Ctx: ctx, Before: before, Limit: limit}
	mock.lockGetDueCards.Lock()
	mock.calls.GetDueCards = append(mock.calls.GetDueCards, callInfo)
	mock.lockGetDueCards.Unlock()
	return mock.GetDueCardsFunc(ctx, before, limit)
}

func (mock *cardRepoMock) GetDueCardsCalls() []struct {
	Ctx    context.Context
	Before time.Time
	Limit  int
} {
	mock.lockGetDueCards.RLock()
	calls := mock.calls.GetDueCards
	mock.lockGetDueCards.RUnlock()
	return calls
}

func (mock *cardRepoMock) GetNewCards(ctx context.Context, limit int) ([]*domain.Card, error) {
	if mock.GetNewCardsFunc == nil {
		panic("cardRepoMock.GetNewCardsFunc: method is nil but cardRepo.GetNewCards was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockGetNewCards.Lock()
	mock.calls.GetNewCards = append(mock.calls.GetNewCards, callInfo)
	mock.lockGetNewCards.Unlock()
	return mock.GetNewCardsFunc(ctx, limit)
}

func (mock *cardRepoMock) GetNewCardsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockGetNewCards.RLock()
	calls := mock.calls.GetNewCards
	mock.lockGetNewCards.RUnlock()
	return calls
}

func (mock *cardRepoMock) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("cardRepoMock.ListIDsFunc: method is nil but cardRepo.ListIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AfterID uuid.UUID
		Limit   int
	}{Ctx: ctx, AfterID: afterID, Limit: limit}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx, afterID, limit)
}

func (mock *cardRepoMock) ListIDsCalls() []struct {
	Ctx     context.Context
	AfterID uuid.UUID
	Limit   int
} {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

func (mock *cardRepoMock) Update(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if mock.UpdateFunc == nil {
		panic("cardRepoMock.UpdateFunc: method is nil but cardRepo.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Card *domain.Card
	}{Ctx: ctx, Card: card}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, card)
}

func (mock *cardRepoMock) UpdateCalls() []struct {
	Ctx  context.Context
	Card *domain.Card
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
