package reading

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"sync"
	"time"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	CreateFunc           func(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error)
	ListDueByKindFunc    func(ctx context.Context, kind domain.ItemKind, before time.Time) ([]*domain.ReadingItem, error)
	MaxTopicPositionFunc func(ctx context.Context) (float64, error)
	UpdateFunc           func(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error)
	UpdateDueFunc        func(ctx context.Context, id uuid.UUID, due time.Time) error
	UpdatePositionFunc   func(ctx context.Context, id uuid.UUID, position float64) error

	calls struct {
		Create []struct {
			Ctx  context.Context
			Item *domain.ReadingItem
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListDueByKind []struct {
			Ctx    context.Context
			Kind   domain.ItemKind
			Before time.Time
		}
		MaxTopicPosition []struct {
			Ctx context.Context
		}
		Update []struct {
			Ctx  context.Context
			Item *domain.ReadingItem
		}
		UpdateDue []struct {
			Ctx context.Context
			Id  uuid.UUID
			Due time.Time
		}
		UpdatePosition []struct {
			Ctx      context.Context
			Id       uuid.UUID
			Position float64
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockListDueByKind    sync.RWMutex
	lockMaxTopicPosition sync.RWMutex
	lockUpdate           sync.RWMutex
	lockUpdateDue        sync.RWMutex
	lockUpdatePosition   sync.RWMutex
}

func (mock *itemRepoMock) Create(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.ReadingItem
	}{Ctx: ctx, Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *itemRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Item *domain.ReadingItem
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *itemRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReadingItem, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("itemRepoMock.GetByIDForUpdateFunc: method is nil but itemRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *itemRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *itemRepoMock) ListDueByKind(ctx context.Context, kind domain.ItemKind, before time.Time) ([]*domain.ReadingItem, error) {
	if mock.ListDueByKindFunc == nil {
		panic("itemRepoMock.ListDueByKindFunc: method is nil but itemRepo.ListDueByKind was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Kind   domain.ItemKind
		Before time.Time
	}{Ctx: ctx, Kind: kind, Before: before}
	mock.lockListDueByKind.Lock()
	mock.calls.ListDueByKind = append(mock.calls.ListDueByKind, callInfo)
	mock.lockListDueByKind.Unlock()
	return mock.ListDueByKindFunc(ctx, kind, before)
}

func (mock *itemRepoMock) ListDueByKindCalls() []struct {
	Ctx    context.Context
	Kind   domain.ItemKind
	Before time.Time
} {
	mock.lockListDueByKind.RLock()
	calls := mock.calls.ListDueByKind
	mock.lockListDueByKind.RUnlock()
	return calls
}

func (mock *itemRepoMock) MaxTopicPosition(ctx context.Context) (float64, error) {
	if mock.MaxTopicPositionFunc == nil {
		panic("itemRepoMock.MaxTopicPositionFunc: method is nil but itemRepo.MaxTopicPosition was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockMaxTopicPosition.Lock()
	mock.calls.MaxTopicPosition = append(mock.calls.MaxTopicPosition, callInfo)
	mock.lockMaxTopicPosition.Unlock()
	return mock.MaxTopicPositionFunc(ctx)
}

func (mock *itemRepoMock) MaxTopicPositionCalls() []struct{ Ctx context.Context } {
	mock.lockMaxTopicPosition.RLock()
	calls := mock.calls.MaxTopicPosition
	mock.lockMaxTopicPosition.RUnlock()
	return calls
}

func (mock *itemRepoMock) Update(ctx context.Context, item *domain.ReadingItem) (*domain.ReadingItem, error) {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.ReadingItem
	}{Ctx: ctx, Item: item}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, item)
}

func (mock *itemRepoMock) UpdateCalls() []struct {
	Ctx  context.Context
	Item *domain.ReadingItem
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *itemRepoMock) UpdateDue(ctx context.Context, id uuid.UUID, due time.Time) error {
	if mock.UpdateDueFunc == nil {
		panic("itemRepoMock.UpdateDueFunc: method is nil but itemRepo.UpdateDue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		Due time.Time
	}{Ctx: ctx, Id: id, Due: due}
	mock.lockUpdateDue.Lock()
	mock.calls.UpdateDue = append(mock.calls.UpdateDue, callInfo)
	mock.lockUpdateDue.Unlock()
	return mock.UpdateDueFunc(ctx, id, due)
}

func (mock *itemRepoMock) UpdateDueCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	Due time.Time
} {
	mock.lockUpdateDue.RLock()
	calls := mock.calls.UpdateDue
	mock.lockUpdateDue.RUnlock()
	return calls
}

func (mock *itemRepoMock) UpdatePosition(ctx context.Context, id uuid.UUID, position float64) error {
	if mock.UpdatePositionFunc == nil {
		panic("itemRepoMock.UpdatePositionFunc: method is nil but itemRepo.UpdatePosition was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Id       uuid.UUID
		Position float64
	}{Ctx: ctx, Id: id, Position: position}
	mock.lockUpdatePosition.Lock()
	mock.calls.UpdatePosition = append(mock.calls.UpdatePosition, callInfo)
	mock.lockUpdatePosition.Unlock()
	return mock.UpdatePositionFunc(ctx, id, position)
}

func (mock *itemRepoMock) UpdatePositionCalls() []struct {
	Ctx      context.Context
	Id       uuid.UUID
	Position float64
} {
	mock.lockUpdatePosition.RLock()
	calls := mock.calls.UpdatePosition
	mock.lockUpdatePosition.RUnlock()
	return calls
}
