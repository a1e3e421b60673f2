package study

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"sync"
	"time"
)

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CountNewTodayFunc   func(ctx context.Context, dayStart time.Time) (int, error)
	CreateFunc          func(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	GetByCardIDFunc     func(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewLog, error)
	GetLastByCardIDFunc func(ctx context.Context, cardID uuid.UUID) (*domain.ReviewLog, error)

	calls struct {
		CountNewToday []struct {
			Ctx      context.Context
			DayStart time.Time
		}
		Create []struct {
			Ctx context.Context
			Log *domain.ReviewLog
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByCardID []struct {
			Ctx    context.Context
			CardID uuid.UUID
		}
		GetLastByCardID []struct {
			Ctx    context.Context
			CardID uuid.UUID
		}
	}
	lockCountNewToday   sync.RWMutex
	lockCreate          sync.RWMutex
	lockDelete          sync.RWMutex
	lockGetByCardID     sync.RWMutex
	lockGetLastByCardID sync.RWMutex
}

func (mock *reviewLogRepoMock) CountNewToday(ctx context.Context, dayStart time.Time) (int, error) {
	if mock.CountNewTodayFunc == nil {
		panic("reviewLogRepoMock.CountNewTodayFunc: method is nil but reviewLogRepo.CountNewToday was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		DayStart time.Time
	}{Ctx: ctx, DayStart: dayStart}
	mock.lockCountNewToday.Lock()
	mock.calls.CountNewToday = append(mock.calls.CountNewToday, callInfo)
	mock.lockCountNewToday.Unlock()
	return mock.CountNewTodayFunc(ctx, dayStart)
}

func (mock *reviewLogRepoMock) CountNewTodayCalls() []struct {
	Ctx      context.Context
	DayStart time.Time
} {
	mock.lockCountNewToday.RLock()
	calls := mock.calls.CountNewToday
	mock.lockCountNewToday.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	if mock.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc: method is nil but reviewLogRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Log *domain.ReviewLog
	}{Ctx: ctx, Log: log}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, log)
}

func (mock *reviewLogRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Log *domain.ReviewLog
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("reviewLogRepoMock.DeleteFunc: method is nil but reviewLogRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *reviewLogRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewLog, error) {
	if mock.GetByCardIDFunc == nil {
		panic("reviewLogRepoMock.GetByCardIDFunc: method is nil but reviewLogRepo.GetByCardID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CardID uuid.UUID
	}{Ctx: ctx, CardID: cardID}
	mock.lockGetByCardID.Lock()
	mock.calls.GetByCardID = append(mock.calls.GetByCardID, callInfo)
	mock.lockGetByCardID.Unlock()
	return mock.GetByCardIDFunc(ctx, cardID)
}

func (mock *reviewLogRepoMock) GetByCardIDCalls() []struct {
	Ctx    context.Context
	CardID uuid.UUID
} {
	mock.lockGetByCardID.RLock()
	calls := mock.calls.GetByCardID
	mock.lockGetByCardID.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) GetLastByCardID(ctx context.Context, cardID uuid.UUID) (*domain.ReviewLog, error) {
	if mock.GetLastByCardIDFunc == nil {
		panic("reviewLogRepoMock.GetLastByCardIDFunc: method is nil but reviewLogRepo.GetLastByCardID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CardID uuid.UUID
	}{Ctx: ctx, CardID: cardID}
	mock.lockGetLastByCardID.Lock()
	mock.calls.GetLastByCardID = append(mock.calls.GetLastByCardID, callInfo)
	mock.lockGetLastByCardID.Unlock()
	return mock.GetLastByCardIDFunc(ctx, cardID)
}

func (mock *reviewLogRepoMock) GetLastByCardIDCalls() []struct {
	Ctx    context.Context
	CardID uuid.UUID
} {
	mock.lockGetLastByCardID.RLock()
	calls := mock.calls.GetLastByCardID
	mock.lockGetLastByCardID.RUnlock()
	return calls
}
