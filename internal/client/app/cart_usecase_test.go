package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onlyraves/internal/client/app"
	"onlyraves/internal/client/domain/entities"
)

var errStorage = errors.New("storage failure")

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Insert(ctx context.Context, userID, raveID string) error {
	args := m.Called(ctx, userID, raveID)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID, raveID string) error {
	args := m.Called(ctx, userID, raveID)
	return args.Error(0)
}

func (m *mockCartRepository) FindByUser(ctx context.Context, userID string) ([]entities.CartLine, error) {
	args := m.Called(ctx, userID)
	if lines, ok := args.Get(0).([]entities.CartLine); ok {
		return lines, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCartAddSuccess(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Insert", mock.Anything, "user-1", "rave-1").Return(nil).Once()

	useCase := app.NewCartUseCase(repo)

	require.NoError(t, useCase.Add(context.Background(), "user-1", "rave-1"))
	repo.AssertExpectations(t)
}

func TestCartAddDuplicateIsDistinctOutcome(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Insert", mock.Anything, "user-1", "rave-1").
		Return(entities.ErrDuplicateCartLine).Once()

	useCase := app.NewCartUseCase(repo)

	err := useCase.Add(context.Background(), "user-1", "rave-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrDuplicateCartLine,
		"duplicate add must be distinguishable from generic failures")
	repo.AssertExpectations(t)
}

func TestCartRemoveIdempotent(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Delete", mock.Anything, "user-1", "rave-1").Return(nil).Twice()

	useCase := app.NewCartUseCase(repo)

	// Повторное удаление той же строки остается успешным.
	require.NoError(t, useCase.Remove(context.Background(), "user-1", "rave-1"))
	require.NoError(t, useCase.Remove(context.Background(), "user-1", "rave-1"))
	repo.AssertExpectations(t)
}

func TestCartListComputesTotals(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("FindByUser", mock.Anything, "user-1").Return([]entities.CartLine{
		{ID: "line-1", UserID: "user-1", RaveID: "rave-1", Rave: &entities.Rave{ID: "rave-1", TicketPrice: floatPtr(10)}},
		{ID: "line-2", UserID: "user-1", RaveID: "rave-2", Rave: &entities.Rave{ID: "rave-2", TicketPrice: floatPtr(25.5)}},
		{ID: "line-3", UserID: "user-1", RaveID: "rave-3", Rave: &entities.Rave{ID: "rave-3", TicketPrice: nil}},
	}, nil).Once()

	useCase := app.NewCartUseCase(repo)

	items, totals, err := useCase.List(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.InDelta(t, 35.5, totals.Subtotal, 1e-9)
	assert.InDelta(t, 3.55, totals.Fee, 1e-9)
	assert.InDelta(t, 39.05, totals.Total, 1e-9)
	repo.AssertExpectations(t)
}

func TestCartListDropsDanglingLines(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("FindByUser", mock.Anything, "user-1").Return([]entities.CartLine{
		{ID: "line-1", UserID: "user-1", RaveID: "rave-1", Rave: &entities.Rave{ID: "rave-1", TicketPrice: floatPtr(20)}},
		{ID: "line-2", UserID: "user-1", RaveID: "rave-gone", Rave: nil},
	}, nil).Once()

	useCase := app.NewCartUseCase(repo)

	items, totals, err := useCase.List(context.Background(), "user-1")

	require.NoError(t, err, "dangling line is not an error")
	require.Len(t, items, 1, "line with an unresolvable rave is dropped")
	assert.Equal(t, "rave-1", items[0].ID)
	assert.InDelta(t, 22, totals.Total, 1e-9, "totals count surviving lines only")
	repo.AssertExpectations(t)
}

func TestCartListStorageError(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("FindByUser", mock.Anything, "user-1").Return(nil, errStorage).Once()

	useCase := app.NewCartUseCase(repo)

	_, _, err := useCase.List(context.Background(), "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	repo.AssertExpectations(t)
}

func floatPtr(f float64) *float64 {
	return &f
}
