package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onlyraves/internal/client/app"
	"onlyraves/internal/client/domain/entities"
)

type mockRaveRepository struct {
	mock.Mock
}

func (m *mockRaveRepository) FindAll(ctx context.Context) ([]entities.Rave, error) {
	args := m.Called(ctx)
	if raves, ok := args.Get(0).([]entities.Rave); ok {
		return raves, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRaveRepository) FindByID(ctx context.Context, id string) (*entities.Rave, error) {
	args := m.Called(ctx, id)
	if rave, ok := args.Get(0).(*entities.Rave); ok {
		return rave, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRaveRepository) FindByOwner(ctx context.Context, ownerID string) ([]entities.Rave, error) {
	args := m.Called(ctx, ownerID)
	if raves, ok := args.Get(0).([]entities.Rave); ok {
		return raves, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRaveRepository) Create(ctx context.Context, rave *entities.Rave) (*entities.Rave, error) {
	args := m.Called(ctx, rave)
	if created, ok := args.Get(0).(*entities.Rave); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRaveRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockGenreRepository struct {
	mock.Mock
}

func (m *mockGenreRepository) FindAll(ctx context.Context) ([]entities.Genre, error) {
	args := m.Called(ctx)
	if genres, ok := args.Get(0).([]entities.Genre); ok {
		return genres, args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryCache имитирует кэш без внешнего процесса.
type memoryCache struct {
	values   map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}

func TestCatalogListRavesAppliesFilter(t *testing.T) {
	raves := []entities.Rave{
		{ID: "rave-1", Name: "Bunker Night", Date: time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC), City: strPtr("Berlin")},
		{ID: "rave-2", Name: "Open Air", Date: time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC), City: strPtr("Hamburg")},
	}

	raveRepo := new(mockRaveRepository)
	raveRepo.On("FindAll", mock.Anything).Return(raves, nil).Once()

	useCase := app.NewCatalogUseCase(raveRepo, new(mockGenreRepository), newMemoryCache(), time.Minute)

	filtered, err := useCase.ListRaves(context.Background(), entities.FilterOptions{City: "berlin"})

	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "rave-1", filtered[0].ID)
	raveRepo.AssertExpectations(t)
}

func TestCatalogListRavesRereadsSourceEachCall(t *testing.T) {
	raveRepo := new(mockRaveRepository)
	raveRepo.On("FindAll", mock.Anything).Return([]entities.Rave{}, nil).Twice()

	useCase := app.NewCatalogUseCase(raveRepo, new(mockGenreRepository), newMemoryCache(), time.Minute)

	_, err := useCase.ListRaves(context.Background(), entities.FilterOptions{})
	require.NoError(t, err)
	_, err = useCase.ListRaves(context.Background(), entities.FilterOptions{})
	require.NoError(t, err)

	raveRepo.AssertExpectations(t)
}

func TestCatalogDeleteRaveOwnerOnly(t *testing.T) {
	raveRepo := new(mockRaveRepository)
	raveRepo.On("FindByID", mock.Anything, "rave-1").
		Return(&entities.Rave{ID: "rave-1", OwnerID: "owner-1"}, nil).Once()

	useCase := app.NewCatalogUseCase(raveRepo, new(mockGenreRepository), newMemoryCache(), time.Minute)

	err := useCase.DeleteRave(context.Background(), "rave-1", "intruder")

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotRaveOwner)
	raveRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCatalogDeleteRaveByOwner(t *testing.T) {
	raveRepo := new(mockRaveRepository)
	raveRepo.On("FindByID", mock.Anything, "rave-1").
		Return(&entities.Rave{ID: "rave-1", OwnerID: "owner-1"}, nil).Once()
	raveRepo.On("Delete", mock.Anything, "rave-1").Return(nil).Once()

	useCase := app.NewCatalogUseCase(raveRepo, new(mockGenreRepository), newMemoryCache(), time.Minute)

	require.NoError(t, useCase.DeleteRave(context.Background(), "rave-1", "owner-1"))
	raveRepo.AssertExpectations(t)
}

func TestCatalogCreateRaveValidates(t *testing.T) {
	useCase := app.NewCatalogUseCase(new(mockRaveRepository), new(mockGenreRepository), newMemoryCache(), time.Minute)

	_, err := useCase.CreateRave(context.Background(), &entities.Rave{
		OwnerID: "owner-1",
		Name:    "",
		Date:    time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrEmptyName)
}

func TestCatalogListGenresPopulatesCache(t *testing.T) {
	genres := []entities.Genre{
		{ID: "g-1", Name: "Techno", Hardness: 5},
		{ID: "g-2", Name: "Goa", Hardness: 4},
	}

	genreRepo := new(mockGenreRepository)
	genreRepo.On("FindAll", mock.Anything).Return(genres, nil).Once()

	genreCache := newMemoryCache()
	useCase := app.NewCatalogUseCase(new(mockRaveRepository), genreRepo, genreCache, time.Minute)

	// Первый вызов идет в репозиторий и наполняет кэш.
	listed, err := useCase.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, genres, listed)
	assert.Equal(t, 1, genreCache.setCalls)

	// Второй вызов обслуживается из кэша.
	listed, err = useCase.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, genres, listed)
	genreRepo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestCatalogListGenresSurvivesBrokenCache(t *testing.T) {
	genres := []entities.Genre{{ID: "g-1", Name: "Techno", Hardness: 5}}

	genreRepo := new(mockGenreRepository)
	genreRepo.On("FindAll", mock.Anything).Return(genres, nil).Once()

	genreCache := newMemoryCache()
	genreCache.setErr = errStorage

	useCase := app.NewCatalogUseCase(new(mockRaveRepository), genreRepo, genreCache, time.Minute)

	listed, err := useCase.ListGenres(context.Background())

	require.NoError(t, err, "cache failures must not break the listing")
	assert.Equal(t, genres, listed)
}

func TestCatalogListGenresIgnoresCorruptCacheEntry(t *testing.T) {
	genres := []entities.Genre{{ID: "g-1", Name: "Techno", Hardness: 5}}

	genreRepo := new(mockGenreRepository)
	genreRepo.On("FindAll", mock.Anything).Return(genres, nil).Once()

	genreCache := newMemoryCache()
	genreCache.values["genres:all"] = "{not json"

	useCase := app.NewCatalogUseCase(new(mockRaveRepository), genreRepo, genreCache, time.Minute)

	listed, err := useCase.ListGenres(context.Background())

	require.NoError(t, err)
	assert.Equal(t, genres, listed)

	// Кэш перезаписан валидным значением.
	var decoded []entities.Genre
	require.NoError(t, json.Unmarshal([]byte(genreCache.values["genres:all"]), &decoded))
	assert.Equal(t, genres, decoded)
}
