package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/api"
	"onlyraves/internal/client/ports/cache"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

const (
	methodListRaves   = "ListRaves"
	methodGetRave     = "GetRave"
	methodListByOwner = "ListByOwner"
	methodCreateRave  = "CreateRave"
	methodDeleteRave  = "DeleteRave"
	methodListGenres  = "ListGenres"

	msgListingRaves      = "listing raves"
	msgRavesFiltered     = "raves filtered"
	msgCreatingRave      = "creating rave"
	msgRaveCreated       = "rave created"
	msgDeletingRave      = "deleting rave"
	msgRaveDeleted       = "rave deleted"
	msgDeleteNotOwner    = "delete rejected: requester is not the owner"
	msgGenresFromCache   = "genres served from cache"
	msgGenresCacheMiss   = "genre cache miss, loading from repository"
	msgGenresCacheDecode = "failed to decode cached genres, falling back to repository"
	msgErrListRaves      = "failed to list raves"
	msgErrFindRave       = "failed to find rave"
	msgErrCreateRave     = "failed to create rave"
	msgErrDeleteRave     = "failed to delete rave"
	msgErrListGenres     = "failed to list genres"
	msgErrCacheGenres    = "failed to cache genres"

	errCtxListingRaves   = "listing raves"
	errCtxFindingRave    = "finding rave"
	errCtxValidatingRave = "validating rave"
	errCtxCreatingRave   = "creating rave"
	errCtxDeletingRave   = "deleting rave"
	errCtxCheckingOwner  = "checking rave owner"
	errCtxListingGenres  = "listing genres"

	genresCacheKey = "genres:all"
)

// CatalogUseCaseImpl реализует интерфейс api.CatalogUseCase.
type CatalogUseCaseImpl struct {
	raves    repositories.RaveRepository
	genres   repositories.GenreRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCatalogUseCase создает новый экземпляр сценариев каталога.
func NewCatalogUseCase(
	raves repositories.RaveRepository,
	genres repositories.GenreRepository,
	genreCache cache.Cache,
	cacheTTL time.Duration,
) api.CatalogUseCase {
	return &CatalogUseCaseImpl{
		raves:    raves,
		genres:   genres,
		cache:    genreCache,
		cacheTTL: cacheTTL,
	}
}

// ListRaves возвращает каталог, суженный по критериям. Источник заново
// читается при каждом вызове: результаты фильтрации по устаревшему списку
// не переживают обращение.
func (c *CatalogUseCaseImpl) ListRaves(ctx context.Context, opts entities.FilterOptions) ([]entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListRaves))
	log.Debug(ctx, msgListingRaves)

	raves, err := c.raves.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListRaves, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingRaves, err)
	}

	filtered := services.FilterRaves(raves, opts)
	log.Debug(ctx, msgRavesFiltered, zap.Int("total", len(raves)), zap.Int("matched", len(filtered)))
	return filtered, nil
}

// GetRave возвращает событие по идентификатору с жанром и промоутером.
func (c *CatalogUseCaseImpl) GetRave(ctx context.Context, id string) (*entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetRave), zap.String("raveID", id))

	rave, err := c.raves.FindByID(ctx, id)
	if err != nil {
		log.Debug(ctx, msgErrFindRave, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingRave, err)
	}
	return rave, nil
}

// ListByOwner возвращает события, созданные указанным пользователем.
func (c *CatalogUseCaseImpl) ListByOwner(ctx context.Context, ownerID string) ([]entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListByOwner), zap.String("ownerID", ownerID))

	raves, err := c.raves.FindByOwner(ctx, ownerID)
	if err != nil {
		log.Error(ctx, msgErrListRaves, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingRaves, err)
	}
	return raves, nil
}

// CreateRave валидирует и создает новое событие.
func (c *CatalogUseCaseImpl) CreateRave(ctx context.Context, rave *entities.Rave) (*entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateRave), zap.String("ownerID", rave.OwnerID))
	log.Debug(ctx, msgCreatingRave, zap.String("name", rave.Name))

	if err := rave.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRave, err)
	}

	created, err := c.raves.Create(ctx, rave)
	if err != nil {
		log.Error(ctx, msgErrCreateRave, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingRave, err)
	}

	log.Info(ctx, msgRaveCreated, zap.String("raveID", created.ID))
	return created, nil
}

// DeleteRave удаляет событие. Удаление доступно только владельцу.
func (c *CatalogUseCaseImpl) DeleteRave(ctx context.Context, id, requesterID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteRave),
		zap.String("raveID", id),
		zap.String("requesterID", requesterID),
	)
	log.Debug(ctx, msgDeletingRave)

	rave, err := c.raves.FindByID(ctx, id)
	if err != nil {
		log.Debug(ctx, msgErrFindRave, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingOwner, err)
	}

	if rave.OwnerID != requesterID {
		log.Debug(ctx, msgDeleteNotOwner)
		return fmt.Errorf("%s: %w", errCtxCheckingOwner, entities.ErrNotRaveOwner)
	}

	if err := c.raves.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeleteRave, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingRave, err)
	}

	log.Info(ctx, msgRaveDeleted)
	return nil
}

// ListGenres возвращает справочник жанров. Справочник мал и меняется редко,
// поэтому обслуживается через кэш.
func (c *CatalogUseCaseImpl) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListGenres))

	if cached, err := c.cache.Get(ctx, genresCacheKey); err == nil && cached != "" {
		var genres []entities.Genre
		if err := json.Unmarshal([]byte(cached), &genres); err == nil {
			log.Debug(ctx, msgGenresFromCache, zap.Int("count", len(genres)))
			return genres, nil
		}
		log.Warn(ctx, msgGenresCacheDecode)
	}

	log.Debug(ctx, msgGenresCacheMiss)

	genres, err := c.genres.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListGenres, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingGenres, err)
	}

	if encoded, err := json.Marshal(genres); err == nil {
		if err := c.cache.Set(ctx, genresCacheKey, string(encoded), c.cacheTTL); err != nil {
			log.Warn(ctx, msgErrCacheGenres, zap.Error(err))
		}
	}

	return genres, nil
}
