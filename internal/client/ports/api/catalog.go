package api

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// CatalogUseCase определяет порт для работы с каталогом событий.
type CatalogUseCase interface {
	// ListRaves возвращает каталог, отсортированный по дате по возрастанию
	// и суженный по переданным критериям.
	ListRaves(ctx context.Context, opts entities.FilterOptions) ([]entities.Rave, error)

	GetRave(ctx context.Context, id string) (*entities.Rave, error)

	ListByOwner(ctx context.Context, ownerID string) ([]entities.Rave, error)

	CreateRave(ctx context.Context, rave *entities.Rave) (*entities.Rave, error)

	// DeleteRave удаляет событие; удалить может только владелец.
	DeleteRave(ctx context.Context, id, requesterID string) error

	ListGenres(ctx context.Context) ([]entities.Genre, error)
}
