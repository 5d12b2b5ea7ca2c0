package repositories

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// RaveRepository определяет интерфейс для работы с каталогом событий.
// Методы Find* возвращают события с разрезолвленными через join жанром и промоутером.
type RaveRepository interface {
	// FindAll возвращает весь каталог, отсортированный по дате по возрастанию.
	FindAll(ctx context.Context) ([]entities.Rave, error)

	FindByID(ctx context.Context, id string) (*entities.Rave, error)

	FindByOwner(ctx context.Context, ownerID string) ([]entities.Rave, error)

	Create(ctx context.Context, rave *entities.Rave) (*entities.Rave, error)

	Delete(ctx context.Context, id string) error
}
