package repositories

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// GenreRepository определяет интерфейс для справочника жанров.
type GenreRepository interface {
	// FindAll возвращает все жанры, отсортированные по имени.
	FindAll(ctx context.Context) ([]entities.Genre, error)
}
