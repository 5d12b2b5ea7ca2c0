package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

// GenreRepository реализует интерфейс repositories.GenreRepository для работы с Postgres.
type GenreRepository struct {
	pool PgxPoolInterface
}

// NewGenreRepository создает новый экземпляр репозитория жанров.
func NewGenreRepository(pool PgxPoolInterface) repositories.GenreRepository {
	return &GenreRepository{pool: pool}
}

// FindAll возвращает все жанры, отсортированные по имени.
func (r *GenreRepository) FindAll(ctx context.Context) ([]entities.Genre, error) {
	log := logger.Log(ctx).With(zap.String("repository", "genre"), zap.String("method", "FindAll"))

	query := `
        SELECT genre_id, genre_name, hardness
        FROM genre
        ORDER BY genre_name ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error querying genres", zap.Error(err))
		return nil, fmt.Errorf("error querying genres: %w", err)
	}
	defer rows.Close()

	genres := make([]entities.Genre, 0)
	for rows.Next() {
		var genre entities.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Hardness); err != nil {
			return nil, fmt.Errorf("error scanning genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", err)
	}

	return genres, nil
}
