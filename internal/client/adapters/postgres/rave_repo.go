package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

// Колонки события с разрезолвленными жанром и промоутером.
const raveSelectColumns = `
        r.rave_id, r.user_id, r.genre_id, r.rave_name, r.rave_date,
        r.rave_description, r.ticket_price, r.street, r.zip_code, r.city,
        g.genre_id, g.genre_name, g.hardness,
        p.user_id, p.first_name, p.last_name, p.username, p.age
`

// RaveRepository реализует интерфейс repositories.RaveRepository для работы с Postgres.
type RaveRepository struct {
	pool PgxPoolInterface
}

// NewRaveRepository создает новый экземпляр репозитория событий.
func NewRaveRepository(pool PgxPoolInterface) repositories.RaveRepository {
	return &RaveRepository{pool: pool}
}

// FindAll возвращает весь каталог, отсортированный по дате по возрастанию.
func (r *RaveRepository) FindAll(ctx context.Context) ([]entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rave"), zap.String("method", "FindAll"))

	query := `
        SELECT ` + raveSelectColumns + `
        FROM rave_data r
        LEFT JOIN genre g ON g.genre_id = r.genre_id
        LEFT JOIN user_data p ON p.user_id = r.user_id
        ORDER BY r.rave_date ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error querying raves", zap.Error(err))
		return nil, fmt.Errorf("error querying raves: %w", err)
	}
	defer rows.Close()

	return scanRaves(rows)
}

// FindByID находит событие по идентификатору.
func (r *RaveRepository) FindByID(ctx context.Context, id string) (*entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rave"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + raveSelectColumns + `
        FROM rave_data r
        LEFT JOIN genre g ON g.genre_id = r.genre_id
        LEFT JOIN user_data p ON p.user_id = r.user_id
        WHERE r.rave_id = $1
    `

	rave, err := scanRave(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "rave not found", zap.String("id", id))
			return nil, entities.ErrRaveNotFound
		}
		log.Error(ctx, "error finding rave by id", zap.Error(err))
		return nil, fmt.Errorf("error querying rave by id: %w", err)
	}

	return rave, nil
}

// FindByOwner возвращает события, созданные указанным пользователем.
func (r *RaveRepository) FindByOwner(ctx context.Context, ownerID string) ([]entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rave"), zap.String("method", "FindByOwner"))

	query := `
        SELECT ` + raveSelectColumns + `
        FROM rave_data r
        LEFT JOIN genre g ON g.genre_id = r.genre_id
        LEFT JOIN user_data p ON p.user_id = r.user_id
        WHERE r.user_id = $1
        ORDER BY r.rave_date ASC
    `

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		log.Error(ctx, "error querying raves by owner", zap.Error(err))
		return nil, fmt.Errorf("error querying raves by owner: %w", err)
	}
	defer rows.Close()

	return scanRaves(rows)
}

// Create создает новое событие.
func (r *RaveRepository) Create(ctx context.Context, rave *entities.Rave) (*entities.Rave, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rave"), zap.String("method", "Create"))

	query := `
        INSERT INTO rave_data (user_id, genre_id, rave_name, rave_date, rave_description,
                               ticket_price, street, zip_code, city)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING rave_id, user_id, genre_id, rave_name, rave_date, rave_description,
                  ticket_price, street, zip_code, city
    `

	var created entities.Rave
	err := r.pool.QueryRow(ctx, query,
		rave.OwnerID,
		rave.GenreID,
		rave.Name,
		rave.Date,
		rave.Description,
		rave.TicketPrice,
		rave.Street,
		rave.ZipCode,
		rave.City,
	).Scan(
		&created.ID,
		&created.OwnerID,
		&created.GenreID,
		&created.Name,
		&created.Date,
		&created.Description,
		&created.TicketPrice,
		&created.Street,
		&created.ZipCode,
		&created.City,
	)

	if err != nil {
		log.Error(ctx, "error creating rave", zap.Error(err))
		return nil, fmt.Errorf("error creating rave: %w", err)
	}

	return &created, nil
}

// Delete удаляет событие по идентификатору.
func (r *RaveRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "rave"), zap.String("method", "Delete"))

	query := `
        DELETE FROM rave_data
        WHERE rave_id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting rave", zap.Error(err))
		return fmt.Errorf("error deleting rave: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "rave not found for deletion", zap.String("id", id))
		return entities.ErrRaveNotFound
	}

	return nil
}

// scanRave читает одну строку события с joined-колонками.
func scanRave(row pgx.Row) (*entities.Rave, error) {
	var rave entities.Rave
	var genreID, genreName *string
	var hardness *int
	var promoterID, firstName, lastName, username *string
	var age *int

	err := row.Scan(
		&rave.ID,
		&rave.OwnerID,
		&rave.GenreID,
		&rave.Name,
		&rave.Date,
		&rave.Description,
		&rave.TicketPrice,
		&rave.Street,
		&rave.ZipCode,
		&rave.City,
		&genreID,
		&genreName,
		&hardness,
		&promoterID,
		&firstName,
		&lastName,
		&username,
		&age,
	)
	if err != nil {
		return nil, err
	}

	if genreID != nil && genreName != nil {
		genre := entities.Genre{ID: *genreID, Name: *genreName}
		if hardness != nil {
			genre.Hardness = *hardness
		}
		rave.Genre = &genre
	}

	if promoterID != nil {
		rave.Promoter = &entities.Profile{
			UserID:    *promoterID,
			FirstName: firstName,
			LastName:  lastName,
			Username:  username,
			Age:       age,
		}
	}

	return &rave, nil
}

func scanRaves(rows pgx.Rows) ([]entities.Rave, error) {
	raves := make([]entities.Rave, 0)
	for rows.Next() {
		rave, err := scanRave(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning rave row: %w", err)
		}
		raves = append(raves, *rave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rave rows: %w", err)
	}

	return raves, nil
}
