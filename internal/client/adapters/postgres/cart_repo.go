package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

// CartRepository реализует интерфейс repositories.CartRepository для работы с Postgres.
type CartRepository struct {
	pool PgxPoolInterface
}

// NewCartRepository создает новый экземпляр репозитория корзины.
func NewCartRepository(pool PgxPoolInterface) repositories.CartRepository {
	return &CartRepository{pool: pool}
}

// Insert добавляет строку корзины. Нарушение уникальности пары
// (user_id, rave_id) возвращается как entities.ErrDuplicateCartLine.
func (r *CartRepository) Insert(ctx context.Context, userID, raveID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "cart"), zap.String("method", "Insert"))

	query := `
        INSERT INTO cart (user_id, rave_id)
        VALUES ($1, $2)
    `

	_, err := r.pool.Exec(ctx, query, userID, raveID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "cart line already exists",
				zap.String("userID", userID), zap.String("raveID", raveID))
			return entities.ErrDuplicateCartLine
		}
		log.Error(ctx, "error inserting cart line", zap.Error(err))
		return fmt.Errorf("error inserting cart line: %w", err)
	}

	return nil
}

// Delete удаляет строку корзины. Отсутствие строки не является ошибкой.
func (r *CartRepository) Delete(ctx context.Context, userID, raveID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "cart"), zap.String("method", "Delete"))

	query := `
        DELETE FROM cart
        WHERE user_id = $1 AND rave_id = $2
    `

	result, err := r.pool.Exec(ctx, query, userID, raveID)
	if err != nil {
		log.Error(ctx, "error deleting cart line", zap.Error(err))
		return fmt.Errorf("error deleting cart line: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "cart line not found for deletion",
			zap.String("userID", userID), zap.String("raveID", raveID))
	}

	return nil
}

// FindByUser возвращает строки корзины с разрезолвленными событиями.
// Для строк с висящей ссылкой Rave остается nil.
func (r *CartRepository) FindByUser(ctx context.Context, userID string) ([]entities.CartLine, error) {
	log := logger.Log(ctx).With(zap.String("repository", "cart"), zap.String("method", "FindByUser"))

	query := `
        SELECT c.cart_id, c.user_id, c.rave_id,
               r.rave_id, r.user_id, r.genre_id, r.rave_name, r.rave_date,
               r.rave_description, r.ticket_price, r.street, r.zip_code, r.city
        FROM cart c
        LEFT JOIN rave_data r ON r.rave_id = c.rave_id
        WHERE c.user_id = $1
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error querying cart lines", zap.Error(err))
		return nil, fmt.Errorf("error querying cart lines: %w", err)
	}
	defer rows.Close()

	cartLines := make([]entities.CartLine, 0)
	for rows.Next() {
		var line entities.CartLine
		var raveID, ownerID, name *string
		var genreID, description, street, zipCode, city *string
		var date *time.Time
		var price *float64

		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.RaveID,
			&raveID,
			&ownerID,
			&genreID,
			&name,
			&date,
			&description,
			&price,
			&street,
			&zipCode,
			&city,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning cart row: %w", err)
		}

		if raveID != nil && ownerID != nil && name != nil && date != nil {
			line.Rave = &entities.Rave{
				ID:          *raveID,
				OwnerID:     *ownerID,
				GenreID:     genreID,
				Name:        *name,
				Date:        *date,
				Description: description,
				TicketPrice: price,
				Street:      street,
				ZipCode:     zipCode,
				City:        city,
			}
		}

		cartLines = append(cartLines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart rows: %w", err)
	}

	return cartLines, nil
}
