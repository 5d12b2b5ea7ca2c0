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

// ProfileRepository реализует интерфейс repositories.ProfileRepository для работы с Postgres.
type ProfileRepository struct {
	pool PgxPoolInterface
}

// NewProfileRepository создает новый экземпляр репозитория профилей.
func NewProfileRepository(pool PgxPoolInterface) repositories.ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create создает запись профиля.
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Create"))

	query := `
        INSERT INTO user_data (user_id, first_name, last_name, username, age)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING user_id, first_name, last_name, username, age
    `

	var created entities.Profile
	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Age,
	).Scan(
		&created.UserID,
		&created.FirstName,
		&created.LastName,
		&created.Username,
		&created.Age,
	)

	if err != nil {
		log.Error(ctx, "error creating profile", zap.Error(err))
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	return &created, nil
}

// FindByUserID находит профиль по идентификатору пользователя.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "FindByUserID"))

	query := `
        SELECT user_id, first_name, last_name, username, age
        FROM user_data
        WHERE user_id = $1
    `

	var profile entities.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Username,
		&profile.Age,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found", zap.String("userID", userID))
			return nil, entities.ErrProfileNotFound
		}
		log.Error(ctx, "error finding profile", zap.Error(err))
		return nil, fmt.Errorf("error querying profile by user id: %w", err)
	}

	return &profile, nil
}

// Update обновляет профиль целиком по ключу user_id.
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Update"))

	query := `
        UPDATE user_data
        SET first_name = $2, last_name = $3, username = $4, age = $5
        WHERE user_id = $1
        RETURNING user_id, first_name, last_name, username, age
    `

	var updated entities.Profile
	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Age,
	).Scan(
		&updated.UserID,
		&updated.FirstName,
		&updated.LastName,
		&updated.Username,
		&updated.Age,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found for update", zap.String("userID", profile.UserID))
			return nil, entities.ErrProfileNotFound
		}
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return &updated, nil
}
