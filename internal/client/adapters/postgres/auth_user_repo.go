package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

// AuthUserRepository реализует интерфейс repositories.AuthUserRepository для работы с Postgres.
type AuthUserRepository struct {
	pool PgxPoolInterface
}

// NewAuthUserRepository создает новый экземпляр репозитория учетных записей.
func NewAuthUserRepository(pool PgxPoolInterface) repositories.AuthUserRepository {
	return &AuthUserRepository{pool: pool}
}

// Create создает учетную запись. Занятый email возвращается как entities.ErrEmailTaken.
func (r *AuthUserRepository) Create(ctx context.Context, email, passwordHash string) (*entities.AuthUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "auth_user"), zap.String("method", "Create"))

	query := `
        INSERT INTO auth_users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, email, password_hash
    `

	var user entities.AuthUser
	err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "email already taken", zap.String("email", email))
			return nil, entities.ErrEmailTaken
		}
		log.Error(ctx, "error creating auth user", zap.Error(err))
		return nil, fmt.Errorf("error creating auth user: %w", err)
	}

	return &user, nil
}

// FindByEmail находит учетную запись по email.
func (r *AuthUserRepository) FindByEmail(ctx context.Context, email string) (*entities.AuthUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "auth_user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT id, email, password_hash
        FROM auth_users
        WHERE email = $1
    `

	var user entities.AuthUser
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "auth user not found by email")
			return nil, entities.ErrAuthUserNotFound
		}
		log.Error(ctx, "error finding auth user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying auth user by email: %w", err)
	}

	return &user, nil
}

// FindByID находит учетную запись по идентификатору.
func (r *AuthUserRepository) FindByID(ctx context.Context, id string) (*entities.AuthUser, error) {
	log := logger.Log(ctx).With(zap.String("repository", "auth_user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, email, password_hash
        FROM auth_users
        WHERE id = $1
    `

	var user entities.AuthUser
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "auth user not found", zap.String("id", id))
			return nil, entities.ErrAuthUserNotFound
		}
		log.Error(ctx, "error finding auth user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying auth user by id: %w", err)
	}

	return &user, nil
}
