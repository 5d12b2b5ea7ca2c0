package repositories

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// AuthUserRepository определяет интерфейс для учетных записей провайдера сессий.
type AuthUserRepository interface {
	// Create создает учетную запись. Занятый email возвращается
	// как entities.ErrEmailTaken.
	Create(ctx context.Context, email, passwordHash string) (*entities.AuthUser, error)

	FindByEmail(ctx context.Context, email string) (*entities.AuthUser, error)

	FindByID(ctx context.Context, id string) (*entities.AuthUser, error)
}
