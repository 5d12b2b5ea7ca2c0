// Package repositories определяет интерфейсы для операций сохранения данных.
package repositories

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// ProfileRepository определяет интерфейс для работы с профилями пользователей.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) (*entities.Profile, error)

	FindByUserID(ctx context.Context, userID string) (*entities.Profile, error)

	Update(ctx context.Context, profile *entities.Profile) (*entities.Profile, error)
}
