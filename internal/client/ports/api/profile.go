package api

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// ProfileUseCase определяет порт для чтения и сохранения профиля.
type ProfileUseCase interface {
	Get(ctx context.Context, userID string) (*entities.Profile, error)

	// Update сохраняет профиль целиком по ключу UserID.
	Update(ctx context.Context, profile *entities.Profile) (*entities.Profile, error)
}
