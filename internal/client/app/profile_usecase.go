package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/api"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

const (
	methodProfileGet    = "Get"
	methodProfileUpdate = "Update"

	msgFetchingStoredProfile = "fetching profile"
	msgUpdatingProfile       = "updating profile"
	msgProfileUpdated        = "profile updated"
	msgErrFindProfile        = "failed to find profile"
	msgErrUpdateProfile      = "failed to update profile"

	errCtxFindingProfile  = "finding profile"
	errCtxUpdatingProfile = "updating profile"
)

// ProfileUseCaseImpl реализует интерфейс api.ProfileUseCase.
type ProfileUseCaseImpl struct {
	profiles repositories.ProfileRepository
}

// NewProfileUseCase создает новый экземпляр сценариев профиля.
func NewProfileUseCase(profiles repositories.ProfileRepository) api.ProfileUseCase {
	return &ProfileUseCaseImpl{profiles: profiles}
}

// Get возвращает профиль по идентификатору пользователя.
func (p *ProfileUseCaseImpl) Get(ctx context.Context, userID string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfileGet), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingStoredProfile)

	profile, err := p.profiles.FindByUserID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}
	return profile, nil
}

// Update сохраняет профиль целиком по ключу UserID.
func (p *ProfileUseCaseImpl) Update(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfileUpdate), zap.String("userID", profile.UserID))
	log.Debug(ctx, msgUpdatingProfile)

	if profile.UserID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, entities.ErrEmptyUserID)
	}

	updated, err := p.profiles.Update(ctx, profile)
	if err != nil {
		log.Error(ctx, msgErrUpdateProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}
