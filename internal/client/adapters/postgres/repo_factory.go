package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"onlyraves/internal/client/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	authUserRepo repositories.AuthUserRepository
	profileRepo  repositories.ProfileRepository
	raveRepo     repositories.RaveRepository
	genreRepo    repositories.GenreRepository
	cartRepo     repositories.CartRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		authUserRepo: NewAuthUserRepository(pool),
		profileRepo:  NewProfileRepository(pool),
		raveRepo:     NewRaveRepository(pool),
		genreRepo:    NewGenreRepository(pool),
		cartRepo:     NewCartRepository(pool),
	}
}

// AuthUserRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) AuthUserRepository() repositories.AuthUserRepository {
	return f.authUserRepo
}

// ProfileRepository возвращает репозиторий профилей.
func (f *RepositoryFactory) ProfileRepository() repositories.ProfileRepository {
	return f.profileRepo
}

// RaveRepository возвращает репозиторий событий.
func (f *RepositoryFactory) RaveRepository() repositories.RaveRepository {
	return f.raveRepo
}

// GenreRepository возвращает репозиторий жанров.
func (f *RepositoryFactory) GenreRepository() repositories.GenreRepository {
	return f.genreRepo
}

// CartRepository возвращает репозиторий корзины.
func (f *RepositoryFactory) CartRepository() repositories.CartRepository {
	return f.cartRepo
}
