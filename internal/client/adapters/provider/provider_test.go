package provider_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"onlyraves/internal/client/adapters/provider"
	"onlyraves/internal/client/domain/entities"
	domain "onlyraves/internal/client/domain/services"
)

const (
	testSecret   = "test-secret-key"
	testPassword = "secret123"
)

var errUsersDown = errors.New("auth user storage is down")

// fakeAuthUserRepo имитирует хранилище учетных записей в памяти.
type fakeAuthUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entities.AuthUser
	findErr error
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: make(map[string]*entities.AuthUser)}
}

func (r *fakeAuthUserRepo) Create(_ context.Context, email, passwordHash string) (*entities.AuthUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, entities.ErrEmailTaken
	}
	user := &entities.AuthUser{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: passwordHash,
	}
	r.byEmail[email] = user
	return user, nil
}

func (r *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (*entities.AuthUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrAuthUserNotFound
	}
	return user, nil
}

func (r *fakeAuthUserRepo) FindByID(_ context.Context, id string) (*entities.AuthUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, entities.ErrAuthUserNotFound
}

func TestBcryptHashAndVerify(t *testing.T) {
	service := provider.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	valid, err := service.Verify(ctx, testPassword, hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = service.Verify(ctx, "wrong-password", hash)
	require.NoError(t, err, "mismatch is a negative answer, not an error")
	assert.False(t, valid)
}

func TestBcryptHashRejectsShortPassword(t *testing.T) {
	service := provider.NewBcrypt(bcrypt.MinCost)

	for _, password := range []string{"short", ""} {
		hash, err := service.Hash(context.Background(), password)

		require.Error(t, err)
		assert.Empty(t, hash)
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	}
}

func TestJWTGenerateAndValidate(t *testing.T) {
	service := provider.NewJWT(testSecret, 15*time.Minute)
	ctx := context.Background()

	token, expiresAt, err := service.GenerateAccessToken(ctx, "user-1", "x@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	userID, err := service.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTValidateRejectsGarbage(t *testing.T) {
	service := provider.NewJWT(testSecret, 15*time.Minute)

	_, err := service.ValidateAccessToken(context.Background(), "not-a-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTValidateRejectsExpiredToken(t *testing.T) {
	service := provider.NewJWT(testSecret, -time.Minute)

	token, _, err := service.GenerateAccessToken(context.Background(), "user-1", "x@example.com")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTValidateRejectsForeignSignature(t *testing.T) {
	issuer := provider.NewJWT("one-secret-key", 15*time.Minute)
	verifier := provider.NewJWT("another-secret-key", 15*time.Minute)

	token, _, err := issuer.GenerateAccessToken(context.Background(), "user-1", "x@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthProviderSignUpAndSignIn(t *testing.T) {
	repo := newFakeAuthUserRepo()
	factory := provider.NewServiceFactory(testSecret, 15*time.Minute, bcrypt.MinCost)
	authProvider := provider.NewAuthProvider(repo, factory.PasswordService(), factory.TokenService())
	ctx := context.Background()

	identity, err := authProvider.SignUp(ctx, "x@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", identity.Email)

	// Регистрация не создает сессию.
	current, err := authProvider.GetCurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	session, err := authProvider.SignInWithPassword(ctx, "x@example.com", testPassword)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, identity.ID, session.Identity.ID)
	assert.NotEmpty(t, session.AccessToken)

	current, err = authProvider.GetCurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, identity.ID, current.Identity.ID)
}

func TestAuthProviderSignUpDuplicateEmail(t *testing.T) {
	repo := newFakeAuthUserRepo()
	factory := provider.NewServiceFactory(testSecret, 15*time.Minute, bcrypt.MinCost)
	authProvider := provider.NewAuthProvider(repo, factory.PasswordService(), factory.TokenService())
	ctx := context.Background()

	_, err := authProvider.SignUp(ctx, "x@example.com", testPassword)
	require.NoError(t, err)

	_, err = authProvider.SignUp(ctx, "x@example.com", testPassword)
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestAuthProviderSignInInvalidCredentials(t *testing.T) {
	repo := newFakeAuthUserRepo()
	factory := provider.NewServiceFactory(testSecret, 15*time.Minute, bcrypt.MinCost)
	authProvider := provider.NewAuthProvider(repo, factory.PasswordService(), factory.TokenService())
	ctx := context.Background()

	_, err := authProvider.SignUp(ctx, "x@example.com", testPassword)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "ghost@example.com", password: testPassword},
		{name: "wrong password", email: "x@example.com", password: "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authProvider.SignInWithPassword(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
				"unknown email and wrong password must be indistinguishable")
		})
	}
}

func TestAuthProviderNotifiesSubscribers(t *testing.T) {
	repo := newFakeAuthUserRepo()
	factory := provider.NewServiceFactory(testSecret, 15*time.Minute, bcrypt.MinCost)
	authProvider := provider.NewAuthProvider(repo, factory.PasswordService(), factory.TokenService())
	ctx := context.Background()

	_, err := authProvider.SignUp(ctx, "x@example.com", testPassword)
	require.NoError(t, err)

	var mu sync.Mutex
	var notifications []*domain.Session
	unsubscribe := authProvider.OnSessionChange(func(session *domain.Session) {
		mu.Lock()
		defer mu.Unlock()
		notifications = append(notifications, session)
	})

	_, err = authProvider.SignInWithPassword(ctx, "x@example.com", testPassword)
	require.NoError(t, err)
	require.NoError(t, authProvider.SignOut(ctx))

	mu.Lock()
	require.Len(t, notifications, 2)
	assert.NotNil(t, notifications[0], "sign-in notifies with the new session")
	assert.Nil(t, notifications[1], "sign-out notifies with nil")
	mu.Unlock()

	unsubscribe()

	_, err = authProvider.SignInWithPassword(ctx, "x@example.com", testPassword)
	require.NoError(t, err)

	mu.Lock()
	assert.Len(t, notifications, 2, "no notifications after unsubscribe")
	mu.Unlock()
}

func TestAuthProviderStorageErrorSurfaces(t *testing.T) {
	repo := newFakeAuthUserRepo()
	repo.findErr = errUsersDown
	factory := provider.NewServiceFactory(testSecret, 15*time.Minute, bcrypt.MinCost)
	authProvider := provider.NewAuthProvider(repo, factory.PasswordService(), factory.TokenService())

	_, err := authProvider.SignInWithPassword(context.Background(), "x@example.com", testPassword)

	require.Error(t, err)
	assert.ErrorIs(t, err, errUsersDown)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials,
		"infrastructure failures are not credential failures")
}
