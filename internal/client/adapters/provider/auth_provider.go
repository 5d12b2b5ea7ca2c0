// Package provider реализует провайдер сессий поверх локального хранилища
// учетных записей и JWT токенов.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	domain "onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/providers"
	"onlyraves/internal/client/ports/repositories"
	svc "onlyraves/internal/client/ports/services"
	"onlyraves/pkg/logger"
)

// Константы для логирования провайдера сессий.
const (
	methodGetCurrentSession  = "GetCurrentSession"
	methodSignInWithPassword = "SignInWithPassword"
	methodSignUp             = "SignUp"
	methodSignOut            = "SignOut"
	msgSigningIn             = "signing in with password"
	msgSignedIn              = "signed in successfully"
	msgSigningUp             = "registering new auth user"
	msgSignedUp              = "auth user registered"
	msgSigningOut            = "signing out"
	msgNoActiveSession       = "no active session"
	errCtxFindingUser        = "finding auth user"
	errCtxCreatingUser       = "creating auth user"
	errCtxHashingPassword    = "hashing password"
	errCtxGeneratingSession  = "generating session token"
)

// AuthProvider реализует интерфейс providers.SessionProvider.
// Текущая сессия хранится в памяти процесса; подписчики получают
// уведомление при каждой смене сессии.
type AuthProvider struct {
	users     repositories.AuthUserRepository
	passwords svc.PasswordService
	tokens    svc.TokenService

	mu          sync.Mutex
	current     *domain.Session
	subscribers map[uint64]func(session *domain.Session)
	nextSubID   uint64
}

// NewAuthProvider создает новый провайдер сессий.
func NewAuthProvider(
	users repositories.AuthUserRepository,
	passwords svc.PasswordService,
	tokens svc.TokenService,
) providers.SessionProvider {
	return &AuthProvider{
		users:       users,
		passwords:   passwords,
		tokens:      tokens,
		subscribers: make(map[uint64]func(session *domain.Session)),
	}
}

// GetCurrentSession возвращает текущую сессию; nil означает ее отсутствие.
func (p *AuthProvider) GetCurrentSession(ctx context.Context) (*domain.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetCurrentSession))

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		log.Debug(ctx, msgNoActiveSession)
		return nil, nil
	}

	session := *p.current
	return &session, nil
}

// OnSessionChange регистрирует обработчик уведомлений о смене сессии.
func (p *AuthProvider) OnSessionChange(callback func(session *domain.Session)) providers.UnsubscribeFunc {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = callback

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

// SignInWithPassword аутентифицирует пользователя по email и паролю.
func (p *AuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignInWithPassword))
	log.Debug(ctx, msgSigningIn)

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrAuthUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := p.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := p.tokens.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingSession, err)
	}

	session := &domain.Session{
		Identity:    entities.Identity{ID: user.ID, Email: user.Email},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}

	p.setSession(session)

	log.Info(ctx, msgSignedIn, zap.String("userID", user.ID))
	return session, nil
}

// SignUp регистрирует новую учетную запись. Сессия при этом не создается.
func (p *AuthProvider) SignUp(ctx context.Context, email, password string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignUp))
	log.Debug(ctx, msgSigningUp)

	hash, err := p.passwords.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := p.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, entities.ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgSignedUp, zap.String("userID", user.ID))
	return &entities.Identity{ID: user.ID, Email: user.Email}, nil
}

// SignOut завершает текущую сессию и уведомляет подписчиков.
func (p *AuthProvider) SignOut(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignOut))
	log.Debug(ctx, msgSigningOut)

	p.setSession(nil)
	return nil
}

// setSession меняет текущую сессию и рассылает уведомления.
// Обработчики вызываются вне мьютекса, чтобы подписчик мог
// синхронно обращаться к провайдеру.
func (p *AuthProvider) setSession(session *domain.Session) {
	p.mu.Lock()
	p.current = session
	callbacks := make([]func(session *domain.Session), 0, len(p.subscribers))
	for _, cb := range p.subscribers {
		callbacks = append(callbacks, cb)
	}
	p.mu.Unlock()

	for _, cb := range callbacks {
		cb(session)
	}
}
