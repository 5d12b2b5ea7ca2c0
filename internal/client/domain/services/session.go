package services

import (
	"errors"
	"time"

	"onlyraves/internal/client/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrExpiredToken       = errors.New("access token has expired")
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrInvalidPassword    = errors.New("invalid password")
)

// MinPasswordLength - минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// Session представляет активную сессию у провайдера.
type Session struct {
	Identity    entities.Identity
	AccessToken string
	ExpiresAt   time.Time
}

// SessionState описывает состояние машины состояний SessionStore.
type SessionState string

// Состояния SessionStore.
const (
	// StateInitializing - начальное состояние до разрешения первого снимка сессии.
	// Чтение Identity/Profile в этом состоянии невалидно.
	StateInitializing SessionState = "initializing"
	// StateAuthenticated - есть активная сессия.
	StateAuthenticated SessionState = "authenticated"
	// StateAnonymous - сессии нет.
	StateAnonymous SessionState = "anonymous"
)

// SessionSnapshot - согласованная копия состояния SessionStore для читателей.
// Profile может отсутствовать при наличии Identity: загрузка профиля
// асинхронна и завершается строго после применения Identity.
type SessionSnapshot struct {
	State    SessionState
	Identity *entities.Identity
	Profile  *entities.Profile
}
