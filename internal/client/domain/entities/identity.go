package entities

import "errors"

// Ошибки домена учетных записей.
var (
	ErrAuthUserNotFound = errors.New("auth user not found")
	ErrEmailTaken       = errors.New("user with this email already exists")
)

// Identity представляет учетную запись пользователя у внешнего провайдера сессий.
// SessionStore хранит кэшированную копию; владельцем данных остается провайдер.
type Identity struct {
	ID    string
	Email string
}

// AuthUser представляет запись учетных данных на стороне провайдера.
type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
}
