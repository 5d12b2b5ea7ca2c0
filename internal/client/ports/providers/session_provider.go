// Package providers определяет интерфейсы внешних коллабораторов.
package providers

import (
	"context"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
)

// UnsubscribeFunc отписывает ранее зарегистрированный обработчик уведомлений.
type UnsubscribeFunc func()

// SessionProvider определяет интерфейс внешнего провайдера сессий.
// Провайдер может присылать асинхронные уведомления о смене сессии в любой
// момент: вход на другом устройстве, истечение токена, выход.
type SessionProvider interface {
	// GetCurrentSession возвращает текущий снимок сессии; nil означает ее отсутствие.
	GetCurrentSession(ctx context.Context) (*services.Session, error)

	// OnSessionChange регистрирует обработчик уведомлений о смене сессии.
	// nil в аргументе обработчика означает завершение сессии.
	OnSessionChange(callback func(session *services.Session)) UnsubscribeFunc

	SignInWithPassword(ctx context.Context, email, password string) (*services.Session, error)

	SignUp(ctx context.Context, email, password string) (*entities.Identity, error)

	SignOut(ctx context.Context) error
}
