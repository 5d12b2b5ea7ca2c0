// Package api определяет порты прикладных сценариев клиента.
package api

import (
	"context"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
)

// SessionStore определяет основной порт для работы с состоянием сессии.
// Хранилище - единственный владелец пары Identity/Profile; остальные
// компоненты получают ее только на чтение через Snapshot.
type SessionStore interface {
	// Start запрашивает начальный снимок сессии у провайдера ровно один раз
	// и подписывается на уведомления о смене сессии.
	Start(ctx context.Context) error

	// Close отписывается от уведомлений провайдера; последующие уведомления игнорируются.
	Close()

	State() services.SessionState

	// Loading возвращает true, пока начальный снимок не разрешен.
	// До снятия флага потребители обязаны откладывать собственные решения.
	Loading() bool

	Snapshot() services.SessionSnapshot

	// SignIn делегирует вход провайдеру. Ошибка провайдера возвращается без
	// изменений; локальное состояние мутирует только машина состояний.
	SignIn(ctx context.Context, email, password string) error

	// SignUp создает учетную запись у провайдера, затем профиль.
	// Если профиль создать не удалось, ошибка возвращается, а учетная
	// запись остается существовать.
	SignUp(ctx context.Context, email, password string, profileSeed *entities.Profile) error

	// SignOut делегирует выход провайдеру и очищает локальное состояние
	// независимо от исхода удаленного вызова.
	SignOut(ctx context.Context) error
}
