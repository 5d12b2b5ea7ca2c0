package api

import (
	"context"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
)

// CartUseCase определяет порт для работы с корзиной.
type CartUseCase interface {
	// Add добавляет событие в корзину. Повторное добавление возвращает
	// entities.ErrDuplicateCartLine.
	Add(ctx context.Context, userID, raveID string) error

	// Remove удаляет событие из корзины. Удаление отсутствующей строки -
	// успешная идемпотентная операция.
	Remove(ctx context.Context, userID, raveID string) error

	// List возвращает события корзины и агрегированную стоимость.
	// Строки с висящей ссылкой на событие молча отбрасываются.
	List(ctx context.Context, userID string) ([]entities.Rave, services.CartTotals, error)
}
