package repositories

import (
	"context"

	"onlyraves/internal/client/domain/entities"
)

// CartRepository определяет интерфейс для строк корзины.
type CartRepository interface {
	// Insert добавляет строку корзины. Нарушение уникальности пары
	// (userID, raveID) возвращается как entities.ErrDuplicateCartLine.
	Insert(ctx context.Context, userID, raveID string) error

	// Delete удаляет строку корзины. Отсутствие строки не является ошибкой.
	Delete(ctx context.Context, userID, raveID string) error

	// FindByUser возвращает строки корзины с разрезолвленными через join событиями.
	// Строки с висящей ссылкой на событие возвращаются с Rave == nil.
	FindByUser(ctx context.Context, userID string) ([]entities.CartLine, error)
}
