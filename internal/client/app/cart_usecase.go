package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/api"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

const (
	methodCartAdd    = "Add"
	methodCartRemove = "Remove"
	methodCartList   = "List"

	msgAddingToCart      = "adding rave to cart"
	msgAddedToCart       = "rave added to cart"
	msgAlreadyInCart     = "rave is already in the cart"
	msgRemovingFromCart  = "removing rave from cart"
	msgRemovedFromCart   = "rave removed from cart"
	msgListingCart       = "listing cart"
	msgDanglingDropped   = "cart lines with unresolvable raves dropped"
	msgErrInsertCartLine = "failed to insert cart line"
	msgErrDeleteCartLine = "failed to delete cart line"
	msgErrListCart       = "failed to list cart"

	errCtxAddingToCart     = "adding to cart"
	errCtxRemovingFromCart = "removing from cart"
	errCtxListingCart      = "listing cart"
)

// CartUseCaseImpl реализует интерфейс api.CartUseCase.
// Сценарии не хранят собственного состояния: каждый вызов независим.
type CartUseCaseImpl struct {
	lines repositories.CartRepository
}

// NewCartUseCase создает новый экземпляр сценариев корзины.
func NewCartUseCase(lines repositories.CartRepository) api.CartUseCase {
	return &CartUseCaseImpl{lines: lines}
}

// Add добавляет событие в корзину пользователя. Нарушение уникальности
// пары (userID, raveID) возвращается как отличимый исход
// entities.ErrDuplicateCartLine, а не как общая ошибка хранилища.
func (c *CartUseCaseImpl) Add(ctx context.Context, userID, raveID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodCartAdd),
		zap.String("userID", userID),
		zap.String("raveID", raveID),
	)
	log.Debug(ctx, msgAddingToCart)

	if err := c.lines.Insert(ctx, userID, raveID); err != nil {
		if errors.Is(err, entities.ErrDuplicateCartLine) {
			log.Debug(ctx, msgAlreadyInCart)
			return fmt.Errorf("%s: %w", errCtxAddingToCart, entities.ErrDuplicateCartLine)
		}
		log.Error(ctx, msgErrInsertCartLine, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxAddingToCart, err)
	}

	log.Info(ctx, msgAddedToCart)
	return nil
}

// Remove удаляет событие из корзины. Удаление отсутствующей строки -
// успешная идемпотентная операция.
func (c *CartUseCaseImpl) Remove(ctx context.Context, userID, raveID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodCartRemove),
		zap.String("userID", userID),
		zap.String("raveID", raveID),
	)
	log.Debug(ctx, msgRemovingFromCart)

	if err := c.lines.Delete(ctx, userID, raveID); err != nil {
		log.Error(ctx, msgErrDeleteCartLine, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRemovingFromCart, err)
	}

	log.Info(ctx, msgRemovedFromCart)
	return nil
}

// List возвращает события корзины и агрегированную стоимость. Строки,
// чье событие больше не резолвится, молча отбрасываются: висящая ссылка
// трактуется как "событие удалено", а не как ошибка.
func (c *CartUseCaseImpl) List(ctx context.Context, userID string) ([]entities.Rave, services.CartTotals, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCartList), zap.String("userID", userID))
	log.Debug(ctx, msgListingCart)

	cartLines, err := c.lines.FindByUser(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListCart, zap.Error(err))
		return nil, services.CartTotals{}, fmt.Errorf("%s: %w", errCtxListingCart, err)
	}

	items := make([]entities.Rave, 0, len(cartLines))
	for _, line := range cartLines {
		if line.Rave != nil {
			items = append(items, *line.Rave)
		}
	}

	if dropped := len(cartLines) - len(items); dropped > 0 {
		log.Debug(ctx, msgDanglingDropped, zap.Int("dropped", dropped))
	}

	return items, services.Totals(items), nil
}
