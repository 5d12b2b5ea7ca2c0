// Package cart содержит HTTP обработчики корзины.
package cart

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"onlyraves/internal/client/adapters/http/middleware"
	"onlyraves/internal/client/app/dto"
	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/api"
	"onlyraves/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerAddLine  = "cart handler: add line"
	LogHandlerRemove   = "cart handler: remove line"
	LogHandlerList     = "cart handler: list"
	LogHandlerCheckout = "cart handler: checkout"

	ErrorInvalidRequest = "invalid request"
	ErrorServingRequest = "failed to serve request"
)

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики корзины.
type Handler struct {
	cart api.CartUseCase
}

// NewHandler создает новый экземпляр обработчика корзины.
func NewHandler(cart api.CartUseCase) *Handler {
	return &Handler{cart: cart}
}

// AddLine обрабатывает запрос на добавление события в корзину.
func (h *Handler) AddLine(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAddLine)

	var req dto.AddCartLineRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RaveID == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "rave_id is required")
	}

	if err := h.cart.Add(requestCtx, middleware.UserIDFromCtx(ctx), req.RaveID); err != nil {
		if errors.Is(err, entities.ErrDuplicateCartLine) {
			return sendErrorResponse(ctx, http.StatusConflict, err.Error())
		}
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "rave added to cart",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// RemoveLine обрабатывает запрос на удаление события из корзины.
// Удаление отсутствующей строки завершается успешно.
func (h *Handler) RemoveLine(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRemove)

	if err := h.cart.Remove(requestCtx, middleware.UserIDFromCtx(ctx), ctx.Params("rave_id")); err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "rave removed from cart",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// List обрабатывает запрос содержимого корзины с агрегированной стоимостью.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerList)

	items, totals, err := h.cart.List(requestCtx, middleware.UserIDFromCtx(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewCartResponse(items, totals)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Checkout обрабатывает оформление заказа. Оплата не реализована,
// содержимое корзины не изменяется.
func (h *Handler) Checkout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCheckout)

	_, totals, err := h.cart.List(requestCtx, middleware.UserIDFromCtx(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	response := dto.NewCheckoutResponse("accepted", totals)

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
