// Package profile содержит HTTP обработчики профиля пользователя.
package profile

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
	LogHandlerGetProfile    = "profile handler: get profile"
	LogHandlerUpdateProfile = "profile handler: update profile"

	ErrorInvalidRequest = "invalid request"
	ErrorServingRequest = "failed to serve request"

	minAge = 18
)

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики профиля.
type Handler struct {
	profiles api.ProfileUseCase
}

// NewHandler создает новый экземпляр обработчика профиля.
func NewHandler(profiles api.ProfileUseCase) *Handler {
	return &Handler{profiles: profiles}
}

// GetProfile обрабатывает запрос на получение профиля текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetProfile)

	profile, err := h.profiles.Get(requestCtx, middleware.UserIDFromCtx(ctx))
	if err != nil {
		if errors.Is(err, entities.ErrProfileNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		}
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProfileResponse(profile)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile обрабатывает запрос на сохранение профиля целиком.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Age != nil && *req.Age < minAge {
		return sendErrorResponse(ctx, http.StatusBadRequest, "you must be at least 18 years old")
	}

	updated, err := h.profiles.Update(requestCtx, req.ToEntity(middleware.UserIDFromCtx(ctx)))
	if err != nil {
		if errors.Is(err, entities.ErrProfileNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		}
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProfileResponse(updated)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
