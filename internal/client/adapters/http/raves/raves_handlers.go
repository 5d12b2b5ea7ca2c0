// Package raves содержит HTTP обработчики каталога событий.
package raves

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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
	LogHandlerListRaves   = "raves handler: list raves"
	LogHandlerGetRave     = "raves handler: get rave"
	LogHandlerListOwn     = "raves handler: list own raves"
	LogHandlerCreateRave  = "raves handler: create rave"
	LogHandlerDeleteRave  = "raves handler: delete rave"
	LogHandlerListGenres  = "raves handler: list genres"
	ErrorInvalidRequest   = "invalid request"
	ErrorServingRequest   = "failed to serve request"
	ErrorInvalidDateParam = "invalid date parameter"
)

// Формат дат в параметрах фильтра.
const dateParamLayout = "2006-01-02"

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики каталога.
type Handler struct {
	catalog api.CatalogUseCase
}

// NewHandler создает новый экземпляр обработчика каталога.
func NewHandler(catalog api.CatalogUseCase) *Handler {
	return &Handler{catalog: catalog}
}

// ListRaves обрабатывает запрос каталога с критериями фильтрации.
func (h *Handler) ListRaves(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListRaves)

	opts, err := parseFilterOptions(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidDateParam, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	raves, err := h.catalog.ListRaves(requestCtx, opts)
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRaveResponses(raves)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetRave обрабатывает запрос детальной карточки события.
func (h *Handler) GetRave(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetRave)

	rave, err := h.catalog.GetRave(requestCtx, ctx.Params("rave_id"))
	if err != nil {
		if errors.Is(err, entities.ErrRaveNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		}
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRaveResponse(rave)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListOwn обрабатывает запрос списка событий, созданных текущим пользователем.
func (h *Handler) ListOwn(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListOwn)

	raves, err := h.catalog.ListByOwner(requestCtx, middleware.UserIDFromCtx(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRaveResponses(raves)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CreateRave обрабатывает запрос на создание события.
func (h *Handler) CreateRave(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateRave)

	var req dto.CreateRaveRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidDateParam)
	}

	rave := &entities.Rave{
		OwnerID:     middleware.UserIDFromCtx(ctx),
		GenreID:     req.GenreID,
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		TicketPrice: req.TicketPrice,
		Street:      req.Street,
		ZipCode:     req.ZipCode,
		City:        req.City,
	}

	if err := rave.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateRave(requestCtx, rave)
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewRaveResponse(created)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteRave обрабатывает запрос на удаление события.
func (h *Handler) DeleteRave(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteRave)

	err := h.catalog.DeleteRave(requestCtx, ctx.Params("rave_id"), middleware.UserIDFromCtx(ctx))
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrRaveNotFound):
			return sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, entities.ErrNotRaveOwner):
			return sendErrorResponse(ctx, http.StatusForbidden, err.Error())
		default:
			log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
			return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		}
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "rave deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListGenres обрабатывает запрос списка жанров.
func (h *Handler) ListGenres(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListGenres)

	genres, err := h.catalog.ListGenres(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorServingRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewGenreResponses(genres)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// parseFilterOptions собирает критерии фильтра из query-параметров.
func parseFilterOptions(ctx fiber.Ctx) (entities.FilterOptions, error) {
	opts := entities.FilterOptions{
		Genre: ctx.Query("genre"),
		City:  ctx.Query("city"),
	}

	if raw := ctx.Query("date_from"); raw != "" {
		date, err := parseDateParam(raw)
		if err != nil {
			return entities.FilterOptions{}, fmt.Errorf("%s: date_from", ErrorInvalidDateParam)
		}
		opts.DateFrom = &date
	}

	if raw := ctx.Query("date_to"); raw != "" {
		date, err := parseDateParam(raw)
		if err != nil {
			return entities.FilterOptions{}, fmt.Errorf("%s: date_to", ErrorInvalidDateParam)
		}
		opts.DateTo = &date
	}

	minRaw, maxRaw := ctx.Query("price_min"), ctx.Query("price_max")
	if minRaw != "" || maxRaw != "" {
		priceRange := entities.PriceRange{}
		if minRaw != "" {
			minVal, err := strconv.ParseFloat(minRaw, 64)
			if err != nil {
				return entities.FilterOptions{}, fmt.Errorf("invalid price_min parameter")
			}
			priceRange.Min = minVal
		}
		if maxRaw != "" {
			maxVal, err := strconv.ParseFloat(maxRaw, 64)
			if err != nil {
				return entities.FilterOptions{}, fmt.Errorf("invalid price_max parameter")
			}
			priceRange.Max = maxVal
		}
		opts.PriceRange = &priceRange
	}

	return opts, nil
}

// parseDateParam принимает дату в формате 2006-01-02 либо RFC3339.
func parseDateParam(raw string) (time.Time, error) {
	if date, err := time.Parse(dateParamLayout, raw); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date parameter: %w", err)
	}
	return date, nil
}
