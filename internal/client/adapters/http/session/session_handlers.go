// Package session содержит HTTP обработчики для аутентификации и состояния сессии.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"onlyraves/internal/client/app/dto"
	"onlyraves/internal/client/domain/entities"
	domain "onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/api"
	"onlyraves/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "session handler: register"
	LogHandlerLogin      = "session handler: login"
	LogHandlerLogout     = "session handler: logout"
	LogHandlerGetSession = "session handler: get session"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	minAge = 18
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Вспомогательная функция для обработки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики сессии.
type Handler struct {
	store api.SessionStore
}

// NewHandler создает новый экземпляр обработчика сессии.
func NewHandler(store api.SessionStore) *Handler {
	return &Handler{store: store}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.SignUpRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if !emailPattern.MatchString(req.Email) {
		return sendErrorResponse(ctx, http.StatusBadRequest, "invalid email address")
	}

	if len(req.Password) < domain.MinPasswordLength {
		return sendErrorResponse(ctx, http.StatusBadRequest, "password must be at least 6 characters")
	}

	if req.Age != nil && *req.Age < minAge {
		return sendErrorResponse(ctx, http.StatusBadRequest, "you must be at least 18 years old")
	}

	profileSeed := &entities.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Age:       req.Age,
	}

	if err := h.store.SignUp(requestCtx, req.Email, req.Password, profileSeed); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode := http.StatusInternalServerError
		if errors.Is(err, entities.ErrEmailTaken) {
			statusCode = http.StatusConflict
		}
		return sendErrorResponse(ctx, statusCode, err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewSessionResponse(h.store.Snapshot(), h.store.Loading())); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.SignInRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	if err := h.store.SignIn(requestCtx, req.Email, req.Password); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidCredentials) {
			statusCode = http.StatusUnauthorized
		}
		return sendErrorResponse(ctx, statusCode, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewSessionResponse(h.store.Snapshot(), h.store.Loading())); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	if err := h.store.SignOut(requestCtx); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetSession обрабатывает запрос на получение снимка состояния сессии.
func (h *Handler) GetSession(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetSession)

	if err := ctx.Status(http.StatusOK).JSON(dto.NewSessionResponse(h.store.Snapshot(), h.store.Loading())); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
