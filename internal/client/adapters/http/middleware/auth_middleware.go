package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"onlyraves/internal/client/ports/services"
	"onlyraves/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"

	// UserIDKey - ключ Locals, под которым хранится ID аутентифицированного пользователя.
	UserIDKey = "userID"
)

// NewAuthMiddleware создает новое промежуточное ПО для проверки аутентификации.
// Идентификатор пользователя из валидного токена кладется в Locals.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidToken,
			})
		}

		ctx.Locals(UserIDKey, userID)

		return ctx.Next()
	}
}

// UserIDFromCtx возвращает ID пользователя, положенный auth middleware.
func UserIDFromCtx(ctx fiber.Ctx) string {
	userID, _ := ctx.Locals(UserIDKey).(string)
	return userID
}
