// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"onlyraves/internal/client/adapters/http/cart"
	"onlyraves/internal/client/adapters/http/middleware"
	"onlyraves/internal/client/adapters/http/profile"
	"onlyraves/internal/client/adapters/http/raves"
	"onlyraves/internal/client/adapters/http/session"
	"onlyraves/internal/client/ports/api"
	"onlyraves/internal/client/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	store api.SessionStore,
	catalog api.CatalogUseCase,
	cartUseCase api.CartUseCase,
	profiles api.ProfileUseCase,
	tokens services.TokenService,
) {
	sessionHandler := session.NewHandler(store)
	ravesHandler := raves.NewHandler(catalog)
	cartHandler := cart.NewHandler(cartUseCase)
	profileHandler := profile.NewHandler(profiles)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", sessionHandler.Register)
	authRoutes.Post("/login", sessionHandler.Login)
	authRoutes.Post("/logout", sessionHandler.Logout)

	// Снимок состояния сессии (публичный: анонимное состояние тоже снимок).
	apiV1.Get("/session", sessionHandler.GetSession)

	// Каталог (публичный).
	ravesRoutes := apiV1.Group("/raves")
	ravesRoutes.Get("/", ravesHandler.ListRaves)
	ravesRoutes.Get("/:rave_id", ravesHandler.GetRave)
	apiV1.Get("/genres", ravesHandler.ListGenres)

	// Промоутерские маршруты (требуют авторизации).
	promotionRoutes := apiV1.Group("/promotion")
	promotionRoutes.Use(middleware.NewAuthMiddleware(tokens))
	promotionRoutes.Get("/raves", ravesHandler.ListOwn)
	promotionRoutes.Post("/raves", ravesHandler.CreateRave)
	promotionRoutes.Delete("/raves/:rave_id", ravesHandler.DeleteRave)

	// Корзина (требует авторизации).
	cartRoutes := apiV1.Group("/cart")
	cartRoutes.Use(middleware.NewAuthMiddleware(tokens))
	cartRoutes.Get("/", cartHandler.List)
	cartRoutes.Post("/", cartHandler.AddLine)
	cartRoutes.Delete("/:rave_id", cartHandler.RemoveLine)
	cartRoutes.Post("/checkout", cartHandler.Checkout)

	// Профиль (требует авторизации).
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.NewAuthMiddleware(tokens))
	profileRoutes.Get("/", profileHandler.GetProfile)
	profileRoutes.Put("/", profileHandler.UpdateProfile)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
