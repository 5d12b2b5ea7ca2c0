// Package main реализует точку входа клиентского сервиса бронирования.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"onlyraves/internal/client/adapters/cache"
	httpServer "onlyraves/internal/client/adapters/http"
	"onlyraves/internal/client/adapters/postgres"
	"onlyraves/internal/client/adapters/provider"
	"onlyraves/internal/client/app"
	"onlyraves/internal/client/config"
	"onlyraves/internal/client/db"
	"onlyraves/pkg/logger"
	"onlyraves/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "RAVES_LOGGER_MODE"
	EnvLoggerLevel = "RAVES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartSessionStore    = "failed to start session store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "booking client service started"
	LogServiceShutdownDone = "booking client service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing Redis connection"
	LogClosingStore        = "closing session store"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitProvider        = "initializing session provider"
	LogInitUseCases        = "initializing use cases"
	LogStartingStore       = "starting session store"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, "migrations/client")
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		authUserRepo := repoFactory.AuthUserRepository()
		profileRepo := repoFactory.ProfileRepository()
		raveRepo := repoFactory.RaveRepository()
		genreRepo := repoFactory.GenreRepository()
		cartRepo := repoFactory.CartRepository()

		log.Info(ctx, LogInitCache)
		genreCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := provider.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.GetAccessTokenTTL(),
			cfg.JWT.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitProvider)
		sessionProvider := provider.NewAuthProvider(authUserRepo, passwordService, tokenService)

		log.Info(ctx, LogInitUseCases)
		sessionStore := app.NewSessionStore(sessionProvider, profileRepo)
		catalogUseCase := app.NewCatalogUseCase(raveRepo, genreRepo, genreCache, cfg.Redis.DefaultTTL)
		cartUseCase := app.NewCartUseCase(cartRepo)
		profileUseCase := app.NewProfileUseCase(profileRepo)

		log.Info(ctx, LogStartingStore)
		if err := sessionStore.Start(ctx); err != nil {
			log.Error(ctx, ErrStartSessionStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, sessionStore, catalogUseCase, cartUseCase, profileUseCase, tokenService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingStore)
				sessionStore.Close()
				return nil
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return genreCache.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
