package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-tours/internal/common/api"
	"go-tours/internal/common/apperror"
	"go-tours/internal/config"
	"go-tours/internal/database"
	emails "go-tours/internal/email"
	"go-tours/internal/features/auth"
	"go-tours/internal/features/health"
	"go-tours/internal/features/review"
	"go-tours/internal/features/tour"
	"go-tours/internal/features/user"
	"go-tours/internal/logger"
	"go-tours/internal/middleware"
	"go-tours/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, zapLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          apperror.NewErrorHandler(cfg.Environment, zapLogger),
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one. The 404 fallback goes last so every
// unmatched path gets the JSON envelope.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}

	app.Use(func(c *fiber.Ctx) error {
		return apperror.Newf(fiber.StatusNotFound,
			"Can't find %s on this server!", c.OriginalURL())
	})
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, tourRepo tour.Repository, userRepo user.Repository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := tourRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure tour indexes: %v", err)
				}
				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Repositories
			user.NewRepository,
			tour.NewRepository,
			review.NewRepository,
			emails.NewRepository,

			// Services
			emails.NewService,
			auth.NewService,
			user.NewService,
			tour.NewService,
			review.NewService,

			// Controllers
			auth.NewController,
			user.NewController,
			tour.NewController,
			review.NewController,

			// Routes
			AsRoute(auth.NewApi),
			AsRoute(user.NewApi),
			AsRoute(tour.NewApi),
			AsRoute(review.NewApi),
			AsRoute(health.NewApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
		),
	)

	app.Run()
}
