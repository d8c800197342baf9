package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-board/internal/api/http"
	"github.com/spec-kit/ticket-board/internal/api/http/handlers"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/observability"
	"github.com/spec-kit/ticket-board/internal/persistence"
	"github.com/spec-kit/ticket-board/internal/repository"
	"github.com/spec-kit/ticket-board/internal/service"
	"github.com/spec-kit/ticket-board/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	docs, closeStorage, err := openDocuments(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStorage()

	seeds, err := service.HashSeeds(service.DefaultSeeds, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed accounts", zap.Error(err))
	}
	userStore, err := repository.LoadUserStore(ctx, docs, seeds)
	if err != nil {
		logger.Fatal("failed to load users", zap.Error(err))
	}
	ticketStore, err := repository.LoadTicketStore(ctx, docs)
	if err != nil {
		logger.Fatal("failed to load tickets", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var revocations auth.RevocationList
	if redis != nil {
		revocations = auth.NewRedisRevocations(redis.Client)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userStore,
		Revocations: revocations,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketStore,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		LockClosed: cfg.Tickets.LockClosed,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userStore, authService.Revocations())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, docs, redis),
		Users:          handlers.NewUsersHandler(authService),
		Staff:          handlers.NewStaffHandler(authService, logger),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openDocuments selects the document store for the configured driver.
func openDocuments(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.DocumentStore, func(), error) {
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		logger.Info("using file storage",
			zap.String("users_file", cfg.Storage.UsersFile),
			zap.String("tickets_file", cfg.Storage.TicketsFile))
		docs := persistence.NewFileDocuments(map[string]string{
			persistence.DocumentUsers:   cfg.Storage.UsersFile,
			persistence.DocumentTickets: cfg.Storage.TicketsFile,
		})
		return docs, func() {}, nil
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}
	return persistence.NewPostgresDocuments(pg), pg.Close, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
