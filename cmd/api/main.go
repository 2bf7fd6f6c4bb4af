package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/placement-portal/internal/api/http"
	"github.com/spec-kit/placement-portal/internal/api/http/handlers"
	"github.com/spec-kit/placement-portal/internal/auth"
	"github.com/spec-kit/placement-portal/internal/config"
	"github.com/spec-kit/placement-portal/internal/events"
	"github.com/spec-kit/placement-portal/internal/feed"
	"github.com/spec-kit/placement-portal/internal/llm"
	"github.com/spec-kit/placement-portal/internal/observability"
	"github.com/spec-kit/placement-portal/internal/persistence"
	"github.com/spec-kit/placement-portal/internal/repository"
	"github.com/spec-kit/placement-portal/internal/service"
	"github.com/spec-kit/placement-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	observability.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	rd := persistence.NewRedis(cfg.Redis, logger)
	defer rd.Close()

	studentRepo := repository.NewStudentRepository(pg.PoolHandle())
	postingRepo := repository.NewPostingRepository(pg.PoolHandle())
	applicationRepo := repository.NewApplicationRepository(pg.PoolHandle())
	reviewRepo := repository.NewReviewRepository(pg.PoolHandle())

	dispatcher := events.NewInMemoryDispatcher()

	var changeFeed feed.Feed
	if rd.Client != nil {
		redisFeed := feed.NewRedisFeed(ctx, rd.Client, logger)
		defer redisFeed.Close()
		changeFeed = redisFeed
	} else {
		changeFeed = feed.NewBroker()
	}

	var llmClient llm.Client
	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			logger.Fatal("gemini client init failed", zap.Error(err))
		}
		defer gemini.Close() //nolint:errcheck
		llmClient = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; assistant endpoints will return upstream errors")
	}

	authService := service.NewAuthService(*cfg, studentRepo)
	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		PostingRepo:     postingRepo,
		ApplicationRepo: applicationRepo,
		Dispatcher:      dispatcher,
		Feed:            changeFeed,
		Logger:          logger,
	})
	postingService := service.NewPostingService(postingRepo, dispatcher, changeFeed)
	reviewService := service.NewReviewService(reviewRepo, dispatcher, changeFeed)
	statsService := service.NewStatsService(studentRepo, applicationRepo)
	assistantService := service.NewAssistantService(llmClient, rd.Client, cfg.Gemini.ChatCacheTTL(), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})

	httpapi.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Students:     handlers.NewStudentsHandler(authService),
		Postings:     handlers.NewPostingsHandler(postingService),
		Applications: handlers.NewApplicationsHandler(workflowService),
		Reviews:      handlers.NewReviewsHandler(reviewService),
		Assistant:    handlers.NewAssistantHandler(assistantService),
		Admin:        handlers.NewAdminHandler(statsService),
		Feed:         handlers.NewFeedHandler(changeFeed, logger),
		Health:       handlers.NewHealthHandler(pg, rd, cfg.App.Version),
		AuthMW:       auth.NewAuthMiddleware(authService.TokenManager(), studentRepo),
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
