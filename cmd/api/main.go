package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/config"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/database"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/handler"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/markup"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/observability"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/router"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	shutdownTracing, err := observability.SetupTracing(observability.TracingConfig{
		Enabled:     cfg.TracingEnabled,
		ServiceName: cfg.TracingServiceName,
		Writer:      os.Stderr,
	})
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	observability.RegisterMetrics()

	client, err := hoiapi.New(hoiapi.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create upstream client: %v", err)
	}

	chatLog := repository.NewMemoryChatLogRepository(cfg.ChatTranscriptTTL)
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		chatLog = repository.NewRedisChatLogRepository(redisClient, "", cfg.ChatTranscriptTTL)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	metricsService := service.NewMetricsService(client, cfg.MetricsSentinel, logger)
	viewService := service.NewViewService(client, metricsService, client.FormTemplateURL, logger)
	reviewService, err := service.NewReviewService(client, client, metricsService, validate, logger)
	if err != nil {
		log.Fatalf("failed to create review service: %v", err)
	}
	chatService := service.NewChatService(chatLog, client, markup.NewFormatter(), validate, logger)

	dashboardHandler := handler.NewDashboardHandler(viewService, metricsService, renderer, cfg.AppName, cfg.LoginURL, logger)
	recordHandler := handler.NewRecordHandler(reviewService, viewService, renderer, cfg.LoginURL, logger)
	chatHandler := handler.NewChatHandler(chatService, renderer, middleware.RateLimit("chat", cfg.ChatRateLimit, cfg.ChatRateWindow), cfg.LoginURL, logger)
	metricsHandler := handler.NewMetricsHandler(metricsService, cfg.MetricsSentinel, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:         &logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AccessLog:      cfg.AppEnv == "development",
		Session: middleware.SessionConfig{
			Cookie:         cfg.SessionCookie,
			UpstreamCookie: cfg.UpstreamCookie,
			MaxAge:         cfg.ChatTranscriptTTL,
			Secure:         cfg.AppEnv == "production",
		},
	})
	router.Register(app, cfg, router.Dependencies{
		DashboardHandler: dashboardHandler,
		RecordHandler:    recordHandler,
		ChatHandler:      chatHandler,
		MetricsHandler:   metricsHandler,
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("upstream", cfg.UpstreamBaseURL).Msg("dashboard listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, shutdownTracing)
}

func waitForShutdown(app *fiber.App, shutdownTracing func(context.Context) error) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("tracer shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
