package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/app"
	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/cache"
	"github.com/Freeeeeet/fitnesshub/internal/config"
	"github.com/Freeeeeet/fitnesshub/internal/controller/rest"
	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram"
	"github.com/Freeeeeet/fitnesshub/internal/notify"
	"github.com/Freeeeeet/fitnesshub/internal/repository"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting FitnessHub",
		zap.String("port", cfg.AppPort),
		zap.Bool("dotenv_loaded", cfg.DotEnvLoaded),
		zap.Bool("telegram_enabled", cfg.TelegramToken != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("FitnessHub stopped with error", zap.Error(err))
	}
	logger.Info("FitnessHub stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("Connected to database")

	if err := migrate(ctx, pool, cfg.MigrationsDir, logger); err != nil {
		return err
	}

	listCache := newCache(ctx, cfg, logger)
	sender := newSender(cfg, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	trainerRepo := repository.NewTrainerRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	// Сервисы
	authService := service.NewAuthService(userRepo, tokens, logger.Named("auth"))
	userService := service.NewUserService(userRepo, logger.Named("users"))
	trainerService := service.NewTrainerService(trainerRepo, userRepo, sender, listCache, logger.Named("trainers"))
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, listCache, logger.Named("subscriptions"))
	classService := service.NewClassService(classRepo, trainerRepo, listCache, logger.Named("classes"))
	scheduleService := service.NewScheduleService(scheduleRepo, trainerRepo, logger.Named("schedule"))
	statsService := service.NewStatsService(statsRepo)

	created, err := authService.EnsureAdmin(ctx, "Администратор", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Admin account created", zap.String("email", cfg.AdminEmail))
	}

	scheduler := app.NewScheduler(subscriptionService, cfg.SubscriptionSweepInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.TelegramToken != "" {
		startBot(ctx, cfg.TelegramToken, telegram.Deps{
			Trainers:      trainerService,
			Subscriptions: subscriptionService,
			Sessions:      classService,
			Accounts:      userService,
			Schedule:      scheduleService,
			Auth:          authService,
		}, logger.Named("bot"))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := rest.NewRouter(rest.Services{
		Auth:          authService,
		Trainers:      trainerService,
		Subscriptions: subscriptionService,
		Classes:       classService,
		Schedule:      scheduleService,
		Users:         userService,
		Stats:         statsService,
	}, tokens, rest.Options{
		AllowedOrigins:  cfg.AllowedOrigins(),
		RateLimitPerMin: cfg.RateLimitPerMin,
	}, logger.Named("http"))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, dir string, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, dir, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// newCache подключает Redis если он задан. Недоступный Redis не мешает старту.
func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) service.Cache {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, catalog cache disabled")
		return cache.Noop{}
	}

	redisCache, err := cache.NewRedisCache(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	}, logger.Named("cache"))
	if err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		return cache.Noop{}
	}

	go func() {
		<-ctx.Done()
		redisCache.Close()
	}()
	return redisCache
}

func newSender(cfg *config.Config, logger *zap.Logger) service.Sender {
	if cfg.ResendAPIKey == "" {
		return notify.NewNoopSender(logger.Named("mail"))
	}
	return notify.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, logger.Named("mail"))
}

// startBot запускает Telegram бота в фоне. Ошибка бота не останавливает HTTP API.
func startBot(ctx context.Context, token string, deps telegram.Deps, logger *zap.Logger) {
	controller, err := telegram.New(token, deps, logger)
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return
	}
	if err := controller.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}
	go controller.Start(ctx)
}
