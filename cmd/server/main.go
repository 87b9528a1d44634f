package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/internal/config"
	"github.com/taskloop/backend/internal/infrastructure/activitylog"
	"github.com/taskloop/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskloop/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskloop/backend/internal/infrastructure/redis"
	"github.com/taskloop/backend/internal/middleware"
	"github.com/taskloop/backend/internal/router"
	"github.com/taskloop/backend/internal/services"
	"github.com/taskloop/backend/internal/services/lifecycle"
	"github.com/taskloop/backend/pkg/httpcontext"
	"github.com/taskloop/backend/pkg/logger"
	"github.com/taskloop/backend/pkg/token"
	"github.com/taskloop/backend/repository/postgres"
	redisRepo "github.com/taskloop/backend/repository/redis"
	authUC "github.com/taskloop/backend/usecase/auth"
	taskUC "github.com/taskloop/backend/usecase/task"
	"github.com/taskloop/backend/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	activityStore, err := activitylog.Open(cfg.ActivityLog.Path)
	if err != nil {
		zapLogger.Fatal("failed to open activity log", zap.Error(err))
	}
	manager.Register("activity_log", func(ctx context.Context) error {
		return activityStore.Close()
	})

	mon := monitor.New(pool, redisClient, activityStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	sweeper := services.NewActivitySweeper(
		activityStore,
		cfg.ActivityLog.Retention,
		cfg.ActivityLog.SweepSchedule,
		zapLogger,
	)
	if err := sweeper.Start(); err != nil {
		zapLogger.Fatal("activity sweeper failed to start", zap.Error(err))
	}
	manager.Register("activity_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		zapLogger.Fatal("token manager failed", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	authUseCase := authUC.New(userRepo, tokens, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	views, err := web.NewApp(authUseCase, taskUseCase, sessionRepo, ctxAdapter, web.Config{
		CookieName: cfg.Session.CookieName,
		SessionTTL: cfg.Session.TTL,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("view layer failed", zap.Error(err))
	}

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Views:  views,
	}

	authMiddleware := middleware.Auth(tokens, zapLogger)
	r := router.New(handlers, authMiddleware)

	handler := middleware.Recover(zapLogger)(
		middleware.AccessLog(activityStore, zapLogger)(r.Handler),
	)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
