package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	eventapp "github.com/procurement/backend/internal/application/event"
	procurementapp "github.com/procurement/backend/internal/application/procurement"
	"github.com/procurement/backend/internal/application/reconciliation"
	requisitionapp "github.com/procurement/backend/internal/application/requisition"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/procurement/backend/internal/infrastructure/cache"
	"github.com/procurement/backend/internal/infrastructure/config"
	"github.com/procurement/backend/internal/infrastructure/event"
	"github.com/procurement/backend/internal/infrastructure/logger"
	"github.com/procurement/backend/internal/infrastructure/persistence"
	"github.com/procurement/backend/internal/infrastructure/telemetry"
	"github.com/procurement/backend/internal/interfaces/http/handler"
	"github.com/procurement/backend/internal/interfaces/http/middleware"
	"github.com/procurement/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownGrace = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting procurement backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("shutdown tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("close database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.LogFullSQL,
	}, log); err != nil {
		return fmt.Errorf("register database tracing: %w", err)
	}

	stockProjectID, err := resolveStockProject(cfg, log)
	if err != nil {
		return err
	}

	// Redis when reachable, in-memory fallback unless the deployment
	// requires Redis.
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.Event.RequireRedis),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		return fmt.Errorf("create idempotency store: %w", err)
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventapp.RegisterNotificationHandlers(eventBus, idempotencyStore, shared.IdempotencyConfig{
		TTL:     cfg.Event.IdempotencyTTL,
		Enabled: true,
	}, log)
	if err := eventBus.Start(context.Background()); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("stop event bus", zap.Error(err))
		}
	}()

	scope := persistence.NewGormTransactionScope(db.DB)

	paymentService := procurementapp.NewPaymentService(scope, log)
	goodsReceiptService := procurementapp.NewGoodsReceiptService(scope, stockProjectID, log)
	orderStatusService := procurementapp.NewOrderStatusService(scope, log)
	sourcingService := requisitionapp.NewSourcingOptionService(scope, log)
	backfillService := reconciliation.NewBackfillService(scope, log)

	paymentService.SetEventPublisher(eventBus)
	goodsReceiptService.SetEventPublisher(eventBus)
	orderStatusService.SetEventPublisher(eventBus)
	sourcingService.SetEventPublisher(eventBus)

	engine := newEngine(cfg, log)
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewReceptionHandler(goodsReceiptService)).
		Register(handler.NewOrderHandler(orderStatusService)).
		Register(handler.NewSourcingHandler(sourcingService)).
		Register(handler.NewBackfillHandler(backfillService)).
		Register(handler.NewSystemHandler(db)).
		Setup()

	return serve(cfg, log, engine)
}

// resolveStockProject parses the configured stock project id. An empty id is
// allowed outside production: every reception then accrues assigned stock.
func resolveStockProject(cfg *config.Config, log *zap.Logger) (uuid.UUID, error) {
	if cfg.Inventory.StockProjectID == "" {
		log.Warn("inventory.stock_project_id not configured, all receptions will accrue assigned stock")
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(cfg.Inventory.StockProjectID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid inventory.stock_project_id: %w", err)
	}
	return id, nil
}

func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("set trusted proxies", zap.Error(err))
		}
	}

	// Request id first so recovery, request logs and spans carry it.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.App.Name, cfg.Telemetry.Enabled))
	engine.Use(middleware.TracingAttributes())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	return engine
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests within the shutdown grace period.
func serve(cfg *config.Config, log *zap.Logger, engine *gin.Engine) error {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server exited gracefully")
	return nil
}
