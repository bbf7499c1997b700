package main

import (
	"context"
	"flag"
	"time"

	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/infrastructure/config"
	"github.com/procurement/backend/internal/infrastructure/logger"
	"github.com/procurement/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// One-shot reconciliation sweep over historical data. Re-evaluates payment
// liquidation, auto-closure and requisition closure for every order, so it
// is safe to run repeatedly after rule changes or manual data fixes.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Abort the sweep after this duration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	scope := persistence.NewGormTransactionScope(db.DB)
	backfill := reconciliation.NewBackfillService(scope, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	stats, err := backfill.Run(ctx)
	if err != nil {
		log.Fatal("Backfill failed", zap.Error(err))
	}

	log.Info("Backfill complete",
		zap.Int("orders_processed", stats.OrdersProcessed),
		zap.Int("orders_closed", stats.OrdersClosed),
		zap.Int("requisitions_closed", stats.RequisitionsClosed),
		zap.Int("failures", stats.Failures),
		zap.Duration("elapsed", time.Since(start)),
	)
}
