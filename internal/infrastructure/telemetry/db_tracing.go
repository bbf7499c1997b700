package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls the otelgorm instrumentation. LogFullSQL includes
// query parameters in span statements; production runs keep it off so values
// never leave the database.
type DBTracingConfig struct {
	Enabled    bool
	DBName     string
	LogFullSQL bool
}

// RegisterDBTracing registers the otelgorm plugin on the GORM instance so
// every statement runs inside a database span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	logger.Info("database tracing registered", zap.String("db_name", cfg.DBName))
	return nil
}
