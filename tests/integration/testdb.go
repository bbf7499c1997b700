// Package integration provides end-to-end tests for the reconciliation
// engine. Tests run against an in-memory SQLite database with the full
// schema, exercising the real repositories and transaction scope.
package integration

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/procurement/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database with the engine schema applied.
// Each test gets its own named database, so parallel tests do not share state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	// A single connection keeps the in-memory database alive for the
	// whole test and serializes statements the way SQLite expects.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, (&persistence.Database{DB: db}).Migrate(), "Failed to migrate schema")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
