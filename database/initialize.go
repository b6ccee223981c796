package database

import (
	"os"

	"garden-tss-api/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Initialize opens the pooled database connection and brings the schema up to
// date. The pool is bounded; requests beyond capacity queue on the pool rather
// than fail.
func Initialize(cfg *config.Config) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: cfg.DBDriver,
		DB:     cfg.DBPath,
	})

	dbConn.SetMaxOpenConns(cfg.DBMaxConns)
	dbConn.SetMaxIdleConns(cfg.DBMaxConns)

	if err := migrations.Migrate(dbConn, cfg.MigrationsDir); err != nil {
		logger.Error("Error while running migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully")
	return dbConn
}
