package server

import (
	"net/http"
	"os"

	"garden-tss-api/config"
	"garden-tss-api/database"
	"garden-tss-api/token"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// StartServer wires configuration, database, token manager and routes, then
// serves until the process is stopped.
func StartServer() {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Garden TSS API...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	dbConn := database.Initialize(cfg)
	defer dbConn.Close()

	if cfg.DoSeed {
		if err := database.Seed(dbConn); err != nil {
			logger.Error("Database seeding failed", zap.Error(err))
			os.Exit(1)
		}
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.UserTokenTTL, cfg.AdminTokenTTL)

	router := NewRouter(dbConn, tokens, cfg)

	logger.Info("Garden TSS API listening", zap.String("port", cfg.Port))

	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		logger.Error("Server failed", zap.Error(err))
		os.Exit(1)
	}
}
