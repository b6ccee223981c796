// Package config loads the process configuration from the environment once at
// startup. Services receive the resulting Config by injection; nothing in the
// codebase reads environment variables directly.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the minimum accepted length for the token signing
// secret. HS256 keys shorter than the hash size weaken the signature.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port          string        `env:"PORT" envDefault:"5000"`
	DBDriver      string        `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBPath        string        `env:"DB_PATH" envDefault:"./garden_tss.db"`
	MigrationsDir string        `env:"MIGRATIONS_DIR" envDefault:"./database/migrations"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	UserTokenTTL  time.Duration `env:"USER_TOKEN_TTL" envDefault:"1h"`
	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"8h"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envDefault:"*"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DoSeed        bool          `env:"DO_SEED" envDefault:"true"`
}

// Addr returns the listen address in :port format.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env if present, parses environment variables and validates the
// result. Startup aborts on any error returned from here.
func Load() (*Config, error) {
	_ = godotenv.Load() // ok if missing in prod

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d; "+
			"generate one with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", cfg.DBMaxConns)
	}

	return cfg, nil
}
