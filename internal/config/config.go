package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the admin console needs to run.
type Config struct {
	// APIBaseURL is the backend root, including the /api prefix.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8000/api"`
	// TokenFile is where the access token is persisted between runs.
	// Defaults to ~/.inventory-console/token when empty.
	TokenFile string `env:"TOKEN_FILE"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`
}

// StubConfig configures the bundled in-memory backend fixture.
type StubConfig struct {
	Port          string        `env:"PORT,           default=8000"`
	JWTSecret     string        `env:"JWT_SECRET,     default=dev-only-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	AdminUsername string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin123"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	LogPretty     bool          `env:"LOG_PRETTY,     default=true"`
}

// Load reads console configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for token file: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".inventory-console", "token")
	}
	return &cfg, nil
}

// LoadStub reads stub backend configuration from environment variables.
func LoadStub(ctx context.Context) (*StubConfig, error) {
	var cfg StubConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load stub configuration: %w", err)
	}
	return &cfg, nil
}
