// Command stubserver runs the in-memory backend fixture, handy for local
// development of the console without a real deployment.
package main

import (
	"context"

	"github.com/inventoryhub/admin-console/internal/config"
	"github.com/inventoryhub/admin-console/internal/stubserver"
	"github.com/inventoryhub/admin-console/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadStub(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	srv, err := stubserver.New(stubserver.Options{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		Logger:        log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("stub server")
	}

	log.Info().Str("port", cfg.Port).Msg("stub backend listening")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("stub server stopped")
	}
}
