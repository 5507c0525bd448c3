// Command console is the interactive inventory and order management
// terminal. It talks to the backend configured via API_BASE_URL.
package main

import (
	"context"
	"os"

	"github.com/inventoryhub/admin-console/internal/client"
	"github.com/inventoryhub/admin-console/internal/config"
	"github.com/inventoryhub/admin-console/internal/session"
	"github.com/inventoryhub/admin-console/internal/ui"
	"github.com/inventoryhub/admin-console/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := session.NewFileTokenStore(cfg.TokenFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TokenFile).Msg("token store")
	}

	mgr := session.NewManager(cfg.APIBaseURL, store, log)
	api := client.New(mgr)
	console := ui.NewConsole(mgr, api, os.Stdin, os.Stdout, log)

	if err := console.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("console terminated")
	}
}
