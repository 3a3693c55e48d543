package main

import (
	"fmt"

	"github.com/amirasaad/balabank/infra/initializer"
	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.SetupApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
	)
	return app.Listen(addr)
}
