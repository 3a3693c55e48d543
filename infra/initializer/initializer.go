// Package initializer wires configuration, logging and persistence into the
// dependency set the application is built from.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/balabank/infra/database"
	infrarepo "github.com/amirasaad/balabank/infra/repository"
	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/repository"
	"gorm.io/gorm"
)

// Deps aggregates everything the webapi layer needs to build services.
type Deps struct {
	Config *config.App
	Logger *slog.Logger
	DB     *gorm.DB
	Uow    repository.UnitOfWork
}

// InitializeDependencies builds logger, database connection and unit of work
// from configuration.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := database.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connected and migrated")

	return &Deps{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Uow:    infrarepo.NewUoW(db),
	}, nil
}
