// Package database opens the application's database connection and runs
// schema migration.
package database

import (
	"errors"

	"github.com/amirasaad/balabank/infra/repository"
	"github.com/amirasaad/balabank/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens a Postgres connection and migrates the schema. TranslateError is
// on so unique violations surface as gorm.ErrDuplicatedKey and map cleanly
// to domain conflicts.
func New(cfg *config.DB) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("database URL is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.Family{},
		&repository.User{},
		&repository.FamilyRequest{},
		&repository.Task{},
		&repository.Loan{},
		&repository.Transaction{},
	)
}
