// Package postgres implements the storage.Backend interface using GORM/PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dragon-editor/dragondata/internal/config"
	"github.com/dragon-editor/dragondata/internal/database"
	gormstorage "github.com/dragon-editor/dragondata/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend implements storage.Backend on a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	cfg    config.PostgresConfig
	db     *database.Manager
	logger *slog.Logger
}

// New creates a new Postgres storage backend. No connection is opened until Init.
func New(cfg config.PostgresConfig, logger *slog.Logger, dbLog zerolog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		cfg:    cfg,
		db:     database.NewManager(dbLog),
		logger: logger,
	}
}

// Init connects to Postgres and migrates the schema.
func (b *Backend) Init(ctx context.Context) error {
	if err := b.db.ConnectPostgres(b.cfg); err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:     b.db.DB,
		Logger: b.logger,
	})
	return b.Backend.Init(ctx)
}

// Close releases the connection.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.db.Close()
}
