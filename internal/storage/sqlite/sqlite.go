// Package sqlitestorage implements the storage.Backend interface over SQLite.
// It wraps the GORM backend via composition. When InMemory is set the catalog is
// built in memory and written to Path with VACUUM INTO on Close.
package sqlitestorage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dragon-editor/dragondata/internal/config"
	"github.com/dragon-editor/dragondata/internal/database"
	gormstorage "github.com/dragon-editor/dragondata/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg    config.SQLiteConfig
	db     *database.Manager
	logger *slog.Logger
}

// New creates a new SQLite storage backend. No connection is opened until Init.
func New(cfg config.SQLiteConfig, logger *slog.Logger, dbLog zerolog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		cfg:    cfg,
		db:     database.NewManager(dbLog),
		logger: logger,
	}
}

// Init opens the database and migrates the schema.
func (b *Backend) Init(ctx context.Context) error {
	path := b.cfg.Path
	if b.cfg.InMemory {
		if b.cfg.Path == "" {
			return errors.New("sqlite: in-memory mode needs a dump path")
		}
		path = ""
	} else if path == "" {
		return errors.New("sqlite: path not set")
	}

	if err := b.db.ConnectSqlite(path); err != nil {
		return fmt.Errorf("failed to create SQLite DB: %w", err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:     b.db.DB,
		Logger: b.logger,
	})
	return b.Backend.Init(ctx)
}

// Close dumps an in-memory database to disk and releases the connection.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}

	var dumpErr error
	if b.cfg.InMemory && b.db.IsValid {
		dumpErr = b.db.DumpMemoryToDisk(b.cfg.Path)
		if dumpErr != nil {
			b.logger.Error("Error dumping to disk", "error", dumpErr)
		} else {
			b.logger.Info("Dumped catalog to disk", "path", b.cfg.Path)
		}
	}

	return errors.Join(dumpErr, b.Backend.Close(), b.db.Close())
}
