package storage

import (
	"fmt"
	"log/slog"

	"github.com/dragon-editor/dragondata/internal/config"
	"github.com/dragon-editor/dragondata/internal/storage/memory"
	pgstorage "github.com/dragon-editor/dragondata/internal/storage/postgres"
	sqlitestorage "github.com/dragon-editor/dragondata/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, logger *slog.Logger, dbLog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return pgstorage.New(cfg.Postgres, logger, dbLog), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, logger, dbLog), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
