// Package gormstorage implements the storage.Backend interface over any GORM
// dialect. Each stored file is written in its own transaction.
package gormstorage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dragon-editor/dragondata/internal/model"
	"github.com/dragon-editor/dragondata/internal/model/convert"
	"github.com/dragon-editor/dragondata/pkg/core"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	dbReady bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		deps: deps,
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init runs schema migration.
func (b *Backend) Init(ctx context.Context) error {
	if b.deps.DB == nil {
		return errors.New("no database connection")
	}
	if err := b.deps.DB.WithContext(ctx).AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.dbReady = true
	return nil
}

// Close marks the backend unusable. The connection is owned by the caller.
func (b *Backend) Close() error {
	b.dbReady = false
	return nil
}

// StoreScenarioFile writes a scenario file and its full entity graph.
func (b *Backend) StoreScenarioFile(ctx context.Context, f *core.ScenarioFile) error {
	m, err := convert.CoreToScenarioFile(f, model.KindScenario, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", f.Path, err)
	}
	return b.store(ctx, &m)
}

// StoreSavedFile writes a save file and its full entity graph.
func (b *Backend) StoreSavedFile(ctx context.Context, f *core.SavedScenarioFile) error {
	m, err := convert.CoreToSavedScenarioFile(f)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", f.Path, err)
	}
	return b.store(ctx, &m)
}

func (b *Backend) store(ctx context.Context, m *model.ScenarioFile) error {
	if b == nil || !b.dbReady {
		return errors.New("backend not initialized")
	}

	start := time.Now()
	err := b.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteByPath(tx, m.Path); err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", m.Path, err)
	}

	b.deps.Logger.Debug("Stored file",
		"path", m.Path,
		"kind", m.Kind,
		"scenarios", len(m.Scenarios),
		"duration", time.Since(start))
	return nil
}

// deleteByPath removes a previously stored file and everything under it.
func deleteByPath(tx *gorm.DB, path string) error {
	var existing model.ScenarioFile
	err := tx.Unscoped().Where("path = ?", path).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID == 0 {
		return nil
	}

	scenarioIDs := tx.Model(&model.Scenario{}).Select("id").Where("scenario_file_id = ?", existing.ID)
	for _, child := range []any{&model.Character{}, &model.Force{}, &model.City{}, &model.Legion{}} {
		if err := tx.Where("scenario_id IN (?)", scenarioIDs).Delete(child).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("scenario_file_id = ?", existing.ID).Delete(&model.Scenario{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&existing).Error
}
