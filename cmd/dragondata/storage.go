package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dragon-editor/dragondata/internal/config"
	"github.com/dragon-editor/dragondata/internal/gamefolder"
	"github.com/dragon-editor/dragondata/internal/storage"
)

// export writes every loaded file of f to the configured backend and returns the
// number of files stored.
func (a *app) export(ctx context.Context, f *gamefolder.Folder) (int, error) {
	storageCfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(storageCfg, a.logger, a.dbLogger)
	if err != nil {
		a.logger.Error("Failed to create storage backend", "error", err)
		return 0, err
	}
	if err := backend.Init(ctx); err != nil {
		a.logger.Error("Failed to initialize storage backend", "type", storageCfg.Type, "error", err)
		return 0, errors.Join(err, backend.Close())
	}
	a.logger.Info("Storage backend initialized", "type", storageCfg.Type)

	n, storeErr := storeAll(ctx, backend, f)
	closeErr := backend.Close()
	if storeErr != nil {
		return n, errors.Join(storeErr, closeErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("close storage backend: %w", closeErr)
	}
	return n, nil
}

func storeAll(ctx context.Context, backend storage.Backend, f *gamefolder.Folder) (int, error) {
	n := 0
	for _, sf := range f.ScenarioFiles() {
		if err := backend.StoreScenarioFile(ctx, sf); err != nil {
			return n, err
		}
		n++
	}
	for _, saved := range f.SavedFiles() {
		if err := backend.StoreSavedFile(ctx, saved); err != nil {
			return n, err
		}
		n++
	}
	if d := f.DefaultSave(); d != nil {
		if err := backend.StoreSavedFile(ctx, d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
