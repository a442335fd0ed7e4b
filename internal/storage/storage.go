package storage

import (
	"context"

	"github.com/dragon-editor/dragondata/pkg/core"
)

// Backend is the interface all catalog storage implementations must satisfy.
// Storing a file whose path is already present replaces the earlier copy.
type Backend interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	StoreScenarioFile(ctx context.Context, f *core.ScenarioFile) error
	StoreSavedFile(ctx context.Context, f *core.SavedScenarioFile) error
}
