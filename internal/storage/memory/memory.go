package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dragon-editor/dragondata/pkg/core"
)

// Record is one stored file
type Record struct {
	Saved   bool
	ModTime time.Time // zero for scenario files
	File    *core.ScenarioFile
}

// Backend keeps decoded files in process, keyed by path
type Backend struct {
	files map[string]Record
	mu    sync.RWMutex
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{
		files: make(map[string]Record),
	}
}

// Init initializes the backend
func (b *Backend) Init(context.Context) error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StoreScenarioFile records a scenario file
func (b *Backend) StoreScenarioFile(ctx context.Context, f *core.ScenarioFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.put(Record{File: f})
	return nil
}

// StoreSavedFile records a save file with its modification time
func (b *Backend) StoreSavedFile(ctx context.Context, f *core.SavedScenarioFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.put(Record{Saved: true, ModTime: f.ModTime, File: &f.ScenarioFile})
	return nil
}

func (b *Backend) put(r Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[r.File.Path] = r
}

// Lookup returns the record stored under path
func (b *Backend) Lookup(path string) (Record, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.files[path]
	return r, ok
}

// Files returns the stored paths in sorted order
func (b *Backend) Files() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}
