// Package gamefolder loads every scenario and save file under a game installation
// and applies a chosen save as the active one.
package gamefolder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dragon-editor/dragondata/internal/parser"
	"github.com/dragon-editor/dragondata/internal/util"
	"github.com/dragon-editor/dragondata/pkg/core"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Folder layout
const (
	ScenarioDir     = "SINARIO"
	SavesDir        = "SAVES"
	DefaultSaveName = "SAVE.DAT"
	FileExt         = ".dat"

	DefaultWorkers = 4
)

// Kind selects the scenario or save collection
type Kind int

const (
	KindScenario Kind = iota
	KindSave
)

func (k Kind) String() string {
	switch k {
	case KindScenario:
		return "scenario"
	case KindSave:
		return "save"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Options configures Open. Zero values select the defaults.
type Options struct {
	Fs      afero.Fs
	Workers int
	Logger  *slog.Logger
}

// Folder is a loaded game installation. It is read-only after Open.
type Folder struct {
	root   string
	fs     afero.Fs
	logger *slog.Logger
	parser *parser.Parser

	scenarioFiles []*core.ScenarioFile
	savedFiles    []*core.SavedScenarioFile
	defaultSave   *core.SavedScenarioFile
}

type fileEntry struct {
	path    string
	modTime time.Time
}

// Open scans root and loads every scenario and save file it finds.
// A missing root is an error with a nil Folder. Missing subfolders are returned
// as FolderScanError values joined into err alongside a usable Folder.
func Open(ctx context.Context, root string, opts Options) (*Folder, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	info, err := opts.Fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open game folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open game folder: %s is not a directory", root)
	}

	lm, err := newLoadMetrics()
	if err != nil {
		return nil, err
	}

	f := &Folder{
		root:   root,
		fs:     opts.Fs,
		logger: opts.Logger,
		parser: parser.NewParser(opts.Logger),
	}
	l := &loader{folder: f, metrics: lm, workers: opts.Workers}

	var scanErrs []error

	entries, err := f.list(ScenarioDir)
	if err != nil {
		scanErrs = append(scanErrs, err)
	}
	f.scenarioFiles, err = loadAll(ctx, l, entries, KindScenario, l.loadScenario)
	if err != nil {
		return nil, err
	}

	entries, err = f.list(SavesDir)
	if err != nil {
		scanErrs = append(scanErrs, err)
	}
	f.savedFiles, err = loadAll(ctx, l, entries, KindSave, l.loadSave)
	if err != nil {
		return nil, err
	}

	f.defaultSave = l.loadDefaultSave(ctx)

	f.logger.Info("Game folder loaded",
		"root", root,
		"scenarioFiles", len(f.scenarioFiles),
		"savedFiles", len(f.savedFiles),
		"defaultSave", f.defaultSave != nil)

	return f, errors.Join(scanErrs...)
}

// Root returns the folder path given to Open
func (f *Folder) Root() string { return f.root }

// ScenarioFiles returns the loaded scenario templates in file name order
func (f *Folder) ScenarioFiles() []*core.ScenarioFile { return f.scenarioFiles }

// SavedFiles returns the loaded save slots in file name order
func (f *Folder) SavedFiles() []*core.SavedScenarioFile { return f.savedFiles }

// DefaultSave returns the active save, or nil when SAVE.DAT is absent or unreadable
func (f *Folder) DefaultSave() *core.SavedScenarioFile { return f.defaultSave }

// DefaultSavePath is the file ApplySave writes
func (f *Folder) DefaultSavePath() string {
	return filepath.Join(f.root, DefaultSaveName)
}

// Select returns one scenario of one loaded file.
func (f *Folder) Select(kind Kind, fileIndex, slot int) (*core.Scenario, error) {
	var file *core.ScenarioFile
	switch kind {
	case KindScenario:
		if fileIndex < 0 || fileIndex >= len(f.scenarioFiles) {
			return nil, &SelectionError{Kind: kind, FileIndex: fileIndex, Slot: slot,
				Reason: fmt.Sprintf("file index out of range [0,%d)", len(f.scenarioFiles))}
		}
		file = f.scenarioFiles[fileIndex]
	case KindSave:
		if fileIndex < 0 || fileIndex >= len(f.savedFiles) {
			return nil, &SelectionError{Kind: kind, FileIndex: fileIndex, Slot: slot,
				Reason: fmt.Sprintf("file index out of range [0,%d)", len(f.savedFiles))}
		}
		file = &f.savedFiles[fileIndex].ScenarioFile
	default:
		return nil, &SelectionError{Kind: kind, FileIndex: fileIndex, Slot: slot, Reason: "unknown kind"}
	}

	s, ok := file.Scenario(slot)
	if !ok {
		return nil, &SelectionError{Kind: kind, FileIndex: fileIndex, Slot: slot,
			Reason: fmt.Sprintf("slot out of range [0,%d)", len(file.Scenarios))}
	}
	return s, nil
}

// ApplySave copies the bytes of saved onto SAVE.DAT, replacing it.
// The copy is not re-parsed and failures are not retried.
func (f *Folder) ApplySave(saved *core.SavedScenarioFile) error {
	dst := f.DefaultSavePath()
	if saved == nil {
		return &FileCopyError{Dst: dst, Err: errors.New("no save selected")}
	}
	if err := f.copyFile(saved.Path, dst); err != nil {
		return &FileCopyError{Src: saved.Path, Dst: dst, Err: err}
	}
	f.logger.Info("Applied save", "src", saved.Path, "dst", dst)
	return nil
}

func (f *Folder) copyFile(src, dst string) error {
	in, err := f.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if filepath.Clean(src) == filepath.Clean(dst) {
		return ErrSameFile
	}
	if si, err := in.Stat(); err == nil {
		if di, err := f.fs.Stat(dst); err == nil && os.SameFile(si, di) {
			return ErrSameFile
		}
	}

	out, err := f.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// list returns the regular .dat files of a subfolder, sorted by name.
func (f *Folder) list(dir string) ([]fileEntry, error) {
	path := filepath.Join(f.root, dir)
	infos, err := afero.ReadDir(f.fs, path)
	if err != nil {
		return nil, &FolderScanError{Dir: path, Err: err}
	}

	entries := make([]fileEntry, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() || !util.HasExtensionFold(info.Name(), FileExt) {
			continue
		}
		entries = append(entries, fileEntry{
			path:    filepath.Join(path, info.Name()),
			modTime: info.ModTime(),
		})
	}
	return entries, nil
}

type loader struct {
	folder  *Folder
	metrics *loadMetrics
	workers int
}

// loadAll loads entries in parallel and keeps the successes in entry order.
// Per-file failures are logged and dropped; only cancellation aborts.
func loadAll[T any](ctx context.Context, l *loader, entries []fileEntry, kind Kind, load func(fileEntry) (*T, error)) ([]*T, error) {
	results := make([]*T, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := load(e)
			if err != nil {
				l.folder.logger.Warn("Failed to load file", "kind", kind.String(), "path", e.path, "error", err)
				l.metrics.record(gctx, kind, false)
				return nil
			}
			l.metrics.record(gctx, kind, true)
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make([]*T, 0, len(results))
	for _, v := range results {
		if v != nil {
			loaded = append(loaded, v)
		}
	}
	return loaded, nil
}

func (l *loader) loadScenario(e fileEntry) (*core.ScenarioFile, error) {
	buf, err := afero.ReadFile(l.folder.fs, e.path)
	if err != nil {
		return nil, err
	}
	return l.folder.parser.ParseScenarioFile(e.path, buf)
}

func (l *loader) loadSave(e fileEntry) (*core.SavedScenarioFile, error) {
	buf, err := afero.ReadFile(l.folder.fs, e.path)
	if err != nil {
		return nil, err
	}
	return l.folder.parser.ParseSavedScenarioFile(e.path, buf, e.modTime)
}

func (l *loader) loadDefaultSave(ctx context.Context) *core.SavedScenarioFile {
	path := l.folder.DefaultSavePath()
	info, err := l.folder.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.folder.logger.Debug("No default save", "path", path)
		return nil
	}
	if err != nil {
		l.folder.logger.Warn("Failed to stat default save", "path", path, "error", err)
		return nil
	}

	saved, err := l.loadSave(fileEntry{path: path, modTime: info.ModTime()})
	if err != nil {
		l.folder.logger.Warn("Failed to load file", "kind", KindSave.String(), "path", path, "error", err)
		l.metrics.record(ctx, KindSave, false)
		return nil
	}
	l.metrics.record(ctx, KindSave, true)
	return saved
}
