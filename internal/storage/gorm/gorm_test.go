package gormstorage

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dragon-editor/dragondata/internal/database"
	"github.com/dragon-editor/dragondata/internal/layout/layouttest"
	"github.com/dragon-editor/dragondata/internal/model"
	"github.com/dragon-editor/dragondata/internal/parser"
	"github.com/dragon-editor/dragondata/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	m := database.NewManager(zerolog.Nop())
	require.NoError(t, m.ConnectSqlite(filepath.Join(t.TempDir(), "catalog.db")))
	t.Cleanup(func() { _ = m.Close() })

	b := New(Dependencies{DB: m.DB})
	require.NoError(t, b.Init(context.Background()))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func sampleFile(t *testing.T, path string) *core.ScenarioFile {
	t.Helper()
	f, err := parser.NewParser(slog.Default()).ParseScenarioFile(path, layouttest.File(layouttest.Sample(), layouttest.NewBlock()))
	require.NoError(t, err)
	return f
}

func TestNew(t *testing.T) {
	b := New(Dependencies{})
	require.NotNil(t, b)
	assert.NotNil(t, b.deps.Logger)
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{})
	assert.EqualError(t, b.Init(context.Background()), "no database connection")
}

func TestStore_NotInitialized(t *testing.T) {
	b := New(Dependencies{})
	err := b.StoreScenarioFile(context.Background(), &core.ScenarioFile{Path: "x"})
	assert.EqualError(t, err, "backend not initialized")
}

func TestStoreScenarioFile(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.StoreScenarioFile(ctx, sampleFile(t, "SINARIO/A.DAT")))

	var files []model.ScenarioFile
	require.NoError(t, b.DB().Preload("Scenarios").Find(&files).Error)
	require.Len(t, files, 1)
	assert.Equal(t, "SINARIO/A.DAT", files[0].Path)
	assert.Equal(t, model.KindScenario, files[0].Kind)
	assert.False(t, files[0].ModTime.Valid)
	assert.Len(t, files[0].Scenarios, 4)

	var force model.Force
	require.NoError(t, b.DB().Where("slot = ?", layouttest.SampleForce).First(&force).Error)
	assert.Equal(t, "Cao", force.Name)
	assert.Equal(t, int32(layouttest.SampleMoney), force.Money)
	assert.False(t, force.Advisor.Valid)

	var city model.City
	require.NoError(t, b.DB().Where("slot = ?", layouttest.SampleCapital).First(&city).Error)
	coord, ok := city.Position.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 10.0, coord.XY.X)
	assert.Equal(t, 12.0, coord.XY.Y)

	var legions int64
	require.NoError(t, b.DB().Model(&model.Legion{}).Count(&legions).Error)
	assert.Equal(t, int64(1), legions)
}

func TestStoreScenarioFile_ReplacesSamePath(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.StoreScenarioFile(ctx, sampleFile(t, "SINARIO/A.DAT")))
	require.NoError(t, b.StoreScenarioFile(ctx, sampleFile(t, "SINARIO/A.DAT")))
	require.NoError(t, b.StoreScenarioFile(ctx, sampleFile(t, "SINARIO/B.DAT")))

	counts := map[any]int64{
		&model.ScenarioFile{}: 2,
		&model.Scenario{}:     8,
		&model.Character{}:    8,
		&model.Legion{}:       2,
	}
	for table, want := range counts {
		var n int64
		require.NoError(t, b.DB().Unscoped().Model(table).Count(&n).Error)
		assert.Equal(t, want, n, "%T", table)
	}
}

func TestStoreSavedFile(t *testing.T) {
	b := newTestBackend(t)
	mod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	saved := &core.SavedScenarioFile{ScenarioFile: *sampleFile(t, "SAVES/S1.DAT"), ModTime: mod}
	require.NoError(t, b.StoreSavedFile(context.Background(), saved))

	var f model.ScenarioFile
	require.NoError(t, b.DB().Where("path = ?", "SAVES/S1.DAT").First(&f).Error)
	assert.Equal(t, model.KindSave, f.Kind)
	require.True(t, f.ModTime.Valid)
	assert.True(t, mod.Equal(f.ModTime.Time))
}

func TestStore_CanceledContext(t *testing.T) {
	b := newTestBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.StoreScenarioFile(ctx, sampleFile(t, "SINARIO/A.DAT"))
	assert.Error(t, err)
}
