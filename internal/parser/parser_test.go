package parser

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dragon-editor/dragondata/internal/layout"
	"github.com/dragon-editor/dragondata/internal/layout/layouttest"
	"github.com/dragon-editor/dragondata/internal/legacytext"
	"github.com/dragon-editor/dragondata/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(slog.Default())
}

func parseSample(t *testing.T) *core.Scenario {
	t.Helper()
	s, err := newTestParser().ParseScenarioBlock(0, layouttest.Sample().Bytes())
	require.NoError(t, err)
	return s
}

func TestNewParser(t *testing.T) {
	p := newTestParser()
	require.NotNil(t, p)
}

func TestParseScenario_Filtering(t *testing.T) {
	s := parseSample(t)

	assert.Len(t, s.Characters, 4)
	assert.Len(t, s.Cities, 2)
	assert.Len(t, s.Forces, 2)
	assert.Len(t, s.Legions, 1)

	assert.Nil(t, s.Character(0), "empty name slot is skipped")
	assert.Nil(t, s.City(6), "city at (0,0) is skipped")
	assert.NotNil(t, s.City(layouttest.SampleFrontier), "city with a single zero coordinate is kept")
	assert.Nil(t, s.Force(0), "status 0 force is skipped")
	assert.Nil(t, s.Legion(1))
}

func TestParseScenario_SlotIndexRetained(t *testing.T) {
	s := parseSample(t)

	for i, c := range s.Characters {
		assert.Same(t, c, s.Character(c.Index), "list position %d", i)
	}
	assert.Equal(t, layouttest.SampleForce, s.Forces[0].Index)
	assert.Equal(t, layouttest.SampleRival, s.Forces[1].Index)
}

func TestParseScenario_Force(t *testing.T) {
	s := parseSample(t)
	f := s.Force(layouttest.SampleForce)
	require.NotNil(t, f)

	assert.Same(t, s.Character(layouttest.SampleWarlord), f.Warlord)
	assert.Equal(t, "Cao", f.Name, "force name mirrors the warlord")
	assert.Nil(t, f.Advisor, "0x7F means no advisor")
	assert.Nil(t, f.DiplomacyOwner, "0 means no diplomacy owner")
	assert.Same(t, s.City(layouttest.SampleCapital), f.Capital)
	assert.Equal(t, int32(layouttest.SampleMoney), f.Money)
	assert.Equal(t, uint16(1000), f.Cavalries)
	assert.Equal(t, uint8(layouttest.SampleCityCount), f.CityCount)

	rival := s.Force(layouttest.SampleRival)
	require.NotNil(t, rival)
	assert.Same(t, s.Character(layouttest.SampleCaptive), rival.Advisor)
	assert.Same(t, s.Character(layouttest.SampleCaptive), rival.DiplomacyOwner)
	assert.Equal(t, "Sun", rival.Name)

	assert.Equal(t, uint8(40), s.Friendship(f, rival))
	assert.Zero(t, s.Friendship(rival, f))
}

func TestParseScenario_Character(t *testing.T) {
	s := parseSample(t)
	force := s.Force(layouttest.SampleForce)
	rival := s.Force(layouttest.SampleRival)

	warlord := s.Character(layouttest.SampleWarlord)
	require.NotNil(t, warlord)
	assert.Equal(t, "Cao", warlord.Name)
	assert.Equal(t, "Mengde", warlord.Alias)
	assert.Equal(t, uint8(90), warlord.Command)
	assert.Equal(t, uint8(85), warlord.Politics)
	assert.False(t, warlord.IsWarlord)
	assert.False(t, warlord.ToBoard)
	assert.False(t, warlord.ToSuicide)

	captive := s.Character(layouttest.SampleCaptive)
	require.NotNil(t, captive)
	assert.Same(t, force, captive.ForceCapture)
	assert.Same(t, rival, captive.ForceOrigin)
	assert.Nil(t, captive.ForceNext, "slot 0 holds no force")
	assert.Equal(t, "captured by: Cao", captive.StatusText())

	leader := s.Character(layouttest.SampleLeader)
	require.NotNil(t, leader)
	assert.Same(t, force, leader.ForceNext)
	assert.Equal(t, "commander", leader.StatusText())
}

func TestParseScenario_CityAndLegion(t *testing.T) {
	s := parseSample(t)
	force := s.Force(layouttest.SampleForce)

	capital := s.City(layouttest.SampleCapital)
	require.NotNil(t, capital)
	assert.Equal(t, "Xuchan", capital.Name)
	assert.Equal(t, core.Axis{X: 10, Y: 12}, capital.Axis)
	assert.Same(t, force, capital.Force)
	assert.Same(t, s.Character(layouttest.SampleLeader), capital.AffairsOwner)

	frontier := s.City(layouttest.SampleFrontier)
	require.NotNil(t, frontier)
	assert.Same(t, s.Force(layouttest.SampleRival), frontier.Force)
	assert.Nil(t, frontier.AffairsOwner)

	l := s.Legion(layouttest.SampleLegion)
	require.NotNil(t, l)
	assert.Same(t, force, l.Force)
	assert.Same(t, s.Character(layouttest.SampleLeader), l.Leader)
	assert.Same(t, frontier, l.TargetCity)
	assert.Equal(t, "Xiahou", l.Name)
	assert.Equal(t, uint16(1500), l.TotalSoldiers)
	require.Len(t, l.Troops, layout.TroopSlots)
	assert.Equal(t, core.Troop{Count: 1000, Type: core.TroopCavalry}, l.Troops[0])
	assert.Equal(t, core.Troop{Count: 500, Type: core.TroopInfantry}, l.Troops[1])
}

func TestParseScenario_GameData(t *testing.T) {
	s := parseSample(t)

	require.NotNil(t, s.GameData)
	assert.Equal(t, layouttest.SampleName, s.GameData.Name)
	assert.Equal(t, core.Date{Day: 1, Month: 3, Year: layouttest.SampleYear}, s.GameData.Date)
	assert.Same(t, s.Force(layouttest.SampleForce), s.GameData.Force)
	assert.Equal(t, uint8(2), s.GameData.TotalForces)
}

func TestParseScenario_EmptyBlock(t *testing.T) {
	s, err := newTestParser().ParseScenarioBlock(2, layouttest.NewBlock().Bytes())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Slot)
	assert.Empty(t, s.Characters)
	assert.Empty(t, s.Cities)
	assert.Empty(t, s.Forces)
	assert.Empty(t, s.Legions)
	assert.Nil(t, s.GameData.Force)
	assert.Equal(t, legacytext.Empty, s.GameData.Name)
}

func TestParseScenario_ForceBackReferenceOutOfRange(t *testing.T) {
	b := layouttest.Sample().
		Character(20, layout.Character{Name: layouttest.Name("Ma"), ForceCapture: 200, ForceNext: 23})
	s, err := newTestParser().ParseScenarioBlock(0, b.Bytes())
	require.NoError(t, err)

	c := s.Character(20)
	require.NotNil(t, c)
	assert.Nil(t, c.ForceCapture)
	assert.Nil(t, c.ForceNext)
	assert.Equal(t, uint8(200), c.ForceCaptureIndex)
	assert.Equal(t, "in exile", c.StatusText())
}

func TestParseScenario_OptionalReferenceToUnusedSlot(t *testing.T) {
	b := layouttest.Sample().
		City(30, layout.City{Name: layouttest.Name("Wan"), Axis: layout.Axis{X: 3, Y: 3}, AffairsOwner: 77})
	s, err := newTestParser().ParseScenarioBlock(0, b.Bytes())
	require.NoError(t, err)

	c := s.City(30)
	require.NotNil(t, c)
	assert.Nil(t, c.AffairsOwner)
}

func TestParseScenario_RequiredReferences(t *testing.T) {
	tests := []struct {
		name  string
		block func() *layouttest.Block
		kind  string
		field string
		index int
	}{
		{
			name: "warlord unused",
			block: func() *layouttest.Block {
				return layouttest.Sample().Force(10, layout.Force{Status: 1, Warlord: 60, Capital: layouttest.SampleCapital})
			},
			kind: "force", field: "warlord", index: 60,
		},
		{
			name: "capital unused",
			block: func() *layouttest.Block {
				return layouttest.Sample().Force(10, layout.Force{Status: 1, Warlord: layouttest.SampleWarlord, Capital: 6})
			},
			kind: "force", field: "capital", index: 6,
		},
		{
			name: "legion force out of range",
			block: func() *layouttest.Block {
				return layouttest.Sample().Legion(4, layout.Legion{Force: 30, Leader: 1, TargetCity: 4, CurrentAxis: layout.Axis{X: 1, Y: 1}})
			},
			kind: "legion", field: "force", index: 30,
		},
		{
			name: "legion leader unused",
			block: func() *layouttest.Block {
				return layouttest.Sample().Legion(4, layout.Legion{Force: 3, Leader: 0, TargetCity: 4, CurrentAxis: layout.Axis{X: 1, Y: 1}})
			},
			kind: "legion", field: "leader", index: 0,
		},
		{
			name: "legion target out of range",
			block: func() *layouttest.Block {
				return layouttest.Sample().Legion(4, layout.Legion{Force: 3, Leader: 1, TargetCity: 250, CurrentAxis: layout.Axis{X: 1, Y: 1}})
			},
			kind: "legion", field: "targetCity", index: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := newTestParser().ParseScenarioBlock(0, tt.block().Bytes())
			require.Error(t, err)
			assert.Nil(t, s)

			var ure *UnresolvedReferenceError
			require.ErrorAs(t, err, &ure)
			assert.Equal(t, tt.kind, ure.Kind)
			assert.Equal(t, tt.field, ure.Field)
			assert.Equal(t, tt.index, ure.Index)
		})
	}
}

func TestParseScenarioBlock_Short(t *testing.T) {
	_, err := newTestParser().ParseScenarioBlock(0, make([]byte, layout.ScenarioSize-1))
	assert.ErrorIs(t, err, layout.ErrStructural)
}

func TestParseScenarioFile(t *testing.T) {
	buf := layouttest.File(layouttest.Sample(), layouttest.NewBlock(), layouttest.Sample())

	f, err := newTestParser().ParseScenarioFile("SINARIO/A.DAT", buf)
	require.NoError(t, err)

	assert.Equal(t, "SINARIO/A.DAT", f.Path)
	require.Len(t, f.Scenarios, layout.ScenarioCount)
	for i, s := range f.Scenarios {
		assert.Equal(t, i, s.Slot)
	}
	assert.Len(t, f.Scenarios[0].Forces, 2)
	assert.Empty(t, f.Scenarios[1].Forces)
	assert.Len(t, f.Scenarios[2].Forces, 2)
	assert.NotSame(t, f.Scenarios[0].Force(3), f.Scenarios[2].Force(3), "scenarios never share entities")
}

func TestParseScenarioFile_Short(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one block", layout.ScenarioSize},
		{"one byte short", layout.FileSize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newTestParser().ParseScenarioFile("x.dat", make([]byte, tt.size))
			require.Error(t, err)
			assert.Nil(t, f)

			var sde *layout.StructuralDecodeError
			require.True(t, errors.As(err, &sde))
			assert.Equal(t, layout.FileSize, sde.Need)
			assert.Equal(t, tt.size, sde.Have)
		})
	}
}

func TestParseScenarioFile_TrailingBytesIgnored(t *testing.T) {
	buf := append(layouttest.File(layouttest.Sample()), 0xFF, 0xFF, 0xFF)

	f, err := newTestParser().ParseScenarioFile("x.dat", buf)
	require.NoError(t, err)
	assert.Len(t, f.Scenarios, layout.ScenarioCount)
}

func TestParseScenarioFile_BlockFailureFailsFile(t *testing.T) {
	bad := layouttest.Sample().Force(10, layout.Force{Status: 1, Warlord: 60, Capital: 4})
	buf := layouttest.File(layouttest.Sample(), layouttest.Sample(), bad, layouttest.Sample())

	f, err := newTestParser().ParseScenarioFile("x.dat", buf)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "scenario 2")

	var ure *UnresolvedReferenceError
	assert.ErrorAs(t, err, &ure)
}

func TestParseSavedScenarioFile(t *testing.T) {
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	f, err := newTestParser().ParseSavedScenarioFile("SAVES/S1.DAT", layouttest.File(layouttest.Sample()), mod)
	require.NoError(t, err)
	assert.Equal(t, mod, f.ModTime)
	assert.Equal(t, "SAVES/S1.DAT", f.Path)
	assert.Len(t, f.Scenarios, layout.ScenarioCount)

	_, err = newTestParser().ParseSavedScenarioFile("SAVES/S2.DAT", nil, mod)
	assert.ErrorIs(t, err, layout.ErrStructural)
}
