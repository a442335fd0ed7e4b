package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacter_StatusText(t *testing.T) {
	captor := &Force{NamedElement: NamedElement{Index: 3, Name: "Cao Cao"}}

	tests := []struct {
		name string
		c    Character
		want string
	}{
		{"idle held", Character{Status: StatusIdle, ForceCapture: captor, MonthsToBoard: 2}, "awaiting orders: Cao Cao"},
		{"idle waiting", Character{Status: StatusIdle, MonthsToBoard: 3}, "(3 months until available)"},
		{"idle exile", Character{Status: StatusIdle}, "in exile"},
		{"commander", Character{Status: StatusCommander}, "commander"},
		{"internal affairs", Character{Status: StatusInternalAffairsOfficer}, "internal affairs officer"},
		{"diplomat", Character{Status: StatusDiplomat, ForceCapture: captor}, "diplomat"},
		{"captured", Character{Status: StatusDeadOrCaptured, ForceCapture: captor}, "captured by: Cao Cao"},
		{"deceased", Character{Status: StatusDeadOrCaptured, MonthsToBoard: 5, ForceOrigin: captor}, "deceased"},
		{"unknown status", Character{Status: CharacterStatus(9), ForceCapture: captor}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.StatusText())
		})
	}
}

func TestCharacterStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "dead or captured", StatusDeadOrCaptured.String())
	assert.Equal(t, "unknown(7)", CharacterStatus(7).String())
}

func TestTroopType_String(t *testing.T) {
	assert.Equal(t, "infantry", TroopInfantry.String())
	assert.Equal(t, "siege", TroopSiege.String())
	assert.Equal(t, "troop(12)", TroopType(12).String())
}

func TestAxis(t *testing.T) {
	assert.True(t, Axis{}.IsZero())
	assert.False(t, Axis{X: 1}.IsZero())
	assert.False(t, Axis{Y: 1}.IsZero())
	assert.Equal(t, "(3,4)", Axis{X: 3, Y: 4}.String())
}

func TestNewScenario_SlotLookups(t *testing.T) {
	warlord := &Character{NamedElement: NamedElement{Index: 10, Name: "Liu Bei"}}
	city := &City{NamedElement: NamedElement{Index: 40, Name: "Xinye"}}
	force := &Force{NamedElement: NamedElement{Index: 2, Name: "Liu Bei"}, Warlord: warlord, Capital: city}
	other := &Force{NamedElement: NamedElement{Index: 5, Name: "Sun Quan"}}
	legion := &Legion{NamedElement: NamedElement{Index: 7, Name: "Liu Bei"}, Force: force, Leader: warlord, TargetCity: city}

	var friendship FriendshipMatrix
	friendship[2][5] = 60
	friendship[5][2] = 20

	s := NewScenario(1, &GameData{}, []*Character{warlord}, []*City{city}, []*Force{force, other}, []*Legion{legion}, friendship)

	assert.Equal(t, 1, s.Slot)
	assert.Same(t, warlord, s.Character(10))
	assert.Nil(t, s.Character(0))
	assert.Same(t, city, s.City(40))
	assert.Same(t, force, s.Force(2))
	assert.Same(t, other, s.Force(5))
	assert.Nil(t, s.Force(3))
	assert.Same(t, legion, s.Legion(7))

	assert.Equal(t, uint8(60), s.Friendship(force, other))
	assert.Equal(t, uint8(20), s.Friendship(other, force))
	assert.Zero(t, s.Friendship(nil, other))
	assert.Zero(t, s.Friendship(force, &Force{NamedElement: NamedElement{Index: 99}}))
}

func TestScenarioFile_Scenario(t *testing.T) {
	f := &ScenarioFile{Path: "a.dat", Scenarios: []*Scenario{{Slot: 0}, {Slot: 1}}}

	s, ok := f.Scenario(1)
	require.True(t, ok)
	assert.Equal(t, 1, s.Slot)

	_, ok = f.Scenario(2)
	assert.False(t, ok)
	_, ok = f.Scenario(-1)
	assert.False(t, ok)
}
