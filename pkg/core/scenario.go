// pkg/core/scenario.go
package core

import "time"

// FriendshipMatrix holds the friendship rating between every pair of force slots
type FriendshipMatrix [MaxForces][MaxForces]uint8

// Scenario is one snapshot of game state. Every link held by its entities points
// into this scenario's own lists.
type Scenario struct {
	Slot       int
	GameData   *GameData
	Characters []*Character
	Cities     []*City
	Forces     []*Force
	Legions    []*Legion

	friendship FriendshipMatrix

	characterBySlot map[int]*Character
	cityBySlot      map[int]*City
	forceBySlot     map[int]*Force
	legionBySlot    map[int]*Legion
}

// NewScenario assembles a scenario and indexes its entities by raw slot.
func NewScenario(
	slot int,
	gameData *GameData,
	characters []*Character,
	cities []*City,
	forces []*Force,
	legions []*Legion,
	friendship FriendshipMatrix,
) *Scenario {
	s := &Scenario{
		Slot:            slot,
		GameData:        gameData,
		Characters:      characters,
		Cities:          cities,
		Forces:          forces,
		Legions:         legions,
		friendship:      friendship,
		characterBySlot: make(map[int]*Character, len(characters)),
		cityBySlot:      make(map[int]*City, len(cities)),
		forceBySlot:     make(map[int]*Force, len(forces)),
		legionBySlot:    make(map[int]*Legion, len(legions)),
	}
	for _, c := range characters {
		s.characterBySlot[c.Index] = c
	}
	for _, c := range cities {
		s.cityBySlot[c.Index] = c
	}
	for _, f := range forces {
		s.forceBySlot[f.Index] = f
	}
	for _, l := range legions {
		s.legionBySlot[l.Index] = l
	}
	return s
}

// Character returns the character at a raw slot, or nil if the slot is unused
func (s *Scenario) Character(slot int) *Character { return s.characterBySlot[slot] }

// City returns the city at a raw slot, or nil if the slot is unused
func (s *Scenario) City(slot int) *City { return s.cityBySlot[slot] }

// Force returns the force at a raw slot, or nil if the slot is unused
func (s *Scenario) Force(slot int) *Force { return s.forceBySlot[slot] }

// Legion returns the legion at a raw slot, or nil if the slot is unused
func (s *Scenario) Legion(slot int) *Legion { return s.legionBySlot[slot] }

// Friendship returns the rating force a holds toward force b. Nil forces rate 0.
func (s *Scenario) Friendship(a, b *Force) uint8 {
	if a == nil || b == nil {
		return 0
	}
	if a.Index < 0 || a.Index >= MaxForces || b.Index < 0 || b.Index >= MaxForces {
		return 0
	}
	return s.friendship[a.Index][b.Index]
}

// ScenarioFile is the ordered list of scenarios decoded from one file
type ScenarioFile struct {
	Path      string
	Scenarios []*Scenario
}

// Scenario returns the scenario at position slot
func (f *ScenarioFile) Scenario(slot int) (*Scenario, bool) {
	if slot < 0 || slot >= len(f.Scenarios) {
		return nil, false
	}
	return f.Scenarios[slot], true
}

// SavedScenarioFile is a save slot. ModTime is for display and ordering only.
type SavedScenarioFile struct {
	ScenarioFile
	ModTime time.Time
}
