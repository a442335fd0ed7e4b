package parser

import (
	"log/slog"

	"github.com/dragon-editor/dragondata/internal/layout"
	"github.com/dragon-editor/dragondata/internal/legacytext"
	"github.com/dragon-editor/dragondata/pkg/core"
)

// scenarioBuilder holds the per-kind arenas addressed by raw slot index.
// A nil arena entry is an unused slot.
type scenarioBuilder struct {
	logger *slog.Logger
	slot   int
	raw    *layout.Scenario

	characterArena [layout.CharacterSlots]*core.Character
	cityArena      [layout.CitySlots]*core.City
	forceArena     [layout.ForceSlots]*core.Force

	gameData   *core.GameData
	characters []*core.Character
	cities     []*core.City
	forces     []*core.Force
	legions    []*core.Legion
}

// ParseScenario builds the linked entity graph of one decoded block.
// Kinds are built in the order characters, cities, forces, legions, game data,
// then force back-references are resolved.
func (p *Parser) ParseScenario(slot int, raw *layout.Scenario) (*core.Scenario, error) {
	b := &scenarioBuilder{
		logger: p.logger.With("scenario", slot),
		slot:   slot,
		raw:    raw,
	}

	b.buildCharacters()
	b.buildCities()
	if err := b.buildForces(); err != nil {
		return nil, err
	}
	if err := b.buildLegions(); err != nil {
		return nil, err
	}
	b.buildGameData()
	b.resolve()

	var friendship core.FriendshipMatrix
	for i, row := range raw.Friendship {
		friendship[i] = row
	}

	p.logger.Debug("Parsed scenario",
		"slot", slot,
		"name", b.gameData.Name,
		"characters", len(b.characters),
		"cities", len(b.cities),
		"forces", len(b.forces),
		"legions", len(b.legions))

	return core.NewScenario(slot, b.gameData, b.characters, b.cities, b.forces, b.legions, friendship), nil
}

func (b *scenarioBuilder) buildCharacters() {
	for i := range b.raw.Characters {
		r := &b.raw.Characters[i]
		if r.Name[0] == 0 {
			continue
		}
		c := &core.Character{
			NamedElement:      core.NamedElement{Index: i, Name: legacytext.Decode(r.Name[:])},
			Alias:             legacytext.Decode(r.Alias[:]),
			Property:          r.Property,
			Avatar:            r.Avatar,
			SiegeAbility:      r.SiegeAbility,
			FieldAbility:      r.FieldAbility,
			NavalAbility:      r.NavalAbility,
			BattleAbility:     r.BattleAbility,
			Command:           r.Command,
			Politics:          r.Politics,
			Status:            core.CharacterStatus(r.Status),
			MonthsToBoard:     r.MonthsToBoard,
			ForceNextIndex:    r.ForceNext,
			ForceCaptureIndex: r.ForceCapture,
			ForceOriginIndex:  r.ForceOrigin,
		}
		b.characterArena[i] = c
		b.characters = append(b.characters, c)
	}
}

func (b *scenarioBuilder) buildCities() {
	for i := range b.raw.Cities {
		r := &b.raw.Cities[i]
		if r.Axis.IsZero() {
			continue
		}
		c := &core.City{
			NamedElement:    core.NamedElement{Index: i, Name: legacytext.Decode(r.Name[:])},
			Axis:            core.Axis{X: r.Axis.X, Y: r.Axis.Y},
			MaxProductivity: r.MaxProductivity,
			CurProductivity: r.CurProductivity,
			Growth:          r.Growth,
			AntiDisaster:    r.AntiDisaster,
			Soldiers:        r.Soldiers,
			CityType:        r.CityType,
			AffairsOwner:    b.optionalCharacter("city", i, "affairsOwner", r.AffairsOwner, layout.NoCharacter),
			ForceIndex:      r.Force,
		}
		b.cityArena[i] = c
		b.cities = append(b.cities, c)
	}
}

func (b *scenarioBuilder) buildForces() error {
	for i := range b.raw.Forces {
		r := &b.raw.Forces[i]
		if r.Status == 0 {
			continue
		}
		warlord := b.characterAt(int(r.Warlord))
		if warlord == nil {
			return &UnresolvedReferenceError{Kind: "force", Slot: i, Field: "warlord", Index: int(r.Warlord)}
		}
		capital := b.cityAt(int(r.Capital))
		if capital == nil {
			return &UnresolvedReferenceError{Kind: "force", Slot: i, Field: "capital", Index: int(r.Capital)}
		}
		f := &core.Force{
			NamedElement:   core.NamedElement{Index: i, Name: warlord.Name},
			Status:         r.Status,
			Warlord:        warlord,
			Advisor:        b.optionalCharacter("force", i, "advisor", r.Advisor, layout.NoAdvisor),
			Capital:        capital,
			Cavalries:      r.Cavalries,
			Infantries:     r.Infantries,
			Archers:        r.Archers,
			Subordinates:   r.Subordinates,
			Money:          r.Money(),
			CityCount:      r.CityCount,
			DiplomacyOwner: b.optionalCharacter("force", i, "diplomacyOwner", r.DiplomacyOwner, layout.NoCharacter),
		}
		b.forceArena[i] = f
		b.forces = append(b.forces, f)
	}
	return nil
}

func (b *scenarioBuilder) buildLegions() error {
	for i := range b.raw.Legions {
		r := &b.raw.Legions[i]
		if r.CurrentAxis.IsZero() {
			continue
		}
		force := b.forceAt(int(r.Force))
		if force == nil {
			return &UnresolvedReferenceError{Kind: "legion", Slot: i, Field: "force", Index: int(r.Force)}
		}
		leader := b.characterAt(int(r.Leader))
		if leader == nil {
			return &UnresolvedReferenceError{Kind: "legion", Slot: i, Field: "leader", Index: int(r.Leader)}
		}
		target := b.cityAt(int(r.TargetCity))
		if target == nil {
			return &UnresolvedReferenceError{Kind: "legion", Slot: i, Field: "targetCity", Index: int(r.TargetCity)}
		}

		troops := make([]core.Troop, len(r.Troops))
		for j, t := range r.Troops {
			troops[j] = core.Troop{Count: t.Count, Type: core.TroopType(t.Type)}
		}

		l := &core.Legion{
			NamedElement:  core.NamedElement{Index: i, Name: leader.Name},
			State:         r.State,
			Force:         force,
			Leader:        leader,
			TargetCity:    target,
			TotalSoldiers: r.TotalSoldiers,
			Morale:        r.Morale,
			CurrentAxis:   core.Axis{X: r.CurrentAxis.X, Y: r.CurrentAxis.Y},
			TargetAxis:    core.Axis{X: r.TargetAxis.X, Y: r.TargetAxis.Y},
			Troops:        troops,
		}
		b.legions = append(b.legions, l)
	}
	return nil
}

func (b *scenarioBuilder) buildGameData() {
	r := &b.raw.GameData
	b.gameData = &core.GameData{
		Date:        core.Date{Day: r.Day, Month: r.Month, Year: r.Year},
		ForceIndex:  r.Force,
		Trust:       r.Trust,
		Number:      r.Number,
		CurTaxRate:  r.CurTaxRate,
		NextTaxRate: r.NextTaxRate,
		CurConscription: core.Conscription{
			Cavalry:  r.CurConscription[0],
			Infantry: r.CurConscription[1],
			Archer:   r.CurConscription[2],
		},
		NextConscription: core.Conscription{
			Cavalry:  r.NextConscription[0],
			Infantry: r.NextConscription[1],
			Archer:   r.NextConscription[2],
		},
		TotalForces: r.TotalForces,
		Name:        legacytext.Decode(r.Name[:]),
	}
}

// resolve links the force back-references stored during the first pass.
func (b *scenarioBuilder) resolve() {
	b.gameData.Force = b.forceAt(int(b.gameData.ForceIndex))
	for _, c := range b.cities {
		c.Force = b.forceAt(int(c.ForceIndex))
	}
	for _, c := range b.characters {
		c.ForceNext = b.forceAt(int(c.ForceNextIndex))
		c.ForceCapture = b.forceAt(int(c.ForceCaptureIndex))
		c.ForceOrigin = b.forceAt(int(c.ForceOriginIndex))
	}
}

func (b *scenarioBuilder) characterAt(i int) *core.Character {
	if i < 0 || i >= len(b.characterArena) {
		return nil
	}
	return b.characterArena[i]
}

func (b *scenarioBuilder) cityAt(i int) *core.City {
	if i < 0 || i >= len(b.cityArena) {
		return nil
	}
	return b.cityArena[i]
}

func (b *scenarioBuilder) forceAt(i int) *core.Force {
	if i < 0 || i >= len(b.forceArena) {
		return nil
	}
	return b.forceArena[i]
}

// optionalCharacter resolves a character reference that may hold the none sentinel.
func (b *scenarioBuilder) optionalCharacter(kind string, slot int, field string, index, none uint8) *core.Character {
	if index == none {
		return nil
	}
	c := b.characterAt(int(index))
	if c == nil {
		b.logger.Debug("Optional reference to unused slot",
			"kind", kind,
			"slot", slot,
			"field", field,
			"index", index)
	}
	return c
}
