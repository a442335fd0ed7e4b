// Package convert provides functions to convert core scenario graphs to GORM models
package convert

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dragon-editor/dragondata/internal/model"
	"github.com/dragon-editor/dragondata/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// axisToPoint converts a core.Axis grid coordinate to a geom.Point
func axisToPoint(a core.Axis) (geom.Point, error) {
	coords := geom.Coordinates{XY: geom.XY{X: float64(a.X), Y: float64(a.Y)}}
	return geom.NewPoint(coords)
}

type troopJSON struct {
	Count uint16 `json:"count"`
	Type  string `json:"type"`
}

// troopsToJSON converts a legion's troop list to datatypes.JSON for DB storage.
func troopsToJSON(troops []core.Troop) (datatypes.JSON, error) {
	if len(troops) == 0 {
		return datatypes.JSON("[]"), nil
	}
	out := make([]troopJSON, len(troops))
	for i, t := range troops {
		out[i] = troopJSON{Count: t.Count, Type: t.Type.String()}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal troops: %w", err)
	}
	return datatypes.JSON(data), nil
}

func forceSlot(f *core.Force) sql.NullInt16 {
	if f == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(f.Index), Valid: true}
}

func characterSlot(c *core.Character) sql.NullInt16 {
	if c == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(c.Index), Valid: true}
}

// CoreToScenarioFile converts a core.ScenarioFile and its scenarios to a GORM model.ScenarioFile.
// modTime is stored only when non-zero.
func CoreToScenarioFile(f *core.ScenarioFile, kind string, modTime time.Time) (model.ScenarioFile, error) {
	out := model.ScenarioFile{
		Path:      f.Path,
		Kind:      kind,
		Scenarios: make([]model.Scenario, 0, len(f.Scenarios)),
	}
	if !modTime.IsZero() {
		out.ModTime = sql.NullTime{Time: modTime, Valid: true}
	}
	for _, s := range f.Scenarios {
		m, err := CoreToScenario(s)
		if err != nil {
			return model.ScenarioFile{}, fmt.Errorf("%s: %w", f.Path, err)
		}
		out.Scenarios = append(out.Scenarios, m)
	}
	return out, nil
}

// CoreToSavedScenarioFile converts a save file, keeping its modification time.
func CoreToSavedScenarioFile(f *core.SavedScenarioFile) (model.ScenarioFile, error) {
	return CoreToScenarioFile(&f.ScenarioFile, model.KindSave, f.ModTime)
}

// CoreToScenario converts a core.Scenario and every entity in it to a GORM model.Scenario.
func CoreToScenario(s *core.Scenario) (model.Scenario, error) {
	out := model.Scenario{
		Slot:       uint8(s.Slot),
		Characters: make([]model.Character, 0, len(s.Characters)),
		Forces:     make([]model.Force, 0, len(s.Forces)),
		Cities:     make([]model.City, 0, len(s.Cities)),
		Legions:    make([]model.Legion, 0, len(s.Legions)),
	}
	if g := s.GameData; g != nil {
		out.Name = g.Name
		out.Year = g.Date.Year
		out.Month = g.Date.Month
		out.Day = g.Date.Day
		out.PlayerForce = forceSlot(g.Force)
		out.Trust = g.Trust
		out.Number = g.Number
		out.CurTaxRate = g.CurTaxRate
		out.NextTaxRate = g.NextTaxRate
		out.CurCavalry = g.CurConscription.Cavalry
		out.CurInfantry = g.CurConscription.Infantry
		out.CurArcher = g.CurConscription.Archer
		out.NextCavalry = g.NextConscription.Cavalry
		out.NextInfantry = g.NextConscription.Infantry
		out.NextArcher = g.NextConscription.Archer
		out.TotalForces = g.TotalForces
	}

	for _, c := range s.Characters {
		out.Characters = append(out.Characters, CoreToCharacter(c))
	}
	for _, f := range s.Forces {
		out.Forces = append(out.Forces, CoreToForce(f))
	}
	for _, c := range s.Cities {
		m, err := CoreToCity(c)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("scenario %d: %w", s.Slot, err)
		}
		out.Cities = append(out.Cities, m)
	}
	for _, l := range s.Legions {
		m, err := CoreToLegion(l)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("scenario %d: %w", s.Slot, err)
		}
		out.Legions = append(out.Legions, m)
	}
	return out, nil
}

// CoreToCharacter converts a core.Character to a GORM model.Character.
func CoreToCharacter(c *core.Character) model.Character {
	return model.Character{
		Slot:          uint8(c.Index),
		Name:          c.Name,
		Alias:         c.Alias,
		Property:      c.Property,
		Avatar:        c.Avatar,
		SiegeAbility:  c.SiegeAbility,
		FieldAbility:  c.FieldAbility,
		NavalAbility:  c.NavalAbility,
		BattleAbility: c.BattleAbility,
		Command:       c.Command,
		Politics:      c.Politics,
		Status:        uint8(c.Status),
		StatusText:    c.StatusText(),
		MonthsToBoard: c.MonthsToBoard,
		ForceNext:     forceSlot(c.ForceNext),
		ForceCapture:  forceSlot(c.ForceCapture),
		ForceOrigin:   forceSlot(c.ForceOrigin),
	}
}

// CoreToForce converts a core.Force to a GORM model.Force.
// Warlord and capital are required links and are stored as plain slots.
func CoreToForce(f *core.Force) model.Force {
	out := model.Force{
		Slot:           uint8(f.Index),
		Name:           f.Name,
		Status:         f.Status,
		Advisor:        characterSlot(f.Advisor),
		Cavalries:      f.Cavalries,
		Infantries:     f.Infantries,
		Archers:        f.Archers,
		Subordinates:   f.Subordinates,
		Money:          f.Money,
		CityCount:      f.CityCount,
		DiplomacyOwner: characterSlot(f.DiplomacyOwner),
	}
	if f.Warlord != nil {
		out.Warlord = uint8(f.Warlord.Index)
	}
	if f.Capital != nil {
		out.Capital = uint8(f.Capital.Index)
	}
	return out
}

// CoreToCity converts a core.City to a GORM model.City.
func CoreToCity(c *core.City) (model.City, error) {
	pos, err := axisToPoint(c.Axis)
	if err != nil {
		return model.City{}, fmt.Errorf("city %d position: %w", c.Index, err)
	}
	return model.City{
		Slot:            uint8(c.Index),
		Name:            c.Name,
		Position:        pos,
		MaxProductivity: c.MaxProductivity,
		CurProductivity: c.CurProductivity,
		Growth:          c.Growth,
		AntiDisaster:    c.AntiDisaster,
		Soldiers:        c.Soldiers,
		CityType:        c.CityType,
		AffairsOwner:    characterSlot(c.AffairsOwner),
		Force:           forceSlot(c.Force),
	}, nil
}

// CoreToLegion converts a core.Legion to a GORM model.Legion.
func CoreToLegion(l *core.Legion) (model.Legion, error) {
	pos, err := axisToPoint(l.CurrentAxis)
	if err != nil {
		return model.Legion{}, fmt.Errorf("legion %d position: %w", l.Index, err)
	}
	target, err := axisToPoint(l.TargetAxis)
	if err != nil {
		return model.Legion{}, fmt.Errorf("legion %d target: %w", l.Index, err)
	}
	troops, err := troopsToJSON(l.Troops)
	if err != nil {
		return model.Legion{}, fmt.Errorf("legion %d: %w", l.Index, err)
	}
	out := model.Legion{
		Slot:           uint8(l.Index),
		Name:           l.Name,
		State:          l.State,
		TotalSoldiers:  l.TotalSoldiers,
		Morale:         l.Morale,
		Position:       pos,
		TargetPosition: target,
		Troops:         troops,
	}
	if l.Force != nil {
		out.Force = uint8(l.Force.Index)
	}
	if l.Leader != nil {
		out.Leader = uint8(l.Leader.Index)
	}
	if l.TargetCity != nil {
		out.TargetCity = uint8(l.TargetCity.Index)
	}
	return out, nil
}
