// Package render writes decoded scenario graphs as nested labelled records for
// diagnostics. The output is meant for people and is not a stable format.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dragon-editor/dragondata/pkg/core"
)

const none = "<none>"

// FolderView is the read side of a loaded game folder
type FolderView interface {
	Root() string
	ScenarioFiles() []*core.ScenarioFile
	SavedFiles() []*core.SavedScenarioFile
	DefaultSave() *core.SavedScenarioFile
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

// Scenario writes one scenario and every entity in it
func Scenario(w io.Writer, s *core.Scenario) error {
	p := &printer{w: w}
	p.scenario(0, s, true)
	return p.err
}

// ScenarioFile writes a file and all of its scenarios
func ScenarioFile(w io.Writer, f *core.ScenarioFile) error {
	p := &printer{w: w}
	p.scenarioFile(0, f, "", true)
	return p.err
}

// SavedScenarioFile writes a save file and all of its scenarios
func SavedScenarioFile(w io.Writer, f *core.SavedScenarioFile) error {
	p := &printer{w: w}
	p.scenarioFile(0, &f.ScenarioFile, f.ModTime.Format(time.RFC3339), true)
	return p.err
}

// Folder writes a summary of every loaded file, one line per scenario.
func Folder(w io.Writer, f FolderView) error {
	p := &printer{w: w}
	p.line(0, "Folder{root=%s, scenarioFiles=%d, savedFiles=%d}", f.Root(), len(f.ScenarioFiles()), len(f.SavedFiles()))
	for i, sf := range f.ScenarioFiles() {
		p.line(1, "[%d]", i)
		p.scenarioFile(2, sf, "", false)
	}
	for i, sf := range f.SavedFiles() {
		p.line(1, "[%d]", i)
		p.scenarioFile(2, &sf.ScenarioFile, sf.ModTime.Format(time.RFC3339), false)
	}
	if d := f.DefaultSave(); d != nil {
		p.line(1, "default")
		p.scenarioFile(2, &d.ScenarioFile, d.ModTime.Format(time.RFC3339), false)
	} else {
		p.line(1, "default=%s", none)
	}
	return p.err
}

func (p *printer) scenarioFile(depth int, f *core.ScenarioFile, modTime string, detail bool) {
	if modTime != "" {
		p.line(depth, "SavedScenarioFile{path=%s, modTime=%s, scenarios=%d}", f.Path, modTime, len(f.Scenarios))
	} else {
		p.line(depth, "ScenarioFile{path=%s, scenarios=%d}", f.Path, len(f.Scenarios))
	}
	for _, s := range f.Scenarios {
		p.scenario(depth+1, s, detail)
	}
}

func (p *printer) scenario(depth int, s *core.Scenario, detail bool) {
	name := none
	date := none
	if s.GameData != nil {
		name = s.GameData.Name
		date = s.GameData.Date.String()
	}
	p.line(depth, "Scenario{slot=%d, name=%s, date=%s, characters=%d, cities=%d, forces=%d, legions=%d}",
		s.Slot, name, date, len(s.Characters), len(s.Cities), len(s.Forces), len(s.Legions))
	if !detail {
		return
	}

	if s.GameData != nil {
		p.gameData(depth+1, s.GameData)
	}
	for _, f := range s.Forces {
		p.force(depth+1, f)
	}
	for _, c := range s.Cities {
		p.city(depth+1, c)
	}
	for _, l := range s.Legions {
		p.legion(depth+1, l)
	}
	for _, c := range s.Characters {
		p.character(depth+1, c)
	}
}

func (p *printer) gameData(depth int, g *core.GameData) {
	p.line(depth, "GameData{name=%s, date=%s, force=%s, trust=%d, number=%d, tax=%d, nextTax=%d, "+
		"conscription=%s, nextConscription=%s, totalForces=%d}",
		g.Name, g.Date, forceRef(g.Force), g.Trust, g.Number, g.CurTaxRate, g.NextTaxRate,
		conscription(g.CurConscription), conscription(g.NextConscription), g.TotalForces)
}

func (p *printer) force(depth int, f *core.Force) {
	p.line(depth, "Force{index=%d, name=%s, status=%d, warlord=%s, advisor=%s, capital=%s, "+
		"cavalries=%d, infantries=%d, archers=%d, subordinates=%d, money=%d, cities=%d, diplomacyOwner=%s}",
		f.Index, f.Name, f.Status, characterRef(f.Warlord), characterRef(f.Advisor), cityRef(f.Capital),
		f.Cavalries, f.Infantries, f.Archers, f.Subordinates, f.Money, f.CityCount, characterRef(f.DiplomacyOwner))
}

func (p *printer) city(depth int, c *core.City) {
	p.line(depth, "City{index=%d, name=%s, axis=%s, force=%s, productivity=%d/%d, growth=%d, "+
		"antiDisaster=%d, soldiers=%d, type=%d, affairsOwner=%s}",
		c.Index, c.Name, c.Axis, forceRef(c.Force), c.CurProductivity, c.MaxProductivity, c.Growth,
		c.AntiDisaster, c.Soldiers, c.CityType, characterRef(c.AffairsOwner))
}

func (p *printer) legion(depth int, l *core.Legion) {
	p.line(depth, "Legion{index=%d, name=%s, state=%d, force=%s, leader=%s, targetCity=%s, "+
		"soldiers=%d, morale=%d, axis=%s, target=%s, troops=%s}",
		l.Index, l.Name, l.State, forceRef(l.Force), characterRef(l.Leader), cityRef(l.TargetCity),
		l.TotalSoldiers, l.Morale, l.CurrentAxis, l.TargetAxis, troops(l.Troops))
}

func (p *printer) character(depth int, c *core.Character) {
	p.line(depth, "Character{index=%d, name=%s, alias=%s, property=%d, avatar=%d, siege=%d, field=%d, "+
		"naval=%d, battle=%d, command=%d, politics=%d, status=%s, statusText=%s, monthsToBoard=%d, "+
		"forceNext=%s, forceCapture=%s, forceOrigin=%s}",
		c.Index, c.Name, c.Alias, c.Property, c.Avatar, c.SiegeAbility, c.FieldAbility,
		c.NavalAbility, c.BattleAbility, c.Command, c.Politics, c.Status, c.StatusText(), c.MonthsToBoard,
		forceRef(c.ForceNext), forceRef(c.ForceCapture), forceRef(c.ForceOrigin))
}

func characterRef(c *core.Character) string {
	if c == nil {
		return none
	}
	return fmt.Sprintf("%s#%d", c.Name, c.Index)
}

func cityRef(c *core.City) string {
	if c == nil {
		return none
	}
	return fmt.Sprintf("%s#%d", c.Name, c.Index)
}

func forceRef(f *core.Force) string {
	if f == nil {
		return none
	}
	return fmt.Sprintf("%s#%d", f.Name, f.Index)
}

func conscription(c core.Conscription) string {
	return fmt.Sprintf("%d/%d/%d", c.Cavalry, c.Infantry, c.Archer)
}

// troops lists the non-empty troop slots
func troops(ts []core.Troop) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.Count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", t.Type, t.Count))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
