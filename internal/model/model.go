package model

import (
	"database/sql"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ScenarioFile{},
	&Scenario{},
	&Character{},
	&Force{},
	&City{},
	&Legion{},
}

// File kinds stored in ScenarioFile.Kind
const (
	KindScenario = "scenario"
	KindSave     = "save"
)

// ScenarioFile is one decoded file on disk
type ScenarioFile struct {
	gorm.Model
	Path      string       `json:"path" gorm:"size:1024;uniqueIndex:idx_scenario_file_path"`
	Kind      string       `json:"kind" gorm:"size:16;index:idx_scenario_file_kind"`
	ModTime   sql.NullTime `json:"modTime"` // saves only
	Scenarios []Scenario   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*ScenarioFile) TableName() string {
	return "scenario_files"
}

// Scenario is one of the four snapshots of a file, with its game data inlined
type Scenario struct {
	ID             uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	ScenarioFileID uint          `json:"scenarioFileId" gorm:"index:idx_scenario_file_id"`
	Slot           uint8         `json:"slot"`
	Name           string        `json:"name" gorm:"size:64"`
	Year           uint16        `json:"year"`
	Month          uint8         `json:"month"`
	Day            uint8         `json:"day"`
	PlayerForce    sql.NullInt16 `json:"playerForce"` // raw force slot, NULL when unset
	Trust          uint8         `json:"trust"`
	Number         uint8         `json:"number"`
	CurTaxRate     uint16        `json:"curTaxRate"`
	NextTaxRate    uint16        `json:"nextTaxRate"`
	CurCavalry     uint16        `json:"curCavalry"`
	CurInfantry    uint16        `json:"curInfantry"`
	CurArcher      uint16        `json:"curArcher"`
	NextCavalry    uint16        `json:"nextCavalry"`
	NextInfantry   uint16        `json:"nextInfantry"`
	NextArcher     uint16        `json:"nextArcher"`
	TotalForces    uint8         `json:"totalForces"`

	Characters []Character `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Forces     []Force     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Cities     []City      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Legions    []Legion    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Scenario) TableName() string {
	return "scenarios"
}

// Character is a general. Force references hold the raw force slot of a resolved link.
type Character struct {
	ID            uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	ScenarioID    uint          `json:"scenarioId" gorm:"index:idx_character_scenario_id"`
	Slot          uint8         `json:"slot"`
	Name          string        `json:"name" gorm:"size:32"`
	Alias         string        `json:"alias" gorm:"size:32"`
	Property      uint8         `json:"property"`
	Avatar        uint8         `json:"avatar"`
	SiegeAbility  uint8         `json:"siegeAbility"`
	FieldAbility  uint8         `json:"fieldAbility"`
	NavalAbility  uint8         `json:"navalAbility"`
	BattleAbility uint8         `json:"battleAbility"`
	Command       uint8         `json:"command"`
	Politics      uint8         `json:"politics"`
	Status        uint8         `json:"status"`
	StatusText    string        `json:"statusText" gorm:"size:64"`
	MonthsToBoard uint8         `json:"monthsToBoard"`
	ForceNext     sql.NullInt16 `json:"forceNext"`
	ForceCapture  sql.NullInt16 `json:"forceCapture"`
	ForceOrigin   sql.NullInt16 `json:"forceOrigin"`
}

func (*Character) TableName() string {
	return "characters"
}

// Force is a faction
type Force struct {
	ID             uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	ScenarioID     uint          `json:"scenarioId" gorm:"index:idx_force_scenario_id"`
	Slot           uint8         `json:"slot"`
	Name           string        `json:"name" gorm:"size:32"`
	Status         uint8         `json:"status"`
	Warlord        uint8         `json:"warlord"`
	Advisor        sql.NullInt16 `json:"advisor"`
	Capital        uint8         `json:"capital"`
	Cavalries      uint16        `json:"cavalries"`
	Infantries     uint16        `json:"infantries"`
	Archers        uint16        `json:"archers"`
	Subordinates   uint8         `json:"subordinates"`
	Money          int32         `json:"money"`
	CityCount      uint8         `json:"cityCount"`
	DiplomacyOwner sql.NullInt16 `json:"diplomacyOwner"`
}

func (*Force) TableName() string {
	return "forces"
}

// City is a settlement. Position holds the map grid coordinate as a 2D point.
type City struct {
	ID              uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	ScenarioID      uint          `json:"scenarioId" gorm:"index:idx_city_scenario_id"`
	Slot            uint8         `json:"slot"`
	Name            string        `json:"name" gorm:"size:32"`
	Position        geom.Point    `json:"position"`
	MaxProductivity uint16        `json:"maxProductivity"`
	CurProductivity uint16        `json:"curProductivity"`
	Growth          uint8         `json:"growth"`
	AntiDisaster    uint8         `json:"antiDisaster"`
	Soldiers        uint8         `json:"soldiers"`
	CityType        uint16        `json:"cityType"`
	AffairsOwner    sql.NullInt16 `json:"affairsOwner"`
	Force           sql.NullInt16 `json:"force"`
}

func (*City) TableName() string {
	return "cities"
}

// Legion is an army in the field
type Legion struct {
	ID             uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	ScenarioID     uint           `json:"scenarioId" gorm:"index:idx_legion_scenario_id"`
	Slot           uint8          `json:"slot"`
	Name           string         `json:"name" gorm:"size:32"`
	State          uint8          `json:"state"`
	Force          uint8          `json:"force"`
	Leader         uint8          `json:"leader"`
	TargetCity     uint8          `json:"targetCity"`
	TotalSoldiers  uint16         `json:"totalSoldiers"`
	Morale         uint8          `json:"morale"`
	Position       geom.Point     `json:"position"`
	TargetPosition geom.Point     `json:"targetPosition"`
	Troops         datatypes.JSON `json:"troops"` // [{"count":n,"type":"cavalry"}, ...]
}

func (*Legion) TableName() string {
	return "legions"
}
