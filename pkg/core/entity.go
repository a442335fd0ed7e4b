// pkg/core/entity.go
package core

import "fmt"

// MaxForces is the capacity of the force table, and the size of each friendship row
const MaxForces = 24

// NamedElement is the slot index and display name shared by every entity kind.
// Index is the raw slot position in the source table, not the position in a filtered list.
type NamedElement struct {
	Index int
	Name  string
}

// Axis is a map grid coordinate
type Axis struct {
	X uint16
	Y uint16
}

// IsZero reports whether the axis is (0,0), the unused-slot marker
func (a Axis) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

func (a Axis) String() string {
	return fmt.Sprintf("(%d,%d)", a.X, a.Y)
}

// TroopType is the unit kind of a legion troop
type TroopType uint16

const (
	TroopInfantry TroopType = iota
	TroopArcher
	TroopCavalry
	TroopSpearman
	TroopScout
	TroopCannon
	TroopNaval
	TroopSiege
)

var troopTypeNames = [...]string{
	TroopInfantry: "infantry",
	TroopArcher:   "archer",
	TroopCavalry:  "cavalry",
	TroopSpearman: "spearman",
	TroopScout:    "scout",
	TroopCannon:   "cannon",
	TroopNaval:    "naval",
	TroopSiege:    "siege",
}

func (t TroopType) String() string {
	if int(t) < len(troopTypeNames) {
		return troopTypeNames[t]
	}
	return fmt.Sprintf("troop(%d)", uint16(t))
}

// Troop is one entry of a legion's troop list
type Troop struct {
	Count uint16
	Type  TroopType
}

// Conscription holds the three training queue counters
type Conscription struct {
	Cavalry  uint16
	Infantry uint16
	Archer   uint16
}

// Date is an in-game calendar date
type Date struct {
	Day   uint8
	Month uint8
	Year  uint16
}

func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Year, d.Month, d.Day)
}
