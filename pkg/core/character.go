// pkg/core/character.go
package core

import "fmt"

// CharacterStatus is the role a character currently holds.
// Values outside the known range are kept as read.
type CharacterStatus uint8

const (
	StatusIdle CharacterStatus = iota
	StatusCommander
	StatusInternalAffairsOfficer
	StatusDiplomat
	StatusDeadOrCaptured
)

func (s CharacterStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCommander:
		return "commander"
	case StatusInternalAffairsOfficer:
		return "internal affairs officer"
	case StatusDiplomat:
		return "diplomat"
	case StatusDeadOrCaptured:
		return "dead or captured"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Character represents a general.
// The three force links are nil when the stored index does not name a live force.
type Character struct {
	NamedElement
	Alias         string
	Property      uint8
	Avatar        uint8
	SiegeAbility  uint8
	FieldAbility  uint8
	NavalAbility  uint8
	BattleAbility uint8
	Command       uint8
	Politics      uint8
	Status        CharacterStatus
	MonthsToBoard uint8

	ForceNextIndex    uint8 // raw force slot the character will join
	ForceCaptureIndex uint8 // raw force slot currently holding the character
	ForceOriginIndex  uint8 // raw force slot the character was taken from
	ForceNext         *Force
	ForceCapture      *Force
	ForceOrigin       *Force

	// no source field drives these; always false
	ToBoard   bool
	IsWarlord bool
	ToSuicide bool
}

// StatusText describes the character's situation for display.
func (c *Character) StatusText() string {
	switch c.Status {
	case StatusIdle:
		if c.ForceCapture != nil {
			return "awaiting orders: " + c.ForceCapture.Name
		}
		if c.MonthsToBoard > 0 {
			return fmt.Sprintf("(%d months until available)", c.MonthsToBoard)
		}
		return "in exile"
	case StatusCommander, StatusInternalAffairsOfficer, StatusDiplomat:
		return c.Status.String()
	case StatusDeadOrCaptured:
		if c.ForceCapture != nil {
			return "captured by: " + c.ForceCapture.Name
		}
		return "deceased"
	default:
		return "unknown"
	}
}
