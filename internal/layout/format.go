// Package layout defines the packed byte layout of scenario and save files and
// decodes individual records from a byte buffer.
//
// Every record is little-endian with no alignment padding. Reserved bytes are
// declared as blank fields so they are consumed during decoding but never exposed.
package layout

// Format constants
const (
	// ScenarioCount is the number of scenario blocks in one file
	ScenarioCount = 4
	// ScenarioSize is the size of one scenario block
	ScenarioSize = 22208
	// FileSize is the number of bytes a well-formed file must provide
	FileSize = ScenarioCount * ScenarioSize

	NameSize         = 6
	GameDataNameSize = 32
	TroopSlots       = 6

	ForceSlots     = 24
	CitySlots      = 192
	LegionSlots    = 128
	CharacterSlots = 128

	ForceSize      = 64
	CitySize       = 32
	LegionSize     = 64
	CharacterSize  = 32
	GameDataSize   = 128
	FriendshipSize = ForceSlots
)

// Offsets of each table inside a scenario block
const (
	GameDataOffset   = 0
	ForceOffset      = GameDataOffset + GameDataSize           // 128
	FriendshipOffset = ForceOffset + ForceSlots*ForceSize       // 1664
	CityOffset       = FriendshipOffset + ForceSlots*ForceSlots // 2240
	cityReserved     = 512
	LegionOffset     = CityOffset + CitySlots*CitySize + cityReserved // 8896
	CharacterOffset  = LegionOffset + LegionSlots*LegionSize          // 17088
	trailerReserved  = 1024
)

// Sentinel slot values
const (
	// NoAdvisor marks a force without an advisor
	NoAdvisor = 0x7F
	// NoCharacter marks an absent optional character reference
	NoCharacter = 0
)

// Name is a fixed-width BIG5 text slot
type Name [NameSize]byte

// Axis is a map grid coordinate
type Axis struct {
	X uint16
	Y uint16
}

// IsZero reports whether the axis is the unused-slot marker (0,0)
func (a Axis) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// Troop is one troop entry of a legion
type Troop struct {
	Count uint16
	Type  uint16
}

// Force is the 64 byte force record
type Force struct {
	Status         uint8
	Warlord        uint8
	Advisor        uint8
	Capital        uint8
	Cavalries      uint16
	Infantries     uint16
	Archers        uint16
	_              [14]byte
	Subordinates   uint8
	_              [7]byte
	MoneyBytes     [3]byte // 24-bit little-endian
	CityCount      uint8
	_              [22]byte
	DiplomacyOwner uint8
	_              [5]byte
}

// Money assembles the 24-bit money field and reinterprets it as signed.
func (f *Force) Money() int32 {
	return int32(Uint24(f.MoneyBytes))
}

// City is the 32 byte city record
type City struct {
	_               uint8
	Force           uint8
	Name            Name
	Axis            Axis
	MaxProductivity uint16
	CurProductivity uint16
	Growth          uint8
	AntiDisaster    uint8
	Soldiers        uint8
	_               [4]byte
	CityType        uint16
	AffairsOwner    uint8
	_               [6]byte
}

// Legion is the 64 byte legion record
type Legion struct {
	State         uint8
	Force         uint8
	Leader        uint8
	_             uint8
	TotalSoldiers uint16
	Morale        uint8
	_             [7]byte
	CurrentAxis   Axis
	_             [4]byte
	TargetAxis    Axis
	_             [6]byte
	TargetCity    uint8
	_             [7]byte
	Troops        [TroopSlots]Troop
}

// Character is the 32 byte character record
type Character struct {
	Property      uint8
	Avatar        uint8
	Name          Name
	Alias         Name
	SiegeAbility  uint8
	FieldAbility  uint8
	NavalAbility  uint8
	BattleAbility uint8
	Command       uint8
	Politics      uint8
	_             [3]byte
	Status        uint8
	MonthsToBoard uint8
	ForceNext     uint8
	_             [2]byte
	ForceCapture  uint8
	ForceOrigin   uint8
	_             [2]byte
}

// GameData is the 128 byte global state record at the start of each block
type GameData struct {
	_                [3]byte
	Day              uint8
	Month            uint8
	_                uint8
	Year             uint16
	_                [7]byte
	Force            uint8
	Trust            uint8
	Number           uint8
	_                [6]byte
	CurTaxRate       uint16
	CurConscription  [3]uint16 // cavalry, infantry, archer
	NextTaxRate      uint16
	NextConscription [3]uint16
	_                [18]byte
	TotalForces      uint8
	_                [5]byte
	Name             [GameDataNameSize]byte
	_                [32]byte
}

// Friendship is one row of the force-to-force friendship matrix
type Friendship [FriendshipSize]uint8

// Scenario is one complete 22208 byte block
type Scenario struct {
	GameData   GameData
	Forces     [ForceSlots]Force
	Friendship [ForceSlots]Friendship
	Cities     [CitySlots]City
	_          [cityReserved]byte
	Legions    [LegionSlots]Legion
	Characters [CharacterSlots]Character
	_          [trailerReserved]byte
}

// Uint24 assembles three little-endian bytes, low byte first.
func Uint24(b [3]byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
