// Package layouttest builds synthetic scenario blocks and files for tests.
package layouttest

import (
	"encoding/binary"

	"github.com/dragon-editor/dragondata/internal/layout"
)

// Block is a scenario block under construction. A zero block is valid and empty.
type Block struct {
	buf []byte
}

// NewBlock returns an all-zero block
func NewBlock() *Block {
	return &Block{buf: make([]byte, layout.ScenarioSize)}
}

// Bytes returns the encoded block
func (b *Block) Bytes() []byte {
	return b.buf
}

func (b *Block) put(off int, v any) *Block {
	if _, err := binary.Encode(b.buf[off:], binary.LittleEndian, v); err != nil {
		panic(err)
	}
	return b
}

func (b *Block) GameData(g layout.GameData) *Block {
	return b.put(layout.GameDataOffset, &g)
}

func (b *Block) Force(slot int, f layout.Force) *Block {
	return b.put(layout.ForceOffset+slot*layout.ForceSize, &f)
}

func (b *Block) Friendship(a, c int, v uint8) *Block {
	b.buf[layout.FriendshipOffset+a*layout.FriendshipSize+c] = v
	return b
}

func (b *Block) City(slot int, c layout.City) *Block {
	return b.put(layout.CityOffset+slot*layout.CitySize, &c)
}

func (b *Block) Legion(slot int, l layout.Legion) *Block {
	return b.put(layout.LegionOffset+slot*layout.LegionSize, &l)
}

func (b *Block) Character(slot int, c layout.Character) *Block {
	return b.put(layout.CharacterOffset+slot*layout.CharacterSize, &c)
}

// Name pads s into a fixed-width name slot
func Name(s string) layout.Name {
	var n layout.Name
	copy(n[:], s)
	return n
}

// GameDataName pads s into the scenario name slot
func GameDataName(s string) [layout.GameDataNameSize]byte {
	var n [layout.GameDataNameSize]byte
	copy(n[:], s)
	return n
}

// Money splits a 24-bit value into its three stored bytes
func Money(v uint32) [3]byte {
	return [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// File concatenates blocks into a file buffer. Missing blocks are left zero.
func File(blocks ...*Block) []byte {
	buf := make([]byte, layout.FileSize)
	for i, b := range blocks {
		if i >= layout.ScenarioCount {
			break
		}
		copy(buf[layout.BlockOffset(i):], b.Bytes())
	}
	return buf
}

// Sample slots
const (
	SampleWarlord   = 1
	SampleLeader    = 2
	SampleCaptive   = 5
	SampleCapital   = 4
	SampleFrontier  = 7
	SampleForce     = 3
	SampleRival     = 8
	SampleLegion    = 0
	SampleMoney     = 197121
	SampleName      = "Rise of Heroes"
	SampleYear      = 190
	SampleCityCount = 2
)

// Sample returns a small populated block: two forces, three characters,
// two cities and one legion, with one unused city slot at (0,0).
func Sample() *Block {
	b := NewBlock()

	b.Character(SampleWarlord, layout.Character{Name: Name("Cao"), Alias: Name("Mengde"), Command: 90, Politics: 85})
	b.Character(SampleLeader, layout.Character{Name: Name("Xiahou"), Status: 1, ForceNext: SampleForce})
	b.Character(SampleCaptive, layout.Character{Name: Name("Lu"), Status: 4, ForceCapture: SampleForce, ForceOrigin: SampleRival})
	b.Character(9, layout.Character{Name: Name("Sun")})

	b.City(SampleCapital, layout.City{
		Force:        SampleForce,
		Name:         Name("Xuchan"),
		Axis:         layout.Axis{X: 10, Y: 12},
		Soldiers:     30,
		AffairsOwner: SampleLeader,
	})
	b.City(6, layout.City{Force: SampleForce, Name: Name("Ghost")})
	b.City(SampleFrontier, layout.City{Force: SampleRival, Name: Name("Puyang"), Axis: layout.Axis{X: 0, Y: 5}})

	b.Force(SampleForce, layout.Force{
		Status:     1,
		Warlord:    SampleWarlord,
		Advisor:    layout.NoAdvisor,
		Capital:    SampleCapital,
		Cavalries:  1000,
		MoneyBytes: Money(SampleMoney),
		CityCount:  SampleCityCount,
	})
	b.Force(SampleRival, layout.Force{
		Status:         2,
		Warlord:        9,
		Advisor:        SampleCaptive,
		Capital:        SampleFrontier,
		DiplomacyOwner: SampleCaptive,
	})
	b.Friendship(SampleForce, SampleRival, 40)

	b.Legion(SampleLegion, layout.Legion{
		State:         1,
		Force:         SampleForce,
		Leader:        SampleLeader,
		TotalSoldiers: 1500,
		Morale:        80,
		CurrentAxis:   layout.Axis{X: 11, Y: 12},
		TargetAxis:    layout.Axis{X: 0, Y: 5},
		TargetCity:    SampleFrontier,
		Troops:        [layout.TroopSlots]layout.Troop{{Count: 1000, Type: 2}, {Count: 500, Type: 0}},
	})

	b.GameData(layout.GameData{
		Day:         1,
		Month:       3,
		Year:        SampleYear,
		Force:       SampleForce,
		TotalForces: 2,
		Name:        GameDataName(SampleName),
	})

	return b
}
