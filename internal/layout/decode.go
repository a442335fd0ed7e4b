package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrStructural is matched by every StructuralDecodeError
var ErrStructural = errors.New("structural decode error")

// StructuralDecodeError reports a buffer too short for the record requested at Offset.
type StructuralDecodeError struct {
	Record string
	Offset int
	Need   int
	Have   int
}

func (e *StructuralDecodeError) Error() string {
	return fmt.Sprintf("decode %s at offset %d: need %d bytes, have %d", e.Record, e.Offset, e.Need, e.Have)
}

func (e *StructuralDecodeError) Is(target error) bool {
	return target == ErrStructural
}

func decode[T any](record string, buf []byte, off int, v *T) error {
	size := binary.Size(v)
	if off < 0 || off > len(buf) {
		return &StructuralDecodeError{Record: record, Offset: off, Need: size}
	}
	if len(buf)-off < size {
		return &StructuralDecodeError{Record: record, Offset: off, Need: size, Have: len(buf) - off}
	}
	if _, err := binary.Decode(buf[off:off+size], binary.LittleEndian, v); err != nil {
		return fmt.Errorf("decode %s at offset %d: %w", record, off, err)
	}
	return nil
}

// DecodeForce reads one force record at off
func DecodeForce(buf []byte, off int) (*Force, error) {
	var f Force
	if err := decode("force", buf, off, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeCity reads one city record at off
func DecodeCity(buf []byte, off int) (*City, error) {
	var c City
	if err := decode("city", buf, off, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DecodeLegion reads one legion record at off
func DecodeLegion(buf []byte, off int) (*Legion, error) {
	var l Legion
	if err := decode("legion", buf, off, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DecodeCharacter reads one character record at off
func DecodeCharacter(buf []byte, off int) (*Character, error) {
	var c Character
	if err := decode("character", buf, off, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DecodeGameData reads the game data record at off
func DecodeGameData(buf []byte, off int) (*GameData, error) {
	var g GameData
	if err := decode("game data", buf, off, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DecodeScenario reads one complete scenario block starting at off.
func DecodeScenario(buf []byte, off int) (*Scenario, error) {
	var s Scenario
	if err := decode("scenario", buf, off, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// BlockOffset returns the file offset of scenario block i
func BlockOffset(i int) int {
	return i * ScenarioSize
}
