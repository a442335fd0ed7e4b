package parser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dragon-editor/dragondata/internal/layout"
	"github.com/dragon-editor/dragondata/pkg/core"
)

// Parser provides pure []byte -> core graph conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// UnresolvedReferenceError reports a required reference whose index does not
// name a live entity. Kind and Slot identify the referring record.
type UnresolvedReferenceError struct {
	Kind  string
	Slot  int
	Field string
	Index int
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s[%d].%s: unresolved reference to slot %d", e.Kind, e.Slot, e.Field, e.Index)
}

// ParseScenarioBlock decodes one 22208 byte block and builds its scenario.
func (p *Parser) ParseScenarioBlock(slot int, block []byte) (*core.Scenario, error) {
	raw, err := layout.DecodeScenario(block, 0)
	if err != nil {
		return nil, err
	}
	return p.ParseScenario(slot, raw)
}

// ParseScenarioFile splits buf into its scenario blocks and builds every one.
// Any failure fails the whole file.
func (p *Parser) ParseScenarioFile(path string, buf []byte) (*core.ScenarioFile, error) {
	if len(buf) < layout.FileSize {
		return nil, &layout.StructuralDecodeError{Record: "file", Offset: 0, Need: layout.FileSize, Have: len(buf)}
	}
	if extra := len(buf) - layout.FileSize; extra > 0 {
		p.logger.Debug("Ignoring trailing bytes", "path", path, "bytes", extra)
	}

	scenarios := make([]*core.Scenario, 0, layout.ScenarioCount)
	for i := range layout.ScenarioCount {
		raw, err := layout.DecodeScenario(buf, layout.BlockOffset(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s, err := p.ParseScenario(i, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: scenario %d: %w", path, i, err)
		}
		scenarios = append(scenarios, s)
	}

	p.logger.Debug("Parsed scenario file", "path", path, "scenarios", len(scenarios))

	return &core.ScenarioFile{Path: path, Scenarios: scenarios}, nil
}

// ParseSavedScenarioFile is ParseScenarioFile plus the file's modification time.
func (p *Parser) ParseSavedScenarioFile(path string, buf []byte, modTime time.Time) (*core.SavedScenarioFile, error) {
	f, err := p.ParseScenarioFile(path, buf)
	if err != nil {
		return nil, err
	}
	return &core.SavedScenarioFile{ScenarioFile: *f, ModTime: modTime}, nil
}
