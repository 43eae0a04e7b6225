package model

import (
	"fmt"
	"sort"

	"github.com/mcoot/connectn-go/internal/validator"
)

// Built-in preset names
const (
	PresetTicTacToe = "tictactoe"
	PresetConnect4  = "connect4"
	PresetGomoku    = "gomoku"
	PresetClassic   = "classic"
)

// Preset bundles grid dimensions with the rules played on them
type Preset struct {
	Name    string `json:"name" validate:"required,max=32"`
	Rows    int    `json:"rows" validate:"gt=0,lte=1000"`
	Columns int    `json:"columns" validate:"gt=0,lte=1000"`
	Rules   Rules  `json:"rules"`
}

// Validate checks dimensions and rules
func (p Preset) Validate() error {
	if err := validator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return nil
}

// NewGrid allocates an empty grid with the preset's dimensions
func (p Preset) NewGrid() (*Grid, error) {
	return NewGrid(p.Rows, p.Columns)
}

var builtinPresets = map[string]Preset{
	PresetTicTacToe: {Name: PresetTicTacToe, Rows: 3, Columns: 3, Rules: Rules{StreakToWin: 3, CountBothDiagonals: true}},
	PresetConnect4:  {Name: PresetConnect4, Rows: 6, Columns: 7, Rules: Rules{StreakToWin: 4, CountBothDiagonals: true}},
	PresetGomoku:    {Name: PresetGomoku, Rows: 15, Columns: 15, Rules: Rules{StreakToWin: 5, CountBothDiagonals: true}},
	// Descending diagonals only
	PresetClassic: {Name: PresetClassic, Rows: 10, Columns: 10, Rules: Rules{StreakToWin: 3, CountBothDiagonals: false}},
}

// BuiltinPreset returns the built-in preset with the given name
func BuiltinPreset(name string) (Preset, bool) {
	p, ok := builtinPresets[name]
	return p, ok
}

// BuiltinPresets returns all built-in presets sorted by name
func BuiltinPresets() []Preset {
	result := make([]Preset, 0, len(builtinPresets))
	for _, p := range builtinPresets {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
