package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/connectn-go/internal/model"
)

// ErrMalformedMove is returned by ParseMove for input that is not "row column"
var ErrMalformedMove = errors.New("move must be two non-negative numbers: row column")

// HumanStrategy asks a person at the terminal for each move
type HumanStrategy struct {
	terminal *Terminal
}

// NewHumanStrategy creates a HumanStrategy reading from terminal
func NewHumanStrategy(terminal *Terminal) *HumanStrategy {
	return &HumanStrategy{terminal: terminal}
}

// MakeMove prompts until the player names an Empty in-bounds cell.
// Malformed, out-of-range and occupied answers are reported and asked again.
// A done context ends the wait for input.
func (s *HumanStrategy) MakeMove(ctx context.Context, grid *model.Grid, player model.PlayerID) (model.Position, bool, error) {
	if !grid.HasCellWithState(model.Empty) {
		return model.Position{}, false, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Position{}, false, err
		}

		s.terminal.Printf("Player %s, what is your turn? ", player)
		line, err := s.terminal.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return model.Position{}, false, model.ErrInputClosed
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Position{}, false, ctxErr
		}
		if err != nil {
			return model.Position{}, false, fmt.Errorf("reading move: %w", err)
		}
		if line == "" {
			continue
		}

		pos, err := ParseMove(line)
		if err != nil {
			s.terminal.Printf("Could not read %q: %v\n", line, err)
			continue
		}
		if !grid.InBounds(pos) {
			s.terminal.Printf("Cell %s is outside the %dx%d grid.\n", pos, grid.Rows(), grid.Columns())
			continue
		}

		ok, err := grid.SetCell(pos, player)
		if err != nil {
			return model.Position{}, false, err
		}
		if !ok {
			s.terminal.Printf("Cell %s is already taken, choose another.\n", pos)
			continue
		}
		return pos, true, nil
	}
}

// ParseMove reads "row column" with numbering from 0. Whitespace or a
// comma may separate the two numbers.
func ParseMove(line string) (model.Position, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return model.Position{}, ErrMalformedMove
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil || row < 0 {
		return model.Position{}, ErrMalformedMove
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil || col < 0 {
		return model.Position{}, ErrMalformedMove
	}
	return model.Position{Row: row, Col: col}, nil
}
