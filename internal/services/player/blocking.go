package player

import (
	"context"
	"slices"

	"github.com/mcoot/connectn-go/internal/dependencies/random"
	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/windetect"
)

// BlockingStrategy completes its own streak when it can, otherwise blocks the
// first opponent that would win on its next move, otherwise plays randomly.
// Opponents are the players already present on the grid.
type BlockingStrategy struct {
	rules    model.Rules
	fallback *RandomStrategy
}

// NewBlockingStrategy creates a BlockingStrategy that looks ahead under rules
func NewBlockingStrategy(rules model.Rules, rnd random.Random) *BlockingStrategy {
	return &BlockingStrategy{
		rules:    rules,
		fallback: NewRandomStrategy(rnd),
	}
}

// MakeMove plays a winning cell, then a blocking cell, then a random one
func (s *BlockingStrategy) MakeMove(ctx context.Context, grid *model.Grid, player model.PlayerID) (model.Position, bool, error) {
	empty := grid.CellsWithState(model.Empty)
	if len(empty) == 0 {
		return model.Position{}, false, nil
	}

	if pos, ok := s.winningCell(grid, empty, player); ok {
		return claim(grid, pos, player)
	}

	for _, opponent := range opponents(grid, player) {
		if pos, ok := s.winningCell(grid, empty, opponent); ok {
			return claim(grid, pos, player)
		}
	}

	return s.fallback.MakeMove(ctx, grid, player)
}

// winningCell finds the first Empty cell that would give who a win
func (s *BlockingStrategy) winningCell(grid *model.Grid, empty []model.Position, who model.PlayerID) (model.Position, bool) {
	for _, pos := range empty {
		trial := grid.Clone()
		if ok, err := trial.SetCell(pos, who); err != nil || !ok {
			continue
		}
		if winner, ok := windetect.CheckWinner(trial, s.rules); ok && winner == who {
			return pos, true
		}
	}
	return model.Position{}, false
}

// opponents lists the other players on the grid in ascending id order
func opponents(grid *model.Grid, player model.PlayerID) []model.PlayerID {
	seen := make(map[model.PlayerID]struct{})
	var ids []model.PlayerID
	for row := range grid.Rows() {
		for col := range grid.Columns() {
			cell, err := grid.Cell(model.Position{Row: row, Col: col})
			if err != nil {
				continue
			}
			owner, ok := cell.Owner()
			if !ok || owner == player {
				continue
			}
			if _, dup := seen[owner]; !dup {
				seen[owner] = struct{}{}
				ids = append(ids, owner)
			}
		}
	}
	slices.Sort(ids)
	return ids
}
