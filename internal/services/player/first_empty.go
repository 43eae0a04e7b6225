package player

import (
	"context"

	"github.com/mcoot/connectn-go/internal/model"
)

// FirstEmptyStrategy takes the first Empty cell in row-major order
type FirstEmptyStrategy struct{}

// NewFirstEmptyStrategy creates a new FirstEmptyStrategy
func NewFirstEmptyStrategy() *FirstEmptyStrategy {
	return &FirstEmptyStrategy{}
}

// MakeMove occupies the top-left-most Empty cell
func (s *FirstEmptyStrategy) MakeMove(_ context.Context, grid *model.Grid, player model.PlayerID) (model.Position, bool, error) {
	empty := grid.CellsWithState(model.Empty)
	if len(empty) == 0 {
		return model.Position{}, false, nil
	}
	return claim(grid, empty[0], player)
}
