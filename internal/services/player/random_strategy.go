package player

import (
	"context"

	"github.com/mcoot/connectn-go/internal/dependencies/random"
	"github.com/mcoot/connectn-go/internal/model"
)

// RandomStrategy picks a uniformly random Empty cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// MakeMove occupies a random Empty cell
func (s *RandomStrategy) MakeMove(_ context.Context, grid *model.Grid, player model.PlayerID) (model.Position, bool, error) {
	pos, ok := s.pick(grid)
	if !ok {
		return model.Position{}, false, nil
	}
	return claim(grid, pos, player)
}

func (s *RandomStrategy) pick(grid *model.Grid) (model.Position, bool) {
	empty := grid.CellsWithState(model.Empty)
	if len(empty) == 0 {
		return model.Position{}, false
	}
	return empty[s.random.Intn(len(empty))], true
}
