package player

import (
	"context"
	"fmt"

	"github.com/mcoot/connectn-go/internal/dependencies/random"
	"github.com/mcoot/connectn-go/internal/model"
)

// Strategy chooses one Empty cell and occupies it for the given player.
// It returns the position it took, or moved=false when no Empty cell remains.
// A strategy must make exactly one successful SetCell call when moved is true.
type Strategy interface {
	MakeMove(ctx context.Context, grid *model.Grid, player model.PlayerID) (model.Position, bool, error)
}

// Dependencies are the collaborators a strategy may need when constructed by name
type Dependencies struct {
	Random   random.Random
	Rules    model.Rules
	Terminal *Terminal
}

// New builds the strategy registered under name
func New(name string, deps Dependencies) (Strategy, error) {
	switch name {
	case model.StrategyHuman:
		if deps.Terminal == nil {
			return nil, fmt.Errorf("%s strategy needs a terminal: %w", name, model.ErrUnknownStrategy)
		}
		return NewHumanStrategy(deps.Terminal), nil
	case model.StrategyFirstEmpty:
		return NewFirstEmptyStrategy(), nil
	case model.StrategyRandom:
		return NewRandomStrategy(deps.Random), nil
	case model.StrategyBlocking:
		return NewBlockingStrategy(deps.Rules, deps.Random), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, model.ErrUnknownStrategy)
	}
}

// claim occupies pos and reports whether the grid accepted it
func claim(grid *model.Grid, pos model.Position, player model.PlayerID) (model.Position, bool, error) {
	ok, err := grid.SetCell(pos, player)
	if err != nil {
		return model.Position{}, false, err
	}
	if !ok {
		return model.Position{}, false, fmt.Errorf("cell %s already occupied: %w", pos, model.ErrStrategyViolation)
	}
	return pos, true, nil
}
