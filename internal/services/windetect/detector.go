package windetect

import (
	"github.com/mcoot/connectn-go/internal/model"
)

// streak is the running (player, length) accumulator shared by every scan
type streak struct {
	player model.PlayerID
	length int
}

// observe folds the next cell of a line into the streak. An empty cell
// breaks the run; the next occupied cell starts a fresh one of length 1.
func (s *streak) observe(cell model.CellState) {
	owner, occupied := cell.Owner()
	switch {
	case !occupied:
		s.player, s.length = model.NoPlayer, 0
	case owner == s.player:
		s.length++
	default:
		s.player, s.length = owner, 1
	}
}

// scan is one family of parallel lines
type scan struct {
	starts []model.Position
	step   model.Direction
}

// CheckWinner returns the first player found holding an unbroken run of at
// least rules.StreakToWin cells. Rows are scanned first, then columns, then
// descending diagonals, then ascending ones when the rules count them.
// The grid is never modified.
func CheckWinner(grid *model.Grid, rules model.Rules) (model.PlayerID, bool) {
	for _, sc := range scans(grid, rules) {
		for _, start := range sc.starts {
			if winner, ok := checkLine(grid.Line(start, sc.step), rules.StreakToWin); ok {
				return winner, true
			}
		}
	}
	return model.NoPlayer, false
}

func checkLine(cells []model.CellState, streakToWin int) (model.PlayerID, bool) {
	var s streak
	for _, cell := range cells {
		s.observe(cell)
		if s.player.Valid() && s.length >= streakToWin {
			return s.player, true
		}
	}
	return model.NoPlayer, false
}

func scans(grid *model.Grid, rules model.Rules) []scan {
	rows, cols := grid.Rows(), grid.Columns()

	leftEdge := make([]model.Position, rows)
	for row := range rows {
		leftEdge[row] = model.Position{Row: row, Col: 0}
	}
	topEdge := make([]model.Position, cols)
	bottomEdge := make([]model.Position, cols)
	for col := range cols {
		topEdge[col] = model.Position{Row: 0, Col: col}
		bottomEdge[col] = model.Position{Row: rows - 1, Col: col}
	}

	result := []scan{
		{starts: leftEdge, step: model.East},
		{starts: topEdge, step: model.South},
		// (0, 0) is reached from both edges and scanned twice
		{starts: concat(topEdge, leftEdge), step: model.SouthEast},
	}
	if rules.CountBothDiagonals {
		// (rows-1, 0) is reached from both edges and scanned twice
		result = append(result, scan{starts: concat(leftEdge, bottomEdge), step: model.NorthEast})
	}
	return result
}

func concat(a, b []model.Position) []model.Position {
	result := make([]model.Position, 0, len(a)+len(b))
	result = append(result, a...)
	return append(result, b...)
}

// Evaluate reports a win, a draw once no empty cell remains, or that the
// game is still in progress
func Evaluate(grid *model.Grid, rules model.Rules) model.Outcome {
	if winner, ok := CheckWinner(grid, rules); ok {
		return model.Outcome{State: model.OutcomeWin, Winner: winner}
	}
	if !grid.HasCellWithState(model.Empty) {
		return model.Outcome{State: model.OutcomeDraw}
	}
	return model.Outcome{State: model.OutcomeInProgress}
}

// EvaluateFor reports the outcome from the given player's point of view
func EvaluateFor(grid *model.Grid, rules model.Rules, player model.PlayerID) model.Evaluation {
	outcome := Evaluate(grid, rules)
	switch outcome.State {
	case model.OutcomeWin:
		if outcome.Winner == player {
			return model.EvaluationWin
		}
		return model.EvaluationLose
	case model.OutcomeDraw:
		return model.EvaluationDraw
	default:
		return model.EvaluationUndetermined
	}
}
