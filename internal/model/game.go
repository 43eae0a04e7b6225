package model

import "time"

// GameID uniquely identifies a game
type GameID string

// OutcomeState is the phase a game is in after a move
type OutcomeState string

const (
	OutcomeInProgress OutcomeState = "in_progress"
	OutcomeWin        OutcomeState = "win"
	OutcomeDraw       OutcomeState = "draw"
)

// Outcome is the result of evaluating a grid against the rules
type Outcome struct {
	State  OutcomeState `json:"state"`
	Winner PlayerID     `json:"winner,omitempty"` // NoPlayer unless State is win
}

// IsOver returns true if the game has been won or drawn
func (o Outcome) IsOver() bool {
	return o.State != OutcomeInProgress
}

// Evaluation is an outcome seen from one player's side
type Evaluation string

const (
	EvaluationWin          Evaluation = "win"
	EvaluationLose         Evaluation = "lose"
	EvaluationDraw         Evaluation = "draw"
	EvaluationUndetermined Evaluation = "undetermined"
)

// Move records one successful cell claim
type Move struct {
	Turn     int      `json:"turn"` // 0-indexed
	PlayerID PlayerID `json:"player_id"`
	Position Position `json:"position"`
}

// GameResult is the record of a finished game, returned to the caller only
type GameResult struct {
	ID         GameID    `json:"id"`
	Preset     Preset    `json:"preset"`
	Players    []Player  `json:"players"`
	Outcome    Outcome   `json:"outcome"`
	Moves      []Move    `json:"moves"`
	Grid       *Grid     `json:"-"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// WinnerName returns the display name of the winner, or "" for a draw
func (r *GameResult) WinnerName() string {
	if r.Outcome.State != OutcomeWin {
		return ""
	}
	for _, p := range r.Players {
		if p.ID == r.Outcome.Winner {
			return p.DisplayName
		}
	}
	return r.Outcome.Winner.String()
}
