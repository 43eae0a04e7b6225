package model

// CellState is the occupancy of a single cell. The zero value is Empty.
type CellState struct {
	Player PlayerID
}

// Empty is the state of a cell nobody has claimed
var Empty = CellState{}

// Occupied returns the state of a cell held by the given player
func Occupied(player PlayerID) CellState {
	return CellState{Player: player}
}

// IsEmpty returns true if no player holds the cell
func (c CellState) IsEmpty() bool {
	return c.Player == NoPlayer
}

// Owner returns the player holding the cell, if any
func (c CellState) Owner() (PlayerID, bool) {
	return c.Player, !c.IsEmpty()
}

func (c CellState) String() string {
	if c.IsEmpty() {
		return "_"
	}
	return c.Player.String()
}
