package model

import "strconv"

// PlayerID identifies a participant. Valid ids are positive; NoPlayer marks
// the absence of one.
type PlayerID uint32

// NoPlayer is the zero PlayerID and never occupies a cell
const NoPlayer PlayerID = 0

// Valid reports whether the id may occupy a cell
func (p PlayerID) Valid() bool {
	return p != NoPlayer
}

func (p PlayerID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// Player is a seated participant in a game
type Player struct {
	ID          PlayerID `json:"id"`
	DisplayName string   `json:"display_name"`
	Strategy    string   `json:"strategy"`
}
