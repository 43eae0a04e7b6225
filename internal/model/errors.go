package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrOutOfBounds       = errors.New("position is outside the grid")
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrInvalidPlayer     = errors.New("player id must be positive")

	// Rule errors
	ErrInvalidRules   = errors.New("invalid game rules")
	ErrInvalidPreset  = errors.New("invalid preset")
	ErrPresetNotFound = errors.New("preset not found")
	ErrPresetReserved = errors.New("preset name is reserved by a built-in preset")

	// Player errors
	ErrUnknownStrategy   = errors.New("unknown player strategy")
	ErrTooFewPlayers     = errors.New("at least two players are required")
	ErrDuplicatePlayer   = errors.New("player id is seated twice")
	ErrInputClosed       = errors.New("input closed before a move was made")
	ErrStrategyViolation = errors.New("strategy did not occupy exactly one empty cell")
)
