package model

import (
	"fmt"

	"github.com/mcoot/connectn-go/internal/validator"
)

// Rules parameterize win detection independently of grid occupancy
type Rules struct {
	// StreakToWin is the minimum run length that wins
	StreakToWin int `json:"streak_to_win" validate:"gt=0"`
	// CountBothDiagonals adds the ascending (↗) diagonals to the
	// descending (↘) ones that are always scanned
	CountBothDiagonals bool `json:"count_both_diagonals"`
}

// NewRules creates validated rules
func NewRules(streakToWin int, bothDiagonals bool) (Rules, error) {
	r := Rules{StreakToWin: streakToWin, CountBothDiagonals: bothDiagonals}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate checks the rules are usable for win detection
func (r Rules) Validate() error {
	if err := validator.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return nil
}
