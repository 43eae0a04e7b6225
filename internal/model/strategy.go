package model

// Player strategy constants
const (
	StrategyHuman      = "human"
	StrategyFirstEmpty = "first-empty"
	StrategyRandom     = "random"
	StrategyBlocking   = "blocking"
)

// StrategyDisplayName returns a human-readable label for a strategy
func StrategyDisplayName(strategy string) string {
	switch strategy {
	case StrategyHuman:
		return "Human"
	case StrategyFirstEmpty:
		return "First Empty"
	case StrategyRandom:
		return "Random"
	case StrategyBlocking:
		return "Blocking"
	default:
		return strategy
	}
}

// ValidStrategies returns all valid strategy names
func ValidStrategies() []string {
	return []string{StrategyHuman, StrategyFirstEmpty, StrategyRandom, StrategyBlocking}
}

// IsAutomated returns true for strategies that never read input
func IsAutomated(strategy string) bool {
	return strategy != StrategyHuman
}
