package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventMovePlayed   EventType = "move_played"
	EventGameComplete EventType = "game_complete"
)

// Event is emitted by the turn driver as a game progresses
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // NoPlayer for game-level events
	Grid      *Grid    // Current grid; listeners must not mutate it
	Payload   any      // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Preset  Preset
	Players []Player
}

// MovePlayedPayload contains data for move played events
type MovePlayedPayload struct {
	Move Move
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Outcome Outcome
}
