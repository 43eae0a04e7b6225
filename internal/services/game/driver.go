package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/connectn-go/internal/dependencies/clock"
	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/player"
	"github.com/mcoot/connectn-go/internal/services/windetect"
)

// Seat is one participant at the table together with the strategy that moves for it
type Seat struct {
	Player   model.Player
	Strategy player.Strategy
}

// Listener receives events as a game progresses. It is called synchronously
// between turns and must not mutate the grid it is handed.
type Listener func(model.Event)

// Driver runs games to completion: it cycles through the seats, asks each
// strategy for a move and evaluates the grid after every move.
type Driver struct {
	clock  clock.Clock
	tracer trace.Tracer
	logger *slog.Logger
}

// NewDriver creates a new Driver
func NewDriver(clk clock.Clock, tracer trace.Tracer, logger *slog.Logger) *Driver {
	return &Driver{
		clock:  clk,
		tracer: tracer,
		logger: logger.With(slog.String("component", "game-driver")),
	}
}

// Play runs one game of preset between seats, in seat order, until a player
// wins or no Empty cell remains. The context is checked between turns.
func (d *Driver) Play(ctx context.Context, preset model.Preset, seats []Seat, listener Listener) (*model.GameResult, error) {
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	if err := validateSeats(seats); err != nil {
		return nil, err
	}

	grid, err := preset.NewGrid()
	if err != nil {
		return nil, err
	}

	gameID := model.GameID(uuid.NewString())
	logger := d.logger.With(slog.String("game_id", string(gameID)))

	ctx, span := d.tracer.Start(ctx, "game.play", trace.WithAttributes(
		attribute.String("game.id", string(gameID)),
		attribute.String("game.preset", preset.Name),
		attribute.Int("game.rows", preset.Rows),
		attribute.Int("game.columns", preset.Columns),
		attribute.Int("game.streak_to_win", preset.Rules.StreakToWin),
		attribute.Int("game.players", len(seats)),
	))
	defer span.End()

	players := make([]model.Player, len(seats))
	for i, seat := range seats {
		players[i] = seat.Player
	}

	result := &model.GameResult{
		ID:        gameID,
		Preset:    preset,
		Players:   players,
		Outcome:   model.Outcome{State: model.OutcomeInProgress},
		Grid:      grid,
		StartedAt: d.clock.Now(),
	}

	emit := func(eventType model.EventType, playerID model.PlayerID, payload any) {
		if listener == nil {
			return
		}
		listener(model.Event{
			Type:      eventType,
			Timestamp: d.clock.Now(),
			GameID:    gameID,
			PlayerID:  playerID,
			Grid:      grid,
			Payload:   payload,
		})
	}

	logger.Info("game started",
		slog.String("preset", preset.Name),
		slog.Int("rows", preset.Rows),
		slog.Int("columns", preset.Columns),
		slog.Int("streak_to_win", preset.Rules.StreakToWin),
		slog.Int("player_count", len(seats)),
	)
	emit(model.EventGameStarted, model.NoPlayer, model.GameStartedPayload{Preset: preset, Players: players})

	for turn := 0; !result.Outcome.IsOver(); turn++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Game cancelled")
			logger.Warn("game cancelled", slog.Int("turn", turn))
			return nil, fmt.Errorf("game %s cancelled before turn %d: %w", gameID, turn, err)
		}

		seat := seats[turn%len(seats)]
		move, moved, err := d.playTurn(ctx, grid, seat, turn)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Turn failed")
			logger.Error("turn failed",
				slog.Int("turn", turn),
				slog.String("player_id", seat.Player.ID.String()),
				slog.String("error", err.Error()),
			)
			return nil, err
		}

		if !moved {
			// Nothing left to claim
			result.Outcome = model.Outcome{State: model.OutcomeDraw}
			break
		}

		result.Moves = append(result.Moves, move)
		logger.Debug("move played",
			slog.Int("turn", turn),
			slog.String("player_id", move.PlayerID.String()),
			slog.Int("row", move.Position.Row),
			slog.Int("col", move.Position.Col),
		)
		emit(model.EventMovePlayed, move.PlayerID, model.MovePlayedPayload{Move: move})

		result.Outcome = windetect.Evaluate(grid, preset.Rules)
	}

	result.FinishedAt = d.clock.Now()
	span.SetAttributes(
		attribute.String("game.outcome", string(result.Outcome.State)),
		attribute.Int("game.moves", len(result.Moves)),
	)
	if result.Outcome.State == model.OutcomeWin {
		span.SetAttributes(attribute.Int("game.winner", int(result.Outcome.Winner)))
	}

	logger.Info("game complete",
		slog.String("outcome", string(result.Outcome.State)),
		slog.String("winner", result.Outcome.Winner.String()),
		slog.Int("moves", len(result.Moves)),
		slog.Duration("duration", d.clock.Since(result.StartedAt)),
	)
	emit(model.EventGameComplete, result.Outcome.Winner, model.GameCompletePayload{Outcome: result.Outcome})

	return result, nil
}

// playTurn asks one seat for its move and checks the strategy claimed exactly
// one previously Empty cell for its own player
func (d *Driver) playTurn(ctx context.Context, grid *model.Grid, seat Seat, turn int) (model.Move, bool, error) {
	playerID := seat.Player.ID
	ctx, span := d.tracer.Start(ctx, "game.turn", trace.WithAttributes(
		attribute.Int("turn.number", turn),
		attribute.Int("turn.player_id", int(playerID)),
		attribute.String("turn.strategy", seat.Player.Strategy),
	))
	defer span.End()

	emptyBefore := grid.EmptyCount()
	pos, moved, err := seat.Strategy.MakeMove(ctx, grid, playerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Strategy failed")
		return model.Move{}, false, fmt.Errorf("player %s (%s) on turn %d: %w", playerID, seat.Player.DisplayName, turn, err)
	}

	if !moved {
		if emptyBefore > 0 || grid.EmptyCount() != emptyBefore {
			err := fmt.Errorf("player %s passed with %d empty cells left: %w", playerID, emptyBefore, model.ErrStrategyViolation)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Strategy violation")
			return model.Move{}, false, err
		}
		return model.Move{}, false, nil
	}

	cell, err := grid.Cell(pos)
	if err != nil || grid.EmptyCount() != emptyBefore-1 || cell != model.Occupied(playerID) {
		err := fmt.Errorf("player %s reported %s on turn %d: %w", playerID, pos, turn, model.ErrStrategyViolation)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Strategy violation")
		return model.Move{}, false, err
	}

	span.SetAttributes(
		attribute.Int("turn.row", pos.Row),
		attribute.Int("turn.col", pos.Col),
	)
	return model.Move{Turn: turn, PlayerID: playerID, Position: pos}, true, nil
}

func validateSeats(seats []Seat) error {
	if len(seats) < 2 {
		return fmt.Errorf("got %d: %w", len(seats), model.ErrTooFewPlayers)
	}
	seen := make(map[model.PlayerID]struct{}, len(seats))
	for i, seat := range seats {
		if !seat.Player.ID.Valid() {
			return fmt.Errorf("seat %d: %w", i, model.ErrInvalidPlayer)
		}
		if seat.Strategy == nil {
			return fmt.Errorf("seat %d has no strategy: %w", i, model.ErrUnknownStrategy)
		}
		if _, dup := seen[seat.Player.ID]; dup {
			return fmt.Errorf("player %s: %w", seat.Player.ID, model.ErrDuplicatePlayer)
		}
		seen[seat.Player.ID] = struct{}{}
	}
	return nil
}
