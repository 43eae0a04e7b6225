package game_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mcoot/connectn-go/internal/dependencies/mocks"
	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/game"
	"github.com/mcoot/connectn-go/internal/services/player"
	"github.com/mcoot/connectn-go/internal/testutil"
)

// strategyFunc adapts a function to player.Strategy
type strategyFunc func(ctx context.Context, grid *model.Grid, p model.PlayerID) (model.Position, bool, error)

func (f strategyFunc) MakeMove(ctx context.Context, grid *model.Grid, p model.PlayerID) (model.Position, bool, error) {
	return f(ctx, grid, p)
}

type DriverSuite struct {
	suite.Suite
	mockClock *mocks.MockClock
	recorder  *tracetest.SpanRecorder
	driver    *game.Driver
	events    []model.Event
	ctx       context.Context
}

func TestDriverSuite(t *testing.T) {
	suite.Run(t, new(DriverSuite))
}

func (s *DriverSuite) SetupTest() {
	s.mockClock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.mockClock.Step = time.Second
	s.recorder = tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.recorder))
	s.driver = game.NewDriver(s.mockClock, provider.Tracer("test"), testutil.NopLogger())
	s.events = nil
	s.ctx = context.Background()
}

func (s *DriverSuite) listen(e model.Event) {
	s.events = append(s.events, e)
}

func (s *DriverSuite) seat(id model.PlayerID, strategy player.Strategy) game.Seat {
	return game.Seat{
		Player:   model.Player{ID: id, DisplayName: "Player " + id.String(), Strategy: model.StrategyFirstEmpty},
		Strategy: strategy,
	}
}

func (s *DriverSuite) firstEmptySeats(n int) []game.Seat {
	seats := make([]game.Seat, n)
	for i := range n {
		seats[i] = s.seat(model.PlayerID(i+1), player.NewFirstEmptyStrategy())
	}
	return seats
}

func (s *DriverSuite) preset(rows, cols, streak int, both bool) model.Preset {
	return model.Preset{
		Name:    "test",
		Rows:    rows,
		Columns: cols,
		Rules:   model.Rules{StreakToWin: streak, CountBothDiagonals: both},
	}
}

func (s *DriverSuite) eventTypes() []model.EventType {
	types := make([]model.EventType, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}

// Game flow tests

func (s *DriverSuite) TestPlay_AscendingDiagonalWinWithBothDiagonals() {
	tictactoe, _ := model.BuiltinPreset(model.PresetTicTacToe)

	result, err := s.driver.Play(s.ctx, tictactoe, s.firstEmptySeats(2), s.listen)
	s.Require().NoError(err)

	s.Equal(model.Outcome{State: model.OutcomeWin, Winner: 1}, result.Outcome)
	s.Len(result.Moves, 7)
	s.Equal(model.Move{Turn: 6, PlayerID: 1, Position: model.Position{Row: 2, Col: 0}}, result.Moves[6])
	s.Equal("Player 1", result.WinnerName())
	s.NotEmpty(result.ID)
	s.Equal(tictactoe, result.Preset)
}

func (s *DriverSuite) TestPlay_DescendingOnlyWinsLater() {
	result, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, false), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	s.Equal(model.Outcome{State: model.OutcomeWin, Winner: 1}, result.Outcome)
	s.Len(result.Moves, 9)
	s.Equal(model.Position{Row: 2, Col: 2}, result.Moves[8].Position)
}

func (s *DriverSuite) TestPlay_Draw() {
	result, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), s.listen)
	s.Require().NoError(err)

	s.Equal(model.Outcome{State: model.OutcomeDraw}, result.Outcome)
	s.Len(result.Moves, 4)
	s.True(result.Grid.IsFull())
	s.Empty(result.WinnerName())
}

func (s *DriverSuite) TestPlay_CyclesThroughSeatsInOrder() {
	result, err := s.driver.Play(s.ctx, s.preset(2, 3, 5, false), s.firstEmptySeats(3), nil)
	s.Require().NoError(err)

	s.Require().Len(result.Moves, 6)
	for i, move := range result.Moves {
		s.Equal(i, move.Turn)
		s.Equal(model.PlayerID(i%3+1), move.PlayerID)
	}
}

func (s *DriverSuite) TestPlay_EmitsEventsInOrder() {
	_, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), s.listen)
	s.Require().NoError(err)

	s.Equal([]model.EventType{
		model.EventGameStarted,
		model.EventMovePlayed,
		model.EventMovePlayed,
		model.EventMovePlayed,
		model.EventMovePlayed,
		model.EventGameComplete,
	}, s.eventTypes())

	started, ok := s.events[0].Payload.(model.GameStartedPayload)
	s.Require().True(ok)
	s.Len(started.Players, 2)

	move, ok := s.events[1].Payload.(model.MovePlayedPayload)
	s.Require().True(ok)
	s.Equal(model.PlayerID(1), s.events[1].PlayerID)
	s.Equal(model.Position{Row: 0, Col: 0}, move.Move.Position)

	complete, ok := s.events[5].Payload.(model.GameCompletePayload)
	s.Require().True(ok)
	s.Equal(model.OutcomeDraw, complete.Outcome.State)

	for _, e := range s.events {
		s.Equal(s.events[0].GameID, e.GameID)
		s.NotNil(e.Grid)
	}
}

func (s *DriverSuite) TestPlay_UsesClockForTimestamps() {
	result, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	s.Equal(time.Date(2024, 1, 1, 12, 0, 1, 0, time.UTC), result.StartedAt)
	s.True(result.FinishedAt.After(result.StartedAt))
}

func (s *DriverSuite) TestPlay_EachGameGetsNewID() {
	first, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)
	second, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

// Validation tests

func (s *DriverSuite) TestPlay_RejectsTooFewSeats() {
	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), s.firstEmptySeats(1), nil)
	s.ErrorIs(err, model.ErrTooFewPlayers)
}

func (s *DriverSuite) TestPlay_RejectsDuplicatePlayer() {
	seats := []game.Seat{
		s.seat(1, player.NewFirstEmptyStrategy()),
		s.seat(1, player.NewFirstEmptyStrategy()),
	}
	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrDuplicatePlayer)
}

func (s *DriverSuite) TestPlay_RejectsNoPlayer() {
	seats := []game.Seat{
		s.seat(model.NoPlayer, player.NewFirstEmptyStrategy()),
		s.seat(2, player.NewFirstEmptyStrategy()),
	}
	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrInvalidPlayer)
}

func (s *DriverSuite) TestPlay_RejectsInvalidPreset() {
	_, err := s.driver.Play(s.ctx, s.preset(0, 3, 3, true), s.firstEmptySeats(2), nil)
	s.ErrorIs(err, model.ErrInvalidPreset)

	_, err = s.driver.Play(s.ctx, s.preset(3, 3, 0, true), s.firstEmptySeats(2), nil)
	s.ErrorIs(err, model.ErrInvalidPreset)
}

// Failure tests

func (s *DriverSuite) TestPlay_StrategyErrorAbortsGame() {
	boom := errors.New("boom")
	seats := []game.Seat{
		s.seat(1, player.NewFirstEmptyStrategy()),
		s.seat(2, strategyFunc(func(context.Context, *model.Grid, model.PlayerID) (model.Position, bool, error) {
			return model.Position{}, false, boom
		})),
	}

	result, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, boom)
	s.ErrorContains(err, "Player 2")
	s.Nil(result)
}

func (s *DriverSuite) TestPlay_InputClosedAbortsGame() {
	terminal := player.NewTerminal(strings.NewReader(""), io.Discard)
	seats := []game.Seat{
		s.seat(1, player.NewHumanStrategy(terminal)),
		s.seat(2, player.NewFirstEmptyStrategy()),
	}
	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrInputClosed)
}

func (s *DriverSuite) TestPlay_DetectsMoveForWrongPlayer() {
	cheat := strategyFunc(func(_ context.Context, grid *model.Grid, _ model.PlayerID) (model.Position, bool, error) {
		pos := grid.CellsWithState(model.Empty)[0]
		_, err := grid.SetCell(pos, 7)
		return pos, true, err
	})
	seats := []game.Seat{s.seat(1, cheat), s.seat(2, player.NewFirstEmptyStrategy())}

	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrStrategyViolation)
}

func (s *DriverSuite) TestPlay_DetectsClaimWithoutMove() {
	liar := strategyFunc(func(context.Context, *model.Grid, model.PlayerID) (model.Position, bool, error) {
		return model.Position{}, true, nil
	})
	seats := []game.Seat{s.seat(1, liar), s.seat(2, player.NewFirstEmptyStrategy())}

	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrStrategyViolation)
}

func (s *DriverSuite) TestPlay_DetectsPassWithEmptyCells() {
	passer := strategyFunc(func(context.Context, *model.Grid, model.PlayerID) (model.Position, bool, error) {
		return model.Position{}, false, nil
	})
	seats := []game.Seat{s.seat(1, passer), s.seat(2, player.NewFirstEmptyStrategy())}

	_, err := s.driver.Play(s.ctx, s.preset(3, 3, 3, true), seats, nil)
	s.ErrorIs(err, model.ErrStrategyViolation)
}

func (s *DriverSuite) TestPlay_StopsWhenContextCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	canceller := strategyFunc(func(ctx context.Context, grid *model.Grid, p model.PlayerID) (model.Position, bool, error) {
		cancel()
		return player.NewFirstEmptyStrategy().MakeMove(ctx, grid, p)
	})
	seats := []game.Seat{s.seat(1, canceller), s.seat(2, player.NewFirstEmptyStrategy())}

	_, err := s.driver.Play(ctx, s.preset(3, 3, 3, true), seats, s.listen)
	s.ErrorIs(err, context.Canceled)
	s.NotContains(s.eventTypes(), model.EventGameComplete)
}

func (s *DriverSuite) TestPlay_LogsCarryGameID() {
	logger, buf := testutil.CaptureLogger()
	driver := game.NewDriver(s.mockClock, noop.NewTracerProvider().Tracer("test"), logger)

	result, err := driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Len(lines, 6) // started, four moves, complete
	for _, line := range lines {
		var entry map[string]any
		s.Require().NoError(json.Unmarshal([]byte(line), &entry))
		s.Equal(string(result.ID), entry["game_id"])
		s.Equal("game-driver", entry["component"])
	}
}

func (s *DriverSuite) TestPlay_LogsGameDurationFromClock() {
	logger, buf := testutil.CaptureLogger()
	driver := game.NewDriver(s.mockClock, noop.NewTracerProvider().Tracer("test"), logger)

	result, err := driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	s.Require().NoError(json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	s.Equal("game complete", entry["msg"])

	elapsed := result.FinishedAt.Sub(result.StartedAt)
	s.Positive(elapsed)
	s.InDelta(float64(elapsed), entry["duration"], 0)
}

// Tracing tests

func (s *DriverSuite) TestPlay_RecordsTurnSpansUnderGameSpan() {
	_, err := s.driver.Play(s.ctx, s.preset(2, 2, 3, true), s.firstEmptySeats(2), nil)
	s.Require().NoError(err)

	spans := s.recorder.Ended()
	var play sdktrace.ReadOnlySpan
	var turns []sdktrace.ReadOnlySpan
	for _, span := range spans {
		switch span.Name() {
		case "game.play":
			play = span
		case "game.turn":
			turns = append(turns, span)
		}
	}
	s.Require().NotNil(play)
	s.Len(turns, 4)
	for _, turn := range turns {
		s.Equal(play.SpanContext().SpanID(), turn.Parent().SpanID())
	}
}
