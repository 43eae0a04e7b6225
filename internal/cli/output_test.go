package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/preset"
)

func finishedGame(t *testing.T) *model.GameResult {
	t.Helper()
	grid, err := model.NewGrid(1, 3)
	require.NoError(t, err)
	for col := range 3 {
		_, err := grid.SetCell(model.Position{Row: 0, Col: col}, 2)
		require.NoError(t, err)
	}
	return &model.GameResult{
		ID:      "g1",
		Players: []model.Player{{ID: 1, DisplayName: "Player 1"}, {ID: 2, DisplayName: "Player 2"}},
		Outcome: model.Outcome{State: model.OutcomeWin, Winner: 2},
		Moves:   make([]model.Move, 3),
		Grid:    grid,
	}
}

func TestOutputGameReportText(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(NewGameReport(finishedGame(t)))

	assert.Contains(t, buf.String(), "Final state:\n|2|2|2|\n")
	assert.Contains(t, buf.String(), "Congratulations, Player 2. You win!")
	assert.Contains(t, buf.String(), "Moves: 3")
}

func TestOutputGameReportJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).Print(NewGameReport(finishedGame(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "g1", decoded["id"])
	assert.Equal(t, []any{"|2|2|2|"}, decoded["grid"])
	assert.Equal(t, "Player 2", decoded["winner_name"])
}

func TestOutputPresetList(t *testing.T) {
	var buf bytes.Buffer
	entries := []preset.Entry{
		{Preset: model.Preset{Name: "classic", Rows: 10, Columns: 10, Rules: model.Rules{StreakToWin: 3}}, Builtin: true},
		{Preset: model.Preset{Name: "wide", Rows: 4, Columns: 12, Rules: model.Rules{StreakToWin: 4, CountBothDiagonals: true}}},
	}
	NewOutput("text", &buf).Print(entries)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "descending")
	assert.Contains(t, string(lines[1]), "built-in")
	assert.Contains(t, string(lines[2]), "4x12")
	assert.Contains(t, string(lines[2]), "saved")
}

func TestOutputMessage(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).PrintMessage("done")
	assert.JSONEq(t, `{"message":"done"}`, buf.String())

	buf.Reset()
	NewOutput("text", &buf).PrintMessage("done")
	assert.Equal(t, "done\n", buf.String())
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "error", "json")
	logger.Warn("hidden")
	logger.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = NewLogger(&buf, "unknown", "text")
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
