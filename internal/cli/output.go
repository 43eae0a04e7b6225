package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/preset"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// IsJSON reports whether output is machine readable
func (o *Output) IsJSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.IsJSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameReport:
		o.printGameReport(v)
	case []preset.Entry:
		o.printPresetList(v)
	case model.Preset:
		o.printPreset(v)
	case []StrategyInfo:
		o.printStrategies(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameReport is a finished game together with its final grid
type GameReport struct {
	*model.GameResult
	Grid   []string `json:"grid"`
	Winner string   `json:"winner_name,omitempty"`
}

// NewGameReport renders result for output
func NewGameReport(result *model.GameResult) GameReport {
	report := GameReport{GameResult: result, Winner: result.WinnerName()}
	if result.Grid != nil {
		report.Grid = result.Grid.Render()
	}
	return report
}

// StrategyInfo describes a selectable player strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Automated   bool   `json:"automated"`
}

func (o *Output) printGameReport(r GameReport) {
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, "Final state:")
	for _, line := range r.Grid {
		fmt.Fprintln(o.w, line)
	}

	switch r.Outcome.State {
	case model.OutcomeWin:
		fmt.Fprintf(o.w, "Congratulations, %s. You win!\n", r.Winner)
	case model.OutcomeDraw:
		fmt.Fprintln(o.w, "No empty cell left. The game is a draw.")
	default:
		fmt.Fprintf(o.w, "Game ended: %s\n", r.Outcome.State)
	}
	fmt.Fprintf(o.w, "Moves: %d\n", len(r.Moves))
}

func (o *Output) printPresetList(entries []preset.Entry) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGRID\tSTREAK\tDIAGONALS\tSOURCE")
	for _, e := range entries {
		source := "saved"
		if e.Builtin {
			source = "built-in"
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\t%s\n", e.Name, e.Rows, e.Columns, e.Rules.StreakToWin, diagonals(e.Rules), source)
	}
	_ = tw.Flush()
}

func (o *Output) printPreset(p model.Preset) {
	fmt.Fprintf(o.w, "Preset: %s\n", p.Name)
	fmt.Fprintf(o.w, "Grid: %d rows x %d columns\n", p.Rows, p.Columns)
	fmt.Fprintf(o.w, "Streak to win: %d\n", p.Rules.StreakToWin)
	fmt.Fprintf(o.w, "Diagonals: %s\n", diagonals(p.Rules))
}

func (o *Output) printStrategies(strategies []StrategyInfo) {
	for _, s := range strategies {
		kind := "human"
		if s.Automated {
			kind = "bot"
		}
		fmt.Fprintf(o.w, "%-12s %-12s %s\n", s.Name, s.DisplayName, kind)
	}
}

func diagonals(r model.Rules) string {
	if r.CountBothDiagonals {
		return "both"
	}
	return "descending"
}

// printGrid writes the grid with a heading, one row per line
func printGrid(w io.Writer, heading string, grid *model.Grid) {
	fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Join(grid.Render(), "\n"))
}
