package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/services/game"
	"github.com/mcoot/connectn-go/internal/services/player"
)

func newPlayCmd() *cobra.Command {
	var (
		presetName    string
		rows          int
		cols          int
		streak        int
		bothDiagonals bool
		strategies    []string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game between the given players, in the order given.

Each --player flag adds a seat with one of the strategies listed by
"connectn strategies". Human seats share the keyboard and enter moves as
"row column", numbered from 0.

--rows, --cols, --streak and --both-diagonals override the chosen preset.`,
		Example: `  connectn play
  connectn play --preset connect4 --player human --player human
  connectn play --rows 5 --cols 5 --streak 4 --player random --player blocking`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			p, err := app.PresetService.Get(ctx, presetName)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("rows") {
				p.Rows = rows
			}
			if flags.Changed("cols") {
				p.Columns = cols
			}
			if flags.Changed("streak") {
				p.Rules.StreakToWin = streak
			}
			if flags.Changed("both-diagonals") {
				p.Rules.CountBothDiagonals = bothDiagonals
			}
			if err := p.Validate(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			// Prompts stay off stdout when it carries JSON
			screen := cmd.OutOrStdout()
			if out.IsJSON() {
				screen = cmd.ErrOrStderr()
			}
			terminal := player.NewTerminal(cmd.InOrStdin(), screen)

			seats, err := buildSeats(strategies, player.Dependencies{
				Random:   app.Random,
				Rules:    p.Rules,
				Terminal: terminal,
			})
			if err != nil {
				return err
			}

			if slices.Contains(strategies, model.StrategyHuman) {
				printInstructions(screen, p)
			}

			var listener game.Listener
			if !out.IsJSON() {
				listener = screenListener(screen)
			}

			result, err := app.Driver.Play(ctx, p, seats, listener)
			if err != nil {
				return err
			}

			out.Print(NewGameReport(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", cfg.Preset, "Rule preset (env: CONNECTN_PRESET)")
	cmd.Flags().IntVar(&rows, "rows", 0, "Number of rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "Number of columns")
	cmd.Flags().IntVar(&streak, "streak", 0, "Streak length needed to win")
	cmd.Flags().BoolVar(&bothDiagonals, "both-diagonals", false, "Count ascending diagonals as well as descending ones")
	cmd.Flags().StringArrayVar(&strategies, "player", []string{model.StrategyHuman, model.StrategyBlocking}, "Player strategy, repeat once per seat")

	return cmd
}

// buildSeats numbers players from 1 in the order their strategies were given
func buildSeats(strategies []string, deps player.Dependencies) ([]game.Seat, error) {
	seats := make([]game.Seat, 0, len(strategies))
	for i, name := range strategies {
		strategy, err := player.New(name, deps)
		if err != nil {
			return nil, err
		}
		id := model.PlayerID(i + 1)
		seats = append(seats, game.Seat{
			Player: model.Player{
				ID:          id,
				DisplayName: "Player " + id.String(),
				Strategy:    name,
			},
			Strategy: strategy,
		})
	}
	return seats, nil
}

func printInstructions(w io.Writer, p model.Preset) {
	fmt.Fprintf(w, "This is a game of %d in a row on a %dx%d grid (preset %q).\n", p.Rules.StreakToWin, p.Rows, p.Columns, p.Name)
	fmt.Fprintln(w, "If you are asked for input, enter it in the form 'row column'.")
	fmt.Fprintln(w, "Row and column numbering starts at 0.")
	fmt.Fprintln(w, "Example: to set the cell at row 0 and column 2, enter '0 2'.")
}

// screenListener shows the grid before the first move and after every move
func screenListener(w io.Writer) game.Listener {
	return func(e model.Event) {
		switch e.Type {
		case model.EventGameStarted:
			printGrid(w, "Current state:", e.Grid)
		case model.EventMovePlayed:
			payload, ok := e.Payload.(model.MovePlayedPayload)
			if !ok {
				return
			}
			printGrid(w, fmt.Sprintf("Player %s took %s:", e.PlayerID, payload.Move.Position), e.Grid)
		}
	}
}
