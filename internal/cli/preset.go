package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn-go/internal/model"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Rule preset commands",
	}

	cmd.AddCommand(newPresetListCmd())
	cmd.AddCommand(newPresetShowCmd())
	cmd.AddCommand(newPresetSaveCmd())
	cmd.AddCommand(newPresetDeleteCmd())

	return cmd
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.PresetService.List(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(entries)
			return nil
		},
	}
}

func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.PresetService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(p)
			return nil
		},
	}
}

func newPresetSaveCmd() *cobra.Command {
	var (
		rows          int
		cols          int
		streak        int
		bothDiagonals bool
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.Preset{
				Name:    args[0],
				Rows:    rows,
				Columns: cols,
				Rules: model.Rules{
					StreakToWin:        streak,
					CountBothDiagonals: bothDiagonals,
				},
			}
			if err := app.PresetService.Save(cmd.Context(), p); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Saved preset %s", p.Name))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "Number of rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "Number of columns")
	cmd.Flags().IntVar(&streak, "streak", 0, "Streak length needed to win")
	cmd.Flags().BoolVar(&bothDiagonals, "both-diagonals", false, "Count ascending diagonals as well as descending ones")
	_ = cmd.MarkFlagRequired("rows")
	_ = cmd.MarkFlagRequired("cols")
	_ = cmd.MarkFlagRequired("streak")

	return cmd
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.PresetService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted preset %s", args[0]))
			return nil
		},
	}
}
