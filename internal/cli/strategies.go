package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/connectn-go/internal/model"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List player strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := model.ValidStrategies()
			infos := make([]StrategyInfo, len(names))
			for i, name := range names {
				infos[i] = StrategyInfo{
					Name:        name,
					DisplayName: model.StrategyDisplayName(name),
					Automated:   model.IsAutomated(name),
				}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(infos)
			return nil
		},
	}
}
