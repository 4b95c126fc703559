package cmd

import (
	"github.com/spf13/cobra"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

const viewLongDescription = `View a report written with --report: the renames of each changed file
followed by the summary table.`

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "view REPORT",
		Short:        "View a previously written rename report",
		Long:         viewLongDescription,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := reportStore.LoadSummary(m.Path(args[0]))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ui.DisplayRenames(ctx, summary)

			return ui.DisplaySummary(ctx, summary, nil)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
