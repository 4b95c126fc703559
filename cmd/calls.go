package cmd

import (
	"github.com/spf13/cobra"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

var callsDiffFlag bool

// callsCmd represents the calls command.
var callsCmd = newCallsCmd()

func newCallsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "calls [PATH] [OUTPUT]",
		Short:        "Rename getter calls",
		Long:         callsLongDescription,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, m.ToolCalls, args, callsDiffFlag)
		},
	}

	cmd.Flags().BoolVar(&callsDiffFlag, diffFlagName, false, "print a unified diff instead of writing the files")

	return cmd
}

func init() {
	rootCmd.AddCommand(callsCmd)
}
