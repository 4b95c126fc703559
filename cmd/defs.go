package cmd

import (
	"github.com/spf13/cobra"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

var defsDiffFlag bool
var noDocAliasesFlag bool

// defsCmd represents the defs command.
var defsCmd = newDefsCmd()

func newDefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "defs [PATH] [OUTPUT]",
		Short:        "Rename getter definitions",
		Long:         defsLongDescription,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, m.ToolDefinitions, args, defsDiffFlag)
		},
	}

	cmd.Flags().BoolVar(&defsDiffFlag, diffFlagName, false, "print a unified diff instead of writing the files")
	cmd.Flags().BoolVarP(&noDocAliasesFlag, noDocAliasesFlagName, "n", false, "don't add doc alias attributes to renamed definitions")

	return cmd
}

func init() {
	rootCmd.AddCommand(defsCmd)
}
