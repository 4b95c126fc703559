package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

const toolFlagName = "tool"

var listToolFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list [PATH]",
		Short:        "List the getters which would be renamed",
		Long:         listLongDescription,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := parseTool(listToolFlag)
			if err != nil {
				return err
			}

			fixArgs, err := newFixArgs(cmd, tool, args, true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			summary, err := workflow.Fix(ctx, fixArgs)
			ui.DisplayRenames(ctx, summary)

			return ui.DisplaySummary(ctx, summary, err)
		},
	}

	cmd.Flags().StringVarP(&listToolFlag, toolFlagName, "t", m.ToolDefinitions.String(), "renames to list: definitions or calls")

	return cmd
}

func parseTool(value string) (m.Tool, error) {
	switch value {
	case m.ToolDefinitions.String(), "defs":
		return m.ToolDefinitions, nil
	case m.ToolCalls.String():
		return m.ToolCalls, nil
	}

	return m.ToolDefinitions, fmt.Errorf("unknown --%s %q: expected definitions or calls", toolFlagName, value)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
