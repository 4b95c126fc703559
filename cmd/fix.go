package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fixgetters.dev/pkg/fixgetters/internal/domain"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

const defaultInputPath = "."

// parsePaths returns the input and the optional output of a fix command.
func parsePaths(args []string) (m.Path, m.Path) {
	input := m.Path(defaultInputPath)
	output := m.Path("")

	if len(args) > 0 {
		input = m.Path(args[0])
	}

	if len(args) > 1 {
		output = m.Path(args[1])
	}

	return input, output
}

func identificationMode() m.IdentificationMode {
	if viper.GetBool(conservativeConfigKey) {
		return m.Conservative
	}

	return m.AllGetFunctions
}

// docAliasMode reads --no-doc-aliases when cmd defines it, the configuration otherwise.
func docAliasMode(cmd *cobra.Command) m.DocAliasMode {
	flag := cmd.Flags().Lookup(noDocAliasesFlagName)
	if flag != nil && flag.Changed {
		if noAliases, err := cmd.Flags().GetBool(noDocAliasesFlagName); err == nil && noAliases {
			return m.DocAliasDiscard
		}

		return m.DocAliasGenerate
	}

	if viper.GetBool(docAliasesConfigKey) {
		return m.DocAliasGenerate
	}

	return m.DocAliasDiscard
}

func newFixArgs(cmd *cobra.Command, tool m.Tool, args []string, dryRun bool) (domain.FixArgs, error) {
	threads := viper.GetInt(runParallelConfigKey)
	if threads < 0 {
		return domain.FixArgs{}, fmt.Errorf("invalid --%s %d: must not be negative", parallelFlagName, threads)
	}

	input, output := parsePaths(args)

	return domain.FixArgs{
		Path:     input,
		Output:   output,
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Tool:     tool,
		Mode:     identificationMode(),
		DocAlias: docAliasMode(cmd),
		Threads:  uint(threads),
		DryRun:   dryRun,
		Report:   m.Path(viper.GetString(reportConfigKey)),
	}, nil
}

// runFix fixes the getters with tool and displays the outcome. A dry run
// prints the diffs before the summary.
func runFix(cmd *cobra.Command, tool m.Tool, args []string, dryRun bool) error {
	fixArgs, err := newFixArgs(cmd, tool, args, dryRun)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	summary, err := workflow.Fix(ctx, fixArgs)
	if dryRun {
		ui.DisplayDiffs(ctx, summary)
	}

	return ui.DisplaySummary(ctx, summary, err)
}
