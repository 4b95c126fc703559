// Package cmd provides the root command and CLI setup for fixgetters.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fixgetters.dev/pkg/fixgetters/internal/adapter"
	"fixgetters.dev/pkg/fixgetters/internal/controller"
	"fixgetters.dev/pkg/fixgetters/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var rustFileAdapter adapter.RustFileAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters the traversed files.
var excludePatterns []string

var parallelFlag int
var conservativeFlag bool
var reportFlag string
var verboseFlag bool
var quietFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	rustFileAdapter = adapter.NewLocalRustFileAdapter()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, rustFileAdapter, reportStore)
}

const pathHelp = `PATH is a crate directory or a single Rust file (default: current directory).
When OUTPUT is given, the fixed files are written there, replicating the
tree of PATH, instead of overwriting the input. Both must exist.

Directories named .git, auto, ci, docs, gir, gir-files, sys and target
are skipped.`

const rootLongDescription = `fixgetters renames Rust getter functions to follow the API naming
guidelines: the get_ prefix is removed, except where the result would not
be a valid identifier, and functions returning a bool get an is_ prefix.

Use "defs" to rename the definitions and "calls" to rename the call sites.

` + pathHelp

const callsLongDescription = `Rename getter calls in the given crate or file.

` + pathHelp

const defsLongDescription = `Rename getter definitions in the given crate or file.

Definitions in inherent impls, traits and macros get a
#[doc(alias = "get_...")] attribute so the documentation can still be
searched with the former name. Trait implementations never get one.
Use --no-doc-aliases to skip them.

` + pathHelp

const listLongDescription = `List the renames that "calls" or "defs" would apply, without
writing any file.

` + pathHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixgetters",
		Short: "Rust getter renaming tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, logLevel(verboseFlag, quietFlag))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with its persistent flags, without
// subcommands.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude paths matching glob, relative to PATH (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of files processed in parallel (0: no limit)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), runParallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&conservativeFlag, conservativeFlagName, "c", viper.GetBool(conservativeConfigKey), "only rename methods taking no argument besides self, and bool getters")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(conservativeFlagName), conservativeConfigKey)

	cmd.PersistentFlags().StringVar(&reportFlag, reportFlagName, viper.GetString(reportConfigKey), "write a YAML report of the renames to this file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportFlagName), reportConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().BoolVarP(&quietFlag, quietFlagName, "q", false, "only log errors")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
