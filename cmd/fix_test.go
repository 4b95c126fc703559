package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fixgetters.dev/pkg/fixgetters/internal/controller"
	"fixgetters.dev/pkg/fixgetters/internal/domain"
	domainmocks "fixgetters.dev/pkg/fixgetters/internal/domain/mocks"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// setupFixCmd returns a root command holding sub, with the workflow mocked
// and the UI printing uncolored into the returned buffer.
func setupFixCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	originalUI := ui
	workflow = mockWorkflow
	ui = controller.NewSimpleUI(cmd, false)

	t.Cleanup(func() {
		workflow = originalWorkflow
		ui = originalUI
	})

	return cmd, mockWorkflow, out
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantInput  m.Path
		wantOutput m.Path
	}{
		{"empty", []string{}, ".", ""},
		{"input", []string{"src"}, "src", ""},
		{"input and output", []string{"crate", "out"}, "crate", "out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, output := parsePaths(tt.args)
			assert.Equal(t, tt.wantInput, input)
			assert.Equal(t, tt.wantOutput, output)
		})
	}
}

func TestCallsCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, out := setupFixCmd(t, newCallsCmd())

	summary := m.Summary{
		Tool:  "calls",
		Mode:  "all-get-functions",
		Files: 2,
		Changed: []m.FileResult{
			{Path: "src/lib.rs", Renames: []m.RenameRecord{{Line: 3, Name: "get_name", NewName: "name"}}},
		},
	}

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return args.Path == m.Path(".") &&
			args.Output == "" &&
			args.Tool == m.ToolCalls &&
			args.Mode == m.AllGetFunctions &&
			args.Threads == 1 &&
			!args.DryRun &&
			args.Report == ""
	})).Return(summary, nil)

	cmd.SetArgs([]string{"calls"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Getter calls (all-get-functions): 1 renames in 1 of 2 files")
	assert.Contains(t, out.String(), "src/lib.rs")
	mockWorkflow.AssertExpectations(t)
}

func TestCallsCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := setupFixCmd(t, newCallsCmd())

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return args.Path == m.Path("crate") &&
			args.Output == m.Path("out") &&
			args.Mode == m.Conservative &&
			args.Threads == 4 &&
			args.Report == m.Path("renames.yaml") &&
			len(args.Exclude) == 2 &&
			args.Exclude[0] == "tests/**" &&
			args.Exclude[1] == "**/generated.rs"
	})).Return(m.Summary{}, nil)

	cmd.SetArgs([]string{
		"calls", "-c", "--parallel", "4", "--report", "renames.yaml",
		"-x", "tests/**", "-x", "**/generated.rs", "crate", "out",
	})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestCallsCmd_DiffPrintsDiffs(t *testing.T) {
	cmd, mockWorkflow, out := setupFixCmd(t, newCallsCmd())

	summary := m.Summary{
		Tool: "calls",
		Changed: []m.FileResult{
			{
				Path:    "src/lib.rs",
				Renames: []m.RenameRecord{{Line: 1, Name: "get_name", NewName: "name"}},
				Diff:    "--- a/src/lib.rs\n+++ b/src/lib.rs\n",
			},
		},
	}

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
		return args.DryRun
	})).Return(summary, nil)

	cmd.SetArgs([]string{"calls", "--diff"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "--- a/src/lib.rs")
	mockWorkflow.AssertExpectations(t)
}

func TestCallsCmd_TooManyArgs(t *testing.T) {
	cmd, _, _ := setupFixCmd(t, newCallsCmd())

	cmd.SetArgs([]string{"calls", "a", "b", "c"})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestCallsCmd_NegativeParallel(t *testing.T) {
	cmd, _, _ := setupFixCmd(t, newCallsCmd())

	cmd.SetArgs([]string{"calls", "--parallel", "-1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestDefsCmd_DocAliases(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want m.DocAliasMode
	}{
		{"default", []string{"defs"}, m.DocAliasGenerate},
		{"long flag", []string{"defs", "--no-doc-aliases"}, m.DocAliasDiscard},
		{"short flag", []string{"defs", "-n"}, m.DocAliasDiscard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := setupFixCmd(t, newDefsCmd())

			mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.FixArgs) bool {
				return args.Tool == m.ToolDefinitions && args.DocAlias == tt.want
			})).Return(m.Summary{Tool: "definitions"}, nil)

			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.NoError(t, err)

			mockWorkflow.AssertExpectations(t)
		})
	}
}

func TestDefsCmd_WorkflowError(t *testing.T) {
	cmd, mockWorkflow, out := setupFixCmd(t, newDefsCmd())

	failure := errors.New("failed to parse src/broken.rs: 3:1: unclosed delimiter")
	mockWorkflow.On("Fix", mock.Anything, mock.Anything).Return(m.Summary{Tool: "definitions", Files: 1}, failure)

	cmd.SetArgs([]string{"defs"})
	err := cmd.Execute()
	require.ErrorIs(t, err, failure)

	assert.Contains(t, out.String(), "errors: failed to parse src/broken.rs")
	mockWorkflow.AssertExpectations(t)
}

func TestDefsCmd_HelpNamesAliasScopes(t *testing.T) {
	cmd := newDefsCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "inherent impls, traits and macros")
	assert.Contains(t, out.String(), "Trait implementations never get one")
}
