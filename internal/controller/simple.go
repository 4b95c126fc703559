package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	styles styles
}

type styles struct {
	title       lipgloss.Style
	path        lipgloss.Style
	substituted lipgloss.Style
	fixed       lipgloss.Style
}

func newStyles(colored bool) styles {
	if !colored {
		return styles{}
	}

	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		path:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		substituted: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		fixed:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// NewSimpleUI creates a new SimpleUI. Titles and rules are colored
// when colored is set.
func NewSimpleUI(cmd *cobra.Command, colored bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styles: newStyles(colored)}
}

// NewUI creates the UI for the command, colored on terminals.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return NewSimpleUI(cmd, isTTY)
}

// DisplayRenames prints a table of renames for each changed file.
func (s *SimpleUI) DisplayRenames(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, file := range summary.Changed {
		s.printf("\n%s\n", s.styles.path.Render(string(file.Path)))
		s.printf("%s", s.renderRenameTable(file))
	}
}

func (s *SimpleUI) renderRenameTable(file m.FileResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Getter", "New name", "Rule", "Scope"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, r := range file.Renames {
		name := r.Name
		if r.DocAlias {
			name += " (alias)"
		}

		table.Append([]string{fmt.Sprintf("%d", r.Line), name, r.NewName, s.renderRule(r.Rule), r.Scope})
	}

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) renderRule(rule string) string {
	switch rule {
	case m.RuleSubstituted.Label():
		return s.styles.substituted.Render(rule)
	case m.RuleFixed.Label():
		return s.styles.fixed.Render(rule)
	default:
		return rule
	}
}

// DisplayDiffs prints the diff of each changed file.
func (s *SimpleUI) DisplayDiffs(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, file := range summary.Changed {
		if file.Diff == "" {
			continue
		}

		s.printf("%s", file.Diff)
	}
}

// DisplaySummary prints the changed files and their rename counts, or the error.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	title := fmt.Sprintf("Getter %s (%s): %d renames in %d of %d files",
		summary.Tool, summary.Mode, summary.RenameCount(), len(summary.Changed), summary.Files)
	s.printf("\n%s\n", s.styles.title.Render(title))

	if len(summary.Changed) > 0 {
		s.printf("%s", renderSummaryTable(summary))
	}

	if err != nil {
		s.printf("errors: %v\n", err)
		return err
	}

	return nil
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Renames"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, file := range summary.Changed {
		path := file.Path
		if file.Output != "" {
			path = file.Output
		}

		table.Append([]string{string(path), fmt.Sprintf("%d", len(file.Renames))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(summary.Changed)),
		fmt.Sprintf("%d", summary.RenameCount()),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
