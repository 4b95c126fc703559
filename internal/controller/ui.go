// Package controller provides output adapters for displaying getter fixes.
package controller

import (
	"context"
	"os"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// UI defines the interface for displaying the outcome of a run.
// Implementations can use different output methods.
type UI interface {
	// DisplayRenames lists every rename, file by file.
	DisplayRenames(ctx context.Context, summary m.Summary)
	// DisplayDiffs prints the diffs computed by a dry run.
	DisplayDiffs(ctx context.Context, summary m.Summary)
	// DisplaySummary prints the number of renames per changed file.
	DisplaySummary(ctx context.Context, summary m.Summary, err error) error
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
