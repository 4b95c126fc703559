package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"fixgetters.dev/pkg/fixgetters/internal/adapter"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// FixArgs contains the arguments of a fix run.
type FixArgs struct {
	// Path is the crate directory or the single file to process.
	Path m.Path
	// Output replicates the tree of Path there instead of overwriting
	// the input files. Empty means in place.
	Output   m.Path
	Exclude  []string
	Tool     m.Tool
	Mode     m.IdentificationMode
	DocAlias m.DocAliasMode
	Threads  uint
	// DryRun computes the rewritten text and its diff without writing.
	DryRun bool
	// Report is where the YAML summary is saved. Empty disables it.
	Report m.Path
}

// Workflow runs the getter fixer over a crate.
type Workflow interface {
	Fix(ctx context.Context, args FixArgs) (m.Summary, error)
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.RustFileAdapter
	adapter.ReportStore
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	rustAdapter adapter.RustFileAdapter,
	reportStore adapter.ReportStore,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		RustFileAdapter: rustAdapter,
		ReportStore:     reportStore,
	}
}

// Fix analyzes every Rust source under args.Path and rewrites the files
// holding renames. Files are independent: each one gets its own Collection.
// A failing file doesn't stop the others; all failures are returned joined.
func (w *workflow) Fix(ctx context.Context, args FixArgs) (m.Summary, error) {
	summary := m.Summary{
		Tool: args.Tool.String(),
		Mode: args.Mode.String(),
	}

	base, err := w.baseDir(args)
	if err != nil {
		return summary, err
	}

	sources, err := w.Sources(args.Path, args.Exclude)
	if err != nil {
		return summary, fmt.Errorf("get sources: %w", err)
	}

	summary.Files = len(sources)
	slog.Info("Fixing getters", "path", args.Path, "tool", summary.Tool, "mode", summary.Mode, "files", len(sources))

	results, err := w.fixAll(ctx, args, base, sources)
	summary.Changed = results

	if args.Report != "" {
		if saveErr := w.SaveSummary(args.Report, summary); saveErr != nil {
			err = errors.Join(err, fmt.Errorf("save report: %w", saveErr))
		}
	}

	return summary, err
}

// baseDir returns the directory the output tree is relative to and
// checks that the output directory exists.
func (w *workflow) baseDir(args FixArgs) (m.Path, error) {
	info, err := w.FileInfo(args.Path)
	if err != nil {
		return "", fmt.Errorf("input %s: %w", args.Path, err)
	}

	if args.Output != "" {
		outInfo, err := w.FileInfo(args.Output)
		if err != nil {
			return "", fmt.Errorf("output %s: %w", args.Output, err)
		}

		if !outInfo.IsDir() {
			return "", fmt.Errorf("output %s is not a directory", args.Output)
		}
	}

	if info.IsDir() {
		return args.Path, nil
	}

	return m.Path(filepath.Dir(string(args.Path))), nil
}

func (w *workflow) fixAll(ctx context.Context, args FixArgs, base m.Path, sources []m.Path) ([]m.FileResult, error) {
	results := []m.FileResult{}
	errs := []error{}

	var (
		resultsMutex sync.Mutex
		errorsMutex  sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(int(args.Threads))
	}

	for _, source := range sources {
		currentSource := source

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, changed, err := w.fixFile(args, base, currentSource)
			if err != nil {
				slog.Error("Failed to fix file", "path", currentSource, "error", err)

				errorsMutex.Lock()

				errs = append(errs, err)

				errorsMutex.Unlock()

				return nil
			}

			if !changed {
				return nil
			}

			resultsMutex.Lock()

			results = append(results, result)

			resultsMutex.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return sortResults(results), err
	}

	return sortResults(results), errors.Join(errs...)
}

func sortResults(results []m.FileResult) []m.FileResult {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results
}

// fixFile reads, analyzes and patches one file. changed is false when the
// file holds no renames, in which case nothing is written.
func (w *workflow) fixFile(args FixArgs, base, path m.Path) (m.FileResult, bool, error) {
	src, err := w.ReadFile(path)
	if err != nil {
		return m.FileResult{}, false, err
	}

	file, err := w.Parse(path, src)
	if err != nil {
		return m.FileResult{}, false, err
	}

	collection, err := Analyze(path, file, args.Tool, args.Mode)
	if err != nil {
		return m.FileResult{}, false, err
	}

	patched, records, changed := Apply(src, collection, args.DocAlias)
	if !changed {
		slog.Debug("Nothing to fix", "path", path)
		return m.FileResult{}, false, nil
	}

	result := m.FileResult{Path: path, Renames: records}

	rel, err := w.RelPath(base, path)
	if err != nil {
		return m.FileResult{}, false, fmt.Errorf("relative path of %s: %w", path, err)
	}

	if args.DryRun {
		result.Diff, err = unifiedDiff(rel, src, patched)
		if err != nil {
			return m.FileResult{}, false, fmt.Errorf("diff %s: %w", path, err)
		}

		return result, true, nil
	}

	target := path

	if args.Output != "" {
		target = w.JoinPath(string(args.Output), string(rel))
		result.Output = target
	}

	info, err := w.FileInfo(path)
	if err != nil {
		return m.FileResult{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := w.WriteFile(target, patched, info.Mode().Perm()); err != nil {
		return m.FileResult{}, false, err
	}

	slog.Info("Fixed file", "path", path, "output", target, "renames", len(records))

	return result, true, nil
}

// unifiedDiff returns the diff of the file at rel, relative to the crate.
func unifiedDiff(rel m.Path, original, patched []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(patched)),
		FromFile: "a/" + filepath.ToSlash(string(rel)),
		ToFile:   "b/" + filepath.ToSlash(string(rel)),
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(diff)
}
