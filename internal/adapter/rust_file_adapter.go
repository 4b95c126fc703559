package adapter

import (
	"fmt"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

// RustFileAdapter encapsulates Rust-specific parsing so the domain layer can
// focus on the renaming rules.
type RustFileAdapter interface {
	// Parse builds the syntax tree of the source file at path.
	Parse(path m.Path, src []byte) (*syntax.File, error)
}

// LocalRustFileAdapter provides a RustFileAdapter backed by the syntax package.
type LocalRustFileAdapter struct{}

// NewLocalRustFileAdapter constructs a LocalRustFileAdapter.
func NewLocalRustFileAdapter() *LocalRustFileAdapter {
	return &LocalRustFileAdapter{}
}

// Parse builds the syntax tree for the provided path/source pair.
func (a *LocalRustFileAdapter) Parse(path m.Path, src []byte) (*syntax.File, error) {
	file, err := syntax.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return file, nil
}
