package domain

import (
	"errors"
	"fmt"
	"sort"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

// ErrDuplicateDefinition is returned when two getter definitions are found
// on the same line: the patcher can't tell which one to rename.
var ErrDuplicateDefinition = errors.New("more than one getter definition on the same line")

// DuplicateDefinitionError reports a getter definition line collision.
type DuplicateDefinitionError struct {
	Path   m.Path
	Line   int
	First  string
	Second string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s() and %s()", e.Path, e.Line, ErrDuplicateDefinition, e.First, e.Second)
}

// Is makes errors.Is(err, ErrDuplicateDefinition) succeed.
func (e *DuplicateDefinitionError) Is(target error) bool {
	return target == ErrDuplicateDefinition
}

type renameStore struct {
	path   m.Path
	tool   m.Tool
	byLine map[int][]m.Rename
	count  int
}

// Collection holds the renames found in one file, indexed by line.
//
// Views returned by Relocate share the same renames, so that getters found
// in a documentation snippet land in the file's collection.
type Collection struct {
	store *renameStore
	// offset is added to the lines of the tokens being analyzed.
	offset int
	// relocated tokens have no reliable column.
	relocated bool
	// noDocAlias is set while analyzing documentation code.
	noDocAlias bool
}

// NewCollection creates an empty Collection for the file at path.
func NewCollection(path m.Path, tool m.Tool) *Collection {
	return &Collection{
		store: &renameStore{
			path:   path,
			tool:   tool,
			byLine: make(map[int][]m.Rename),
		},
	}
}

// Path returns the path of the analyzed file.
func (c *Collection) Path() m.Path { return c.store.path }

// Tool returns which kind of renames the collection holds.
func (c *Collection) Tool() m.Tool { return c.store.tool }

// Offset returns the line offset of the view.
func (c *Collection) Offset() int { return c.offset }

// Relocate returns a view for a token stream whose line 1 is at line
// offset+1 in the file. Renames added through the view carry no column and
// never require a doc alias.
func (c *Collection) Relocate(offset int) *Collection {
	return &Collection{
		store:      c.store,
		offset:     c.offset + offset,
		relocated:  true,
		noDocAlias: true,
	}
}

// position converts a token position into a file position.
func (c *Collection) position(tok syntax.Token) (line, column int) {
	if c.relocated {
		return tok.Line + c.offset, -1
	}

	return tok.Line + c.offset, tok.Col
}

// Add records a rename.
//
// Definitions can't share a line: a second definition on an occupied line
// results in a *DuplicateDefinitionError.
func (c *Collection) Add(r m.Rename) error {
	if c.noDocAlias {
		r.NeedsDocAlias = false
	}

	if c.store.tool == m.ToolDefinitions {
		if existing, ok := c.store.byLine[r.Line]; ok && len(existing) > 0 {
			return &DuplicateDefinitionError{
				Path:   c.store.path,
				Line:   r.Line,
				First:  existing[0].Name,
				Second: r.Name,
			}
		}
	}

	c.store.byLine[r.Line] = append(c.store.byLine[r.Line], r)
	c.store.count++

	return nil
}

// Take removes and returns the renames for the given 1-based line,
// in discovery order.
func (c *Collection) Take(line int) []m.Rename {
	renames, ok := c.store.byLine[line]
	if !ok {
		return nil
	}

	delete(c.store.byLine, line)
	c.store.count -= len(renames)

	return renames
}

// IsEmpty reports whether no rename is pending.
func (c *Collection) IsEmpty() bool {
	return c.store.count == 0
}

// Len returns the number of pending renames.
func (c *Collection) Len() int {
	return c.store.count
}

// Renames returns the pending renames sorted by line, without removing them.
func (c *Collection) Renames() []m.Rename {
	lines := make([]int, 0, len(c.store.byLine))
	for line := range c.store.byLine {
		lines = append(lines, line)
	}

	sort.Ints(lines)

	renames := make([]m.Rename, 0, c.store.count)
	for _, line := range lines {
		renames = append(renames, c.store.byLine[line]...)
	}

	return renames
}
