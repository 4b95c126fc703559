package domain

import (
	"log/slog"
	"strings"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

const codeFence = "```"

// docCodeExtractor gathers the code blocks found in documentation lines
// and looks for getters in them.
//
// The lines of a block are re-assembled so that line k of the snippet is
// k lines below the opening fence, hidden lines included.
type docCodeExtractor struct {
	renamer *getterRenamer
	c       *Collection

	inBlock   bool
	renamable bool
	fenceLine int
	code      strings.Builder
	codeLines int
}

func newDocCodeExtractor(renamer *getterRenamer, c *Collection) *docCodeExtractor {
	return &docCodeExtractor{renamer: renamer, c: c}
}

// isRenamableTag reports whether a code block with the given fence tag
// holds Rust code which is compiled by rustdoc.
func isRenamableTag(tag string) bool {
	return tag == "" || strings.HasSuffix(tag, "rust")
}

// isHiddenLine reports whether rustdoc hides the line from the rendered
// documentation.
func isHiddenLine(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ")
}

func (d *docCodeExtractor) process(doc syntax.DocLine) {
	line := strings.TrimSpace(doc.Text)

	if tag, ok := strings.CutPrefix(line, codeFence); ok {
		if !d.inBlock {
			d.inBlock = true
			d.renamable = isRenamableTag(strings.TrimSpace(strings.TrimLeft(tag, "`")))
			d.fenceLine = doc.Line
		} else {
			if d.renamable {
				d.collect()
			}

			d.inBlock = false
			d.renamable = false
			d.code.Reset()
			d.codeLines = 0
		}

		return
	}

	if !d.renamable || isHiddenLine(line) {
		return
	}

	for d.codeLines < doc.Line-d.fenceLine-1 {
		d.code.WriteByte('\n')
		d.codeLines++
	}

	d.code.WriteString(line)
	d.code.WriteByte('\n')
	d.codeLines++
}

func (d *docCodeExtractor) collect() {
	tokens, err := syntax.Lex([]byte(d.code.String()))
	if err != nil {
		logf(slog.LevelWarn, "skipping documentation code",
			"path", d.c.Path(), "line", d.fenceLine, "error", err)

		return
	}

	matchTokens(d.renamer, d.c.Relocate(d.fenceLine), m.Scope{Kind: m.ScopeDocumentation}, tokens)
}
