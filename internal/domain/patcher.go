package domain

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// Apply rewrites src with the renames of the collection, consuming them.
//
// It returns false when there is nothing to rename: src must be left
// untouched. Alias attributes are only written when docAlias allows it and
// the scope of the definition requires one.
func Apply(src []byte, c *Collection, docAlias m.DocAliasMode) ([]byte, []m.RenameRecord, bool) {
	if c.IsEmpty() {
		return nil, nil, false
	}

	var (
		out     bytes.Buffer
		records []m.RenameRecord
	)

	out.Grow(len(src) + 64)

	lines := splitLines(src)
	for idx, line := range lines {
		lineNb := idx + 1

		renames := c.Take(lineNb)
		if len(renames) == 0 {
			out.Write(line)
			out.WriteByte('\n')

			continue
		}

		patched, applied := patchLine(c.Path(), line, renames, c.Tool())

		for _, r := range applied {
			alias := c.Tool() == m.ToolDefinitions && docAlias.MustGenerate() && r.NeedsDocAlias
			if alias {
				out.WriteString(docAliasAttribute(r.Name))
			}

			records = append(records, m.NewRenameRecord(r, alias))
		}

		out.Write(patched)
		out.WriteByte('\n')
	}

	if !c.IsEmpty() {
		for _, r := range c.Renames() {
			logf(slog.LevelWarn, "rename beyond the end of file",
				"path", c.Path(), "line", r.Line, "name", r.Name)
		}
	}

	if len(records) == 0 {
		return nil, nil, false
	}

	return out.Bytes(), records, true
}

func docAliasAttribute(name string) string {
	return fmt.Sprintf("#[doc(alias = %q)] ", name)
}

// splitLines splits src on '\n'. A trailing newline doesn't start a new line.
func splitLines(src []byte) [][]byte {
	lines := bytes.Split(src, []byte{'\n'})
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines
}

type edit struct {
	start, end int
	text       string
}

// patchLine replaces the old names of renames in line. It returns the
// renames which could be located.
func patchLine(path m.Path, line []byte, renames []m.Rename, tool m.Tool) ([]byte, []m.Rename) {
	var (
		edits   []edit
		applied []m.Rename
	)

	claimed := func(start int) bool {
		for _, e := range edits {
			if e.start == start {
				return true
			}
		}

		return false
	}

	for _, r := range renames {
		start := r.Column
		if start < 0 || !isIdentAt(line, start, r.Name) || claimed(start) {
			// no reliable column for relocated tokens
			start = findOccurrence(line, r, tool, claimed)
		}

		if start < 0 {
			logf(slog.LevelWarn, "couldn't locate getter",
				"path", path, "line", r.Line, "name", r.Name, "new_name", r.NewName.Text)

			continue
		}

		edits = append(edits, edit{start: start, end: start + len(r.Name), text: r.NewName.Text})
		applied = append(applied, r)
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	patched := append([]byte(nil), line...)
	for _, e := range edits {
		patched = append(patched[:e.start], append([]byte(e.text), patched[e.end:]...)...)
	}

	return patched, applied
}

// findOccurrence returns the first unclaimed occurrence of the old name
// in the role of the rename: `.name` for a method call, `fn name` for a
// definition, `name` not preceded by `.` for another call.
func findOccurrence(line []byte, r m.Rename, tool m.Tool, claimed func(int) bool) int {
	from := 0

	for {
		idx := bytes.Index(line[from:], []byte(r.Name))
		if idx < 0 {
			return -1
		}

		start := from + idx
		from = start + len(r.Name)

		if !isIdentAt(line, start, r.Name) || claimed(start) {
			continue
		}

		before := bytes.TrimRight(line[:start], " \t")

		switch {
		case tool == m.ToolDefinitions:
			if start == len(before) || !bytes.HasSuffix(before, []byte("fn")) || !isIdentEnd(before, len(before)-2) {
				continue
			}
		case r.IsMethod:
			if !bytes.HasSuffix(before, []byte(".")) {
				continue
			}
		default:
			if bytes.HasSuffix(before, []byte(".")) {
				continue
			}
		}

		return start
	}
}

// isIdentAt reports whether the whole identifier name starts at start.
func isIdentAt(line []byte, start int, name string) bool {
	end := start + len(name)
	if start < 0 || end > len(line) || string(line[start:end]) != name {
		return false
	}

	if start > 0 && isIdentByte(line[start-1]) {
		return false
	}

	return end == len(line) || !isIdentByte(line[end])
}

// isIdentEnd reports whether the identifier ending at the end of b
// starts at start.
func isIdentEnd(b []byte, start int) bool {
	return start == 0 || !isIdentByte(b[start-1])
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
