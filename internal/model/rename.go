package model

import "fmt"

// Candidate is an identifier suspected of being a would-be getter.
type Candidate struct {
	Name   string
	Suffix string
	// Line is 1-based and absolute within the analyzed file.
	Line int
	// Column is the byte offset of Name in its line, -1 when unknown.
	Column           int
	ReturnsBool      ReturnsBool
	IsMethod         bool
	HasGenericParams bool
	HasMultipleArgs  bool
	HasNoArgs        bool
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s() @ %d", c.Name, c.Line)
}

// Rename is a confirmed getter rename awaiting textual application.
type Rename struct {
	Name    string
	NewName NewName
	Line    int
	// Column is the byte offset of Name in its line, -1 when unknown.
	Column int
	Scope  Scope
	// IsMethod tells a call site is a method call (`.name(`), not a path call.
	IsMethod bool
	// NeedsDocAlias is only meaningful for definitions.
	NeedsDocAlias bool
}

func (r Rename) String() string {
	alias := ""
	if r.NeedsDocAlias {
		alias = " needs doc alias"
	}

	return fmt.Sprintf("%s() %s() @ %d%s", r.Name, r.NewName, r.Line, alias)
}
