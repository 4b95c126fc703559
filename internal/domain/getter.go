package domain

import (
	"fixgetters.dev/pkg/fixgetters/internal/domain/rules"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

// newCandidate returns a Candidate for an identifier with the getter prefix.
func newCandidate(c *Collection, tok syntax.Token, returnsBool m.ReturnsBool, isMethod bool) (m.Candidate, bool) {
	suffix, ok := rules.Suffix(tok.Text)
	if !ok {
		return m.Candidate{}, false
	}

	line, column := c.position(tok)

	return m.Candidate{
		Name:        tok.Text,
		Suffix:      suffix,
		Line:        line,
		Column:      column,
		ReturnsBool: returnsBool,
		IsMethod:    isMethod,
	}, true
}

// shapeReason is the disqualification policy shared by the token stream
// matchers. Callers only apply it to candidates which aren't known to
// return a bool.
func shapeReason(cand m.Candidate) (m.NonGetterReason, bool) {
	switch {
	case cand.HasNoArgs:
		return m.NoArgs, true
	case !cand.IsMethod:
		return m.NotAMethod, true
	case cand.HasGenericParams:
		return m.GenericTypeParam, true
	case cand.HasMultipleArgs:
		return m.MultipleArgs, true
	default:
		return 0, false
	}
}

// getterRenamer applies the rules to candidates and records the confirmed
// renames. It is shared by the visitor and the token stream matchers
// working on one file.
type getterRenamer struct {
	mode m.IdentificationMode
	// err is the first error reported by a collection.
	err error
}

// newName applies the rules, logging refused names.
func (g *getterRenamer) newName(c *Collection, scope m.Scope, cand m.Candidate) (m.NewName, bool) {
	newName, err := rules.RenameSuffix(cand.Suffix, cand.ReturnsBool)
	if err != nil {
		logRenameError(c, scope, cand.Name, cand.Line, err)
		return m.NewName{}, false
	}

	return newName, true
}

// mustCheckShape reports whether the shape of a getter must be checked
// before renaming it.
func (g *getterRenamer) mustCheckShape(newName m.NewName) bool {
	return g.mode.IsConservative() && !newName.ReturnsBool.IsTrue()
}

// skip logs a disqualified candidate.
func (g *getterRenamer) skip(c *Collection, scope m.Scope, cand m.Candidate, reason m.NonGetterReason) {
	logNonGetter(c, scope, cand.Name, cand.Line, reason)
}

// add records a confirmed rename.
func (g *getterRenamer) add(c *Collection, scope m.Scope, cand m.Candidate, newName m.NewName, needsAlias bool) {
	r := m.Rename{
		Name:          cand.Name,
		NewName:       newName,
		Line:          cand.Line,
		Column:        cand.Column,
		Scope:         scope,
		IsMethod:      cand.IsMethod,
		NeedsDocAlias: needsAlias,
	}

	if err := c.Add(r); err != nil {
		if g.err == nil {
			g.err = err
		}

		return
	}

	logRename(c, r)
}

// process runs the whole policy for a token stream candidate.
func (g *getterRenamer) process(c *Collection, scope m.Scope, cand m.Candidate) {
	newName, ok := g.newName(c, scope, cand)
	if !ok {
		return
	}

	if g.mustCheckShape(newName) {
		if reason, disqualified := shapeReason(cand); disqualified {
			g.skip(c, scope, cand, reason)
			return
		}
	}

	g.add(c, scope, cand, newName, needsDocAlias(c, scope))
}

// needsDocAlias tells whether a definition renamed in scope keeps its
// former name as an alias. Call sites never need one.
func needsDocAlias(c *Collection, scope m.Scope) bool {
	if c.Tool() != m.ToolDefinitions {
		return false
	}

	needsAlias, decided := scope.NeedsDocAlias()
	if !decided {
		return true
	}

	return needsAlias
}
