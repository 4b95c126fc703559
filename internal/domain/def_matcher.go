package domain

import (
	"fixgetters.dev/pkg/fixgetters/internal/domain/rules"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

type defState int

const (
	defNone defState = iota
	// defFn follows the `fn` keyword.
	defFn
	defNamedFn
	defParamList
	defParamLifetime
	defArgList
	defArgRef
	defArgRefLifetime
	defArgSelf
	defRet
	defRetLifetime
)

// pending reports whether the state holds a candidate.
func (s defState) pending() bool {
	return s != defNone && s != defFn
}

// inArgs reports whether the state belongs to the argument list.
func (s defState) inArgs() bool {
	switch s {
	case defArgList, defArgRef, defArgRefLifetime, defArgSelf:
		return true
	default:
		return false
	}
}

// defMatcher finds getter definitions in a token stream which couldn't be
// parsed as items, typically a macro_rules! template where `$name:ty`
// stands where a type would be:
//
//	fn get_suffix(&self) -> $ty { ... }
//
// A `fn` keyword always restarts the matcher, so a flat stream with many
// definitions is handled without matching braces.
type defMatcher struct {
	renamer *getterRenamer
	c       *Collection
	scope   m.Scope
	state   defState
	cand    m.Candidate
	// depth is the group nesting level of the current token.
	depth int
	// fnDepth is the level of the `fn` keyword.
	fnDepth int
	// angles is the `<>` nesting level in the generic parameters.
	angles int
	prev   syntax.Token
}

func matchDefinitions(renamer *getterRenamer, c *Collection, scope m.Scope, tokens []syntax.Token) {
	dm := &defMatcher{renamer: renamer, c: c, scope: scope}
	dm.match(tokens)
}

func (dm *defMatcher) match(tokens []syntax.Token) {
	for _, tok := range tokens {
		switch tok.Kind {
		case syntax.Punct:
			dm.punct(tok)
		case syntax.Ident:
			dm.ident(tok)
		case syntax.Group:
			dm.group(tok)
		case syntax.Literal:
			dm.state = defNone
		}

		dm.prev = tok
	}
}

// argsDepth is the level of the tokens of the argument list.
func (dm *defMatcher) argsDepth() bool {
	return dm.depth == dm.fnDepth+1
}

func (dm *defMatcher) finalize() {
	if dm.state.pending() {
		dm.renamer.process(dm.c, dm.scope, dm.cand)
	}

	dm.state = defNone
}

// drop forgets the current candidate.
func (dm *defMatcher) drop() {
	dm.state = defNone
}

func (dm *defMatcher) punct(tok syntax.Token) {
	c := tok.Text[0]

	if c == ';' && dm.depth == dm.fnDepth {
		dm.finalize()
		return
	}

	switch dm.state {
	case defNamedFn:
		if c == '<' {
			dm.state = defParamList
			dm.angles = 1
		} else {
			dm.drop()
		}
	case defParamList:
		switch {
		case c == '\'':
			dm.state = defParamLifetime
		case c == '<':
			dm.angles++
		case c == '>' && !dm.prev.IsPunct('-') && !dm.prev.IsPunct('='):
			dm.angles--
		}
	case defParamLifetime:
		dm.drop()
	case defArgList, defArgSelf:
		switch {
		case c == '-' && dm.depth == dm.fnDepth:
			dm.state = defRet
			dm.cand.ReturnsBool = m.ReturnsBoolFalse
		case !dm.argsDepth():
		case c == '&':
			dm.state = defArgRef
		case c == '\'':
			dm.state = defArgRefLifetime
		case c == ',':
			dm.cand.HasMultipleArgs = true
			dm.state = defArgList
		default:
			dm.state = defArgList
		}
	case defArgRef:
		if c == '\'' {
			dm.state = defArgRefLifetime
		} else {
			dm.state = defArgList
		}
	case defArgRefLifetime:
		dm.state = defArgRef
	case defRet:
		switch c {
		case '>', '&':
		case '\'':
			dm.state = defRetLifetime
		case '$':
			// a metavariable stands for the body
			dm.finalize()
		default:
			dm.cand.ReturnsBool = m.ReturnsBoolFalse
			dm.finalize()
		}
	}
}

func (dm *defMatcher) ident(tok syntax.Token) {
	if tok.Text == "fn" && !(dm.state.inArgs() && dm.depth > dm.fnDepth) {
		dm.finalize()
		dm.state = defFn
		dm.fnDepth = dm.depth

		return
	}

	switch dm.state {
	case defFn:
		cand, ok := newCandidate(dm.c, tok, m.ReturnsBoolFalse, false)
		if !ok {
			line, _ := dm.c.position(tok)
			logRenameError(dm.c, dm.scope, tok.Text, line, rules.ErrNotAnAccessor)
			dm.drop()

			return
		}

		dm.cand = cand
		dm.state = defNamedFn
	case defNamedFn:
		dm.drop()
	case defParamLifetime:
		dm.state = defParamList
	case defParamList:
		dm.cand.HasGenericParams = true
	case defArgRef:
		switch {
		case tok.Text == "self":
			dm.cand.IsMethod = true
			dm.state = defArgSelf
		case tok.Text != "mut":
			dm.state = defArgList
		}
	case defArgRefLifetime:
		dm.state = defArgRef
	case defArgSelf:
		dm.state = defArgList
	case defRet:
		switch {
		case tok.Text == "bool" && dm.cand.ReturnsBool.IsFalse():
			// cleared if proven wrong later on
			dm.cand.ReturnsBool = m.ReturnsBoolTrue
		case tok.Text == "where":
			dm.finalize()
		default:
			dm.cand.ReturnsBool = m.ReturnsBoolFalse
			dm.finalize()
		}
	case defRetLifetime:
		dm.state = defRet
	}
}

func (dm *defMatcher) group(tok syntax.Token) {
	switch dm.state {
	case defNamedFn, defParamList:
		switch {
		case dm.state == defParamList && dm.angles > 0:
		case tok.Delim == syntax.Paren:
			if len(tok.Tokens) == 0 {
				dm.cand.HasNoArgs = true
			}

			dm.state = defArgList
		default:
			dm.drop()
		}
	case defArgList, defArgRef, defArgRefLifetime, defArgSelf:
		if dm.depth == dm.fnDepth {
			// body without a return type
			dm.drop()
		} else {
			dm.state = defArgList
		}
	case defRet, defRetLifetime:
		if tok.Delim != syntax.Brace {
			dm.cand.ReturnsBool = m.ReturnsBoolFalse
		}

		dm.finalize()
	}

	if len(tok.Tokens) > 0 {
		dm.depth++
		dm.match(tok.Tokens)
		dm.depth--
	}
}
