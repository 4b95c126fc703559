package domain

import (
	"fixgetters.dev/pkg/fixgetters/internal/domain/rules"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

type callState int

const (
	callNone callState = iota
	callDot
	// callCandidate follows a get function identifier.
	callCandidate
	// callParamList is inside an explicit generic argument list.
	callParamList
	callParamLifetime
	// callFnName expects the name of a function definition.
	callFnName
)

// callMatcher finds getter calls in a token stream which couldn't be
// parsed as expressions, such as macro arguments:
//
//	.get_suffix()
//	Type::get_suffix()
//	.get_suffix::<T>()
type callMatcher struct {
	renamer *getterRenamer
	c       *Collection
	scope   m.Scope
	state   callState
	cand    m.Candidate
}

func matchCalls(renamer *getterRenamer, c *Collection, scope m.Scope, tokens []syntax.Token) {
	cm := &callMatcher{renamer: renamer, c: c, scope: scope}
	cm.match(tokens)
}

func (cm *callMatcher) match(tokens []syntax.Token) {
	for _, tok := range tokens {
		switch tok.Kind {
		case syntax.Punct:
			cm.punct(tok)
		case syntax.Ident:
			cm.ident(tok)
		case syntax.Group:
			cm.group(tok)
		case syntax.Literal:
			cm.state = callNone
		}
	}
}

func (cm *callMatcher) punct(tok syntax.Token) {
	c := tok.Text[0]

	switch c {
	case ';', ',', '=', '+', '-', '/', '|':
		// forget the would-be call
		cm.state = callNone
		return
	}

	state := cm.state
	cm.state = callNone

	switch state {
	case callNone:
		if c == '.' {
			cm.state = callDot
		}
	case callCandidate:
		if c == ':' || c == '<' {
			cm.state = callParamList
		}
	case callParamList:
		if c == '\'' {
			cm.state = callParamLifetime
		} else {
			cm.state = callParamList
		}
	}
}

func (cm *callMatcher) ident(tok syntax.Token) {
	state := cm.state
	cm.state = callNone

	if tok.Text == "fn" {
		cm.state = callFnName
		return
	}

	switch state {
	case callNone, callDot:
		isMethod := state == callDot

		cand, ok := newCandidate(cm.c, tok, m.ReturnsBoolMaybe, isMethod)
		if !ok {
			if isMethod {
				line, _ := cm.c.position(tok)
				logRenameError(cm.c, cm.scope, tok.Text, line, rules.ErrNotAnAccessor)
			}

			return
		}

		cm.cand = cand
		cm.state = callCandidate
	case callParamList:
		cm.cand.HasGenericParams = true
		cm.state = callParamList
	case callParamLifetime:
		cm.state = callParamList
	}
}

func (cm *callMatcher) group(tok syntax.Token) {
	state := cm.state
	cm.state = callNone

	if (state == callCandidate || state == callParamList) && tok.Delim == syntax.Paren {
		cand := cm.cand
		if len(tok.Tokens) > 0 {
			cand.HasMultipleArgs = true
		}

		cm.renamer.process(cm.c, cm.scope, cand)
	}

	if len(tok.Tokens) > 0 {
		cm.match(tok.Tokens)
	}
}
