package domain

import (
	"fmt"

	"fixgetters.dev/pkg/fixgetters/internal/domain/rules"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

// Analyze walks the syntax tree of the file at path and collects the
// getters to rename with the given tool.
//
// Refused names and disqualified getters are only logged. The returned
// error is a *DuplicateDefinitionError when the renames can't be applied
// safely.
func Analyze(path m.Path, file *syntax.File, tool m.Tool, mode m.IdentificationMode) (*Collection, error) {
	c := NewCollection(path, tool)
	v := newVisitor(c, mode)

	v.visitNodes(file.Nodes, false)

	if v.renamer.err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, v.renamer.err)
	}

	return c, nil
}

type visitor struct {
	renamer *getterRenamer
	c       *Collection
	// scopes always holds the file level scope at the bottom.
	scopes []m.Scope
	docs   *docCodeExtractor
}

func newVisitor(c *Collection, mode m.IdentificationMode) *visitor {
	renamer := &getterRenamer{mode: mode}

	return &visitor{
		renamer: renamer,
		c:       c,
		scopes:  []m.Scope{{Kind: m.ScopeUnexpected}},
		docs:    newDocCodeExtractor(renamer, c),
	}
}

func (v *visitor) scope() m.Scope {
	return v.scopes[len(v.scopes)-1]
}

func (v *visitor) push(scope m.Scope) {
	v.scopes = append(v.scopes, scope)
}

func (v *visitor) pop() {
	if len(v.scopes) == 1 {
		panic("popping the file scope")
	}

	v.scopes = v.scopes[:len(v.scopes)-1]
}

// visitNodes visits nodes in source order. items is set for the items of
// an impl block or a trait, which don't push their own scope.
func (v *visitor) visitNodes(nodes []syntax.Node, items bool) {
	for _, node := range nodes {
		v.visit(node, items)
	}
}

func (v *visitor) visit(node syntax.Node, item bool) {
	switch n := node.(type) {
	case *syntax.DocLine:
		v.docs.process(*n)
	case *syntax.Fn:
		if !item {
			v.push(m.Scope{Kind: m.ScopeModuleFunction, Name: n.Sig.Name.Text})
			defer v.pop()
		}

		if v.c.Tool() == m.ToolDefinitions {
			v.definition(n.Sig)
		}

		v.visitNodes(n.Body, false)
	case *syntax.Impl:
		if n.Trait == "" {
			v.push(m.Scope{Kind: m.ScopeInherentImpl, Name: n.Type})
		} else {
			v.push(m.Scope{Kind: m.ScopeTraitImpl, Name: n.Trait, Type: n.Type})
		}

		v.visitNodes(n.Items, true)
		v.pop()
	case *syntax.Trait:
		v.push(m.Scope{Kind: m.ScopeTrait, Name: n.Name})
		v.visitNodes(n.Items, true)
		v.pop()
	case *syntax.Mod:
		v.push(m.Scope{Kind: m.ScopeModule, Name: n.Name})
		v.visitNodes(n.Items, false)
		v.pop()
	case *syntax.Const:
		if !item {
			kind := m.ScopeConst
			if n.Static {
				kind = m.ScopeStatic
			}

			v.push(m.Scope{Kind: kind, Name: n.Name})
			defer v.pop()
		}

		v.visitNodes(n.Expr, false)
	case *syntax.Macro:
		v.push(m.Scope{Kind: m.ScopeMacro, Name: n.Name})
		matchTokens(v.renamer, v.c, v.scope(), n.Tokens)
		v.pop()
	case *syntax.MethodCall:
		if v.c.Tool() == m.ToolCalls {
			v.methodCall(n)
		}

		v.visitNodes(n.Args, false)
	case *syntax.Call:
		if v.c.Tool() == m.ToolCalls {
			v.call(n)
		}

		v.visitNodes(n.Args, false)
	}
}

// matchTokens hands a token stream to the matcher for the collection's tool.
func matchTokens(renamer *getterRenamer, c *Collection, scope m.Scope, tokens []syntax.Token) {
	if c.Tool() == m.ToolDefinitions {
		matchDefinitions(renamer, c, scope, tokens)
	} else {
		matchCalls(renamer, c, scope, tokens)
	}
}

func (v *visitor) definition(sig syntax.Signature) {
	scope := v.scope()

	isMethod := len(sig.Inputs) > 0 && sig.Inputs[0].Receiver

	cand, ok := newCandidate(v.c, sig.Name, m.ReturnsBoolFrom(sig.ReturnsBool()), isMethod)
	if !ok {
		line, _ := v.c.position(sig.Name)
		logRenameError(v.c, scope, sig.Name.Text, line, rules.ErrNotAnAccessor)

		return
	}

	cand.HasGenericParams = sig.HasTypeParams()
	cand.HasMultipleArgs = len(sig.Inputs) > 1
	cand.HasNoArgs = len(sig.Inputs) == 0

	newName, ok := v.renamer.newName(v.c, scope, cand)
	if !ok {
		return
	}

	checkShape := v.renamer.mustCheckShape(newName)

	needsAlias, decided := scope.NeedsDocAlias()
	if !decided {
		// only methods are expected outside of impl blocks, traits and macros
		if checkShape {
			v.renamer.skip(v.c, scope, cand, m.NotAMethod)
			return
		}

		needsAlias = true
	}

	if checkShape {
		if reason, disqualified := signatureReason(cand); disqualified {
			v.renamer.skip(v.c, scope, cand, reason)
			return
		}
	}

	v.renamer.add(v.c, scope, cand, newName, needsAlias)
}

func signatureReason(cand m.Candidate) (m.NonGetterReason, bool) {
	switch {
	case cand.HasGenericParams:
		return m.GenericTypeParam, true
	case cand.HasMultipleArgs:
		return m.MultipleArgs, true
	case cand.HasNoArgs:
		return m.NoArgs, true
	case !cand.IsMethod:
		return m.NonSelfUniqueArg, true
	default:
		return 0, false
	}
}

func (v *visitor) methodCall(call *syntax.MethodCall) {
	scope := v.scope()

	cand, ok := newCandidate(v.c, call.Name, m.ReturnsBoolMaybe, true)
	if !ok {
		line, _ := v.c.position(call.Name)
		logRenameError(v.c, scope, call.Name.Text, line, rules.ErrNotAnAccessor)

		return
	}

	newName, ok := v.renamer.newName(v.c, scope, cand)
	if !ok {
		return
	}

	if v.renamer.mustCheckShape(newName) {
		switch {
		case call.Turbofish:
			v.renamer.skip(v.c, scope, cand, m.GenericTypeParam)
			return
		case call.HasArgs:
			v.renamer.skip(v.c, scope, cand, m.MultipleArgs)
			return
		}
	}

	v.renamer.add(v.c, scope, cand, newName, false)
}

func (v *visitor) call(call *syntax.Call) {
	scope := v.scope()

	cand, ok := newCandidate(v.c, call.Name, m.ReturnsBoolMaybe, false)
	if !ok {
		line, _ := v.c.position(call.Name)
		logRenameError(v.c, scope, call.Name.Text, line, rules.ErrNotAnAccessor)

		return
	}

	newName, ok := v.renamer.newName(v.c, scope, cand)
	if !ok {
		return
	}

	if v.renamer.mustCheckShape(newName) {
		v.renamer.skip(v.c, scope, cand, m.NotAMethod)
		return
	}

	v.renamer.add(v.c, scope, cand, newName, false)
}
