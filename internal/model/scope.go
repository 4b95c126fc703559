package model

import "fmt"

// ScopeKind defines the lexical container of a getter.
type ScopeKind int

const (
	// ScopeUnexpected is the file-level default.
	ScopeUnexpected ScopeKind = iota
	// ScopeModuleFunction is a free function (or anything nested in one).
	ScopeModuleFunction
	// ScopeConst is a module-level `const` item.
	ScopeConst
	// ScopeStatic is a module-level `static` item.
	ScopeStatic
	// ScopeModule is an inline `mod name { ... }`.
	ScopeModule
	// ScopeInherentImpl is an `impl Type { ... }` block.
	ScopeInherentImpl
	// ScopeTrait is a `trait Name { ... }` definition.
	ScopeTrait
	// ScopeTraitImpl is an `impl Trait for Type { ... }` block.
	ScopeTraitImpl
	// ScopeMacro is the body of a macro definition or invocation.
	ScopeMacro
	// ScopeDocumentation is a code block found in documentation.
	ScopeDocumentation
)

// Scope is the lexical container of the position currently being visited.
type Scope struct {
	Kind ScopeKind
	// Name is the item name: function, const, static, module, trait or macro name,
	// or the formatted type name for an inherent impl.
	Name string
	// Type is the formatted implementing type of a trait impl.
	Type string
}

// NeedsDocAlias tells whether a renamed definition in this scope must keep
// its former name as an alias. The second result is false when the scope
// doesn't decide by itself (module-level items).
func (s Scope) NeedsDocAlias() (needsAlias bool, decided bool) {
	switch s.Kind {
	case ScopeInherentImpl, ScopeTrait, ScopeMacro:
		return true, true
	case ScopeTraitImpl, ScopeDocumentation:
		return false, true
	default:
		return false, false
	}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeModuleFunction:
		return "fn " + s.Name
	case ScopeConst:
		return "const " + s.Name
	case ScopeStatic:
		return "static " + s.Name
	case ScopeModule:
		return "mod " + s.Name
	case ScopeInherentImpl, ScopeTrait:
		return s.Name
	case ScopeTraitImpl:
		return fmt.Sprintf("impl %s for %s", s.Name, s.Type)
	case ScopeMacro:
		return "macro! " + s.Name
	case ScopeDocumentation:
		return "documentation"
	default:
		return "**Unexpected scope**"
	}
}
