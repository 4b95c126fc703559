package model

// Path represents a file system path.
type Path string

// Tool selects which kind of getter usage a run rewrites.
type Tool int

const (
	// ToolCalls rewrites getter call sites: `.get_foo()` -> `.foo()`.
	ToolCalls Tool = iota
	// ToolDefinitions rewrites getter definitions: `fn get_foo(&self)` -> `fn foo(&self)`.
	ToolDefinitions
)

func (t Tool) String() string {
	switch t {
	case ToolCalls:
		return "calls"
	case ToolDefinitions:
		return "definitions"
	default:
		return "unknown"
	}
}

// IdentificationMode is the policy used to decide which get functions are getters.
type IdentificationMode int

const (
	// AllGetFunctions applies the name rules to every function with the `get_` prefix.
	AllGetFunctions IdentificationMode = iota
	// Conservative only renames methods which accept no arguments besides
	// `&['_][mut] self` and no type parameters (lifetimes are accepted).
	// Functions known or guessed to return a `bool` are renamed regardless.
	Conservative
)

// IsConservative reports whether the conservative rules apply.
func (m IdentificationMode) IsConservative() bool {
	return m == Conservative
}

func (m IdentificationMode) String() string {
	if m == Conservative {
		return "conservative"
	}

	return "all-get-functions"
}

// DocAliasMode controls the generation of `#[doc(alias = "...")]` attributes
// on renamed definitions.
type DocAliasMode int

const (
	// DocAliasGenerate adds an alias attribute where the scope requires one.
	DocAliasGenerate DocAliasMode = iota
	// DocAliasDiscard never adds alias attributes.
	DocAliasDiscard
)

// MustGenerate reports whether alias attributes are written.
func (m DocAliasMode) MustGenerate() bool {
	return m == DocAliasGenerate
}
