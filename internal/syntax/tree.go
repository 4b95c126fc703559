package syntax

// Node is an element of the syntax tree.
type Node interface {
	node()
}

// File is a parsed source file.
type File struct {
	Nodes []Node
}

// DocLine is a line of documentation, either from a doc comment
// or from a `#[doc = "..."]` attribute.
type DocLine struct {
	Text string
	Line int
}

// Fn is a function or method.
type Fn struct {
	Sig  Signature
	Body []Node
}

// Signature is the signature of a Fn.
type Signature struct {
	Name     Token
	Generics []GenericParam
	Inputs   []Param
	Output   []Token
}

// GenericParam is a generic parameter of a Signature.
type GenericParam struct {
	Lifetime bool
	Tokens   []Token
}

// Param is an input of a Signature.
type Param struct {
	Receiver bool
	Tokens   []Token
}

// ReturnsBool reports whether the declared return type is exactly `bool`.
func (s Signature) ReturnsBool() bool {
	return len(s.Output) == 1 && s.Output[0].IsIdent("bool")
}

// HasTypeParams reports whether the signature declares generic parameters
// other than lifetimes.
func (s Signature) HasTypeParams() bool {
	for _, param := range s.Generics {
		if !param.Lifetime {
			return true
		}
	}

	return false
}

// Impl is an `impl` block. Trait is empty for an inherent impl.
type Impl struct {
	Trait string
	Type  string
	Items []Node
}

// Trait is a trait definition.
type Trait struct {
	Name  string
	Items []Node
}

// Mod is an inline module.
type Mod struct {
	Name  string
	Items []Node
}

// Const is a `const` or `static` item.
type Const struct {
	Name   string
	Static bool
	Expr   []Node
}

// Macro is a macro invocation or a `macro_rules!` definition.
// Tokens are the raw tokens between the delimiters.
type Macro struct {
	Name       string
	Definition bool
	Line       int
	Tokens     []Token
}

// MethodCall is a `.name(...)` expression.
type MethodCall struct {
	Name      Token
	Turbofish bool
	HasArgs   bool
	Args      []Node
}

// Call is a `path::name(...)` expression. Name is the last path segment.
type Call struct {
	Name      Token
	Turbofish bool
	HasArgs   bool
	Args      []Node
}

func (*DocLine) node()    {}
func (*Fn) node()         {}
func (*Impl) node()       {}
func (*Trait) node()      {}
func (*Mod) node()        {}
func (*Const) node()      {}
func (*Macro) node()      {}
func (*MethodCall) node() {}
func (*Call) node()       {}
