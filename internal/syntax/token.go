// Package syntax turns Rust source text into token trees and a lenient syntax
// tree.
//
// The token trees mirror what a Rust procedural macro receives: identifiers,
// single character punctuations, literals and delimited groups. Documentation
// comments are kept as Doc tokens so they can be inspected for code snippets.
// The syntax tree only models what getter fixing needs: functions and their
// signatures, impl and trait blocks, modules, constants, macros, method and
// path calls. Everything else is skipped.
package syntax

import (
	"fmt"
	"strings"
)

// Kind is the kind of a Token.
type Kind int

const (
	// Ident is an identifier or a keyword.
	Ident Kind = iota + 1
	// Punct is a single punctuation character.
	Punct
	// Literal is a string, char, byte or numeric literal.
	Literal
	// Group is a delimited token tree.
	Group
	// Doc is a documentation comment line.
	Doc
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Punct:
		return "punct"
	case Literal:
		return "literal"
	case Group:
		return "group"
	case Doc:
		return "doc"
	default:
		return "invalid"
	}
}

// Delimiter is the delimiter of a Group.
type Delimiter int

const (
	NoDelimiter Delimiter = iota
	Paren
	Bracket
	Brace
)

var (
	openers = map[Delimiter]string{Paren: "(", Bracket: "[", Brace: "{"}
	closers = map[Delimiter]string{Paren: ")", Bracket: "]", Brace: "}"}
)

// Token is a token tree.
type Token struct {
	Kind Kind
	// Text is the source text of an Ident, Punct or Literal,
	// and the comment content of a Doc.
	Text string
	// Line is 1-based.
	Line int
	// Col is the 0-based byte offset in the line.
	Col int
	// Joint is set on a Punct immediately followed by another Punct.
	Joint bool
	// Delim and Tokens are only set on a Group.
	Delim  Delimiter
	Tokens []Token
}

// IsIdent reports whether the token is the given identifier.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(c byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == c
}

// IsGroup reports whether the token is a group with the given delimiter.
func (t Token) IsGroup(delim Delimiter) bool {
	return t.Kind == Group && t.Delim == delim
}

func (t Token) String() string {
	if t.Kind != Group {
		return t.Text
	}

	parts := make([]string, 0, len(t.Tokens))
	for _, tok := range t.Tokens {
		parts = append(parts, tok.String())
	}

	return openers[t.Delim] + strings.Join(parts, " ") + closers[t.Delim]
}

// Error is a lexing error.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}
