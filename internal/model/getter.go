// Package model defines the data structures shared by the getter fixers.
package model

import "fmt"

// ReturnsBool is the current knowledge about a getter returning exactly one `bool`.
type ReturnsBool int

const (
	// ReturnsBoolFalse means the return type is known not to be a single `bool`.
	ReturnsBoolFalse ReturnsBool = iota
	// ReturnsBoolTrue means the return type is known or guessed to be a single `bool`.
	ReturnsBoolTrue
	// ReturnsBoolMaybe means the return type is unknown (e.g. at a call site).
	ReturnsBoolMaybe
)

// ReturnsBoolFrom converts a definite answer.
func ReturnsBoolFrom(returnsBool bool) ReturnsBool {
	if returnsBool {
		return ReturnsBoolTrue
	}

	return ReturnsBoolFalse
}

// IsTrue reports whether the getter is known to return a `bool`.
func (r ReturnsBool) IsTrue() bool { return r == ReturnsBoolTrue }

// IsFalse reports whether the getter is known not to return a `bool`.
func (r ReturnsBool) IsFalse() bool { return r == ReturnsBoolFalse }

// IsMaybe reports whether the return type is unknown.
func (r ReturnsBool) IsMaybe() bool { return r == ReturnsBoolMaybe }

func (r ReturnsBool) String() string {
	switch r {
	case ReturnsBoolTrue:
		return "-> bool"
	case ReturnsBoolMaybe:
		return "-> ?"
	default:
		return ""
	}
}

// NewNameRule is the rule which produced a NewName. It is only used to
// report what happened, never to take further decisions.
type NewNameRule int

const (
	// RuleRegular removes the prefix, or replaces it with `is` for a bool getter.
	// Ex. `get_name` -> `name`, `get_active` -> `is_active`.
	RuleRegular NewNameRule = iota
	// RuleFixed fixes the name to comply with the conventions.
	// Ex. `get_mut_structure` -> `structure_mut`.
	RuleFixed
	// RuleNoPrefix keeps a bool getter without the `is` prefix.
	// Ex. `get_has_entry` -> `has_entry`.
	RuleNoPrefix
	// RuleSubstituted applies a substitution. Ex. `get_mute` -> `is_muted`.
	RuleSubstituted
)

func (r NewNameRule) String() string {
	switch r {
	case RuleFixed:
		return "fixed as"
	case RuleNoPrefix:
		return "kept as"
	case RuleSubstituted:
		return "substituted with"
	default:
		return "renamed as"
	}
}

// Label is a short name for the rule, used in reports.
func (r NewNameRule) Label() string {
	switch r {
	case RuleFixed:
		return "fixed"
	case RuleNoPrefix:
		return "no-prefix"
	case RuleSubstituted:
		return "substituted"
	default:
		return "regular"
	}
}

// NewName is the successful outcome of the rename rules.
type NewName struct {
	Text        string
	ReturnsBool ReturnsBool
	Rule        NewNameRule
}

func (n NewName) String() string {
	if n.ReturnsBool == ReturnsBoolFalse {
		return fmt.Sprintf("%s %s", n.Rule, n.Text)
	}

	return fmt.Sprintf("%s %s %s", n.ReturnsBool, n.Rule, n.Text)
}

// NonGetterReason explains why a function with the getter prefix is not renamed.
type NonGetterReason int

const (
	// GenericTypeParam means the function has generic type parameters.
	GenericTypeParam NonGetterReason = iota
	// MultipleArgs means the function accepts arguments besides self.
	MultipleArgs
	// NotAMethod means the function has no self receiver.
	NotAMethod
	// NonSelfUniqueArg means the only argument is not self.
	NonSelfUniqueArg
	// NoArgs means the function accepts no arguments at all.
	NoArgs
)

func (r NonGetterReason) String() string {
	switch r {
	case GenericTypeParam:
		return "generic type parameter(s)"
	case MultipleArgs:
		return "multiple arguments (incl. self)"
	case NotAMethod:
		return "not a method"
	case NonSelfUniqueArg:
		return "unique argument is not self"
	case NoArgs:
		return "no arguments"
	default:
		return "unknown reason"
	}
}
