// Package rules implements the getter renaming rules.
//
// The rules are pure functions: given a name (or its suffix) and the current
// knowledge about the getter returning exactly one `bool`, they return the
// new name and the rule which produced it.
package rules

import (
	"errors"
	"strings"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

var (
	// ErrNotAnAccessor is returned for names without the getter prefix.
	ErrNotAnAccessor = errors.New("not a get function")
	// ErrReserved is returned for suffixes which can't be renamed.
	ErrReserved = errors.New("name is reserved")
)

// Suffix returns the name without the getter prefix.
func Suffix(name string) (string, bool) {
	return strings.CutPrefix(name, Prefix)
}

// IsReserved reports whether the suffix can't be renamed.
func IsReserved(suffix string) bool {
	return reserved.contains(suffix)
}

// Rename applies the getter name rules to a function name.
//
// Use m.ReturnsBoolMaybe when the return type is not known.
func Rename(name string, returnsBool m.ReturnsBool) (m.NewName, error) {
	suffix, ok := Suffix(name)
	if !ok {
		return m.NewName{}, ErrNotAnAccessor
	}

	return RenameSuffix(suffix, returnsBool)
}

// RenameSuffix applies the getter name rules to a suffix.
func RenameSuffix(suffix string, returnsBool m.ReturnsBool) (m.NewName, error) {
	if IsReserved(suffix) {
		return m.NewName{}, ErrReserved
	}

	switch returnsBool {
	case m.ReturnsBoolTrue:
		newName, _ := tryRenameBool(suffix, true)
		return newName, nil
	case m.ReturnsBoolMaybe:
		if newName, ok := tryRenameBool(suffix, false); ok {
			return newName, nil
		}
	}

	newName := renameRegular(suffix)
	newName.ReturnsBool = returnsBool

	return newName, nil
}

// tryRenameBool applies the bool rules. When force is false, the rules only
// succeed if the name shows evidence of being a bool getter.
func tryRenameBool(suffix string, force bool) (m.NewName, bool) {
	boolName := func(text string, rule m.NewNameRule) (m.NewName, bool) {
		return m.NewName{Text: text, ReturnsBool: m.ReturnsBoolTrue, Rule: rule}, true
	}

	if substitute, ok := boolExactSubstitutes[suffix]; ok {
		return boolName(substitute, m.RuleSubstituted)
	}

	// `get_is` and `get_is_` are already prefixed.
	if isWord := strings.TrimSuffix(boolPrefix, "_"); strings.TrimSuffix(suffix, "_") == isWord {
		return boolName(isWord, m.RuleRegular)
	}

	rest, hadIsPrefix := strings.CutPrefix(suffix, boolPrefix)

	first, remainder, hasRemainder := strings.Cut(rest, "_")

	if substitute, ok := boolVerbSubstitutes[first]; ok {
		if hasRemainder {
			return boolName(substitute+"_"+remainder, m.RuleSubstituted)
		}

		return boolName(substitute, m.RuleSubstituted)
	}

	if boolNoPrefix.contains(first) {
		return boolName(rest, m.RuleNoPrefix)
	}

	if hadIsPrefix {
		return boolName(suffix, m.RuleRegular)
	}

	if force {
		return boolName(boolPrefix+suffix, m.RuleRegular)
	}

	if strings.HasSuffix(first, boolAbleSuffix) && !notBoolAble.contains(first) {
		return boolName(boolPrefix+suffix, m.RuleSubstituted)
	}

	return m.NewName{}, false
}

func renameRegular(suffix string) m.NewName {
	if substitute, ok := exactSubstitutes[suffix]; ok {
		return m.NewName{Text: substitute, Rule: m.RuleSubstituted}
	}

	first, remainder, hasRemainder := strings.Cut(suffix, "_")
	if hasRemainder && remainder != "" && prefixToPostfix.contains(first) {
		return m.NewName{Text: remainder + "_" + first, Rule: m.RuleFixed}
	}

	return m.NewName{Text: suffix, Rule: m.RuleRegular}
}
