package rules

// Prefix is the getter prefix the rules strip.
const Prefix = "get_"

// boolPrefix is the regular prefix for bool getters.
const boolPrefix = "is_"

// boolAbleSuffix flags a leading token as an adjective, e.g. `get_seekable`.
const boolAbleSuffix = "able"

// reserved holds suffixes which can't be renamed: they are keywords or
// would result in a confusing name.
var reserved = newSet(
	"",
	"as", "async", "await", "break", "const", "continue", "crate", "do", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in", "let",
	"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
	"static", "struct", "super", "trait", "true", "unsafe", "use", "where",
	"while", "abstract", "become", "box", "final", "macro", "override", "priv",
	"try", "typeof", "unsized", "virtual", "yield",
	"optional", "owned", "some",
)

// exactSubstitutes is used for non-bool getters whose suffix is a keyword
// only when used as a bare identifier.
var exactSubstitutes = map[string]string{
	"type": "type_",
}

// boolExactSubstitutes holds whole suffixes of bool getters with a dedicated name.
//
//   - `get_mute` -> `is_muted`.
//   - `get_result` -> `result`.
var boolExactSubstitutes = map[string]string{
	"mute":   "is_muted",
	"result": "result",
}

// boolVerbSubstitutes rewrites a leading verb in the 3rd person singular.
//
//   - `get_emit_eos` -> `emits_eos`.
var boolVerbSubstitutes = map[string]string{
	"do":    "does",
	"emit":  "emits",
	"fill":  "fills",
	"reset": "resets",
	"show":  "shows",
}

// boolNoPrefix holds leading tokens for which an `is` prefix is redundant.
//
//   - `get_has_entry` -> `has_entry`.
var boolNoPrefix = newSet(
	"can", "could", "does", "emits", "fills", "has", "have", "may", "must",
	"needs", "resets", "should", "shows", "uses", "will", "would",
)

// prefixToPostfix holds leading tokens to move to the end.
//
//   - `get_mut_structure` -> `structure_mut`.
var prefixToPostfix = newSet("mut")

// notBoolAble holds `able` ending words which are nouns.
var notBoolAble = newSet("cable", "table", "timetable", "variable")

type set map[string]struct{}

func newSet(words ...string) set {
	s := make(set, len(words))
	for _, word := range words {
		s[word] = struct{}{}
	}

	return s
}

func (s set) contains(word string) bool {
	_, ok := s[word]
	return ok
}
