package syntax

import "strings"

// FormatTypeName formats the implementing type of an impl block for display.
// Paths are reduced to their last segment: `&'a [std::string::String]`
// is displayed as `&'a [String]`.
func FormatTypeName(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}

	first, rest := tokens[0], tokens[1:]

	switch {
	case first.IsPunct('&'):
		prefix := "&"
		if len(rest) >= 2 && rest[0].IsPunct('\'') {
			prefix += "'" + rest[1].Text + " "
			rest = rest[2:]
		}

		if len(rest) > 0 && rest[0].IsIdent("mut") {
			prefix += "mut "
			rest = rest[1:]
		}

		return prefix + FormatTypeName(rest)
	case first.IsPunct('*'):
		if len(rest) > 0 && (rest[0].IsIdent("const") || rest[0].IsIdent("mut")) {
			rest = rest[1:]
		}

		return "*" + FormatTypeName(rest)
	case first.IsGroup(Bracket):
		elem := first.Tokens
		if parts := splitTopLevel(elem, ';'); len(parts) > 0 {
			elem = parts[0]
		}

		return "[" + FormatTypeName(elem) + "]"
	case first.IsGroup(Paren):
		elems := splitTopLevel(first.Tokens, ',')
		names := make([]string, 0, len(elems))

		for _, elem := range elems {
			names = append(names, FormatTypeName(elem))
		}

		return "(" + strings.Join(names, ", ") + ")"
	case first.IsIdent("dyn"):
		var bounds []string

		for _, bound := range splitTopLevel(rest, '+') {
			if bound[0].IsPunct('\'') {
				continue
			}

			bounds = append(bounds, lastSegment(bound))
		}

		return "dyn " + strings.Join(bounds, " + ")
	default:
		return lastSegment(tokens)
	}
}

// lastSegment returns the last identifier of a path outside of angle
// brackets: `std::vec::Vec<u8>` gives `Vec`.
func lastSegment(tokens []Token) string {
	name, depth := "", 0

	for i, tok := range tokens {
		if depth == 0 && tok.Kind == Ident {
			name = tok.Text
		}

		depth = trackAngles(tokens, i, depth)
	}

	return name
}
