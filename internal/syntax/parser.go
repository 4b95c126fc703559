package syntax

import "strings"

var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "yield": true, "union": true,
	"macro_rules": true,
}

// qualified lists the tokens which can follow an item qualifier.
var qualified = map[string]bool{
	"fn": true, "impl": true, "trait": true, "unsafe": true, "async": true,
	"extern": true, "const": true, "type": true,
}

// Parse parses a source file.
//
// Parsing is lenient: constructs which are not understood are skipped. Only
// lexing errors are reported.
func Parse(src []byte) (*File, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	return &File{Nodes: ParseTokens(tokens)}, nil
}

// ParseTokens builds the nodes found in a token stream.
func ParseTokens(tokens []Token) []Node {
	p := &parser{tokens: tokens}

	var nodes []Node
	for p.pos < len(p.tokens) {
		nodes = p.step(nodes)
	}

	return nodes
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) at(i int) Token {
	if i < 0 || i >= len(p.tokens) {
		return Token{}
	}

	return p.tokens[i]
}

// step consumes at least one token.
func (p *parser) step(nodes []Node) []Node {
	tok := p.tokens[p.pos]

	switch tok.Kind {
	case Doc:
		p.pos++
		return append(nodes, &DocLine{Text: tok.Text, Line: tok.Line})
	case Group:
		p.pos++
		return append(nodes, ParseTokens(tok.Tokens)...)
	case Punct:
		switch {
		case tok.IsPunct('#'):
			return p.attribute(nodes)
		case tok.IsPunct('.'):
			return p.dot(nodes)
		}
	case Ident:
		return p.ident(nodes)
	}

	p.pos++

	return nodes
}

// attribute handles `#[...]` and `#![...]`. Only doc attributes produce nodes.
func (p *parser) attribute(nodes []Node) []Node {
	i := p.pos + 1
	if p.at(i).IsPunct('!') {
		i++
	}

	attr := p.at(i)
	if !attr.IsGroup(Bracket) {
		p.pos++
		return nodes
	}

	p.pos = i + 1

	content := attr.Tokens
	if len(content) != 3 || !content[0].IsIdent("doc") || !content[1].IsPunct('=') || content[2].Kind != Literal {
		return nodes
	}

	lit := content[2]
	raw := strings.HasPrefix(lit.Text, "r")

	for i, text := range strings.Split(unquote(lit.Text), "\n") {
		text = strings.TrimSuffix(text, "\r")
		if !raw {
			text = unescapeDocLine(text)
		}

		nodes = append(nodes, &DocLine{Text: text, Line: lit.Line + i})
	}

	return nodes
}

// dot handles method calls, field accesses and ranges.
func (p *parser) dot(nodes []Node) []Node {
	tok := p.tokens[p.pos]
	if tok.Joint && p.at(p.pos+1).IsPunct('.') {
		for p.at(p.pos).IsPunct('.') {
			p.pos++
		}

		return nodes
	}

	name := p.at(p.pos + 1)
	if name.Kind != Ident {
		p.pos++
		return nodes
	}

	k, turbofish := p.turbofish(p.pos + 2)

	args := p.at(k)
	if !args.IsGroup(Paren) {
		p.pos = k
		return nodes
	}

	p.pos = k + 1

	return append(nodes, &MethodCall{
		Name:      name,
		Turbofish: turbofish,
		HasArgs:   len(args.Tokens) > 0,
		Args:      ParseTokens(args.Tokens),
	})
}

// turbofish skips a `::<...>` at i if any.
func (p *parser) turbofish(i int) (int, bool) {
	if p.at(i).IsPunct(':') && p.at(i+1).IsPunct(':') && p.at(i+2).IsPunct('<') {
		return skipAngles(p.tokens, i+2), true
	}

	return i, false
}

func (p *parser) ident(nodes []Node) []Node {
	tok := p.tokens[p.pos]

	if tok.IsIdent("macro_rules") && p.at(p.pos+1).IsPunct('!') && p.at(p.pos+2).Kind == Ident &&
		p.at(p.pos+3).Kind == Group {
		body := p.at(p.pos + 3)
		p.pos += 4

		return append(nodes, &Macro{Name: p.at(p.pos - 2).Text, Definition: true, Line: tok.Line, Tokens: body.Tokens})
	}

	if !keywords[tok.Text] && p.at(p.pos+1).IsPunct('!') && !p.at(p.pos+1).Joint && p.at(p.pos+2).Kind == Group {
		body := p.at(p.pos + 2)
		p.pos += 3

		return append(nodes, &Macro{Name: tok.Text, Line: tok.Line, Tokens: body.Tokens})
	}

	j := p.skipQualifiers(p.pos)
	item := p.at(j)

	switch {
	case item.IsIdent("fn") && p.at(j+1).Kind == Ident:
		return p.fn(nodes, j)
	case item.IsIdent("impl"):
		return p.impl(nodes, j)
	case item.IsIdent("trait") && p.at(j+1).Kind == Ident:
		return p.trait(nodes, j)
	case item.IsIdent("mod") && p.at(j+1).Kind == Ident:
		return p.mod(nodes, j)
	case item.IsIdent("const") && p.at(j+1).Kind == Ident && p.at(j+2).IsPunct(':'):
		return p.constant(nodes, j+1, false)
	case item.IsIdent("static") && p.at(j+1).IsIdent("mut") && p.at(j+2).Kind == Ident && p.at(j+3).IsPunct(':'):
		return p.constant(nodes, j+2, true)
	case item.IsIdent("static") && p.at(j+1).Kind == Ident && p.at(j+2).IsPunct(':'):
		return p.constant(nodes, j+1, true)
	case (item.IsIdent("struct") || item.IsIdent("enum") || item.IsIdent("union") || item.IsIdent("type")) &&
		p.at(j+1).Kind == Ident:
		// the name is not a call, even for tuple structs
		p.pos = j + 2
		return nodes
	case item.IsIdent("use"), item.IsIdent("extern") && p.at(j+1).IsIdent("crate"):
		p.pos = p.find(j, func(t Token) bool { return t.IsPunct(';') }) + 1
		return nodes
	case item.IsIdent("extern"):
		// foreign blocks declare no getter
		k := j + 1
		if p.at(k).Kind == Literal {
			k++
		}

		if p.at(k).IsGroup(Brace) {
			k++
		}

		p.pos = k

		return nodes
	case j != p.pos:
		p.pos = j
		return nodes
	}

	if keywords[tok.Text] {
		p.pos++
		return nodes
	}

	k, turbofish := p.turbofish(p.pos + 1)

	args := p.at(k)
	if !args.IsGroup(Paren) {
		p.pos++
		return nodes
	}

	p.pos = k + 1

	return append(nodes, &Call{
		Name:      tok,
		Turbofish: turbofish,
		HasArgs:   len(args.Tokens) > 0,
		Args:      ParseTokens(args.Tokens),
	})
}

// skipQualifiers skips visibility and qualifiers such as `pub(crate) const unsafe`.
func (p *parser) skipQualifiers(i int) int {
	for i < len(p.tokens) {
		tok := p.tokens[i]

		switch {
		case tok.IsIdent("pub"):
			i++
			if p.at(i).IsGroup(Paren) {
				i++
			}
		case tok.IsIdent("const"), tok.IsIdent("async"), tok.IsIdent("unsafe"),
			tok.IsIdent("default"), tok.IsIdent("auto"):
			next := p.at(i + 1)
			if next.Kind != Ident || !qualified[next.Text] {
				return i
			}
			i++
		case tok.IsIdent("extern") && p.at(i+1).Kind == Literal && p.at(i+2).IsIdent("fn"):
			i += 2
		case tok.IsIdent("extern") && p.at(i+1).IsIdent("fn"):
			i++
		default:
			return i
		}
	}

	return i
}

// find returns the index of the first token from i matching pred,
// or the number of tokens.
func (p *parser) find(i int, pred func(Token) bool) int {
	for i < len(p.tokens) && !pred(p.tokens[i]) {
		i++
	}

	return i
}

func (p *parser) fn(nodes []Node, j int) []Node {
	sig := Signature{Name: p.at(j + 1)}
	k := j + 2

	if p.at(k).IsPunct('<') {
		end := skipAngles(p.tokens, k)
		for _, param := range splitTopLevel(p.tokens[k+1:max(k+1, end-1)], ',') {
			sig.Generics = append(sig.Generics, GenericParam{Lifetime: param[0].IsPunct('\''), Tokens: param})
		}
		k = end
	}

	inputs := p.at(k)
	if !inputs.IsGroup(Paren) {
		p.pos = k
		return nodes
	}

	for _, param := range splitTopLevel(inputs.Tokens, ',') {
		sig.Inputs = append(sig.Inputs, Param{Receiver: isReceiver(param), Tokens: param})
	}
	k++

	if p.at(k).IsPunct('-') && p.at(k+1).IsPunct('>') {
		start := k + 2
		k = scanType(p.tokens, start)
		sig.Output = p.tokens[start:k]
	}

	if p.at(k).IsIdent("where") {
		k = p.find(k, func(t Token) bool { return t.IsGroup(Brace) || t.IsPunct(';') })
	}

	fn := &Fn{Sig: sig}

	switch body := p.at(k); {
	case body.IsGroup(Brace):
		fn.Body = ParseTokens(body.Tokens)
		k++
	case body.IsPunct(';'):
		k++
	}

	p.pos = k

	return append(nodes, fn)
}

func (p *parser) impl(nodes []Node, j int) []Node {
	k := j + 1
	if p.at(k).IsPunct('<') {
		k = skipAngles(p.tokens, k)
	}

	start, forAt, depth := k, -1, 0

	for ; k < len(p.tokens); k++ {
		tok := p.tokens[k]
		if depth == 0 && (tok.IsGroup(Brace) || tok.IsIdent("where") || tok.IsPunct(';')) {
			break
		}

		depth = trackAngles(p.tokens, k, depth)

		// `for<'a>` is a higher-ranked bound, not the trait separator
		if depth == 0 && forAt < 0 && tok.IsIdent("for") && !p.at(k+1).IsPunct('<') {
			forAt = k
		}
	}

	end := k
	k = p.find(k, func(t Token) bool { return t.IsGroup(Brace) || t.IsPunct(';') })

	body := p.at(k)
	if !body.IsGroup(Brace) || start == end {
		p.pos = j + 1
		return nodes
	}

	impl := &Impl{Items: ParseTokens(body.Tokens)}
	if forAt >= 0 {
		impl.Trait = lastSegment(p.tokens[start:forAt])
		impl.Type = FormatTypeName(p.tokens[forAt+1 : end])
	} else {
		impl.Type = FormatTypeName(p.tokens[start:end])
	}

	p.pos = k + 1

	return append(nodes, impl)
}

func (p *parser) trait(nodes []Node, j int) []Node {
	k := p.find(j+2, func(t Token) bool { return t.IsGroup(Brace) || t.IsPunct(';') })

	body := p.at(k)
	if !body.IsGroup(Brace) {
		// trait alias
		p.pos = k + 1
		return nodes
	}

	p.pos = k + 1

	return append(nodes, &Trait{Name: p.at(j + 1).Text, Items: ParseTokens(body.Tokens)})
}

func (p *parser) mod(nodes []Node, j int) []Node {
	body := p.at(j + 2)
	if !body.IsGroup(Brace) {
		p.pos = j + 2
		return nodes
	}

	p.pos = j + 3

	return append(nodes, &Mod{Name: p.at(j + 1).Text, Items: ParseTokens(body.Tokens)})
}

// constant handles `const` and `static` items, name being the index of the
// item name.
func (p *parser) constant(nodes []Node, name int, static bool) []Node {
	k := scanType(p.tokens, name+2)
	item := &Const{Name: p.at(name).Text, Static: static}

	if p.at(k).IsPunct('=') {
		end := p.find(k+1, func(t Token) bool { return t.IsPunct(';') })
		item.Expr = ParseTokens(p.tokens[k+1 : end])
		k = end
	}

	if p.at(k).IsPunct(';') {
		k++
	}

	p.pos = k

	return append(nodes, item)
}

// skipAngles returns the index following the `>` matching the `<` at i.
func skipAngles(tokens []Token, i int) int {
	depth := 0

	for ; i < len(tokens); i++ {
		depth = trackAngles(tokens, i, depth)
		if depth == 0 {
			return i + 1
		}
	}

	return i
}

// trackAngles updates the angle bracket depth with the token at i.
// The `>` of `->` and `=>` is not a closing bracket.
func trackAngles(tokens []Token, i, depth int) int {
	tok := tokens[i]

	switch {
	case tok.IsPunct('<'):
		return depth + 1
	case tok.IsPunct('>'):
		if i > 0 && tokens[i-1].Joint && (tokens[i-1].IsPunct('-') || tokens[i-1].IsPunct('=')) {
			return depth
		}

		if depth > 0 {
			return depth - 1
		}
	}

	return depth
}

// scanType returns the index of the token terminating the type starting
// at i: a brace group, `where`, `;` or `=` outside of angle brackets.
func scanType(tokens []Token, i int) int {
	depth := 0

	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if depth == 0 && (tok.IsGroup(Brace) || tok.IsIdent("where") || tok.IsPunct(';') || tok.IsPunct('=')) {
			return i
		}

		depth = trackAngles(tokens, i, depth)
	}

	return i
}

// splitTopLevel splits tokens on the separator outside of angle brackets.
// Empty parts are dropped.
func splitTopLevel(tokens []Token, sep byte) [][]Token {
	var parts [][]Token

	start, depth := 0, 0

	for i, tok := range tokens {
		if depth == 0 && tok.IsPunct(sep) {
			if i > start {
				parts = append(parts, tokens[start:i])
			}
			start = i + 1

			continue
		}

		depth = trackAngles(tokens, i, depth)
	}

	if start < len(tokens) {
		parts = append(parts, tokens[start:])
	}

	return parts
}

// isReceiver matches `self`, `mut self`, `&self`, `&'a mut self` and `self: Type`.
func isReceiver(param []Token) bool {
	i := 0
	if i < len(param) && param[i].IsPunct('&') {
		i++
		if i+1 < len(param) && param[i].IsPunct('\'') {
			i += 2
		}
	}

	if i < len(param) && param[i].IsIdent("mut") {
		i++
	}

	if i >= len(param) || !param[i].IsIdent("self") {
		return false
	}

	return i+1 == len(param) || param[i+1].IsPunct(':')
}

// unquote returns the content of a string literal, leaving escapes as is.
// unescapeDocLine decodes the quote and backslash escapes of one line of a
// doc string. A trailing `\` is a line continuation and is dropped. Other
// escapes are kept as written.
func unescapeDocLine(line string) string {
	if !strings.Contains(line, `\`) {
		return line
	}

	var b strings.Builder

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		if i+1 == len(line) {
			break
		}

		i++

		switch next := line[i]; next {
		case '\\', '"', '\'':
			b.WriteByte(next)
		default:
			b.WriteByte(c)
			b.WriteByte(next)
		}
	}

	return b.String()
}

func unquote(lit string) string {
	if strings.HasPrefix(lit, "r") {
		lit = strings.Trim(lit[1:], "#")
	}

	return strings.TrimSuffix(strings.TrimPrefix(lit, "\""), "\"")
}
