package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const punctChars = "~!@#$%^&*-+=|\\;:,./<>?"

type event int

const (
	evToken event = iota
	evOpen
	evClose
	evEOF
)

type lexer struct {
	src       []byte
	pos       int
	line      int
	lineStart int
	pending   []Token
}

// Lex splits the source into token trees.
//
// Regular comments are dropped, documentation comments are kept as Doc
// tokens, one per line.
func Lex(src []byte) ([]Token, error) {
	lx := &lexer{src: src, line: 1}
	lx.skipPreamble()

	type frame struct {
		open   Token
		tokens []Token
	}

	stack := []frame{{}}

	for {
		tok, ev, err := lx.scan()
		if err != nil {
			return nil, err
		}

		top := &stack[len(stack)-1]

		switch ev {
		case evEOF:
			if len(stack) > 1 {
				return nil, &Error{
					Line:   top.open.Line,
					Column: top.open.Col,
					Msg:    fmt.Sprintf("unclosed delimiter %q", openers[top.open.Delim]),
				}
			}

			return top.tokens, nil
		case evOpen:
			stack = append(stack, frame{open: tok})
		case evClose:
			if len(stack) == 1 || top.open.Delim != tok.Delim {
				return nil, &Error{
					Line:   tok.Line,
					Column: tok.Col,
					Msg:    fmt.Sprintf("unexpected closing delimiter %q", closers[tok.Delim]),
				}
			}

			group := top.open
			group.Tokens = top.tokens
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.tokens = append(parent.tokens, group)
		default:
			top.tokens = append(top.tokens, tok)
		}
	}
}

func (lx *lexer) eof() bool {
	return lx.pos >= len(lx.src)
}

func (lx *lexer) peek(offset int) byte {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}

	return lx.src[lx.pos+offset]
}

func (lx *lexer) col() int {
	return lx.pos - lx.lineStart
}

func (lx *lexer) bump() {
	if lx.src[lx.pos] == '\n' {
		lx.line++
		lx.lineStart = lx.pos + 1
	}
	lx.pos++
}

func (lx *lexer) errorf(line, col int, format string, args ...any) error {
	return &Error{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) skipPreamble() {
	if strings.HasPrefix(string(lx.src), "\xEF\xBB\xBF") {
		lx.pos = 3
		lx.lineStart = 3
	}

	// shebang, but not an inner attribute
	if lx.peek(0) == '#' && lx.peek(1) == '!' && lx.peek(2) != '[' {
		for !lx.eof() && lx.peek(0) != '\n' {
			lx.bump()
		}
	}
}

func (lx *lexer) scan() (Token, event, error) {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]

		return tok, evToken, nil
	}

	for {
		for !lx.eof() && isSpace(lx.peek(0)) {
			lx.bump()
		}

		if lx.eof() {
			return Token{}, evEOF, nil
		}

		line, col := lx.line, lx.col()
		c := lx.peek(0)

		switch {
		case c == '/' && lx.peek(1) == '/':
			if doc, ok := lx.lineComment(); ok {
				return doc, evToken, nil
			}

			continue
		case c == '/' && lx.peek(1) == '*':
			docs, err := lx.blockComment()
			if err != nil {
				return Token{}, evEOF, err
			}

			if len(docs) == 0 {
				continue
			}

			lx.pending = docs[1:]

			return docs[0], evToken, nil
		case c == '(' || c == '[' || c == '{':
			lx.bump()
			return Token{Kind: Group, Delim: delimiterOf(c), Line: line, Col: col}, evOpen, nil
		case c == ')' || c == ']' || c == '}':
			lx.bump()
			return Token{Kind: Group, Delim: delimiterOf(c), Line: line, Col: col}, evClose, nil
		case c == '"':
			tok, err := lx.quoted(lx.pos)
			return tok, evToken, err
		case c == '\'':
			tok, err := lx.apostrophe()
			return tok, evToken, err
		case isDigit(c):
			return lx.number(), evToken, nil
		case strings.IndexByte(punctChars, c) >= 0:
			lx.bump()
			joint := strings.IndexByte(punctChars, lx.peek(0)) >= 0 && !lx.eof()

			return Token{Kind: Punct, Text: string(c), Line: line, Col: col, Joint: joint}, evToken, nil
		}

		if tok, ok, err := lx.prefixedLiteral(); ok || err != nil {
			return tok, evToken, err
		}

		r, _ := utf8.DecodeRune(lx.src[lx.pos:])
		if isIdentStart(r) {
			return lx.ident(), evToken, nil
		}

		return Token{}, evEOF, lx.errorf(line, col, "unexpected character %q", r)
	}
}

func (lx *lexer) lineComment() (Token, bool) {
	line, col := lx.line, lx.col()
	start := lx.pos

	for !lx.eof() && lx.peek(0) != '\n' {
		lx.bump()
	}

	text := strings.TrimSuffix(string(lx.src[start:lx.pos]), "\r")

	isDoc := strings.HasPrefix(text, "//!") ||
		(strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////"))
	if !isDoc {
		return Token{}, false
	}

	return Token{Kind: Doc, Text: text[3:], Line: line, Col: col}, true
}

// blockComment skips a possibly nested block comment and returns the Doc
// tokens for a documentation block comment.
func (lx *lexer) blockComment() ([]Token, error) {
	line, col := lx.line, lx.col()
	start := lx.pos
	depth := 0

	for {
		if lx.eof() {
			return nil, lx.errorf(line, col, "unterminated block comment")
		}

		switch {
		case lx.peek(0) == '/' && lx.peek(1) == '*':
			depth++
			lx.bump()
			lx.bump()
		case lx.peek(0) == '*' && lx.peek(1) == '/':
			depth--
			lx.bump()
			lx.bump()
		default:
			lx.bump()
		}

		if depth == 0 {
			break
		}
	}

	text := string(lx.src[start:lx.pos])
	isDoc := strings.HasPrefix(text, "/*!") ||
		(strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/")
	if !isDoc {
		return nil, nil
	}

	content := text[3 : len(text)-2]
	lines := strings.Split(content, "\n")
	docs := make([]Token, 0, len(lines))

	for i, docLine := range lines {
		docLine = strings.TrimSuffix(docLine, "\r")
		tokCol := 0

		if i == 0 {
			tokCol = col
		} else {
			docLine = strings.TrimPrefix(strings.TrimLeft(docLine, " \t"), "*")
		}

		docs = append(docs, Token{Kind: Doc, Text: docLine, Line: line + i, Col: tokCol})
	}

	return docs, nil
}

// quoted scans a (possibly prefixed) quoted string starting at the opening
// quote, `start` being the literal's first byte.
func (lx *lexer) quoted(start int) (Token, error) {
	line, col := lx.line, start-lx.lineStart
	lx.bump()

	for {
		if lx.eof() {
			return Token{}, lx.errorf(line, col, "unterminated string literal")
		}

		c := lx.peek(0)
		lx.bump()

		if c == '\\' && !lx.eof() {
			lx.bump()
			continue
		}

		if c == '"' {
			break
		}
	}

	lx.suffix()

	return Token{Kind: Literal, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}, nil
}

// rawQuoted scans a raw string, the lexer being positioned on the first `#`
// or on the opening quote.
func (lx *lexer) rawQuoted(start int) (Token, error) {
	line, col := lx.line, start-lx.lineStart

	hashes := 0
	for lx.peek(0) == '#' {
		hashes++
		lx.bump()
	}

	if lx.peek(0) != '"' {
		return Token{}, lx.errorf(line, col, "invalid raw string literal")
	}
	lx.bump()

	closing := "\"" + strings.Repeat("#", hashes)

	for {
		if lx.eof() {
			return Token{}, lx.errorf(line, col, "unterminated raw string literal")
		}

		if strings.HasPrefix(string(lx.src[lx.pos:min(lx.pos+len(closing), len(lx.src))]), closing) {
			for range closing {
				lx.bump()
			}

			break
		}

		lx.bump()
	}

	lx.suffix()

	return Token{Kind: Literal, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}, nil
}

// apostrophe scans a char literal or the leading punctuation of a lifetime
// or a label.
func (lx *lexer) apostrophe() (Token, error) {
	line, col := lx.line, lx.col()

	if lx.peek(1) == '\\' {
		return lx.char(lx.pos)
	}

	r, size := utf8.DecodeRune(lx.src[lx.pos+1:])
	if lx.peek(1+size) == '\'' {
		return lx.char(lx.pos)
	}

	if isIdentStart(r) {
		lx.bump()
		return Token{Kind: Punct, Text: "'", Line: line, Col: col, Joint: true}, nil
	}

	return Token{}, lx.errorf(line, col, "unexpected character '\\''")
}

// char scans a char literal, the lexer being positioned on the opening quote.
func (lx *lexer) char(start int) (Token, error) {
	line, col := lx.line, start-lx.lineStart
	lx.bump()

	for {
		if lx.eof() || lx.peek(0) == '\n' {
			return Token{}, lx.errorf(line, col, "unterminated char literal")
		}

		c := lx.peek(0)
		lx.bump()

		if c == '\\' && !lx.eof() {
			lx.bump()
			continue
		}

		if c == '\'' {
			break
		}
	}

	lx.suffix()

	return Token{Kind: Literal, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}, nil
}

// prefixedLiteral scans raw identifiers and prefixed literals:
// `r#ident`, `r"..."`, `r#"..."#`, `b'x'`, `b"..."`, `br"..."`, `c"..."`, `cr"..."`.
func (lx *lexer) prefixedLiteral() (Token, bool, error) {
	start := lx.pos
	c0, c1, c2 := lx.peek(0), lx.peek(1), lx.peek(2)

	switch {
	case c0 == 'r' && c1 == '#' && c2 != '"' && c2 != '#':
		r, _ := utf8.DecodeRune(lx.src[min(lx.pos+2, len(lx.src)):])
		if !isIdentStart(r) {
			return Token{}, false, nil
		}

		line, col := lx.line, lx.col()
		lx.bump()
		lx.bump()
		tok := lx.ident()
		tok.Text = "r#" + tok.Text
		tok.Line, tok.Col = line, col

		return tok, true, nil
	case c0 == 'r' && (c1 == '"' || c1 == '#'):
		lx.bump()
		tok, err := lx.rawQuoted(start)

		return tok, true, err
	case (c0 == 'b' || c0 == 'c') && c1 == '"':
		lx.bump()
		tok, err := lx.quoted(start)

		return tok, true, err
	case c0 == 'b' && c1 == '\'':
		lx.bump()
		tok, err := lx.char(start)

		return tok, true, err
	case (c0 == 'b' || c0 == 'c') && c1 == 'r' && (c2 == '"' || c2 == '#'):
		lx.bump()
		lx.bump()
		tok, err := lx.rawQuoted(start)

		return tok, true, err
	}

	return Token{}, false, nil
}

func (lx *lexer) number() Token {
	line, col := lx.line, lx.col()
	start := lx.pos
	hex := lx.peek(0) == '0' && (lx.peek(1) == 'x' || lx.peek(1) == 'X')
	seenDot := false

	for !lx.eof() {
		c := lx.peek(0)

		switch {
		case isIdentByte(c):
			lx.bump()
		case c == '.' && !seenDot && isDigit(lx.peek(1)):
			seenDot = true
			lx.bump()
		case (c == '+' || c == '-') && !hex && (lx.src[lx.pos-1] == 'e' || lx.src[lx.pos-1] == 'E'):
			lx.bump()
		default:
			return Token{Kind: Literal, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}
		}
	}

	return Token{Kind: Literal, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}
}

func (lx *lexer) ident() Token {
	line, col := lx.line, lx.col()
	start := lx.pos

	for !lx.eof() {
		r, size := utf8.DecodeRune(lx.src[lx.pos:])
		if !isIdentContinue(r) {
			break
		}

		for range size {
			lx.bump()
		}
	}

	return Token{Kind: Ident, Text: string(lx.src[start:lx.pos]), Line: line, Col: col}
}

// suffix skips a literal suffix such as `u8` in `b'x'u8`.
func (lx *lexer) suffix() {
	for !lx.eof() && isIdentByte(lx.peek(0)) {
		lx.bump()
	}
}

func delimiterOf(c byte) Delimiter {
	switch c {
	case '(', ')':
		return Paren
	case '[', ']':
		return Bracket
	default:
		return Brace
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
