// Package lexer tokenizes SDL source text.
package lexer

import (
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
	"veritas-hq/praetor/pkg/sdl/token"
)

// Token is a scanned token with its source position and raw text.
// For keyword tokens Value preserves the spelling as written, so the
// parser can detect deprecated forms. For strings Value is the payload
// between the quotes, kept verbatim (regex literals need their
// backslashes untouched).
type Token struct {
	Type  token.Type
	Pos   ast.SourceLocation
	Value string
}

// Lexer tokenizes SDL source. Comments are stripped before scanning
// starts; the stripped bytes are replaced with spaces rather than
// deleted, so every byte offset the lexer reports is valid in the
// original source.
type Lexer struct {
	src    string // comment-stripped source
	ch     byte   // current character (0 at EOF)
	offset int    // offset of ch
	line   int    // 1-based line of ch
	col    int    // 1-based column of ch
}

// New creates a Lexer for the given source. It fails with an
// UnclosedComment error if a block comment is never terminated.
func New(source string) (*Lexer, *sdlerrors.Error) {
	stripped, err := stripComments(source)
	if err != nil {
		return nil, err
	}

	l := &Lexer{src: stripped, offset: -1, line: 1, col: 0}
	l.next()
	return l, nil
}

// Tokenize scans the whole source up front and returns the token stream,
// excluding the trailing EOF token.
func Tokenize(source string) ([]Token, *sdlerrors.Error) {
	l, err := New(source)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for {
		tok, err := l.Scan()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// stripComments blanks out "// line" and non-nesting "/* block */"
// comments. Newlines inside block comments are kept so line numbers stay
// stable, and every other comment byte becomes a space so offsets do too.
func stripComments(source string) (string, *sdlerrors.Error) {
	out := []byte(source)
	i := 0
	for i < len(out) {
		switch {
		case out[i] == '"':
			// Skip string literals; comment markers inside them are payload.
			i++
			for i < len(out) && out[i] != '"' && out[i] != '\n' {
				i++
			}
			if i < len(out) && out[i] == '"' {
				i++
			}

		case out[i] == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}

		case out[i] == '/' && i+1 < len(out) && out[i+1] == '*':
			opening := ast.FromOffset(i, source)
			out[i], out[i+1] = ' ', ' '
			i += 2
			closed := false
			for i < len(out) {
				if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
					out[i], out[i+1] = ' ', ' '
					i += 2
					closed = true
					break
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if !closed {
				return "", sdlerrors.NewUnclosedComment(opening, true)
			}

		default:
			i++
		}
	}
	return string(out), nil
}

// next advances to the next character, maintaining line and column.
func (l *Lexer) next() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.offset++
	l.col++
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}
	l.ch = l.src[l.offset]
}

// peek returns the character at the given lookahead distance without
// advancing, or 0 past the end of input.
func (l *Lexer) peek(ahead int) byte {
	if l.offset+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.offset+ahead]
}

func (l *Lexer) pos() ast.SourceLocation {
	return ast.SourceLocation{Line: l.line, Column: l.col, Offset: l.offset}
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() (Token, *sdlerrors.Error) {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.next()
	}

	pos := l.pos()

	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}, nil
	}

	switch l.ch {
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}, nil
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}, nil
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Pos: pos, Value: "{"}, nil
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Pos: pos, Value: "}"}, nil
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}, nil
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}, nil

	case '.':
		l.next()
		if l.ch == '.' {
			l.next()
			if l.ch == '.' {
				l.next()
				return Token{Type: token.RANGE_EXCL, Pos: pos, Value: "..."}, nil
			}
			return Token{Type: token.RANGE, Pos: pos, Value: ".."}, nil
		}
		return Token{Type: token.DOT, Pos: pos, Value: "."}, nil

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}, nil
		}
		return Token{Type: token.GT, Pos: pos, Value: ">"}, nil

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}, nil
		}
		return Token{Type: token.LT, Pos: pos, Value: "<"}, nil

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQ, Pos: pos, Value: "=="}, nil
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}, nil

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NEQ, Pos: pos, Value: "!="}, nil
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "!"},
			sdlerrors.NewSyntax(pos, "operator", "!").WithHint("did you mean \"!=\"?")

	case '"':
		return l.scanString(pos)

	case '-':
		if isDigit(l.peek(1)) {
			return l.scanNumberOrDate(pos)
		}
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "-"},
			sdlerrors.NewSyntax(pos, "number", "-")
	}

	if isDigit(l.ch) {
		return l.scanNumberOrDate(pos)
	}
	if isIdentStart(l.ch) {
		return l.scanIdent(pos), nil
	}

	found := string(l.ch)
	l.next()
	return Token{Type: token.ILLEGAL, Pos: pos, Value: found},
		sdlerrors.NewSyntax(pos, "token", found)
}

// scanString scans a double-quoted string literal. The payload is kept
// verbatim with no escape processing.
func (l *Lexer) scanString(pos ast.SourceLocation) (Token, *sdlerrors.Error) {
	l.next() // opening quote
	start := l.offset
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "\""},
				sdlerrors.NewSyntax(pos, "closing quote", "end of line").
					WithHint("string literals may not span lines")
		}
		l.next()
	}
	value := l.src[start:l.offset]
	l.next() // closing quote
	return Token{Type: token.STRING, Pos: pos, Value: value}, nil
}

// scanNumberOrDate scans a signed integer or a bare YYYY-MM-DD date.
// A digit run followed by "-digits-digits" is a date; the text is kept
// exactly as written.
func (l *Lexer) scanNumberOrDate(pos ast.SourceLocation) (Token, *sdlerrors.Error) {
	start := l.offset
	if l.ch == '-' {
		l.next()
	}
	for isDigit(l.ch) {
		l.next()
	}

	// Date lookahead: -DD or -MM-DD continuation of an unsigned digit run.
	if l.src[start] != '-' && l.ch == '-' && isDigit(l.peek(1)) && l.looksLikeDateTail() {
		l.next() // first dash
		for isDigit(l.ch) {
			l.next()
		}
		l.next() // second dash
		for isDigit(l.ch) {
			l.next()
		}
		return Token{Type: token.DATE, Pos: pos, Value: l.src[start:l.offset]}, nil
	}

	return Token{Type: token.NUMBER, Pos: pos, Value: l.src[start:l.offset]}, nil
}

// looksLikeDateTail reports whether the input at the current "-" continues
// as "-digits-digits", completing a date literal.
func (l *Lexer) looksLikeDateTail() bool {
	i := 1 // past the first dash
	digits := 0
	for isDigit(l.peek(i)) {
		i++
		digits++
	}
	if digits == 0 || l.peek(i) != '-' {
		return false
	}
	i++
	digits = 0
	for isDigit(l.peek(i)) {
		i++
		digits++
	}
	return digits > 0
}

// scanIdent scans a bare or dotted identifier and classifies keywords.
// A dot joins identifier segments only when followed by another segment,
// so "module.field" is one token but "5..10" never gets here.
func (l *Lexer) scanIdent(pos ast.SourceLocation) Token {
	start := l.offset
	for isIdentPart(l.ch) {
		l.next()
	}
	for l.ch == '.' && isIdentStart(l.peek(1)) {
		l.next()
		for isIdentPart(l.ch) {
			l.next()
		}
	}

	value := l.src[start:l.offset]
	if !strings.Contains(value, ".") {
		if tok := token.Lookup(value); tok != token.IDENT {
			return Token{Type: tok, Pos: pos, Value: value}
		}
	}
	return Token{Type: token.IDENT, Pos: pos, Value: value}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
