package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
	"veritas-hq/praetor/pkg/sdl/lexer"
	"veritas-hq/praetor/pkg/sdl/token"
)

// Parser parses SDL source text into syntax trees.
//
// A Parser instance carries a warning buffer that accumulates non-fatal
// diagnostics (deprecated keywords, duplicate clauses) across parse calls
// until ClearWarnings is called. The buffer makes an instance unsafe to
// share between concurrent parses; batch ingestion should use one Parser
// per worker.
type Parser struct {
	source   string
	tokens   []lexer.Token
	pos      int
	warnings []ast.Warning
}

// New creates a parser with an empty warning buffer.
func New() *Parser {
	return &Parser{}
}

// Warnings returns the warnings accumulated since the last clear, in the
// order they were recorded.
func (p *Parser) Warnings() []ast.Warning {
	return p.warnings
}

// ClearWarnings empties the warning buffer.
func (p *Parser) ClearWarnings() {
	p.warnings = nil
}

// init tokenizes a new source and resets per-call state. The warning
// buffer deliberately survives across calls.
func (p *Parser) init(source string) *sdlerrors.Error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	p.source = source
	p.tokens = tokens
	p.pos = 0
	return nil
}

// cur returns the current token, or a synthetic EOF token at the end of
// the source once the stream is exhausted.
func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: token.EOF, Pos: ast.FromOffset(len(p.source), p.source)}
	}
	return p.tokens[p.pos]
}

// peek returns the token at the given lookahead distance.
func (p *Parser) peek(ahead int) lexer.Token {
	if p.pos+ahead >= len(p.tokens) {
		return lexer.Token{Type: token.EOF, Pos: ast.FromOffset(len(p.source), p.source)}
	}
	return p.tokens[p.pos+ahead]
}

func (p *Parser) next() lexer.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *Parser) at(t token.Type) bool {
	return p.cur().Type == t
}

// expect consumes the current token if it has the wanted type, and raises
// a syntax error naming the construct being parsed otherwise.
func (p *Parser) expect(t token.Type, expected string) (lexer.Token, *sdlerrors.Error) {
	if !p.at(t) {
		return lexer.Token{}, p.syntaxError(expected)
	}
	return p.next(), nil
}

// found describes the current token for error messages.
func (p *Parser) found() string {
	tok := p.cur()
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.STRING:
		return fmt.Sprintf("%q", tok.Value)
	default:
		return tok.Value
	}
}

// syntaxError raises a syntax error at the current token, attaching a
// keyword suggestion when the offending token is a near-miss spelling.
func (p *Parser) syntaxError(expected string) *sdlerrors.Error {
	err := sdlerrors.NewSyntax(p.cur().Pos, expected, p.found())
	tok := p.cur()
	if tok.Type == token.IDENT && !strings.Contains(tok.Value, ".") {
		if suggestion, ok := sdlerrors.SuggestKeyword(tok.Value, token.Keywords()); ok && suggestion != tok.Value {
			err = err.WithHint(fmt.Sprintf("did you mean %s?", suggestion))
		}
	}
	return err
}

// warnDeprecated records a deprecation warning for a legacy keyword
// spelling. The parse proceeds with modern-keyword semantics.
func (p *Parser) warnDeprecated(tok lexer.Token, modern string) {
	p.warnings = append(p.warnings, ast.Warning{
		Kind:      ast.WarningDeprecatedSyntax,
		Location:  tok.Pos,
		OldSyntax: tok.Value,
		NewSyntax: modern,
		Message:   fmt.Sprintf("%s is deprecated; use %s", tok.Value, modern),
	})
}

// warnDuplicate records a duplicate-clause warning. The last occurrence
// of the clause wins.
func (p *Parser) warnDuplicate(tok lexer.Token, clause string) {
	p.warnings = append(p.warnings, ast.Warning{
		Kind:     ast.WarningDuplicateClause,
		Location: tok.Pos,
		Message:  fmt.Sprintf("duplicate %s clause; the last occurrence wins", clause),
	})
}

// parseInt converts a NUMBER token to its value.
func (p *Parser) parseInt(tok lexer.Token) (int64, *sdlerrors.Error) {
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return 0, sdlerrors.NewSyntax(tok.Pos, "integer", tok.Value)
	}
	return n, nil
}

// datePattern matches ISO-style Y-M-D date literals. The components are
// not validated as a calendar value.
var datePattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// isDateLiteral reports whether a string payload is a date as written.
func isDateLiteral(s string) bool {
	return datePattern.MatchString(s)
}

// parseDate consumes a bare or quoted date literal and returns it as
// written (without quotes).
func (p *Parser) parseDate(context string) (string, *sdlerrors.Error) {
	tok := p.cur()
	switch {
	case tok.Type == token.DATE:
		p.next()
		return tok.Value, nil
	case tok.Type == token.STRING && isDateLiteral(tok.Value):
		p.next()
		return tok.Value, nil
	}
	return "", p.syntaxError(context)
}

// unpadDate rewrites a Y-M-D date with its components unpadded, e.g.
// "2024-01-05" becomes "2024-1-5". Used for amendment dates, which are
// stored normalized but never calendar-validated.
func unpadDate(date string) string {
	parts := strings.Split(date, "-")
	for i, part := range parts {
		if n, err := strconv.Atoi(part); err == nil {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, "-")
}

// parseValue consumes a literal condition value. Quoted payloads that
// spell a date classify as dates, matching the bare date form.
func (p *Parser) parseValue(context string) (ast.ConditionValue, *sdlerrors.Error) {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		n, err := p.parseInt(tok)
		if err != nil {
			return ast.ConditionValue{}, err
		}
		p.next()
		return ast.NumberValue(n), nil
	case token.DATE:
		p.next()
		return ast.DateValue(tok.Value), nil
	case token.STRING:
		p.next()
		if isDateLiteral(tok.Value) {
			return ast.DateValue(tok.Value), nil
		}
		return ast.StringValue(tok.Value), nil
	}
	return ast.ConditionValue{}, p.syntaxError(context)
}
