package parser

import (
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
	"veritas-hq/praetor/pkg/sdl/lexer"
	"veritas-hq/praetor/pkg/sdl/token"
)

// parseStatute parses one STATUTE block:
//
//	STATUTE <id>: "<title>" {
//	    <metadata clauses>
//	    WHEN / UNLESS <condition> ...
//	    THEN <effect> "<description>"
//	    <trailing clauses in any order>
//	}
//
// UNLESS X desugars to NOT (X); all condition clauses land in the
// statute's top-level condition list, an implicit conjunction. Legacy
// keywords (EXCEPT, AMENDS, REPLACES) parse identically to their modern
// forms and push a deprecation warning.
//
// The clause ordering shown above is conventional, not enforced: any
// body clause may appear anywhere between the braces. The only
// structural checks are exactly one THEN and at least one condition.
func (p *Parser) parseStatute() (*ast.StatuteNode, *sdlerrors.Error) {
	keyword, err := p.expect(token.STATUTE, "STATUTE")
	if err != nil {
		return nil, err
	}

	id, err := p.expect(token.IDENT, "statute id")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "colon after statute id"); err != nil {
		return nil, err
	}
	title, err := p.expect(token.STRING, "statute title string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "opening brace of statute body"); err != nil {
		return nil, err
	}

	statute := &ast.StatuteNode{
		ID:       id.Value,
		Title:    title.Value,
		Version:  1,
		Location: keyword.Pos,
	}

	seenThen := false
	for !p.at(token.RBRACE) {
		if p.at(token.EOF) {
			return nil, p.syntaxError("closing brace of statute body")
		}
		if err := p.parseClause(statute, &seenThen); err != nil {
			return nil, err
		}
	}
	p.next() // closing brace

	if !seenThen {
		return nil, sdlerrors.NewSyntax(p.cur().Pos, "THEN clause", "end of statute").
			WithHint("every statute needs exactly one THEN clause")
	}
	if len(statute.Conditions) == 0 {
		return nil, sdlerrors.NewSyntax(keyword.Pos, "WHEN or UNLESS clause", "statute without conditions").
			WithHint("every statute needs at least one condition clause")
	}

	return statute, nil
}

// parseClause parses one clause of a statute body.
func (p *Parser) parseClause(statute *ast.StatuteNode, seenThen *bool) *sdlerrors.Error {
	tok := p.cur()
	switch tok.Type {
	case token.JURISDICTION:
		p.next()
		value, err := p.expect(token.STRING, "jurisdiction string")
		if err != nil {
			return err
		}
		statute.Jurisdiction = value.Value
		return nil

	case token.VERSION:
		p.next()
		value, err := p.expect(token.NUMBER, "version number")
		if err != nil {
			return err
		}
		n, err := p.parseInt(value)
		if err != nil {
			return err
		}
		statute.Version = int(n)
		return nil

	case token.EFFECTIVE_DATE:
		p.next()
		date, err := p.parseDate("effective date")
		if err != nil {
			return err
		}
		statute.EffectiveDate = date
		return nil

	case token.EXPIRY_DATE:
		p.next()
		date, err := p.parseDate("expiry date")
		if err != nil {
			return err
		}
		statute.ExpiryDate = date
		return nil

	case token.WHEN:
		p.next()
		cond, err := p.parseOr()
		if err != nil {
			return err
		}
		statute.Conditions = append(statute.Conditions, cond)
		return nil

	case token.UNLESS:
		p.next()
		cond, err := p.parseOr()
		if err != nil {
			return err
		}
		statute.Conditions = append(statute.Conditions, ast.Not(cond))
		return nil

	case token.THEN:
		if *seenThen {
			return sdlerrors.NewSyntax(tok.Pos, "single THEN clause", "second THEN").
				WithHint("a statute has exactly one effect")
		}
		p.next()
		effect, err := p.parseEffect()
		if err != nil {
			return err
		}
		statute.Effect = effect
		*seenThen = true
		return nil

	case token.DISCRETION:
		p.next()
		text, err := p.expect(token.STRING, "discretion text")
		if err != nil {
			return err
		}
		if statute.Discretion != "" {
			p.warnDuplicate(tok, "DISCRETION")
		}
		statute.Discretion = text.Value
		return nil

	case token.EXCEPTION:
		p.deprecationCheck(tok, "EXCEPTION")
		p.next()
		return p.parseException(statute)

	case token.AMENDMENT:
		p.deprecationCheck(tok, "AMENDMENT")
		p.next()
		return p.parseAmendment(statute)

	case token.SUPERSEDES:
		p.deprecationCheck(tok, "SUPERSEDES")
		p.next()
		ids, err := p.parseIDList("superseded statute id")
		if err != nil {
			return err
		}
		statute.Supersedes = append(statute.Supersedes, ids...)
		return nil

	case token.REQUIRES:
		p.next()
		ids, err := p.parseIDList("required statute id")
		if err != nil {
			return err
		}
		statute.Requires = append(statute.Requires, ids...)
		return nil

	case token.DEFAULT:
		p.next()
		return p.parseDefault(statute)
	}

	return p.syntaxError("statute clause")
}

// deprecationCheck records a warning when the token was written with a
// legacy spelling.
func (p *Parser) deprecationCheck(tok lexer.Token, modern string) {
	if _, ok := token.IsDeprecatedSpelling(tok.Value); ok {
		p.warnDeprecated(tok, modern)
	}
}

// parseEffect parses "<GRANT|OBLIGATION|PROHIBIT|REVOKE> \"<description>\"".
func (p *Parser) parseEffect() (ast.Effect, *sdlerrors.Error) {
	tok := p.cur()
	if !tok.Type.IsEffect() {
		return ast.Effect{}, p.syntaxError("effect type after THEN")
	}
	p.next()

	var effectType ast.EffectType
	switch tok.Type {
	case token.GRANT:
		effectType = ast.EffectGrant
	case token.OBLIGATION:
		effectType = ast.EffectObligation
	case token.PROHIBIT:
		effectType = ast.EffectProhibit
	case token.REVOKE:
		effectType = ast.EffectRevoke
	}

	description, err := p.expect(token.STRING, "effect description string")
	if err != nil {
		return ast.Effect{}, err
	}
	return ast.Effect{Type: effectType, Description: description.Value}, nil
}

// parseException parses "[WHEN <condition>] \"<text>\"" after the
// EXCEPTION keyword. The condition list is empty when WHEN is omitted.
func (p *Parser) parseException(statute *ast.StatuteNode) *sdlerrors.Error {
	clause := ast.ExceptionClause{}

	if p.at(token.WHEN) {
		p.next()
		cond, err := p.parseOr()
		if err != nil {
			return err
		}
		clause.Conditions = []*ast.ConditionNode{cond}
	}

	text, err := p.expect(token.STRING, "exception description string")
	if err != nil {
		return err
	}
	clause.Description = text.Value

	statute.Exceptions = append(statute.Exceptions, clause)
	return nil
}

// parseAmendment parses
// "<target-id> [VERSION <int>] [EFFECTIVE_DATE <date>] \"<text>\"" after
// the AMENDMENT keyword. The date is stored unpadded ("2024-1-5") and is
// not validated as a calendar value.
func (p *Parser) parseAmendment(statute *ast.StatuteNode) *sdlerrors.Error {
	target, err := p.expect(token.IDENT, "amendment target id")
	if err != nil {
		return err
	}
	clause := ast.AmendmentClause{TargetID: target.Value}

	if p.at(token.VERSION) {
		p.next()
		value, err := p.expect(token.NUMBER, "amendment version number")
		if err != nil {
			return err
		}
		n, err := p.parseInt(value)
		if err != nil {
			return err
		}
		clause.Version = int(n)
	}

	if p.at(token.EFFECTIVE_DATE) {
		p.next()
		date, err := p.parseDate("amendment effective date")
		if err != nil {
			return err
		}
		clause.Date = unpadDate(date)
	}

	text, err := p.expect(token.STRING, "amendment description string")
	if err != nil {
		return err
	}
	clause.Description = text.Value

	statute.Amendments = append(statute.Amendments, clause)
	return nil
}

// parseIDList parses "id[, id...]". Order is preserved and duplicates
// are kept as written.
func (p *Parser) parseIDList(context string) ([]string, *sdlerrors.Error) {
	var ids []string
	for {
		id, err := p.expect(token.IDENT, context)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id.Value)
		if !p.at(token.COMMA) {
			return ids, nil
		}
		p.next()
	}
}

// parseDefault parses "<field> [=] <value>" after the DEFAULT keyword.
func (p *Parser) parseDefault(statute *ast.StatuteNode) *sdlerrors.Error {
	field, err := p.expect(token.IDENT, "default field name")
	if err != nil {
		return err
	}
	if p.at(token.ASSIGN) {
		p.next()
	}
	value, err := p.parseValue("default value")
	if err != nil {
		return err
	}

	statute.Defaults = append(statute.Defaults, ast.DefaultClause{
		Field: strings.ToLower(field.Value),
		Value: value,
	})
	return nil
}
