package parser

import (
	"fmt"
	"regexp"
	"strings"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
	"veritas-hq/praetor/pkg/sdl/token"
)

// Condition expressions are parsed by layered recursive descent, one
// function per precedence level. From loosest to tightest: OR, AND,
// unary NOT, atom. Parentheses reset precedence. Chains of the same
// operator associate to the left, so "A OR B OR C" is Or(Or(A,B),C).

// ParseCondition parses a standalone condition expression.
func (p *Parser) ParseCondition(source string) (*ast.ConditionNode, error) {
	if err := p.init(source); err != nil {
		return nil, err
	}
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, p.syntaxError("end of condition")
	}
	return cond, nil
}

func (p *Parser) parseOr() (*ast.ConditionNode, *sdlerrors.Error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Or(left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.ConditionNode, *sdlerrors.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.And(left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ast.ConditionNode, *sdlerrors.Error) {
	if p.at(token.NOT) {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Not(inner), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (*ast.ConditionNode, *sdlerrors.Error) {
	switch p.cur().Type {
	case token.LPAREN:
		p.next()
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "closing parenthesis"); err != nil {
			return nil, err
		}
		return cond, nil

	case token.HAS:
		return p.parseHasAttribute()

	case token.CURRENT_DATE:
		p.next()
		return p.parseTemporal(ast.TemporalField{Kind: ast.TemporalCurrentDate})

	case token.DATE_FIELD:
		p.next()
		name, err := p.expect(token.IDENT, "date field name")
		if err != nil {
			return nil, err
		}
		return p.parseTemporal(ast.TemporalField{
			Kind: ast.TemporalDateField,
			Name: strings.ToLower(name.Value),
		})

	case token.IDENT:
		return p.parseFieldCondition()
	}

	return nil, p.syntaxError("condition")
}

// parseHasAttribute parses "HAS <ident|string>".
func (p *Parser) parseHasAttribute() (*ast.ConditionNode, *sdlerrors.Error) {
	p.next() // HAS
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.next()
		return &ast.ConditionNode{Kind: ast.ConditionHasAttribute, Key: strings.ToLower(tok.Value)}, nil
	case token.STRING:
		p.next()
		return &ast.ConditionNode{Kind: ast.ConditionHasAttribute, Key: tok.Value}, nil
	}
	return nil, p.syntaxError("attribute name after HAS")
}

// parseTemporal parses the "<cmpop> <date>" tail of a temporal comparison.
func (p *Parser) parseTemporal(field ast.TemporalField) (*ast.ConditionNode, *sdlerrors.Error) {
	op := p.cur()
	if !op.Type.IsComparisonOp() {
		return nil, p.syntaxError("comparison operator in temporal condition")
	}
	p.next()
	date, err := p.parseDate("date in temporal condition")
	if err != nil {
		return nil, err
	}
	return &ast.ConditionNode{
		Kind:     ast.ConditionTemporal,
		Temporal: &field,
		Operator: op.Value,
		Date:     date,
	}, nil
}

// parseFieldCondition parses the atoms that start with a field name:
// comparisons, BETWEEN, IN, LIKE, MATCHES, IN_RANGE and NOT_IN_RANGE.
// Field names are lower-cased.
func (p *Parser) parseFieldCondition() (*ast.ConditionNode, *sdlerrors.Error) {
	field := strings.ToLower(p.next().Value)

	op := p.cur()
	switch {
	case op.Type.IsComparisonOp():
		p.next()
		value, err := p.parseValue(fmt.Sprintf("value after %q", op.Value))
		if err != nil {
			return nil, err
		}
		return &ast.ConditionNode{
			Kind:     ast.ConditionComparison,
			Field:    field,
			Operator: op.Value,
			Value:    &value,
		}, nil

	case op.Type == token.BETWEEN:
		p.next()
		lo, err := p.parseValue("lower bound of BETWEEN")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.AND, "AND in BETWEEN"); err != nil {
			return nil, err
		}
		hi, err := p.parseValue("upper bound of BETWEEN")
		if err != nil {
			return nil, err
		}
		return &ast.ConditionNode{Kind: ast.ConditionBetween, Field: field, Min: &lo, Max: &hi}, nil

	case op.Type == token.IN:
		p.next()
		values, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		return &ast.ConditionNode{Kind: ast.ConditionIn, Field: field, Values: values}, nil

	case op.Type == token.LIKE:
		p.next()
		pattern, err := p.expect(token.STRING, "pattern string after LIKE")
		if err != nil {
			return nil, err
		}
		return &ast.ConditionNode{Kind: ast.ConditionLike, Field: field, Pattern: pattern.Value}, nil

	case op.Type == token.MATCHES:
		p.next()
		pattern, err := p.expect(token.STRING, "pattern string after MATCHES")
		if err != nil {
			return nil, err
		}
		if _, compileErr := regexp.Compile(pattern.Value); compileErr != nil {
			return nil, sdlerrors.NewInvalidCondition(
				fmt.Sprintf("Invalid regex pattern: %v", compileErr))
		}
		return &ast.ConditionNode{Kind: ast.ConditionMatches, Field: field, Pattern: pattern.Value}, nil

	case op.Type == token.IN_RANGE:
		p.next()
		return p.parseRange(ast.ConditionInRange, field)

	case op.Type == token.NOT_IN_RANGE:
		p.next()
		return p.parseRange(ast.ConditionNotInRange, field)
	}

	return nil, p.syntaxError(fmt.Sprintf("operator after field %q", field))
}

// parseValueList parses the values of an IN clause, with or without
// surrounding parentheses.
func (p *Parser) parseValueList() ([]ast.ConditionValue, *sdlerrors.Error) {
	parenthesized := p.at(token.LPAREN)
	if parenthesized {
		p.next()
	}

	var values []ast.ConditionValue
	for {
		value, err := p.parseValue("value in IN list")
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.at(token.COMMA) {
			break
		}
		p.next()
	}

	if parenthesized {
		if _, err := p.expect(token.RPAREN, "closing parenthesis of IN list"); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// parseRange parses the range tail of IN_RANGE / NOT_IN_RANGE:
//
//	lo..hi    inclusive on both ends
//	lo...hi   inclusive low, exclusive high
//	(lo..hi)  exclusive on both ends
func (p *Parser) parseRange(kind ast.ConditionKind, field string) (*ast.ConditionNode, *sdlerrors.Error) {
	node := &ast.ConditionNode{Kind: kind, Field: field, InclusiveMin: true, InclusiveMax: true}

	parenthesized := p.at(token.LPAREN)
	if parenthesized {
		p.next()
		node.InclusiveMin = false
		node.InclusiveMax = false
	}

	lo, err := p.expect(token.NUMBER, "lower bound of range")
	if err != nil {
		return nil, err
	}
	if node.RangeMin, err = p.parseInt(lo); err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case token.RANGE:
		p.next()
	case token.RANGE_EXCL:
		p.next()
		if !parenthesized {
			node.InclusiveMax = false
		}
	default:
		return nil, p.syntaxError("range separator \"..\"")
	}

	hi, err := p.expect(token.NUMBER, "upper bound of range")
	if err != nil {
		return nil, err
	}
	if node.RangeMax, err = p.parseInt(hi); err != nil {
		return nil, err
	}

	if parenthesized {
		if _, err := p.expect(token.RPAREN, "closing parenthesis of range"); err != nil {
			return nil, err
		}
	}
	return node, nil
}
