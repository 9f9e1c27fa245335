package sdl

import (
	"veritas-hq/praetor/pkg/sdl/ast"
	"veritas-hq/praetor/pkg/sdl/parser"
)

// ParseDocument parses SDL source with a fresh parser and returns the
// document together with any warnings the parse produced.
//
// Callers that parse many sources and want one accumulated warning list
// should hold their own parser.Parser instance instead (one per worker;
// instances are not safe for concurrent use).
func ParseDocument(source string) (*ast.Document, []ast.Warning, error) {
	p := parser.New()
	doc, err := p.ParseDocument(source)
	if err != nil {
		return nil, nil, err
	}
	return doc, p.Warnings(), nil
}

// ParseCondition parses a standalone condition expression.
func ParseCondition(source string) (*ast.ConditionNode, error) {
	return parser.New().ParseCondition(source)
}

// ParseStatute is the simplified single-statute API: it parses a source
// containing exactly one STATUTE block and lowers it into the flat
// Statute shape. Document-only features (imports, exceptions, amendments,
// defaults and the raw condition trees) are not carried over; callers
// that need them must use ParseDocument.
func ParseStatute(source string) (*Statute, []ast.Warning, error) {
	p := parser.New()
	doc, err := p.ParseDocument(source)
	if err != nil {
		return nil, nil, err
	}
	if len(doc.Statutes) != 1 {
		return nil, nil, errSingleStatute(len(doc.Statutes))
	}

	lowered, err := Lower(&doc.Statutes[0])
	if err != nil {
		return nil, nil, err
	}
	return lowered, p.Warnings(), nil
}
