package parser

import (
	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
	"veritas-hq/praetor/pkg/sdl/token"
)

// ParseDocument parses a complete SDL source: zero or more IMPORT
// directives followed by zero or more STATUTE blocks, in source order.
//
// Import paths are recorded, never resolved; resolution belongs to the
// caller. The first fatal error aborts the parse with no partial tree.
// Warnings raised during the call accumulate on the parser instance and
// are retrievable through Warnings afterwards.
func (p *Parser) ParseDocument(source string) (*ast.Document, error) {
	doc, err := p.parseDocument(source)
	if err != nil {
		// A typed nil inside a non-nil error interface would defeat
		// callers' nil checks.
		return nil, err
	}
	return doc, nil
}

func (p *Parser) parseDocument(source string) (*ast.Document, *sdlerrors.Error) {
	if err := p.init(source); err != nil {
		return nil, err
	}

	doc := &ast.Document{}

	for p.at(token.IMPORT) {
		directive, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		doc.Imports = append(doc.Imports, directive)
	}

	for !p.at(token.EOF) {
		if !p.at(token.STATUTE) {
			if p.at(token.IMPORT) {
				return nil, p.syntaxError("STATUTE block").
					WithHint("IMPORT directives must precede all STATUTE blocks")
			}
			return nil, p.syntaxError("STATUTE block")
		}
		statute, err := p.parseStatute()
		if err != nil {
			return nil, err
		}
		doc.Statutes = append(doc.Statutes, *statute)
	}

	return doc, nil
}

// parseImport parses one "IMPORT \"<path>\" [AS <alias>]" directive.
func (p *Parser) parseImport() (ast.ImportDirective, *sdlerrors.Error) {
	p.next() // IMPORT

	path, err := p.expect(token.STRING, "import path string")
	if err != nil {
		return ast.ImportDirective{}, err
	}
	directive := ast.ImportDirective{Path: path.Value}

	if p.at(token.AS) {
		p.next()
		alias, err := p.expect(token.IDENT, "import alias")
		if err != nil {
			return ast.ImportDirective{}, err
		}
		directive.Alias = alias.Value
	}

	return directive, nil
}
