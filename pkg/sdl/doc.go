// Package sdl provides parsing, lowering and serialization for SDL, the
// statute definition language: a declarative DSL that encodes legal
// statutes as machine-checkable condition/effect rules.
//
// SDL is deliberately not Turing-complete. There are no user functions,
// loops or macros; a source file is imports plus statute blocks, and a
// statute maps a boolean eligibility condition to a legal effect:
//
//	IMPORT "common/definitions.sdl" AS defs
//
//	STATUTE voting_rights: "Right to vote" {
//	    JURISDICTION "federal"
//	    VERSION 2
//	    EFFECTIVE_DATE 2024-01-01
//
//	    WHEN AGE >= 18 AND HAS citizenship
//	    UNLESS STATUS == "disqualified"
//	    THEN GRANT "may vote in federal elections"
//
//	    DISCRETION "registrars may verify identity documents"
//	    EXCEPTION WHEN AGE < 16 "no provisional registration"
//	    SUPERSEDES voting_rights_1962
//	}
//
// # Package layout
//
//   - ast: syntax tree types (documents, statutes, condition trees,
//     source locations, warnings)
//   - token, lexer: tokenization with offset-preserving comment stripping
//   - parser: the clause and expression parsers and the per-instance
//     warning buffer
//   - errors: the single fatal error type, typo suggestions, and source
//     context rendering
//
// This package itself carries the convenience entry points
// (ParseDocument, ParseCondition, ParseStatute), the simplified
// single-statute lowering, and JSON/YAML pass-through serialization.
//
// # Concurrency
//
// Parsing is synchronous, reads nothing but the given source string, and
// keeps its only mutable state (the warning buffer) on the parser
// instance. Use one parser per goroutine; there are no locks to contend
// on and nothing shared to corrupt.
package sdl
