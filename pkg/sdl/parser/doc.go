// Package parser turns SDL source text into the syntax trees defined in
// pkg/sdl/ast.
//
// # Grammar
//
// A document is zero or more IMPORT directives followed by zero or more
// STATUTE blocks. A statute body holds optional metadata clauses
// (JURISDICTION, VERSION, EFFECTIVE_DATE, EXPIRY_DATE), at least one
// condition clause (WHEN or UNLESS), exactly one THEN effect clause, and
// any number of trailing clauses (DISCRETION, EXCEPTION, AMENDMENT,
// SUPERSEDES, REQUIRES, DEFAULT).
//
// Conditions are boolean expressions with precedence NOT > AND > OR and
// parentheses to regroup; "A OR B AND C" parses as Or(A, And(B, C)).
// Chains of the same operator associate to the left. MATCHES patterns
// must compile as regular expressions at parse time.
//
// # Failure model
//
// Parsing is synchronous and allocates nothing shared: the only mutable
// state is the per-instance warning buffer, which makes one Parser
// instance single-parse at a time. The first fatal error aborts the whole
// parse; there is no partial-tree recovery. Deprecated keyword spellings
// (EXCEPT, AMENDS, REPLACES) and duplicate DISCRETION clauses are the
// non-fatal channel: they push warnings and parsing proceeds with
// modern-keyword, last-one-wins semantics.
package parser
