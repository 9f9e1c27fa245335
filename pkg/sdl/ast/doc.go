// Package ast defines the syntax tree for SDL, the statute definition
// language.
//
// The tree is built once per parse call and is immutable afterwards. Every
// node exclusively owns its children; subtrees are never shared between
// parents and trees never contain cycles, so values can be compared
// structurally and serialized without bookkeeping.
//
// The variant sets are closed. ConditionNode, ConditionValue and
// SetExpression each carry a Kind discriminator selecting which of their
// fields are meaningful; consumers dispatch exhaustively on Kind.
//
// SourceLocation and SourceSpan tie nodes and diagnostics back to the
// original source text. Offsets are byte offsets into the source string,
// which stay valid across comment stripping because the lexer replaces
// comment bytes instead of deleting them.
package ast
