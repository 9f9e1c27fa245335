// Package errors defines the diagnostic types for the SDL front-end.
//
// There is a single fatal error type, Error, with a closed set of kinds:
// unclosed comment, syntax error, undefined reference, invalid condition
// and serialization. Every variant exposes the source span it points at;
// variants that only know a single location report a point span.
//
// Parsing fails totally and immediately on the first Error. The only
// non-fatal channel is the parser's warning buffer (see pkg/sdl/parser);
// nothing in this package represents a recoverable state.
//
// The package also provides typo suggestions for keywords via Levenshtein
// distance, and renders source context around an error location in the
// style:
//
//	[syntax] Expected THEN clause, found }
//	  --> 3:1
//	  |
//	     2 |     WHEN AGE >= 18
//	  -> 3 | }
//	       | ^
//	  |
//	  = hint: every statute needs exactly one THEN clause
package errors
