// Package token defines lexical tokens for SDL source text.
package token

// Type represents a lexical token type.
type Type uint8

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Structure keywords
	STATUTE
	IMPORT
	AS

	// Clause keywords
	WHEN
	THEN
	UNLESS
	DISCRETION
	EXCEPTION
	AMENDMENT
	SUPERSEDES
	REQUIRES
	DEFAULT
	JURISDICTION
	VERSION
	EFFECTIVE_DATE
	EXPIRY_DATE

	// Effect keywords
	GRANT
	OBLIGATION
	PROHIBIT
	REVOKE

	// Condition keywords
	AND
	OR
	NOT
	HAS
	BETWEEN
	IN
	LIKE
	MATCHES
	IN_RANGE
	NOT_IN_RANGE
	CURRENT_DATE
	DATE_FIELD

	// Literals
	IDENT  // bare or dotted identifier: age, module.field
	STRING // double-quoted string
	NUMBER // signed integer
	DATE   // bare YYYY-MM-DD literal

	// Operators
	GTE // >=
	LTE // <=
	EQ  // ==
	NEQ // !=
	GT  // >
	LT  // <

	// Punctuation
	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	COLON      // :
	COMMA      // ,
	DOT        // .
	ASSIGN     // =
	RANGE      // ..
	RANGE_EXCL // ...
)

var names = map[Type]string{
	ILLEGAL:        "illegal token",
	EOF:            "end of input",
	STATUTE:        "STATUTE",
	IMPORT:         "IMPORT",
	AS:             "AS",
	WHEN:           "WHEN",
	THEN:           "THEN",
	UNLESS:         "UNLESS",
	DISCRETION:     "DISCRETION",
	EXCEPTION:      "EXCEPTION",
	AMENDMENT:      "AMENDMENT",
	SUPERSEDES:     "SUPERSEDES",
	REQUIRES:       "REQUIRES",
	DEFAULT:        "DEFAULT",
	JURISDICTION:   "JURISDICTION",
	VERSION:        "VERSION",
	EFFECTIVE_DATE: "EFFECTIVE_DATE",
	EXPIRY_DATE:    "EXPIRY_DATE",
	GRANT:          "GRANT",
	OBLIGATION:     "OBLIGATION",
	PROHIBIT:       "PROHIBIT",
	REVOKE:         "REVOKE",
	AND:            "AND",
	OR:             "OR",
	NOT:            "NOT",
	HAS:            "HAS",
	BETWEEN:        "BETWEEN",
	IN:             "IN",
	LIKE:           "LIKE",
	MATCHES:        "MATCHES",
	IN_RANGE:       "IN_RANGE",
	NOT_IN_RANGE:   "NOT_IN_RANGE",
	CURRENT_DATE:   "CURRENT_DATE",
	DATE_FIELD:     "DATE_FIELD",
	IDENT:          "identifier",
	STRING:         "string",
	NUMBER:         "number",
	DATE:           "date",
	GTE:            ">=",
	LTE:            "<=",
	EQ:             "==",
	NEQ:            "!=",
	GT:             ">",
	LT:             "<",
	LPAREN:         "(",
	RPAREN:         ")",
	LBRACE:         "{",
	RBRACE:         "}",
	COLON:          ":",
	COMMA:          ",",
	DOT:            ".",
	ASSIGN:         "=",
	RANGE:          "..",
	RANGE_EXCL:     "...",
}

// String returns a human-readable name for the token type.
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "unknown token"
}

// IsKeyword returns true if the token type is a reserved keyword.
func (t Type) IsKeyword() bool {
	return t >= STATUTE && t <= DATE_FIELD
}

// IsComparisonOp returns true for the comparison operator tokens.
func (t Type) IsComparisonOp() bool {
	return t >= GTE && t <= LT
}

// IsEffect returns true for the effect keyword tokens.
func (t Type) IsEffect() bool {
	return t >= GRANT && t <= REVOKE
}

// keywords maps every accepted spelling, including deprecated and alias
// forms, to its token type. The lexer preserves the original spelling in
// the token value so the parser can warn on deprecated forms.
var keywords = map[string]Type{
	"STATUTE":        STATUTE,
	"IMPORT":         IMPORT,
	"AS":             AS,
	"WHEN":           WHEN,
	"THEN":           THEN,
	"UNLESS":         UNLESS,
	"DISCRETION":     DISCRETION,
	"EXCEPTION":      EXCEPTION,
	"EXCEPT":         EXCEPTION, // deprecated
	"AMENDMENT":      AMENDMENT,
	"AMENDS":         AMENDMENT, // deprecated
	"SUPERSEDES":     SUPERSEDES,
	"REPLACES":       SUPERSEDES, // deprecated
	"REQUIRES":       REQUIRES,
	"DEFAULT":        DEFAULT,
	"JURISDICTION":   JURISDICTION,
	"VERSION":        VERSION,
	"EFFECTIVE_DATE": EFFECTIVE_DATE,
	"EFFECTIVE":      EFFECTIVE_DATE,
	"EXPIRY_DATE":    EXPIRY_DATE,
	"EXPIRES":        EXPIRY_DATE,
	"GRANT":          GRANT,
	"OBLIGATION":     OBLIGATION,
	"PROHIBIT":       PROHIBIT,
	"REVOKE":         REVOKE,
	"AND":            AND,
	"OR":             OR,
	"NOT":            NOT,
	"HAS":            HAS,
	"BETWEEN":        BETWEEN,
	"IN":             IN,
	"LIKE":           LIKE,
	"MATCHES":        MATCHES,
	"MATCH":          MATCHES,
	"IN_RANGE":       IN_RANGE,
	"NOT_IN_RANGE":   NOT_IN_RANGE,
	"CURRENT_DATE":   CURRENT_DATE,
	"NOW":            CURRENT_DATE,
	"TODAY":          CURRENT_DATE,
	"DATE_FIELD":     DATE_FIELD,
}

// deprecated maps legacy spellings to their modern replacement.
var deprecated = map[string]string{
	"EXCEPT":   "EXCEPTION",
	"AMENDS":   "AMENDMENT",
	"REPLACES": "SUPERSEDES",
}

// Lookup returns the keyword token type for an identifier spelling, or
// IDENT if the spelling is not a keyword.
func Lookup(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsDeprecatedSpelling reports whether the spelling is a legacy keyword
// form, and if so, the modern spelling to suggest.
func IsDeprecatedSpelling(spelling string) (string, bool) {
	modern, ok := deprecated[spelling]
	return modern, ok
}

// Keywords returns the canonical keyword spellings, for typo suggestions.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for spelling := range keywords {
		out = append(out, spelling)
	}
	return out
}
