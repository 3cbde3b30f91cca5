package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, unterminated
	// string, overflowing integer literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal token.
	IntLit
	// StringLit represents a string literal token.
	StringLit

	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Colon represents ':'.
	Colon // :
	// Semicolon represents ';'.
	Semicolon // ;
	// Comma represents ','.
	Comma // ,

	// Plus represents the '+' operator.
	Plus // +
	// Minus represents the '-' operator.
	Minus // -
	// Star represents the '*' operator.
	Star // *
	// Assign represents the '=' operator.
	Assign // =
	// EqEq represents the '==' operator.
	EqEq // ==
)

var kindNames = [...]string{
	Invalid:   "invalid token",
	EOF:       "end of input",
	Ident:     "identifier",
	IntLit:    "integer literal",
	StringLit: "string literal",
	KwFunc:    "'func'",
	KwLet:     "'let'",
	KwIf:      "'if'",
	KwElse:    "'else'",
	KwWhile:   "'while'",
	KwReturn:  "'return'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Colon:     "':'",
	Semicolon: "';'",
	Comma:     "','",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Assign:    "'='",
	EqEq:      "'=='",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown token kind"
}
