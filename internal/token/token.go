package token

import (
	"fmt"

	"github.com/HalmaiErik/utcn-imp/internal/source"
)

// Token represents a single source token with its location.
// Text holds the identifier or string payload; Int holds the value of an
// integer literal. Tokens are ephemeral: the parser keeps at most one.
type Token struct {
	Kind Kind
	Text string
	Int  uint64
	Loc  source.Location
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFunc, KwLet, KwIf, KwElse, KwWhile, KwReturn:
		return true
	default:
		return false
	}
}

// String renders the token the way diagnostics quote it.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case IntLit:
		return fmt.Sprintf("integer '%d'", t.Int)
	case StringLit:
		return fmt.Sprintf("string \"%s\"", t.Text)
	case Invalid:
		if t.Text != "" {
			return fmt.Sprintf("invalid token '%s'", t.Text)
		}
		return "invalid token"
	default:
		return t.Kind.String()
	}
}
