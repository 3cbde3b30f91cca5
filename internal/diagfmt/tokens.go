package diagfmt

import (
	"fmt"
	"io"

	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// FormatTokens writes one line per token: location, then how diagnostics
// would quote it.
func FormatTokens(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", tok.Loc, tok); err != nil {
			return err
		}
	}
	return nil
}
