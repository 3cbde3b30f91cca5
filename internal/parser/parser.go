package parser

import (
	"fmt"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/lexer"
	"github.com/HalmaiErik/utcn-imp/internal/source"
	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// Error is a syntax error at a known source location. The first error aborts
// the whole parse; there is no recovery and no partial module.
type Error struct {
	Loc source.Location
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Loc, e.Msg)
}

// Parser builds a module from a token stream. It holds no state beyond the
// token source and the arena builder the nodes go into.
type Parser struct {
	lx *lexer.Lexer
	b  *ast.Builder
}

// New creates a parser reading from lx and allocating into b.
func New(lx *lexer.Lexer, b *ast.Builder) *Parser {
	return &Parser{lx: lx, b: b}
}

// ParseModule parses a whole module: a sequence of function declarations and
// top-level statements, in source order. On failure it returns a *Error and
// no module.
func (p *Parser) ParseModule() (*ast.Module, error) {
	m := &ast.Module{}
	for !p.at(token.EOF) {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, item)
	}
	return m, nil
}

// parseItem dispatches on the first token: 'func' introduces a declaration,
// anything else is a top-level statement.
func (p *Parser) parseItem() (ast.ItemID, error) {
	tk := p.lx.Peek()
	if tk.Kind == token.KwFunc {
		return p.parseFuncItem()
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return ast.NoItemID, err
	}
	return p.b.Items.NewStmt(tk.Loc, stmt), nil
}

// at reports whether the next token has kind k.
func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance consumes and returns the next token.
func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

// expect consumes the next token and asserts its kind.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tk := p.lx.Peek()
	if tk.Kind != k {
		return token.Token{}, p.errorf(tk.Loc, "unexpected %s, expecting %s", tk, k)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(loc source.Location, format string, args ...any) error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
