package parser

import (
	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// parseStmt dispatches on a single token of lookahead.
func (p *Parser) parseStmt() (ast.StmtID, error) {
	tk := p.lx.Peek()
	switch tk.Kind {
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwLet:
		return p.parseLetStmt()
	case token.LBrace:
		return p.parseBlockStmt()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return ast.NoStmtID, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return ast.NoStmtID, err
		}
		return p.b.Stmts.NewExpr(tk.Loc, expr), nil
	}
}

// parseBlockStmt parses '{' stmt* '}'. The braces are consumed atomically:
// a partial block never escapes the parser.
func (p *Parser) parseBlockStmt() (ast.StmtID, error) {
	lbrace, err := p.expect(token.LBrace)
	if err != nil {
		return ast.NoStmtID, err
	}
	var body []ast.StmtID
	for !p.at(token.RBrace) {
		stmt, err := p.parseStmt()
		if err != nil {
			return ast.NoStmtID, err
		}
		body = append(body, stmt)
	}
	p.advance() // '}'
	return p.b.Stmts.NewBlock(lbrace.Loc, body), nil
}

func (p *Parser) parseReturnStmt() (ast.StmtID, error) {
	kwTok := p.advance()
	expr, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewReturn(kwTok.Loc, expr), nil
}

func (p *Parser) parseWhileStmt() (ast.StmtID, error) {
	kwTok := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoStmtID, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoStmtID, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewWhile(kwTok.Loc, cond, body), nil
}

func (p *Parser) parseIfStmt() (ast.StmtID, error) {
	kwTok := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoStmtID, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoStmtID, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return ast.NoStmtID, err
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, err = p.parseStmt()
		if err != nil {
			return ast.NoStmtID, err
		}
	}
	return p.b.Stmts.NewIf(kwTok.Loc, cond, then, els), nil
}

// parseLetStmt parses 'let' IDENT ':' IDENT '=' expr ';'.
func (p *Parser) parseLetStmt() (ast.StmtID, error) {
	kwTok := p.advance()

	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.NoStmtID, err
	}
	typeTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return ast.NoStmtID, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewLet(kwTok.Loc, nameTok.Text, typeTok.Text, init), nil
}
