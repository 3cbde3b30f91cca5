package parser

import (
	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// Expression grammar, lowest to highest binding. All operators are
// left-associative; call binds tighter than '*', so f(x)(y) chains.
//
//	equality := addsub ('==' addsub)*
//	addsub   := mul (('+'|'-') mul)*
//	mul      := call ('*' call)*
//	call     := term ('(' (expr (',' expr)*)? ')')*
//	term     := IDENT | INT

// parseExpr is the top-level expression entry point.
func (p *Parser) parseExpr() (ast.ExprID, error) {
	return p.parseEqualityExpr()
}

func (p *Parser) parseEqualityExpr() (ast.ExprID, error) {
	lhs, err := p.parseAddSubExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	for p.at(token.EqEq) {
		opTok := p.advance()
		rhs, err := p.parseAddSubExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		lhs = p.b.Exprs.NewBinary(opTok.Loc, ast.BinEquals, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseAddSubExpr() (ast.ExprID, error) {
	lhs, err := p.parseMulExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.BinAdd
		if p.at(token.Minus) {
			op = ast.BinSub
		}
		opTok := p.advance()
		rhs, err := p.parseMulExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		lhs = p.b.Exprs.NewBinary(opTok.Loc, op, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseMulExpr() (ast.ExprID, error) {
	lhs, err := p.parseCallExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	for p.at(token.Star) {
		opTok := p.advance()
		rhs, err := p.parseCallExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		lhs = p.b.Exprs.NewBinary(opTok.Loc, ast.BinMul, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseCallExpr() (ast.ExprID, error) {
	callee, err := p.parseTermExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	for p.at(token.LParen) {
		lparen := p.advance()

		var args []ast.ExprID
		if !p.at(token.RParen) {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return ast.NoExprID, err
				}
				args = append(args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.NoExprID, err
		}
		callee = p.b.Exprs.NewCall(lparen.Loc, callee, args)
	}
	return callee, nil
}

func (p *Parser) parseTermExpr() (ast.ExprID, error) {
	tk := p.lx.Peek()
	switch tk.Kind {
	case token.Ident:
		p.advance()
		return p.b.Exprs.NewRef(tk.Loc, tk.Text), nil
	case token.IntLit:
		p.advance()
		return p.b.Exprs.NewInt(tk.Loc, tk.Int), nil
	default:
		return ast.NoExprID, p.errorf(tk.Loc, "unexpected %s, expecting term", tk)
	}
}
