package parser

import (
	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// parseFuncItem parses a declaration introduced by 'func':
//
//	func name(a: type, ...): type { ... }        user function
//	func name(a: type, ...): type = "primitive"; native prototype
func (p *Parser) parseFuncItem() (ast.ItemID, error) {
	kwTok := p.advance()

	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoItemID, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoItemID, err
	}

	params, err := p.parseParams()
	if err != nil {
		return ast.NoItemID, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoItemID, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.NoItemID, err
	}
	retTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoItemID, err
	}

	// '=' introduces a primitive binding: the prototype forwards to a named
	// native runtime function instead of carrying a body.
	if p.at(token.Assign) {
		p.advance()
		primTok, err := p.expect(token.StringLit)
		if err != nil {
			return ast.NoItemID, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return ast.NoItemID, err
		}
		return p.b.Items.NewProto(kwTok.Loc, ast.ItemProtoData{
			Name:       nameTok.Text,
			Params:     params,
			ReturnType: retTok.Text,
			Primitive:  primTok.Text,
		}), nil
	}

	body, err := p.parseBlockStmt()
	if err != nil {
		return ast.NoItemID, err
	}
	return p.b.Items.NewFunc(kwTok.Loc, ast.ItemFuncData{
		Name:       nameTok.Text,
		Params:     params,
		ReturnType: retTok.Text,
		Body:       body,
	}), nil
}

// parseParams parses a possibly empty, comma-separated 'name: type' list.
// The closing ')' is left for the caller.
func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.at(token.RParen) {
		return params, nil
	}
	for {
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Text, Type: typeTok.Text})

		if !p.at(token.Comma) {
			return params, nil
		}
		p.advance()
	}
}
