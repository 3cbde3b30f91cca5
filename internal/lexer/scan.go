package lexer

import (
	"strconv"
	"strings"

	"github.com/HalmaiErik/utcn-imp/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	loc := lx.loc()
	start := lx.off
	for !lx.eof() && isIdentContinue(lx.peekByte()) {
		lx.bump()
	}
	text := string(lx.file.Content[start:lx.off])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Loc: loc}
	}
	return token.Token{Kind: token.Ident, Text: text, Loc: loc}
}

func (lx *Lexer) scanNumber() token.Token {
	loc := lx.loc()
	start := lx.off
	for !lx.eof() && isDec(lx.peekByte()) {
		lx.bump()
	}
	text := string(lx.file.Content[start:lx.off])
	val, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		// Only overflow is possible here: the text is all digits.
		return token.Token{Kind: token.Invalid, Text: text, Loc: loc}
	}
	return token.Token{Kind: token.IntLit, Int: val, Loc: loc}
}

func (lx *Lexer) scanString() token.Token {
	loc := lx.loc()
	lx.bump() // opening quote

	var sb strings.Builder
	for !lx.eof() {
		switch ch := lx.bump(); ch {
		case '"':
			return token.Token{Kind: token.StringLit, Text: sb.String(), Loc: loc}
		case '\n':
			// Strings do not span lines.
			return token.Token{Kind: token.Invalid, Text: sb.String(), Loc: loc}
		case '\\':
			if lx.eof() {
				return token.Token{Kind: token.Invalid, Text: sb.String(), Loc: loc}
			}
			switch esc := lx.bump(); esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\', '"':
				sb.WriteByte(esc)
			default:
				return token.Token{Kind: token.Invalid, Text: sb.String(), Loc: loc}
			}
		default:
			sb.WriteByte(ch)
		}
	}
	// Ran off the end of the file inside the literal.
	return token.Token{Kind: token.Invalid, Text: sb.String(), Loc: loc}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	loc := lx.loc()
	ch := lx.bump()

	var kind token.Kind
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '=':
		if !lx.eof() && lx.peekByte() == '=' {
			lx.bump()
			kind = token.EqEq
		} else {
			kind = token.Assign
		}
	default:
		return token.Token{Kind: token.Invalid, Text: string(ch), Loc: loc}
	}
	return token.Token{Kind: kind, Loc: loc}
}
