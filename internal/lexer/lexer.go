package lexer

import (
	"github.com/HalmaiErik/utcn-imp/internal/source"
	"github.com/HalmaiErik/utcn-imp/internal/token"
)

// Lexer turns a source file into a stream of tokens with one token of
// lookahead. After EOF it always returns EOF.
type Lexer struct {
	file *source.File
	off  int
	line uint32
	col  uint32
	look *token.Token
}

// New creates a lexer positioned at the start of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file: file,
		line: 1,
		col:  1,
	}
}

// Next consumes and returns the next significant token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Loc: lx.loc()}
	}

	ch := lx.peekByte()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// skipTrivia advances past whitespace and '//' line comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		switch ch := lx.peekByte(); {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			lx.bump()
		case ch == '/' && lx.peekByteAt(1) == '/':
			for !lx.eof() && lx.peekByte() != '\n' {
				lx.bump()
			}
		default:
			return
		}
	}
}
