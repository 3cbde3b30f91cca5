package lexer

import "github.com/HalmaiErik/utcn-imp/internal/source"

func (lx *Lexer) eof() bool {
	return lx.off >= len(lx.file.Content)
}

func (lx *Lexer) peekByte() byte {
	return lx.file.Content[lx.off]
}

// peekByteAt returns the byte n positions ahead, or 0 past the end.
func (lx *Lexer) peekByteAt(n int) byte {
	if lx.off+n >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.off+n]
}

// bump consumes one byte, keeping line/column in sync.
func (lx *Lexer) bump() byte {
	ch := lx.file.Content[lx.off]
	lx.off++
	if ch == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return ch
}

// loc captures the current position as a diagnostic location.
func (lx *Lexer) loc() source.Location {
	return source.Location{
		Name:   lx.file.Path,
		Line:   lx.line,
		Column: lx.col,
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDec(ch)
}

func isDec(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
