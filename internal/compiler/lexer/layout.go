package lexer

import (
	"fmt"

	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// readNewline consumes a newline together with any blank lines after it and
// emits the layout tokens for the next non blank line:
//
//	deeper:    NEWLINE INDENT
//	same:      NEWLINE
//	shallower: DEDENT... NEWLINE
//
// Nothing is emitted before the first token or after the last one; open
// levels are closed at EOF by Tokenize.
func (l *Lexer) readNewline() error {
	nl := l.currentPos()

	for {
		l.readChar() // consume \n
		width := 0
		for l.ch == ' ' || l.ch == '\t' {
			width++
			l.readChar()
		}
		if l.ch == '\r' && l.peekChar() == '\n' {
			l.readChar()
		}
		if l.ch == '\n' {
			continue
		}
		if l.atEOF() || len(l.tokens) == 0 {
			return nil
		}
		return l.indent(width, nl)
	}
}

func (l *Lexer) indent(width int, nl token.Position) error {
	newline := token.Token{Type: token.NEWLINE, Pos: nl}
	top := l.indents[len(l.indents)-1]

	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.tokens = append(l.tokens, newline, token.Token{Type: token.INDENT, Pos: l.currentPos()})
	case width == top:
		l.tokens = append(l.tokens, newline)
	default:
		for width < top {
			l.indents = l.indents[:len(l.indents)-1]
			l.tokens = append(l.tokens, token.Token{Type: token.DEDENT, Pos: nl})
			top = l.indents[len(l.indents)-1]
		}
		if width != top {
			start := l.position - width
			return l.fail(errors.LexInvalidIndentation, start,
				fmt.Sprintf("Indentation error: expected %d spaces, found %d", top, width),
				start, l.position).
				WithHelp("Indent this line like an enclosing line, or deeper than the previous one")
		}
		l.tokens = append(l.tokens, newline)
	}
	return nil
}
