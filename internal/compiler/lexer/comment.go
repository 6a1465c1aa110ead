package lexer

import (
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// readLineComment scans up to, not including, the end of the line. The
// value keeps the leading slashes.
func (l *Lexer) readLineComment(pos token.Position) token.Token {
	start := l.position
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	return token.Token{Type: token.COMMENT, Literal: l.input[start:l.position], Pos: pos}
}

// readBlockComment scans a /* */ comment. Comments nest, so every inner /*
// needs its own */. The value is the text between the outermost delimiters.
func (l *Lexer) readBlockComment(pos token.Position) (token.Token, error) {
	start := l.position
	l.readChar() // consume /
	l.readChar() // consume *

	depth := 1
	for {
		switch {
		case l.atEOF():
			end := len(l.input)
			return token.Token{}, l.fail(errors.LexIncompleteMultilineComment, end, "The code ends here", end, end+1).
				WithLabel("The comment starts here", start, start+2).
				WithHelp("Close the comment with */")
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			depth++
		case l.ch == '*' && l.peekChar() == '/':
			l.readChar()
			l.readChar()
			depth--
			if depth == 0 {
				value := l.input[start+2 : l.position-2]
				return token.Token{Type: token.MULTILINE_COMMENT, Literal: value, Pos: pos}, nil
			}
		default:
			l.readChar()
		}
	}
}
