package lexer

import (
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// readString scans a double quoted string. The token value is the raw text
// between the quotes: recognized escapes are kept as written and a backslash
// before any other character is passed through.
func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	start := l.position
	l.readChar() // consume opening "

	for {
		switch {
		case l.atEOF():
			end := len(l.input)
			return token.Token{}, l.fail(errors.LexIncompleteString, end, "The string starts here", start, start+1).
				WithLabel("The code ends here", end, end+1)
		case l.ch == '\n':
			nl := l.position
			return token.Token{}, l.fail(errors.LexIncompleteString, nl, "The string starts here", start, start+1).
				WithLabel("The line ends here", nl, nl+1).
				WithNote("Strings cannot have newlines")
		case l.ch == '"':
			value := l.input[start+1 : l.position]
			l.readChar() // consume closing "
			return token.Token{Type: token.STRING, Literal: value, Pos: pos}, nil
		case l.ch == '\\':
			switch l.peekChar() {
			case 'n', '"', 'r', '\\', 't':
				l.readChar()
			}
			l.readChar()
		default:
			l.readChar()
		}
	}
}
