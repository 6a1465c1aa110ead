package lexer

import (
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// readNumber scans the longest valid numeric literal at the current
// position: decimal, hex (0x), octal (0o), binary (0b), floating point and
// scientific notation.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.position

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			return l.readPrefixed(pos, isHexDigit, errors.LexInvalidHexNumber, "Tried to scan an incomplete hex value")
		case 'o', 'O':
			return l.readPrefixed(pos, isOctalDigit, errors.LexInvalidOctalNumber, "Tried to scan an incomplete octal value")
		case 'b', 'B':
			return l.readPrefixed(pos, isBinaryDigit, errors.LexInvalidBinaryNumber, "Tried to scan an incomplete binary value")
		}
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	typ := token.INT
	if l.ch == '.' {
		dot := l.position
		next := l.peekChar()
		if next == 0 && l.readPosition >= len(l.input) {
			return token.Token{}, l.fail(errors.LexInvalidFloatingNumber, dot,
				"EOF when scanning a double number.", start, dot+1)
		}
		if !isDigit(next) {
			return token.Token{}, l.fail(errors.LexInvalidFloatingNumber, dot,
				"The character after the dot is not a number.", start, dot+1)
		}
		l.readChar() // consume .
		for isDigit(l.ch) {
			l.readChar()
		}
		typ = token.FLOAT
	}

	if l.ch == 'e' || l.ch == 'E' {
		exp := l.position
		l.readChar() // consume e
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return token.Token{}, l.fail(errors.LexInvalidScientificNumber, exp,
				"The exponent of a scientific number must have at least one digit.", start, l.position)
		}
		for isDigit(l.ch) {
			l.readChar()
		}
		typ = token.FLOAT
	}

	return token.Token{Type: typ, Literal: l.input[start:l.position], Pos: pos}, nil
}

// readPrefixed scans a 0x/0o/0b literal. At least one digit must follow the
// prefix.
func (l *Lexer) readPrefixed(pos token.Position, valid func(rune) bool, code errors.Code, message string) (token.Token, error) {
	start := l.position
	l.readChar() // consume 0
	l.readChar() // consume prefix letter

	if !valid(l.ch) {
		return token.Token{}, l.fail(code, start+2, message, start, start+2)
	}
	for valid(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.INT, Literal: l.input[start:l.position], Pos: pos}, nil
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isOctalDigit(ch rune) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}
