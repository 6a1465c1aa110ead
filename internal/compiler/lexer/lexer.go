package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

type Lexer struct {
	input        string
	position     int  // current offset in input (bytes)
	readPosition int  // next reading position (bytes)
	ch           rune // current character
	line         int  // current line (1-based)
	column       int  // current column (1-based)

	indents []int // widths of the open indentation levels, bottom is 0
	tokens  []token.Token
}

func New(input string) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		column:  0,
		indents: []int{0},
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The first lexical error aborts the scan and
// is returned as a *errors.Diagnostic.
func Tokenize(input string) ([]token.Token, error) {
	return New(input).Tokenize()
}

func (l *Lexer) Tokenize() ([]token.Token, error) {
	for {
		l.skipWhitespace()
		if l.atEOF() {
			break
		}
		if l.ch == '\n' {
			if err := l.readNewline(); err != nil {
				return nil, err
			}
			continue
		}
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.tokens = append(l.tokens, token.Token{Type: token.DEDENT, Pos: l.currentPos()})
	}
	l.tokens = append(l.tokens, token.Token{Type: token.EOF, Pos: l.currentPos()})
	return l.tokens, nil
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

func (l *Lexer) fail(code errors.Code, offset int, message string, start, end int) *errors.Diagnostic {
	return errors.New(errors.PhaseLexer, code, offset, message, start, end)
}

// skipWhitespace skips spaces, tabs and carriage returns, never newlines
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) nextToken() (token.Token, error) {
	pos := l.currentPos()

	switch {
	case isDigit(l.ch):
		return l.readNumber(pos)
	case isLetter(l.ch):
		word := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(word), Literal: word, Pos: pos}, nil
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '/' && l.peekChar() == '/':
		return l.readLineComment(pos), nil
	case l.ch == '/' && l.peekChar() == '*':
		return l.readBlockComment(pos)
	case isOperatorChar(l.ch):
		return l.readOperator(pos), nil
	}

	var typ token.TokenType
	switch l.ch {
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case '{':
		typ = token.LBRACE
	case '}':
		typ = token.RBRACE
	case '[':
		typ = token.LBRACKET
	case ']':
		typ = token.RBRACKET
	case ',':
		typ = token.COMMA
	default:
		size := utf8.RuneLen(l.ch)
		if size < 1 {
			size = 1
		}
		return token.Token{}, l.fail(errors.LexUnrecognizedCharacter, pos.Offset,
			fmt.Sprintf("Unrecognized character `%c` (escaped: `%s`)", l.ch, escape(l.ch)),
			pos.Offset, pos.Offset+size)
	}
	tok := token.Token{Type: typ, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok, nil
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	start := l.position
	for isOperatorChar(l.ch) {
		// a comment may follow an operator without a space
		if l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '*') {
			break
		}
		l.readChar()
	}
	return token.Token{Type: token.OPERATOR, Literal: l.input[start:l.position], Pos: pos}
}

func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isOperatorChar(ch rune) bool {
	return ch != 0 && strings.ContainsRune(`+-=*!\/|@#$~%&?<>^.:`, ch)
}

func escape(ch rune) string {
	q := fmt.Sprintf("%+q", ch)
	return q[1 : len(q)-1]
}
