package token

import "encoding/json"

type TokenType string

// Position locates a token in the source. Offset is a byte offset, Line and
// Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

const (
	// Special
	EOF TokenType = "EOF"

	// Literals
	INT    TokenType = "Int"
	FLOAT  TokenType = "Float"
	STRING TokenType = "String"

	IDENT    TokenType = "Identifier"
	DATATYPE TokenType = "Datatype"
	OPERATOR TokenType = "Operator"

	COMMENT           TokenType = "Comment"
	MULTILINE_COMMENT TokenType = "MultilineComment"

	// Delimiters
	COMMA    TokenType = "Comma"
	LPAREN   TokenType = "LeftParen"
	RPAREN   TokenType = "RightParen"
	LBRACE   TokenType = "LeftBrace"
	RBRACE   TokenType = "RightBrace"
	LBRACKET TokenType = "LeftBracket"
	RBRACKET TokenType = "RightBracket"

	// Layout
	NEWLINE TokenType = "NewLine"
	INDENT  TokenType = "INDENT"
	DEDENT  TokenType = "DEDENT"

	// Keywords
	VAL   TokenType = "VAL"
	VAR   TokenType = "VAR"
	FUN   TokenType = "FUN"
	IF    TokenType = "IF"
	ELSE  TokenType = "ELSE"
	FOR   TokenType = "FOR"
	IN    TokenType = "IN"
	WHILE TokenType = "WHILE"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"val":   VAL,
	"var":   VAR,
	"fun":   FUN,
	"if":    IF,
	"else":  ELSE,
	"for":   FOR,
	"in":    IN,
	"while": WHILE,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent classifies a scanned word: keywords by exact match, words
// starting with an uppercase ASCII letter as datatypes, the rest as
// identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident != "" && ident[0] >= 'A' && ident[0] <= 'Z' {
		return DATATYPE
	}
	return IDENT
}

// IsLayout reports whether t is synthesized by the lexer from whitespace.
func (t TokenType) IsLayout() bool {
	return t == NEWLINE || t == INDENT || t == DEDENT
}

// IsComment reports whether t is a line or block comment.
func (t TokenType) IsComment() bool {
	return t == COMMENT || t == MULTILINE_COMMENT
}

// End returns the offset right after the token. Strings and block comments
// store their value without delimiters, so the delimiter width is added back.
func (t *Token) End() int {
	end := t.Pos.Offset + len(t.Literal)
	switch t.Type {
	case STRING:
		end += 2
	case MULTILINE_COMMENT:
		end += 4
	case NEWLINE:
		end++
	}
	return end
}

// Is reports whether t is an operator token spelled op.
func (t *Token) Is(op string) bool {
	return t.Type == OPERATOR && t.Literal == op
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        TokenType `json:"token_type"`
		Value       string    `json:"value"`
		Position    int       `json:"position"`
		EndPosition int       `json:"end_position"`
	}{t.Type, t.Literal, t.Pos.Offset, t.End()})
}
