package ast

import (
	"testing"

	"github.com/thp-lang/thp/internal/compiler/token"
)

func tok(typ token.TokenType, lit string, offset int) *token.Token {
	return &token.Token{Type: typ, Literal: lit, Pos: token.Position{Offset: offset}}
}

func TestTokenLiterals(t *testing.T) {
	x := &Identifier{Token: tok(token.IDENT, "x", 0)}
	one := &IntLiteral{Token: tok(token.INT, "1", 4)}
	block := &Block{Open: tok(token.LBRACE, "{", 10), Close: tok(token.RBRACE, "}", 12)}

	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"Module", &Module{}, "module"},
		{"Binding", &Binding{Name: tok(token.IDENT, "total", 4), Value: one}, "total"},
		{"FunctionDecl", &FunctionDecl{Fun: tok(token.FUN, "fun", 0), Body: block}, "fun"},
		{"Block", block, "{"},
		{"Conditional", &Conditional{If: tok(token.IF, "if", 0), Then: block}, "if"},
		{"ForLoop", &ForLoop{For: tok(token.FOR, "for", 0), Body: block}, "for"},
		{"WhileLoop", &WhileLoop{While: tok(token.WHILE, "while", 0), Body: block}, "while"},
		{"Identifier", x, "x"},
		{"IntLiteral", one, "1"},
		{"FloatLiteral", &FloatLiteral{Token: tok(token.FLOAT, "3.14", 0)}, "3.14"},
		{"StringLiteral", &StringLiteral{Token: tok(token.STRING, "hello", 0)}, "hello"},
		{"BoolLiteral", &BoolLiteral{Token: tok(token.TRUE, "true", 0), Value: true}, "true"},
		{"UnaryExpr", &UnaryExpr{Operator: tok(token.OPERATOR, "!", 0), Operand: x}, "!"},
		{"BinaryExpr", &BinaryExpr{Left: x, Operator: tok(token.OPERATOR, "+", 2), Right: one}, "+"},
		{"CallExpr", &CallExpr{Callee: x}, "call"},
		{"ArrayLiteral", &ArrayLiteral{}, "["},
		{"IndexExpr", &IndexExpr{Target: x}, "["},
		{"MemberExpr", &MemberExpr{Target: x}, "."},
		{"Assignment", &Assignment{Operator: tok(token.OPERATOR, "+=", 2)}, "+="},
		{"TypeRef", &TypeRef{Name: tok(token.DATATYPE, "Int", 0)}, "Int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.TokenLiteral(); got != tt.expected {
				t.Errorf("TokenLiteral() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	// val Int x = a + 10
	val := tok(token.VAL, "val", 0)
	datatype := &TypeRef{Name: tok(token.DATATYPE, "Int", 4)}
	name := tok(token.IDENT, "x", 8)
	sum := &BinaryExpr{
		Left:     &Identifier{Token: tok(token.IDENT, "a", 12)},
		Operator: tok(token.OPERATOR, "+", 14),
		Right:    &IntLiteral{Token: tok(token.INT, "10", 16)},
	}

	tests := []struct {
		name       string
		node       Node
		start, end int
	}{
		{"binary", sum, 12, 18},
		{"binding with keyword", &Binding{Keyword: val, Datatype: datatype, Name: name, Value: sum}, 0, 18},
		{"binding with datatype only", &Binding{Datatype: datatype, Name: name, Value: sum}, 4, 18},
		{"string includes quotes", &StringLiteral{Token: tok(token.STRING, "hi", 3)}, 3, 7},
		{"unary", &UnaryExpr{Operator: tok(token.OPERATOR, "-", 11), Operand: sum}, 11, 18},
		{"call", &CallExpr{Callee: sum.Left, Close: tok(token.RPAREN, ")", 20)}, 12, 21},
		{"generic type", &TypeRef{Name: tok(token.DATATYPE, "Array", 0), Close: tok(token.RBRACKET, "]", 9)}, 0, 10},
		{"empty module", &Module{}, 0, 0},
		{"module", &Module{Members: []Node{sum, &Identifier{Token: tok(token.IDENT, "b", 30)}}}, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.node.Span()
			if start != tt.start || end != tt.end {
				t.Errorf("Span() = (%d, %d), want (%d, %d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestBindingMutable(t *testing.T) {
	value := &IntLiteral{Token: tok(token.INT, "1", 8)}
	tests := []struct {
		keyword  *token.Token
		expected bool
	}{
		{tok(token.VAR, "var", 0), true},
		{tok(token.VAL, "val", 0), false},
		{nil, false},
	}
	for _, tt := range tests {
		b := &Binding{Keyword: tt.keyword, Name: tok(token.IDENT, "x", 4), Value: value}
		if b.Mutable() != tt.expected {
			t.Errorf("Mutable() with %v = %v, want %v", tt.keyword, b.Mutable(), tt.expected)
		}
	}
}

func TestAssignmentBinaryOperator(t *testing.T) {
	tests := map[string]string{"=": "", "+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%"}
	for op, expected := range tests {
		a := &Assignment{Operator: tok(token.OPERATOR, op, 2)}
		if got := a.BinaryOperator(); got != expected {
			t.Errorf("BinaryOperator() for %q = %q, want %q", op, got, expected)
		}
	}
}

func TestNodeKinds(t *testing.T) {
	var _ Statement = &Binding{}
	var _ Statement = &FunctionDecl{}
	var _ Statement = &Conditional{}
	var _ Statement = &ForLoop{}
	var _ Statement = &WhileLoop{}
	var _ Statement = &Block{}

	var _ Expression = &IntLiteral{}
	var _ Expression = &FloatLiteral{}
	var _ Expression = &StringLiteral{}
	var _ Expression = &BoolLiteral{}
	var _ Expression = &Identifier{}
	var _ Expression = &UnaryExpr{}
	var _ Expression = &BinaryExpr{}
	var _ Expression = &CallExpr{}
	var _ Expression = &ArrayLiteral{}
	var _ Expression = &IndexExpr{}
	var _ Expression = &MemberExpr{}
	var _ Expression = &Assignment{}
}
