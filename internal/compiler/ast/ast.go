package ast

import "github.com/thp-lang/thp/internal/compiler/token"

// Node is the base interface for all AST nodes. Nodes point into the token
// slice they were parsed from; Span returns the byte range [start, end) they
// cover in the source.
type Node interface {
	TokenLiteral() string
	Span() (start, end int)
}

// Statement is a node that only appears as a module or block member
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value
type Expression interface {
	Node
	expressionNode()
}

// Module is the root node: the top level members of a source file, each
// either a Statement or an Expression.
type Module struct {
	Members []Node
}

func (m *Module) TokenLiteral() string { return "module" }
func (m *Module) Span() (int, int) {
	if len(m.Members) == 0 {
		return 0, 0
	}
	start, _ := m.Members[0].Span()
	_, end := m.Members[len(m.Members)-1].Span()
	return start, end
}

// ============ TYPES ============

// TypeRef is a datatype annotation: Int, Array[Int], Map[String, Int]
type TypeRef struct {
	Name   *token.Token
	Params []*TypeRef
	Close  *token.Token // closing ], nil without params
}

func (t *TypeRef) TokenLiteral() string { return t.Name.Literal }
func (t *TypeRef) Span() (int, int) {
	if t.Close != nil {
		return t.Name.Pos.Offset, t.Close.End()
	}
	return t.Name.Pos.Offset, t.Name.End()
}

// ============ STATEMENTS ============

// Binding declares a name: val Int x = 1, var y = 2, String s = "a"
type Binding struct {
	Keyword  *token.Token // val or var, nil when only a datatype is given
	Datatype *TypeRef     // nil when inferred
	Name     *token.Token
	Value    Expression
}

// Mutable reports whether the binding was declared with var.
func (b *Binding) Mutable() bool {
	return b.Keyword != nil && b.Keyword.Type == token.VAR
}

func (b *Binding) statementNode()       {}
func (b *Binding) TokenLiteral() string { return b.Name.Literal }
func (b *Binding) Span() (int, int) {
	start := b.Name.Pos.Offset
	switch {
	case b.Keyword != nil:
		start = b.Keyword.Pos.Offset
	case b.Datatype != nil:
		start, _ = b.Datatype.Span()
	}
	_, end := b.Value.Span()
	return start, end
}

// Param is one entry of a parameter list: Int count
type Param struct {
	Datatype *TypeRef
	Name     *token.Token
}

// FunctionDecl is fun name(params) -> Type { body }
type FunctionDecl struct {
	Fun        *token.Token
	Name       *token.Token
	Params     []*Param
	ReturnType *TypeRef // nil when the function returns nothing
	Body       *Block
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return f.Fun.Literal }
func (f *FunctionDecl) Span() (int, int) {
	_, end := f.Body.Span()
	return f.Fun.Pos.Offset, end
}

// Block is a braced list of members with its own scope
type Block struct {
	Open    *token.Token
	Members []Node
	Close   *token.Token
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return "{" }
func (b *Block) Span() (int, int)     { return b.Open.Pos.Offset, b.Close.End() }

// ElseIf is one else if branch of a Conditional
type ElseIf struct {
	Condition Expression
	Body      *Block
}

// Conditional is if cond { } else if cond { } else { }
type Conditional struct {
	If        *token.Token
	Condition Expression
	Then      *Block
	ElseIfs   []*ElseIf
	Else      *Block
}

func (c *Conditional) statementNode()       {}
func (c *Conditional) TokenLiteral() string { return c.If.Literal }
func (c *Conditional) Span() (int, int) {
	last := c.Then
	if len(c.ElseIfs) > 0 {
		last = c.ElseIfs[len(c.ElseIfs)-1].Body
	}
	if c.Else != nil {
		last = c.Else
	}
	_, end := last.Span()
	return c.If.Pos.Offset, end
}

// ForLoop is for value in collection { } or for key, value in collection { }
type ForLoop struct {
	For        *token.Token
	Key        *token.Token // nil with a single binding name
	Value      *token.Token
	Collection Expression
	Body       *Block
}

func (f *ForLoop) statementNode()       {}
func (f *ForLoop) TokenLiteral() string { return f.For.Literal }
func (f *ForLoop) Span() (int, int) {
	_, end := f.Body.Span()
	return f.For.Pos.Offset, end
}

// WhileLoop is while cond { }
type WhileLoop struct {
	While     *token.Token
	Condition Expression
	Body      *Block
}

func (w *WhileLoop) statementNode()       {}
func (w *WhileLoop) TokenLiteral() string { return w.While.Literal }
func (w *WhileLoop) Span() (int, int) {
	_, end := w.Body.Span()
	return w.While.Pos.Offset, end
}

// ============ EXPRESSIONS ============

type IntLiteral struct {
	Token *token.Token
}

func (i *IntLiteral) expressionNode()      {}
func (i *IntLiteral) TokenLiteral() string { return i.Token.Literal }
func (i *IntLiteral) Span() (int, int)     { return i.Token.Pos.Offset, i.Token.End() }

type FloatLiteral struct {
	Token *token.Token
}

func (f *FloatLiteral) expressionNode()      {}
func (f *FloatLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FloatLiteral) Span() (int, int)     { return f.Token.Pos.Offset, f.Token.End() }

// StringLiteral holds the raw text between the quotes, escapes unprocessed
type StringLiteral struct {
	Token *token.Token
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Span() (int, int)     { return s.Token.Pos.Offset, s.Token.End() }

type BoolLiteral struct {
	Token *token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Span() (int, int)     { return b.Token.Pos.Offset, b.Token.End() }

type Identifier struct {
	Token *token.Token
}

func (i *Identifier) Name() string         { return i.Token.Literal }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Span() (int, int)     { return i.Token.Pos.Offset, i.Token.End() }

// UnaryExpr is !x or -x
type UnaryExpr struct {
	Operator *token.Token
	Operand  Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Operator.Literal }
func (u *UnaryExpr) Span() (int, int) {
	_, end := u.Operand.Span()
	return u.Operator.Pos.Offset, end
}

type BinaryExpr struct {
	Left     Expression
	Operator *token.Token
	Right    Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Operator.Literal }
func (b *BinaryExpr) Span() (int, int) {
	start, _ := b.Left.Span()
	_, end := b.Right.Span()
	return start, end
}

// CallExpr is callee(arguments)
type CallExpr struct {
	Callee    Expression
	Arguments []Expression
	Close     *token.Token
}

func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) TokenLiteral() string { return "call" }
func (c *CallExpr) Span() (int, int) {
	start, _ := c.Callee.Span()
	return start, c.Close.End()
}

// ArrayLiteral is [a, b, c]
type ArrayLiteral struct {
	Open     *token.Token
	Elements []Expression
	Close    *token.Token
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return "[" }
func (a *ArrayLiteral) Span() (int, int)     { return a.Open.Pos.Offset, a.Close.End() }

// IndexExpr is target[index]
type IndexExpr struct {
	Target Expression
	Index  Expression
	Close  *token.Token
}

func (i *IndexExpr) expressionNode()      {}
func (i *IndexExpr) TokenLiteral() string { return "[" }
func (i *IndexExpr) Span() (int, int) {
	start, _ := i.Target.Span()
	return start, i.Close.End()
}

// MemberExpr is target.member
type MemberExpr struct {
	Target Expression
	Member *token.Token
}

func (m *MemberExpr) expressionNode()      {}
func (m *MemberExpr) TokenLiteral() string { return "." }
func (m *MemberExpr) Span() (int, int) {
	start, _ := m.Target.Span()
	return start, m.Member.End()
}

// Assignment is name = value, or a compound form such as name += value
type Assignment struct {
	Target   *token.Token
	Operator *token.Token
	Value    Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Operator.Literal }
func (a *Assignment) Span() (int, int) {
	_, end := a.Value.Span()
	return a.Target.Pos.Offset, end
}

// BinaryOperator returns the operator a compound assignment applies, or ""
// for a plain =.
func (a *Assignment) BinaryOperator() string {
	op := a.Operator.Literal
	if op == "=" {
		return ""
	}
	return op[:len(op)-1]
}
