package generator

import (
	"strings"

	"github.com/thp-lang/thp/internal/compiler/ast"
)

// phpOperators renames THP operators that are spelled differently in PHP.
// Both sides of a THP comparison have the same type, so equality is strict.
var phpOperators = map[string]string{
	"++": ".",
	"==": "===",
	"!=": "!==",
}

// precedence of the PHP binary operators, higher binds tighter
var precedence = map[string]int{
	"===": 1, "!==": 1,
	"<": 2, "<=": 2, ">": 2, ">=": 2,
	".": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5,
}

// nonAssociative PHP operators cannot be chained without parentheses
var nonAssociative = map[string]bool{
	"===": true, "!==": true, "<": true, "<=": true, ">": true, ">=": true,
}

func phpOperator(op string) string {
	if php, ok := phpOperators[op]; ok {
		return php
	}
	return op
}

func (g *Generator) expr(e ast.Expression) (string, error) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return e.Token.Literal, nil
	case *ast.FloatLiteral:
		return e.Token.Literal, nil
	case *ast.StringLiteral:
		return phpString(e.Token.Literal), nil
	case *ast.BoolLiteral:
		if e.Value {
			return "true", nil
		}
		return "false", nil
	case *ast.Identifier:
		return "$" + e.Name(), nil

	case *ast.UnaryExpr:
		operand, err := g.expr(e.Operand)
		if err != nil {
			return "", err
		}
		switch e.Operand.(type) {
		case *ast.BinaryExpr, *ast.UnaryExpr:
			operand = "(" + operand + ")"
		}
		return e.Operator.Literal + operand, nil

	case *ast.BinaryExpr:
		return g.binary(e)

	case *ast.CallExpr:
		args := make([]string, len(e.Arguments))
		for i, arg := range e.Arguments {
			s, err := g.expr(arg)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		var callee string
		if ident, ok := e.Callee.(*ast.Identifier); ok {
			// functions are not variables in PHP
			callee = ident.Name()
		} else {
			s, err := g.target(e.Callee)
			if err != nil {
				return "", err
			}
			callee = s
		}
		return callee + "(" + strings.Join(args, ", ") + ")", nil

	case *ast.ArrayLiteral:
		elements := make([]string, len(e.Elements))
		for i, element := range e.Elements {
			s, err := g.expr(element)
			if err != nil {
				return "", err
			}
			elements[i] = s
		}
		return "[" + strings.Join(elements, ", ") + "]", nil

	case *ast.IndexExpr:
		target, err := g.target(e.Target)
		if err != nil {
			return "", err
		}
		index, err := g.expr(e.Index)
		if err != nil {
			return "", err
		}
		return target + "[" + index + "]", nil

	case *ast.MemberExpr:
		target, err := g.target(e.Target)
		if err != nil {
			return "", err
		}
		return target + "->" + e.Member.Literal, nil
	}

	return "", unsupported(e)
}

// phpString quotes a THP string value for PHP. The escapes THP recognizes
// mean the same in PHP and are kept; any other backslash is literal text in
// THP and is doubled, so PHP does not decode \x41 or \0. $ is escaped to
// prevent interpolation.
func phpString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value) && strings.IndexByte(`n"rt\`, value[i+1]) >= 0:
			b.WriteByte(c)
			b.WriteByte(value[i+1])
			i++
		case c == '\\':
			b.WriteString(`\\`)
		case c == '$':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// target renders the left side of a call, index or member access.
func (g *Generator) target(e ast.Expression) (string, error) {
	s, err := g.expr(e)
	if err != nil {
		return "", err
	}
	switch e.(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr:
		return "(" + s + ")", nil
	}
	return s, nil
}

func (g *Generator) binary(e *ast.BinaryExpr) (string, error) {
	op := phpOperator(e.Operator.Literal)
	prec := precedence[op]

	left, err := g.expr(e.Left)
	if err != nil {
		return "", err
	}
	if l, ok := e.Left.(*ast.BinaryExpr); ok {
		lop := phpOperator(l.Operator.Literal)
		if precedence[lop] < prec || precedence[lop] == prec && nonAssociative[op] {
			left = "(" + left + ")"
		}
	}

	right, err := g.expr(e.Right)
	if err != nil {
		return "", err
	}
	if r, ok := e.Right.(*ast.BinaryExpr); ok {
		if precedence[phpOperator(r.Operator.Literal)] <= prec {
			right = "(" + right + ")"
		}
	}

	return left + " " + op + " " + right, nil
}
