package semantic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/types"
)

// operand is a checked expression: its type and where it is
type operand struct {
	typ        types.Type
	start, end int
}

func typed(expr ast.Expression, scope *types.Scope) (operand, *errors.Diagnostic) {
	typ, d := typeOf(expr, scope)
	if d != nil {
		return operand{}, d
	}
	start, end := expr.Span()
	return operand{typ, start, end}, nil
}

// typeOf checks expr and returns its type.
func typeOf(expr ast.Expression, scope *types.Scope) (types.Type, *errors.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return types.Int, nil
	case *ast.FloatLiteral:
		return types.Float, nil
	case *ast.StringLiteral:
		return types.String, nil
	case *ast.BoolLiteral:
		return types.Bool, nil

	case *ast.Identifier:
		sym, d := reference(e, scope)
		if d != nil {
			return nil, d
		}
		if sym.IsFunction() {
			return nil, semanticError(errors.CompilerTODO, e.Token.Pos.Offset, e.Token.End(),
				fmt.Sprintf("`%s` is a function, functions can only be called for now", e.Name())).
				WithNote("Functions cannot be used as values yet")
		}
		return sym.Type, nil

	case *ast.UnaryExpr:
		return unary(e, scope)

	case *ast.BinaryExpr:
		left, d := typed(e.Left, scope)
		if d != nil {
			return nil, d
		}
		right, d := typed(e.Right, scope)
		if d != nil {
			return nil, d
		}
		return binaryOperator(e.Operator.Literal, e.Operator.Pos.Offset, e.Operator.End(), left, right, scope)

	case *ast.CallExpr:
		return call(e, scope)

	case *ast.ArrayLiteral:
		return array(e, scope)

	case *ast.IndexExpr:
		target, d := typed(e.Target, scope)
		if d != nil {
			return nil, d
		}
		elem, ok := types.ElementOf(target.typ)
		if !ok {
			return nil, semanticError(errors.SemanticMismatchedTypes, target.start, target.end,
				fmt.Sprintf("Expected an Array, found %s", target.typ))
		}
		index, d := typed(e.Index, scope)
		if d != nil {
			return nil, d
		}
		if !types.Identical(index.typ, types.Int) {
			return nil, semanticError(errors.SemanticMismatchedTypes, index.start, index.end,
				fmt.Sprintf("An array index must be an Int, found %s", index.typ))
		}
		return elem, nil

	case *ast.MemberExpr:
		start, end := e.Span()
		return nil, semanticError(errors.CompilerTODO, start, end, "Member access is not supported yet")

	case *ast.Assignment:
		if d := assignment(e, scope); d != nil {
			return nil, d
		}
		return types.Void, nil
	}

	start, end := expr.Span()
	return nil, semanticError(errors.CompilerTODO, start, end, fmt.Sprintf("Cannot type a %T yet", expr))
}

func reference(e *ast.Identifier, scope *types.Scope) (*types.Symbol, *errors.Diagnostic) {
	sym := scope.LookupParent(e.Name())
	if sym == nil {
		return nil, semanticError(errors.SemanticMissingReference, e.Token.Pos.Offset, e.Token.End(),
			fmt.Sprintf("Cannot find `%s` in this scope", e.Name()))
	}
	return sym, nil
}

func unary(e *ast.UnaryExpr, scope *types.Scope) (types.Type, *errors.Diagnostic) {
	x, d := typed(e.Operand, scope)
	if d != nil {
		return nil, d
	}

	switch e.Operator.Literal {
	case "!":
		if !types.Identical(x.typ, types.Bool) {
			return nil, semanticError(errors.SemanticMismatchedTypes, x.start, x.end,
				fmt.Sprintf("Expected a Bool, got %s", x.typ))
		}
	case "-":
		if !types.Identical(x.typ, types.Int) && !types.Identical(x.typ, types.Float) {
			return nil, semanticError(errors.SemanticMismatchedTypes, x.start, x.end,
				fmt.Sprintf("Expected a Float or Int, got a %s", x.typ))
		}
	default:
		return nil, semanticError(errors.SemanticInvalidReference, e.Operator.Pos.Offset, e.Operator.End(),
			fmt.Sprintf("The unary operator %s does not exist", e.Operator.Literal))
	}
	return x.typ, nil
}

// binaryOperator resolves op in scope and picks the signature matching both
// operands. start and end locate the operator. Every signature of an
// operator must take two parameters.
func binaryOperator(op string, start, end int, left, right operand, scope *types.Scope) (types.Type, *errors.Diagnostic) {
	sym := scope.LookupParent(op)
	if sym == nil || !sym.IsFunction() {
		return nil, semanticError(errors.SemanticInvalidReference, start, end,
			fmt.Sprintf("The binary operator %s does not exist", op))
	}
	signatures := types.Signatures(sym.Type)
	for _, fn := range signatures {
		if len(fn.Params) != 2 {
			panic(fmt.Sprintf("semantic: binary operator %s is declared with %d parameters", op, len(fn.Params)))
		}
	}

	var candidates []*types.Function
	for _, fn := range signatures {
		if types.Identical(fn.Params[0], left.typ) {
			candidates = append(candidates, fn)
		}
	}
	if len(candidates) == 0 {
		return nil, semanticError(errors.SemanticMismatchedTypes, left.start, left.end,
			fmt.Sprintf("Expected a %s, got a %s on the left side of the %s operator", accepted(signatures, 0), left.typ, op))
	}

	for _, fn := range candidates {
		if types.Identical(fn.Params[1], right.typ) {
			return fn.Result, nil
		}
	}
	return nil, semanticError(errors.SemanticMismatchedTypes, right.start, right.end,
		fmt.Sprintf("Expected a %s, got a %s on the right side of the %s operator", accepted(candidates, 1), right.typ, op))
}

// accepted lists the types the signatures take at parameter i, as "Float or
// Int".
func accepted(signatures []*types.Function, i int) string {
	var names []string
	for _, fn := range signatures {
		name := fn.Params[i].String()
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return strings.Join(names, " or ")
}

func call(e *ast.CallExpr, scope *types.Scope) (types.Type, *errors.Diagnostic) {
	var callee operand
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		sym, d := reference(ident, scope)
		if d != nil {
			return nil, d
		}
		callee = operand{sym.Type, ident.Token.Pos.Offset, ident.Token.End()}
	} else {
		var d *errors.Diagnostic
		if callee, d = typed(e.Callee, scope); d != nil {
			return nil, d
		}
	}
	fn, ok := callee.typ.(*types.Function)
	if !ok {
		return nil, semanticError(errors.SemanticMismatchedTypes, callee.start, callee.end,
			fmt.Sprintf("Expected this expression to be a function, found a %s", callee.typ))
	}

	if len(e.Arguments) != len(fn.Params) {
		start, end := e.Span()
		return nil, semanticError(errors.SemanticMismatchedArgumentCount, start, end,
			fmt.Sprintf("Expected %d arguments, got %d", len(fn.Params), len(e.Arguments)))
	}

	for i, arg := range e.Arguments {
		a, d := typed(arg, scope)
		if d != nil {
			return nil, d
		}
		if !types.Identical(fn.Params[i], a.typ) {
			return nil, semanticError(errors.SemanticMismatchedTypes, a.start, a.end,
				fmt.Sprintf("Expected a %s, got %s", fn.Params[i], a.typ))
		}
	}
	return fn.Result, nil
}

func array(e *ast.ArrayLiteral, scope *types.Scope) (types.Type, *errors.Diagnostic) {
	if len(e.Elements) == 0 {
		start, end := e.Span()
		return nil, semanticError(errors.CompilerTODO, start, end,
			"An array must have at least 1 element to determine its type.").
			WithNote("Empty arrays cannot be typed yet")
	}

	first, d := typeOf(e.Elements[0], scope)
	if d != nil {
		return nil, d
	}
	for _, element := range e.Elements[1:] {
		x, d := typed(element, scope)
		if d != nil {
			return nil, d
		}
		if !types.Identical(first, x.typ) {
			return nil, semanticError(errors.SemanticMismatchedTypes, x.start, x.end,
				fmt.Sprintf("All elements of an array must have the same datatype. Expected %s, got %s", first, x.typ))
		}
	}
	return types.ArrayOf(first), nil
}
