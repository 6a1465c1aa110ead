// Package semantic type checks a parsed module against a scope chain. It
// stops at the first error, which is returned as a *errors.Diagnostic.
package semantic

import (
	"fmt"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/types"
)

// Check validates every member of module in order. Top level bindings and
// functions are inserted into scope, so a caller keeping scope alive (the
// REPL) sees them in the next Check.
func Check(module *ast.Module, scope *types.Scope) error {
	if d := members(module.Members, scope); d != nil {
		return d
	}
	return nil
}

func members(nodes []ast.Node, scope *types.Scope) *errors.Diagnostic {
	for _, n := range nodes {
		if d := member(n, scope); d != nil {
			return d
		}
	}
	return nil
}

func member(n ast.Node, scope *types.Scope) *errors.Diagnostic {
	switch n := n.(type) {
	case *ast.Binding:
		return binding(n, scope)
	case *ast.FunctionDecl:
		return functionDecl(n, scope)
	case *ast.Conditional:
		return conditional(n, scope)
	case *ast.ForLoop:
		return forLoop(n, scope)
	case *ast.WhileLoop:
		return whileLoop(n, scope)
	case *ast.Block:
		return block(n, scope)
	case ast.Expression:
		_, d := typeOf(n, scope)
		return d
	}
	start, end := n.Span()
	return semanticError(errors.CompilerTODO, start, end, fmt.Sprintf("Cannot check a %T yet", n))
}

func semanticError(code errors.Code, start, end int, message string) *errors.Diagnostic {
	return errors.New(errors.PhaseSemantic, code, start, message, start, end)
}

func binding(b *ast.Binding, scope *types.Scope) *errors.Diagnostic {
	name := b.Name.Literal
	if scope.Lookup(name) != nil {
		return semanticError(errors.SemanticDuplicatedReference, b.Name.Pos.Offset, b.Name.End(),
			"A reference with this name was already defined")
	}

	valueType, d := typeOf(b.Value, scope)
	if d != nil {
		return d
	}

	typ := valueType
	if b.Datatype != nil {
		declared, d := resolve(b.Datatype)
		if d != nil {
			return d
		}
		if !types.Identical(declared, valueType) {
			start, end := b.Value.Span()
			return semanticError(errors.SemanticMismatchedTypes, b.Name.Pos.Offset, b.Name.End(),
				fmt.Sprintf("The variable `%s` was declared as `%s` but its expression has type `%s`", name, declared, valueType)).
				WithLabel(fmt.Sprintf("This expression has type `%s`", valueType), start, end)
		}
		typ = declared
	}

	scope.Insert(&types.Symbol{Name: name, Type: typ, Mutable: b.Mutable()})
	return nil
}

func assignment(a *ast.Assignment, scope *types.Scope) *errors.Diagnostic {
	target := a.Target
	sym := scope.LookupParent(target.Literal)
	switch {
	case sym == nil:
		return semanticError(errors.SemanticMissingReference, target.Pos.Offset, target.End(),
			"This variable does not exist in this scope")
	case sym.IsFunction():
		return semanticError(errors.SemanticInvalidReference, target.Pos.Offset, target.End(),
			fmt.Sprintf("`%s` is a function, only variables can be assigned", target.Literal))
	case !sym.Mutable:
		return semanticError(errors.SemanticImmutableVariable, target.Pos.Offset, target.End(),
			"This variable is immutable, therefore it cannot be assigned a new value").
			WithHelp(fmt.Sprintf("Declare it with `var %s` to make it mutable", target.Literal))
	}

	valueType, d := typeOf(a.Value, scope)
	if d != nil {
		return d
	}
	start, end := a.Value.Span()

	if op := a.BinaryOperator(); op != "" {
		left := operand{sym.Type, target.Pos.Offset, target.End()}
		right := operand{valueType, start, end}
		valueType, d = binaryOperator(op, a.Operator.Pos.Offset, a.Operator.End(), left, right, scope)
		if d != nil {
			return d
		}
	}

	if !types.Identical(sym.Type, valueType) {
		return semanticError(errors.SemanticMismatchedTypes, target.Pos.Offset, target.End(),
			fmt.Sprintf("This variable has type `%s`", sym.Type)).
			WithLabel(fmt.Sprintf("But this expression has type `%s`", valueType), start, end)
	}
	return nil
}

func functionDecl(f *ast.FunctionDecl, scope *types.Scope) *errors.Diagnostic {
	name := f.Name.Literal
	if scope.Lookup(name) != nil {
		return semanticError(errors.SemanticDuplicatedReference, f.Name.Pos.Offset, f.Name.End(),
			fmt.Sprintf("A symbol with name %s was already defined at this scope", name))
	}

	fn := &types.Function{Result: types.Void}
	for _, param := range f.Params {
		typ, d := resolve(param.Datatype)
		if d != nil {
			return d
		}
		fn.Params = append(fn.Params, typ)
	}
	if f.ReturnType != nil {
		typ, d := resolve(f.ReturnType)
		if d != nil {
			return d
		}
		fn.Result = typ
	}

	// inserted before the body so the function can call itself
	scope.Insert(&types.Symbol{Name: name, Type: fn})

	body := types.NewScope(scope)
	for i, param := range f.Params {
		if body.Insert(&types.Symbol{Name: param.Name.Literal, Type: fn.Params[i]}) != nil {
			return semanticError(errors.SemanticDuplicatedReference, param.Name.Pos.Offset, param.Name.End(),
				"A parameter with this name was already declared")
		}
	}
	return members(f.Body.Members, body)
}

func block(b *ast.Block, scope *types.Scope) *errors.Diagnostic {
	return members(b.Members, types.NewScope(scope))
}

func conditional(c *ast.Conditional, scope *types.Scope) *errors.Diagnostic {
	if d := condition(c.Condition, scope, ""); d != nil {
		return d
	}
	if d := block(c.Then, scope); d != nil {
		return d
	}
	for _, branch := range c.ElseIfs {
		if d := condition(branch.Condition, scope, ""); d != nil {
			return d
		}
		if d := block(branch.Body, scope); d != nil {
			return d
		}
	}
	if c.Else != nil {
		return block(c.Else, scope)
	}
	return nil
}

func whileLoop(w *ast.WhileLoop, scope *types.Scope) *errors.Diagnostic {
	if d := condition(w.Condition, scope, "THP does not have truthy/falsey values."); d != nil {
		return d
	}
	return block(w.Body, scope)
}

// condition checks that expr is a Bool.
func condition(expr ast.Expression, scope *types.Scope, note string) *errors.Diagnostic {
	typ, d := typeOf(expr, scope)
	if d != nil {
		return d
	}
	if !types.Identical(typ, types.Bool) {
		start, end := expr.Span()
		return semanticError(errors.SemanticMismatchedTypes, start, end,
			fmt.Sprintf("Expected a condition of type Bool, found %s", typ)).WithNote(note)
	}
	return nil
}

func forLoop(f *ast.ForLoop, scope *types.Scope) *errors.Diagnostic {
	collection, d := typeOf(f.Collection, scope)
	if d != nil {
		return d
	}
	elem, ok := types.ElementOf(collection)
	if !ok {
		start, end := f.Collection.Span()
		return semanticError(errors.SemanticMismatchedTypes, start, end, "Only Arrays are allowed here").
			WithNote(fmt.Sprintf("The collection has type %s", collection))
	}

	loop := types.NewScope(scope)
	if f.Key != nil {
		loop.Insert(&types.Symbol{Name: f.Key.Literal, Type: types.Int})
	}
	if loop.Insert(&types.Symbol{Name: f.Value.Literal, Type: elem}) != nil {
		return semanticError(errors.SemanticDuplicatedReference, f.Value.Pos.Offset, f.Value.End(),
			"The key and the value of a loop must have different names")
	}
	return members(f.Body.Members, loop)
}

// resolve turns a datatype annotation into a type.
func resolve(ref *ast.TypeRef) (types.Type, *errors.Diagnostic) {
	name := ref.Name.Literal
	start, end := ref.Span()

	arity, generic := types.GenericArity(name)
	if len(ref.Params) == 0 {
		if typ, ok := types.LookupDatatype(name); ok {
			return typ, nil
		}
		if generic {
			return nil, semanticError(errors.SemanticInvalidReference, start, end,
				fmt.Sprintf("The datatype `%s` expects %d type parameter(s)", name, arity))
		}
		return nil, semanticError(errors.SemanticInvalidReference, start, end,
			fmt.Sprintf("The datatype `%s` does not exist", name))
	}

	if !generic {
		if _, ok := types.LookupDatatype(name); ok {
			return nil, semanticError(errors.SemanticInvalidReference, start, end,
				fmt.Sprintf("The datatype `%s` does not take type parameters", name))
		}
		return nil, semanticError(errors.SemanticInvalidReference, start, end,
			fmt.Sprintf("The datatype `%s` does not exist", name))
	}
	if len(ref.Params) != arity {
		return nil, semanticError(errors.SemanticInvalidReference, start, end,
			fmt.Sprintf("The datatype `%s` expects %d type parameter(s), found %d", name, arity, len(ref.Params)))
	}

	g := &types.Generic{Base: name}
	for _, param := range ref.Params {
		typ, d := resolve(param)
		if d != nil {
			return nil, d
		}
		g.Params = append(g.Params, typ)
	}
	return g, nil
}
