// Package types holds the THP type model and the scoped symbol table the
// semantic analyzer checks against. It has no AST dependencies.
package types

import "strings"

// Type is implemented by Value, Function, Overload and Generic.
type Type interface {
	String() string
	aType()
}

// Value is a nominal type such as Int or String
type Value struct {
	Name string
}

// Function is the type of a function or operator symbol
type Function struct {
	Params []Type
	Result Type
}

// Overload is the type of an operator symbol accepting several operand
// types, one signature each.
type Overload struct {
	Signatures []*Function
}

// Generic is a parameterized type such as Array[Int]
type Generic struct {
	Base   string
	Params []Type
}

func (*Value) aType()    {}
func (*Function) aType() {}
func (*Overload) aType() {}
func (*Generic) aType()  {}

func (v *Value) String() string { return v.Name }

func (f *Function) String() string {
	return "(" + join(f.Params) + ") -> " + f.Result.String()
}

func (o *Overload) String() string {
	parts := make([]string, len(o.Signatures))
	for i, fn := range o.Signatures {
		parts[i] = fn.String()
	}
	return strings.Join(parts, " | ")
}

func (g *Generic) String() string {
	return g.Base + "[" + join(g.Params) + "]"
}

func join(list []Type) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Predeclared value types
var (
	Int    = &Value{Name: "Int"}
	Float  = &Value{Name: "Float"}
	String = &Value{Name: "String"}
	Bool   = &Value{Name: "Bool"}
	Void   = &Value{Name: "Void"}
)

// ArrayBase is the name of the generic array type
const ArrayBase = "Array"

// ArrayOf returns Array[elem].
func ArrayOf(elem Type) *Generic {
	return &Generic{Base: ArrayBase, Params: []Type{elem}}
}

// ElementOf returns T when t is Array[T].
func ElementOf(t Type) (Type, bool) {
	g, ok := t.(*Generic)
	if !ok || g.Base != ArrayBase || len(g.Params) != 1 {
		return nil, false
	}
	return g.Params[0], true
}

// Signatures returns the function types a callable type accepts: t itself
// for a *Function, every signature of an *Overload, nil otherwise.
func Signatures(t Type) []*Function {
	switch t := t.(type) {
	case *Function:
		return []*Function{t}
	case *Overload:
		return t.Signatures
	}
	return nil
}

// Identical reports whether x and y are the same type. Equality is
// structural and there is no subtyping.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Value:
		if y, ok := y.(*Value); ok {
			return x.Name == y.Name
		}
	case *Generic:
		if y, ok := y.(*Generic); ok {
			return x.Base == y.Base && identicalLists(x.Params, y.Params)
		}
	case *Function:
		if y, ok := y.(*Function); ok {
			return identicalLists(x.Params, y.Params) && Identical(x.Result, y.Result)
		}
	case *Overload:
		if y, ok := y.(*Overload); ok && len(x.Signatures) == len(y.Signatures) {
			for i := range x.Signatures {
				if !Identical(x.Signatures[i], y.Signatures[i]) {
					return false
				}
			}
			return true
		}
	}
	return false
}

func identicalLists(x, y []Type) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Identical(x[i], y[i]) {
			return false
		}
	}
	return true
}
