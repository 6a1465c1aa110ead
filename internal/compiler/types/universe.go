package types

// datatypes are the value types a TypeRef can name without parameters
var datatypes = map[string]*Value{
	"Int":    Int,
	"Float":  Float,
	"String": String,
	"Bool":   Bool,
	"Void":   Void,
}

// generics maps each generic type to its parameter count
var generics = map[string]int{
	ArrayBase: 1,
}

// LookupDatatype returns the value type named name.
func LookupDatatype(name string) (*Value, bool) {
	t, ok := datatypes[name]
	return t, ok
}

// GenericArity returns how many type parameters the generic name takes.
func GenericArity(name string) (int, bool) {
	n, ok := generics[name]
	return n, ok
}

// overload builds one (T, T) signature per operand type T, resulting in T,
// or in Bool for a predicate.
func overload(predicate bool, operands ...*Value) *Overload {
	o := &Overload{}
	for _, t := range operands {
		var result Type = t
		if predicate {
			result = Bool
		}
		o.Signatures = append(o.Signatures, &Function{Params: []Type{t, t}, Result: result})
	}
	return o
}

// NewUniverse returns a fresh root scope holding the standard functions and
// operators. Each compilation gets its own, so nothing is shared between
// compiles.
func NewUniverse() *Scope {
	u := NewScope(nil)

	u.Insert(&Symbol{Name: "print", Type: &Function{Params: []Type{String}, Result: Void}})

	for _, op := range []string{"+", "-", "*", "/"} {
		u.Insert(&Symbol{Name: op, Type: overload(false, Int, Float)})
	}
	u.Insert(&Symbol{Name: "++", Type: &Function{Params: []Type{String, String}, Result: String}})
	for _, op := range []string{"==", "!="} {
		u.Insert(&Symbol{Name: op, Type: overload(true, Int, Float, String, Bool)})
	}
	for _, op := range []string{"<", "<=", ">", ">="} {
		u.Insert(&Symbol{Name: op, Type: overload(true, Int, Float)})
	}
	return u
}
