package semantic

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/lexer"
	"github.com/thp-lang/thp/internal/compiler/parser"
	"github.com/thp-lang/thp/internal/compiler/types"
)

func parse(t *testing.T, input string) *ast.Module {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", input, err)
	}
	module, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", input, err)
	}
	return module
}

func check(t *testing.T, input string) error {
	t.Helper()
	return Check(parse(t, input), types.NewScope(types.NewUniverse()))
}

func checkError(t *testing.T, input string) *errors.Diagnostic {
	t.Helper()
	err := check(t, input)
	if err == nil {
		t.Fatalf("Check(%q) should fail", input)
	}
	var d *errors.Diagnostic
	if !stderrors.As(err, &d) {
		t.Fatalf("error is %T, want *errors.Diagnostic", err)
	}
	if d.Phase != errors.PhaseSemantic {
		t.Errorf("Phase = %q, want semantic", d.Phase)
	}
	return d
}

func TestCheckValidPrograms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bindings", "val x = 1\nval y = x + 2"},
		{"annotated bindings", "val Int x = 1\nvar String s = \"a\"\nval Float f = -1.5\nval Bool b = true"},
		{"shadowing in a block", "val x = 1\n{\n    val x = \"a\"\n    print(x)\n}"},
		{"mutation", "var x = 1\nx = 2\nx += 3\nx *= 2"},
		{"functions", "fun add(Int a, Int b) -> Int {\n    a + b\n}\nval r = add(1, 2)"},
		{"recursion", "fun countdown(Int n) {\n    countdown(n - 1)\n}"},
		{"parameter shadows a global", "val a = \"s\"\nfun f(Int a) {\n    val b = a * 2\n}"},
		{"for loop", "val xs = [1, 2, 3]\nfor i, x in xs {\n    val y = x + i\n}"},
		{"for loop over strings", "for s in [\"a\", \"b\"] {\n    print(s)\n}"},
		{"while loop", "var i = 0\nwhile i < 10 {\n    i += 1\n}"},
		{"conditional", "if 1 < 2 {\n    print(\"a\")\n} else if 2 < 3 {\n    print(\"b\")\n} else {\n    print(\"c\")\n}"},
		{"concatenation", "val s = \"a\" ++ \"b\"\nprint(s)"},
		{"array types", "val Array[Int] xs = [1]\nval first = xs[0] * 2"},
		{"nested arrays", "val Array[Array[Int]] m = [[1], [2, 3]]\nval x = m[1][0]"},
		{"unary", "val b = !(1 == 2)\nval n = -5"},
		{"float arithmetic", "val f = 1.5 + 2.5\nval g = -f * 2.0 / 0.5\nval b = f < g"},
		{"float compound assignment", "var f = 1.5\nf += 2.0"},
		{"equality on every value type", "val a = true == false\nval b = \"a\" != \"b\"\nval c = (1 < 2) == (3 < 4)\nval d = 1.5 == 2.5"},
		{"function called by name", "fun one() -> Int {\n    1\n}\nval x = one() + one()"},
		{"function result", "fun name() -> String {\n    \"thp\"\n}\nval String s = name()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := check(t, tt.input); err != nil {
				t.Errorf("Check returned error: %v", err)
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    errors.Code
		offset  int
		message string
	}{
		{"duplicate binding", "val x = 1\nval x = 2", errors.SemanticDuplicatedReference, 14,
			"A reference with this name was already defined"},
		{"duplicate function", "fun f() {}\nfun f() {}", errors.SemanticDuplicatedReference, 15,
			"A symbol with name f was already defined at this scope"},
		{"duplicate parameter", "fun f(Int a, Int a) {}", errors.SemanticDuplicatedReference, 17,
			"A parameter with this name was already declared"},
		{"duplicate loop names", "for i, i in [1] {\n}", errors.SemanticDuplicatedReference, 7,
			"The key and the value of a loop must have different names"},
		{"immutable", "val x = 1\nx = 2", errors.SemanticImmutableVariable, 10,
			"This variable is immutable, therefore it cannot be assigned a new value"},
		{"assign to missing", "y = 2", errors.SemanticMissingReference, 0,
			"This variable does not exist in this scope"},
		{"assign to function", "print = 2", errors.SemanticInvalidReference, 0,
			"`print` is a function, only variables can be assigned"},
		{"assign other type", "var x = 1\nx = \"a\"", errors.SemanticMismatchedTypes, 10,
			"This variable has type `Int`"},
		{"compound on string", "var s = \"a\"\ns -= \"b\"", errors.SemanticMismatchedTypes, 12,
			"Expected a Float or Int, got a String on the left side of the - operator"},
		{"unknown compound operator", "var x = 1\nx %= 2", errors.SemanticInvalidReference, 12,
			"The binary operator % does not exist"},
		{"missing reference", "val x = y", errors.SemanticMissingReference, 8,
			"Cannot find `y` in this scope"},
		{"out of scope", "{\n    val x = 1\n}\nprint(x)", errors.SemanticMissingReference, 24,
			"Cannot find `x` in this scope"},
		{"binary right side", "val x = 1 + \"a\"", errors.SemanticMismatchedTypes, 12,
			"Expected a Int, got a String on the right side of the + operator"},
		{"not on int", "val x = !1", errors.SemanticMismatchedTypes, 9, "Expected a Bool, got Int"},
		{"negate string", "val x = -\"a\"", errors.SemanticMismatchedTypes, 9, "Expected a Float or Int, got a String"},
		{"argument type", "print(1)", errors.SemanticMismatchedTypes, 6, "Expected a String, got Int"},
		{"argument count", "print(\"a\", \"b\")", errors.SemanticMismatchedArgumentCount, 0, "Expected 1 arguments, got 2"},
		{"mixed int and float", "val x = 1 + 1.5", errors.SemanticMismatchedTypes, 12,
			"Expected a Int, got a Float on the right side of the + operator"},
		{"ordering bools", "val b = true < false", errors.SemanticMismatchedTypes, 8,
			"Expected a Float or Int, got a Bool on the left side of the < operator"},
		{"comparing a string with an int", "val b = \"a\" == 1", errors.SemanticMismatchedTypes, 15,
			"Expected a String, got a Int on the right side of the == operator"},
		{"function as a value", "val p = print", errors.CompilerTODO, 8,
			"`print` is a function, functions can only be called for now"},
		{"function as an argument", "fun f() {}\nprint(f)", errors.CompilerTODO, 17,
			"`f` is a function, functions can only be called for now"},
		{"call a value", "val x = 1\nx(2)", errors.SemanticMismatchedTypes, 10,
			"Expected this expression to be a function, found a Int"},
		{"empty array", "val xs = []", errors.CompilerTODO, 9,
			"An array must have at least 1 element to determine its type."},
		{"mixed array", "val xs = [1, \"a\"]", errors.SemanticMismatchedTypes, 13,
			"All elements of an array must have the same datatype. Expected Int, got String"},
		{"index a value", "val x = 1\nval y = x[0]", errors.SemanticMismatchedTypes, 18, "Expected an Array, found Int"},
		{"string index", "val xs = [1]\nval y = xs[\"a\"]", errors.SemanticMismatchedTypes, 24,
			"An array index must be an Int, found String"},
		{"int condition", "if 1 {\n}", errors.SemanticMismatchedTypes, 3, "Expected a condition of type Bool, found Int"},
		{"int else if condition", "if true {\n} else if 2 {\n}", errors.SemanticMismatchedTypes, 20,
			"Expected a condition of type Bool, found Int"},
		{"while condition", "while 1 {\n}", errors.SemanticMismatchedTypes, 6, "Expected a condition of type Bool, found Int"},
		{"for over int", "for x in 5 {\n}", errors.SemanticMismatchedTypes, 9, "Only Arrays are allowed here"},
		{"member access", "val p = 1\np.name", errors.CompilerTODO, 10, "Member access is not supported yet"},
		{"unknown datatype", "val Person p = 1", errors.SemanticInvalidReference, 4, "The datatype `Person` does not exist"},
		{"array without parameter", "val Array xs = [1]", errors.SemanticInvalidReference, 4,
			"The datatype `Array` expects 1 type parameter(s)"},
		{"parameter on a value type", "val Int[String] x = 1", errors.SemanticInvalidReference, 4,
			"The datatype `Int` does not take type parameters"},
		{"error inside a function", "fun f() {\n    print(1)\n}", errors.SemanticMismatchedTypes, 20,
			"Expected a String, got Int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := checkError(t, tt.input)
			if d.Code != tt.code {
				t.Errorf("Code = %s, want %s", d.Code, tt.code)
			}
			if d.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", d.Offset, tt.offset)
			}
			if d.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", d.Message(), tt.message)
			}
		})
	}
}

func TestCheckMismatchedBindingNamesBothTypes(t *testing.T) {
	d := checkError(t, "val Bool x = 1")
	if d.Code != errors.SemanticMismatchedTypes {
		t.Fatalf("Code = %s, want SEMANTIC_MISMATCHED_TYPES", d.Code)
	}
	if len(d.Labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(d.Labels))
	}
	if !strings.Contains(d.Labels[0].Message, "Bool") || !strings.Contains(d.Labels[0].Message, "Int") {
		t.Errorf("label %q should name Bool and Int", d.Labels[0].Message)
	}
	if d.Labels[1].Start != 13 || d.Labels[1].End != 14 {
		t.Errorf("second label spans [%d, %d), want [13, 14)", d.Labels[1].Start, d.Labels[1].End)
	}
}

func TestCheckWhileNote(t *testing.T) {
	d := checkError(t, "while \"yes\" {\n}")
	if d.Note != "THP does not have truthy/falsey values." {
		t.Errorf("Note = %q", d.Note)
	}
}

func TestCheckImmutableHelp(t *testing.T) {
	d := checkError(t, "val count = 1\ncount += 1")
	if d.Help != "Declare it with `var count` to make it mutable" {
		t.Errorf("Help = %q", d.Help)
	}
}

func TestCheckKeepsScope(t *testing.T) {
	scope := types.NewScope(types.NewUniverse())

	if err := Check(parse(t, "var x = 1\nfun double(Int n) -> Int {\n    n * 2\n}"), scope); err != nil {
		t.Fatalf("first Check returned error: %v", err)
	}
	if err := Check(parse(t, "x = double(x)"), scope); err != nil {
		t.Fatalf("second Check returned error: %v", err)
	}
	if err := Check(parse(t, "val x = 2"), scope); err == nil {
		t.Errorf("rebinding x in the same scope should fail")
	}

	sym := scope.Lookup("x")
	if sym == nil || !sym.Mutable || sym.Type != types.Int {
		t.Errorf("x = %+v, want a mutable Int", sym)
	}
	if scope.Lookup("n") != nil {
		t.Errorf("a parameter leaked into the outer scope")
	}
}

func TestCheckOperatorsComeFromScope(t *testing.T) {
	scope := types.NewScope(nil)
	scope.Insert(&types.Symbol{Name: "*", Type: &types.Function{
		Params: []types.Type{types.Float, types.Float},
		Result: types.Float,
	}})

	if err := Check(parse(t, "1.5 * 2.0"), scope); err != nil {
		t.Errorf("Check returned error: %v", err)
	}
	if err := Check(parse(t, "1 + 2"), scope); err == nil {
		t.Errorf("+ is not in scope and should fail")
	}
}

func TestCheckOperatorArityPanics(t *testing.T) {
	scope := types.NewScope(nil)
	scope.Insert(&types.Symbol{Name: "+", Type: &types.Function{
		Params: []types.Type{types.Int},
		Result: types.Int,
	}})

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a one parameter binary operator")
		}
	}()
	_ = Check(parse(t, "1 + 2"), scope)
}
