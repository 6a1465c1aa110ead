package errors

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{
			"with file",
			Position{File: "test.thp", Line: 10, Column: 5},
			"test.thp:10:5",
		},
		{
			"without file",
			Position{Line: 10, Column: 5},
			"10:5",
		},
		{
			"line 1 column 1",
			Position{Line: 1, Column: 1},
			"1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.pos.String()
			if result != tt.expected {
				t.Errorf("Position.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	source := "val a = 1\nval é = 2\n"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{10, 2, 1},
		{16, 2, 6}, // "val é" is 6 bytes but 5 runes
		{100, 3, 1},
	}

	for _, tt := range tests {
		pos := Locate(source, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Locate(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}

func TestDiagnosticError(t *testing.T) {
	d := New(PhaseParser, SyntaxIncompleteStatement, 4, "There should be an identifier after a binding", 0, 3)

	expected := "[parser] offset 4: There should be an identifier after a binding"
	if d.Error() != expected {
		t.Errorf("Error() = %q, want %q", d.Error(), expected)
	}

	var err error = d
	var target *Diagnostic
	if !stderrors.As(err, &target) {
		t.Fatal("errors.As should recover the diagnostic")
	}
	if target.Code != SyntaxIncompleteStatement {
		t.Errorf("Code = %v, want %v", target.Code, SyntaxIncompleteStatement)
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := New(PhaseLexer, LexIncompleteString, 0, "The string starts here", 0, 1).
		WithLabel("The line ends here", 5, 6).
		WithNote("Strings cannot have newlines")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	expected := `{"error_code":0,"error_offset":0,"labels":[{"message":"The string starts here","start":0,"end":1},{"message":"The line ends here","start":5,"end":6}],"note":"Strings cannot have newlines","help":null}`
	if string(data) != expected {
		t.Errorf("json = %s\nwant   %s", data, expected)
	}

	var back Diagnostic
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Phase != PhaseLexer {
		t.Errorf("Phase = %q, want %q", back.Phase, PhaseLexer)
	}
	if len(back.Labels) != 2 || back.Note != d.Note || back.Help != "" {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestCodePhase(t *testing.T) {
	tests := []struct {
		code  Code
		phase Phase
		name  string
	}{
		{LexInvalidHexNumber, PhaseLexer, "LEX_INVALID_HEX_NUMBER"},
		{SyntaxInvalidForLoop, PhaseParser, "SYNTAX_INVALID_FOR_LOOP"},
		{SemanticMismatchedTypes, PhaseSemantic, "SEMANTIC_MISMATCHED_TYPES"},
		{CompilerTODO, PhaseSemantic, "COMPILER_TODO"},
	}
	for _, tt := range tests {
		if tt.code.Phase() != tt.phase {
			t.Errorf("%v.Phase() = %q, want %q", tt.code, tt.code.Phase(), tt.phase)
		}
		if tt.code.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.code.String(), tt.name)
		}
	}
}

func TestRender(t *testing.T) {
	source := "val x = 1\nBool val y = 2\n"
	d := New(PhaseSemantic, SemanticMismatchedTypes, 15, "Expected a Bool, found an Int", 23, 24).
		WithHelp("Change the datatype or the value")

	out := RenderString(source, "main.thp", d)

	for _, want := range []string{
		"error[SEMANTIC_MISMATCHED_TYPES]: Expected a Bool, found an Int",
		"--> main.thp:2:6",
		"2 | Bool val y = 2",
		"  | " + strings.Repeat(" ", 13) + "^ Expected a Bool, found an Int",
		"= help: Change the datatype or the value",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWideRunes(t *testing.T) {
	source := `val s = "日本" x`
	// the label covers "x", after two double-width runes
	start := strings.Index(source, "x")
	d := New(PhaseParser, SyntaxUnexpectedTokens, start, "here", start, start+1)

	out := RenderString(source, "", d)
	lines := strings.Split(out, "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^ here") {
			caretLine = l
		}
	}
	// "val s = \"" is 9 columns, the two runes 4 more, then `" ` 2 more
	if !strings.Contains(caretLine, "| "+strings.Repeat(" ", 15)+"^ here") {
		t.Errorf("caret misaligned: %q", caretLine)
	}
}

func TestErrorListNew(t *testing.T) {
	el := NewErrorList()
	if el == nil {
		t.Fatal("NewErrorList() returned nil")
	}
	if el.HasErrors() {
		t.Error("new list should be empty")
	}
	if el.Err() != nil {
		t.Error("Err() of an empty list should be nil")
	}
}

func TestErrorListAdd(t *testing.T) {
	el := NewErrorList()
	diag := New(PhaseLexer, LexIncompleteString, 3, "The string starts here", 3, 4)
	el.Add("a.thp", diag)
	el.Add("b.thp", stderrors.New("reading file: no such file"))

	if !el.HasErrors() {
		t.Fatal("HasErrors() = false after Add")
	}
	if len(el.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(el.Errors))
	}

	s := el.String()
	if !strings.Contains(s, "a.thp: [lexer] offset 3: The string starts here") {
		t.Errorf("String() missing first entry: %q", s)
	}
	if !strings.Contains(s, "b.thp: reading file: no such file") {
		t.Errorf("String() missing second entry: %q", s)
	}

	var target *Diagnostic
	if !stderrors.As(el.Errors[0], &target) {
		t.Error("FileError should unwrap to the diagnostic")
	}
	if el.Error() != "2 files failed to compile" {
		t.Errorf("Error() = %q", el.Error())
	}
}
