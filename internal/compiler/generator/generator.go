package generator

import (
	"fmt"
	"strings"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
)

// SourceMap tracks line mappings from generated PHP back to THP source
type SourceMap struct {
	Entries []SourceMapEntry `json:"entries"`
}

type SourceMapEntry struct {
	PHPLine int `json:"php_line"`
	THPLine int `json:"thp_line"`
}

// Result holds the output of a generation with a source map
type Result struct {
	PHP       string
	SourceMap *SourceMap
}

// Generator turns a checked module into PHP. A Generator is single use.
type Generator struct {
	buf     strings.Builder
	indent  int
	phpLine int

	source    string // THP source, only needed for the source map
	sourceMap *SourceMap
}

func New() *Generator {
	return &Generator{}
}

// Generate renders module as a PHP file. The module is expected to have
// passed the semantic check; constructs without a PHP rendering yet stop
// generation with an error.
func (g *Generator) Generate(module *ast.Module) (string, error) {
	g.emit("<?php\n")
	for _, member := range module.Members {
		if err := g.member(member); err != nil {
			return "", err
		}
	}
	return g.buf.String(), nil
}

// GenerateWithSourceMap is Generate plus a map from each emitted statement's
// PHP line to the THP line it came from.
func (g *Generator) GenerateWithSourceMap(module *ast.Module, source string) (*Result, error) {
	g.source = source
	g.sourceMap = &SourceMap{Entries: []SourceMapEntry{}}
	php, err := g.Generate(module)
	if err != nil {
		return nil, err
	}
	return &Result{PHP: php, SourceMap: g.sourceMap}, nil
}

func (g *Generator) member(n ast.Node) error {
	g.emitIndent()
	g.mark(n)

	switch n := n.(type) {
	case *ast.Binding:
		value, err := g.expr(n.Value)
		if err != nil {
			return err
		}
		g.emit("$%s = %s;\n", n.Name.Literal, value)
	case *ast.Assignment:
		value, err := g.expr(n.Value)
		if err != nil {
			return err
		}
		g.emit("$%s %s %s;\n", n.Target.Literal, n.Operator.Literal, value)
	case *ast.FunctionDecl:
		return g.functionDecl(n)
	case *ast.Conditional:
		return g.conditional(n)
	case *ast.ForLoop:
		return g.forLoop(n)
	case *ast.WhileLoop:
		cond, err := g.expr(n.Condition)
		if err != nil {
			return err
		}
		g.emit("while (%s) ", cond)
		if err := g.block(n.Body.Members, nil); err != nil {
			return err
		}
		g.emit("\n")
	case *ast.Block:
		if err := g.block(n.Members, nil); err != nil {
			return err
		}
		g.emit("\n")
	case ast.Expression:
		value, err := g.expr(n)
		if err != nil {
			return err
		}
		g.emit("%s;\n", value)
	default:
		return unsupported(n)
	}
	return nil
}

// block emits { members } without a trailing newline. last, when not nil,
// is called instead of member for the final member.
func (g *Generator) block(members []ast.Node, last func(ast.Node) error) error {
	g.emit("{\n")
	g.indent++
	for i, m := range members {
		var err error
		if last != nil && i == len(members)-1 {
			err = last(m)
		} else {
			err = g.member(m)
		}
		if err != nil {
			return err
		}
	}
	g.indent--
	g.emitIndent()
	g.emit("}")
	return nil
}

func (g *Generator) functionDecl(f *ast.FunctionDecl) error {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s $%s", phpType(p.Datatype), p.Name.Literal)
	}
	result := "void"
	if f.ReturnType != nil {
		result = phpType(f.ReturnType)
	}
	g.emit("function %s(%s): %s ", f.Name.Literal, strings.Join(params, ", "), result)

	// the value of the last expression is the function's result
	var last func(ast.Node) error
	if result != "void" {
		last = g.returnMember
	}
	if err := g.block(f.Body.Members, last); err != nil {
		return err
	}
	g.emit("\n")
	return nil
}

func (g *Generator) returnMember(n ast.Node) error {
	expr, ok := n.(ast.Expression)
	if _, assign := n.(*ast.Assignment); !ok || assign {
		return g.member(n)
	}
	value, err := g.expr(expr)
	if err != nil {
		return err
	}
	g.emitIndent()
	g.mark(n)
	g.emit("return %s;\n", value)
	return nil
}

func (g *Generator) conditional(c *ast.Conditional) error {
	cond, err := g.expr(c.Condition)
	if err != nil {
		return err
	}
	g.emit("if (%s) ", cond)
	if err := g.block(c.Then.Members, nil); err != nil {
		return err
	}

	for _, branch := range c.ElseIfs {
		cond, err := g.expr(branch.Condition)
		if err != nil {
			return err
		}
		g.emit(" elseif (%s) ", cond)
		if err := g.block(branch.Body.Members, nil); err != nil {
			return err
		}
	}

	if c.Else != nil {
		g.emit(" else ")
		if err := g.block(c.Else.Members, nil); err != nil {
			return err
		}
	}
	g.emit("\n")
	return nil
}

func (g *Generator) forLoop(f *ast.ForLoop) error {
	collection, err := g.expr(f.Collection)
	if err != nil {
		return err
	}
	if f.Key != nil {
		g.emit("foreach (%s as $%s => $%s) ", collection, f.Key.Literal, f.Value.Literal)
	} else {
		g.emit("foreach (%s as $%s) ", collection, f.Value.Literal)
	}
	if err := g.block(f.Body.Members, nil); err != nil {
		return err
	}
	g.emit("\n")
	return nil
}

// phpType maps a THP datatype to a PHP type declaration
func phpType(ref *ast.TypeRef) string {
	switch ref.Name.Literal {
	case "Int":
		return "int"
	case "Float":
		return "float"
	case "String":
		return "string"
	case "Bool":
		return "bool"
	case "Array":
		return "array"
	case "Void":
		return "void"
	default:
		return "mixed"
	}
}

func unsupported(n ast.Node) error {
	start, end := n.Span()
	return errors.New(errors.PhaseSemantic, errors.CompilerTODO, start,
		fmt.Sprintf("Code generation for %T is not implemented", n), start, end)
}

func (g *Generator) emit(format string, args ...any) {
	str := fmt.Sprintf(format, args...)
	g.buf.WriteString(str)
	g.phpLine += strings.Count(str, "\n")
}

func (g *Generator) emitIndent() {
	g.buf.WriteString(strings.Repeat("    ", g.indent))
}

// mark records that the statement n starts on the current PHP line.
func (g *Generator) mark(n ast.Node) {
	if g.sourceMap == nil {
		return
	}
	start, _ := n.Span()
	g.sourceMap.Entries = append(g.sourceMap.Entries, SourceMapEntry{
		PHPLine: g.phpLine + 1,
		THPLine: errors.Locate(g.source, start).Line,
	})
}
