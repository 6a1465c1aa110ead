// Package compiler runs the THP pipeline: lexer, parser, semantic check and
// PHP generation. Each stage fails fast and the first failure is returned as
// a *errors.Diagnostic.
package compiler

import (
	"fmt"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/generator"
	"github.com/thp-lang/thp/internal/compiler/lexer"
	"github.com/thp-lang/thp/internal/compiler/parser"
	"github.com/thp-lang/thp/internal/compiler/semantic"
	"github.com/thp-lang/thp/internal/compiler/token"
	"github.com/thp-lang/thp/internal/compiler/types"
)

const Version = "0.1.0"

// Compile turns a complete THP program into PHP.
func Compile(source string) (string, error) {
	module, err := check(source, types.NewScope(types.NewUniverse()))
	if err != nil {
		return "", err
	}
	return generator.New().Generate(module)
}

// CompileWithSourceMap is Compile plus a PHP to THP line map.
func CompileWithSourceMap(source string) (*generator.Result, error) {
	module, err := check(source, types.NewScope(types.NewUniverse()))
	if err != nil {
		return nil, err
	}
	return generator.New().GenerateWithSourceMap(module, source)
}

func check(source string, scope *types.Scope) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	module, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if err := semantic.Check(module, scope); err != nil {
		return nil, err
	}
	return module, nil
}

// Session compiles a sequence of inputs against one scope, so bindings and
// functions from earlier inputs stay visible. Symbols inserted by an input
// that later fails are kept.
type Session struct {
	scope *types.Scope
}

func NewSession() *Session {
	return &Session{scope: types.NewScope(types.NewUniverse())}
}

// Compile checks source in the session scope and returns its PHP.
func (s *Session) Compile(source string) (string, error) {
	module, err := check(source, s.scope)
	if err != nil {
		return "", err
	}
	return generator.New().Generate(module)
}

// Scope returns the session's top level scope.
func (s *Session) Scope() *types.Scope {
	return s.scope
}

// Level is how far Analyze runs the pipeline.
type Level int

const (
	LevelLex Level = iota
	LevelParse
	LevelCheck
)

func (l Level) String() string {
	switch l {
	case LevelLex:
		return "lex"
	case LevelParse:
		return "parse"
	case LevelCheck:
		return "check"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Analyze tokenizes source and then runs the later stages up to level. When
// lexing succeeds the tokens are returned even if a later stage fails, so a
// highlighter can still color the input next to the diagnostic.
func Analyze(source string, level Level) ([]token.Token, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	if level < LevelParse {
		return tokens, nil
	}

	module, err := parser.Parse(tokens)
	if err != nil {
		return tokens, err
	}
	if level < LevelCheck {
		return tokens, nil
	}

	return tokens, semantic.Check(module, types.NewScope(types.NewUniverse()))
}
