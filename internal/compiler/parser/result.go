package parser

import (
	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

type outcome int

const (
	// matched: the production parsed a node and next is the position after it
	matched outcome = iota
	// unmatched: the production does not start at this position, try another
	unmatched
	// mismatched: a different token than the expected one was found
	mismatched
	// failed: the production committed and then hit a syntax error
	failed
)

// result is what every production returns. Only matched results carry a
// node; only failed results carry a diagnostic.
type result[T any] struct {
	outcome outcome
	node    T
	next    int
	token   *token.Token // the offending token of a mismatched result
	err     *errors.Diagnostic
}

func ok[T any](node T, next int) result[T] {
	return result[T]{outcome: matched, node: node, next: next}
}

func none[T any]() result[T] {
	return result[T]{outcome: unmatched}
}

func wrong[T any](tok *token.Token) result[T] {
	return result[T]{outcome: mismatched, token: tok}
}

func fail[T any](err *errors.Diagnostic) result[T] {
	return result[T]{outcome: failed, err: err}
}

// forward re-types a result that did not match.
func forward[T, U any](r result[U]) result[T] {
	if r.outcome == matched {
		panic("parser: forward of a matched result")
	}
	return result[T]{outcome: r.outcome, token: r.token, err: r.err}
}

// widen turns a concrete node result into an ast.Node result.
func widen[T ast.Node](r result[T]) result[ast.Node] {
	if r.outcome != matched {
		return forward[ast.Node](r)
	}
	return ok[ast.Node](r.node, r.next)
}

// orElse picks the token a diagnostic should point at: the mismatched token
// when there is one, the fallback otherwise (usually because EOF was hit).
func orElse[T any](r result[T], fallback *token.Token) *token.Token {
	if r.outcome == mismatched && r.token != nil && r.token.Type != token.EOF {
		return r.token
	}
	return fallback
}
