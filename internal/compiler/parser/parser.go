package parser

import (
	"fmt"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// Parser is a recursive descent parser over a complete token slice. Every
// production takes the position to start at and returns a result holding the
// position after what it consumed, so alternatives can be retried from the
// same position without any parser state to restore.
type Parser struct {
	tokens []token.Token
}

// New creates a parser. The token slice is expected to end with EOF, as the
// lexer produces it; one is appended otherwise.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		offset := 0
		if len(tokens) > 0 {
			offset = tokens[len(tokens)-1].End()
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Type: token.EOF, Pos: token.Position{Offset: offset}})
	}
	return &Parser{tokens: tokens}
}

// Parse builds the module for tokens. The first syntax error aborts parsing
// and is returned as a *errors.Diagnostic.
func Parse(tokens []token.Token) (*ast.Module, error) {
	return New(tokens).ParseModule()
}

// ParseModule is the main entry point: a sequence of statements and
// expressions up to EOF.
func (p *Parser) ParseModule() (*ast.Module, error) {
	module := &ast.Module{}
	pos := 0

	for {
		pos = p.skipTrivia(pos)
		tok := p.at(pos)
		if tok.Type == token.EOF {
			return module, nil
		}

		member := p.member(pos)
		switch member.outcome {
		case matched:
			module.Members = append(module.Members, member.node)
			pos = member.next
		case failed:
			return nil, member.err
		default:
			return nil, p.syntaxError(errors.SyntaxUnexpectedTokens, tok,
				"Expected a statement or an expression at the top level.")
		}
	}
}

// member parses a statement, or else an expression that ends its line.
func (p *Parser) member(pos int) result[ast.Node] {
	stmt := p.statement(pos)
	if stmt.outcome == matched || stmt.outcome == failed {
		return stmt
	}

	expr := p.expression(pos)
	switch expr.outcome {
	case matched:
		next, err := p.terminator(expr.next)
		if err != nil {
			return fail[ast.Node](err)
		}
		return ok[ast.Node](expr.node, next)
	case failed:
		return forward[ast.Node](expr)
	}
	return none[ast.Node]()
}

// at returns the token at pos, or the final EOF past the end.
func (p *Parser) at(pos int) *token.Token {
	if pos >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}
	return &p.tokens[pos]
}

func (p *Parser) syntaxError(code errors.Code, tok *token.Token, message string) *errors.Diagnostic {
	return errors.New(errors.PhaseParser, code, tok.Pos.Offset, message, tok.Pos.Offset, tok.End())
}

// skipTrivia skips layout tokens and comments.
func (p *Parser) skipTrivia(pos int) int {
	for {
		typ := p.at(pos).Type
		if !typ.IsLayout() && !typ.IsComment() {
			return pos
		}
		pos++
	}
}

func (p *Parser) skipComments(pos int) int {
	for p.at(pos).Type.IsComment() {
		pos++
	}
	return pos
}

// expect matches a token of type typ after any layout and comments. EOF is
// unmatched; any other token is a mismatch.
func (p *Parser) expect(pos int, typ token.TokenType) result[*token.Token] {
	pos = p.skipTrivia(pos)
	tok := p.at(pos)
	switch tok.Type {
	case typ:
		return ok(tok, pos+1)
	case token.EOF:
		return none[*token.Token]()
	}
	return wrong[*token.Token](tok)
}

// operator matches one of ops exactly at pos, skipping nothing.
func (p *Parser) operator(pos int, ops ...string) (*token.Token, bool) {
	tok := p.at(pos)
	if tok.Type != token.OPERATOR {
		return nil, false
	}
	for _, op := range ops {
		if tok.Literal == op {
			return tok, true
		}
	}
	return nil, false
}

// terminator ends a statement: a newline, which is consumed, or EOF or a
// closing brace, which are left for the caller.
func (p *Parser) terminator(pos int) (int, *errors.Diagnostic) {
	for {
		typ := p.at(pos).Type
		if typ != token.INDENT && typ != token.DEDENT && !typ.IsComment() {
			break
		}
		pos++
	}

	tok := p.at(pos)
	switch tok.Type {
	case token.NEWLINE:
		return pos + 1, nil
	case token.EOF, token.RBRACE:
		return pos, nil
	}
	return 0, p.syntaxError(errors.SyntaxUnexpectedTokens, tok,
		fmt.Sprintf("Unexpected token `%s`, expected a new line", tok.Literal))
}
