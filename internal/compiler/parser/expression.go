package parser

import (
	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

// binaryLevels lists the binary operators from the loosest to the tightest
// binding. All of them are left associative.
var binaryLevels = [][]string{
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-", "++"},
	{"*", "/"},
}

func (p *Parser) expression(pos int) result[ast.Expression] {
	expr, _ := p.binary(p.skipComments(pos), 0, 0)
	return expr
}

// binary parses the operators of binaryLevels[level]. An operator may start
// the next line when that line is indented; indent counts the indentation
// levels opened by the enclosing chains, inside which plain newlines also
// continue the expression. The second result is the number of levels this
// chain opened but could not close: a looser chain around it keeps
// continuing on those lines and closes them itself.
func (p *Parser) binary(pos, level, indent int) (result[ast.Expression], int) {
	if level == len(binaryLevels) {
		return p.unary(pos), 0
	}

	left, owed := p.binary(pos, level+1, indent)
	if left.outcome != matched {
		return left, 0
	}
	expr, next := left.node, left.next

	for {
		after, indented := p.continuation(next, indent+owed)
		op, found := p.operator(after, binaryLevels[level]...)
		if !found {
			break
		}
		if indented {
			owed++
		}

		operand, indented := p.continuation(after+1, indent+owed)
		if indented {
			owed++
		}
		right, open := p.binary(operand, level+1, indent+owed)
		switch right.outcome {
		case failed:
			return right, 0
		case unmatched, mismatched:
			return fail[ast.Expression](p.syntaxError(errors.SyntaxIncompleteExpression, op,
				"Expected an expression after this operator")), 0
		}

		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right.node}
		next = right.next
		owed += open
	}

	next, owed = p.closeIndentation(next, owed)
	return ok(expr, next), owed
}

// continuation looks past the end of a line for the rest of an expression.
// A newline followed by an indent always continues it; a plain newline only
// does inside an indented chain (depth > 0). Comment lines in between are
// skipped.
func (p *Parser) continuation(pos, depth int) (int, bool) {
	pos = p.skipComments(pos)
	if p.at(pos).Type != token.NEWLINE {
		return pos, false
	}

	next, indented := pos+1, false
	switch {
	case p.at(next).Type == token.INDENT:
		next, indented = next+1, true
	case depth == 0:
		return pos, false
	}

	for {
		after := p.skipComments(next)
		if after == next || p.at(after).Type != token.NEWLINE {
			break
		}
		if typ := p.at(after + 1).Type; typ == token.INDENT || typ == token.DEDENT {
			break
		}
		next = after + 1
	}
	return next, indented
}

// closeIndentation consumes the dedents that close the indentation levels a
// chain opened, as far as they follow it directly, and returns how many are
// still open.
func (p *Parser) closeIndentation(pos, owed int) (int, int) {
	for ; owed > 0 && p.at(pos).Type == token.DEDENT; owed-- {
		pos++
	}
	return pos, owed
}

// unary parses ! and - prefixes
func (p *Parser) unary(pos int) result[ast.Expression] {
	op, found := p.operator(pos, "!", "-")
	if !found {
		return p.postfix(pos)
	}

	operand := p.unary(pos + 1)
	switch operand.outcome {
	case failed:
		return operand
	case unmatched, mismatched:
		return fail[ast.Expression](p.syntaxError(errors.SyntaxIncompleteExpression, op,
			"Expected an expression after this unary operator"))
	}
	return ok[ast.Expression](&ast.UnaryExpr{Operator: op, Operand: operand.node}, operand.next)
}

// postfix parses calls, array access and member access. The opening paren or
// bracket must touch the expression it applies to: f (x) is not a call.
func (p *Parser) postfix(pos int) result[ast.Expression] {
	primary := p.primary(pos)
	if primary.outcome != matched {
		return primary
	}
	expr, next := primary.node, primary.next

	for {
		tok := p.at(next)
		_, end := expr.Span()

		switch {
		case tok.Type == token.LPAREN && tok.Pos.Offset == end:
			args, closing, after, err := p.list(tok, next+1, token.RPAREN, errors.SyntaxIncompleteArgumentList,
				"Expected a closing paren after the function arguments.")
			if err != nil {
				return fail[ast.Expression](err)
			}
			expr = &ast.CallExpr{Callee: expr, Arguments: args, Close: closing}
			next = after

		case tok.Type == token.LBRACKET && tok.Pos.Offset == end:
			index := p.expression(p.skipTrivia(next + 1))
			switch index.outcome {
			case failed:
				return index
			case unmatched, mismatched:
				return fail[ast.Expression](p.syntaxError(errors.SyntaxInvalidArrayAccess, orElse(index, tok),
					"Expected an expression for this array access"))
			}
			closing := p.expect(index.next, token.RBRACKET)
			if closing.outcome != matched {
				return fail[ast.Expression](p.syntaxError(errors.SyntaxInvalidArrayAccess, orElse(closing, tok),
					"Expected a closing bracket `]` after the index"))
			}
			expr = &ast.IndexExpr{Target: expr, Index: index.node, Close: closing.node}
			next = closing.next

		case tok.Type == token.OPERATOR && tok.Literal == ".":
			member := p.at(next + 1)
			if member.Type != token.IDENT {
				return fail[ast.Expression](p.syntaxError(errors.SyntaxIncompleteExpression, tok,
					"Expected an identifier after the dot"))
			}
			expr = &ast.MemberExpr{Target: expr, Member: member}
			next += 2

		default:
			return ok(expr, next)
		}
	}
}

func (p *Parser) primary(pos int) result[ast.Expression] {
	tok := p.at(pos)
	switch tok.Type {
	case token.INT:
		return ok[ast.Expression](&ast.IntLiteral{Token: tok}, pos+1)
	case token.FLOAT:
		return ok[ast.Expression](&ast.FloatLiteral{Token: tok}, pos+1)
	case token.STRING:
		return ok[ast.Expression](&ast.StringLiteral{Token: tok}, pos+1)
	case token.TRUE, token.FALSE:
		return ok[ast.Expression](&ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}, pos+1)
	case token.IDENT:
		return ok[ast.Expression](&ast.Identifier{Token: tok}, pos+1)
	case token.LPAREN:
		return p.grouping(tok, pos+1)
	case token.LBRACKET:
		elements, closing, next, err := p.list(tok, pos+1, token.RBRACKET, errors.SyntaxIncompleteArrayLiteral,
			"Expected a closing bracket after the array elements.")
		if err != nil {
			return fail[ast.Expression](err)
		}
		return ok[ast.Expression](&ast.ArrayLiteral{Open: tok, Elements: elements, Close: closing}, next)
	case token.EOF:
		return none[ast.Expression]()
	}
	return wrong[ast.Expression](tok)
}

// grouping parses ( expression ) and returns the inner expression.
func (p *Parser) grouping(open *token.Token, pos int) result[ast.Expression] {
	inner := p.expression(p.skipTrivia(pos))
	switch inner.outcome {
	case failed:
		return inner
	case unmatched, mismatched:
		return fail[ast.Expression](p.syntaxError(errors.SyntaxIncompleteExpression, orElse(inner, open),
			"Expected an expression after the opening paren"))
	}

	closing := p.expect(inner.next, token.RPAREN)
	if closing.outcome != matched {
		return fail[ast.Expression](p.syntaxError(errors.SyntaxIncompleteExpression, orElse(closing, open),
			"Expected a closing paren `)`"))
	}
	return ok(inner.node, closing.next)
}

// list parses comma separated expressions up to a closing token, allowing a
// trailing comma and any layout in between.
func (p *Parser) list(open *token.Token, pos int, closeType token.TokenType, code errors.Code, message string) ([]ast.Expression, *token.Token, int, *errors.Diagnostic) {
	closeError := func(tok *token.Token) *errors.Diagnostic {
		if tok.Type == token.EOF {
			tok = open
		}
		return p.syntaxError(code, tok, message)
	}

	var elements []ast.Expression
	next := pos
	for {
		next = p.skipTrivia(next)
		tok := p.at(next)
		if tok.Type == closeType {
			return elements, tok, next + 1, nil
		}

		element := p.expression(next)
		switch element.outcome {
		case failed:
			return nil, nil, 0, element.err
		case unmatched, mismatched:
			return nil, nil, 0, closeError(tok)
		}
		elements = append(elements, element.node)

		next = p.skipTrivia(element.next)
		switch tok := p.at(next); tok.Type {
		case token.COMMA:
			next++
		case closeType:
			return elements, tok, next + 1, nil
		default:
			return nil, nil, 0, closeError(tok)
		}
	}
}
