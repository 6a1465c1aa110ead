package parser

import (
	"fmt"

	"github.com/thp-lang/thp/internal/compiler/ast"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

var assignmentOperators = []string{"=", "+=", "-=", "*=", "/=", "%="}

// statement tries every statement production in turn. A production that
// fails after committing stops the search.
func (p *Parser) statement(pos int) result[ast.Node] {
	productions := []func(int) result[ast.Node]{
		func(pos int) result[ast.Node] { return widen(p.binding(pos)) },
		func(pos int) result[ast.Node] { return widen(p.functionDecl(pos)) },
		func(pos int) result[ast.Node] { return widen(p.conditional(pos)) },
		func(pos int) result[ast.Node] { return widen(p.forLoop(pos)) },
		func(pos int) result[ast.Node] { return widen(p.whileLoop(pos)) },
		func(pos int) result[ast.Node] { return widen(p.block(pos)) },
		func(pos int) result[ast.Node] { return widen(p.assignment(pos)) },
	}

	for _, production := range productions {
		r := production(pos)
		if r.outcome == matched || r.outcome == failed {
			return r
		}
	}
	return none[ast.Node]()
}

// binding parses (val|var)? Datatype? identifier = expression
func (p *Parser) binding(pos int) result[*ast.Binding] {
	start := p.skipTrivia(pos)
	first := p.at(start)
	b := &ast.Binding{}
	next := start + 1

	switch first.Type {
	case token.VAL, token.VAR:
		b.Keyword = first
		anchor := first
		message := "There should be an identifier after a binding"
		if p.at(p.skipTrivia(next)).Type == token.DATATYPE {
			datatype := p.typeRef(next)
			if datatype.outcome != matched {
				return forward[*ast.Binding](datatype)
			}
			b.Datatype, next = datatype.node, datatype.next
			anchor = datatype.node.Name
			message = "There should be an identifier after the datatype"
		}
		name := p.expect(next, token.IDENT)
		if name.outcome != matched {
			return fail[*ast.Binding](p.syntaxError(errors.SyntaxIncompleteStatement, orElse(name, anchor), message))
		}
		b.Name, next = name.node, name.next
	case token.DATATYPE:
		datatype := p.typeRef(start)
		if datatype.outcome != matched {
			return forward[*ast.Binding](datatype)
		}
		// a datatype alone does not commit: Int => 20 is not a binding
		name := p.expect(datatype.next, token.IDENT)
		if name.outcome != matched {
			return none[*ast.Binding]()
		}
		b.Datatype, b.Name, next = datatype.node, name.node, name.next
	default:
		return none[*ast.Binding]()
	}

	equal, found := p.operator(next, "=")
	if !found {
		return fail[*ast.Binding](p.syntaxError(errors.SyntaxIncompleteStatement, p.anchor(next, b.Name),
			"There should be an equal sign `=` after the identifier"))
	}

	value := p.expression(next + 1)
	switch value.outcome {
	case failed:
		return forward[*ast.Binding](value)
	case unmatched, mismatched:
		return fail[*ast.Binding](p.syntaxError(errors.SyntaxIncompleteStatement, equal,
			"Expected an expression after the equal `=` operator"))
	}
	b.Value = value.node

	end, err := p.terminator(value.next)
	if err != nil {
		return fail[*ast.Binding](err)
	}
	return ok(b, end)
}

// assignment parses identifier (= | += | -= | *= | /= | %=) expression
func (p *Parser) assignment(pos int) result[*ast.Assignment] {
	target := p.expect(pos, token.IDENT)
	if target.outcome != matched {
		return none[*ast.Assignment]()
	}
	op, found := p.operator(target.next, assignmentOperators...)
	if !found {
		return none[*ast.Assignment]()
	}

	value := p.expression(target.next + 1)
	switch value.outcome {
	case failed:
		return forward[*ast.Assignment](value)
	case unmatched, mismatched:
		return fail[*ast.Assignment](p.syntaxError(errors.SyntaxIncompleteStatement, op,
			fmt.Sprintf("Expected an expression after this `%s` operator", op.Literal)))
	}

	end, err := p.terminator(value.next)
	if err != nil {
		return fail[*ast.Assignment](err)
	}
	return ok(&ast.Assignment{Target: target.node, Operator: op, Value: value.node}, end)
}

// functionDecl parses fun identifier(params) (-> Datatype)? block
func (p *Parser) functionDecl(pos int) result[*ast.FunctionDecl] {
	fun := p.expect(pos, token.FUN)
	if fun.outcome != matched {
		return none[*ast.FunctionDecl]()
	}
	decl := &ast.FunctionDecl{Fun: fun.node}

	name := p.expect(fun.next, token.IDENT)
	if name.outcome != matched {
		return fail[*ast.FunctionDecl](p.syntaxError(errors.SyntaxInvalidFunctionDeclaration, orElse(name, fun.node),
			"Expected an identifier after the `fun` keyword."))
	}
	decl.Name = name.node

	params := p.params(name.next, name.node)
	if params.outcome != matched {
		return forward[*ast.FunctionDecl](params)
	}
	decl.Params = params.node
	next := params.next

	if arrow, found := p.operator(next, "->"); found {
		ret := p.typeRef(next + 1)
		switch ret.outcome {
		case failed:
			return forward[*ast.FunctionDecl](ret)
		case unmatched, mismatched:
			return fail[*ast.FunctionDecl](p.syntaxError(errors.SyntaxInvalidFunctionDeclaration, orElse(ret, arrow),
				"Expected a datatype after the arrow operator."))
		}
		decl.ReturnType, next = ret.node, ret.next
	}

	body := p.block(next)
	switch body.outcome {
	case failed:
		return forward[*ast.FunctionDecl](body)
	case unmatched, mismatched:
		return fail[*ast.FunctionDecl](p.syntaxError(errors.SyntaxInvalidFunctionDeclaration, orElse(body, decl.Name),
			"Expected a block after the function declaration."))
	}
	decl.Body = body.node
	return ok(decl, body.next)
}

// params parses ( (Datatype identifier (, Datatype identifier)* ,?)? )
func (p *Parser) params(pos int, name *token.Token) result[[]*ast.Param] {
	open := p.expect(pos, token.LPAREN)
	if open.outcome != matched {
		return fail[[]*ast.Param](p.syntaxError(errors.SyntaxInvalidFunctionDeclaration, orElse(open, name),
			"Expected an opening paren after the function identifier."))
	}

	closeError := func(tok *token.Token) result[[]*ast.Param] {
		if tok.Type == token.EOF {
			tok = open.node
		}
		return fail[[]*ast.Param](p.syntaxError(errors.SyntaxIncompleteParameterList, tok,
			"Expected a closing paren after the function parameters."))
	}

	var params []*ast.Param
	next := open.next
	for {
		next = p.skipTrivia(next)
		tok := p.at(next)
		if tok.Type == token.RPAREN {
			return ok(params, next+1)
		}

		datatype := p.typeRef(next)
		switch datatype.outcome {
		case failed:
			return forward[[]*ast.Param](datatype)
		case unmatched, mismatched:
			return closeError(tok)
		}
		ident := p.expect(datatype.next, token.IDENT)
		if ident.outcome != matched {
			return fail[[]*ast.Param](p.syntaxError(errors.SyntaxIncompleteParameterList, orElse(ident, datatype.node.Name),
				"Expected an identifier for the parameter."))
		}
		params = append(params, &ast.Param{Datatype: datatype.node, Name: ident.node})

		next = p.skipTrivia(ident.next)
		switch tok := p.at(next); tok.Type {
		case token.COMMA:
			next++
		case token.RPAREN:
			return ok(params, next+1)
		default:
			return closeError(tok)
		}
	}
}

// typeRef parses Datatype or Datatype[TypeRef, ...]
func (p *Parser) typeRef(pos int) result[*ast.TypeRef] {
	name := p.expect(pos, token.DATATYPE)
	if name.outcome != matched {
		return forward[*ast.TypeRef](name)
	}
	ref := &ast.TypeRef{Name: name.node}
	next := name.next

	open := p.at(next)
	if open.Type != token.LBRACKET {
		return ok(ref, next)
	}
	next++

	for {
		param := p.typeRef(next)
		switch param.outcome {
		case failed:
			return param
		case unmatched, mismatched:
			return fail[*ast.TypeRef](p.syntaxError(errors.SyntaxInvalidDatatype, orElse(param, open),
				"Expected a datatype inside the brackets"))
		}
		ref.Params = append(ref.Params, param.node)
		next = param.next

		switch tok := p.at(next); tok.Type {
		case token.COMMA:
			next++
		case token.RBRACKET:
			ref.Close = tok
			return ok(ref, next+1)
		default:
			if tok.Type == token.EOF {
				tok = open
			}
			return fail[*ast.TypeRef](p.syntaxError(errors.SyntaxInvalidDatatype, tok,
				"Expected a closing bracket `]` after the datatype parameters"))
		}
	}
}

// block parses { (statement | expression)* }
func (p *Parser) block(pos int) result[*ast.Block] {
	open := p.expect(pos, token.LBRACE)
	if open.outcome != matched {
		return forward[*ast.Block](open)
	}
	b := &ast.Block{Open: open.node}
	next := open.next

	for {
		next = p.skipTrivia(next)
		tok := p.at(next)
		switch tok.Type {
		case token.RBRACE:
			b.Close = tok
			return ok(b, next+1)
		case token.EOF:
			return fail[*ast.Block](p.syntaxError(errors.SyntaxIncompleteBlock, open.node,
				"Expected a closing brace after the block body."))
		}

		member := p.member(next)
		switch member.outcome {
		case matched:
			b.Members = append(b.Members, member.node)
			next = member.next
		case failed:
			return forward[*ast.Block](member)
		default:
			return fail[*ast.Block](p.syntaxError(errors.SyntaxIncompleteBlock, tok,
				"Expected a closing brace after the block body."))
		}
	}
}

// conditional parses if expr block (else if expr block)* (else block)?
func (p *Parser) conditional(pos int) result[*ast.Conditional] {
	ifToken := p.expect(pos, token.IF)
	if ifToken.outcome != matched {
		return none[*ast.Conditional]()
	}

	cond, body, next, err := p.guardedBlock(ifToken.node, ifToken.next)
	if err != nil {
		return fail[*ast.Conditional](err)
	}
	c := &ast.Conditional{If: ifToken.node, Condition: cond, Then: body}

	for {
		elseToken := p.expect(next, token.ELSE)
		if elseToken.outcome != matched {
			return ok(c, next)
		}

		if elseIf := p.expect(elseToken.next, token.IF); elseIf.outcome == matched {
			cond, body, after, err := p.guardedBlock(elseIf.node, elseIf.next)
			if err != nil {
				return fail[*ast.Conditional](err)
			}
			c.ElseIfs = append(c.ElseIfs, &ast.ElseIf{Condition: cond, Body: body})
			next = after
			continue
		}

		body := p.block(elseToken.next)
		switch body.outcome {
		case failed:
			return forward[*ast.Conditional](body)
		case unmatched, mismatched:
			return fail[*ast.Conditional](p.syntaxError(errors.SyntaxInvalidConditional, orElse(body, elseToken.node),
				"Expected a block after the else keyword"))
		}
		c.Else = body.node
		return ok(c, body.next)
	}
}

// guardedBlock parses the condition and block that follow an if keyword.
func (p *Parser) guardedBlock(keyword *token.Token, pos int) (ast.Expression, *ast.Block, int, *errors.Diagnostic) {
	cond := p.expression(pos)
	switch cond.outcome {
	case failed:
		return nil, nil, 0, cond.err
	case unmatched, mismatched:
		return nil, nil, 0, p.syntaxError(errors.SyntaxInvalidConditional, p.anchor(pos, keyword),
			"Expected an expression after the if token")
	}

	body := p.block(cond.next)
	switch body.outcome {
	case failed:
		return nil, nil, 0, body.err
	case unmatched, mismatched:
		return nil, nil, 0, p.syntaxError(errors.SyntaxInvalidConditional, orElse(body, keyword),
			"Expected a block after the condition")
	}
	return cond.node, body.node, body.next, nil
}

// forLoop parses for identifier (, identifier)? in expression block
func (p *Parser) forLoop(pos int) result[*ast.ForLoop] {
	forToken := p.expect(pos, token.FOR)
	if forToken.outcome != matched {
		return none[*ast.ForLoop]()
	}
	loop := &ast.ForLoop{For: forToken.node}

	first := p.expect(forToken.next, token.IDENT)
	if first.outcome != matched {
		return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, orElse(first, forToken.node),
			"Expected an identifier after the `for` keyword"))
	}
	loop.Value = first.node
	next := first.next

	if p.at(next).Type == token.COMMA {
		comma := p.at(next)
		second := p.expect(next+1, token.IDENT)
		if second.outcome != matched {
			return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, orElse(second, comma),
				"Expected an identifier after the comma"))
		}
		loop.Key, loop.Value = first.node, second.node
		next = second.next
	}

	in := p.expect(next, token.IN)
	switch in.outcome {
	case mismatched:
		return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, in.token,
			fmt.Sprintf("Expected the `in` keyword, found `%s`", in.token.Literal)))
	case unmatched:
		return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, loop.Value,
			"Expected the `in` keyword"))
	}

	collection := p.expression(in.next)
	switch collection.outcome {
	case failed:
		return forward[*ast.ForLoop](collection)
	case unmatched, mismatched:
		return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, p.anchor(in.next, in.node),
			"Expected an expression after the `in` keyword"))
	}
	loop.Collection = collection.node

	body := p.block(collection.next)
	switch body.outcome {
	case failed:
		return forward[*ast.ForLoop](body)
	case unmatched, mismatched:
		return fail[*ast.ForLoop](p.syntaxError(errors.SyntaxInvalidForLoop, orElse(body, forToken.node),
			"Expected a block after the collection"))
	}
	loop.Body = body.node
	return ok(loop, body.next)
}

// whileLoop parses while expression block
func (p *Parser) whileLoop(pos int) result[*ast.WhileLoop] {
	whileToken := p.expect(pos, token.WHILE)
	if whileToken.outcome != matched {
		return none[*ast.WhileLoop]()
	}

	cond := p.expression(whileToken.next)
	switch cond.outcome {
	case failed:
		return forward[*ast.WhileLoop](cond)
	case unmatched, mismatched:
		return fail[*ast.WhileLoop](p.syntaxError(errors.SyntaxInvalidWhileLoop, p.anchor(whileToken.next, whileToken.node),
			"Expected an expression after the `while` keyword"))
	}

	body := p.block(cond.next)
	switch body.outcome {
	case failed:
		return forward[*ast.WhileLoop](body)
	case unmatched, mismatched:
		return fail[*ast.WhileLoop](p.syntaxError(errors.SyntaxInvalidWhileLoop, orElse(body, whileToken.node),
			"Expected a block after the condition"))
	}
	return ok(&ast.WhileLoop{While: whileToken.node, Condition: cond.node, Body: body.node}, body.next)
}

// anchor returns the token at pos for a diagnostic, or fallback when pos is
// layout or EOF and would make a poor location.
func (p *Parser) anchor(pos int, fallback *token.Token) *token.Token {
	tok := p.at(p.skipComments(pos))
	if tok.Type == token.EOF || tok.Type.IsLayout() {
		return fallback
	}
	return tok
}
