package parser

import (
	"strconv"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/token"
)

// parseExpr is the precedence-climbing core: parse a prefix expression,
// then repeatedly fold in infix/postfix operators whose precedence
// exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.curTok.Type]
	if !ok {
		p.errorf("unexpected token %s in expression", p.curTok.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.NEWLINE) && minPrec < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekTok.Type]
		if !ok {
			return left
		}
		p.next()
		left = infix(left)
	}

	// `|>` tolerates a line break before the next stage.
	for p.peekIs(token.NEWLINE) && minPrec < precPipe {
		save := p.peekTok
		savedLex := *p.lex
		savedCur := p.curTok
		p.next()
		if p.peekIs(token.PIPE) {
			p.next()
			left = p.parsePipe(left)
			continue
		}
		// not actually a pipe continuation; restore position
		p.curTok = savedCur
		p.peekTok = save
		*p.lex = savedLex
		break
	}
	return left
}

func (p *Parser) parseIntLit() ast.Expr {
	v, _ := strconv.ParseInt(p.curTok.Literal, 10, 64)
	e := &ast.IntLit{Value: v}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	return e
}

func (p *Parser) parseFloatLit() ast.Expr {
	v, _ := strconv.ParseFloat(p.curTok.Literal, 64)
	e := &ast.FloatLit{Value: v}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	return e
}

func (p *Parser) parseBoolLit() ast.Expr {
	e := &ast.BoolLit{Value: p.curTok.Type == token.TRUE}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	return e
}

func (p *Parser) parseNullLit() ast.Expr {
	e := &ast.NullLit{}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	return e
}

func (p *Parser) parseStringLit() ast.Expr {
	e := &ast.StringLit{Value: p.curTok.Literal}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	return e
}

// parseInterpStringLit re-lexes and re-parses each expression hole the
// lexer captured as raw source text.
func (p *Parser) parseInterpStringLit() ast.Expr {
	e := &ast.InterpStringLit{}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	for _, frag := range p.curTok.Fragments {
		if !frag.IsExpr {
			e.Parts = append(e.Parts, ast.InterpStringPart{Literal: frag.Text})
			continue
		}
		sub := New(frag.Text)
		subExpr := sub.parseExpr(precLowest)
		if len(sub.Errors) > 0 {
			p.Errors = append(p.Errors, sub.Errors...)
		}
		e.Parts = append(e.Parts, ast.InterpStringPart{Expr: subExpr})
	}
	return e
}

func (p *Parser) parseIdentifierOrModuleCall() ast.Expr {
	startLine, startCol := p.curTok.Line, p.curTok.Col
	name := p.curTok.Literal
	if p.peekIs(token.DOT) {
		save := *p.lex
		saveCur, savePeek := p.curTok, p.peekTok
		p.next() // consume dot
		if p.peekIs(token.IDENT) {
			p.next()
			method := p.curTok.Literal
			if p.peekIs(token.LPAREN) {
				p.next()
				args := p.parseArgList()
				e := &ast.ModuleCallExpr{Module: name, Method: method, Args: args}
				e.Line, e.Col = startLine, startCol
				return e
			}
		}
		// not a module call; restore and fall through to plain identifier,
		// letting the generic `.` infix handler take the field access.
		*p.lex = save
		p.curTok, p.peekTok = saveCur, savePeek
	}
	e := &ast.Identifier{Name: name}
	e.Line, e.Col = startLine, startCol
	return e
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	p.next() // consume '('
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpr(precLowest))
		p.next()
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	return args
}

// parseParenOrTernary handles `(expr)` grouping and the ternary
// `cond ? then : else` form. `?` is not registered as a generic infix
// operator, so a ternary is only recognised after an opening `(`:
// either the condition alone is parenthesised, `(cond) ? a : b`, or
// the whole ternary is, `(cond ? a : b)`.
func (p *Parser) parseParenOrTernary() ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	inner := p.parseExpr(precLowest)
	innerTernary := p.peekIs(token.QUESTION)
	if !innerTernary && !p.expect(token.RPAREN) {
		return inner
	}
	if p.peekIs(token.QUESTION) {
		p.next()
		p.next()
		then := p.parseExpr(precLowest)
		if !p.expect(token.COLON) {
			return inner
		}
		p.next()
		els := p.parseExpr(precOrDefault)
		if innerTernary && !p.expect(token.RPAREN) {
			return inner
		}
		e := &ast.TernaryExpr{Cond: inner, Then: then, Else: els}
		e.Line, e.Col = line, col
		return e
	}
	return inner
}

func (p *Parser) parseListLitOrComprehension() ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	p.skipNewlines()
	if p.curIs(token.RBRACKET) {
		e := &ast.ListLit{}
		e.Line, e.Col = line, col
		return e
	}
	first := p.parseExpr(precLowest)
	p.skipNewlines()
	if p.peekIs(token.FOR) {
		p.next() // consume to FOR
		p.next() // consume FOR itself
		if !p.curIs(token.IDENT) {
			p.errorf("expected loop variable in comprehension, found %s", p.curTok.Type)
		}
		varName := p.curTok.Literal
		if !p.expect(token.IN) {
			return first
		}
		p.next()
		iter := p.parseExpr(precLowest)
		e := &ast.ListCompExpr{Body: first, Var: varName, Iter: iter}
		e.Line, e.Col = line, col
		if p.peekIs(token.IF) {
			p.next()
			p.next()
			e.Cond = p.parseExpr(precLowest)
		}
		p.next()
		if !p.curIs(token.RBRACKET) {
			p.errorf("expected ']', found %s", p.curTok.Type)
		}
		return e
	}

	elems := []ast.Expr{first}
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		p.skipNewlines()
		if p.curIs(token.RBRACKET) {
			break
		}
		elems = append(elems, p.parseExpr(precLowest))
		p.skipNewlines()
	}
	p.skipNewlines()
	p.next()
	if !p.curIs(token.RBRACKET) {
		p.errorf("expected ']', found %s", p.curTok.Type)
	}
	e := &ast.ListLit{Elements: elems}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseMapLit() ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	e := &ast.MapLit{}
	e.Line, e.Col = line, col
	p.next()
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		var key string
		switch p.curTok.Type {
		case token.IDENT, token.STRING:
			key = p.curTok.Literal
		default:
			p.errorf("expected map key, found %s", p.curTok.Type)
		}
		if !p.expect(token.COLON) {
			break
		}
		p.next()
		val := p.parseExpr(precLowest)
		e.Entries = append(e.Entries, ast.MapEntry{Key: key, Value: val})
		p.next()
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.next()
			p.skipNewlines()
		}
	}
	if !p.curIs(token.RBRACE) {
		p.errorf("expected '}', found %s", p.curTok.Type)
	}
	return e
}

func (p *Parser) parseUnary() ast.Expr {
	op := p.curTok.Type
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	operand := p.parseExpr(precUnary)
	e := &ast.UnaryExpr{Op: op, Operand: operand}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := p.curTok.Type
	line, col := p.curTok.Line, p.curTok.Col
	prec := p.curPrecedence()
	p.next()

	if op == token.DOTDOT {
		right := p.parseExpr(prec)
		e := &ast.RangeExpr{Start: left, End: right}
		e.Line, e.Col = line, col
		return e
	}

	right := p.parseExpr(prec)
	e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseOrDefault(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	def := p.parseExpr(precOrDefault)
	e := &ast.OrDefaultExpr{Expr: left, Default: def}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseCoalesce(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	def := p.parseExpr(precCoalesce)
	e := &ast.CoalesceExpr{Expr: left, Default: def}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parsePipe(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	target := p.parseExpr(precPipe)
	e := &ast.PipeExpr{Left: left, Target: target}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	args := p.parseArgList()
	e := &ast.CallExpr{Callee: left, Args: args}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseIndexOrSlice(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	p.next()
	if p.curIs(token.COLON) {
		p.next()
		var end ast.Expr
		if !p.curIs(token.RBRACKET) {
			end = p.parseExpr(precLowest)
			p.next()
		}
		e := &ast.SliceExpr{Target: left, End: end}
		e.Line, e.Col = line, col
		return e
	}
	idx := p.parseExpr(precLowest)
	if p.peekIs(token.COLON) {
		p.next()
		p.next()
		var end ast.Expr
		if !p.curIs(token.RBRACKET) {
			end = p.parseExpr(precLowest)
			p.next()
		}
		e := &ast.SliceExpr{Target: left, Start: idx, End: end}
		e.Line, e.Col = line, col
		return e
	}
	p.next()
	if !p.curIs(token.RBRACKET) {
		p.errorf("expected ']', found %s", p.curTok.Type)
	}
	e := &ast.IndexExpr{Target: left, Index: idx}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseField(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	if !p.expect(token.IDENT) {
		return left
	}
	e := &ast.FieldExpr{Target: left, Field: p.curTok.Literal}
	e.Line, e.Col = line, col
	return e
}

func (p *Parser) parseSafeField(left ast.Expr) ast.Expr {
	line, col := p.curTok.Line, p.curTok.Col
	if !p.expect(token.IDENT) {
		return left
	}
	e := &ast.SafeFieldExpr{Target: left, Field: p.curTok.Literal}
	e.Line, e.Col = line, col
	return e
}
