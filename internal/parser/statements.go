package parser

import (
	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/token"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.PARALLEL:
		return p.parseParallelStmt()
	case token.FN:
		return p.parseFuncDeclStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.USE:
		return p.parseUseStmt()
	case token.CONST:
		return p.parseConstStmt()
	case token.YIELD:
		return p.parseYieldStmt()
	case token.STOP:
		return p.parseStopStmt()
	case token.BREAK:
		b := &ast.BreakStmt{}
		b.Line, b.Col = p.curTok.Line, p.curTok.Col
		return b
	case token.CONTINUE:
		c := &ast.ContinueStmt{}
		c.Line, c.Col = p.curTok.Line, p.curTok.Col
		return c
	case token.IDENT:
		return p.parseIdentLedStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	blk := &ast.BlockStmt{}
	blk.Line, blk.Col = p.curTok.Line, p.curTok.Col
	if !p.curIs(token.LBRACE) {
		p.errorf("expected '{', found %s", p.curTok.Type)
		return blk
	}
	p.next()
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		// A statement leaves curTok on its own last token; step past it.
		if !p.curIs(token.EOF) {
			p.next()
		}
		p.skipNewlines()
	}
	if !p.curIs(token.RBRACE) {
		p.errorf("expected '}', found %s", p.curTok.Type)
		return blk
	}
	return blk
}

func (p *Parser) parseIfStmt() ast.Stmt {
	s := &ast.IfStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	s.Cond = p.parseExpr(precLowest)
	p.next()
	s.Then = p.parseBlock()
	if p.peekIs(token.ELSE) {
		p.next()
		p.next()
		if p.curIs(token.IF) {
			s.Else = p.parseIfStmt()
		} else {
			s.Else = p.parseBlock()
		}
	}
	return s
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	s := &ast.WhileStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	s.Cond = p.parseExpr(precLowest)
	p.next()
	s.Body = p.parseBlock()
	return s
}

func (p *Parser) parseForStmt() ast.Stmt {
	s := &ast.ForStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	if !p.curIs(token.IDENT) {
		p.errorf("expected loop variable, found %s", p.curTok.Type)
		return s
	}
	s.Var = p.curTok.Literal
	if !p.expect(token.IN) {
		return s
	}
	p.next()
	s.Iter = p.parseExpr(precLowest)
	p.next()
	s.Body = p.parseBlock()
	return s
}

func (p *Parser) parseParallelStmt() ast.Stmt {
	s := &ast.ParallelStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	if !p.curIs(token.IDENT) {
		p.errorf("expected loop variable, found %s", p.curTok.Type)
		return s
	}
	s.Var = p.curTok.Literal
	if !p.expect(token.IN) {
		return s
	}
	p.next()
	s.Iter = p.parseExpr(precLowest)
	if p.peekIs(token.WORKERS) {
		p.next()
		if !p.expect(token.ASSIGN) {
			return s
		}
		p.next()
		s.Workers = p.parseExpr(precLowest)
	}
	p.next()
	s.Body = p.parseBlock()
	return s
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.expect(token.LPAREN) {
		return params
	}
	p.next()
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.errorf("expected parameter name, found %s", p.curTok.Type)
			break
		}
		param := ast.Param{Name: p.curTok.Literal}
		if p.peekIs(token.COLON) {
			p.next()
			p.next()
			param.Type = p.curTok.Literal
			p.next()
		} else {
			p.next()
		}
		if p.curIs(token.ASSIGN) {
			p.next()
			param.Default = p.parseExpr(precLowest)
			p.next()
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	return params
}

func (p *Parser) parseFuncDeclStmt() ast.Stmt {
	s := &ast.FuncDeclStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	if !p.expect(token.IDENT) {
		return s
	}
	s.Name = p.curTok.Literal
	s.Params = p.parseParamList()
	if p.peekIs(token.ARROW) {
		p.next()
		p.next()
		s.ReturnType = p.curTok.Literal
		p.next()
	} else {
		p.next()
	}
	s.Body = p.parseBlock()
	return s
}

func (p *Parser) parseFuncLit() ast.Expr {
	e := &ast.FuncLit{}
	e.Line, e.Col = p.curTok.Line, p.curTok.Col
	e.Params = p.parseParamList()
	if p.peekIs(token.ARROW) {
		p.next()
		p.next()
		e.ReturnType = p.curTok.Literal
		p.next()
	} else {
		p.next()
	}
	e.Body = p.parseBlock()
	return e
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	s := &ast.ReturnStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	if p.peekIs(token.NEWLINE) || p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		return s
	}
	p.next()
	s.Value = p.parseExpr(precLowest)
	return s
}

func (p *Parser) parseTryStmt() ast.Stmt {
	s := &ast.TryStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	s.Body = p.parseBlock()
	if !p.expect(token.CATCH) {
		return s
	}
	if !p.expect(token.LPAREN) {
		return s
	}
	if !p.expect(token.IDENT) {
		return s
	}
	s.CatchVar = p.curTok.Literal
	if !p.expect(token.RPAREN) {
		return s
	}
	p.next()
	s.Catch = p.parseBlock()
	if p.peekIs(token.FINALLY) {
		p.next()
		p.next()
		s.Finally = p.parseBlock()
	}
	return s
}

func (p *Parser) parseUseStmt() ast.Stmt {
	s := &ast.UseStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	if !p.expect(token.STRING) {
		return s
	}
	s.Path = p.curTok.Literal
	return s
}

func (p *Parser) parseConstStmt() ast.Stmt {
	s := &ast.ConstStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	if !p.expect(token.IDENT) {
		return s
	}
	s.Name = p.curTok.Literal
	if !p.expect(token.ASSIGN) {
		return s
	}
	p.next()
	s.Value = p.parseExpr(precLowest)
	return s
}

func (p *Parser) parseYieldStmt() ast.Stmt {
	s := &ast.YieldStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	p.next()
	s.Value = p.parseExpr(precLowest)
	return s
}

func (p *Parser) parseStopStmt() ast.Stmt {
	s := &ast.StopStmt{}
	s.Line, s.Col = p.curTok.Line, p.curTok.Col
	if p.peekIs(token.NEWLINE) || p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		return s
	}
	p.next()
	s.Code = p.parseExpr(precLowest)
	return s
}

// parseIdentLedStatement disambiguates the several statement forms that
// begin with an identifier: `:=` define, `name: Type :=` typed define,
// `=` assign, compound-assign, `target[idx] = value` index-assign, or
// (falling through) a plain expression statement such as a bare call.
func (p *Parser) parseIdentLedStatement() ast.Stmt {
	startLine, startCol := p.curTok.Line, p.curTok.Col
	name := p.curTok.Literal

	switch p.peekTok.Type {
	case token.DEFINE:
		p.next()
		p.next()
		s := &ast.LetStmt{Name: name, Value: p.parseExpr(precLowest)}
		s.Line, s.Col = startLine, startCol
		return s
	case token.COLON:
		p.next()
		p.next()
		typ := p.curTok.Literal
		if !p.expect(token.DEFINE) {
			return p.parseExprStatement()
		}
		p.next()
		s := &ast.LetStmt{Name: name, Type: typ, Value: p.parseExpr(precLowest)}
		s.Line, s.Col = startLine, startCol
		return s
	case token.ASSIGN:
		p.next()
		p.next()
		s := &ast.AssignStmt{Name: name, Value: p.parseExpr(precLowest)}
		s.Line, s.Col = startLine, startCol
		return s
	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.PCT_EQ:
		op := p.peekTok.Type
		p.next()
		p.next()
		s := &ast.CompoundAssignStmt{Name: name, Op: op, Value: p.parseExpr(precLowest)}
		s.Line, s.Col = startLine, startCol
		return s
	}

	// Might be `name[index] = value`, a plain index expression, or a call.
	expr := p.parseExpr(precLowest)
	if idx, ok := expr.(*ast.IndexExpr); ok && p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		s := &ast.IndexAssignStmt{Target: idx.Target, Index: idx.Index, Value: p.parseExpr(precLowest)}
		s.Line, s.Col = startLine, startCol
		return s
	}
	es := &ast.ExprStmt{X: expr}
	es.Line, es.Col = startLine, startCol
	return es
}

func (p *Parser) parseExprStatement() ast.Stmt {
	line, col := p.curTok.Line, p.curTok.Col
	expr := p.parseExpr(precLowest)
	s := &ast.ExprStmt{X: expr}
	s.Line, s.Col = line, col
	return s
}
