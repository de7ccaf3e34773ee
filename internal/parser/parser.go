// Package parser implements a recursive-descent, precedence-climbing
// parser for Latch, following the teacher's table-dispatch Pratt style:
// prefix and infix parse functions are registered per token type rather
// than selected through one giant switch.
package parser

import (
	"fmt"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/lexer"
	"github.com/latchlang/latch/internal/token"
)

type prefixParseFn func() ast.Expr
type infixParseFn func(left ast.Expr) ast.Expr

// precedence levels, lowest to highest, per the documented operator table.
const (
	_ int = iota
	precLowest
	precOrDefault  // `or`
	precPipe       // |>
	precCoalesce   // ??
	precLogicalOr  // ||
	precLogicalAnd // &&
	precEquality   // == !=
	precCompare    // < > <= >= in
	precRange      // ..
	precAdditive   // + -
	precMultiplic  // * / %
	precUnary      // ! - (prefix)
	precPostfix    // . [] ?. ()
)

var precedences = map[token.Type]int{
	token.OR_KW:         precOrDefault,
	token.PIPE:          precPipe,
	token.NULL_COALESCE: precCoalesce,
	token.OR:            precLogicalOr,
	token.AND:           precLogicalAnd,
	token.EQ:            precEquality,
	token.NOT_EQ:        precEquality,
	token.LT:            precCompare,
	token.GT:            precCompare,
	token.LT_EQ:         precCompare,
	token.GT_EQ:         precCompare,
	token.IN:            precCompare,
	token.DOTDOT:        precRange,
	token.PLUS:          precAdditive,
	token.MINUS:         precAdditive,
	token.STAR:          precMultiplic,
	token.SLASH:         precMultiplic,
	token.PERCENT:       precMultiplic,
	token.LPAREN:        precPostfix,
	token.LBRACKET:      precPostfix,
	token.DOT:           precPostfix,
	token.SAFE_DOT:      precPostfix,
}

// Parser consumes tokens from a Lexer and builds an AST, collecting
// errors rather than stopping at the first one so a single run can
// report several mistakes at once.
type Parser struct {
	lex *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn

	Errors   []string
	ErrorPos []ErrorPos
}

// ErrorPos carries the position and message for one entry in Errors, at
// the same index, so callers that want a diag.Diagnostic instead of a
// flat string don't have to re-parse "line %d col %d: %s".
type ErrorPos struct {
	Line, Col int
	Msg       string
}

// New constructs a Parser over src and registers all parse functions.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.prefixFns = map[token.Type]prefixParseFn{}
	p.infixFns = map[token.Type]infixParseFn{}

	p.registerPrefix(token.INT, p.parseIntLit)
	p.registerPrefix(token.FLOAT, p.parseFloatLit)
	p.registerPrefix(token.TRUE, p.parseBoolLit)
	p.registerPrefix(token.FALSE, p.parseBoolLit)
	p.registerPrefix(token.NULL, p.parseNullLit)
	p.registerPrefix(token.STRING, p.parseStringLit)
	p.registerPrefix(token.INTERP_STR, p.parseInterpStringLit)
	p.registerPrefix(token.IDENT, p.parseIdentifierOrModuleCall)
	p.registerPrefix(token.LPAREN, p.parseParenOrTernary)
	p.registerPrefix(token.LBRACKET, p.parseListLitOrComprehension)
	p.registerPrefix(token.LBRACE, p.parseMapLit)
	p.registerPrefix(token.BANG, p.parseUnary)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.FN, p.parseFuncLit)

	for _, tt := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.AND, token.OR, token.IN, token.DOTDOT,
	} {
		p.registerInfix(tt, p.parseBinary)
	}
	p.registerInfix(token.OR_KW, p.parseOrDefault)
	p.registerInfix(token.NULL_COALESCE, p.parseCoalesce)
	p.registerInfix(token.PIPE, p.parsePipe)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSlice)
	p.registerInfix(token.DOT, p.parseField)
	p.registerInfix(token.SAFE_DOT, p.parseSafeField)

	p.next()
	p.next()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixFns[t] = fn }

func (p *Parser) next() {
	p.curTok = p.peekTok
	p.peekTok = p.lex.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curTok.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekTok.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.next()
		return true
	}
	p.errorf("expected %s, found %s", t, p.peekTok.Type)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.Errors = append(p.Errors, fmt.Sprintf("line %d col %d: %s", p.curTok.Line, p.curTok.Col, msg))
	p.ErrorPos = append(p.ErrorPos, ErrorPos{Line: p.curTok.Line, Col: p.curTok.Col, Msg: msg})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekTok.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curTok.Type]; ok {
		return pr
	}
	return precLowest
}

// skipNewlines consumes any run of NEWLINE tokens, used where the
// grammar explicitly tolerates line breaks (inside brackets/braces, and
// between statements of a block).
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.next()
	}
}

// ParseProgram parses the whole token stream into a flat statement list.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.next()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		// A statement leaves curTok on its own last token; step past it.
		if !p.curIs(token.EOF) {
			p.next()
		}
	}
	return prog
}
