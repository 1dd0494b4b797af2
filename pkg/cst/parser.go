// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cst

import (
	"fmt"

	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// ParseError is one recovered syntax error, reported against a span rather
// than the richer Issue taxonomy the analyzer builds on top of this tree.
type ParseError struct {
	Message string
	Span    source.Span
}

// precedence levels, low to high; entries absent from this table are not
// binary operators.
var binaryPrec = map[lexer.Kind]int{
	lexer.Assign: 1, lexer.AddAssign: 1, lexer.SubAssign: 1, lexer.MulAssign: 1,
	lexer.DivAssign: 1, lexer.RemAssign: 1, lexer.AndAssign: 1, lexer.OrAssign: 1,
	lexer.BitAndAssign: 1, lexer.BitOrAssign: 1, lexer.BitXorAssign: 1,
	lexer.ShlAssign: 1, lexer.ShrAssign: 1,

	lexer.PipePipe: 2,
	lexer.AmpAmp:   3,
	lexer.Eq:       4, lexer.Ne: 4,
	lexer.Lt: 5, lexer.Le: 5, lexer.Gt: 5, lexer.Ge: 5,
	lexer.DotDot: 6,
	lexer.Pipe:   7,
	lexer.Caret:  8,
	lexer.Amp:    9,
	lexer.Shl:    10, lexer.Shr: 10,
	lexer.Plus: 11, lexer.Minus: 11,
	lexer.Star: 12, lexer.Slash: 12, lexer.Percent: 12,
}

const rightAssocAssign = 1

// recoverySet are token kinds the panic-mode recovery scans forward to;
// each marks a safe re-synchronisation point.
var recoverySet = map[lexer.Kind]bool{
	lexer.Semicolon: true, lexer.RBrace: true, lexer.Eof: true,
}

// Parser builds a cst.Node tree from a flat token stream using Pratt
// expression parsing plus recursive-descent statement/item parsing.
type Parser struct {
	toks   []lexer.Token
	pos    int
	errors []ParseError
}

// NewParser constructs a parser over an already-tokenized source.
func NewParser(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// Errors returns every parse error recovered during Parse.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k lexer.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return tok
}

func (p *Parser) leaf() *Node {
	return newLeaf(p.advance())
}

func (p *Parser) expect(k lexer.Kind) *Node {
	if p.at(k) {
		return p.leaf()
	}

	p.errorf("expected %s, found %s", k, p.peek().Kind)

	return newNode(KindError)
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Span: p.peek().Span})
}

func (p *Parser) recover() *Node {
	start := p.pos
	for !recoverySet[p.peek().Kind] {
		p.advance()
	}

	if p.pos == start {
		p.advance()
	}

	return newNode(KindError)
}

// Parse consumes the entire token stream, producing a KindRoot node
// containing one KindClause per top-level item.
func (p *Parser) Parse() *Node {
	var clauses []*Node

	for !p.at(lexer.Eof) {
		clauses = append(clauses, newNode(KindClause, p.parseItem()))
	}

	return newNode(KindRoot, clauses...)
}

func (p *Parser) parseItem() *Node {
	switch p.peek().Kind {
	case lexer.KwUse:
		return p.parseUse()
	case lexer.KwFn:
		return p.parseFn()
	case lexer.KwStruct:
		return p.parseStruct()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseUse() *Node {
	kw := p.leaf()

	var segs []*Node

	segs = append(segs, p.expect(lexer.Ident))

	for p.at(lexer.ColonColon) {
		segs = append(segs, p.leaf())
		segs = append(segs, p.expect(lexer.Ident))
	}

	path := newNode(KindPackagePath, segs...)

	var semi *Node
	if p.at(lexer.Semicolon) {
		semi = p.leaf()
	}

	return newNode(KindUse, kw, path, semi)
}

func (p *Parser) parseFn() *Node {
	kw := p.leaf()

	var name *Node
	if p.at(lexer.Ident) {
		name = p.leaf()
	}

	lparen := p.expect(lexer.LParen)

	var params []*Node

	for !p.at(lexer.RParen) && !p.at(lexer.Eof) {
		params = append(params, p.expect(lexer.Ident))

		if p.at(lexer.Comma) {
			params = append(params, p.leaf())
		} else {
			break
		}
	}

	rparen := p.expect(lexer.RParen)
	fnParams := newNode(KindFnParams, append([]*Node{lparen}, append(params, rparen)...)...)
	body := p.parseBlock()

	return newNode(KindFn, kw, name, fnParams, body)
}

func (p *Parser) parseStruct() *Node {
	kw := p.leaf()
	name := p.expect(lexer.Ident)
	lbrace := p.expect(lexer.LBrace)

	var entries []*Node

	for !p.at(lexer.RBrace) && !p.at(lexer.Eof) {
		key := newNode(KindStructEntryKey, p.expect(lexer.Ident))
		colon := p.expect(lexer.Colon)
		value := p.parseExpr(0)

		entry := newNode(KindStructEntry, key, colon, value)

		if p.at(lexer.Comma) {
			entries = append(entries, entry, p.leaf())
		} else {
			entries = append(entries, entry)

			break
		}
	}

	rbrace := p.expect(lexer.RBrace)
	body := newNode(KindStructBody, append([]*Node{lbrace}, append(entries, rbrace)...)...)

	return newNode(KindStruct, kw, name, body)
}

func (p *Parser) parseBlock() *Node {
	lbrace := p.expect(lexer.LBrace)

	var stmts []*Node

	for !p.at(lexer.RBrace) && !p.at(lexer.Eof) {
		stmts = append(stmts, p.parseStatement())
	}

	rbrace := p.expect(lexer.RBrace)

	return newNode(KindBlock, append([]*Node{lbrace}, append(stmts, rbrace)...)...)
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case lexer.KwLet:
		return p.parseLet()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwMatch:
		return p.parseMatch()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwLoop:
		return p.parseLoop()
	case lexer.KwBreak:
		return p.parseJump(KindBreak)
	case lexer.KwContinue:
		return p.parseJump(KindContinue)
	case lexer.KwReturn:
		return p.parseJump(KindReturn)
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.Error:
		return p.recover()
	default:
		expr := p.parseExpr(0)

		var semi *Node
		if p.at(lexer.Semicolon) {
			semi = p.leaf()
		}

		return newNode(KindExpr, expr, semi)
	}
}

func (p *Parser) parseLet() *Node {
	kw := p.leaf()
	name := newNode(KindVar, p.expect(lexer.Ident))
	assign := p.expect(lexer.Assign)
	value := p.parseExpr(0)

	var semi *Node
	if p.at(lexer.Semicolon) {
		semi = p.leaf()
	}

	return newNode(KindLet, kw, name, assign, value, semi)
}

func (p *Parser) parseIf() *Node {
	kw := p.leaf()
	cond := p.parseExpr(0)
	then := p.parseBlock()

	if !p.at(lexer.KwElse) {
		return newNode(KindIf, kw, cond, then)
	}

	elseKw := p.leaf()

	var elseBody *Node
	if p.at(lexer.KwIf) {
		elseBody = p.parseIf()
	} else {
		elseBody = p.parseBlock()
	}

	elseNode := newNode(KindElse, elseKw, elseBody)

	return newNode(KindIf, kw, cond, then, elseNode)
}

func (p *Parser) parseMatch() *Node {
	kw := p.leaf()
	subject := p.parseExpr(0)
	lbrace := p.expect(lexer.LBrace)

	var arms []*Node

	for !p.at(lexer.RBrace) && !p.at(lexer.Eof) {
		pattern := p.parseExpr(0)
		arrow := p.expect(lexer.FatArrow)
		body := p.parseExpr(0)

		arm := newNode(KindMatchArm, pattern, arrow, body)

		if p.at(lexer.Comma) {
			arms = append(arms, arm, p.leaf())
		} else {
			arms = append(arms, arm)

			break
		}
	}

	rbrace := p.expect(lexer.RBrace)
	body := newNode(KindMatchBody, append([]*Node{lbrace}, append(arms, rbrace)...)...)

	return newNode(KindMatch, kw, subject, body)
}

func (p *Parser) parseFor() *Node {
	kw := p.leaf()
	name := newNode(KindVar, p.expect(lexer.Ident))
	in := p.expect(lexer.KwIn)
	iter := p.parseExpr(0)
	body := p.parseBlock()

	return newNode(KindFor, kw, name, in, iter, body)
}

func (p *Parser) parseLoop() *Node {
	kw := p.leaf()
	body := p.parseBlock()

	return newNode(KindLoop, kw, body)
}

func (p *Parser) parseJump(kind Kind) *Node {
	kw := p.leaf()

	var value *Node
	if !p.at(lexer.Semicolon) && !p.at(lexer.RBrace) && !p.at(lexer.Eof) {
		value = p.parseExpr(0)
	}

	var semi *Node
	if p.at(lexer.Semicolon) {
		semi = p.leaf()
	}

	return newNode(kind, kw, value, semi)
}

// parseExpr implements Pratt parsing: minPrec is the minimum binding power
// an infix operator must have to be consumed at this recursion depth.
func (p *Parser) parseExpr(minPrec int) *Node {
	left := p.parseUnary()

	for {
		prec, ok := binaryPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			break
		}

		opNode := newNode(KindOp, p.leaf())

		nextMin := prec + 1
		if prec == rightAssocAssign {
			nextMin = prec
		}

		right := p.parseExpr(nextMin)
		left = newNode(KindBinary, left, opNode, right)
	}

	return left
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case lexer.Minus, lexer.Bang, lexer.Star, lexer.Amp, lexer.Tilde:
		op := newNode(KindOp, p.leaf())
		operand := p.parseUnary()

		return newNode(KindUnaryLeft, op, operand)
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *Parser) parsePostfix(n *Node) *Node {
	for {
		switch p.peek().Kind {
		case lexer.Dot:
			dot := p.leaf()
			field := p.expect(lexer.Ident)
			n = newNode(KindField, n, dot, field)
		case lexer.LParen:
			n = newNode(KindCall, n, p.parseCallArgs())
		case lexer.LBracket:
			lbracket := p.leaf()
			arg := newNode(KindIndexArg, p.parseExpr(0))
			rbracket := p.expect(lexer.RBracket)
			n = newNode(KindIndex, n, lbracket, arg, rbracket)
		case lexer.ColonColon:
			colons := p.leaf()
			name := p.expect(lexer.Ident)
			n = newNode(KindQuery, n, colons, name)
		default:
			return n
		}
	}
}

func (p *Parser) parseCallArgs() *Node {
	lparen := p.expect(lexer.LParen)

	var args []*Node

	for !p.at(lexer.RParen) && !p.at(lexer.Eof) {
		args = append(args, p.parseExpr(0))

		if p.at(lexer.Comma) {
			args = append(args, p.leaf())
		} else {
			break
		}
	}

	rparen := p.expect(lexer.RParen)

	return newNode(KindCallArgs, append([]*Node{lparen}, append(args, rparen)...)...)
}

func (p *Parser) parsePrimary() *Node {
	switch p.peek().Kind {
	case lexer.Int, lexer.Float:
		return newNode(KindNumber, p.leaf())
	case lexer.String:
		return newNode(KindString, p.leaf())
	case lexer.KwTrue, lexer.KwFalse:
		return newNode(KindBool, p.leaf())
	case lexer.KwMax:
		return newNode(KindMax, p.leaf())
	case lexer.KwCrate:
		return newNode(KindCrate, p.leaf())
	case lexer.KwSelf:
		return newNode(KindThis, p.leaf())
	case lexer.KwFn:
		return p.parseFn()
	case lexer.Ident:
		return newNode(KindIdent, p.leaf())
	case lexer.LParen:
		lparen := p.leaf()
		inner := p.parseExpr(0)
		rparen := p.expect(lexer.RParen)

		return newNode(KindExpr, lparen, inner, rparen)
	case lexer.LBracket:
		return p.parseArray()
	default:
		p.errorf("unexpected token %s", p.peek().Kind)

		return p.recover()
	}
}

func (p *Parser) parseArray() *Node {
	lbracket := p.leaf()

	var elems []*Node

	for !p.at(lexer.RBracket) && !p.at(lexer.Eof) {
		elems = append(elems, p.parseExpr(0))

		if p.at(lexer.Comma) {
			elems = append(elems, p.leaf())
		} else {
			break
		}
	}

	rbracket := p.expect(lexer.RBracket)

	return newNode(KindArray, append([]*Node{lbracket}, append(elems, rbracket)...)...)
}
