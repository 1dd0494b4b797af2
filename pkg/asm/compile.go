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
package asm

import (
	"strconv"
	"strings"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// parseIntLiteral and parseFloatLiteral mirror the analyzer's own numeric
// literal parse (pkg/analyzer's parseIntText/parseFloatText): the analyzer
// already rejected malformed literals during its own pass, so by the time
// the compiler reaches a KindNumber node the parse here is expected to
// always succeed.
func parseIntLiteral(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func parseFloatLiteral(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

// unquote strips the surrounding double quotes a KindString token's text
// carries; the lexer does not itself process escape sequences, so neither
// does this.
func unquote(text string) string {
	return strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
}

// funcDef accumulates one function body's bytecode while compiling; the
// finished Assembly objects are only built once every function (main plus
// every nested fn literal) has compiled, so every Assembly in a module can
// share one flat Subroutines table.
type funcDef struct {
	arity, frameSize, captureCount int
	cmds                           []Command
}

type compiler struct {
	module    string
	strings   []string
	strIdx    map[string]int
	origins   []Span
	originIdx map[source.Span]int
	funcs     []*funcDef
}

func (c *compiler) intern(s string) int64 {
	if i, ok := c.strIdx[s]; ok {
		return int64(i)
	}

	i := len(c.strings)
	c.strings = append(c.strings, s)
	c.strIdx[s] = i

	return int64(i)
}

func (c *compiler) originIndex(span source.Span) int {
	if i, ok := c.originIdx[span]; ok {
		return i
	}

	i := len(c.origins)
	c.origins = append(c.origins, Span{Start: span.Start(), End: span.End()})
	c.originIdx[span] = i

	return i
}

func (c *compiler) finish() *Assembly {
	asms := make([]*Assembly, len(c.funcs))
	for i, fd := range c.funcs {
		asms[i] = &Assembly{
			Module: c.module, Arity: fd.arity, FrameSize: fd.frameSize,
			CaptureCount: fd.captureCount, Commands: fd.cmds,
		}
	}

	for _, a := range asms {
		a.Strings = c.strings
		a.Origins = c.origins
		a.Subroutines = asms
	}

	return asms[0]
}

// loopCtx tracks the fixup points a break/continue inside the currently
// compiling loop needs: continueTarget is the instruction continue jumps
// back to (the loop's own re-test), breakFixups accumulates every break's
// jump instruction index so compileFor/compileLoop can patch them once the
// loop's exit address is known.
type loopCtx struct {
	continueTarget int64
	breakFixups    []int
}

type funcBuilder struct {
	c         *compiler
	def       *funcDef
	loopStack []*loopCtx
}

func (fb *funcBuilder) pushLoop(continueTarget int64) *loopCtx {
	lc := &loopCtx{continueTarget: continueTarget}
	fb.loopStack = append(fb.loopStack, lc)

	return lc
}

func (fb *funcBuilder) popLoop() {
	fb.loopStack = fb.loopStack[:len(fb.loopStack)-1]
}

func (fb *funcBuilder) currentLoop() *loopCtx {
	if len(fb.loopStack) == 0 {
		return nil
	}

	return fb.loopStack[len(fb.loopStack)-1]
}

func (fb *funcBuilder) emit(op Op, a, b int64, f float64, span source.Span) int {
	idx := len(fb.def.cmds)
	fb.def.cmds = append(fb.def.cmds, Command{Op: op, A: a, B: b, F: f, OriginIdx: fb.c.originIndex(span)})

	return idx
}

func (fb *funcBuilder) patch(at int, target int64) {
	fb.def.cmds[at].A = target
}

func (fb *funcBuilder) here() int64 {
	return int64(len(fb.def.cmds))
}

// Compile lowers an already-analyzed module into bytecode: the analyzer's
// scope/binding graph supplies every frame slot, capture list and static
// struct-field position the compiler needs, so this pass never re-derives
// name resolution on its own.
func Compile(an *analyzer.Analysis) (*Assembly, error) {
	c := &compiler{module: an.Module, strIdx: map[string]int{}, originIdx: map[source.Span]int{}}

	main := &funcDef{}
	c.funcs = append(c.funcs, main)

	fb := &funcBuilder{c: c, def: main}

	for _, clause := range an.Root.Children {
		items := clause.NonTokens()
		if len(items) == 0 {
			continue
		}

		c.compileItem(fb, items[0])
	}

	fb.emit(OpRet, 0, 0, 0, an.Root.Span)

	if rs := an.RootScope(); rs != nil {
		main.frameSize = rs.FrameSize()
	}

	return c.finish(), nil
}

func semOf(n *cst.Node) *analyzer.Semantics {
	s, _ := n.Semantics.(*analyzer.Semantics)

	return s
}

func (c *compiler) compileItem(fb *funcBuilder, n *cst.Node) {
	switch n.Kind {
	case cst.KindUse:
		// no runtime effect of its own: every reference to the bound alias
		// resolves to a PushPackage at the use site (see compileIdent).
	case cst.KindFn:
		c.compileFnDecl(fb, n, true)
	case cst.KindStruct:
		c.compileStructDecl(fb, n)
	default:
		c.compileStatement(fb, n)
	}
}

func (c *compiler) compileFnDecl(fb *funcBuilder, n *cst.Node, bindResult bool) {
	se := semOf(n)

	nt := n.NonTokens()
	if len(nt) < 2 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	params, body := nt[0], nt[1]

	def := &funcDef{arity: len(params.Idents())}

	var captureCount int

	if se != nil && se.FnScope != nil {
		def.frameSize = se.FnScope.FrameSize()
		captureCount = se.FnScope.CaptureCount()
		def.captureCount = captureCount
	}

	idx := len(c.funcs)
	c.funcs = append(c.funcs, def)

	subFb := &funcBuilder{c: c, def: def}
	c.compileStatements(subFb, body.NonTokens())
	subFb.emit(OpRet, 0, 0, 0, body.Span)

	if captureCount > 0 {
		for i := 0; i < captureCount; i++ {
			fb.emit(OpLift, int64(se.FnScope.CaptureSlot(i)), 0, 0, n.Span)
		}

		fb.emit(OpPushClosure, int64(idx), int64(captureCount), 0, n.Span)
	} else {
		fb.emit(OpPushFn, int64(idx), 0, 0, n.Span)
	}

	if bindResult && se != nil && se.Binding != nil {
		fb.emit(OpBind, int64(se.Binding.FrameSlot()), 0, 0, n.Span)
	}
}

func (c *compiler) compileStructDecl(fb *funcBuilder, n *cst.Node) {
	se := semOf(n)

	var count int64

	nt := n.NonTokens()
	if len(nt) > 0 {
		for _, entry := range nt[0].NonTokens() {
			if len(entry.Idents()) == 0 {
				continue
			}

			vals := entry.NonTokens()
			if len(vals) > 1 {
				c.compileExpr(fb, vals[len(vals)-1])
			} else {
				fb.emit(OpPushNil, 0, 0, 0, entry.Span)
			}

			count++
		}
	}

	fb.emit(OpPushStruct, count, 0, 0, n.Span)

	if se != nil && se.Binding != nil {
		fb.emit(OpBind, int64(se.Binding.FrameSlot()), 0, 0, n.Span)
	}
}

func (c *compiler) compileStatements(fb *funcBuilder, stmts []*cst.Node) {
	for _, stmt := range stmts {
		c.compileItem(fb, stmt)
	}
}

func (c *compiler) compileStatement(fb *funcBuilder, n *cst.Node) {
	switch n.Kind {
	case cst.KindLet:
		c.compileLet(fb, n)
	case cst.KindIf:
		c.compileIf(fb, n)
	case cst.KindMatch:
		c.compileMatch(fb, n)
	case cst.KindFor:
		c.compileFor(fb, n)
	case cst.KindLoop:
		c.compileLoop(fb, n)
	case cst.KindBreak, cst.KindContinue:
		c.compileJump(fb, n)
	case cst.KindReturn:
		c.compileReturn(fb, n)
	case cst.KindBlock:
		c.compileStatements(fb, n.NonTokens())
	case cst.KindExpr:
		nt := n.NonTokens()
		if len(nt) == 0 {
			return
		}

		c.compileExpr(fb, nt[0])
		fb.emit(OpShrink, 1, 0, 0, n.Span)
	case cst.KindError:
		// a syntax error already reported at parse time; nothing to emit.
	default:
		c.compileExpr(fb, n)
		fb.emit(OpShrink, 1, 0, 0, n.Span)
	}
}

func (c *compiler) compileLet(fb *funcBuilder, n *cst.Node) {
	se := semOf(n)

	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	c.compileExpr(fb, nt[1])

	if se != nil && se.Binding != nil {
		fb.emit(OpBind, int64(se.Binding.FrameSlot()), 0, 0, n.Span)
	} else {
		fb.emit(OpShrink, 1, 0, 0, n.Span)
	}
}

func (c *compiler) compileIf(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	c.compileExpr(fb, nt[0])
	falseJump := fb.emit(OpIfFalse, 0, 0, 0, n.Span)

	c.compileStatements(fb, nt[1].NonTokens())

	if len(nt) > 2 {
		endJump := fb.emit(OpJump, 0, 0, 0, n.Span)
		fb.patch(falseJump, fb.here())
		c.compileElse(fb, nt[2])
		fb.patch(endJump, fb.here())
	} else {
		fb.patch(falseJump, fb.here())
	}
}

func (c *compiler) compileElse(fb *funcBuilder, n *cst.Node) {
	for _, body := range n.NonTokens() {
		if body.Kind == cst.KindIf {
			c.compileIf(fb, body)
		} else {
			c.compileStatements(fb, body.NonTokens())
		}
	}
}

func (c *compiler) compileMatch(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	subject, body := nt[0], nt[1]

	var endFixups []int

	for _, arm := range body.NonTokens() {
		armChildren := arm.NonTokens()
		if len(armChildren) < 2 {
			continue
		}

		pattern, armBody := armChildren[0], armChildren[1]

		c.compileExpr(fb, subject)
		c.compileExpr(fb, pattern)
		fb.emit(OpOperator, int64(registry.OpPartialEq), 1, 0, arm.Span)

		noMatch := fb.emit(OpIfFalse, 0, 0, 0, arm.Span)

		c.compileExpr(fb, armBody)
		fb.emit(OpShrink, 1, 0, 0, armBody.Span)
		endFixups = append(endFixups, fb.emit(OpJump, 0, 0, 0, arm.Span))

		fb.patch(noMatch, fb.here())
	}

	end := fb.here()
	for _, f := range endFixups {
		fb.patch(f, end)
	}
}

func (c *compiler) compileFor(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 3 {
		return
	}

	varNode, iter, body := nt[0], nt[1], nt[2]

	c.compileExpr(fb, iter)

	loopStart := fb.here()
	fb.emit(OpIterate, 0, 0, 0, n.Span)
	exitJump := fb.emit(OpIfFalse, 0, 0, 0, n.Span)

	if se := semOf(varNode); se != nil && se.Binding != nil {
		fb.emit(OpBind, int64(se.Binding.FrameSlot()), 0, 0, varNode.Span)
	} else {
		fb.emit(OpShrink, 1, 0, 0, varNode.Span)
	}

	lc := fb.pushLoop(loopStart)
	c.compileStatements(fb, body.NonTokens())
	fb.popLoop()

	fb.emit(OpJump, loopStart, 0, 0, n.Span)

	exitAt := fb.here()
	fb.patch(exitJump, exitAt)
	fb.emit(OpShrink, 1, 0, 0, n.Span) // discard the exhausted iterator

	for _, f := range lc.breakFixups {
		fb.patch(f, exitAt)
	}
}

func (c *compiler) compileLoop(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) == 0 {
		return
	}

	loopStart := fb.here()

	lc := fb.pushLoop(loopStart)
	c.compileStatements(fb, nt[0].NonTokens())
	fb.popLoop()

	fb.emit(OpJump, loopStart, 0, 0, n.Span)

	for _, f := range lc.breakFixups {
		fb.patch(f, fb.here())
	}
}

// compileJump lowers break/continue: continue jumps back to the loop's own
// re-test, break jumps forward to the loop's exit (patched once the loop
// finishes compiling and its exit address is known). A value attached to
// either (this grammar allows one, though the VM has no loop-expression
// result to deliver it to) is evaluated for its side effects and discarded.
func (c *compiler) compileJump(fb *funcBuilder, n *cst.Node) {
	for _, v := range n.NonTokens() {
		c.compileExpr(fb, v)
		fb.emit(OpShrink, 1, 0, 0, n.Span)
	}

	lc := fb.currentLoop()
	if lc == nil {
		// the analyzer already reports CodeOrphanedBreak for this; nothing
		// sensible to jump to, so fall through.
		return
	}

	if n.Kind == cst.KindContinue {
		fb.emit(OpJump, lc.continueTarget, 0, 0, n.Span)
	} else {
		lc.breakFixups = append(lc.breakFixups, fb.emit(OpJump, 0, 0, 0, n.Span))
	}
}

func (c *compiler) compileReturn(fb *funcBuilder, n *cst.Node) {
	values := n.NonTokens()
	if len(values) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	} else {
		c.compileExpr(fb, values[0])
	}

	fb.emit(OpRet, 0, 0, 0, n.Span)
}

// compileExpr lowers an expression, leaving exactly one value on the
// operand stack.
func (c *compiler) compileExpr(fb *funcBuilder, n *cst.Node) {
	if n == nil {
		fb.emit(OpPushNil, 0, 0, 0, source.Span{})

		return
	}

	switch n.Kind {
	case cst.KindNumber:
		c.compileNumber(fb, n)
	case cst.KindString:
		c.compileString(fb, n)
	case cst.KindBool:
		c.compileBool(fb, n)
	case cst.KindMax:
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	case cst.KindCrate, cst.KindThis:
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	case cst.KindIdent:
		c.compileIdent(fb, n)
	case cst.KindBinary:
		c.compileBinary(fb, n)
	case cst.KindUnaryLeft:
		c.compileUnary(fb, n)
	case cst.KindField:
		c.compileField(fb, n)
	case cst.KindQuery:
		c.compileQuery(fb, n)
	case cst.KindCall:
		c.compileCall(fb, n)
	case cst.KindIndex:
		c.compileIndex(fb, n)
	case cst.KindArray:
		c.compileArray(fb, n)
	case cst.KindFn:
		c.compileFnDecl(fb, n, false)
	case cst.KindExpr:
		nt := n.NonTokens()
		if len(nt) > 0 {
			c.compileExpr(fb, nt[0])
		} else {
			fb.emit(OpPushNil, 0, 0, 0, n.Span)
		}
	default:
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	}
}

func (c *compiler) compileNumber(fb *funcBuilder, n *cst.Node) {
	if len(n.Children) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	tok := n.Children[0].Token

	if tok.Kind == lexer.Float {
		f, err := parseFloatLiteral(tok.Text)
		if err != nil {
			fb.emit(OpPushNil, 0, 0, 0, n.Span)

			return
		}

		fb.emit(OpPushFloat, 0, 0, f, n.Span)

		return
	}

	i, err := parseIntLiteral(tok.Text)
	if err != nil {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	fb.emit(OpPushUsize, i, 0, 0, n.Span)
}

func (c *compiler) compileString(fb *funcBuilder, n *cst.Node) {
	if len(n.Children) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	fb.emit(OpPushString, c.intern(unquote(n.Children[0].Token.Text)), 0, 0, n.Span)
}

func (c *compiler) compileBool(fb *funcBuilder, n *cst.Node) {
	if len(n.Children) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	if n.Children[0].Token.Kind == lexer.KwTrue {
		fb.emit(OpPushTrue, 0, 0, 0, n.Span)
	} else {
		fb.emit(OpPushFalse, 0, 0, 0, n.Span)
	}
}

func (c *compiler) compileIdent(fb *funcBuilder, n *cst.Node) {
	se := semOf(n)
	if se == nil || se.Binding == nil {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	b := se.Binding

	if b.IsUse() {
		fb.emit(OpPushPackage, c.intern(b.BindingName()), 0, 0, n.Span)

		return
	}

	if se.Scope != nil {
		if idx, ok := se.Scope.Fn().CaptureIndexOf(b); ok {
			fb.emit(OpLiftCapture, int64(idx), 0, 0, n.Span)

			return
		}
	}

	fb.emit(OpLift, int64(b.FrameSlot()), 0, 0, n.Span)
}

func (c *compiler) compileBinary(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 3 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	lhs, opNode, rhs := nt[0], nt[1], nt[2]

	if len(opNode.Children) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	tokKind := opNode.Children[0].Token.Kind

	if isAssignToken(tokKind) {
		c.compileAssign(fb, n, lhs, tokKind, rhs)

		return
	}

	if tokKind == lexer.AmpAmp || tokKind == lexer.PipePipe {
		c.compileShortCircuit(fb, n, lhs, tokKind, rhs)

		return
	}

	if tokKind == lexer.DotDot {
		c.compileExpr(fb, lhs)
		c.compileExpr(fb, rhs)
		fb.emit(OpRange, 0, 0, 0, n.Span)

		return
	}

	c.compileExpr(fb, lhs)
	c.compileExpr(fb, rhs)

	kind, ok := opKindFor(tokKind)
	if !ok {
		fb.emit(OpShrink, 2, 0, 0, n.Span)
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	fb.emit(OpOperator, int64(kind), 1, 0, n.Span)

	if tokKind == lexer.Ne {
		fb.emit(OpOperator, int64(registry.OpNot), 0, 0, n.Span)
	}
}

// compileShortCircuit lowers && and || to branches over materialised
// operands rather than a direct operator dispatch: `a && b` leaves a's
// value on the stack and skips b when a is already false, and symmetrically
// for `||` when a is already true.
func (c *compiler) compileShortCircuit(fb *funcBuilder, n, lhs *cst.Node, tokKind lexer.Kind, rhs *cst.Node) {
	c.compileExpr(fb, lhs)
	fb.emit(OpDup, 0, 0, 0, n.Span)

	var skip int
	if tokKind == lexer.AmpAmp {
		skip = fb.emit(OpIfFalse, 0, 0, 0, n.Span)
	} else {
		skip = fb.emit(OpIfTrue, 0, 0, 0, n.Span)
	}

	fb.emit(OpShrink, 1, 0, 0, n.Span)
	c.compileExpr(fb, rhs)

	fb.patch(skip, fb.here())
}

func (c *compiler) compileAssign(fb *funcBuilder, n, lhs *cst.Node, tokKind lexer.Kind, rhs *cst.Node) {
	se := semOf(lhs)
	if lhs.Kind != cst.KindIdent || se == nil || se.Binding == nil {
		// no lvalue to write through (e.g. assigning to a literal, already
		// flagged by the analyzer): evaluate both sides for side effects and
		// discard, leaving nil in their place.
		c.compileExpr(fb, lhs)
		fb.emit(OpShrink, 1, 0, 0, lhs.Span)
		c.compileExpr(fb, rhs)
		fb.emit(OpShrink, 1, 0, 0, rhs.Span)
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	slot := se.Binding.FrameSlot()

	if tokKind == lexer.Assign {
		c.compileExpr(fb, rhs)
	} else {
		fb.emit(OpLift, int64(slot), 0, 0, lhs.Span)
		c.compileExpr(fb, rhs)
		fb.emit(OpOperator, int64(compoundBaseOp(tokKind)), 1, 0, n.Span)
	}

	fb.emit(OpDup, 0, 0, 0, n.Span)
	fb.emit(OpBind, int64(slot), 0, 0, n.Span)
}

func (c *compiler) compileUnary(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 2 || len(nt[0].Children) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	opNode, operand := nt[0], nt[1]
	c.compileExpr(fb, operand)

	var kind registry.OperatorKind

	switch opNode.Children[0].Token.Kind {
	case lexer.Bang:
		kind = registry.OpNot
	case lexer.Minus:
		kind = registry.OpNeg
	case lexer.Star:
		kind = registry.OpClone
	default:
		return
	}

	fb.emit(OpOperator, int64(kind), 0, 0, n.Span)
}

func (c *compiler) compileField(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	base := nt[0]

	idents := n.Idents()
	if len(idents) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	fieldName := idents[0].Token.Text

	baseSem := semOf(base)
	if baseSem != nil && baseSem.Tag.Kind == analyzer.TagStruct {
		pos := -1

		for i, e := range baseSem.Tag.Entries {
			if e == fieldName {
				pos = i

				break
			}
		}

		if pos >= 0 {
			c.compileExpr(fb, base)
			fb.emit(OpPushUsize, int64(pos), 0, 0, n.Span)
			fb.emit(OpIndex, 0, 0, 0, n.Span)

			return
		}
	}

	c.compileExpr(fb, base)
	fb.emit(OpField, c.intern(fieldName), 0, 0, n.Span)
}

func (c *compiler) compileQuery(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) > 0 {
		c.compileExpr(fb, nt[0])
	} else {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	}

	idents := n.Idents()
	if len(idents) == 0 {
		return
	}

	fb.emit(OpQuery, c.intern(idents[0].Token.Text), 0, 0, n.Span)
}

func (c *compiler) compileCall(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	callee, args := nt[0], nt[1]

	c.compileExpr(fb, callee)

	argExprs := args.NonTokens()
	for _, a := range argExprs {
		c.compileExpr(fb, a)
	}

	fb.emit(OpInvoke, int64(len(argExprs)), 0, 0, n.Span)
}

func (c *compiler) compileIndex(fb *funcBuilder, n *cst.Node) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)

		return
	}

	base, idxWrap := nt[0], nt[1]

	c.compileExpr(fb, base)

	idxChildren := idxWrap.NonTokens()
	if len(idxChildren) == 0 {
		fb.emit(OpPushNil, 0, 0, 0, n.Span)
	} else {
		c.compileExpr(fb, idxChildren[0])
	}

	fb.emit(OpIndex, 0, 0, 0, n.Span)
}

func (c *compiler) compileArray(fb *funcBuilder, n *cst.Node) {
	elems := n.NonTokens()
	for _, e := range elems {
		c.compileExpr(fb, e)
	}

	fb.emit(OpConcat, int64(len(elems)), 0, 0, n.Span)
}

// opKindFor mirrors the analyzer's token-to-operator mapping for non-assign
// binary tokens the compiler must also lower.
func opKindFor(tokKind lexer.Kind) (registry.OperatorKind, bool) {
	switch tokKind {
	case lexer.Plus:
		return registry.OpAdd, true
	case lexer.Minus:
		return registry.OpSub, true
	case lexer.Star:
		return registry.OpMul, true
	case lexer.Slash:
		return registry.OpDiv, true
	case lexer.Percent:
		return registry.OpRem, true
	case lexer.AmpAmp:
		return registry.OpAnd, true
	case lexer.PipePipe:
		return registry.OpOr, true
	case lexer.Amp:
		return registry.OpBitAnd, true
	case lexer.Pipe:
		return registry.OpBitOr, true
	case lexer.Caret:
		return registry.OpBitXor, true
	case lexer.Shl:
		return registry.OpShl, true
	case lexer.Shr:
		return registry.OpShr, true
	case lexer.Eq, lexer.Ne:
		return registry.OpPartialEq, true
	case lexer.Lt:
		return registry.OpLt, true
	case lexer.Le:
		return registry.OpLe, true
	case lexer.Gt:
		return registry.OpGt, true
	case lexer.Ge:
		return registry.OpGe, true
	default:
		return 0, false
	}
}

func isAssignToken(k lexer.Kind) bool {
	switch k {
	case lexer.Assign, lexer.AddAssign, lexer.SubAssign, lexer.MulAssign, lexer.DivAssign, lexer.RemAssign,
		lexer.AndAssign, lexer.OrAssign, lexer.BitAndAssign, lexer.BitOrAssign, lexer.BitXorAssign,
		lexer.ShlAssign, lexer.ShrAssign:
		return true
	default:
		return false
	}
}

func compoundBaseOp(k lexer.Kind) registry.OperatorKind {
	switch k {
	case lexer.AddAssign:
		return registry.OpAdd
	case lexer.SubAssign:
		return registry.OpSub
	case lexer.MulAssign:
		return registry.OpMul
	case lexer.DivAssign:
		return registry.OpDiv
	case lexer.RemAssign:
		return registry.OpRem
	case lexer.AndAssign:
		return registry.OpAnd
	case lexer.OrAssign:
		return registry.OpOr
	case lexer.BitAndAssign:
		return registry.OpBitAnd
	case lexer.BitOrAssign:
		return registry.OpBitOr
	case lexer.BitXorAssign:
		return registry.OpBitXor
	case lexer.ShlAssign:
		return registry.OpShl
	case lexer.ShrAssign:
		return registry.OpShr
	default:
		return registry.OpAssign
	}
}
