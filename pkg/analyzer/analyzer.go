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
package analyzer

import (
	"fmt"

	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Semantics is the payload the analyzer attaches to cst.Node.Semantics:
// every piece of attribute-graph output attributable to one node.
type Semantics struct {
	Tag     TypeTag
	Binding *binding
	Scope   *scope
	// FnScope is set only on a KindFn node: its own body's function scope,
	// distinct from Scope (the enclosing scope it was declared or
	// referenced in). The compiler uses it to size the function's frame and
	// resolve its capture list.
	FnScope *scope
}

func semanticsOf(n *cst.Node) *Semantics {
	sem, ok := n.Semantics.(*Semantics)
	if !ok {
		sem = &Semantics{}
		n.Semantics = sem
	}

	return sem
}

// Analysis is the full result of analyzing one module's CST: every
// diagnostic raised, plus the symbol table needed to answer Symbols and
// Completions queries without re-walking the tree. Analysis is a snapshot:
// this implementation re-runs the whole pass on every edit (see
// pkg/module), rather than incrementally invalidating a cached attribute
// graph — the full re-analysis is fast enough at script-sized inputs that
// the added complexity of per-node dependency tracking isn't justified
// here, but it is scoped out under the same demand-driven query surface
// the spec describes, so a future incremental engine is a drop-in swap.
type Analysis struct {
	Root     *cst.Node
	Module   string
	Registry *registry.Registry
	Issues   []Issue
	Symbols  []Symbol
	root     *scope
}

// RootScope returns the module top-level's function scope: the compiler
// reads its FrameSize and, for every root-level `fn`/`let`, uses the
// bindings it declared to map names to frame slots.
func (a *Analysis) RootScope() *scope {
	return a.root
}

// Analyze runs local scope analysis, cross-scope resolution, type tagging
// and diagnostic collection over root, a module named for Origin
// attribution.
func Analyze(root *cst.Node, module string, reg *registry.Registry) *Analysis {
	w := &walker{reg: reg, module: module}

	rootScope := newRootScope()

	for _, clause := range root.Children {
		items := clause.NonTokens()
		if len(items) == 0 {
			continue
		}

		w.walkItem(items[0], rootScope)
	}

	return &Analysis{Root: root, Module: module, Registry: reg, Issues: w.issues, Symbols: w.symbols, root: rootScope}
}

type walker struct {
	reg     *registry.Registry
	module  string
	issues  []Issue
	symbols []Symbol
}

func (w *walker) at(span source.Span) origin.Origin {
	return origin.NewScript(w.module, span)
}

func (w *walker) issue(code IssueCode, span source.Span, quickfix, format string, args ...any) {
	w.issues = append(w.issues, Issue{
		Code: code, Span: span, Quickfix: quickfix, Message: fmt.Sprintf(format, args...),
	})
}

func (w *walker) symbol(kind SymbolKind, name string, span source.Span) {
	w.symbols = append(w.symbols, Symbol{Kind: kind, Name: name, Span: span})
}

// walkItem dispatches a top-level or block-level item/statement.
func (w *walker) walkItem(n *cst.Node, s *scope) {
	switch n.Kind {
	case cst.KindUse:
		w.walkUse(n, s)
	case cst.KindFn:
		w.walkFnDecl(n, s)
	case cst.KindStruct:
		w.walkStructDecl(n, s)
	default:
		w.walkStatement(n, s)
	}
}

func (w *walker) walkUse(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) == 0 {
		return
	}

	path := nt[0]
	segs := path.Idents()

	if len(segs) == 0 {
		return
	}

	root := segs[0].Token.Text
	if _, ok := w.reg.Package(root); !ok {
		w.issue(CodeUnresolvedPackage, segs[0].Span, "",
			"unresolved package %q", root)

		return
	}

	last := segs[len(segs)-1]
	w.symbol(SymbolUse, last.Token.Text, n.Span)

	b := s.declare(last.Token.Text, n.Span, bindUse)
	b.Initialized = true
	b.Tag = Dynamic
	semanticsOf(n).Binding = b
}

func (w *walker) walkFnDecl(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	params, body := nt[0], nt[1]
	names := params.Idents()

	var decl *binding

	if fnName := n.Idents(); len(fnName) > 0 {
		decl = s.declare(fnName[0].Token.Text, n.Span, bindFn)
		decl.Initialized = true
		decl.Tag = Fn(len(names))
		w.symbol(SymbolFn, fnName[0].Token.Text, n.Span)
	}

	fnScope := newFnScope(s)

	seen := map[string]bool{}

	for _, p := range names {
		if seen[p.Token.Text] {
			w.issue(CodeDuplicateParam, p.Span, "", "duplicate parameter %q", p.Token.Text)

			continue
		}

		seen[p.Token.Text] = true

		pb := fnScope.declare(p.Token.Text, p.Span, bindVar)
		pb.Initialized = true
		pb.Tag = Dynamic
		w.symbol(SymbolVar, p.Token.Text, p.Span)
	}

	w.walkBlock(body, fnScope)

	sem := semanticsOf(n)
	sem.Binding = decl
	sem.FnScope = fnScope

	if fnScope.hasBareReturn && fnScope.hasValueReturn {
		w.issue(CodeInconsistentReturns, n.Span, "",
			"function returns a value on some paths and nothing on others")
	}
}

func (w *walker) walkStructDecl(n *cst.Node, s *scope) {
	nt := n.NonTokens()

	name := ""
	if names := n.Idents(); len(names) > 0 {
		name = names[0].Token.Text
	}

	var entries []string

	if len(nt) > 0 {
		seen := map[string]bool{}

		for _, entry := range nt[0].NonTokens() {
			keyIdents := entry.Idents()
			if len(keyIdents) == 0 {
				continue
			}

			key := keyIdents[0].Token.Text
			if seen[key] {
				w.issue(CodeDuplicateEntry, entry.Span, "", "duplicate struct entry %q", key)
			}

			seen[key] = true
			entries = append(entries, key)

			if vals := entry.NonTokens(); len(vals) > 1 {
				w.walkExpr(vals[len(vals)-1], s)
			}
		}
	}

	decl := s.declare(name, n.Span, bindStruct)
	decl.Initialized = true
	decl.Tag = Struct(entries)
	semanticsOf(n).Binding = decl

	if name != "" {
		w.symbol(SymbolStruct, name, n.Span)
	}
}

func (w *walker) walkBlock(n *cst.Node, parent *scope) {
	s := newChildScope(parent)
	w.walkStatements(n.NonTokens(), s)
}

// walkStatements walks a statement list, flagging everything after the
// first unconditional terminator (return/break/continue) as unreachable.
func (w *walker) walkStatements(stmts []*cst.Node, s *scope) {
	terminated := false

	for _, stmt := range stmts {
		if terminated {
			w.issue(CodeUnreachableStmt, stmt.Span, "", "unreachable statement")
		}

		w.walkItem(stmt, s)

		switch stmt.Kind {
		case cst.KindReturn, cst.KindBreak, cst.KindContinue:
			terminated = true
		}
	}
}

func (w *walker) walkStatement(n *cst.Node, s *scope) {
	switch n.Kind {
	case cst.KindLet:
		w.walkLet(n, s)
	case cst.KindIf:
		w.walkIf(n, s)
	case cst.KindMatch:
		w.walkMatch(n, s)
	case cst.KindFor:
		w.walkFor(n, s)
	case cst.KindLoop:
		w.walkLoop(n, s)
	case cst.KindBreak, cst.KindContinue:
		w.walkJump(n, s)
	case cst.KindReturn:
		w.walkReturn(n, s)
	case cst.KindBlock:
		w.walkBlock(n, s)
	case cst.KindExpr:
		for _, e := range n.NonTokens() {
			w.walkExpr(e, s)
		}
	case cst.KindError:
		// syntax error already reported by the parser; nothing to resolve.
	default:
		w.walkExpr(n, s)
	}
}

func (w *walker) walkLet(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	varNode, value := nt[0], nt[1]
	tag := w.walkExpr(value, s)

	if len(varNode.Children) == 0 {
		return
	}

	name := varNode.Children[0].Token.Text

	b := s.declare(name, n.Span, bindVar)
	b.Initialized = true
	b.Tag = tag

	semanticsOf(n).Binding = b
	w.symbol(SymbolVar, name, varNode.Span)
}

func (w *walker) walkIf(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	condTag := w.walkExpr(nt[0], s)
	w.checkBoolish(condTag, nt[0].Span)

	w.walkBlock(nt[1], s)

	if len(nt) > 2 {
		w.walkElse(nt[2], s)
	}
}

func (w *walker) walkElse(n *cst.Node, s *scope) {
	for _, body := range n.NonTokens() {
		if body.Kind == cst.KindIf {
			w.walkIf(body, s)
		} else {
			w.walkBlock(body, s)
		}
	}
}

func (w *walker) checkBoolish(tag TypeTag, span source.Span) {
	if tag.Kind != TagConcrete || tag.Meta == nil {
		return
	}

	if boolMeta, ok := w.reg.TypeByName("Bool"); ok && tag.Meta != boolMeta {
		w.issue(CodeTypeMismatch, span, "", "expected Bool, found %q", tag.Meta.Name)
	}
}

func (w *walker) walkMatch(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return
	}

	w.walkExpr(nt[0], s)

	arms := nt[1].NonTokens()
	for i, arm := range arms {
		armChildren := arm.NonTokens()
		if len(armChildren) < 2 {
			continue
		}

		w.walkExpr(armChildren[0], s)
		w.walkExpr(armChildren[1], s)

		if i < len(arms)-1 && isLiteralPattern(armChildren[0]) && isLiteralPattern(arms[i+1].NonTokens()[0]) &&
			sameLiteral(armChildren[0], arms[i+1].NonTokens()[0]) {
			w.issue(CodeUnreachableArm, arms[i+1].Span, "", "match arm is unreachable: duplicates an earlier pattern")
		}
	}
}

func isLiteralPattern(n *cst.Node) bool {
	switch n.Kind {
	case cst.KindNumber, cst.KindString, cst.KindBool:
		return true
	default:
		return false
	}
}

func sameLiteral(a, b *cst.Node) bool {
	return a.Text() == b.Text()
}

func (w *walker) walkFor(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) < 3 {
		return
	}

	varNode, iter, body := nt[0], nt[1], nt[2]
	w.walkExpr(iter, s)

	bodyScope := newChildScope(s)
	bodyScope.loopDepth++

	if len(varNode.Children) > 0 {
		name := varNode.Children[0].Token.Text
		b := bodyScope.declare(name, varNode.Span, bindVar)
		b.Initialized = true
		b.Tag = Dynamic
		w.symbol(SymbolVar, name, varNode.Span)
		semanticsOf(varNode).Binding = b
	}

	w.walkStatements(body.NonTokens(), bodyScope)
}

func (w *walker) walkLoop(n *cst.Node, s *scope) {
	nt := n.NonTokens()
	if len(nt) == 0 {
		return
	}

	bodyScope := newChildScope(s)
	bodyScope.loopDepth++

	w.walkStatements(nt[0].NonTokens(), bodyScope)
}

func (w *walker) walkJump(n *cst.Node, s *scope) {
	if s.loopDepth == 0 {
		kw := "break"
		if n.Kind == cst.KindContinue {
			kw = "continue"
		}

		w.issue(CodeOrphanedBreak, n.Span, "", "%s outside of a loop", kw)
	}

	w.symbol(SymbolBreak, "", n.Span)

	for _, v := range n.NonTokens() {
		w.walkExpr(v, s)
	}
}

func (w *walker) walkReturn(n *cst.Node, s *scope) {
	w.symbol(SymbolReturn, "", n.Span)

	fn := s.fn()
	values := n.NonTokens()

	if len(values) == 0 {
		fn.hasBareReturn = true

		return
	}

	fn.hasValueReturn = true
	w.walkExpr(values[0], s)
}

// walkExpr evaluates n for its TypeTag, resolving identifiers and raising
// any depth-2/depth-3 diagnostics the expression triggers. It always
// returns a tag, falling back to Dynamic when the shape can't be pinned
// down.
func (w *walker) walkExpr(n *cst.Node, s *scope) TypeTag {
	if n == nil {
		return Dynamic
	}

	var tag TypeTag

	switch n.Kind {
	case cst.KindNumber:
		tag = w.walkNumber(n)
	case cst.KindString:
		tag = w.concreteOrDynamic("String")
	case cst.KindBool:
		tag = w.concreteOrDynamic("Bool")
	case cst.KindMax:
		tag = w.concreteOrDynamic("Felt")
	case cst.KindCrate, cst.KindThis:
		tag = Dynamic
	case cst.KindIdent:
		tag = w.walkIdent(n, s)
	case cst.KindBinary:
		tag = w.walkBinary(n, s)
	case cst.KindUnaryLeft:
		tag = w.walkUnary(n, s)
	case cst.KindField:
		tag = w.walkField(n, s)
	case cst.KindQuery:
		tag = w.walkQuery(n, s)
	case cst.KindCall:
		tag = w.walkCall(n, s)
	case cst.KindIndex:
		tag = w.walkIndex(n, s)
	case cst.KindArray:
		tag = w.walkArray(n, s)
	case cst.KindFn:
		w.walkFnDecl(n, s)

		tag = semanticsOf(n).Tag
		if tag.Kind == TagUnset {
			params := n.NonTokens()[0].Idents()
			tag = Fn(len(params))
		}
	case cst.KindExpr:
		// the parenthesised-expression wrapper: NonTokens()[0] is the inner
		// value; fall through and evaluate that.
		nt := n.NonTokens()
		if len(nt) > 0 {
			tag = w.walkExpr(nt[0], s)
		}
	default:
		tag = Dynamic
	}

	semanticsOf(n).Tag = tag
	semanticsOf(n).Scope = s

	return tag
}

func (w *walker) concreteOrDynamic(typeName string) TypeTag {
	if meta, ok := w.reg.TypeByName(typeName); ok {
		return Concrete(meta)
	}

	return Dynamic
}

func (w *walker) walkNumber(n *cst.Node) TypeTag {
	if len(n.Children) == 0 {
		return Dynamic
	}

	tok := n.Children[0].Token

	if tok.Kind == lexer.Float {
		if _, err := parseFloatText(tok.Text); err != nil {
			w.issue(CodeFloatParse, n.Span, "", "invalid float literal %q", tok.Text)
		}

		return w.concreteOrDynamic("Float")
	}

	if _, err := parseIntText(tok.Text); err != nil {
		w.issue(CodeIntParse, n.Span, "", "invalid integer literal %q", tok.Text)
	}

	return w.concreteOrDynamic("Int")
}

func (w *walker) walkIdent(n *cst.Node, s *scope) TypeTag {
	if len(n.Children) == 0 {
		return Dynamic
	}

	name := n.Children[0].Token.Text

	if b := s.lookup(name); b != nil {
		if !b.Initialized {
			w.issue(CodeReadUninit, n.Span, "", "%q read before it is initialized", name)
		}

		semanticsOf(n).Binding = b

		return b.Tag
	}

	if _, ok := w.reg.Package(name); ok {
		semanticsOf(n).Tag = Dynamic

		return Dynamic
	}

	pool := append(append([]string{}, s.visibleNames()...), w.reg.PackageNames()...)
	suggestions := registry.ClosestNames(name, pool, 1)

	quickfix := ""
	if len(suggestions) > 0 {
		quickfix = suggestions[0]
	}

	w.issue(CodeUnresolvedIdent, n.Span, quickfix, "unresolved identifier %q", name)

	return Dynamic
}

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
	case lexer.Assign:
		return registry.OpAssign, true
	case lexer.AddAssign:
		return registry.OpAddAssign, true
	case lexer.SubAssign:
		return registry.OpSubAssign, true
	case lexer.MulAssign:
		return registry.OpMulAssign, true
	case lexer.DivAssign:
		return registry.OpDivAssign, true
	case lexer.RemAssign:
		return registry.OpRemAssign, true
	case lexer.BitAndAssign:
		return registry.OpBitAndAssign, true
	case lexer.BitOrAssign:
		return registry.OpBitOrAssign, true
	case lexer.BitXorAssign:
		return registry.OpBitXorAssign, true
	case lexer.ShlAssign:
		return registry.OpShlAssign, true
	case lexer.ShrAssign:
		return registry.OpShrAssign, true
	default:
		return 0, false
	}
}

func (w *walker) walkBinary(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) < 3 {
		return Dynamic
	}

	lhs, opNode, rhs := nt[0], nt[1], nt[2]
	lhsTag := w.walkExpr(lhs, s)
	w.walkExpr(rhs, s)
	w.symbol(SymbolOperator, opNode.Text(), opNode.Span)

	if len(opNode.Children) == 0 {
		return Dynamic
	}

	// an Assign-family operator writing through a literal LHS can never
	// succeed: the LHS has no lvalue to write into.
	if isLiteralPattern(lhs) && isAssignToken(opNode.Children[0].Token.Kind) {
		w.issue(CodeLiteralAssignment, lhs.Span, "", "cannot assign to a literal")
	}

	kind, ok := opKindFor(opNode.Children[0].Token.Kind)
	if !ok {
		return Dynamic
	}

	if lhsTag.Kind != TagConcrete || lhsTag.Meta == nil {
		return Dynamic
	}

	slot := lhsTag.Meta.Prototype.Operator(kind)
	if slot == nil {
		w.issue(CodeUndefinedOperator, n.Span, "", "type %q has no %q operator", lhsTag.Meta.Name, kind)

		return Dynamic
	}

	return ResultOf(slot.ResultHint)
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

func (w *walker) walkUnary(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return Dynamic
	}

	opNode, operand := nt[0], nt[1]
	tag := w.walkExpr(operand, s)
	w.symbol(SymbolOperator, opNode.Text(), opNode.Span)

	if len(opNode.Children) == 0 || tag.Kind != TagConcrete || tag.Meta == nil {
		return Dynamic
	}

	var kind registry.OperatorKind

	switch opNode.Children[0].Token.Kind {
	case lexer.Bang:
		kind = registry.OpNot
	case lexer.Minus:
		kind = registry.OpNeg
	case lexer.Star:
		kind = registry.OpClone
	default:
		return Dynamic
	}

	slot := tag.Meta.Prototype.Operator(kind)
	if slot == nil {
		w.issue(CodeUndefinedOperator, n.Span, "", "type %q has no %q operator", tag.Meta.Name, kind)

		return Dynamic
	}

	return ResultOf(slot.ResultHint)
}

func (w *walker) walkField(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) == 0 {
		return Dynamic
	}

	baseTag := w.walkExpr(nt[0], s)

	idents := n.Idents()
	if len(idents) == 0 {
		return Dynamic
	}

	fieldName := idents[0].Token.Text
	w.symbol(SymbolField, fieldName, idents[0].Span)

	if baseTag.Kind == TagStruct {
		for _, e := range baseTag.Entries {
			if e == fieldName {
				return Dynamic
			}
		}

		suggestions := registry.ClosestNames(fieldName, baseTag.Entries, 1)
		quickfix := ""

		if len(suggestions) > 0 {
			quickfix = suggestions[0]
		}

		w.issue(CodeUnknownComponent, idents[0].Span, quickfix, "struct has no entry %q", fieldName)

		return Dynamic
	}

	if baseTag.Kind != TagConcrete || baseTag.Meta == nil {
		return Dynamic
	}

	c := baseTag.Meta.Prototype.Component(fieldName)
	if c == nil {
		suggestions := w.reg.SuggestComponents(baseTag.Meta.Name, fieldName, 1)
		quickfix := ""

		if len(suggestions) > 0 {
			quickfix = suggestions[0]
		}

		w.issue(CodeUnknownComponent, idents[0].Span, quickfix, "type %q has no component %q", baseTag.Meta.Name, fieldName)

		return Dynamic
	}

	return ResultOf(c.ResultHint)
}

func (w *walker) walkQuery(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) > 0 {
		w.walkExpr(nt[0], s)
	}

	if idents := n.Idents(); len(idents) > 0 {
		w.symbol(SymbolIdent, idents[0].Token.Text, idents[0].Span)
	}

	return Dynamic
}

func (w *walker) walkCall(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return Dynamic
	}

	callee, args := nt[0], nt[1]
	calleeTag := w.walkExpr(callee, s)

	argExprs := args.NonTokens()
	for _, a := range argExprs {
		w.walkExpr(a, s)
	}

	w.symbol(SymbolCall, callee.Text(), n.Span)

	if calleeTag.Kind == TagFn && calleeTag.Arity != len(argExprs) {
		w.issue(CodeCallArityMismatch, n.Span, "",
			"function expects %d argument(s), found %d", calleeTag.Arity, len(argExprs))
	}

	return Dynamic
}

func (w *walker) walkIndex(n *cst.Node, s *scope) TypeTag {
	nt := n.NonTokens()
	if len(nt) < 2 {
		return Dynamic
	}

	base, idxWrap := nt[0], nt[1]
	w.walkExpr(base, s)

	w.symbol(SymbolIndex, "", n.Span)

	idxChildren := idxWrap.NonTokens()
	if len(idxChildren) == 0 {
		return Dynamic
	}

	idxTag := w.walkExpr(idxChildren[0], s)

	if idxTag.Kind == TagConcrete && idxTag.Meta != nil {
		if numFamily, ok := w.reg.Family("number"); ok && !numFamily.Contains(idxTag.Meta) {
			w.issue(CodeIndexTypeMismatch, idxChildren[0].Span, "", "index must be numeric, found %q", idxTag.Meta.Name)
		}
	}

	return Dynamic
}

func (w *walker) walkArray(n *cst.Node, s *scope) TypeTag {
	for _, e := range n.NonTokens() {
		w.walkExpr(e, s)
	}

	return w.concreteOrDynamic("Array")
}
