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

// Package cst builds a concrete syntax tree from a lexer.Token stream: every
// significant token (punctuation included) is kept as a leaf, so the tree
// can re-derive the token sequence of the source. Parse always builds the
// tree for the whole token stream; there is no re-parse of a single edited
// span. Whitespace and comments are dropped by
// the lexer before the tree sees them, so Text() reconstructs the token
// sequence, not the original bytes.
package cst

import (
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Kind enumerates every node the parser can produce.
type Kind uint

const (
	KindError Kind = iota
	KindRoot
	KindClause
	KindUse
	KindPackagePath
	KindIf
	KindMatch
	KindMatchBody
	KindMatchArm
	KindElse
	KindLet
	KindVar
	KindFor
	KindLoop
	KindBlock
	KindBreak
	KindContinue
	KindReturn
	KindFn
	KindFnParams
	KindStruct
	KindStructBody
	KindStructEntry
	KindStructEntryKey
	KindArray
	KindString
	KindCrate
	KindThis
	KindIdent
	KindNumber
	KindBool
	KindMax
	KindUnaryLeft
	KindBinary
	KindOp
	KindQuery
	KindCall
	KindCallArgs
	KindIndex
	KindIndexArg
	KindField
	KindExpr
	// KindToken wraps a single lexer.Token as a leaf node (punctuation,
	// identifiers, literals): every terminal in the tree is one of these.
	KindToken
)

// Node is one element of the concrete syntax tree.  Leaf nodes (KindToken)
// carry a Token; interior nodes carry Children.  Every node knows its
// Parent, so the analyzer can walk upward from a cursor position, and its
// Span, so edits can be mapped to the subtree they invalidate.
type Node struct {
	Kind     Kind
	Span     source.Span
	Parent   *Node
	Children []*Node
	Token    *lexer.Token
	// Semantics is an opaque slot the analyzer attaches its attribute-graph
	// results to (type tag, resolved symbol, diagnostics contributed by this
	// node). The cst package never reads or writes it.
	Semantics any
}

func newLeaf(tok lexer.Token) *Node {
	return &Node{Kind: KindToken, Span: tok.Span, Token: &tok}
}

func newNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}

	for _, c := range children {
		if c == nil {
			continue
		}

		c.Parent = n
		n.Children = append(n.Children, c)
	}

	if len(n.Children) > 0 {
		first, last := n.Children[0], n.Children[len(n.Children)-1]
		n.Span = source.NewSpan(first.Span.Start(), last.Span.End())
	}

	return n
}

// Text reconstructs the token sequence this node covers, concatenated
// without the whitespace the lexer discarded.
func (n *Node) Text() string {
	if n.Kind == KindToken {
		return n.Token.Text
	}

	out := ""
	for _, c := range n.Children {
		out += c.Text()
	}

	return out
}

// NonTokens returns n's children that are not bare KindToken leaves
// (keywords, punctuation, commas): the semantically meaningful subset an
// analyzer or compiler pass actually needs to recurse into.
func (n *Node) NonTokens() []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Kind != KindToken {
			out = append(out, c)
		}
	}

	return out
}

// Idents returns every direct child that is an Ident token leaf, in order:
// used to pull the identifier list out of a node where identifiers and
// separator punctuation are siblings at the same level (PackagePath,
// FnParams), or the optional name out of a KindFn node.
func (n *Node) Idents() []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Kind == KindToken && c.Token.Kind == lexer.Ident {
			out = append(out, c)
		}
	}

	return out
}

// Walk visits n and every descendant, depth-first, pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)

	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindAt returns the innermost node whose span contains offset.
func (n *Node) FindAt(offset int) *Node {
	if offset < n.Span.Start() || offset > n.Span.End() {
		return nil
	}

	for _, c := range n.Children {
		if found := c.FindAt(offset); found != nil {
			return found
		}
	}

	return n
}
