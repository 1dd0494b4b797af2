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
	"sort"

	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Diagnostics returns every issue raised at depth <= depth, ordered by
// position. depth 1 is parse errors only, 2 adds local-semantic issues, 3
// (the default, full analysis) adds type-flow warnings.
func (a *Analysis) Diagnostics(depth int) []Issue {
	var out []Issue

	for _, iss := range a.Issues {
		if iss.Code.Depth() <= depth {
			out = append(out, iss)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Span.Start() < out[j].Span.Start() })

	return out
}

// SymbolsIn returns every collected symbol whose kind is set in mask and
// whose span falls within span (the zero Span, start==end==0, is treated as
// "the whole module").
func (a *Analysis) SymbolsIn(span source.Span, mask SymbolKind) []Symbol {
	whole := span.Start() == 0 && span.End() == 0

	var out []Symbol

	for _, sym := range a.Symbols {
		if sym.Kind&mask == 0 {
			continue
		}

		if !whole && (sym.Span.Start() < span.Start() || sym.Span.End() > span.End()) {
			continue
		}

		out = append(out, sym)
	}

	return out
}

// CompletionScope classifies the syntactic context a completion request
// site falls in, driving which candidate pool Completions draws from.
type CompletionScope uint8

const (
	ScopeUnknown CompletionScope = iota
	ScopeImport
	ScopeExpression
	ScopeStatement
	ScopeMatchArm
	ScopeField
)

// Completion is one candidate offered at a completion site.
type Completion struct {
	Name string
	Kind SymbolKind
}

// Completions resolves the completion candidates visible at offset: it
// classifies the syntactic scope of the innermost node containing offset,
// then gathers the candidate pool that scope implies (visible local names,
// registered package names, or a struct/prototype's component names for a
// field-access site).
func (a *Analysis) Completions(offset int) (CompletionScope, []Completion) {
	node := a.Root.FindAt(offset)
	if node == nil {
		return ScopeUnknown, nil
	}

	for cur := node; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case cst.KindPackagePath, cst.KindUse:
			return ScopeImport, a.importCompletions()
		case cst.KindField, cst.KindQuery:
			return ScopeField, a.fieldCompletions(cur)
		case cst.KindMatchArm:
			return ScopeMatchArm, a.scopeCompletions(cur)
		case cst.KindExpr, cst.KindBinary, cst.KindUnaryLeft, cst.KindCall, cst.KindIndex:
			return ScopeExpression, a.scopeCompletions(cur)
		case cst.KindBlock, cst.KindClause, cst.KindRoot:
			return ScopeStatement, a.scopeCompletions(cur)
		}
	}

	return ScopeUnknown, nil
}

func (a *Analysis) importCompletions() []Completion {
	var out []Completion

	for _, name := range a.Registry.PackageNames() {
		out = append(out, Completion{Name: name, Kind: SymbolPackage})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func (a *Analysis) fieldCompletions(n *cst.Node) []Completion {
	nt := n.NonTokens()
	if len(nt) == 0 {
		return nil
	}

	sem, ok := nt[0].Semantics.(*Semantics)
	if !ok {
		return nil
	}

	switch sem.Tag.Kind {
	case TagStruct:
		out := make([]Completion, 0, len(sem.Tag.Entries))
		for _, e := range sem.Tag.Entries {
			out = append(out, Completion{Name: e, Kind: SymbolEntry})
		}

		return out
	case TagConcrete:
		if sem.Tag.Meta == nil {
			return nil
		}

		names := sem.Tag.Meta.Prototype.ComponentNames()
		out := make([]Completion, 0, len(names))

		for _, name := range names {
			out = append(out, Completion{Name: name, Kind: SymbolField})
		}

		return out
	default:
		return nil
	}
}

func (a *Analysis) scopeCompletions(n *cst.Node) []Completion {
	sem, ok := n.Semantics.(*Semantics)
	if !ok || sem.Scope == nil {
		return a.importCompletions()
	}

	var out []Completion

	for _, name := range sem.Scope.visibleNames() {
		out = append(out, Completion{Name: name, Kind: SymbolIdent})
	}

	for _, name := range a.Registry.PackageNames() {
		out = append(out, Completion{Name: name, Kind: SymbolPackage})
	}

	return out
}
