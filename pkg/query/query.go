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

// Package query adapts pkg/analyzer's attribute query surface
// (Diagnostics/SymbolsIn/Completions) to go.lsp.dev/protocol vocabulary
// types, so an editor collaborator outside this repo can forward them
// without a translation step of its own. It does not implement LSP's
// request/response framing or a server loop; it only produces the
// vocabulary values a jsonrpc2 handler elsewhere would put on the wire.
package query

import (
	"fmt"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/util/source"
	"go.lsp.dev/protocol"
)

// offsetToPosition converts a byte offset into text to an LSP line/character
// position. Character counts bytes rather than UTF-16 code units; this
// adapter targets byte-oriented ASCII/UTF-8 scripts, not full UTF-16
// positional fidelity.
func offsetToPosition(text string, offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}

	if offset > len(text) {
		offset = len(text)
	}

	line, col := uint32(0), uint32(0)

	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return protocol.Position{Line: line, Character: col}
}

func spanToRange(text string, span source.Span) protocol.Range {
	return protocol.Range{Start: offsetToPosition(text, span.Start()), End: offsetToPosition(text, span.End())}
}

func severityOf(s analyzer.Severity) protocol.DiagnosticSeverity {
	if s == analyzer.SeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}

	return protocol.DiagnosticSeverityError
}

// Diagnostics converts every analyzer Issue into a protocol.Diagnostic,
// resolving each Issue's byte-offset Span against text.
func Diagnostics(text string, issues []analyzer.Issue) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(issues))

	for _, iss := range issues {
		out = append(out, protocol.Diagnostic{
			Range:    spanToRange(text, iss.Span),
			Severity: severityOf(iss.Code.Severity()),
			Code:     fmt.Sprintf("%03d", int(iss.Code)),
			Source:   "adastra",
			Message:  iss.Message,
		})
	}

	return out
}

// documentSymbolKind maps one analyzer.SymbolKind bit to the closest
// protocol.SymbolKind; analyzer.SymbolAll is a bitmask, so this is only ever
// called with a single set bit (one Symbol's Kind).
func documentSymbolKind(k analyzer.SymbolKind) protocol.SymbolKind {
	switch k {
	case analyzer.SymbolUse, analyzer.SymbolPackage:
		return protocol.SymbolKindPackage
	case analyzer.SymbolFn:
		return protocol.SymbolKindFunction
	case analyzer.SymbolStruct:
		return protocol.SymbolKindStruct
	case analyzer.SymbolArray:
		return protocol.SymbolKindArray
	case analyzer.SymbolEntry, analyzer.SymbolField:
		return protocol.SymbolKindField
	case analyzer.SymbolOperator:
		return protocol.SymbolKindOperator
	case analyzer.SymbolCall:
		return protocol.SymbolKindFunction
	case analyzer.SymbolLiteral:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindVariable
	}
}

// Symbols converts every analyzer Symbol into a flat protocol.DocumentSymbol
// list (no nesting: the analyzer's symbol table is already a flat
// occurrence list, not a containment tree).
func Symbols(text string, syms []analyzer.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))

	for _, sym := range syms {
		rng := spanToRange(text, sym.Span)
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           documentSymbolKind(sym.Kind),
			Range:          rng,
			SelectionRange: rng,
		})
	}

	return out
}

// completionItemKind maps one analyzer.SymbolKind to the closest
// protocol.CompletionItemKind.
func completionItemKind(k analyzer.SymbolKind) protocol.CompletionItemKind {
	switch k {
	case analyzer.SymbolPackage:
		return protocol.CompletionItemKindModule
	case analyzer.SymbolFn, analyzer.SymbolCall:
		return protocol.CompletionItemKindFunction
	case analyzer.SymbolStruct:
		return protocol.CompletionItemKindStruct
	case analyzer.SymbolEntry, analyzer.SymbolField:
		return protocol.CompletionItemKindField
	case analyzer.SymbolOperator:
		return protocol.CompletionItemKindOperator
	default:
		return protocol.CompletionItemKindVariable
	}
}

// Completions converts every analyzer Completion into a protocol.CompletionItem.
func Completions(items []analyzer.Completion) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))

	for _, c := range items {
		out = append(out, protocol.CompletionItem{
			Label: c.Name,
			Kind:  completionItemKind(c.Kind),
		})
	}

	return out
}
