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
package query

import (
	"testing"

	"go.lsp.dev/protocol"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func TestQuery_00_OffsetToPositionCountsLines(t *testing.T) {
	pos := offsetToPosition("ab\ncd\nef", 6)
	assert.Equal(t, uint32(2), pos.Line)
	assert.Equal(t, uint32(0), pos.Character)
}

func TestQuery_01_OffsetToPositionClampsOutOfRange(t *testing.T) {
	pos := offsetToPosition("abc", 99)
	assert.Equal(t, uint32(0), pos.Line)
	assert.Equal(t, uint32(3), pos.Character)
}

func TestQuery_02_DiagnosticsConvertsSeverityAndCode(t *testing.T) {
	text := "let x = 1;"
	issues := []analyzer.Issue{
		{Code: analyzer.CodeUnresolvedPackage, Message: "unresolved", Span: source.NewSpan(4, 5)},
	}

	diags := Diagnostics(text, issues)

	assert.Equal(t, 1, len(diags))
	assert.Equal(t, protocol.DiagnosticSeverityError, diags[0].Severity)
	assert.Equal(t, "201", diags[0].Code)
	assert.Equal(t, "adastra", diags[0].Source)
}

func TestQuery_03_SymbolsProducesFlatList(t *testing.T) {
	syms := []analyzer.Symbol{
		{Kind: analyzer.SymbolFn, Name: "add", Span: source.NewSpan(0, 3)},
	}

	out := Symbols("fn add() {}", syms)

	assert.Equal(t, 1, len(out))
	assert.Equal(t, "add", out[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, out[0].Kind)
}

func TestQuery_04_CompletionsMapsKind(t *testing.T) {
	items := []analyzer.Completion{
		{Name: "felt", Kind: analyzer.SymbolPackage},
	}

	out := Completions(items)

	assert.Equal(t, 1, len(out))
	assert.Equal(t, "felt", out[0].Label)
	assert.Equal(t, protocol.CompletionItemKindModule, out[0].Kind)
}
