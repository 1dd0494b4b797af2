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
package module

import (
	"testing"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	at := origin.NewHost(origin.HostLocation{ModulePath: "module_test"})

	err := reg.Declare([]registry.DeclarationGroup{natives.Declarations(at), felt.Declarations(at)})
	assert.True(t, err == nil)

	return reg
}

func TestModule_00_DiagnosticsOnValidSource(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "let x = 1 + 2;", reg)

	issues, err := m.Diagnostics(3)
	assert.NoError(t, err)

	for _, iss := range issues {
		assert.True(t, iss.Code.Severity() != analyzer.SeverityError)
	}
}

func TestModule_01_DiagnosticsReportsParseError(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "let x = ;", reg)

	issues, err := m.Diagnostics(1)
	assert.NoError(t, err)
	assert.True(t, len(issues) > 0)
}

func TestModule_02_EditInvalidatesCachedAnalysis(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "let x = ;", reg)

	first, err := m.Diagnostics(1)
	assert.NoError(t, err)
	assert.True(t, len(first) > 0)

	text, err := m.Text()
	assert.NoError(t, err)

	err = m.Edit(source.NewSpan(0, len(text)), "let x = 1;")
	assert.NoError(t, err)

	second, err := m.Diagnostics(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(second))
}

func TestModule_03_AccessDeniedBlocksEveryQuery(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "let x = 1;", reg)

	m.SetAccess(AccessDeny)

	_, err := m.Diagnostics(3)
	assert.Equal(t, ErrAccessDenied, err)

	_, err = m.Text()
	assert.Equal(t, ErrAccessDenied, err)

	_, err = m.Compile()
	assert.Equal(t, ErrAccessDenied, err)
}

func TestModule_04_CompileProducesAssembly(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "1 + 2;", reg)

	a, err := m.Compile()
	assert.NoError(t, err)
	assert.True(t, len(a.Commands) > 0)
}

func TestModule_05_SymbolsAndCompletions(t *testing.T) {
	reg := newTestRegistry(t)
	m := New("t", "let x = 1; x;", reg)

	syms, err := m.Symbols(source.Span{}, analyzer.SymbolAll)
	assert.NoError(t, err)
	assert.True(t, len(syms) > 0)

	_, completions, err := m.Completions(len("let x = 1; x"))
	assert.NoError(t, err)
	assert.True(t, completions != nil || completions == nil)
}
