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
	"testing"

	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	at := origin.NewHost(origin.HostLocation{ModulePath: "analyzer_test"})

	err := reg.Declare([]registry.DeclarationGroup{natives.Declarations(at), felt.Declarations(at)})
	assert.True(t, err == nil)

	return reg
}

func analyze(t *testing.T, reg *registry.Registry, src string) *Analysis {
	t.Helper()

	file := source.NewSourceFile("t", []byte(src))
	toks := lexer.Tokenize(file)
	p := cst.NewParser(toks)
	root := p.Parse()
	assert.Equal(t, 0, len(p.Errors()))

	return Analyze(root, "t", reg)
}

func hasErrorDiagnostic(a *Analysis) bool {
	for _, iss := range a.Diagnostics(3) {
		if iss.Code.Severity() == SeverityError {
			return true
		}
	}

	return false
}

func TestAnalyzer_00_NumericComparisonsResolveAnOperator(t *testing.T) {
	reg := newTestRegistry(t)

	for _, src := range []string{"1 < 2;", "1 <= 2;", "1 > 2;", "1 >= 2;"} {
		a := analyze(t, reg, src)
		assert.False(t, hasErrorDiagnostic(a), "unexpected diagnostics for %q", src)

		for _, iss := range a.Diagnostics(3) {
			assert.False(t, iss.Code == CodeUndefinedOperator, "no operator resolved for %q", src)
		}
	}
}

func TestAnalyzer_01_UnresolvedPackageReported(t *testing.T) {
	reg := newTestRegistry(t)
	a := analyze(t, reg, "use nope::Thing;")

	assert.True(t, hasErrorDiagnostic(a))
}
