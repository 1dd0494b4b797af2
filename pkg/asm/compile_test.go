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
	"testing"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	at := origin.NewHost(origin.HostLocation{ModulePath: "asm_test"})

	err := reg.Declare([]registry.DeclarationGroup{natives.Declarations(at), felt.Declarations(at)})
	assert.True(t, err == nil)

	return reg
}

func compile(t *testing.T, src string) *Assembly {
	t.Helper()

	reg := testRegistry(t)
	file := source.NewSourceFile("t", []byte(src))
	toks := lexer.Tokenize(file)
	p := cst.NewParser(toks)
	root := p.Parse()
	assert.Equal(t, 0, len(p.Errors()))

	a := analyzer.Analyze(root, "t", reg)

	asmFile, err := Compile(a)
	assert.NoError(t, err)

	return asmFile
}

func countOp(a *Assembly, op Op) int {
	n := 0

	for _, cmd := range a.Commands {
		if cmd.Op == op {
			n++
		}
	}

	return n
}

func TestCompile_00_RangeLiteralEmitsOpRange(t *testing.T) {
	a := compile(t, "0..5;")

	assert.Equal(t, 1, countOp(a, OpRange))
}

func TestCompile_01_ForLoopEmitsIterateAndRange(t *testing.T) {
	a := compile(t, "for i in 0..5 { i; }")

	assert.Equal(t, 1, countOp(a, OpRange))
	assert.Equal(t, 1, countOp(a, OpIterate))
}

func TestCompile_02_FnCallPushesCalleeBeforeArgs(t *testing.T) {
	a := compile(t, "fn add(a, b) { return a + b; } add(1, 2);")

	assert.True(t, len(a.Subroutines) >= 1)
	assert.Equal(t, 1, countOp(a, OpInvoke))

	inv := -1

	for i, cmd := range a.Commands {
		if cmd.Op == OpInvoke {
			inv = i
		}
	}

	assert.True(t, inv >= 3)
	assert.Equal(t, OpLift, a.Commands[inv-3].Op)
	assert.Equal(t, OpPushUsize, a.Commands[inv-2].Op)
	assert.Equal(t, OpPushUsize, a.Commands[inv-1].Op)
}

func TestCompile_03_TrailingExpressionLeavesOneOpRet(t *testing.T) {
	a := compile(t, "1 + 2;")

	assert.Equal(t, 1, countOp(a, OpRet))
}
