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
package vm

import (
	"testing"

	"github.com/adastra-lang/adastra/pkg/analyzer"
	"github.com/adastra-lang/adastra/pkg/asm"
	"github.com/adastra-lang/adastra/pkg/cst"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func bootOrigin() origin.Origin {
	return origin.NewHost(origin.HostLocation{ModulePath: "vm_test"})
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()

	err := reg.Declare([]registry.DeclarationGroup{
		natives.Declarations(bootOrigin()),
		felt.Declarations(bootOrigin()),
	})
	assert.True(t, err == nil)

	return reg
}

func compileSrc(t *testing.T, reg *registry.Registry, src string) *asm.Assembly {
	t.Helper()

	file := source.NewSourceFile("t", []byte(src))
	toks := lexer.Tokenize(file)
	p := cst.NewParser(toks)
	root := p.Parse()
	assert.Equal(t, 0, len(p.Errors()))

	a := analyzer.Analyze(root, "t", reg)

	asmFile, err := asm.Compile(a)
	assert.NoError(t, err)

	return asmFile
}

func runSrc(t *testing.T, reg *registry.Registry, src string) (felt.Int, *origin.RuntimeError) {
	t.Helper()

	asmFile := compileSrc(t, reg, src)
	interp := New(reg)

	result, rerr := interp.Run(asmFile, nil)
	if rerr != nil {
		return 0, rerr
	}

	v, err := felt.UnboxInt(origin.NilOrigin, result)
	assert.True(t, err == nil)

	return v, nil
}

func TestInterpreter_00_Arithmetic(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "1 + 2 * 3;")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(7), v)
}

func TestInterpreter_01_LetAndReassign(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "let x = 1; x = x + 41; x;")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(42), v)
}

func TestInterpreter_02_FnCall(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "fn add(a, b) { return a + b; } add(2, 3);")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(5), v)
}

func TestInterpreter_03_ForLoopOverRange(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "let sum = 0; for i in 0..5 { sum = sum + i; } sum;")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(10), v)
}

func TestInterpreter_04_ArrayLiteralAndIndex(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "let xs = [10, 20, 30]; xs[1];")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(20), v)
}

func TestInterpreter_05_IfElse(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "let x = 5; if x > 3 { 1; } else { 0; }")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(1), v)
}

func TestInterpreter_06_DivisionByZeroUnwindsFrame(t *testing.T) {
	reg := newTestRegistry(t)

	_, rerr := runSrc(t, reg, "fn bad(a, b) { return a / b; } bad(1, 0);")
	assert.True(t, rerr != nil)
	assert.Equal(t, origin.DivisionByZero, rerr.Kind)
	assert.True(t, len(rerr.Frames) > 0)
}

func TestInterpreter_07_UndefinedComponentProducesDiagnostic(t *testing.T) {
	reg := newTestRegistry(t)

	_, rerr := runSrc(t, reg, "let x = 1; x.nope;")
	assert.True(t, rerr != nil)
	assert.Equal(t, origin.UnknownComponent, rerr.Kind)
}

func TestInterpreter_08_ClosureCaptures(t *testing.T) {
	reg := newTestRegistry(t)

	v, rerr := runSrc(t, reg, "let n = 9; fn get() { return n; } get();")
	assert.True(t, rerr == nil)
	assert.Equal(t, felt.Int(9), v)
}
