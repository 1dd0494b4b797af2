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

// Package vm executes an *asm.Assembly: a stack-based interpreter with
// frame-per-call discipline, operator dispatch through the type/prototype
// registry, closure materialization and cooperative cancellation. It is the
// last stage of the pipeline lexer -> cst -> analyzer -> asm -> vm.
package vm

import (
	"github.com/adastra-lang/adastra/pkg/asm"
	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
)

// valueKind tags the three shapes an operand-stack or local slot can hold.
// Only Cell is a script-visible registry type; Closure and Range are pure VM
// runtime concepts with no Prototype of their own, so dispatch on them
// (Invoke, Iterate) happens directly in the interpreter rather than through
// registry.Invoke.
type valueKind uint8

const (
	kindCell valueKind = iota
	kindClosure
	kindRange
)

// Value is the tagged union every operand-stack slot, local slot and
// capture slot holds.
type Value struct {
	kind    valueKind
	cell    cell.Cell
	closure *Closure
	iter    *rangeIter
}

// nilValue is the zero Value: a Cell variant wrapping cell.Nil. Frame slots
// are seeded with this explicitly — a bare Value{} would carry a zero
// cell.Cell, which is distinct from (and unsafe to treat as) cell.Nil.
var nilValue = Value{kind: kindCell, cell: cell.Nil}

func cellValue(c cell.Cell) Value {
	return Value{kind: kindCell, cell: c}
}

func closureValue(c *Closure) Value {
	return Value{kind: kindClosure, closure: c}
}

func rangeValue(r *rangeIter) Value {
	return Value{kind: kindRange, iter: r}
}

// isUninitCell reports whether v is the nil Cell, the slot state a
// never-bound local or capture is seeded with.
func (v Value) isUninitCell() bool {
	return v.kind == kindCell && v.cell.IsNil()
}

// release drops a Cell value's grant. Closures and ranges own no
// MemorySlice grant, so releasing them is a no-op.
func (v Value) release() {
	if v.kind == kindCell {
		v.cell.Release()
	}
}

// reproject re-grants a Value for a second read without consuming the
// original: for a Cell, a fresh ValueRef grant over the same projection
// (Lift/LiftCapture's documented behavior); for a Closure or Range, the
// same underlying pointer (captures and loop iterators are shared, not
// copied, across every Lift of the slot that holds them).
func (v Value) reproject(at origin.Origin) (Value, *origin.RuntimeError) {
	if v.kind != kindCell {
		return v, nil
	}

	if v.cell.IsNil() {
		return nilValue, nil
	}

	projected, err := v.cell.Project(at, cell.ValueRef, 0, v.cell.Projection().Len())
	if err != nil {
		return Value{}, err
	}

	return cellValue(projected), nil
}

// asCell requires a Cell-kind Value, raising TypeMismatch otherwise — used
// wherever an instruction's operand must be a script value rather than a
// closure or a raw iterator (operator dispatch, field/index access, return
// values).
func (v Value) asCell(at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	if v.kind != kindCell {
		return cell.Nil, origin.NewRuntimeError(origin.TypeMismatch, at, "expected a value, found a function or range")
	}

	return v.cell, nil
}

// Closure is a script function value: a pointer to its compiled body plus
// the environment values it captured at creation time.
type Closure struct {
	asm      *asm.Assembly
	captures []Value
}

// rangeIter is the mutable cursor behind a Range value. Iterate advances it
// in place without popping the Range off the operand stack, so every alias
// of the same Value (e.g. one left on the stack across loop iterations)
// observes the same cursor.
type rangeIter struct {
	cur, end int64
}

func (r *rangeIter) next() (int64, bool) {
	if r.cur >= r.end {
		return 0, false
	}

	v := r.cur
	r.cur++

	return v, true
}
