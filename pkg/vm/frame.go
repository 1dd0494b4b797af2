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
	"github.com/adastra-lang/adastra/pkg/asm"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Frame is one activation of an Assembly: its local slots (parameters plus
// every let/for binding), the capture environment it closed over (empty for
// the root frame and for captureless functions), its operand stack, and the
// instruction pointer into asm.Commands.
type Frame struct {
	asm      *asm.Assembly
	ip       int
	locals   []Value
	captures []Value
	operand  []Value
}

// newFrame allocates a frame ready to execute a, with locals[0:len(args)]
// pre-bound to the call's argument values and every remaining local slot
// seeded to nilValue.
func newFrame(a *asm.Assembly, args, captures []Value) *Frame {
	f := &Frame{asm: a, captures: captures}

	f.locals = make([]Value, a.FrameSize)
	for i := range f.locals {
		f.locals[i] = nilValue
	}

	copy(f.locals, args)

	return f
}

func (f *Frame) push(v Value) {
	f.operand = append(f.operand, v)
}

// pop removes and returns the top operand, or nilValue if the stack is
// already at the frame base (Ret with no explicit value).
func (f *Frame) pop() Value {
	if len(f.operand) == 0 {
		return nilValue
	}

	v := f.operand[len(f.operand)-1]
	f.operand = f.operand[:len(f.operand)-1]

	return v
}

// popN removes and returns the top n operands, oldest first (i.e. restoring
// left-to-right source order for an argument list or literal that pushed
// its elements in that order).
func (f *Frame) popN(n int64) []Value {
	if n <= 0 {
		return nil
	}

	k := len(f.operand) - int(n)
	if k < 0 {
		k = 0
	}

	out := append([]Value(nil), f.operand[k:]...)
	f.operand = f.operand[:k]

	return out
}

func (f *Frame) top() Value {
	if len(f.operand) == 0 {
		return nilValue
	}

	return f.operand[len(f.operand)-1]
}

// origin reconstructs the script-code Origin of the command at ip, for
// error reporting, unwind frames and the cancellation hook.
func (f *Frame) origin(ip int) origin.Origin {
	if ip < 0 || ip >= len(f.asm.Commands) {
		return origin.NilOrigin
	}

	idx := f.asm.Commands[ip].OriginIdx
	if idx < 0 || idx >= len(f.asm.Origins) {
		return origin.NilOrigin
	}

	span := f.asm.Origins[idx]

	return origin.NewScript(f.asm.Module, source.NewSpan(span.Start, span.End))
}
