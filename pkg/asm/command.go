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

// Package asm defines the bytecode an Assembly carries: a flat Command
// stream plus the pools (strings, nested subroutines) its operands index
// into, and the per-command source map back to the script that produced
// it. It also holds Compile, which lowers an analyzer.Analysis to an
// Assembly. An Assembly is pure data — pkg/vm imports it to execute a
// Command stream; asm itself never touches the cell layer, so an Assembly
// stays usable as a standalone inspectable artifact (pkg/module's
// compile() query returns one without needing a VM at all).
package asm

import "github.com/adastra-lang/adastra/pkg/registry"

// Op enumerates every bytecode instruction the compiler emits.
type Op uint8

const (
	// Control flow.
	OpIfTrue  Op = iota // pop condition; if true, jump to A
	OpIfFalse           // pop condition; if false, jump to A
	OpJump              // unconditional jump to A
	OpIterate           // advance the range on top of stack; push next element and true, or push false, used to drive for-loops
	OpRet               // return the top of stack (or nil, if the stack is at the frame base) to the caller

	// Stack shape.
	OpLift        // push a fresh ValueRef grant over frame local slot A onto the operand stack
	OpLiftCapture // push a fresh ValueRef grant over capture slot A of the current frame's capture environment
	OpSwap        // swap the top two stack values
	OpDup         // duplicate the top stack value (fresh ValueRef grant)
	OpShrink      // pop and discard the top A values (an expression statement's unused result, most often A=1)

	// Literals and constants.
	OpPushNil     // push the nil Cell
	OpPushTrue    // push a Bool(true) Cell
	OpPushFalse   // push a Bool(false) Cell
	OpPushUsize   // push an Int Cell from A (unsigned literal)
	OpPushIsize   // push an Int Cell from A (signed literal)
	OpPushFloat   // push a Float Cell from F
	OpPushString  // push a String Cell built from Assembly.Strings[A]
	OpPushPackage // push the registry package named Assembly.Strings[A]
	OpPushClosure // push a closure over subroutine Assembly.Subroutines[A], capturing the top B stack values
	OpPushFn      // push a closure over subroutine Assembly.Subroutines[A] with no captures
	OpPushStruct  // pop A values (pushed in declaration order, so popped and reversed) into a Struct Cell; field names are resolved positionally at compile time, not carried at runtime

	// Collections.
	OpRange   // pop end, pop start; push a Range value
	OpBind    // bind the top stack value into local slot A (used for let/for/param materialization)
	OpConcat  // pop A values and concatenate them into a single Array Cell
	OpField   // pop a Cell; push the named component/entry Assembly.Strings[A] resolved against it
	OpLen     // pop a Cell; push its Int length
	OpQuery   // pop a Cell; push the named static sub-item Assembly.Strings[A] resolved against it

	// Dispatch.
	OpOperator // pop arity-many operands (rightmost last) and self; push registry.Invoke(OperatorKind(A), self, operands)
	OpInvoke   // pop A arguments and a callee; call the callee (closure or host component) with those arguments
	OpIndex    // pop an index and a Cell; push the element Cell.Project/Downcast narrows to

	opCount
)

var opNames = [opCount]string{
	"if_true", "if_false", "jump", "iterate", "ret",
	"lift", "lift_capture", "swap", "dup", "shrink",
	"push_nil", "push_true", "push_false", "push_usize", "push_isize", "push_float",
	"push_string", "push_package", "push_closure", "push_fn", "push_struct",
	"range", "bind", "concat", "field", "len", "query",
	"operator", "invoke", "index",
}

// String renders the instruction's canonical mnemonic.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}

	return "unknown"
}

// Command is one bytecode instruction: pure data, no behavior. A and B are
// generic integer operands (meaning depends on Op, see the Op constants'
// doc comments); F carries a float literal; OriginIdx indexes the owning
// Assembly's Origins source map.
type Command struct {
	Op        Op
	A         int64
	B         int64
	F         float64
	OriginIdx int
}

// Assembly is one compiled function body: its bytecode, the pools its
// operands address, and the source map tying each Command back to the
// script span that produced it.
type Assembly struct {
	// Module names the script this Assembly was compiled from, for Origin
	// reconstruction.
	Module string
	// Arity is the number of declared parameters; FrameSize is the total
	// number of local slots (parameters plus every let/for binding) the VM
	// must reserve on the stack when it enters this Assembly.
	Arity        int
	FrameSize    int
	CaptureCount int
	Commands     []Command
	Strings      []string
	Subroutines  []*Assembly
	// Origins holds one entry per distinct span referenced by Commands;
	// Command.OriginIdx indexes into it.
	Origins []Span
}

// Span is the subset of source.Span an Assembly's source map needs: a plain
// pair of offsets, so the Assembly data itself carries no pkg/util/source
// type (Compile converts each source.Span when it records an Origin).
type Span struct {
	Start, End int
}

var _ = registry.OpAdd // OpOperator.A is a registry.OperatorKind; referenced here only for doc linkage.
