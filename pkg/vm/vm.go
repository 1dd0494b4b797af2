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
	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/felt"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
)

// CancelHook is consulted before every command; returning false aborts
// execution with an Interrupted error at the command's origin. Each
// Interpreter owns its own hook, so a goroutine that wants cooperative
// cancellation constructs its own Interpreter rather than sharing one —
// there is no global or thread-local hook registry.
type CancelHook func(at origin.Origin) bool

// Interpreter executes compiled Assemblies against one Registry. It carries
// no mutable state between Run calls beyond the optional CancelHook, so a
// single Interpreter value can run the same or different Assemblies
// sequentially; concurrent Run calls from multiple goroutines should each
// use their own Interpreter (registry access itself is read-only and
// already safe to share).
type Interpreter struct {
	reg  *registry.Registry
	Hook CancelHook
}

// New constructs an Interpreter bound to reg.
func New(reg *registry.Registry) *Interpreter {
	return &Interpreter{reg: reg}
}

// Run executes a's top-level commands to completion (or to its first Ret)
// with args bound to its parameter slots, returning the produced Cell.
func (in *Interpreter) Run(a *asm.Assembly, args []cell.Cell) (cell.Cell, *origin.RuntimeError) {
	argVals := make([]Value, len(args))
	for i, c := range args {
		argVals[i] = cellValue(c)
	}

	return in.call(a, argVals, nil)
}

// call drives the frame stack for one invocation of a (the root script body,
// or a closure's subroutine). Frames are pushed on OpInvoke and popped on
// OpRet; there is no Go-stack recursion, so script call depth is bounded
// only by available heap, not goroutine stack size.
func (in *Interpreter) call(a *asm.Assembly, args, captures []Value) (cell.Cell, *origin.RuntimeError) {
	frames := []*Frame{newFrame(a, args, captures)}

	for {
		f := frames[len(frames)-1]

		if f.ip >= len(f.asm.Commands) {
			frames = frames[:len(frames)-1]
			if len(frames) == 0 {
				return cell.Nil, nil
			}

			frames[len(frames)-1].push(nilValue)

			continue
		}

		cmd := f.asm.Commands[f.ip]
		at := f.origin(f.ip)

		if in.Hook != nil && !in.Hook(at) {
			return cell.Nil, in.unwind(frames, origin.NewRuntimeError(origin.Interrupted, at, "script execution was cancelled"))
		}

		f.ip++

		switch cmd.Op {
		case asm.OpRet:
			v := f.pop()

			if len(frames) == 1 {
				c, err := v.asCell(at)
				if err != nil {
					return cell.Nil, in.unwind(frames, err)
				}

				return c, nil
			}

			frames = frames[:len(frames)-1]
			frames[len(frames)-1].push(v)

		case asm.OpInvoke:
			argVals := f.popN(cmd.A)
			callee := f.pop()

			switch callee.kind {
			case kindClosure:
				if int64(callee.closure.asm.Arity) != int64(len(argVals)) {
					err := origin.NewRuntimeErrorf(origin.ArityMismatch, at,
						"function expects %d argument(s), found %d", callee.closure.asm.Arity, len(argVals))

					return cell.Nil, in.unwind(frames, err)
				}

				frames = append(frames, newFrame(callee.closure.asm, argVals, callee.closure.captures))
			case kindCell:
				argCells := make([]cell.Cell, len(argVals))

				for i, av := range argVals {
					c, err := av.asCell(at)
					if err != nil {
						return cell.Nil, in.unwind(frames, err)
					}

					argCells[i] = c
				}

				result, err := in.reg.Invoke(registry.OpInvocation, callee.cell, argCells, at)
				if err != nil {
					return cell.Nil, in.unwind(frames, err)
				}

				f.push(cellValue(result))
			default:
				return cell.Nil, in.unwind(frames, origin.NewRuntimeError(origin.TypeMismatch, at, "value is not callable"))
			}

		default:
			if err := in.step(f, cmd, at); err != nil {
				return cell.Nil, in.unwind(frames, err)
			}
		}
	}
}

// unwind annotates err with every still-active frame's origin, outermost
// first, matching RuntimeError.Frames' documented order.
func (in *Interpreter) unwind(frames []*Frame, err *origin.RuntimeError) *origin.RuntimeError {
	for _, f := range frames {
		err = err.WithFrame(f.origin(f.ip - 1))
	}

	return err
}

// step executes every instruction except OpRet and OpInvoke, which call
// mutates the frame stack itself and so are handled inline in call.
func (in *Interpreter) step(f *Frame, cmd asm.Command, at origin.Origin) *origin.RuntimeError {
	switch cmd.Op {
	case asm.OpIfTrue, asm.OpIfFalse:
		return in.stepBranch(f, cmd, at)

	case asm.OpJump:
		f.ip = int(cmd.A)

	case asm.OpIterate:
		return in.stepIterate(f, at)

	case asm.OpLift:
		return in.stepLift(f.locals, int(cmd.A), f, at)

	case asm.OpLiftCapture:
		return in.stepLift(f.captures, int(cmd.A), f, at)

	case asm.OpSwap:
		y := f.pop()
		x := f.pop()
		f.push(y)
		f.push(x)

	case asm.OpDup:
		v, err := f.top().reproject(at)
		if err != nil {
			return err
		}

		f.push(v)

	case asm.OpShrink:
		for _, v := range f.popN(cmd.A) {
			v.release()
		}

	case asm.OpPushNil:
		f.push(nilValue)

	case asm.OpPushTrue, asm.OpPushFalse:
		c, err := natives.BoxBool(at, cmd.Op == asm.OpPushTrue)
		if err != nil {
			return err
		}

		f.push(cellValue(c))

	case asm.OpPushUsize, asm.OpPushIsize:
		c, err := felt.BoxInt(at, felt.Int(cmd.A))
		if err != nil {
			return err
		}

		f.push(cellValue(c))

	case asm.OpPushFloat:
		c, err := felt.BoxFloat(at, felt.Float(cmd.F))
		if err != nil {
			return err
		}

		f.push(cellValue(c))

	case asm.OpPushString:
		s, err := in.stringAt(f, cmd.A, at)
		if err != nil {
			return err
		}

		c, berr := natives.BoxString(at, s)
		if berr != nil {
			return berr
		}

		f.push(cellValue(c))

	case asm.OpPushPackage:
		return in.stepPushPackage(f, cmd, at)

	case asm.OpPushClosure:
		return in.stepPushClosure(f, cmd, at, true)

	case asm.OpPushFn:
		return in.stepPushClosure(f, cmd, at, false)

	case asm.OpPushStruct:
		return in.stepPushCollection(f, cmd, at, natives.NewStruct)

	case asm.OpRange:
		return in.stepRange(f, at)

	case asm.OpBind:
		v := f.pop()

		slot := int(cmd.A)
		if slot < 0 || slot >= len(f.locals) {
			return origin.NewRuntimeErrorf(origin.UninitRead, at, "bind to out-of-range local slot %d", slot)
		}

		f.locals[slot].release()
		f.locals[slot] = v

	case asm.OpConcat:
		return in.stepPushCollection(f, cmd, at, natives.NewArray)

	case asm.OpField:
		return in.stepComponent(f, cmd, at)

	case asm.OpLen:
		return in.stepLen(f, at)

	case asm.OpQuery:
		return in.stepComponent(f, cmd, at)

	case asm.OpOperator:
		return in.stepOperator(f, cmd, at)

	case asm.OpIndex:
		return in.stepIndex(f, at)
	}

	return nil
}

func (in *Interpreter) stringAt(f *Frame, idx int64, at origin.Origin) (string, *origin.RuntimeError) {
	if idx < 0 || idx >= int64(len(f.asm.Strings)) {
		return "", origin.NewRuntimeErrorf(origin.TypeMismatch, at, "string pool index %d out of range", idx)
	}

	return f.asm.Strings[idx], nil
}

func (in *Interpreter) stepBranch(f *Frame, cmd asm.Command, at origin.Origin) *origin.RuntimeError {
	condCell, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	cond, err := natives.UnboxBool(at, condCell)
	if err != nil {
		return err
	}

	if (cmd.Op == asm.OpIfTrue && cond) || (cmd.Op == asm.OpIfFalse && !cond) {
		f.ip = int(cmd.A)
	}

	return nil
}

func (in *Interpreter) stepIterate(f *Frame, at origin.Origin) *origin.RuntimeError {
	top := f.top()
	if top.kind != kindRange {
		return origin.NewRuntimeError(origin.TypeMismatch, at, "for loop subject is not a range")
	}

	elem, ok := top.iter.next()
	if !ok {
		boxed, err := natives.BoxBool(at, false)
		if err != nil {
			return err
		}

		f.push(cellValue(boxed))

		return nil
	}

	elemCell, err := felt.BoxInt(at, felt.Int(elem))
	if err != nil {
		return err
	}

	boxed, err := natives.BoxBool(at, true)
	if err != nil {
		return err
	}

	f.push(cellValue(elemCell))
	f.push(cellValue(boxed))

	return nil
}

func (in *Interpreter) stepLift(slots []Value, idx int, f *Frame, at origin.Origin) *origin.RuntimeError {
	if idx < 0 || idx >= len(slots) {
		return origin.NewRuntimeErrorf(origin.UninitRead, at, "read of out-of-range slot %d", idx)
	}

	if slots[idx].isUninitCell() {
		return origin.NewRuntimeError(origin.UninitRead, at, "read of an unbound local")
	}

	v, err := slots[idx].reproject(at)
	if err != nil {
		return err
	}

	f.push(v)

	return nil
}

func (in *Interpreter) stepPushPackage(f *Frame, cmd asm.Command, at origin.Origin) *origin.RuntimeError {
	name, err := in.stringAt(f, cmd.A, at)
	if err != nil {
		return err
	}

	pkg, ok := in.reg.Package(name)
	if !ok {
		return origin.NewRuntimeErrorf(origin.UnknownComponent, at, "no such package %q", name)
	}

	f.push(cellValue(pkg))

	return nil
}

func (in *Interpreter) stepPushClosure(f *Frame, cmd asm.Command, at origin.Origin, withCaptures bool) *origin.RuntimeError {
	idx := int(cmd.A)
	if idx < 0 || idx >= len(f.asm.Subroutines) {
		return origin.NewRuntimeErrorf(origin.TypeMismatch, at, "subroutine index %d out of range", idx)
	}

	var captures []Value
	if withCaptures {
		captures = f.popN(cmd.B)
	}

	f.push(closureValue(&Closure{asm: f.asm.Subroutines[idx], captures: captures}))

	return nil
}

func (in *Interpreter) stepPushCollection(f *Frame, cmd asm.Command, at origin.Origin,
	build func(origin.Origin, []cell.Cell) (cell.Cell, *origin.RuntimeError)) *origin.RuntimeError {
	vals := f.popN(cmd.A)
	cells := make([]cell.Cell, len(vals))

	for i, v := range vals {
		c, err := v.asCell(at)
		if err != nil {
			return err
		}

		cells[i] = c
	}

	result, err := build(at, cells)
	if err != nil {
		return err
	}

	f.push(cellValue(result))

	return nil
}

func (in *Interpreter) stepRange(f *Frame, at origin.Origin) *origin.RuntimeError {
	endCell, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	startCell, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	end, err := felt.UnboxInt(at, endCell)
	if err != nil {
		return err
	}

	start, err := felt.UnboxInt(at, startCell)
	if err != nil {
		return err
	}

	f.push(rangeValue(&rangeIter{cur: int64(start), end: int64(end)}))

	return nil
}

func (in *Interpreter) stepComponent(f *Frame, cmd asm.Command, at origin.Origin) *origin.RuntimeError {
	name, err := in.stringAt(f, cmd.A, at)
	if err != nil {
		return err
	}

	self, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	result, rerr := in.reg.ResolveComponent(name, self, at)
	if rerr != nil {
		return rerr
	}

	f.push(cellValue(result))

	return nil
}

func (in *Interpreter) stepLen(f *Frame, at origin.Origin) *origin.RuntimeError {
	self, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	if self.IsNil() {
		return origin.NewRuntimeError(origin.NilDereference, at, "len() of a nil value")
	}

	id := self.Slice().ElementType().ID

	var n int

	switch id {
	case natives.ArrayTypeID, natives.StructTypeID:
		n = natives.ArrayLen(self)
	case natives.StringTypeID:
		s, serr := natives.UnboxString(at, self)
		if serr != nil {
			return serr
		}

		n = len(s)
	default:
		return origin.NewRuntimeError(origin.UndefinedOperator, at, "type has no length")
	}

	lenCell, lerr := felt.BoxInt(at, felt.Int(n))
	if lerr != nil {
		return lerr
	}

	f.push(cellValue(lenCell))

	return nil
}

func (in *Interpreter) stepOperator(f *Frame, cmd asm.Command, at origin.Origin) *origin.RuntimeError {
	argVals := f.popN(cmd.B)
	self, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	args := make([]cell.Cell, len(argVals))

	for i, v := range argVals {
		c, aerr := v.asCell(at)
		if aerr != nil {
			return aerr
		}

		args[i] = c
	}

	result, rerr := in.reg.Invoke(registry.OperatorKind(cmd.A), self, args, at)
	if rerr != nil {
		return rerr
	}

	f.push(cellValue(result))

	return nil
}

func (in *Interpreter) stepIndex(f *Frame, at origin.Origin) *origin.RuntimeError {
	idxCell, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	base, err := f.pop().asCell(at)
	if err != nil {
		return err
	}

	idx, err := felt.UnboxInt(at, idxCell)
	if err != nil {
		return err
	}

	if base.IsNil() {
		return origin.NewRuntimeError(origin.NilDereference, at, "index into a nil value")
	}

	n := natives.ArrayLen(base)
	if idx < 0 || int64(idx) >= int64(n) {
		return origin.NewRuntimeErrorf(origin.IndexOutOfBounds, at, "index %d out of bounds (length %d)", int64(idx), n)
	}

	elem, eerr := natives.ArrayElem(at, base, uintptr(idx))
	if eerr != nil {
		return eerr
	}

	f.push(cellValue(elem))

	return nil
}
