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
package felt

import (
	"math"

	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
)

// Type ids for the three native numeric types, stable across a process's
// lifetime.
var (
	IntTypeID   = registry.NewTypeID("adastra::Int")
	FloatTypeID = registry.NewTypeID("adastra::Float")
	FeltTypeID  = registry.NewTypeID("adastra::Felt")
)

// NumberFamily names the type family all three numeric types share, so
// that an operand hinted at "any number" accepts any of them.
const NumberFamily = "number"

var (
	intElem   = cell.ElementType{ID: IntTypeID, Name: "Int", Size: 8}
	floatElem = cell.ElementType{ID: FloatTypeID, Name: "Float", Size: 8}
	feltElem  = cell.ElementType{ID: FeltTypeID, Name: "Felt", Size: 32}
)

func boxInt(at origin.Origin, v Int) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, intElem, v)
}

func unboxInt(at origin.Origin, c cell.Cell) (Int, *origin.RuntimeError) {
	return cell.Downcast[Int](at, c)
}

func boxFloat(at origin.Origin, v Float) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, floatElem, v)
}

func unboxFloat(at origin.Origin, c cell.Cell) (Float, *origin.RuntimeError) {
	return cell.Downcast[Float](at, c)
}

func boxFelt(at origin.Origin, v Felt) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, feltElem, v)
}

func unboxFelt(at origin.Origin, c cell.Cell) (Felt, *origin.RuntimeError) {
	return cell.Downcast[Felt](at, c)
}

// BoxInt exposes boxInt to the VM/compiler (PushUsize/PushIsize).
func BoxInt(at origin.Origin, v Int) (cell.Cell, *origin.RuntimeError) { return boxInt(at, v) }

// UnboxInt downcasts an Int cell to its Go value, for the VM's Range and
// Index instructions that need the value outside any operator slot.
func UnboxInt(at origin.Origin, c cell.Cell) (Int, *origin.RuntimeError) { return unboxInt(at, c) }

// BoxFloat exposes boxFloat to the VM/compiler (PushFloat).
func BoxFloat(at origin.Origin, v Float) (cell.Cell, *origin.RuntimeError) { return boxFloat(at, v) }

// UnboxFloat downcasts a Float cell to its Go value.
func UnboxFloat(at origin.Origin, c cell.Cell) (Float, *origin.RuntimeError) { return unboxFloat(at, c) }

// BoxFelt exposes boxFelt to the VM.
func BoxFelt(at origin.Origin, v Felt) (cell.Cell, *origin.RuntimeError) { return boxFelt(at, v) }

// UnboxFelt downcasts a Felt cell to its Go value.
func UnboxFelt(at origin.Origin, c cell.Cell) (Felt, *origin.RuntimeError) { return unboxFelt(at, c) }

// IsIntType reports whether a cell's registered element type is Int. The VM's
// Range instruction does not call it; it unboxes both bounds with UnboxInt.
func IsIntType(id cell.TypeID) bool { return id == IntTypeID }

func binaryInt(fn func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError)) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxInt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxInt(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		result, err := fn(x, y, at)
		if err != nil {
			return cell.Nil, err
		}

		return boxInt(at, result)
	}
}

func binaryFloat(fn func(x, y Float) Float) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFloat(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxFloat(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		return boxFloat(at, fn(x, y))
	}
}

func binaryFloatErr(fn func(x, y Float, at origin.Origin) (Float, *origin.RuntimeError)) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFloat(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxFloat(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		result, err := fn(x, y, at)
		if err != nil {
			return cell.Nil, err
		}

		return boxFloat(at, result)
	}
}

func binaryFeltErr(fn func(x, y Felt, at origin.Origin) (Felt, *origin.RuntimeError)) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFelt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxFelt(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		result, err := fn(x, y, at)
		if err != nil {
			return cell.Nil, err
		}

		return boxFelt(at, result)
	}
}

func unaryInt(fn func(x Int, at origin.Origin) (Int, *origin.RuntimeError)) registry.InvokeFunc {
	return func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxInt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		result, err := fn(x, at)
		if err != nil {
			return cell.Nil, err
		}

		return boxInt(at, result)
	}
}

func unaryFloat(fn func(x Float) Float) registry.InvokeFunc {
	return func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFloat(at, self)
		if err != nil {
			return cell.Nil, err
		}

		return boxFloat(at, fn(x))
	}
}

func unaryFelt(fn func(x Felt) Felt) registry.InvokeFunc {
	return func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFelt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		return boxFelt(at, fn(x))
	}
}

func compareInt(fn func(cmp int) bool) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxInt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxInt(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		return natives.BoxBool(at, fn(x.Cmp(y)))
	}
}

func compareFloat(fn func(cmp int) bool) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFloat(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxFloat(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
			return natives.BoxBool(at, false)
		}

		return natives.BoxBool(at, fn(x.Cmp(y)))
	}
}

func eqInt(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := unboxInt(at, self)
	if err != nil {
		return cell.Nil, err
	}

	y, err := unboxInt(at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	return natives.BoxBool(at, x.Cmp(y) == 0)
}

func eqFloat(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := unboxFloat(at, self)
	if err != nil {
		return cell.Nil, err
	}

	y, err := unboxFloat(at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
		return natives.BoxBool(at, false)
	}

	return natives.BoxBool(at, x.Cmp(y) == 0)
}

func eqFelt(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := unboxFelt(at, self)
	if err != nil {
		return cell.Nil, err
	}

	y, err := unboxFelt(at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	return natives.BoxBool(at, x.Equals(y))
}

func binaryFelt(fn func(x, y Felt) Felt) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := unboxFelt(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := unboxFelt(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		return boxFelt(at, fn(x, y))
	}
}

// Declarations returns the registry.DeclarationGroup for the three native
// numeric types, their shared "number" family, and the arithmetic/ordering
// operators each supports.  Passed to registry.Declare as part of the
// built-in group assembled at process start.
func Declarations(at origin.Origin) registry.DeclarationGroup {
	numberHint := registry.TypeHint{Dynamic: true}

	return registry.DeclarationGroup{
		Origin: at,
		Types: []registry.TypeDecl{
			{ID: IntTypeID, Name: "Int", Doc: "native signed 64-bit integer", FamilyName: NumberFamily, Size: 8},
			{ID: FloatTypeID, Name: "Float", Doc: "native IEEE-754 double", FamilyName: NumberFamily, Size: 8},
			{ID: FeltTypeID, Name: "Felt", Doc: "BLS12-377 scalar field element", FamilyName: NumberFamily, Size: 32},
		},
		Operators: []registry.OperatorDecl{
			{ReceiverID: IntTypeID, Kind: registry.OpAdd, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryInt(func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Add(y, at) }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpSub, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryInt(func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Sub(y, at) }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpMul, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryInt(func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Mul(y, at) }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpDiv, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryInt(func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Div(y, at) }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpRem, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryInt(func(x, y Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Rem(y, at) }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpAdd, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFloat(func(x, y Float) Float { return x.Add(y) }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpSub, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFloat(func(x, y Float) Float { return x.Sub(y) }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpMul, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFloat(func(x, y Float) Float { return x.Mul(y) }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpAdd, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFelt(func(x, y Felt) Felt { return x.Add(y) }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpSub, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFelt(func(x, y Felt) Felt { return x.Sub(y) }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpMul, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFelt(func(x, y Felt) Felt { return x.Mul(y) }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpDiv, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFloatErr(func(x, y Float, at origin.Origin) (Float, *origin.RuntimeError) { return x.Div(y, at) }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpDiv, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: binaryFeltErr(func(x, y Felt, at origin.Origin) (Felt, *origin.RuntimeError) { return x.Div(y, at) }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpPartialEq, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: eqInt,
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpLt, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareInt(func(c int) bool { return c < 0 }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpLe, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareInt(func(c int) bool { return c <= 0 }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpGt, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareInt(func(c int) bool { return c > 0 }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpGe, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareInt(func(c int) bool { return c >= 0 }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpPartialEq, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: eqFloat,
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpLt, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareFloat(func(c int) bool { return c < 0 }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpLe, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareFloat(func(c int) bool { return c <= 0 }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpGt, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareFloat(func(c int) bool { return c > 0 }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpGe, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: compareFloat(func(c int) bool { return c >= 0 }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpPartialEq, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: eqFelt,
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpNeg, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: unaryInt(func(x Int, at origin.Origin) (Int, *origin.RuntimeError) { return x.Neg(at) }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpNeg, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: unaryFloat(func(x Float) Float { return x.Neg() }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpNeg, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint,
				Invoke: unaryFelt(func(x Felt) Felt { return x.Neg() }),
			}},
			{ReceiverID: IntTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: unaryInt(func(x Int, _ origin.Origin) (Int, *origin.RuntimeError) { return x, nil }),
			}},
			{ReceiverID: FloatTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: unaryFloat(func(x Float) Float { return x }),
			}},
			{ReceiverID: FeltTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: numberHint, Invoke: unaryFelt(func(x Felt) Felt { return x }),
			}},
		},
	}
}
