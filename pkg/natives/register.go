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

// Package natives registers the host types pkg/felt doesn't cover: Bool,
// String, Array and Struct, the remaining literal/collection shapes the grammar
// produces. It follows the exact boxing idiom pkg/felt establishes — one
// registry.DeclarationGroup, built once at process start and folded into
// the registry alongside felt's.
package natives

import (
	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/registry"
)

// Type ids for the four collection/scalar natives this package declares.
var (
	BoolTypeID   = registry.NewTypeID("adastra::Bool")
	StringTypeID = registry.NewTypeID("adastra::String")
	ArrayTypeID  = registry.NewTypeID("adastra::Array")
	StructTypeID = registry.NewTypeID("adastra::Struct")
)

var (
	boolElem   = cell.ElementType{ID: BoolTypeID, Name: "Bool", Size: 1}
	stringElem = cell.ElementType{ID: StringTypeID, Name: "String", Size: 16}
	// arrayElemType describes one slot of an Array's backing slice: every
	// slot holds a whole cell.Cell, so indexing an Array is a Downcast of
	// the projected slot rather than a registry component dispatch.
	arrayElemType = cell.ElementType{ID: ArrayTypeID, Name: "Array", Size: 0}
	// structElemType is laid out identically to arrayElemType: a struct
	// literal's entry values, in declaration order. Field names aren't
	// carried at runtime — the compiler resolves `.field` to a fixed
	// positional index at compile time, using the analyzer's static entry
	// list, and lowers it to the same positional projection an array index
	// uses.
	structElemType = cell.ElementType{ID: StructTypeID, Name: "Struct", Size: 0}
)

func boxBool(at origin.Origin, v bool) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, boolElem, v)
}

// UnboxBool downcasts a Bool cell to its Go value, for VM conditional
// dispatch (IfTrue/IfFalse) that needs the value outside any operator slot.
func UnboxBool(at origin.Origin, c cell.Cell) (bool, *origin.RuntimeError) {
	return cell.Downcast[bool](at, c)
}

// BoxBool exposes boxBool to the VM/compiler (PushTrue/PushFalse).
func BoxBool(at origin.Origin, v bool) (cell.Cell, *origin.RuntimeError) {
	return boxBool(at, v)
}

func boxString(at origin.Origin, v string) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, stringElem, v)
}

// BoxString exposes boxString to the VM/compiler (PushString).
func BoxString(at origin.Origin, v string) (cell.Cell, *origin.RuntimeError) {
	return boxString(at, v)
}

// UnboxString downcasts a String cell to its Go value.
func UnboxString(at origin.Origin, c cell.Cell) (string, *origin.RuntimeError) {
	return cell.Downcast[string](at, c)
}

// NewArray boxes a slice of already-constructed element Cells as one Array
// Cell: RegisterVec over []cell.Cell, so each element keeps its own
// borrow-tracked identity and Index narrows to it with cell.Cell.Project
// rather than any operator dispatch.
func NewArray(at origin.Origin, elems []cell.Cell) (cell.Cell, *origin.RuntimeError) {
	slice := cell.RegisterVec(at, arrayElemType, elems)

	g, err := slice.Grant(cell.ValueMut, at)
	if err != nil {
		return cell.Nil, err
	}

	return cell.NewCell(slice, g, cell.Range{Start: 0, End: uintptr(len(elems))}), nil
}

// ArrayElem narrows an Array cell onto the element at index i and returns
// the cell.Cell stored there.
func ArrayElem(at origin.Origin, arr cell.Cell, i uintptr) (cell.Cell, *origin.RuntimeError) {
	projected, err := arr.Project(at, cell.ValueRef, i, i+1)
	if err != nil {
		return cell.Nil, err
	}

	return cell.Downcast[cell.Cell](at, projected)
}

// ArrayLen returns an Array cell's element count.
func ArrayLen(arr cell.Cell) int {
	return int(arr.Projection().Len())
}

// NewStruct boxes a slice of already-constructed entry-value Cells, in
// declaration order, as one Struct Cell.
func NewStruct(at origin.Origin, values []cell.Cell) (cell.Cell, *origin.RuntimeError) {
	slice := cell.RegisterVec(at, structElemType, values)

	g, err := slice.Grant(cell.ValueMut, at)
	if err != nil {
		return cell.Nil, err
	}

	return cell.NewCell(slice, g, cell.Range{Start: 0, End: uintptr(len(values))}), nil
}

// StructEntry narrows a Struct cell onto the entry at position i, the same
// way ArrayElem narrows an Array: the compiler resolves a `.field`
// expression to i statically, from the analyzer's recorded entry order.
func StructEntry(at origin.Origin, s cell.Cell, i uintptr) (cell.Cell, *origin.RuntimeError) {
	return ArrayElem(at, s, i)
}

func binaryBool(fn func(x, y bool) bool) registry.InvokeFunc {
	return func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := UnboxBool(at, self)
		if err != nil {
			return cell.Nil, err
		}

		y, err := UnboxBool(at, args[0])
		if err != nil {
			return cell.Nil, err
		}

		return boxBool(at, fn(x, y))
	}
}

func unaryBool(fn func(x bool) bool) registry.InvokeFunc {
	return func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
		x, err := UnboxBool(at, self)
		if err != nil {
			return cell.Nil, err
		}

		return boxBool(at, fn(x))
	}
}

func concatString(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := UnboxString(at, self)
	if err != nil {
		return cell.Nil, err
	}

	y, err := UnboxString(at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	return boxString(at, x+y)
}

func cloneBool(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := UnboxBool(at, self)
	if err != nil {
		return cell.Nil, err
	}

	return boxBool(at, x)
}

func cloneString(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := UnboxString(at, self)
	if err != nil {
		return cell.Nil, err
	}

	return boxString(at, x)
}

// cloneCells re-reads every element Cell out of an Array/Struct slice
// without consuming the original's grant, for OpClone: the clone owns an
// independent Array/Struct value, but its element Cells still alias the
// same underlying host memory as the original (cloning narrows one level,
// matching the borrow model's "clone is shallow" invariant).
func cloneCells(self cell.Cell, at origin.Origin, elemType cell.ElementType) (cell.Cell, *origin.RuntimeError) {
	n := ArrayLen(self)
	elems := make([]cell.Cell, n)

	for i := 0; i < n; i++ {
		e, err := ArrayElem(at, self, uintptr(i))
		if err != nil {
			return cell.Nil, err
		}

		elems[i] = e
	}

	slice := cell.RegisterVec(at, elemType, elems)

	g, err := slice.Grant(cell.ValueMut, at)
	if err != nil {
		return cell.Nil, err
	}

	return cell.NewCell(slice, g, cell.Range{Start: 0, End: uintptr(n)}), nil
}

func eqString(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	x, err := UnboxString(at, self)
	if err != nil {
		return cell.Nil, err
	}

	y, err := UnboxString(at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	return boxBool(at, x == y)
}

// Declarations returns the registry.DeclarationGroup for Bool, String,
// Array and Struct plus their operators.
func Declarations(at origin.Origin) registry.DeclarationGroup {
	dynamicHint := registry.TypeHint{Dynamic: true}

	return registry.DeclarationGroup{
		Origin: at,
		Types: []registry.TypeDecl{
			{ID: BoolTypeID, Name: "Bool", Doc: "native boolean", Size: 1},
			{ID: StringTypeID, Name: "String", Doc: "native UTF-8 string", Size: 16},
			{ID: ArrayTypeID, Name: "Array", Doc: "native ordered collection of cells", Size: 0},
			{ID: StructTypeID, Name: "Struct", Doc: "native script-declared record", Size: 0},
		},
		Operators: []registry.OperatorDecl{
			{ReceiverID: BoolTypeID, Kind: registry.OpAnd, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: binaryBool(func(x, y bool) bool { return x && y }),
			}},
			{ReceiverID: BoolTypeID, Kind: registry.OpOr, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: binaryBool(func(x, y bool) bool { return x || y }),
			}},
			{ReceiverID: BoolTypeID, Kind: registry.OpNot, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: unaryBool(func(x bool) bool { return !x }),
			}},
			{ReceiverID: BoolTypeID, Kind: registry.OpPartialEq, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: binaryBool(func(x, y bool) bool { return x == y }),
			}},
			{ReceiverID: StringTypeID, Kind: registry.OpConcat, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: concatString,
			}},
			{ReceiverID: StringTypeID, Kind: registry.OpAdd, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: concatString,
			}},
			{ReceiverID: StringTypeID, Kind: registry.OpPartialEq, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: eqString,
			}},
			{ReceiverID: BoolTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: cloneBool,
			}},
			{ReceiverID: StringTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: cloneString,
			}},
			{ReceiverID: ArrayTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
					return cloneCells(self, at, arrayElemType)
				},
			}},
			{ReceiverID: StructTypeID, Kind: registry.OpClone, Slot: &registry.OperatorSlot{
				Origin: at, RHSHint: dynamicHint, Invoke: func(self cell.Cell, _ []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
					return cloneCells(self, at, structElemType)
				},
			}},
		},
	}
}
