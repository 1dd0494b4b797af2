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
package cell

import (
	"unsafe"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// Range is a sub-range of a MemorySlice's elements, used when a Cell
// projects onto an array/string slice rather than the whole underlying
// slice.
type Range struct {
	Start, End uintptr
}

// Len returns the number of elements covered by this range.
func (r Range) Len() uintptr {
	return r.End - r.Start
}

// Cell is the universal script value: either nil, or an ownership+access
// capability over a MemorySlice.  Cloning, comparison and
// ordering of non-nil Cells are dispatched through the type/prototype
// registry's operator table, not implemented here — this package only
// knows how to construct, project and release a Cell.
type Cell struct {
	slice      *MemorySlice
	grant      Grant
	projection Range
	hasGrant   bool
	nilValue   bool
}

// Nil is the nil Cell.
var Nil = Cell{nilValue: true}

// IsNil reports whether this Cell holds no value.
func (c Cell) IsNil() bool {
	return c.nilValue
}

// NewCell wraps a MemorySlice, a grant already acquired over it, and a
// projection range, into a Cell.  The grant is owned by the Cell from this
// point on: releasing it is the Cell owner's responsibility (typically the
// VM frame that produced it, on scope exit or via an explicit release
// operator).
func NewCell(slice *MemorySlice, grant Grant, projection Range) Cell {
	return Cell{slice: slice, grant: grant, projection: projection, hasGrant: true}
}

// Slice returns the underlying MemorySlice, or nil if this is the nil Cell.
func (c Cell) Slice() *MemorySlice {
	return c.slice
}

// Projection returns the element range within Slice() that this Cell
// addresses.
func (c Cell) Projection() Range {
	return c.projection
}

// Release releases this Cell's grant over its MemorySlice, if any.  Safe to
// call on the nil Cell.
func (c Cell) Release() {
	if c.nilValue || !c.hasGrant {
		return
	}

	c.slice.ReleaseGrant(c.grant)
}

// Upcast constructs a Cell from a host value, boxing it as an owned,
// one-element MemorySlice and granting a ValueMut over it (the Cell
// exclusively owns the box it just created).
func Upcast[T any](at origin.Origin, elem ElementType, value T) (Cell, *origin.RuntimeError) {
	slice := RegisterValue(at, elem, value)

	g, err := slice.Grant(ValueMut, at)
	if err != nil {
		return Nil, err
	}

	return NewCell(slice, g, Range{0, 1}), nil
}

// Downcast consumes a Cell, returning the host value it wraps.  Returns a
// TypeMismatch error if the Cell's element type does not match T's expected
// size, or if the Cell is nil. Element types registered with Size 0 are not
// size-checked.
func Downcast[T any](at origin.Origin, c Cell) (T, *origin.RuntimeError) {
	var zero T

	if c.IsNil() {
		return zero, origin.NewRuntimeError(origin.TypeMismatch, at, "cannot downcast nil cell")
	}

	if size := c.slice.elem.Size; size != 0 && size != unsafe.Sizeof(zero) {
		return zero, origin.NewRuntimeErrorf(origin.TypeMismatch, at,
			"cannot downcast %s cell (%d-byte elements) to a %d-byte value", c.slice.elem.Name, size, unsafe.Sizeof(zero))
	}

	values := AsSliceRef[T](c.slice)
	if values == nil || c.projection.Start >= uintptr(len(values)) {
		return zero, origin.NewRuntimeError(origin.TypeMismatch, at, "downcast type/range mismatch")
	}

	return values[c.projection.Start], nil
}

// Project narrows this Cell onto a sub-range of its current projection,
// acquiring a fresh grant of the given kind over the underlying slice (the
// caller releases the original Cell's grant separately if appropriate).
func (c Cell) Project(at origin.Origin, kind GrantKind, start, end uintptr) (Cell, *origin.RuntimeError) {
	if c.IsNil() {
		return Nil, origin.NewRuntimeError(origin.IndexOutOfBounds, at, "cannot project nil cell")
	}

	lo, hi := c.projection.Start+start, c.projection.Start+end
	if hi > c.projection.End {
		return Nil, origin.NewRuntimeError(origin.IndexOutOfBounds, at, "projection out of bounds")
	}

	g, err := c.slice.Grant(kind, at)
	if err != nil {
		return Nil, err
	}

	return NewCell(c.slice, g, Range{lo, hi}), nil
}
