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

// RegisterValue boxes a single host value as an owned, one-element slice.
func RegisterValue[T any](at origin.Origin, elem ElementType, value T) *MemorySlice {
	box := new(T)
	*box = value
	ptr := unsafe.Pointer(box)

	s := newSlice(at, elem, ptr, ptr, 1, 1, false, func() {})
	s.checkInvariants()

	return s
}

// RegisterVec boxes a host slice as an owned slice of count == cap ==
// len(values).
func RegisterVec[T any](at origin.Origin, elem ElementType, values []T) *MemorySlice {
	backing := make([]T, len(values))
	copy(backing, values)

	var ptr unsafe.Pointer
	if len(backing) > 0 {
		ptr = unsafe.Pointer(&backing[0])
	}

	s := newSlice(at, elem, ptr, ptr, uintptr(len(backing)), uintptr(cap(backing)), false, func() {})
	s.checkInvariants()

	return s
}

// RegisterString boxes a host string as an owned, unicode-flagged byte
// slice. Unicode slices carry no write pointer.
func RegisterString(at origin.Origin, byteElem ElementType, s string) *MemorySlice {
	backing := []byte(s)

	var ptr unsafe.Pointer
	if len(backing) > 0 {
		ptr = unsafe.Pointer(&backing[0])
	}

	slice := newSlice(at, byteElem, ptr, nil, uintptr(len(backing)), uintptr(len(backing)), true, func() {})
	slice.checkInvariants()

	return slice
}

// RegisterRef registers a non-owning, read-only view over a single host
// value.  Participates in global address deduplication.
func RegisterRef[T any](at origin.Origin, elem ElementType, value *T) *MemorySlice {
	ptr := unsafe.Pointer(value)
	s := newSlice(at, elem, ptr, nil, 1, 1, false, nil)
	s.checkInvariants()

	return s
}

// RegisterMut registers a non-owning, read-write view over a single host
// value.
func RegisterMut[T any](at origin.Origin, elem ElementType, value *T) *MemorySlice {
	ptr := unsafe.Pointer(value)
	s := newSlice(at, elem, ptr, ptr, 1, 1, false, nil)
	s.checkInvariants()

	return s
}

// RegisterSliceRef registers a non-owning, read-only view over a host
// slice's backing array.
func RegisterSliceRef[T any](at origin.Origin, elem ElementType, values []T) *MemorySlice {
	var ptr unsafe.Pointer
	if len(values) > 0 {
		ptr = unsafe.Pointer(&values[0])
	}

	s := newSlice(at, elem, ptr, nil, uintptr(len(values)), uintptr(cap(values)), false, nil)
	s.checkInvariants()

	return s
}

// RegisterSliceMut registers a non-owning, read-write view over a host
// slice's backing array.
func RegisterSliceMut[T any](at origin.Origin, elem ElementType, values []T) *MemorySlice {
	var ptr unsafe.Pointer
	if len(values) > 0 {
		ptr = unsafe.Pointer(&values[0])
	}

	s := newSlice(at, elem, ptr, ptr, uintptr(len(values)), uintptr(cap(values)), false, nil)
	s.checkInvariants()

	return s
}

// Subslice constructs a non-owning slice projecting [start,end) of this
// slice, inheriting exactly the access this slice was granted.
func (m *MemorySlice) Subslice(at origin.Origin, start, end uintptr) (*MemorySlice, *origin.RuntimeError) {
	if start > end || end > m.count {
		return nil, origin.NewRuntimeError(origin.IndexOutOfBounds, at, "subslice range out of bounds")
	}

	offset := start * m.elem.Size

	var read, write unsafe.Pointer
	if m.read != nil {
		read = unsafe.Add(m.read, offset)
	}

	if m.write != nil {
		write = unsafe.Add(m.write, offset)
	}

	s := newSlice(at, m.elem, read, write, end-start, end-start, m.unicode, nil)

	return s, nil
}

// AsSliceRef returns a typed read view.  Callers must already hold a
// ValueRef/PlaceRef (or equivalent) grant; this is not re-checked here.
func AsSliceRef[T any](m *MemorySlice) []T {
	if m.read == nil || m.count == 0 {
		return nil
	}

	return unsafe.Slice((*T)(m.read), int(m.count))
}

// AsSliceMut returns a typed read-write view.
func AsSliceMut[T any](m *MemorySlice) []T {
	if m.write == nil || m.count == 0 {
		return nil
	}

	return unsafe.Slice((*T)(m.write), int(m.count))
}

// AsPtrRef returns a typed read pointer to the first element.
func AsPtrRef[T any](m *MemorySlice) *T {
	if m.read == nil {
		return nil
	}

	return (*T)(m.read)
}

// AsPtrMut returns a typed write pointer to the first element.
func AsPtrMut[T any](m *MemorySlice) *T {
	if m.write == nil {
		return nil
	}

	return (*T)(m.write)
}
