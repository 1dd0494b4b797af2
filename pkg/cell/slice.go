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
	"runtime"
	"sync"
	"unsafe"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// Deallocator releases the backing memory of an owned MemorySlice.  Called
// at most once, when the slice's refcount reaches zero.
type Deallocator func()

// MemorySlice is a reference-counted, borrow-tracked handle to a contiguous
// region of host memory.
type MemorySlice struct {
	elem ElementType
	// count is the number of elements; cap is the allocated capacity (cap >=
	// count always).
	count, cap uintptr
	// unicode is set only for UTF-8 byte slices that must not be mutated.
	unicode bool
	read    unsafe.Pointer
	write   unsafe.Pointer
	dealloc Deallocator
	creator origin.Origin
	borrows *BorrowTable

	refs   int32
	refsMu sync.Mutex
	dedupKey uintptr
	dedupOK  bool
}

// dedup is the process-global registry of non-owning slices, keyed by base
// address, so that concurrent references to the same host object share one
// BorrowTable.
var dedup = struct {
	sync.Mutex
	table map[uintptr]*MemorySlice
}{table: make(map[uintptr]*MemorySlice)}

func dedupKeyOf(ptr unsafe.Pointer) (uintptr, bool) {
	if ptr == nil {
		return 0, false
	}

	return uintptr(ptr), true
}

// isVoid reports whether this slice should bypass all borrow bookkeeping:
// either it has no elements, or its element type carries no payload.
func (m *MemorySlice) isVoid() bool {
	return m.count == 0 || m.elem.IsZeroSized()
}

// newSlice is the common constructor; a non-nil dealloc marks the slice as
// owned (and thus both pointers must be equal).
func newSlice(at origin.Origin, elem ElementType, read, write unsafe.Pointer, count, cap uintptr, unicode bool, dealloc Deallocator) *MemorySlice {
	m := &MemorySlice{
		elem:    elem,
		count:   count,
		cap:     cap,
		unicode: unicode,
		read:    read,
		write:   write,
		dealloc: dealloc,
		creator: at,
		refs:    1,
	}
	m.borrows = NewBorrowTable(at, m.isVoid())

	if dealloc != nil {
		runtime.SetFinalizer(m, (*MemorySlice).finalize)
		return m
	}

	// Non-owning slice: deduplicate by base address so all references to
	// the same host object share one BorrowTable.
	basePtr := read
	if basePtr == nil {
		basePtr = write
	}

	key, ok := dedupKeyOf(basePtr)
	if !ok || m.isVoid() {
		return m
	}

	dedup.Lock()
	defer dedup.Unlock()

	if existing, found := dedup.table[key]; found {
		existing.addRef()
		return existing
	}

	m.dedupKey = key
	m.dedupOK = true
	dedup.table[key] = m

	return m
}

func (m *MemorySlice) finalize() {
	if m.dealloc != nil {
		m.dealloc()
	}
}

func (m *MemorySlice) addRef() {
	m.refsMu.Lock()
	m.refs++
	m.refsMu.Unlock()
}

// Release decrements the reference count, deallocating (if owned) and
// deregistering (if deduplicated) once it reaches zero. Approximates a
// "drop" in a garbage-collected host language: callers that explicitly
// track a MemorySlice's lifetime (rather than letting the GC collect it via
// the finalizer above) should call Release exactly once per Upcast.
func (m *MemorySlice) Release() {
	m.refsMu.Lock()
	m.refs--
	remaining := m.refs
	m.refsMu.Unlock()

	if remaining > 0 {
		return
	}

	if m.dealloc != nil {
		runtime.SetFinalizer(m, nil)
		m.dealloc()
	}

	if m.dedupOK {
		dedup.Lock()
		delete(dedup.table, m.dedupKey)
		dedup.Unlock()
	}
}

// ElementType returns the element type descriptor of this slice.
func (m *MemorySlice) ElementType() ElementType {
	return m.elem
}

// Len returns the number of elements in this slice.
func (m *MemorySlice) Len() uintptr {
	return m.count
}

// Cap returns the allocated capacity of this slice.
func (m *MemorySlice) Cap() uintptr {
	return m.cap
}

// IsUnicode reports whether this is a UTF-8 byte slice that must not be
// mutated.
func (m *MemorySlice) IsUnicode() bool {
	return m.unicode
}

// IsOwned reports whether this slice has an exclusive lifetime (i.e. it was
// registered with a deallocator).
func (m *MemorySlice) IsOwned() bool {
	return m.dealloc != nil
}

// Creator returns the origin of whichever registration call produced this
// slice.
func (m *MemorySlice) Creator() origin.Origin {
	return m.creator
}

// Grant acquires a borrow-table grant of the given kind.  See BorrowTable.Grant.
func (m *MemorySlice) Grant(kind GrantKind, at origin.Origin) (Grant, *origin.RuntimeError) {
	return m.borrows.Grant(kind, at)
}

// ReleaseGrant releases a previously acquired grant.
func (m *MemorySlice) ReleaseGrant(g Grant) {
	m.borrows.Release(g)
}

// checkInvariants panics if the read/write pointer invariants
// are violated; used defensively by constructors and by tests.
func (m *MemorySlice) checkInvariants() {
	if m.read != nil && m.write != nil && m.read != m.write {
		panic("cell: read and write pointers must coincide when both present")
	}

	if m.unicode && m.write != nil {
		panic("cell: unicode slices must not carry a write pointer")
	}

	if m.dealloc != nil && (m.read != m.write) {
		panic("cell: owned slices must have equal read/write pointers")
	}
}
