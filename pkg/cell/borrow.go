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
	"sync/atomic"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// GrantKind identifies which of the four bookkeeping sets a grant belongs
// to.
type GrantKind uint8

const (
	// ValueRef grants shared read access through the value.
	ValueRef GrantKind = iota
	// ValueMut grants exclusive write access through the value; at most one
	// may be outstanding at a time.
	ValueMut
	// PlaceRef grants a stable address for reading.
	PlaceRef
	// PlaceMut grants a stable address for writing.
	PlaceMut
)

func (k GrantKind) isWriter() bool {
	return k == ValueMut || k == PlaceMut
}

// BorrowGrantLimit bounds the number of outstanding grants on a single
// slice, to prevent runaway recursion from exhausting memory on bookkeeping
// alone.
const BorrowGrantLimit = 64

// Grant is an opaque handle over one outstanding access permission.  It must
// be released exactly once, on every control-flow path, via
// BorrowTable.Release.
type Grant struct {
	kind  GrantKind
	index uint64
}

// grantEntry is one bookkeeping record within a BorrowTable.  Entries form
// an intrusive doubly-linked free list per kind: next/prev link live
// entries of that kind together (in LIFO insertion order, for "last
// holder" diagnostics), while a free entry's next field points at the next
// free slot.
type grantEntry struct {
	origin origin.Origin
	kind   GrantKind
	prev   int
	next   int
	live   bool
}

const sentinel = -1

// BorrowTable tracks outstanding grants for exactly one MemorySlice.  All
// mutation goes through a lightweight spinlock: grants are cheap and
// contention is rare, so a full mutex would be overkill and a spinlock keeps
// the common case allocation-free.
type BorrowTable struct {
	lock atomic.Bool
	// entries is a flat arena shared by all four kinds; free slots are
	// threaded through entries[i].next starting at freeHead.
	entries  []grantEntry
	freeHead int
	// head/tail of the live list for each kind, for LIFO "last holder"
	// reporting. Index -1 (sentinel) means empty.
	headOf [4]int
	tailOf [4]int
	count  int
	// creationOrigin is blamed for grants against a void (zero-sized or
	// empty) slice, which skips bookkeeping entirely.
	creationOrigin origin.Origin
	void           bool
}

// NewBorrowTable constructs an empty borrow table.  If void is true (the
// owning slice is empty or its element type is zero-sized) all grant
// operations succeed unconditionally.
func NewBorrowTable(creation origin.Origin, void bool) *BorrowTable {
	return &BorrowTable{
		freeHead:       sentinel,
		headOf:         [4]int{sentinel, sentinel, sentinel, sentinel},
		tailOf:         [4]int{sentinel, sentinel, sentinel, sentinel},
		creationOrigin: creation,
		void:           void,
	}
}

func (t *BorrowTable) acquire() {
	for !t.lock.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (t *BorrowTable) release() {
	t.lock.Store(false)
}

// activeWriter returns the live entry index of the single outstanding writer
// (ValueMut or PlaceMut), or sentinel if none.
func (t *BorrowTable) activeWriter() int {
	if t.headOf[ValueMut] != sentinel {
		return t.headOf[ValueMut]
	}

	return t.headOf[PlaceMut]
}

func (t *BorrowTable) hasReaders() bool {
	return t.headOf[ValueRef] != sentinel || t.headOf[PlaceRef] != sentinel
}

// Grant attempts to acquire a grant of the given kind at the given origin.
// On conflict it returns a typed *origin.RuntimeError naming the origin of
// the conflicting holder.
func (t *BorrowTable) Grant(kind GrantKind, at origin.Origin) (Grant, *origin.RuntimeError) {
	if t.void {
		return Grant{kind: kind, index: 0}, nil
	}

	t.acquire()
	defer t.release()

	if kind.isWriter() {
		if w := t.activeWriter(); w != sentinel {
			return Grant{}, origin.NewBorrowConflict(origin.WriteToWrite, at, t.entries[w].origin)
		}

		if t.hasReaders() {
			var holder origin.Origin
			if t.tailOf[ValueRef] != sentinel {
				holder = t.entries[t.tailOf[ValueRef]].origin
			} else {
				holder = t.entries[t.tailOf[PlaceRef]].origin
			}

			return Grant{}, origin.NewBorrowConflict(origin.ReadToWrite, at, holder)
		}
	} else if w := t.activeWriter(); w != sentinel {
		return Grant{}, origin.NewBorrowConflict(origin.WriteToRead, at, t.entries[w].origin)
	}

	if t.count >= BorrowGrantLimit {
		return Grant{}, origin.NewRuntimeError(origin.BorrowLimit, at, "grant count limit exceeded")
	}

	idx := t.allocEntry(kind, at)

	return Grant{kind: kind, index: uint64(idx)}, nil
}

// Release consumes a Grant, removing its bookkeeping entry.  Releasing a
// grant twice, or a grant from another table, is a programming error and
// panics (mirrors the "void" Grant(0) used for void slices, which Release
// treats as a no-op).
func (t *BorrowTable) Release(g Grant) {
	if t.void {
		return
	}

	t.acquire()
	defer t.release()

	idx := int(g.index)
	if idx < 0 || idx >= len(t.entries) || !t.entries[idx].live {
		panic("cell: grant released twice or from the wrong table")
	}

	t.unlink(idx)
	t.entries[idx] = grantEntry{next: t.freeHead}
	t.freeHead = idx
	t.count--
}

func (t *BorrowTable) allocEntry(kind GrantKind, at origin.Origin) int {
	var idx int

	if t.freeHead != sentinel {
		idx = t.freeHead
		t.freeHead = t.entries[idx].next
		t.entries[idx] = grantEntry{}
	} else {
		idx = len(t.entries)
		t.entries = append(t.entries, grantEntry{})
	}

	t.entries[idx] = grantEntry{origin: at, kind: kind, prev: t.tailOf[kind], next: sentinel, live: true}

	if t.tailOf[kind] == sentinel {
		t.headOf[kind] = idx
	} else {
		t.entries[t.tailOf[kind]].next = idx
	}

	t.tailOf[kind] = idx
	t.count++

	return idx
}

func (t *BorrowTable) unlink(idx int) {
	e := t.entries[idx]

	if e.prev == sentinel {
		t.headOf[e.kind] = e.next
	} else {
		t.entries[e.prev].next = e.next
	}

	if e.next == sentinel {
		t.tailOf[e.kind] = e.prev
	} else {
		t.entries[e.next].prev = e.prev
	}
}

// CreationOrigin returns the origin blamed for void-slice grants.
func (t *BorrowTable) CreationOrigin() origin.Origin {
	return t.creationOrigin
}

// OutstandingCount returns the number of live grants, for diagnostics and
// tests.
func (t *BorrowTable) OutstandingCount() int {
	t.acquire()
	defer t.release()

	return t.count
}
