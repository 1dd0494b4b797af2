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

// Package cell implements the value/memory model of Ad Astra: a
// reference-counted, borrow-tracked handle (Cell) over a contiguous region
// of host memory (MemorySlice), plus the runtime borrow checker that
// arbitrates concurrent aliasing of that memory.
//
// This package sits below the type/prototype registry in the dependency
// order: it knows only the byte size and identity of an element type, never
// its operator table.  The registry package builds its richer TypeMeta on
// top of the ElementType defined here.
package cell

// TypeID uniquely identifies a registered host type.  It is opaque outside
// this package tree; the registry package is the only allocator of TypeIDs.
type TypeID uint64

// ElementType is the minimal type descriptor a MemorySlice needs: enough to
// know how many bytes one element occupies and to report a name in error
// messages.  The registry package's TypeMeta embeds this and adds
// documentation, family membership and a Prototype.
type ElementType struct {
	ID   TypeID
	Name string
	// Size is the byte size of one element, as reported by the host at
	// registration time.  Zero-sized types skip borrow bookkeeping
	// entirely (see BorrowTable).
	Size uintptr
}

// IsZeroSized reports whether this element type carries no payload: such
// slices bypass grant bookkeeping entirely.
func (t ElementType) IsZeroSized() bool {
	return t.Size == 0
}
