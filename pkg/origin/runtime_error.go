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
package origin

import "fmt"

// ErrorKind enumerates the runtime error taxonomy. Every kind carries at
// least the Origin at which it was raised.
type ErrorKind uint8

const (
	// ReadToWrite: an active read blocks a requested write.
	ReadToWrite ErrorKind = iota
	// WriteToRead: an active write blocks a requested read.
	WriteToRead
	// WriteToWrite: two exclusive writers requested on the same slice.
	WriteToWrite
	// BorrowLimit: a slice's grant count exceeded BorrowGrantLimit.
	BorrowLimit
	// TypeMismatch: a downcast found a different concrete type than requested.
	TypeMismatch
	// UninitRead: the VM read an uninitialized slot.
	UninitRead
	// ArityMismatch: a call target expects N arguments, got M.
	ArityMismatch
	// UndefinedOperator: the LHS prototype lacks the required operator slot.
	UndefinedOperator
	// DivisionByZero: a numeric divide or modulo by zero.
	DivisionByZero
	// Overflow: a numeric operation over/underflowed its representation.
	Overflow
	// IndexOutOfBounds: an index operand fell outside the slice range.
	IndexOutOfBounds
	// UnknownComponent: a field/component lookup missed.
	UnknownComponent
	// Interrupted: cooperative cancellation via the runtime hook.
	Interrupted
	// NilDereference: an operation was attempted on the nil cell.
	NilDereference
	// UnknownType: a cell's element type id has no registry entry.
	UnknownType
	// Custom: a host operator implementation surfaced its own message.
	Custom
)

// String gives the taxonomy's canonical name, used in error messages and
// diagnostic rendering.
func (k ErrorKind) String() string {
	switch k {
	case ReadToWrite:
		return "ReadToWrite"
	case WriteToRead:
		return "WriteToRead"
	case WriteToWrite:
		return "WriteToWrite"
	case BorrowLimit:
		return "BorrowLimit"
	case TypeMismatch:
		return "TypeMismatch"
	case UninitRead:
		return "UninitRead"
	case ArityMismatch:
		return "ArityMismatch"
	case UndefinedOperator:
		return "UndefinedOperator"
	case DivisionByZero:
		return "DivisionByZero"
	case Overflow:
		return "Overflow"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case UnknownComponent:
		return "UnknownComponent"
	case Interrupted:
		return "Interrupted"
	case NilDereference:
		return "NilDereference"
	case UnknownType:
		return "UnknownType"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// RuntimeError is the unified error type returned by the cell/borrow layer
// and the VM.  It always carries the Origin of the operand that produced it;
// borrow conflicts additionally carry the Origin of the conflicting holder.
type RuntimeError struct {
	Kind ErrorKind
	// AccessOrigin is where the failing operation was attempted.
	AccessOrigin Origin
	// ConflictOrigin is, for borrow conflicts, the origin of the holder that
	// blocked this access.  Nil for all other kinds.
	ConflictOrigin Origin
	// Message carries additional context; for Custom errors it is the whole
	// host-supplied message.
	Message string
	// Frames records, outermost first, the origins of every VM frame still
	// active when this error was raised.  Populated by the VM during unwind;
	// empty for errors raised below the VM (e.g. directly from the cell
	// layer in a unit test).
	Frames []Origin
}

// NewRuntimeError constructs a RuntimeError with no conflict origin.
func NewRuntimeError(kind ErrorKind, access Origin, message string) *RuntimeError {
	return &RuntimeError{Kind: kind, AccessOrigin: access, Message: message}
}

// NewRuntimeErrorf is NewRuntimeError with fmt.Sprintf-style formatting.
func NewRuntimeErrorf(kind ErrorKind, access Origin, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, AccessOrigin: access, Message: fmt.Sprintf(format, args...)}
}

// NewBorrowConflict constructs a RuntimeError for one of the three pairwise
// borrow conflicts, carrying both the accessing and the conflicting origin.
func NewBorrowConflict(kind ErrorKind, access, conflict Origin) *RuntimeError {
	return &RuntimeError{Kind: kind, AccessOrigin: access, ConflictOrigin: conflict}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch {
	case e.Kind == Custom:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case !e.ConflictOrigin.IsNil():
		return fmt.Sprintf("%s at %s (conflicts with %s)", e.Kind, e.AccessOrigin, e.ConflictOrigin)
	case e.Message != "":
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.AccessOrigin, e.Message)
	default:
		return fmt.Sprintf("%s at %s", e.Kind, e.AccessOrigin)
	}
}

// WithFrame appends a frame origin during VM unwind, returning the receiver
// for chaining; the VM calls it outermost frame first.
func (e *RuntimeError) WithFrame(o Origin) *RuntimeError {
	e.Frames = append(e.Frames, o)
	return e
}

// PrimaryOrigin returns the origin of the operand whose Cell produced this
// error — the same as AccessOrigin, surfaced under the name used by the VM's
// unwind documentation.
func (e *RuntimeError) PrimaryOrigin() Origin {
	return e.AccessOrigin
}
