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
package analyzer

import "github.com/adastra-lang/adastra/pkg/util/source"

// bindingKind distinguishes what a name in scope actually names, so
// resolution can tell "call this function" from "read this variable" apart
// when it matters (e.g. the compiler lowers a reference to a Use binding to
// a PushPackage rather than a frame-slot read).
type bindingKind uint8

const (
	bindVar bindingKind = iota
	bindFn
	bindStruct
	bindUse
)

// binding is one name declared into a scope.
type binding struct {
	Name        string
	Span        source.Span
	Kind        bindingKind
	Initialized bool
	Tag         TypeTag
	// Slot is this binding's position in its owning frame: a flat, 0-based
	// counter over every variable ever declared in the function (params
	// first), matching the VM's frame-local Cell array. Closures captured
	// from an enclosing function scope are recorded separately (see
	// captures on scope) and addressed by capture index instead.
	Slot int
}

// Binding name/slot/kind accessors for the compiler, which receives
// bindings only as opaque *binding values through Semantics.Binding.

// BindingName returns the declared name.
func (b *binding) BindingName() string {
	return b.Name
}

// FrameSlot returns the binding's slot in its owning function frame.
func (b *binding) FrameSlot() int {
	return b.Slot
}

// IsFn reports whether this binding names a declared function.
func (b *binding) IsFn() bool {
	return b.Kind == bindFn
}

// IsStruct reports whether this binding names a declared struct type.
func (b *binding) IsStruct() bool {
	return b.Kind == bindStruct
}

// IsUse reports whether this binding names an imported package alias.
func (b *binding) IsUse() bool {
	return b.Kind == bindUse
}

// scope is one lexical block. The root scope of a module, and the top of
// every function body, are function scopes (isFn); all others are plain
// blocks that share their enclosing function's local slot numbering.
type scope struct {
	parent *scope
	isFn   bool
	names  map[string]*binding
	order  []string
	// loopDepth counts enclosing loop/for constructs, so break/continue can
	// detect CodeOrphanedBreak.
	loopDepth int
	// nextSlot allocates frame-local slot numbers; shared by reference with
	// every scope nested in the same function (see newChildScope).
	nextSlot *int
	// captures, only meaningful on a function's top scope, records every
	// enclosing-scope binding this function body reads, in first-use order:
	// the compiler turns each into a Bind instruction in the closure's
	// capture list.
	captures   []*binding
	captureIdx map[*binding]int
	// hasBareReturn/hasValueReturn track, for the enclosing function scope
	// only, whether a `return;` and a `return <expr>;` have each been seen
	// anywhere in the body — used for CodeInconsistentReturns.
	hasBareReturn  bool
	hasValueReturn bool
}

func newRootScope() *scope {
	n := 0
	return &scope{isFn: true, names: map[string]*binding{}, nextSlot: &n, captureIdx: map[*binding]int{}}
}

// newChildScope opens a plain nested block under the same function frame.
func newChildScope(parent *scope) *scope {
	return &scope{parent: parent, names: map[string]*binding{}, loopDepth: parent.loopDepth, nextSlot: parent.nextSlot}
}

// newFnScope opens a new function frame nested lexically inside parent; its
// slot numbering starts fresh at 0 and its own captures map is independent.
func newFnScope(parent *scope) *scope {
	n := 0
	return &scope{parent: parent, isFn: true, names: map[string]*binding{}, nextSlot: &n, captureIdx: map[*binding]int{}}
}

// declare introduces name into s, allocating the next frame-local slot.
// Re-declaration in the same scope (shadowing a sibling `let` of the same
// name) simply replaces the binding, matching the teacher's last-write-wins
// treatment of duplicate local declarations elsewhere in the stack.
func (s *scope) declare(name string, span source.Span, kind bindingKind) *binding {
	b := &binding{Name: name, Span: span, Kind: kind, Slot: *s.nextSlot}
	*s.nextSlot++

	if _, exists := s.names[name]; !exists {
		s.order = append(s.order, name)
	}

	s.names[name] = b

	return b
}

// fn walks up to the enclosing function scope (s itself, if s.isFn).
func (s *scope) fn() *scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.isFn {
			return cur
		}
	}

	return s
}

// Fn exposes fn() to the compiler, which needs the enclosing function scope
// to decide whether an identifier reference resolves to a local frame slot
// or a capture.
func (s *scope) Fn() *scope {
	return s.fn()
}

// FrameSize returns the number of frame-local slots this function scope
// allocated: the compiler sizes the Assembly's frame to this.
func (s *scope) FrameSize() int {
	return *s.nextSlot
}

// CaptureCount returns the number of enclosing-scope bindings this function
// scope's body reads.
func (s *scope) CaptureCount() int {
	return len(s.captures)
}

// CaptureSlot returns the i-th captured binding's frame slot in the scope
// that declared it (the enclosing function's frame) — what the compiler
// Lifts before emitting PushClosure.
func (s *scope) CaptureSlot(i int) int {
	return s.captures[i].Slot
}

// CaptureIndexOf reports the capture index this function scope assigned to
// b, if b was captured from an enclosing scope.
func (s *scope) CaptureIndexOf(b *binding) (int, bool) {
	i, ok := s.captureIdx[b]

	return i, ok
}

// lookup resolves name, walking outward through enclosing blocks and, once
// it crosses a function boundary, recording the binding as a capture of
// every function scope it had to cross.
func (s *scope) lookup(name string) *binding {
	crossedFns := []*scope{}

	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.names[name]; ok {
			for i := len(crossedFns) - 1; i >= 0; i-- {
				crossedFns[i].capture(b)
			}

			return b
		}

		if cur.isFn {
			crossedFns = append(crossedFns, cur)
		}
	}

	return nil
}

// capture records that fnScope's body reads an enclosing binding, assigning
// it a stable capture index on first use.
func (s *scope) capture(b *binding) {
	if _, ok := s.captureIdx[b]; ok {
		return
	}

	s.captureIdx[b] = len(s.captures)
	s.captures = append(s.captures, b)
}

// visibleNames collects every name visible from s, nearest scope first, for
// ranking UnresolvedIdent quickfixes and building completion candidate
// lists.
func (s *scope) visibleNames() []string {
	var out []string

	seen := map[string]bool{}

	for cur := s; cur != nil; cur = cur.parent {
		for _, n := range cur.order {
			if !seen[n] {
				seen[n] = true

				out = append(out, n)
			}
		}
	}

	return out
}
