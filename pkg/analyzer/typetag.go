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

import "github.com/adastra-lang/adastra/pkg/registry"

// TagKind discriminates the shape a TypeTag carries.
type TagKind uint8

const (
	// TagUnset means no expression has yet contributed a tag (the zero
	// value); merging with anything yields the other operand unchanged.
	TagUnset TagKind = iota
	// TagDynamic means the expression's type cannot be pinned down
	// statically (e.g. it flows from an unresolved identifier, a
	// function parameter, or the merge of two distinct concrete tags).
	TagDynamic
	// TagConcrete names exactly one registered host type.
	TagConcrete
	// TagStruct names a script-declared struct, by its entry names.
	TagStruct
	// TagFn names a script-declared function, by its parameter count.
	TagFn
)

// TypeTag is the analyzer's best static guess at an expression's type. It is
// advisory, not a guarantee: the language is dynamically typed, so every
// depth-3 diagnostic derived from a TypeTag is a warning, never an error.
type TypeTag struct {
	Kind    TagKind
	Meta    *registry.TypeMeta // TagConcrete
	Entries []string           // TagStruct, entry names in declaration order
	Arity   int                // TagFn
}

// Dynamic is the tag assigned to any expression whose type cannot be pinned
// down statically.
var Dynamic = TypeTag{Kind: TagDynamic}

// Concrete builds a TagConcrete tag for a registered host type.
func Concrete(meta *registry.TypeMeta) TypeTag {
	return TypeTag{Kind: TagConcrete, Meta: meta}
}

// Struct builds a TagStruct tag from a struct declaration's entry names.
func Struct(entries []string) TypeTag {
	return TypeTag{Kind: TagStruct, Entries: entries}
}

// Fn builds a TagFn tag from a function declaration's parameter count.
func Fn(arity int) TypeTag {
	return TypeTag{Kind: TagFn, Arity: arity}
}

// equalTag reports whether two tags describe the same concrete shape,
// without considering TagUnset/TagDynamic (the caller handles those first).
func equalTag(a, b TypeTag) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case TagConcrete:
		return a.Meta == b.Meta
	case TagFn:
		return a.Arity == b.Arity
	case TagStruct:
		if len(a.Entries) != len(b.Entries) {
			return false
		}

		for i := range a.Entries {
			if a.Entries[i] != b.Entries[i] {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// Merge combines the tags of two control-flow paths that join at the same
// program point (e.g. the two arms of an if/else, or every return in a
// function): an unset tag defers to the other; a dynamic tag is contagious;
// two equal concrete tags stay that concrete tag; anything else collapses to
// dynamic, since the analyzer has no way to express a sound union type.
func Merge(a, b TypeTag) TypeTag {
	switch {
	case a.Kind == TagUnset:
		return b
	case b.Kind == TagUnset:
		return a
	case a.Kind == TagDynamic || b.Kind == TagDynamic:
		return Dynamic
	case equalTag(a, b):
		return a
	default:
		return Dynamic
	}
}

// ResultOf returns the TypeTag an operator slot's declared result hint
// implies, falling back to Dynamic when the hint doesn't pin a single
// concrete type (a family hint still only narrows, it doesn't identify one
// member, so it degrades to Dynamic here too).
func ResultOf(hint registry.TypeHint) TypeTag {
	if hint.Type != nil {
		return Concrete(hint.Type)
	}

	return Dynamic
}
