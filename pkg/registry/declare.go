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
package registry

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
)

// NewTypeID derives a stable TypeID from a host type's fully-qualified
// name.  Declaration groups are injected by an external code-gen
// collaborator (the exporting procedural macro, out of scope here) which
// has no shared counter to allocate from, so identity is content-addressed
// instead.
func NewTypeID(qualifiedName string) cell.TypeID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(qualifiedName))

	return cell.TypeID(h.Sum64())
}

// TypeDecl declares one host type's static metadata.
type TypeDecl struct {
	ID         cell.TypeID
	Name       string
	Doc        string
	FamilyName string // empty => implicit singleton family
	Size       uintptr
}

// PackageDecl declares one host package/namespace component.
type PackageDecl struct {
	Name      string
	Version   string
	Doc       string
	Construct func() cell.Cell // lazily invoked on first access
}

// OperatorDecl declares one operator slot for a receiver type.
type OperatorDecl struct {
	ReceiverID cell.TypeID
	Kind       OperatorKind
	Slot       *OperatorSlot
}

// ComponentDecl declares one named component for a receiver type.
type ComponentDecl struct {
	ReceiverID cell.TypeID
	Component  *Component
}

// DeclarationGroup is one bundle of declarations contributed by a host
// collaborator.
type DeclarationGroup struct {
	Origin     origin.Origin
	Packages   []PackageDecl
	Types      []TypeDecl
	Operators  []OperatorDecl
	Components []ComponentDecl
}

// Registry is the global, build-once-read-many catalogue of host types,
// families and prototypes.
type Registry struct {
	mu          sync.RWMutex
	types       map[cell.TypeID]*TypeMeta
	typesByName map[string]*TypeMeta
	families    map[string]*TypeFamily
	packages    map[string]*lazyPackage
	sealed      bool
}

type lazyPackage struct {
	decl PackageDecl
	once sync.Once
	cell cell.Cell
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		types:       make(map[cell.TypeID]*TypeMeta),
		typesByName: make(map[string]*TypeMeta),
		families:    make(map[string]*TypeFamily),
		packages:    make(map[string]*lazyPackage),
	}
}

// Declare folds a set of declaration groups into the registry's type
// table, family-to-members table and prototype table.  Duplicate type
// declarations are a fatal configuration error blaming the declaring
// group's origin.  Must be called exactly once, before any analyzer or VM
// activity.
func (r *Registry) Declare(groups []DeclarationGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("registry: already sealed, Declare may only be called once")
	}

	// Pass 1: types and families, so operator/component declarations (pass
	// 2) can always find their receiver.
	for _, g := range groups {
		for _, td := range g.Types {
			if _, exists := r.types[td.ID]; exists {
				return fmt.Errorf("registry: duplicate type declaration %q at %s", td.Name, g.Origin)
			}

			family := r.familyFor(td)

			meta := &TypeMeta{
				ElementType: cell.ElementType{ID: td.ID, Name: td.Name, Size: td.Size},
				Doc:         td.Doc,
				Prototype:   NewPrototype(),
				DeclOrigin:  g.Origin,
			}
			meta.Family = family
			family.members = append(family.members, meta)

			r.types[td.ID] = meta
			r.typesByName[td.Name] = meta
		}

		for _, pd := range g.Packages {
			if _, exists := r.packages[pd.Name]; exists {
				return fmt.Errorf("registry: duplicate package declaration %q at %s", pd.Name, g.Origin)
			}

			r.packages[pd.Name] = &lazyPackage{decl: pd}
		}
	}

	// Pass 2: operators and components, now that every receiver exists.
	for _, g := range groups {
		for _, od := range g.Operators {
			meta, ok := r.types[od.ReceiverID]
			if !ok {
				return fmt.Errorf("registry: operator declared for unknown type id %d at %s", od.ReceiverID, g.Origin)
			}

			meta.Prototype.SetOperator(od.Kind, od.Slot)
		}

		for _, cd := range g.Components {
			meta, ok := r.types[cd.ReceiverID]
			if !ok {
				return fmt.Errorf("registry: component declared for unknown type id %d at %s", cd.ReceiverID, g.Origin)
			}

			meta.Prototype.AddComponent(cd.Component)
		}
	}

	r.sealed = true

	return nil
}

// familyFor returns the named family for td, creating an implicit
// singleton family if td names none.  Must be called with mu held.
func (r *Registry) familyFor(td TypeDecl) *TypeFamily {
	name := td.FamilyName
	if name == "" {
		name = "singleton:" + td.Name
	}

	if f, ok := r.families[name]; ok {
		return f
	}

	f := &TypeFamily{name: name}
	if td.FamilyName == "" {
		f.doc = ""
	}

	r.families[name] = f

	return f
}

// DeclareFamily pre-registers a named family with documentation, so that
// types declared afterwards with a matching FamilyName attach to it.  Call
// before Declare.
func (r *Registry) DeclareFamily(name, doc string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.families[name]; !ok {
		r.families[name] = &TypeFamily{name: name, doc: doc}
	}
}

// TypeByID resolves a TypeID to its TypeMeta.
func (r *Registry) TypeByID(id cell.TypeID) (*TypeMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]

	return t, ok
}

// TypeByName resolves a registered type's user-facing name to its TypeMeta.
func (r *Registry) TypeByName(name string) (*TypeMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.typesByName[name]

	return t, ok
}

// Family resolves a family by name.
func (r *Registry) Family(name string) (*TypeFamily, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.families[name]

	return f, ok
}

// Types enumerates every registered type.
func (r *Registry) Types() []*TypeMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*TypeMeta, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}

	return out
}

// PackageNames enumerates every registered top-level package name.
func (r *Registry) PackageNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.packages))
	for n := range r.packages {
		names = append(names, n)
	}

	return names
}

// Package resolves a top-level package by name, lazily constructing its
// Cell on first access and caching it thereafter.
func (r *Registry) Package(name string) (cell.Cell, bool) {
	r.mu.RLock()
	lp, ok := r.packages[name]
	r.mu.RUnlock()

	if !ok {
		return cell.Nil, false
	}

	lp.once.Do(func() {
		lp.cell = lp.decl.Construct()
	})

	return lp.cell, true
}
