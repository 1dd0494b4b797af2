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

// Package registry catalogues host types, their operator implementations
// and named components (fields/methods), built once from declaration
// groups collected at process start. It is read-only once
// populated.
package registry

import (
	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
)

// TypeMeta is the static metadata for a registered host type.  It embeds
// cell.ElementType (the minimal descriptor the memory layer needs) and adds
// the documentation, family membership and operator/component table the
// analyzer and VM need.
type TypeMeta struct {
	cell.ElementType
	Doc       string
	Family    *TypeFamily
	Prototype *Prototype
	// DeclOrigin is the host-code origin that registered this type; blamed
	// on a duplicate-declaration conflict.
	DeclOrigin origin.Origin
}

// TypeFamily is a set of types treated as mutually convertible by the
// dynamic-typed merges. Singleton families are created implicitly for
// every registered type that isn't placed in a named family explicitly.
type TypeFamily struct {
	name    string
	doc     string
	members []*TypeMeta
}

// Name returns the family's name.
func (f *TypeFamily) Name() string {
	return f.name
}

// Doc returns the family's documentation, if any.
func (f *TypeFamily) Doc() string {
	return f.doc
}

// Contains tests family membership.
func (f *TypeFamily) Contains(t *TypeMeta) bool {
	for _, m := range f.members {
		if m == t {
			return true
		}
	}

	return false
}

// Members returns every type in this family, in declaration order.
func (f *TypeFamily) Members() []*TypeMeta {
	return f.members
}

// Equals compares two families by identity.
func (f *TypeFamily) Equals(other *TypeFamily) bool {
	return f == other
}
