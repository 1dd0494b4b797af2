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
	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
)

// Invoke dispatches an operator against self: locate self's prototype,
// select the slot named by kind, validate each argument against the slot's
// RHS hint (a dynamic hint bypasses validation) and invoke.  Used by the
// VM's Op(kind) instruction.
func (r *Registry) Invoke(kind OperatorKind, self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	meta, err := r.metaOf(self, at)
	if err != nil {
		return cell.Nil, err
	}

	slot := meta.Prototype.Operator(kind)
	if slot == nil {
		return cell.Nil, origin.NewRuntimeErrorf(origin.UndefinedOperator, at,
			"type %q has no %q operator", meta.Name, kind)
	}

	if !slot.RHSHint.Dynamic {
		for _, a := range args {
			argMeta, aerr := r.metaOf(a, at)
			if aerr != nil {
				return cell.Nil, aerr
			}

			if !slot.RHSHint.Accepts(argMeta) {
				return cell.Nil, origin.NewRuntimeErrorf(origin.TypeMismatch, at,
					"operator %q on %q rejects argument of type %q", kind, meta.Name, argMeta.Name)
			}
		}
	}

	return slot.Invoke(self, args, at)
}

// ResolveComponent dispatches named-component access (field/method lookup,
// the "." operator's positional partner).  On failure the returned
// RuntimeError carries up to three closeness-ranked suggestions drawn from
// the receiver's declared component names.
func (r *Registry) ResolveComponent(name string, self cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	meta, err := r.metaOf(self, at)
	if err != nil {
		return cell.Nil, err
	}

	c := meta.Prototype.Component(name)
	if c == nil {
		suggestions := closestNames(name, meta.Prototype.ComponentNames(), 3)

		return cell.Nil, origin.NewRuntimeErrorf(origin.UnknownComponent, at,
			"type %q has no component %q%s", meta.Name, name, suggestionSuffix(suggestions))
	}

	result, rerr := c.Constructor(self, at)
	if rerr != nil {
		return cell.Nil, rerr
	}

	if !c.ResultHint.Dynamic {
		resMeta, merr := r.metaOf(result, at)
		if merr != nil {
			return cell.Nil, merr
		}

		if !c.ResultHint.Accepts(resMeta) {
			return cell.Nil, origin.NewRuntimeErrorf(origin.TypeMismatch, at,
				"component %q of %q produced unexpected type %q", name, meta.Name, resMeta.Name)
		}
	}

	return result, nil
}

// SuggestComponents ranks the component names of the type named typeName
// against a misspelled candidate, for analyzer quickfixes raised before any
// Cell exists (e.g. during static field-expression resolution).
func (r *Registry) SuggestComponents(typeName, candidate string, limit int) []string {
	meta, ok := r.TypeByName(typeName)
	if !ok {
		return nil
	}

	return closestNames(candidate, meta.Prototype.ComponentNames(), limit)
}

func (r *Registry) metaOf(c cell.Cell, at origin.Origin) (*TypeMeta, *origin.RuntimeError) {
	if c.IsNil() {
		return nil, origin.NewRuntimeError(origin.NilDereference, at, "operation on nil cell")
	}

	id := c.Slice().ElementType().ID

	meta, ok := r.TypeByID(id)
	if !ok {
		return nil, origin.NewRuntimeErrorf(origin.UnknownType, at, "no registered type for id %d", id)
	}

	return meta, nil
}

func suggestionSuffix(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	out := " (did you mean "

	for i, s := range suggestions {
		if i > 0 {
			out += ", "
		}

		out += "\"" + s + "\""
	}

	return out + "?)"
}
