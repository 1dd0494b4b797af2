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

// OperatorKind enumerates the operator-slot set.
type OperatorKind uint8

// The full enumerated operator-slot set.
const (
	OpAssign OperatorKind = iota
	OpConcat
	OpField
	OpClone
	OpDebug
	OpDisplay
	OpPartialEq
	OpDefault
	OpPartialOrd
	OpOrd
	OpHash
	OpInvocation
	OpBinding
	OpAdd
	OpAddAssign
	OpSub
	OpSubAssign
	OpMul
	OpMulAssign
	OpDiv
	OpDivAssign
	OpAnd
	OpOr
	OpNot
	OpNeg
	OpBitAnd
	OpBitAndAssign
	OpBitOr
	OpBitOrAssign
	OpBitXor
	OpBitXorAssign
	OpShl
	OpShlAssign
	OpShr
	OpShrAssign
	OpRem
	OpRemAssign
	// OpLt/OpLe/OpGt/OpGe are the four relational comparisons, each
	// returning Bool directly: kept distinct from OpPartialOrd (which a
	// future Ord-style total-ordering consumer, e.g. a sort builtin, can
	// still use) rather than deriving all four from one tristate result.

	OpLt
	OpLe
	OpGt
	OpGe

	opKindCount
)

var operatorNames = [opKindCount]string{
	"assign", "concat", "field", "clone", "debug", "display", "partial_eq",
	"default", "partial_ord", "ord", "hash", "invocation", "binding",
	"add", "add_assign", "sub", "sub_assign", "mul", "mul_assign", "div",
	"div_assign", "and", "or", "not", "neg", "bitand", "bitand_assign",
	"bitor", "bitor_assign", "bitxor", "bitxor_assign", "shl",
	"shl_assign", "shr", "shr_assign", "rem", "rem_assign",
	"lt", "le", "gt", "ge",
}

// String renders the operator slot's canonical name.
func (k OperatorKind) String() string {
	if int(k) < len(operatorNames) {
		return operatorNames[k]
	}

	return "unknown"
}

// TypeHint constrains what an operator slot's RHS and/or result may be.
// DynamicHint means "accept/produce anything" and bypasses argument
// validation.
type TypeHint struct {
	Dynamic bool
	Type    *TypeMeta
	Family  *TypeFamily
}

// Accepts reports whether a concrete type satisfies this hint.
func (h TypeHint) Accepts(t *TypeMeta) bool {
	switch {
	case h.Dynamic:
		return true
	case h.Family != nil:
		return h.Family.Contains(t)
	case h.Type != nil:
		return h.Type == t
	default:
		return false
	}
}

// InvokeFunc is the shape of every operator slot's implementation: given the
// originating Cell, zero or more argument Cells, and the Origin of the
// invoking instruction, produce a result Cell or a runtime error.
type InvokeFunc func(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError)

// OperatorSlot holds one operator implementation plus the metadata needed
// to validate and report on its use.
type OperatorSlot struct {
	Origin     origin.Origin
	Invoke     InvokeFunc
	RHSHint    TypeHint
	ResultHint TypeHint
}

// ComponentFunc constructs the Cell a named component (field/method)
// resolves to, given the receiver Cell.
type ComponentFunc func(self cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError)

// Component is one named field/method entry in a Prototype.
type Component struct {
	Name        string
	Constructor ComponentFunc
	ResultHint  TypeHint
	Doc         string
}

// Prototype is the per-type operator table and component table.
//
type Prototype struct {
	operators  [opKindCount]*OperatorSlot
	components map[string]*Component
	// componentOrder preserves declaration order for deterministic
	// completion-candidate listings.
	componentOrder []string
}

// NewPrototype constructs an empty prototype.
func NewPrototype() *Prototype {
	return &Prototype{components: make(map[string]*Component)}
}

// SetOperator installs an operator slot, overwriting any prior declaration
// for the same kind (last declaration wins; duplicate-type-declaration
// fatality is enforced at the declaration-group level, not here).
func (p *Prototype) SetOperator(kind OperatorKind, slot *OperatorSlot) {
	p.operators[kind] = slot
}

// Operator looks up an operator slot, returning nil if undefined.
func (p *Prototype) Operator(kind OperatorKind) *OperatorSlot {
	return p.operators[kind]
}

// AddComponent installs a named component.
func (p *Prototype) AddComponent(c *Component) {
	if _, exists := p.components[c.Name]; !exists {
		p.componentOrder = append(p.componentOrder, c.Name)
	}

	p.components[c.Name] = c
}

// Component looks up a named component, returning nil if undefined.
func (p *Prototype) Component(name string) *Component {
	return p.components[name]
}

// ComponentNames returns every declared component name, in declaration
// order.
func (p *Prototype) ComponentNames() []string {
	return p.componentOrder
}
