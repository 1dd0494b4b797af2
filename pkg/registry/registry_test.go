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
	"strings"
	"testing"

	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func at(n int) origin.Origin {
	return origin.NewScript("m", source.NewSpan(n, n+1))
}

var intID = NewTypeID("test::Int")

func addOne(self cell.Cell, args []cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	lhs, err := cell.Downcast[int64](at, self)
	if err != nil {
		return cell.Nil, err
	}

	rhs, err := cell.Downcast[int64](at, args[0])
	if err != nil {
		return cell.Nil, err
	}

	return cell.Upcast(at, cell.ElementType{ID: intID, Name: "Int", Size: 8}, lhs+rhs)
}

func lenComponent(self cell.Cell, at origin.Origin) (cell.Cell, *origin.RuntimeError) {
	return cell.Upcast(at, cell.ElementType{ID: intID, Name: "Int", Size: 8}, int64(self.Slice().Len()))
}

func newIntRegistry(t *testing.T) *Registry {
	r := New()

	err := r.Declare([]DeclarationGroup{
		{
			Origin: at(0),
			Types: []TypeDecl{
				{ID: intID, Name: "Int", Doc: "native signed integer", Size: 8},
			},
			Operators: []OperatorDecl{
				{
					ReceiverID: intID,
					Kind:       OpAdd,
					Slot:       &OperatorSlot{Origin: at(0), Invoke: addOne, RHSHint: TypeHint{Dynamic: true}},
				},
			},
			Components: []ComponentDecl{
				{
					ReceiverID: intID,
					Component:  &Component{Name: "length", Constructor: lenComponent},
				},
			},
		},
	})
	assert.NoError(t, err)

	return r
}

func TestRegistry_00_DeclareAndInvokeOperator(t *testing.T) {
	r := newIntRegistry(t)

	lhs, _ := cell.Upcast(at(1), cell.ElementType{ID: intID, Name: "Int", Size: 8}, int64(2))
	rhs, _ := cell.Upcast(at(2), cell.ElementType{ID: intID, Name: "Int", Size: 8}, int64(3))

	result, err := r.Invoke(OpAdd, lhs, []cell.Cell{rhs}, at(3))
	assert.True(t, err == nil)

	v, _ := cell.Downcast[int64](at(4), result)
	assert.Equal(t, int64(5), v)
}

func TestRegistry_01_InvokeUndefinedOperator(t *testing.T) {
	r := newIntRegistry(t)

	lhs, _ := cell.Upcast(at(1), cell.ElementType{ID: intID, Name: "Int", Size: 8}, int64(2))

	_, err := r.Invoke(OpSub, lhs, nil, at(3))
	assert.True(t, err != nil)
	assert.Equal(t, origin.UndefinedOperator, err.Kind)
}

func TestRegistry_02_ResolveComponent(t *testing.T) {
	r := newIntRegistry(t)

	self := cell.RegisterVec(at(1), cell.ElementType{ID: intID, Name: "Int", Size: 8}, []int64{1, 2, 3})
	g, _ := self.Grant(cell.ValueRef, at(2))
	c := cell.NewCell(self, g, cell.Range{Start: 0, End: 3})

	result, err := r.ResolveComponent("length", c, at(3))
	assert.True(t, err == nil)

	v, _ := cell.Downcast[int64](at(4), result)
	assert.Equal(t, int64(3), v)
}

func TestRegistry_03_UnknownComponentSuggestsClosest(t *testing.T) {
	r := newIntRegistry(t)

	self := cell.RegisterVec(at(1), cell.ElementType{ID: intID, Name: "Int", Size: 8}, []int64{1})
	g, _ := self.Grant(cell.ValueRef, at(2))
	c := cell.NewCell(self, g, cell.Range{Start: 0, End: 1})

	_, err := r.ResolveComponent("lngth", c, at(3))
	assert.True(t, err != nil)
	assert.Equal(t, origin.UnknownComponent, err.Kind)
	assert.True(t, strings.Contains(err.Message, `did you mean "length"`))
}

func TestRegistry_04_DuplicateTypeDeclarationFails(t *testing.T) {
	r := New()

	err := r.Declare([]DeclarationGroup{
		{Origin: at(0), Types: []TypeDecl{{ID: intID, Name: "Int", Size: 8}}},
		{Origin: at(1), Types: []TypeDecl{{ID: intID, Name: "Int2", Size: 8}}},
	})
	assert.True(t, err != nil)
}

func TestRegistry_05_ImplicitSingletonFamily(t *testing.T) {
	r := newIntRegistry(t)

	meta, ok := r.TypeByName("Int")
	assert.True(t, ok)
	assert.True(t, meta.Family != nil)
	assert.True(t, meta.Family.Contains(meta))
}

func TestRegistry_06_NamedFamilyShared(t *testing.T) {
	r := New()
	r.DeclareFamily("number", "numeric types")

	floatID := NewTypeID("test::Float")

	err := r.Declare([]DeclarationGroup{
		{
			Origin: at(0),
			Types: []TypeDecl{
				{ID: intID, Name: "Int", Size: 8, FamilyName: "number"},
				{ID: floatID, Name: "Float", Size: 8, FamilyName: "number"},
			},
		},
	})
	assert.NoError(t, err)

	intMeta, _ := r.TypeByName("Int")
	floatMeta, _ := r.TypeByName("Float")

	assert.True(t, intMeta.Family.Equals(floatMeta.Family))
	assert.Equal(t, 2, len(intMeta.Family.Members()))
}

func TestRegistry_07_LazyPackageConstructedOnce(t *testing.T) {
	r := New()

	calls := 0

	err := r.Declare([]DeclarationGroup{
		{
			Origin: at(0),
			Packages: []PackageDecl{
				{Name: "math", Construct: func() cell.Cell {
					calls++

					return cell.Nil
				}},
			},
		},
	})
	assert.NoError(t, err)

	_, ok := r.Package("math")
	assert.True(t, ok)

	_, ok2 := r.Package("math")
	assert.True(t, ok2)

	assert.Equal(t, 1, calls)
}

func TestRegistry_08_ClosestNames(t *testing.T) {
	got := closestNames("lngth", []string{"length", "width", "height"}, 3)
	assert.True(t, len(got) > 0)
	assert.Equal(t, "length", got[0])
}
