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
	"testing"

	"github.com/adastra-lang/adastra/pkg/util/assert"
)

var intType = ElementType{ID: 1, Name: "Int", Size: 8}

func TestCell_00_UpcastDowncast(t *testing.T) {
	c, err := Upcast(scriptOrigin(0), intType, int64(42))
	assert.True(t, err == nil)

	v, err2 := Downcast[int64](scriptOrigin(1), c)
	assert.True(t, err2 == nil)
	assert.Equal(t, int64(42), v)

	c.Release()
}

func TestCell_01_NilCell(t *testing.T) {
	assert.True(t, Nil.IsNil())

	_, err := Downcast[int64](scriptOrigin(0), Nil)
	assert.True(t, err != nil)
}

func TestCell_02_RegisterVecAndSubslice(t *testing.T) {
	s := RegisterVec(scriptOrigin(0), intType, []int64{1, 2, 3})
	assert.Equal(t, uintptr(3), s.Len())

	sub, err := s.Subslice(scriptOrigin(1), 1, 3)
	assert.True(t, err == nil)
	assert.Equal(t, uintptr(2), sub.Len())

	values := AsSliceRef[int64](sub)
	assert.Equal(t, int64(2), values[0])
	assert.Equal(t, int64(3), values[1])
}

func TestCell_03_StringIsUnicodeNoWritePtr(t *testing.T) {
	byteType := ElementType{ID: 2, Name: "byte", Size: 1}
	s := RegisterString(scriptOrigin(0), byteType, "hello")

	assert.True(t, s.IsUnicode())
	assert.Equal(t, uintptr(5), s.Len())
}

func TestCell_04_DedupSharesOneBorrowTable(t *testing.T) {
	var backing int64 = 7

	s1 := RegisterRef(scriptOrigin(0), intType, &backing)
	s2 := RegisterRef(scriptOrigin(1), intType, &backing)

	g1, err := s1.Grant(ValueRef, scriptOrigin(2))
	assert.True(t, err == nil)

	// s2 shares s1's borrow table (same backing address), so a ValueMut
	// through s2 must be blocked by the ValueRef acquired through s1.
	_, err2 := s2.Grant(ValueMut, scriptOrigin(3))
	assert.True(t, err2 != nil)

	s1.ReleaseGrant(g1)
}

func TestCell_05_VoidSliceSkipsBookkeeping(t *testing.T) {
	s := RegisterVec(scriptOrigin(0), intType, []int64{})
	assert.True(t, s.isVoid())

	g1, err := s.Grant(ValueMut, scriptOrigin(1))
	assert.True(t, err == nil)

	_, err2 := s.Grant(ValueMut, scriptOrigin(2))
	assert.True(t, err2 == nil)

	s.ReleaseGrant(g1)
}
