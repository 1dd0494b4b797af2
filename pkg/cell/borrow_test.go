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

	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func scriptOrigin(n int) origin.Origin {
	return origin.NewScript("m", source.NewSpan(n, n+1))
}

// TestBorrow_00 reproduces scenario 1: a ValueMut at O2 must
// block a subsequent ValueRef at O3 with WriteToRead{O3, O2}.
func TestBorrow_00(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(1), false)

	o2 := scriptOrigin(2)

	g, err := table.Grant(ValueMut, o2)
	assert.True(t, err == nil, "unexpected grant failure")

	o3 := scriptOrigin(3)
	_, err2 := table.Grant(ValueRef, o3)
	assert.True(t, err2 != nil, "expected conflict")
	assert.Equal(t, origin.WriteToRead, err2.Kind)
	assert.True(t, err2.AccessOrigin.Equals(o3))
	assert.True(t, err2.ConflictOrigin.Equals(o2))

	table.Release(g)
}

func TestBorrow_01_ValueRefsCoexistWithPlaceRefs(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	g1, err := table.Grant(ValueRef, scriptOrigin(1))
	assert.True(t, err == nil)

	g2, err := table.Grant(PlaceRef, scriptOrigin(2))
	assert.True(t, err == nil)

	g3, err := table.Grant(ValueRef, scriptOrigin(3))
	assert.True(t, err == nil)

	assert.Equal(t, 3, table.OutstandingCount())

	table.Release(g1)
	table.Release(g2)
	table.Release(g3)

	assert.Equal(t, 0, table.OutstandingCount())
}

func TestBorrow_02_ReadBlocksWrite(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	g1, err := table.Grant(PlaceRef, scriptOrigin(1))
	assert.True(t, err == nil)

	_, err2 := table.Grant(ValueMut, scriptOrigin(2))
	assert.True(t, err2 != nil)
	assert.Equal(t, origin.ReadToWrite, err2.Kind)

	table.Release(g1)
}

func TestBorrow_03_WriteToWrite(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	g1, err := table.Grant(ValueMut, scriptOrigin(1))
	assert.True(t, err == nil)

	_, err2 := table.Grant(PlaceMut, scriptOrigin(2))
	assert.True(t, err2 != nil)
	assert.Equal(t, origin.WriteToWrite, err2.Kind)

	table.Release(g1)
}

func TestBorrow_04_VoidSliceAlwaysSucceeds(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), true)

	g1, err := table.Grant(ValueMut, scriptOrigin(1))
	assert.True(t, err == nil)

	g2, err := table.Grant(ValueRef, scriptOrigin(2))
	assert.True(t, err == nil)

	table.Release(g1)
	table.Release(g2)
}

func TestBorrow_05_GrantLimit(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	var grants []Grant

	for i := 0; i < BorrowGrantLimit; i++ {
		g, err := table.Grant(ValueRef, scriptOrigin(i))
		assert.True(t, err == nil)
		grants = append(grants, g)
	}

	_, err := table.Grant(ValueRef, scriptOrigin(999))
	assert.True(t, err != nil)
	assert.Equal(t, origin.BorrowLimit, err.Kind)

	for _, g := range grants {
		table.Release(g)
	}
}

func TestBorrow_06_ReleaseIsLIFOSafe(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	g1, _ := table.Grant(ValueRef, scriptOrigin(1))
	g2, _ := table.Grant(ValueRef, scriptOrigin(2))

	table.Release(g2)
	table.Release(g1)

	assert.Equal(t, 0, table.OutstandingCount())
}

func TestBorrow_07_DoubleReleasePanics(t *testing.T) {
	table := NewBorrowTable(scriptOrigin(0), false)

	g, _ := table.Grant(ValueRef, scriptOrigin(1))
	table.Release(g)

	assert.Panics(t, func() {
		table.Release(g)
	})
}
