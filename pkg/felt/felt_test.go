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
package felt

import (
	"math"
	"testing"

	"github.com/adastra-lang/adastra/pkg/cell"
	"github.com/adastra-lang/adastra/pkg/natives"
	"github.com/adastra-lang/adastra/pkg/origin"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func at(n int) origin.Origin {
	return origin.NewScript("m", source.NewSpan(n, n+1))
}

func TestInt_00_AddOverflow(t *testing.T) {
	_, err := Int(math.MaxInt64).Add(1, at(0))
	assert.True(t, err != nil)
	assert.Equal(t, origin.Overflow, err.Kind)
}

func TestInt_01_DivByZero(t *testing.T) {
	_, err := Int(10).Div(0, at(0))
	assert.True(t, err != nil)
	assert.Equal(t, origin.DivisionByZero, err.Kind)
}

func TestInt_02_MinInt64DivNegOneOverflows(t *testing.T) {
	_, err := Int(math.MinInt64).Div(-1, at(0))
	assert.True(t, err != nil)
	assert.Equal(t, origin.Overflow, err.Kind)
}

func TestInt_03_Arithmetic(t *testing.T) {
	sum, err := Int(2).Add(3, at(0))
	assert.True(t, err == nil)
	assert.Equal(t, Int(5), sum)

	diff, err := Int(5).Sub(3, at(0))
	assert.True(t, err == nil)
	assert.Equal(t, Int(2), diff)

	prod, err := Int(4).Mul(5, at(0))
	assert.True(t, err == nil)
	assert.Equal(t, Int(20), prod)
}

func TestFloat_00_DivByZero(t *testing.T) {
	_, err := Float(1).Div(0, at(0))
	assert.True(t, err != nil)
	assert.Equal(t, origin.DivisionByZero, err.Kind)
}

func TestFloat_01_Arithmetic(t *testing.T) {
	got, err := Float(6).Div(2, at(0))
	assert.True(t, err == nil)
	assert.Equal(t, Float(3), got)
}

func TestFloat_02_NaNComparesUnequalAndUnordered(t *testing.T) {
	nan := Float(math.NaN())

	self, err := boxFloat(at(0), nan)
	assert.True(t, err == nil)

	other, err := boxFloat(at(0), nan)
	assert.True(t, err == nil)

	eq, err := eqFloat(self, []cell.Cell{other}, at(0))
	assert.True(t, err == nil)

	v, err := natives.UnboxBool(at(0), eq)
	assert.True(t, err == nil)
	assert.Equal(t, false, v)

	for _, fn := range []func(int) bool{
		func(c int) bool { return c < 0 },
		func(c int) bool { return c <= 0 },
		func(c int) bool { return c > 0 },
		func(c int) bool { return c >= 0 },
	} {
		result, err := compareFloat(fn)(self, []cell.Cell{other}, at(0))
		assert.True(t, err == nil)

		v, err := natives.UnboxBool(at(0), result)
		assert.True(t, err == nil)
		assert.Equal(t, false, v)
	}
}

func TestFelt_00_AddSubRoundTrip(t *testing.T) {
	a := FromInt64(7)
	b := FromInt64(3)

	sum := a.Add(b)
	back := sum.Sub(b)

	assert.True(t, back.Equals(a))
}

func TestFelt_01_DivByZero(t *testing.T) {
	_, err := FromInt64(1).Div(FeltZero, at(0))
	assert.True(t, err != nil)
	assert.Equal(t, origin.DivisionByZero, err.Kind)
}

func TestFelt_02_DivInverse(t *testing.T) {
	a := FromInt64(6)
	b := FromInt64(2)

	q, err := a.Div(b, at(0))
	assert.True(t, err == nil)
	assert.True(t, q.Equals(FromInt64(3)))
}

func TestFelt_03_NegativeRoundTrip(t *testing.T) {
	neg := FromInt64(-5)
	pos := FromInt64(5)

	assert.True(t, neg.Add(pos).IsZero())
}
