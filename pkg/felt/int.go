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
	"fmt"
	"math"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// Int is Ad Astra's native signed integer, a checked wrapper over int64:
// every arithmetic operator reports Overflow rather than silently
// wrapping.
type Int int64

// Add returns x + y, or Overflow if the result cannot be represented.
func (x Int) Add(y Int, at origin.Origin) (Int, *origin.RuntimeError) {
	sum := int64(x) + int64(y)
	if (y > 0 && sum < int64(x)) || (y < 0 && sum > int64(x)) {
		return 0, overflow(at, "add", x, y)
	}

	return Int(sum), nil
}

// Sub returns x - y, or Overflow if the result cannot be represented.
func (x Int) Sub(y Int, at origin.Origin) (Int, *origin.RuntimeError) {
	diff := int64(x) - int64(y)
	if (y < 0 && diff < int64(x)) || (y > 0 && diff > int64(x)) {
		return 0, overflow(at, "sub", x, y)
	}

	return Int(diff), nil
}

// Mul returns x * y, or Overflow if the result cannot be represented.
func (x Int) Mul(y Int, at origin.Origin) (Int, *origin.RuntimeError) {
	if x == 0 || y == 0 {
		return 0, nil
	}

	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, overflow(at, "mul", x, y)
	}

	prod := int64(x) * int64(y)
	if prod/int64(y) != int64(x) {
		return 0, overflow(at, "mul", x, y)
	}

	return Int(prod), nil
}

// Div returns x / y, truncated toward zero. Fails with DivisionByZero if y
// is zero, or Overflow on the single representable overflow case
// (MinInt64 / -1).
func (x Int) Div(y Int, at origin.Origin) (Int, *origin.RuntimeError) {
	if y == 0 {
		return 0, origin.NewRuntimeError(origin.DivisionByZero, at, "integer division by zero")
	}

	if x == math.MinInt64 && y == -1 {
		return 0, overflow(at, "div", x, y)
	}

	return x / y, nil
}

// Rem returns x % y, with the sign of x. Fails with DivisionByZero if y is
// zero.
func (x Int) Rem(y Int, at origin.Origin) (Int, *origin.RuntimeError) {
	if y == 0 {
		return 0, origin.NewRuntimeError(origin.DivisionByZero, at, "integer remainder by zero")
	}

	return x % y, nil
}

// Neg returns -x, or Overflow for MinInt64 (which has no positive
// counterpart).
func (x Int) Neg(at origin.Origin) (Int, *origin.RuntimeError) {
	if x == math.MinInt64 {
		return 0, origin.NewRuntimeErrorf(origin.Overflow, at, "negation overflow: -(%d)", int64(x))
	}

	return -x, nil
}

// Cmp returns -1, 0 or 1 as x is less than, equal to, or greater than y.
func (x Int) Cmp(y Int) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func overflow(at origin.Origin, op string, x, y Int) *origin.RuntimeError {
	return origin.NewRuntimeErrorf(origin.Overflow, at, "integer %s overflow: %d, %d", op, int64(x), int64(y))
}

// String renders x in decimal.
func (x Int) String() string {
	return fmt.Sprintf("%d", int64(x))
}
