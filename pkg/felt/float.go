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
	"strconv"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// Float is Ad Astra's native IEEE-754 double.
type Float float64

// Add returns x + y.
func (x Float) Add(y Float) Float { return x + y }

// Sub returns x - y.
func (x Float) Sub(y Float) Float { return x - y }

// Mul returns x * y.
func (x Float) Mul(y Float) Float { return x * y }

// Div returns x / y. Fails with DivisionByZero if y is exactly zero, rather
// than producing an infinity or NaN.
func (x Float) Div(y Float, at origin.Origin) (Float, *origin.RuntimeError) {
	if y == 0 {
		return 0, origin.NewRuntimeError(origin.DivisionByZero, at, "float division by zero")
	}

	return x / y, nil
}

// Neg returns -x.
func (x Float) Neg() Float { return -x }

// Cmp returns -1, 0 or 1 as x is less than, equal to, or greater than y.
func (x Float) Cmp(y Float) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// String renders x using the shortest round-tripping decimal
// representation.
func (x Float) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}
