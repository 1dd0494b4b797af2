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

// Package felt provides Ad Astra's three native numeric host types: Int (a
// checked 64-bit signed integer), Float (an IEEE-754 double) and Felt (a
// BLS12-377 scalar field element), registered together under the "number"
// type family.
package felt

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/adastra-lang/adastra/pkg/origin"
)

// Felt wraps fr.Element as a script-visible value type. Arithmetic wraps
// modulo the BLS12-377 scalar field order; division is field inversion and
// is the one Felt operation that can fail, on a zero divisor.
type Felt struct {
	inner fr.Element
}

// FeltZero is the additive identity.
var FeltZero = Felt{}

// FromInt64 lifts a host int64 into the field, reducing modulo the field
// order.
func FromInt64(v int64) Felt {
	var f Felt

	if v < 0 {
		var neg fr.Element

		neg.SetUint64(uint64(-v))
		f.inner.Neg(&neg)
	} else {
		f.inner.SetUint64(uint64(v))
	}

	return f
}

// FromBytes constructs a Felt from its big-endian encoding, reducing modulo
// the field order.
func FromBytes(b []byte) Felt {
	var f Felt

	f.inner.SetBytes(b)

	return f
}

// Add returns x + y.
func (x Felt) Add(y Felt) Felt {
	var out Felt

	out.inner.Add(&x.inner, &y.inner)

	return out
}

// Sub returns x - y.
func (x Felt) Sub(y Felt) Felt {
	var out Felt

	out.inner.Sub(&x.inner, &y.inner)

	return out
}

// Mul returns x * y.
func (x Felt) Mul(y Felt) Felt {
	var out Felt

	out.inner.Mul(&x.inner, &y.inner)

	return out
}

// Div returns x / y, i.e. x * y⁻¹. Fails with DivisionByZero if y is zero.
func (x Felt) Div(y Felt, at origin.Origin) (Felt, *origin.RuntimeError) {
	if y.IsZero() {
		return Felt{}, origin.NewRuntimeError(origin.DivisionByZero, at, "felt division by zero")
	}

	var inv, out fr.Element

	inv.Inverse(&y.inner)
	out.Mul(&x.inner, &inv)

	return Felt{out}, nil
}

// Neg returns -x.
func (x Felt) Neg() Felt {
	var out Felt

	out.inner.Neg(&x.inner)

	return out
}

// IsZero reports whether x is the additive identity.
func (x Felt) IsZero() bool {
	return x.inner.IsZero()
}

// Cmp returns -1, 0 or 1 as x is numerically less than, equal to, or
// greater than y under the field's canonical (non-modular) integer
// representative ordering.
func (x Felt) Cmp(y Felt) int {
	return x.inner.Cmp(&y.inner)
}

// Equals reports whether x and y represent the same field element.
func (x Felt) Equals(y Felt) bool {
	return x.inner == y.inner
}

// Bytes returns the big-endian encoding of x, always 32 bytes.
func (x Felt) Bytes() []byte {
	return x.inner.Marshal()
}

// String renders x in decimal.
func (x Felt) String() string {
	return x.inner.String()
}
