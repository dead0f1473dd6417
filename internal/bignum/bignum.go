// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bignum binds two mature numeric libraries rather than
// reimplementing bignum math: math/big for arbitrary-precision integers
// and cockroachdb/apd for arbitrary-precision decimals. The lexer's
// numeric literal scanner builds values through this package.
package bignum

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// Precision bounds the number of significant decimal digits kept while
// accumulating a fractional literal. It is generous enough that radices
// other than 10 (which cannot always be represented exactly in a finite
// number of decimal digits) still round-trip to full float64 precision
// and well beyond.
const Precision = 60

// context is the shared apd arithmetic context used for every fractional
// accumulation. apd.Context is not safe for concurrent mutation, but the
// lexer is single-threaded, so one package-level context is sufficient.
var context = apd.BaseContext.WithPrecision(Precision)

// NewInt returns a zero-valued arbitrary-precision integer accumulator.
func NewInt() *big.Int {
	return new(big.Int)
}

// AccumulateDigit folds one more digit onto acc at the given radix:
// acc = acc*radix + digit.
func AccumulateDigit(acc *big.Int, radix int64, digit int64) *big.Int {
	acc.Mul(acc, big.NewInt(radix))
	acc.Add(acc, big.NewInt(digit))
	return acc
}

// DecimalFromInt seeds a fractional accumulator from the integer part
// collected so far.
func DecimalFromInt(i *big.Int) *apd.Decimal {
	d, _, err := apd.NewFromString(i.String())
	if err != nil {
		// i.String() is always a valid decimal integer literal.
		panic(err)
	}
	return d
}

// AccumulateFractionalDigit folds one more fractional digit onto acc at
// place: divide place by radix first, then add digit*place to the running
// total. place is mutated in place and returned for the caller's next
// iteration.
func AccumulateFractionalDigit(acc, place *apd.Decimal, radix int64, digit int64) (newAcc, newPlace *apd.Decimal) {
	radixD := apd.New(radix, 0)
	_, _ = context.Quo(place, place, radixD)

	term := new(apd.Decimal)
	_, _ = context.Mul(term, apd.New(digit, 0), place)
	_, _ = context.Add(acc, acc, term)

	return acc, place
}

// StripTrailingZeros removes trailing zeros from the decimal's coefficient
// without changing its value.
func StripTrailingZeros(d *apd.Decimal) *apd.Decimal {
	out := new(apd.Decimal)
	_, _ = context.Reduce(out, d)
	return out
}

// One returns the decimal constant 1, used to seed the "place" accumulator
// of a fractional-digit accumulation.
func One() *apd.Decimal {
	return apd.New(1, 0)
}

// Negate flips the sign of an integer magnitude in place.
func Negate(i *big.Int) *big.Int {
	return i.Neg(i)
}

// NegateDecimal flips the sign of a decimal in place.
func NegateDecimal(d *apd.Decimal) *apd.Decimal {
	d.Negative = !d.Negative
	return d
}
