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

package lexer

import (
	"github.com/quill-lang/quill/internal/bignum"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

func digitValue(b byte) int64 {
	switch {
	case b >= '0' && b <= '9':
		return int64(b - '0')
	case b >= 'a' && b <= 'f':
		return int64(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int64(b-'A') + 10
	default:
		return -1
	}
}

// lexNumber implements the numeric literal lexer: optional sign, radix
// prefix detection, integer-part accumulation into a big.Int, optional
// fractional part accumulated into an apd.Decimal, then sign application
// and Int/Real selection.
func (l *Lexer) lexNumber(start source.Position, diags *diag.Bag) token.Token {
	negative := false
	if b, ok := l.r.Peek(1); ok && (b == '+' || b == '-') {
		negative = b == '-'
		l.r.Drop()
	}

	radix := int64(10)
	hadRadixPrefix := false
	if b1, ok := l.r.Peek(1); ok && b1 == '0' {
		if b2, ok2 := l.r.Peek(2); ok2 {
			switch b2 {
			case 'b':
				radix = 2
				hadRadixPrefix = true
				l.r.Drop()
				l.r.Drop()
			case 'o':
				radix = 8
				hadRadixPrefix = true
				l.r.Drop()
				l.r.Drop()
			case 'd':
				radix = 10
				hadRadixPrefix = true
				l.r.Drop()
				l.r.Drop()
			case 'x':
				radix = 16
				hadRadixPrefix = true
				l.r.Drop()
				l.r.Drop()
			default:
				if isASCIIDigit(b2) {
					radix = 10
				} else if isASCIILetter(b2) {
					diags.Errorf(diag.CodeNumLiteralUnrecognizedRadixCode, l.r.PeekSpan(),
						"unrecognized radix code %q", b2)
					radix = 10
				} else {
					radix = 10
				}
			}
		}
	}

	acc := bignum.NewInt()
	sawDigit := false
	for {
		b, ok := l.r.Peek(1)
		if !ok {
			break
		}
		if b == '_' {
			l.r.Drop()
			continue
		}
		dv := digitValue(b)
		if dv < 0 {
			break
		}
		digitSpan := l.r.PeekSpan()
		l.r.Drop()
		sawDigit = true
		if dv >= radix {
			diags.Errorf(diag.CodeNumLiteralDigitExceedsRadix, digitSpan,
				"numeric literal digit %q exceeds radix %d", b, radix)
			dv = radix - 1
		}
		bignum.AccumulateDigit(acc, radix, dv)
	}
	if hadRadixPrefix && !sawDigit {
		diags.Errorf(diag.CodeNumLiteralMissingDigits, l.r.PeekSpan(),
			"radix prefix not followed by any digits")
	}

	hasFraction := false
	fractional := bignum.DecimalFromInt(acc)
	if b, ok := l.r.Peek(1); ok && b == '.' {
		if nb, ok2 := l.r.Peek(2); !ok2 || !isHexDigit(nb) {
			// A lone trailing '.' is not a fractional part (e.g. field
			// access immediately follows an integer literal); leave it
			// for the punctuation lexer.
		} else {
			hasFraction = true
			l.r.Drop() // consume '.'
			place := bignum.One()
			for {
				b, ok := l.r.Peek(1)
				if !ok {
					break
				}
				if b == '_' {
					l.r.Drop()
					continue
				}
				dv := digitValue(b)
				if dv < 0 {
					break
				}
				digitSpan := l.r.PeekSpan()
				l.r.Drop()
				if dv >= radix {
					diags.Errorf(diag.CodeNumLiteralDigitExceedsRadix, digitSpan,
						"numeric literal digit %q exceeds radix %d", b, radix)
					dv = radix - 1
				}
				fractional, place = bignum.AccumulateFractionalDigit(fractional, place, radix, dv)
			}
			fractional = bignum.StripTrailingZeros(fractional)
		}
	}

	if negative && hasFraction {
		// Real literals carry their own sign (apd.Decimal.Negative); Int
		// literals keep sign and magnitude separate, so the magnitude in
		// acc is left untouched and IntNegative is reported alongside it
		// instead.
		bignum.NegateDecimal(fractional)
	}

	span := l.spanFrom(start)
	if hasFraction {
		return token.Token{Kind: token.REAL, Real: fractional, Span: span}
	}
	return token.Token{Kind: token.INT, Int: acc, IntNegative: negative, Span: span}
}
