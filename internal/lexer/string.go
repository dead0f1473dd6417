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
	"unicode/utf8"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// lexString implements the string literal lexer and its byte-by-byte
// state machine {Text, Backslash, Unicode}: Text transitions to Backslash
// on '\\' and emits on '"'; Backslash recognizes a fixed escape set and
// returns to Text, or transitions to Unicode on 'u'; EOF from any
// non-Text state (and EOF in Text before the closing quote) terminates
// with a diagnostic and a NONE token whose span covers what was consumed.
func (l *Lexer) lexString(start source.Position, diags *diag.Bag) token.Token {
	l.r.Drop() // opening quote

	var out []byte
	for {
		b, ok := l.r.Peek(1)
		if !ok {
			span := l.spanFrom(start)
			diags.Errorf(diag.CodeStringLiteralUnterminated, span, "unterminated string literal")
			return token.Token{Kind: token.NONE, Span: span}
		}

		if b == '"' {
			l.r.Drop()
			return token.Token{Kind: token.STRING, Text: string(out), Span: l.spanFrom(start)}
		}

		if b != '\\' {
			l.r.Drop()
			out = append(out, b)
			continue
		}

		// Backslash state.
		l.r.Drop()
		eb, ok := l.r.Peek(1)
		if !ok {
			span := l.spanFrom(start)
			diags.Errorf(diag.CodeStringLiteralUnterminated, span, "unterminated string literal")
			return token.Token{Kind: token.NONE, Span: span}
		}

		switch eb {
		case 'n':
			out = append(out, '\n')
			l.r.Drop()
		case 'r':
			out = append(out, '\r')
			l.r.Drop()
		case 't':
			out = append(out, '\t')
			l.r.Drop()
		case 'b':
			out = append(out, '\b')
			l.r.Drop()
		case 'f':
			out = append(out, '\f')
			l.r.Drop()
		case '\\':
			out = append(out, '\\')
			l.r.Drop()
		case '"':
			out = append(out, '"')
			l.r.Drop()
		case '/':
			out = append(out, '/')
			l.r.Drop()
		case 'u':
			l.r.Drop() // consume 'u'
			var ok2 bool
			out, ok2 = l.lexUnicodeEscape(out, diags, start)
			if !ok2 {
				span := l.spanFrom(start)
				return token.Token{Kind: token.NONE, Span: span}
			}
		default:
			escSpan := l.r.PeekSpan()
			diags.Errorf(diag.CodeStringLiteralUnrecognizedEscape, escSpan, "unrecognized escape sequence '\\%c'", eb)
			l.r.Drop()
		}
	}
}

// lexUnicodeEscape consumes a \u{HHHH} escape (Unicode state), appending
// its UTF-8 encoding to out. It returns ok=false if EOF was hit before the
// escape closed.
func (l *Lexer) lexUnicodeEscape(out []byte, diags *diag.Bag, start source.Position) ([]byte, bool) {
	if b, ok := l.r.Peek(1); !ok || b != '{' {
		span := l.r.PeekSpan()
		diags.Errorf(diag.CodeStringLiteralUnrecognizedEscape, span, "malformed unicode escape: expected '{'")
		return out, true
	}
	l.r.Drop() // consume '{'

	var code int64
	digits := 0
	for {
		b, ok := l.r.Peek(1)
		if !ok {
			span := l.spanFrom(start)
			diags.Errorf(diag.CodeStringLiteralTruncatedUnicode, span, "unterminated unicode escape")
			return out, false
		}
		if b == '}' {
			l.r.Drop()
			break
		}
		if !isHexDigit(b) {
			span := l.r.PeekSpan()
			diags.Errorf(diag.CodeStringLiteralTruncatedUnicode, span, "invalid hex digit %q in unicode escape", b)
			l.r.Drop()
			continue
		}
		code = code*16 + digitValue(b)
		digits++
		l.r.Drop()
	}

	if digits == 0 || code > utf8.MaxRune {
		span := l.spanFrom(start)
		diags.Errorf(diag.CodeStringLiteralTruncatedUnicode, span, "invalid unicode code point")
		return out, true
	}

	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], rune(code))
	out = append(out, buf[:n]...)
	return out, true
}
