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

// Package lexer implements a streaming, diagnostic-emitting lexer: it
// consumes a Reader and produces one Token per call to Next, never
// blocking and never failing in-band (every anomaly becomes a diagnostic
// plus a forward-progress-guaranteeing Token).
package lexer

import (
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// Lexer holds a byte reader and nothing else. It has no internal
// concurrency and retains no pointer to the caller-owned diagnostic bag
// beyond a single Next call.
type Lexer struct {
	r Reader
}

// New wraps r for lexing.
func New(r Reader) *Lexer {
	return &Lexer{r: r}
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return isASCIILetter(b) || b == '_'
}

func isIdentCont(b byte) bool {
	return isASCIILetter(b) || isASCIIDigit(b) || b == '_'
}

func isHexDigit(b byte) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *Lexer) spanFrom(start source.Position) source.Span {
	return source.Span{Start: start, End: l.r.Position()}
}

// Next consumes whitespace then dispatches on the first remaining byte. It
// never returns without consuming at least one byte unless the input is
// already exhausted.
func (l *Lexer) Next(diags *diag.Bag) token.Token {
	l.skipWhitespace()

	start := l.r.Position()
	b, ok := l.r.Peek(1)
	if !ok {
		return token.Token{Kind: token.EOF, Span: l.spanFrom(start)}
	}

	switch {
	case isASCIILetter(b):
		return l.lexWord(start)
	case isASCIIDigit(b):
		return l.lexNumber(start, diags)
	case b == '\'':
		return l.lexLabel(start)
	case b == '"':
		return l.lexString(start, diags)
	case b == '#':
		return l.lexMetadata(start, diags, false)
	case b == '$':
		return l.lexMetadata(start, diags, true)
	case b == '_':
		if nb, ok := l.r.Peek(2); ok && isIdentCont(nb) {
			return l.lexWord(start)
		}
		l.r.Drop()
		return token.Token{Kind: token.UNDERSCORE, Span: l.spanFrom(start)}
	case (b == '+' || b == '-'):
		if nb, ok := l.r.Peek(2); ok && isASCIIDigit(nb) {
			return l.lexNumber(start, diags)
		}
		return l.lexPunct(start, diags)
	case b >= 0x20 && b < 0x7f:
		return l.lexPunct(start, diags)
	default:
		l.r.Drop()
		span := l.spanFrom(start)
		diags.Errorf(diag.CodeUnrecognizedCharacter, span, "unrecognized character %q", b)
		return token.Token{Kind: token.NONE, Span: span}
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.r.Peek(1)
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			l.r.Drop()
		default:
			return
		}
	}
}

// lexWord implements the identifier/word lexer: accumulate [A-Za-z0-9_]+,
// then check the literal constants true/false/nil/never, then the keyword
// set.
func (l *Lexer) lexWord(start source.Position) token.Token {
	var text []byte
	for {
		b, ok := l.r.Peek(1)
		if !ok || !isIdentCont(b) {
			break
		}
		l.r.Drop()
		text = append(text, b)
	}
	name := string(text)
	span := l.spanFrom(start)

	switch name {
	case "true":
		return token.Token{Kind: token.BOOLLIT, Bool: true, Span: span}
	case "false":
		return token.Token{Kind: token.BOOLLIT, Bool: false, Span: span}
	case "nil":
		return token.Token{Kind: token.NILLIT, Span: span}
	case "never":
		return token.Token{Kind: token.NEVERLIT, Span: span}
	}

	if kind, ok := token.Lookup(name); ok {
		return token.Token{Kind: kind, Span: span}
	}
	return token.Token{Kind: token.IDENT, Text: name, Span: span}
}

// lexLabel implements the label lexer: ' followed by [A-Za-z0-9_]*.
func (l *Lexer) lexLabel(start source.Position) token.Token {
	l.r.Drop() // consume '\''
	var text []byte
	for {
		b, ok := l.r.Peek(1)
		if !ok || !isIdentCont(b) {
			break
		}
		l.r.Drop()
		text = append(text, b)
	}
	return token.Token{Kind: token.LABEL, Text: string(text), Span: l.spanFrom(start)}
}

// lexPunct implements the punctuation lexer: a longest-match lookup
// against the closed punctuator table using up to
// token.MaxPunctLookahead() bytes of lookahead.
func (l *Lexer) lexPunct(start source.Position, diags *diag.Bag) token.Token {
	var buf [4]byte
	n := 0
	for ; n < token.MaxPunctLookahead() && n < len(buf); n++ {
		b, ok := l.r.Peek(n + 1)
		if !ok {
			break
		}
		buf[n] = b
	}

	kind, consumed := token.MatchPunct(buf[:n])
	if consumed == 0 {
		l.r.Drop()
		span := l.spanFrom(start)
		diags.Errorf(diag.CodeUnrecognizedCharacter, span, "unrecognized punctuation")
		return token.Token{Kind: token.NONE, Span: span}
	}
	for i := 0; i < consumed; i++ {
		l.r.Drop()
	}
	return token.Token{Kind: kind, Span: l.spanFrom(start)}
}
