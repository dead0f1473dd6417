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

import "github.com/quill-lang/quill/internal/source"

// Reader abstracts the byte-level cursor over a source already held in
// memory, exposing bounded peek-ahead and a line/column position. The
// lexer never blocks on it.
type Reader interface {
	// Peek returns the byte n positions ahead of the cursor (n in [1,4])
	// without consuming it, and false if that position is past the end
	// of input.
	Peek(n int) (byte, bool)
	// Read returns the byte at the cursor and advances it, or false at
	// end of input.
	Read() (byte, bool)
	// Drop advances the cursor by one byte without returning it. It is a
	// no-op at end of input.
	Drop()
	// Position reports the cursor's current line/column.
	Position() source.Position
	// PeekSpan returns the zero-width span of the next byte the cursor
	// will yield.
	PeekSpan() source.Span
}

// ByteReader is the reference Reader implementation over an in-memory
// byte slice. Lines are 1-based and advance on '\n'; columns are 1-based
// and reset to 1 on a line advance.
type ByteReader struct {
	buf    []byte
	offset int
	line   uint32
	column uint32
}

// NewByteReader wraps buf for lexing. buf is not copied or mutated.
func NewByteReader(buf []byte) *ByteReader {
	return &ByteReader{buf: buf, offset: 0, line: 1, column: 1}
}

func (r *ByteReader) Peek(n int) (byte, bool) {
	i := r.offset + n - 1
	if i < 0 || i >= len(r.buf) {
		return 0, false
	}
	return r.buf[i], true
}

func (r *ByteReader) Read() (byte, bool) {
	b, ok := r.Peek(1)
	if !ok {
		return 0, false
	}
	r.advance(b)
	return b, true
}

func (r *ByteReader) Drop() {
	b, ok := r.Peek(1)
	if !ok {
		return
	}
	r.advance(b)
}

func (r *ByteReader) advance(b byte) {
	r.offset++
	if b == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
}

func (r *ByteReader) Position() source.Position {
	return source.Position{Line: r.line, Column: r.column}
}

func (r *ByteReader) PeekSpan() source.Span {
	start := r.Position()
	return source.Span{Start: start, End: start}
}
