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

// Package source holds the position and span types shared by every later
// stage of the front end. It has no dependencies on lexer, parser, or HIR
// and is the leaf of the dependency graph.
package source

import "fmt"

// Position is a one-based line/column pair into a source file.
type Position struct {
	Line   uint32
	Column uint32
}

// NoPos is the zero value of Position. It is never a valid position within
// a real source file since lines and columns are one-based.
var NoPos = Position{}

// IsValid reports whether p refers to an actual position.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p sorts strictly before q in line/column order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span is a half-open [Start, End) source range. Start and End are
// byte-monotonic along the stream that produced them: Start never sorts
// after End.
type Span struct {
	Start Position
	End   Position
}

// NoSpan is the zero value of Span.
var NoSpan = Span{}

// IsValid reports whether both endpoints of s are valid positions.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Covers reports whether s fully contains o: o.Start is not before s.Start
// and o.End is not after s.End. Sentinel (zero-width, equal-endpoint) spans
// trivially cover themselves.
func (s Span) Covers(o Span) bool {
	return !o.Start.Before(s.Start) && !s.End.Before(o.End)
}

// Join returns the smallest span covering both s and o. A zero Span on
// either side is ignored so callers can fold spans incrementally starting
// from NoSpan.
func Join(s, o Span) Span {
	if s == NoSpan {
		return o
	}
	if o == NoSpan {
		return s
	}
	start, end := s.Start, s.End
	if o.Start.Before(start) {
		start = o.Start
	}
	if end.Before(o.End) {
		end = o.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
