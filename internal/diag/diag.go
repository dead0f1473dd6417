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

// Package diag implements an append-only, severity-tagged diagnostic
// channel: every later stage (lexer, parser, lowerer) reports errors
// through a *Bag passed in by the caller rather than by returning an
// error value.
package diag

import (
	"fmt"
	"strings"

	"github.com/kr/text"

	"github.com/quill-lang/quill/internal/source"
)

// Severity is one of the four levels a Diagnostic may carry.
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code names the concrete expected-construct failure a diagnostic reports:
// one code per shape of failure rather than a single generic "unexpected
// token" message, so every diagnostic names a concrete expected construct.
type Code int

const (
	CodeUnknown Code = iota

	// Lexical.
	CodeUnrecognizedCharacter
	CodeNumLiteralUnrecognizedRadixCode
	CodeNumLiteralDigitExceedsRadix
	CodeNumLiteralMissingDigits
	CodeStringLiteralUnterminated
	CodeStringLiteralUnrecognizedEscape
	CodeStringLiteralTruncatedUnicode
	CodeMetadataUnterminated

	// Syntactic.
	CodeExpectedIdentifier
	CodeExpectedOperand
	CodeExpectedDelimiter
	CodeExpectedColon
	CodeExpectedArrow
	CodeExpectedDefine
	CodeExpectedLabelOrColon
	CodeExpectedCaseOption
	CodeUnexpectedToken

	// Semantic / lowering.
	CodeUnresolvedLabel
	CodeInvalidPatternOperator
	CodeInvalidModuleAccess
	CodeExpectedCaseOptionShape
)

// Diagnostic is an immutable, append-only record. Children preserve the
// order in which they were attached.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Span     source.Span
	Message  string
	Children []Diagnostic
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", d.Severity, d.Span, d.Message)
	if len(d.Children) > 0 {
		var cb strings.Builder
		for i, c := range d.Children {
			if i > 0 {
				cb.WriteByte('\n')
			}
			cb.WriteString(c.String())
		}
		b.WriteByte('\n')
		b.WriteString(text.Indent(cb.String(), "  "))
	}
	return b.String()
}

// Bag is the append-only diagnostic channel. The zero value is ready to
// use. A Bag is owned by the caller of the lexer/parser/lowerer and passed
// in by reference; none of those stages retains it beyond the call.
type Bag struct {
	entries []Diagnostic
}

// Append records a new top-level diagnostic and returns a pointer to the
// stored slot so the caller can attach Children before anyone else reads
// the bag.
func (b *Bag) Append(severity Severity, code Code, span source.Span, msg string, args ...interface{}) *Diagnostic {
	b.entries = append(b.entries, Diagnostic{
		Severity: severity,
		Code:     code,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
	})
	return &b.entries[len(b.entries)-1]
}

// Errorf is shorthand for Append(Error, ...).
func (b *Bag) Errorf(code Code, span source.Span, msg string, args ...interface{}) *Diagnostic {
	return b.Append(Error, code, span, msg, args...)
}

// AppendDiagnostic records an already-built Diagnostic (including any
// Children) verbatim. It is used by callers that buffer diagnostics in a
// scratch Bag while speculating and only want to commit them once the
// speculation is confirmed, such as a parser's token lookahead queue.
func (b *Bag) AppendDiagnostic(d Diagnostic) {
	b.entries = append(b.entries, d)
}

// Entries returns the diagnostics recorded so far, in insertion order. The
// returned slice must not be mutated by the caller.
func (b *Bag) Entries() []Diagnostic {
	return b.entries
}

// Len reports how many top-level diagnostics have been appended.
func (b *Bag) Len() int {
	return len(b.entries)
}

// HasErrors reports whether any Error-severity diagnostic (at any depth)
// was recorded. A caller uses this to decide whether translation failed
// overall even though every stage still produced a well-formed tree.
func (b *Bag) HasErrors() bool {
	for _, d := range b.entries {
		if hasError(d) {
			return true
		}
	}
	return false
}

func hasError(d Diagnostic) bool {
	if d.Severity == Error {
		return true
	}
	for _, c := range d.Children {
		if hasError(c) {
			return true
		}
	}
	return false
}

func (b *Bag) String() string {
	var sb strings.Builder
	for i, d := range b.entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
