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

package parser

import (
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// slot pairs a lookahead token with the diagnostics that were emitted
// while lexing it. The diagnostics only reach the live bag once the slot
// is actually consumed by next — speculative peeking must never leak a
// diagnostic for a token the parser ends up discarding.
type slot struct {
	tok   token.Token
	diags []diag.Diagnostic
}

// queue is the parser's FIFO of lookahead tokens with a paired FIFO of
// per-token diagnostics.
type queue struct {
	lex     *lexer.Lexer
	diags   *diag.Bag
	slots   []slot
	lastEnd source.Position
}

func newQueue(lex *lexer.Lexer, diags *diag.Bag) *queue {
	return &queue{lex: lex, diags: diags}
}

// fill pulls raw tokens from the lexer until the queue holds at least n
// slots.
func (q *queue) fill(n int) {
	for len(q.slots) < n {
		var local diag.Bag
		tok := q.lex.Next(&local)
		q.slots = append(q.slots, slot{tok: tok, diags: local.Entries()})
	}
}

// peekNth returns the k-th lookahead token (k >= 1) without consuming it.
func (q *queue) peekNth(k int) token.Token {
	q.fill(k)
	return q.slots[k-1].tok
}

// next pops the head token, appending its deferred diagnostics to the
// live diagnostic channel, and returns it.
func (q *queue) next() token.Token {
	q.fill(1)
	s := q.slots[0]
	q.slots = q.slots[1:]
	for _, d := range s.diags {
		q.diags.AppendDiagnostic(d)
	}
	q.lastEnd = s.tok.Span.End
	return s.tok
}

// peekPastComments returns the first non-METADATA token in lookahead
// without consuming anything, so the binary-operator cascade does not
// mistake attached documentation for the absence of an operator.
func (q *queue) peekPastComments() token.Token {
	k := 1
	for {
		t := q.peekNth(k)
		if t.Kind != token.METADATA {
			return t
		}
		k++
	}
}

// absorbMetadata consumes leading METADATA tokens from the head of the
// queue, returning the text of the significant ($) ones in order. It is
// called before every expression and before committing to a binary
// operator found past comments.
func (q *queue) absorbMetadata() []string {
	var out []string
	for q.peekNth(1).Kind == token.METADATA {
		tok := q.next()
		if tok.Significant {
			out = append(out, tok.Text)
		}
	}
	return out
}
