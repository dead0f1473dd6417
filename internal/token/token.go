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

// Package token defines the lexer's output: a tagged-union Token type
// flattened into a single Kind enum with small per-kind payload fields
// instead of a family of hand-unrolled Go types, one per operator and
// literal shape.
package token

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/quill-lang/quill/internal/source"
)

// Kind identifies the variant of a Token.
type Kind int

const (
	// ILLEGAL is the zero value and is never produced by the lexer.
	ILLEGAL Kind = iota

	EOF  // end of input
	NONE // lex error sentinel: always paired with a diagnostic already recorded

	IDENT    // identifier
	LABEL    // 'label
	METADATA // #meta / $meta
	INT      // integer literal
	REAL     // real (fractional) literal
	STRING   // string literal
	BOOLLIT  // true / false
	NILLIT   // nil
	NEVERLIT // never

	keywordBeg
	LOOP
	MATCH
	NEW
	DEF
	RET
	DEFER
	FN
	HAS
	LET
	TYPE
	MOD
	USE
	AND
	OR
	XOR
	NOT
	keywordEnd

	punctBeg
	ADD         // +
	SUB         // -
	MUL         // *
	IDIV        // div
	FDIV        // /
	IREM        // rem
	FREM        // %
	ASSIGN      // =
	ASSIGNADD   // +=
	ASSIGNSUB   // -=
	ASSIGNMUL   // *=
	ASSIGNFDIV  // /=
	ASSIGNFREM  // %=
	EQ          // ==
	NEQ         // !=
	LSS         // <
	LEQ         // <=
	GTR         // >
	GEQ         // >=
	REF         // &
	DEREF       // @
	PARENLEFT   // (
	PARENRIGHT  // )
	BRACELEFT   // {
	BRACERIGHT  // }
	BRACKLEFT   // [
	BRACKRIGHT  // ]
	ARROW       // =>
	PIPEOP      // ->
	PIPEFWD     // |>
	PIPEBWD     // <|
	COMPOSE     // >>
	FIELDACCESS // .
	MODRES      // ::
	CONSTRAIN   // :
	DEFINE      // :=
	COMMA       // ,
	SUM         // |
	RANGE       // ..
	RANGEINCL   // ..=
	UNDERSCORE  // _
	BACKSLASH   // \
	SEMI        // ;
	AT          // at (pattern value-restriction anchor)
	punctEnd
)

// String renders the syntactic spelling or a debug name for k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<invalid>"
}

// IsKeyword reports whether k is one of the closed keyword set.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsPunct reports whether k is one of the closed punctuator set.
func (k Kind) IsPunct() bool { return k > punctBeg && k < punctEnd }

// Token is the lexer's unit of output. Every variant carries Span; the
// remaining fields are populated according to Kind, mirroring a payload
// union. A zero Token with Kind == NONE carries no payload and is always
// paired with at least one Error diagnostic already emitted by the
// producer.
type Token struct {
	Kind Kind
	Span source.Span

	// IDENT, LABEL, STRING text payload; also the raw captured text for
	// METADATA tokens.
	Text string

	// METADATA
	Significant bool

	// INT: magnitude and sign are kept separate because the lexer
	// accumulates the unsigned magnitude digit by digit and applies the
	// sign only once accumulation is complete.
	Int         *big.Int
	IntNegative bool

	// REAL
	Real *apd.Decimal

	// BOOLLIT
	Bool bool
}

// IsLiteral reports whether t is an identifier, label, metadata, or
// literal token (mirroring cue/token's IsLiteral).
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IDENT, LABEL, METADATA, INT, REAL, STRING, BOOLLIT, NILLIT, NEVERLIT:
		return true
	default:
		return false
	}
}

var kindNames = map[Kind]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	NONE:     "NONE",
	IDENT:    "IDENT",
	LABEL:    "LABEL",
	METADATA: "METADATA",
	INT:      "INT",
	REAL:     "REAL",
	STRING:   "STRING",
	BOOLLIT:  "BOOL",
	NILLIT:   "nil",
	NEVERLIT: "never",

	LOOP:  "loop",
	MATCH: "match",
	NEW:   "new",
	DEF:   "def",
	RET:   "ret",
	DEFER: "defer",
	FN:    "fn",
	HAS:   "has",
	LET:   "let",
	TYPE:  "type",
	MOD:   "mod",
	USE:   "use",
	AND:   "and",
	OR:    "or",
	XOR:   "xor",
	NOT:   "not",

	ADD:         "+",
	SUB:         "-",
	MUL:         "*",
	IDIV:        "div",
	FDIV:        "/",
	IREM:        "rem",
	FREM:        "%",
	ASSIGN:      "=",
	ASSIGNADD:   "+=",
	ASSIGNSUB:   "-=",
	ASSIGNMUL:   "*=",
	ASSIGNFDIV:  "/=",
	ASSIGNFREM:  "%=",
	EQ:          "==",
	NEQ:         "!=",
	LSS:         "<",
	LEQ:         "<=",
	GTR:         ">",
	GEQ:         ">=",
	REF:         "&",
	DEREF:       "@",
	PARENLEFT:   "(",
	PARENRIGHT:  ")",
	BRACELEFT:   "{",
	BRACERIGHT:  "}",
	BRACKLEFT:   "[",
	BRACKRIGHT:  "]",
	ARROW:       "=>",
	PIPEOP:      "->",
	PIPEFWD:     "|>",
	PIPEBWD:     "<|",
	COMPOSE:     ">>",
	FIELDACCESS: ".",
	MODRES:      "::",
	CONSTRAIN:   ":",
	DEFINE:      ":=",
	COMMA:       ",",
	SUM:         "|",
	RANGE:       "..",
	RANGEINCL:   "..=",
	UNDERSCORE:  "_",
	BACKSLASH:   "\\",
	SEMI:        ";",
	AT:          "at",
}
