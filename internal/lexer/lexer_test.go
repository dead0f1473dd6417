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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	var diags diag.Bag
	l := New(NewByteReader([]byte(src)))
	var toks []token.Token
	for {
		tok := l.Next(&diags)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, &diags
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

// assertKinds compares the lexed token kinds against want, reporting a
// structured diff (rather than a before/after dump) on mismatch.
func assertKinds(t *testing.T, want []token.Kind, toks []token.Token) {
	t.Helper()
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexIdentAndKeyword(t *testing.T) {
	toks, diags := lexAll(t, "let x fn")
	require.Zero(t, diags.Len())
	assertKinds(t, []token.Kind{token.LET, token.IDENT, token.FN, token.EOF}, toks)
	assert.Equal(t, "x", toks[1].Text)
}

func TestLexDivAndRemKeywords(t *testing.T) {
	toks, diags := lexAll(t, "a div b rem c")
	require.Zero(t, diags.Len())
	assertKinds(t, []token.Kind{
		token.IDENT, token.IDIV, token.IDENT, token.IREM, token.IDENT, token.EOF,
	}, toks)
}

func TestLexBoolAndNilAndNever(t *testing.T) {
	toks, diags := lexAll(t, "true false nil never")
	require.Zero(t, diags.Len())
	assertKinds(t, []token.Kind{token.BOOLLIT, token.BOOLLIT, token.NILLIT, token.NEVERLIT, token.EOF}, toks)
	assert.True(t, toks[0].Bool)
	assert.False(t, toks[1].Bool)
}

func TestLexDecimalInt(t *testing.T) {
	toks, diags := lexAll(t, "123")
	require.Zero(t, diags.Len())
	require.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Int.String())
	assert.False(t, toks[0].IntNegative)
}

func TestLexRadixInt(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"0b101", "5"},
		{"0o17", "15"},
		{"0xff", "255"},
		{"0d42", "42"},
	}
	for _, c := range cases {
		toks, diags := lexAll(t, c.src)
		require.Zerof(t, diags.Len(), "unexpected diagnostics for %q: %v", c.src, diags)
		require.Equal(t, token.INT, toks[0].Kind)
		assert.Equal(t, c.want, toks[0].Int.String(), "lexing %q", c.src)
	}
}

func TestLexNegativeInt(t *testing.T) {
	toks, diags := lexAll(t, "-5")
	require.Zero(t, diags.Len())
	require.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, "5", toks[0].Int.String())
	assert.True(t, toks[0].IntNegative)
}

func TestLexReal(t *testing.T) {
	toks, diags := lexAll(t, "3.25")
	require.Zero(t, diags.Len())
	require.Equal(t, token.REAL, toks[0].Kind)
	assert.Equal(t, "3.25", toks[0].Real.String())
}

func TestLexRadixDigitExceedsRadixReportsDiagnostic(t *testing.T) {
	_, diags := lexAll(t, "0b12")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeNumLiteralDigitExceedsRadix, diags.Entries()[0].Code)
}

func TestLexRadixPrefixWithNoDigitsReportsDiagnostic(t *testing.T) {
	toks, diags := lexAll(t, "0xG")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeNumLiteralMissingDigits, diags.Entries()[0].Code)
	require.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, "0", toks[0].Int.String())
}

func TestLexStringEscapes(t *testing.T) {
	toks, diags := lexAll(t, `"a\nb\u{41}\"\\"`)
	require.Zero(t, diags.Len())
	require.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nbA\"\\", toks[0].Text)
}

func TestLexUnterminatedStringReportsDiagnostic(t *testing.T) {
	toks, diags := lexAll(t, `"abc`)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeStringLiteralUnterminated, diags.Entries()[0].Code)
	assert.Equal(t, token.NONE, toks[0].Kind)
}

func TestLexUnrecognizedEscapeReportsDiagnosticButContinues(t *testing.T) {
	toks, diags := lexAll(t, `"a\qb"`)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeStringLiteralUnrecognizedEscape, diags.Entries()[0].Code)
	require.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "ab", toks[0].Text)
}

func TestLexLabel(t *testing.T) {
	toks, diags := lexAll(t, "'loop_1")
	require.Zero(t, diags.Len())
	require.Equal(t, token.LABEL, toks[0].Kind)
	assert.Equal(t, "loop_1", toks[0].Text)
}

func TestLexSignificantVsPlainMetadata(t *testing.T) {
	toks, diags := lexAll(t, "#plain\n$significant_word")
	require.Zero(t, diags.Len())
	require.Len(t, toks, 3) // two METADATA tokens, then EOF
	assert.Equal(t, token.METADATA, toks[0].Kind)
	assert.False(t, toks[0].Significant)
	assert.Equal(t, "plain", toks[0].Text)
	assert.Equal(t, token.METADATA, toks[1].Kind)
	assert.True(t, toks[1].Significant)
	assert.Equal(t, "significant_word", toks[1].Text)
}

func TestLexNestedBlockMetadata(t *testing.T) {
	toks, diags := lexAll(t, "#{ outer ${ inner }$ }#")
	require.Zero(t, diags.Len())
	require.Equal(t, token.METADATA, toks[0].Kind)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestLexUnterminatedBlockMetadataReportsDiagnostic(t *testing.T) {
	_, diags := lexAll(t, "#{ unterminated")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeMetadataUnterminated, diags.Entries()[0].Code)
}

func TestLexPunctuationLongestMatch(t *testing.T) {
	toks, diags := lexAll(t, "..= .. : :=")
	require.Zero(t, diags.Len())
	assertKinds(t, []token.Kind{token.RANGEINCL, token.RANGE, token.CONSTRAIN, token.DEFINE, token.EOF}, toks)
}

func TestLexUnrecognizedCharacterReportsDiagnostic(t *testing.T) {
	toks, diags := lexAll(t, "`")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeUnrecognizedCharacter, diags.Entries()[0].Code)
	assert.Equal(t, token.NONE, toks[0].Kind)
}
