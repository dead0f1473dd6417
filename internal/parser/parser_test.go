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
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// requireNoDiags fails the test with a full pretty-printed dump of diags'
// entries, rather than just a count, so a broken parse is diagnosable
// straight from the test output.
func requireNoDiags(t *testing.T, diags *diag.Bag) {
	t.Helper()
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", pretty.Sprint(diags.Entries()))
	}
}

func parseOneExpr(t *testing.T, src string) (*ast.Expr, *diag.Bag) {
	t.Helper()
	var diags diag.Bag
	p := New(lexer.NewByteReader([]byte(src)), &diags)
	stmt, more := p.NextStmt()
	require.True(t, more)
	require.Equal(t, ast.StmtExpr, stmt.Kind)
	return stmt.Expr, &diags
}

func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	e, diags := parseOneExpr(t, "1 + 2 * 3")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpAdd, e.Op)
	require.Equal(t, ast.ExprIntLit, e.Left.Kind)
	assert.Equal(t, "1", e.Left.Int.String())

	mul := e.Right
	require.Equal(t, ast.ExprBinaryOp, mul.Kind)
	require.Equal(t, ast.OpMul, mul.Op)
	assert.Equal(t, "2", mul.Left.Int.String())
	assert.Equal(t, "3", mul.Right.Int.String())
}

func TestDivAndRemParseAsLevel5BinaryOps(t *testing.T) {
	e, diags := parseOneExpr(t, "10 div 3")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpIDiv, e.Op)
	assert.Equal(t, "10", e.Left.Int.String())
	assert.Equal(t, "3", e.Right.Int.String())

	e, diags = parseOneExpr(t, "10 rem 3")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpIRem, e.Op)
}

// TestSameLevelOperatorsAreRightAssociative locks in the right-associative
// reading of same-level infix operators: "1 - 2 - 3" parses as
// Sub(1, Sub(2, 3)) rather than the left-associative Sub(Sub(1, 2), 3) a
// reader might otherwise expect from '-'.
func TestSameLevelOperatorsAreRightAssociative(t *testing.T) {
	e, diags := parseOneExpr(t, "1 - 2 - 3")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpSub, e.Op)
	assert.Equal(t, "1", e.Left.Int.String())

	inner := e.Right
	require.Equal(t, ast.ExprBinaryOp, inner.Kind)
	require.Equal(t, ast.OpSub, inner.Op)
	assert.Equal(t, "2", inner.Left.Int.String())
	assert.Equal(t, "3", inner.Right.Int.String())
}

func TestPrefixOperatorsAreRightAssociative(t *testing.T) {
	e, diags := parseOneExpr(t, "- - 1")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpNeg, e.Op)
	require.Equal(t, ast.ExprBinaryOp, e.Right.Kind)
	assert.Equal(t, ast.OpNeg, e.Right.Op)
	assert.Equal(t, "1", e.Right.Right.Int.String())
}

func TestPostfixRefAndDerefChain(t *testing.T) {
	e, diags := parseOneExpr(t, "x&@")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	assert.Equal(t, ast.OpDeref, e.Op)
	require.Equal(t, ast.ExprBinaryOp, e.Left.Kind)
	assert.Equal(t, ast.OpRef, e.Left.Op)
	assert.Equal(t, "x", e.Left.Left.Name)
}

func TestApplyIsJuxtaposition(t *testing.T) {
	e, diags := parseOneExpr(t, "f(1)(2)")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpApply, e.Op)
	assert.Equal(t, "2", e.Right.Int.String())

	inner := e.Left
	require.Equal(t, ast.ExprBinaryOp, inner.Kind)
	require.Equal(t, ast.OpApply, inner.Op)
	assert.Equal(t, "f", inner.Left.Name)
	assert.Equal(t, "1", inner.Right.Int.String())
}

func TestFnLiteralBindsPatternToBody(t *testing.T) {
	e, diags := parseOneExpr(t, "fn x => x")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprBinaryOp, e.Kind)
	require.Equal(t, ast.OpDefun, e.Op)
	require.Equal(t, ast.ExprPat, e.Left.Kind)
	require.Equal(t, ast.ExprBind, e.Left.Inner.Kind)
	assert.Equal(t, "x", e.Left.Inner.Name)
	assert.Equal(t, ast.ExprReference, e.Right.Kind)
}

func TestMatchBuildsRightLeaningCaseOptionTree(t *testing.T) {
	e, diags := parseOneExpr(t, "x match { | a => 1 | b => 2 }")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprCaseOf, e.Kind)
	require.NotNil(t, e.Cases)

	first := e.Cases
	require.Equal(t, ast.OpCaseOption, first.Op)
	require.Equal(t, ast.OpDefun, first.Left.Op)
	require.Equal(t, ast.ExprPat, first.Left.Left.Kind)
	assert.Equal(t, "a", first.Left.Left.Inner.Name)
	assert.Equal(t, "1", first.Left.Right.Int.String())

	second := first.Right
	require.Equal(t, ast.OpDefun, second.Op)
	assert.Equal(t, "b", second.Left.Inner.Name)
	assert.Equal(t, "2", second.Right.Int.String())
}

func TestMatchCaseResultBareLabelIsValueNotScope(t *testing.T) {
	e, diags := parseOneExpr(t, "x match { | 0 => 'z | _ => 'o }")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprCaseOf, e.Kind)

	first := e.Cases
	require.Equal(t, ast.OpDefun, first.Left.Op)
	result := first.Left.Right
	require.Equal(t, ast.ExprLabel, result.Kind)
	assert.Equal(t, "z", result.Label)
	assert.Nil(t, result.Body)

	second := first.Right
	result = second.Right
	require.Equal(t, ast.ExprLabel, result.Kind)
	assert.Equal(t, "o", result.Label)
	assert.Nil(t, result.Body)
}

func TestSemicolonSeparatesStatementsInsideBraceBody(t *testing.T) {
	e, diags := parseOneExpr(t, "'outer { defer 'outer (print 1); ret 'outer 2 }")
	requireNoDiags(t, diags)
	require.Equal(t, ast.ExprLabel, e.Kind)
	require.NotNil(t, e.Body)
	require.Equal(t, ast.ExprStruct, e.Body.Kind)

	require.Equal(t, ast.OpCons, e.Body.Body.Op)
	assert.Equal(t, ast.ExprDefer, e.Body.Body.Left.Kind)
	assert.Equal(t, ast.ExprRet, e.Body.Body.Right.Kind)
}

func TestMissingClosingParenReportsDiagnosticAndRecovers(t *testing.T) {
	e, diags := parseOneExpr(t, "(1")
	assert.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeExpectedDelimiter, diags.Entries()[0].Code)
	require.Equal(t, ast.ExprGroup, e.Kind)
	assert.Equal(t, "1", e.Inner.Int.String())
}

func TestLetStmtParsesPatternAndValue(t *testing.T) {
	var diags diag.Bag
	p := New(lexer.NewByteReader([]byte("let x := 1")), &diags)
	stmt, more := p.NextStmt()
	require.True(t, more)
	requireNoDiags(t, &diags)
	require.Equal(t, ast.StmtAssign, stmt.Kind)
	require.Equal(t, ast.ExprPat, stmt.Pat.Kind)
	assert.Equal(t, "x", stmt.Pat.Inner.Name)
	assert.Equal(t, "1", stmt.Val.Int.String())
}

func TestMultipleStatementsAndEOF(t *testing.T) {
	var diags diag.Bag
	p := New(lexer.NewByteReader([]byte("let x := 1\nlet y := 2")), &diags)

	_, more := p.NextStmt()
	require.True(t, more)
	_, more = p.NextStmt()
	require.True(t, more)
	_, more = p.NextStmt()
	require.False(t, more)
}
