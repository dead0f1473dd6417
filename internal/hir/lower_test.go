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

package hir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
)

func lowerOneStmt(t *testing.T, src string) (*Expr, *diag.Bag) {
	t.Helper()
	var diags diag.Bag
	p := parser.New(lexer.NewByteReader([]byte(src)), &diags)
	stmt, more := p.NextStmt()
	require.True(t, more)
	l := New(&diags)
	return l.LowerStmt(stmt), &diags
}

func TestLowerAddDesugarsToApplyApplyReference(t *testing.T) {
	e, diags := lowerOneStmt(t, "1 + 2")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprApply, e.Kind)
	require.Equal(t, ExprApply, e.Fn.Kind)
	require.Equal(t, ExprReference, e.Fn.Fn.Kind)
	assert.Equal(t, "+", e.Fn.Fn.Name)
	assert.Equal(t, "1", e.Fn.Arg.Int.String())
	assert.Equal(t, "2", e.Arg.Int.String())
}

func TestLowerDivAndRemDesugarToReferenceTable(t *testing.T) {
	e, diags := lowerOneStmt(t, "10 div 3")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprApply, e.Kind)
	assert.Equal(t, "div", e.Fn.Fn.Name)

	e, diags = lowerOneStmt(t, "10 rem 3")
	require.Zero(t, diags.Len())
	assert.Equal(t, "rem", e.Fn.Fn.Name)
}

func TestLowerHasSugarIsSingleArgumentApply(t *testing.T) {
	e, diags := lowerOneStmt(t, "has foo")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprApply, e.Kind)
	require.Equal(t, ExprReference, e.Fn.Kind)
	assert.Equal(t, "has", e.Fn.Name)
	assert.Equal(t, ExprReference, e.Arg.Kind)
	assert.Equal(t, "foo", e.Arg.Name)
}

// TestLowerTwoOperandInFallsThroughToReferenceTable constructs the
// two-operand shape of OpIn directly: the surface grammar only ever
// produces OpIn with Left == nil (the `has` sugar), but lowerBinaryOp
// still falls through to the generic reference-table desugaring when
// Left is populated, for any other front end feeding this pass a true
// membership test.
func TestLowerTwoOperandInFallsThroughToReferenceTable(t *testing.T) {
	var diags diag.Bag
	in := &ast.Expr{
		Kind:  ast.ExprBinaryOp,
		Op:    ast.OpIn,
		Left:  &ast.Expr{Kind: ast.ExprReference, Name: "x"},
		Right: &ast.Expr{Kind: ast.ExprReference, Name: "y"},
	}
	l := New(&diags)
	e := l.lowerExpr(in)
	require.Zero(t, diags.Len())
	require.Equal(t, ExprApply, e.Kind)
	require.Equal(t, ExprApply, e.Fn.Kind)
	assert.Equal(t, "in", e.Fn.Fn.Name)
	assert.Equal(t, "x", e.Fn.Arg.Name)
	assert.Equal(t, "y", e.Arg.Name)
}

func TestLowerStringLiteralBuildsReverseConsChain(t *testing.T) {
	e, diags := lowerOneStmt(t, `"ab"`)
	require.Zero(t, diags.Len())

	// Apply(Apply(Reference(","), Int('a')), Apply(Apply(Reference(","), Int('b')), Void))
	require.Equal(t, ExprApply, e.Kind)
	require.Equal(t, ExprApply, e.Fn.Kind)
	assert.Equal(t, ",", e.Fn.Fn.Name)
	assert.Equal(t, int64('a'), e.Fn.Arg.Int.Int64())

	tail := e.Arg
	require.Equal(t, ExprApply, tail.Kind)
	assert.Equal(t, int64('b'), tail.Fn.Arg.Int.Int64())
	assert.Equal(t, ExprVoid, tail.Arg.Kind)
}

func TestLowerLabelAndRetResolveToSameNode(t *testing.T) {
	e, diags := lowerOneStmt(t, "'done { ret 'done 1 }")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprLabel, e.Kind)

	body := e.Body
	require.Equal(t, ExprStructLiteral, body.Kind)
	ret := body.Struct
	require.Equal(t, ExprRet, ret.Kind)
	assert.Same(t, e, ret.Scope)
	assert.Equal(t, "1", ret.Body.Int.String())
}

func TestLowerUnresolvedLabelReportsDiagnosticAndNone(t *testing.T) {
	e, diags := lowerOneStmt(t, "ret 'missing 1")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeUnresolvedLabel, diags.Entries()[0].Code)
	assert.NotEmpty(t, diags.Entries()[0].Children)
	assert.Equal(t, ExprNone, e.Kind)
}

func TestLowerDeferQueuesOntoEnclosingLabel(t *testing.T) {
	e, diags := lowerOneStmt(t, "'l { defer 'l 1 }")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprLabel, e.Kind)
	require.Len(t, e.Defer, 1)
	assert.Equal(t, "1", e.Defer[0].Int.String())
	require.Equal(t, ExprStructLiteral, e.Body.Kind)
	assert.Equal(t, ExprVoid, e.Body.Struct.Kind)
}

func TestLowerCaseOfPreservesTextualOrder(t *testing.T) {
	e, diags := lowerOneStmt(t, "x match { | a => 1 | b => 2 }")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprCaseOf, e.Kind)
	require.Len(t, e.Cases, 2)
	assert.Equal(t, PatBind, e.Cases[0].Pattern.Kind)
	assert.Equal(t, "a", e.Cases[0].Pattern.Name)
	assert.Equal(t, "1", e.Cases[0].Result.Int.String())
	assert.Equal(t, "b", e.Cases[1].Pattern.Name)
	assert.Equal(t, "2", e.Cases[1].Result.Int.String())
}

// TestLowerCaseResultBareLabelLowersAsValue exercises the literal form of
// a match-case result written as a bare label rather than an identifier
// or int literal: the bare label must lower to an ExprLabel value node
// with no scope/defer machinery attached, not break the enclosing match.
func TestLowerCaseResultBareLabelLowersAsValue(t *testing.T) {
	e, diags := lowerOneStmt(t, "x match { | 0 => 'z | _ => 'o }")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprCaseOf, e.Kind)
	require.Len(t, e.Cases, 2)

	assert.Equal(t, ExprLabel, e.Cases[0].Result.Kind)
	assert.Equal(t, ExprVoid, e.Cases[0].Result.Body.Kind)
	assert.Empty(t, e.Cases[0].Result.Defer)

	assert.Equal(t, ExprLabel, e.Cases[1].Result.Kind)
	assert.Equal(t, ExprVoid, e.Cases[1].Result.Body.Kind)
}

// TestLowerSemicolonSeparatedDeferAndRet exercises a label body with two
// statements separated by ';' rather than the single-statement bodies the
// rest of this file's tests use.
func TestLowerSemicolonSeparatedDeferAndRet(t *testing.T) {
	e, diags := lowerOneStmt(t, "'outer { defer 'outer (print 1); ret 'outer 2 }")
	require.Zero(t, diags.Len())
	require.Equal(t, ExprLabel, e.Kind)
	require.Len(t, e.Defer, 1)
	require.Equal(t, ExprGroup, e.Defer[0].Kind)
	call := e.Defer[0].Inner
	require.Equal(t, ExprApply, call.Kind)
	assert.Equal(t, "print", call.Fn.Name)
	assert.Equal(t, "1", call.Arg.Int.String())

	require.Equal(t, ExprStructLiteral, e.Body.Kind)
	cons := e.Body.Struct
	require.Equal(t, ExprApply, cons.Kind)
	assert.Equal(t, ExprVoid, cons.Fn.Arg.Kind) // the defer statement's own value is Void
	ret := cons.Arg
	require.Equal(t, ExprRet, ret.Kind)
	assert.Same(t, e, ret.Scope)
	assert.Equal(t, "2", ret.Body.Int.String())
}

func TestLowerComparisonPatternBecomesRestriction(t *testing.T) {
	e, diags := lowerOneStmt(t, "x match { | < 10 => 1 }")
	require.Zero(t, diags.Len())
	require.Len(t, e.Cases, 1)
	pat := e.Cases[0].Pattern
	require.Equal(t, PatExpr, pat.Kind)
	require.Equal(t, ExprApply, pat.Wrapped.Kind)
	assert.Equal(t, "<", pat.Wrapped.Fn.Name)
	assert.Equal(t, "10", pat.Wrapped.Arg.Int.String())
}

func TestLowerConstrainPattern(t *testing.T) {
	var diags diag.Bag
	p := parser.New(lexer.NewByteReader([]byte("let x: y := 1")), &diags)
	stmt, more := p.NextStmt()
	require.True(t, more)
	require.Zero(t, diags.Len())

	l := New(&diags)
	e := l.LowerStmt(stmt)
	require.Equal(t, ExprAssign, e.Kind)
	require.Equal(t, PatConstrain, e.AssignPattern.Kind)
	assert.Equal(t, PatBind, e.AssignPattern.Value.Kind)
	assert.Equal(t, "x", e.AssignPattern.Value.Name)
	assert.Equal(t, ExprReference, e.AssignPattern.Type.Kind)
	assert.Equal(t, "y", e.AssignPattern.Type.Name)
}
