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

// Package ast defines the concrete syntax tree the parser produces: a
// tagged-union Expr and a thin Stmt wrapper around it, both flattened into
// a single Kind enum plus payload fields rather than one Go type per
// surface form. Comments and operator handling in particular would
// otherwise balloon into dozens of near-identical node types.
package ast

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/quill-lang/quill/internal/source"
)

// Common is embedded in every node: its source span and any significant
// metadata segments attached immediately before it.
type Common struct {
	Span     source.Span
	Metadata []string
}

// Pos reports the node's starting position.
func (c Common) Pos() source.Position { return c.Span.Start }

// End reports the node's ending position.
func (c Common) End() source.Position { return c.Span.End }

// ExprKind identifies the variant of an Expr.
type ExprKind int

const (
	// ExprNone is the sentinel produced in place of a missing or
	// unparseable sub-expression; it is always paired with a diagnostic.
	ExprNone ExprKind = iota

	ExprNilLit
	ExprNilTypeLit
	ExprNeverTypeLit
	ExprBoolLit
	ExprIntLit
	ExprRealLit
	ExprStringLit

	// ExprReference is the identifier-reference node. Name == "" only
	// ever occurs paired with ExprNone, never as a standalone reference.
	ExprReference

	ExprBind       // pattern-position binder: Name
	ExprBindIgnore // pattern-position "_"
	ExprBindSplat  // pattern-position "..."

	ExprStruct // Body: the struct's field list, as a comma-chained Expr
	ExprGroup  // Body: a parenthesized expression
	ExprLabel  // Label, Body (Body == nil for a bare label used as a value)
	ExprDefer  // Label, Body
	ExprRet    // Label, Body
	ExprLoop   // Body
	ExprCaseOf // Scrutinee, Cases (an arbitrary Defun/CaseOption tree)
	ExprIfThen // Cond, Then

	ExprBinaryOp // Op, Left, Right (Left == nil for the prefix operators)

	ExprVal // Inner: a value-context anchor wrapping a ConstExpr
	ExprPat // Inner: a pattern-context anchor wrapping a PatExpr
)

// BinaryOp identifies the operator carried by an ExprBinaryOp node. The
// full surface grammar distinguishes far more operator families than this
// (value, type, and pattern cascades each have their own precedence
// table), but every one of them reduces to picking a BinaryOp out of this
// one flat set plus a precedence lookup, rather than a parser function per
// operator.
type BinaryOp int

const (
	OpNone BinaryOp = iota

	// Prefix (unary): Left is always nil for these.
	OpNeg // -x
	OpPos // +x
	OpNot // not x

	OpApply      // f x          (juxtaposition)
	OpRevApply   // x . f        (postfix field-access-as-apply)
	OpCompose    // f >> g
	OpPipeFwd    // x |> f
	OpPipeBwd    // f <| x

	OpAdd
	OpSub
	OpMul
	OpIDiv
	OpFDiv
	OpIRem
	OpFRem
	OpPow

	OpAnd
	OpOr
	OpXor

	OpEq
	OpNeq
	OpLss
	OpLeq
	OpGtr
	OpGeq

	OpUnion        // /\
	OpIntersection // \/
	OpDifference   // --
	OpIn           // in

	OpCons // ,  (tuple / cons)
	OpSum  // |  (sum type / case separator)

	OpRange     // ..
	OpRangeIncl // ..=

	OpDefun     // =>
	OpAssign    // = (and the compound assignment forms, folded at parse time)
	OpConstrain // :  (pattern-only: value restriction)
	OpModAccess // ::

	// Postfix unary (L2): Right is always nil for these, the operand is
	// carried in Left.
	OpRef   // x&
	OpDeref // x@

	// OpCaseOption only ever appears inside an ExprCaseOf's Cases tree; it
	// is never lowered directly (see the CaseOf traversal in hir).
	OpCaseOption
)

// Expr is the parser's tagged-union expression node.
type Expr struct {
	Common
	Kind ExprKind

	Name string // ExprReference, ExprBind

	Bool bool
	Int  *big.Int
	Real *apd.Decimal
	Text string // ExprStringLit

	Label string // ExprLabel, ExprDefer, ExprRet

	Op BinaryOp // ExprBinaryOp

	// Children. Which of these are populated depends on Kind; see the
	// comment beside each ExprKind constant above.
	Body      *Expr
	Left      *Expr
	Right     *Expr
	Cond      *Expr
	Then      *Expr
	Scrutinee *Expr
	Cases     *Expr
	Inner     *Expr
}

// None constructs the sentinel ExprNone node at span, for a parser or
// lowerer that must produce a well-formed tree past a diagnostic.
func None(span source.Span) *Expr {
	return &Expr{Common: Common{Span: span}, Kind: ExprNone}
}

// StmtKind identifies the variant of a Stmt.
type StmtKind int

const (
	StmtNone StmtKind = iota
	StmtExpr
	StmtAssign
	StmtDefer
)

// Stmt is the thin top-level statement wrapper the parser emits one of
// per call to NextStmt.
type Stmt struct {
	Common
	Kind StmtKind

	Expr *Expr // StmtExpr, StmtDefer

	Pat *Expr // StmtAssign: left-hand pattern
	Val *Expr // StmtAssign: right-hand value
}
