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

// Package hir defines the post-lowering core tree: every infix surface
// operator has already become a two-argument application of a
// name-referenced function, and every `ret`/`defer` has been resolved
// against the label it targets.
package hir

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/quill-lang/quill/internal/ast"
)

// ExprKind identifies the variant of an Expr.
type ExprKind int

const (
	ExprNone ExprKind = iota
	ExprVoid
	ExprVoidType
	ExprNeverType
	ExprInt
	ExprReal
	ExprReference
	ExprApply
	ExprDefun
	ExprCaseOf
	ExprLoop
	ExprLabel
	ExprRet
	ExprAssign
	ExprStructLiteral
	ExprModuleAccess
	ExprGroup
)

// CaseOption is a pattern/result pair inside a CaseOf.
type CaseOption struct {
	Pattern *Pat
	Result  *Expr
}

// Expr is the lowerer's tagged-union output node. Each carries a weak
// back-pointer to the AST node it was produced from, used only for
// diagnostic source-span lookup; it never extends the AST's lifetime.
type Expr struct {
	Kind ExprKind
	From *ast.Expr

	Int  *big.Int
	Real *apd.Decimal
	Name string // ExprReference, ExprModuleAccess field

	Fn  *Expr // ExprApply
	Arg *Expr // ExprApply

	Pattern *Pat  // ExprDefun
	Body    *Expr // ExprDefun, ExprLoop, ExprLabel

	Scrutinee *Expr        // ExprCaseOf
	Cases     []CaseOption // ExprCaseOf

	Defer []*Expr // ExprLabel: the scope's deferred tail, in textual order

	Scope *Expr // ExprRet: non-owning back-reference to the enclosing Label

	AssignPattern *Pat  // ExprAssign
	AssignValue   *Expr // ExprAssign

	Struct *Expr // ExprStructLiteral: the struct's body expression

	Module *Expr // ExprModuleAccess

	Inner *Expr // ExprGroup
}

// None constructs the sentinel ExprNone node, produced whenever lowering
// fails locally; it is always paired with an Error diagnostic.
func None(from *ast.Expr) *Expr {
	return &Expr{Kind: ExprNone, From: from}
}

// PatKind identifies the variant of a Pat.
type PatKind int

const (
	PatNone PatKind = iota
	PatBindIgnore
	PatBindSplat
	PatBind
	PatConstrain
	PatNot
	PatAnd
	PatOr
	PatCons
	PatSum
	PatExpr
)

// Pat is the lowerer's tagged-union pattern node. The pattern cascade's
// infix combinators (and/or/cons/sum) and its one prefix combinator (not)
// share the Left/Right/Operand fields below rather than each getting a
// dedicated pair of fields, mirroring the flattening already used for
// ast.Expr's BinaryOp.
type Pat struct {
	Kind PatKind
	From *ast.Expr

	Name string // PatBind

	Operand *Pat // PatNot

	Left  *Pat // PatAnd, PatOr, PatCons, PatSum
	Right *Pat // PatAnd, PatOr, PatCons, PatSum

	Value *Pat  // PatConstrain
	Type  *Expr // PatConstrain

	Wrapped *Expr // PatExpr: a restriction expression tested against the scrutinee
}

// NonePat constructs the sentinel PatNone node.
func NonePat(from *ast.Expr) *Pat {
	return &Pat{Kind: PatNone, From: from}
}
