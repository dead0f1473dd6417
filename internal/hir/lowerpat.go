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
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
)

// lowerPat implements the pure function `lowerPat(ast, labelStack,
// diagnostics) -> hirPat`. Patterns never contain a label or defer, so
// unlike lowerExpr it never touches the label stack.
func (l *Lowerer) lowerPat(e *ast.Expr) *Pat {
	if e == nil {
		return NonePat(nil)
	}
	switch e.Kind {
	case ast.ExprNone:
		return NonePat(e)

	case ast.ExprPat:
		return l.lowerPat(e.Inner)

	case ast.ExprGroup:
		return l.lowerPat(e.Inner)

	case ast.ExprBindIgnore:
		return &Pat{Kind: PatBindIgnore, From: e}

	case ast.ExprBindSplat:
		return &Pat{Kind: PatBindSplat, From: e}

	case ast.ExprBind:
		return &Pat{Kind: PatBind, Name: e.Name, From: e}

	case ast.ExprStruct:
		return l.lowerPat(e.Body)

	case ast.ExprBinaryOp:
		return l.lowerPatOp(e)

	default:
		// Any other value-shaped literal reaching pattern position (an
		// int, a string, ...) is a restriction: the pattern matches when
		// the scrutinee equals this value.
		return &Pat{Kind: PatExpr, Wrapped: l.lowerExpr(e), From: e}
	}
}

func (l *Lowerer) lowerPatOp(e *ast.Expr) *Pat {
	switch e.Op {
	case ast.OpNot:
		return &Pat{Kind: PatNot, Operand: l.lowerPat(e.Right), From: e}

	case ast.OpAnd:
		return &Pat{Kind: PatAnd, Left: l.lowerPat(e.Left), Right: l.lowerPat(e.Right), From: e}

	case ast.OpOr:
		return &Pat{Kind: PatOr, Left: l.lowerPat(e.Left), Right: l.lowerPat(e.Right), From: e}

	case ast.OpCons:
		return &Pat{Kind: PatCons, Left: l.lowerPat(e.Left), Right: l.lowerPat(e.Right), From: e}

	case ast.OpSum:
		return &Pat{Kind: PatSum, Left: l.lowerPat(e.Left), Right: l.lowerPat(e.Right), From: e}

	case ast.OpConstrain:
		return &Pat{Kind: PatConstrain, Value: l.lowerPat(e.Left), Type: l.lowerExpr(e.Right), From: e}

	case ast.OpEq, ast.OpNeq, ast.OpLss, ast.OpLeq, ast.OpGtr, ast.OpGeq:
		// A bare comparison in pattern position (Left == nil) restricts the
		// scrutinee via the named predicate, partially applied to the
		// right-hand value: e.g. `< 10` becomes a restriction expression
		// testing `scrutinee < 10`.
		name := referenceNames[e.Op]
		ref := &Expr{Kind: ExprReference, Name: name, From: e}
		restriction := &Expr{Kind: ExprApply, Fn: ref, Arg: l.lowerExpr(e.Right), From: e}
		return &Pat{Kind: PatExpr, Wrapped: restriction, From: e}

	default:
		l.diags.Errorf(diag.CodeInvalidPatternOperator, e.Span, "operator has no pattern meaning")
		return NonePat(e)
	}
}
