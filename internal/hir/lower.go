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
	"math/big"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
)

// referenceNames maps an AST BinaryOp to the function-reference name its
// desugared Apply tree is built from. Operators absent from this table
// are either handled structurally by Lowerer.lowerBinaryOp (Apply, Defun,
// Assign, ModuleAccess, CaseOption) or, like Constrain, have no
// expression meaning and lower to None with a diagnostic.
var referenceNames = map[ast.BinaryOp]string{
	ast.OpNeg: "neg",
	ast.OpPos: "pos",
	ast.OpNot: "not",

	ast.OpRevApply: ".",
	ast.OpCompose:  ">>",
	ast.OpPipeFwd:  "|>",
	ast.OpPipeBwd:  "<|",

	ast.OpAdd:  "+",
	ast.OpSub:  "-",
	ast.OpMul:  "*",
	ast.OpIDiv: "div",
	ast.OpFDiv: "/",
	ast.OpIRem: "rem",
	ast.OpFRem: "%",
	ast.OpPow:  "pow",

	ast.OpAnd: "and",
	ast.OpOr:  "or",
	ast.OpXor: "xor",

	ast.OpEq:  "==",
	ast.OpNeq: "!=",
	ast.OpLss: "<",
	ast.OpLeq: "<=",
	ast.OpGtr: ">",
	ast.OpGeq: ">=",

	ast.OpUnion:        "/\\",
	ast.OpIntersection: "\\/",
	ast.OpDifference:   "--",
	ast.OpIn:           "in",

	ast.OpCons: ",",
	ast.OpSum:  "|",

	ast.OpRange:     "..",
	ast.OpRangeIncl: "..=",

	ast.OpRef:   "&",
	ast.OpDeref: "@",
}

// Lowerer holds the single piece of state the lowering pass threads
// through recursion: the dynamic label stack. It is otherwise a pure
// function of its inputs.
type Lowerer struct {
	diags  *diag.Bag
	labels LabelStack
}

// New constructs a Lowerer reporting diagnostics into diags.
func New(diags *diag.Bag) *Lowerer {
	return &Lowerer{diags: diags}
}

// LowerStmt lowers one parsed statement into its HIR form: an Assign node
// for an assignment statement, otherwise the lowered expression itself (a
// `defer` statement's expression is lowered as is, with no wrapper).
func (l *Lowerer) LowerStmt(s *ast.Stmt) *Expr {
	switch s.Kind {
	case ast.StmtAssign:
		pat := l.lowerPat(s.Pat)
		val := l.lowerExpr(s.Val)
		return &Expr{Kind: ExprAssign, AssignPattern: pat, AssignValue: val}
	case ast.StmtDefer:
		return l.lowerExpr(s.Expr)
	case ast.StmtExpr:
		return l.lowerExpr(s.Expr)
	default:
		return nil
	}
}

// lowerExpr implements the pure function `lowerExpr(ast, labelStack,
// diagnostics) -> hirExpr`.
func (l *Lowerer) lowerExpr(e *ast.Expr) *Expr {
	if e == nil {
		return &Expr{Kind: ExprVoid}
	}
	switch e.Kind {
	case ast.ExprNone:
		return None(e)
	case ast.ExprNilLit:
		return &Expr{Kind: ExprVoid, From: e}
	case ast.ExprNilTypeLit:
		return &Expr{Kind: ExprVoidType, From: e}
	case ast.ExprNeverTypeLit:
		return &Expr{Kind: ExprNeverType, From: e}
	case ast.ExprBoolLit:
		return l.lowerBool(e)
	case ast.ExprIntLit:
		return &Expr{Kind: ExprInt, Int: e.Int, From: e}
	case ast.ExprRealLit:
		return &Expr{Kind: ExprReal, Real: e.Real, From: e}
	case ast.ExprStringLit:
		return l.lowerString(e)
	case ast.ExprReference, ast.ExprBind:
		return &Expr{Kind: ExprReference, Name: e.Name, From: e}
	case ast.ExprGroup:
		return &Expr{Kind: ExprGroup, Inner: l.lowerExpr(e.Inner), From: e}
	case ast.ExprStruct:
		return &Expr{Kind: ExprStructLiteral, Struct: l.lowerExpr(e.Body), From: e}
	case ast.ExprLoop:
		return &Expr{Kind: ExprLoop, Body: l.lowerExpr(e.Body), From: e}
	case ast.ExprLabel:
		return l.lowerLabel(e)
	case ast.ExprRet:
		return l.lowerRet(e)
	case ast.ExprDefer:
		return l.lowerDefer(e)
	case ast.ExprCaseOf:
		return l.lowerCaseOf(e)
	case ast.ExprBinaryOp:
		return l.lowerBinaryOp(e)
	case ast.ExprVal:
		return l.lowerExpr(e.Inner)
	case ast.ExprPat:
		// A pattern-anchor reached in value position has no expression
		// meaning; collapse with a diagnostic like any other shape error.
		l.diags.Errorf(diag.CodeInvalidPatternOperator, e.Span, "pattern used in value position")
		return None(e)
	default:
		return None(e)
	}
}

func (l *Lowerer) lowerBool(e *ast.Expr) *Expr {
	name := "false"
	if e.Bool {
		name = "true"
	}
	return &Expr{Kind: ExprReference, Name: name, From: e}
}

// lowerString desugars a string literal into a right-associative cons
// list of integer character codes, terminated by Void.
func (l *Lowerer) lowerString(e *ast.Expr) *Expr {
	runes := []rune(e.Text)
	acc := &Expr{Kind: ExprVoid, From: e}
	for i := len(runes) - 1; i >= 0; i-- {
		code := &Expr{Kind: ExprInt, Int: bigFromRune(runes[i]), From: e}
		cons := &Expr{Kind: ExprReference, Name: ",", From: e}
		acc = &Expr{Kind: ExprApply, Fn: &Expr{Kind: ExprApply, Fn: cons, Arg: code, From: e}, Arg: acc, From: e}
	}
	return acc
}

func (l *Lowerer) lowerLabel(e *ast.Expr) *Expr {
	node := &Expr{Kind: ExprLabel, From: e}
	l.labels.Push(e.Label, node)
	node.Body = l.lowerExpr(e.Body)
	l.labels.Pop()
	return node
}

func (l *Lowerer) lowerRet(e *ast.Expr) *Expr {
	scope, ok := l.labels.Find(e.Label)
	if !ok {
		l.diags.Append(diag.Error, diag.CodeUnresolvedLabel, e.Span, "could not find label %q in scope", e.Label).
			Children = []diag.Diagnostic{{Severity: diag.Hint, Code: diag.CodeUnresolvedLabel, Span: e.Span, Message: "label referenced here"}}
		return None(e)
	}
	return &Expr{Kind: ExprRet, Scope: scope, Body: l.lowerExpr(e.Body), From: e}
}

func (l *Lowerer) lowerDefer(e *ast.Expr) *Expr {
	body := l.lowerExpr(e.Body)
	if !l.labels.Defer(e.Label, body) {
		l.diags.Errorf(diag.CodeUnresolvedLabel, e.Span, "could not find label %q in scope", e.Label)
		return None(e)
	}
	return &Expr{Kind: ExprVoid, From: e}
}

// lowerCaseOf performs a depth-first traversal of the AST's CaseOption/
// Defun tree using an explicit work stack: a Defun leaf emits one
// CaseOption into the result list; a CaseOption node pushes both of its
// operands; any other shape is a diagnostic and is discarded. The result
// preserves the textual (left-to-right) order of the source.
func (l *Lowerer) lowerCaseOf(e *ast.Expr) *Expr {
	scrutinee := l.lowerExpr(e.Scrutinee)
	var cases []CaseOption

	type work struct{ node *ast.Expr }
	var stack []work
	if e.Cases != nil {
		stack = append(stack, work{e.Cases})
	}
	// A stack-based traversal naturally visits right-heavy trees in
	// reverse; since foldCaseOptions built Cases right-leaning, pushing
	// Right before Left and popping LIFO preserves the original order.
	var order []*ast.Expr
	for len(stack) > 0 {
		n := stack[len(stack)-1].node
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Kind == ast.ExprBinaryOp && n.Op == ast.OpCaseOption {
			stack = append(stack, work{n.Right})
			stack = append(stack, work{n.Left})
			continue
		}
		order = append(order, n)
	}

	for _, n := range order {
		if n.Kind != ast.ExprBinaryOp || n.Op != ast.OpDefun {
			l.diags.Errorf(diag.CodeExpectedCaseOptionShape, n.Span, "expected a case option")
			continue
		}
		cases = append(cases, CaseOption{
			Pattern: l.lowerPat(n.Left),
			Result:  l.lowerExpr(n.Right),
		})
	}

	return &Expr{Kind: ExprCaseOf, Scrutinee: scrutinee, Cases: cases, From: e}
}

// lowerBinaryOp implements the operator desugaring table: most operators
// become Apply(Apply(Reference(name), lhs), rhs); a handful remain
// structural.
func (l *Lowerer) lowerBinaryOp(e *ast.Expr) *Expr {
	switch e.Op {
	case ast.OpApply:
		return &Expr{Kind: ExprApply, Fn: l.lowerExpr(e.Left), Arg: l.lowerExpr(e.Right), From: e}

	case ast.OpDefun:
		return &Expr{Kind: ExprDefun, Pattern: l.lowerPat(e.Left), Body: l.lowerExpr(e.Right), From: e}

	case ast.OpAssign:
		return &Expr{Kind: ExprAssign, AssignPattern: l.lowerPat(e.Left), AssignValue: l.lowerExpr(e.Right), From: e}

	case ast.OpModAccess:
		if e.Right == nil || e.Right.Kind != ast.ExprReference {
			l.diags.Errorf(diag.CodeInvalidModuleAccess, e.Span, "module access right-hand side must be an identifier")
			return None(e)
		}
		return &Expr{Kind: ExprModuleAccess, Module: l.lowerExpr(e.Left), Name: e.Right.Name, From: e}

	case ast.OpCaseOption:
		l.diags.Errorf(diag.CodeExpectedCaseOptionShape, e.Span, "case option outside of match")
		return None(e)

	case ast.OpNeg, ast.OpPos, ast.OpNot, ast.OpRef, ast.OpDeref:
		return l.lowerUnaryApply(e)

	case ast.OpIn:
		if e.Left == nil {
			// `has <name>` sugar: a single-argument presence check against
			// the implicit enclosing struct, rather than a two-operand
			// membership test.
			ref := &Expr{Kind: ExprReference, Name: "has", From: e}
			return &Expr{Kind: ExprApply, Fn: ref, Arg: l.lowerExpr(e.Right), From: e}
		}
		fallthrough

	default:
		name, ok := referenceNames[e.Op]
		if !ok {
			l.diags.Errorf(diag.CodeInvalidPatternOperator, e.Span, "operator has no expression meaning")
			return None(e)
		}
		ref := &Expr{Kind: ExprReference, Name: name, From: e}
		return &Expr{
			Kind: ExprApply,
			Fn:   &Expr{Kind: ExprApply, Fn: ref, Arg: l.lowerExpr(e.Left), From: e},
			Arg:  l.lowerExpr(e.Right),
			From: e,
		}
	}
}

// lowerUnaryApply handles the operators carried by a single operand
// (prefix Neg/Pos/Not, postfix Ref/Deref): Apply(Reference(name), operand).
func (l *Lowerer) lowerUnaryApply(e *ast.Expr) *Expr {
	name := referenceNames[e.Op]
	ref := &Expr{Kind: ExprReference, Name: name, From: e}
	operand := e.Right
	if operand == nil {
		operand = e.Left
	}
	return &Expr{Kind: ExprApply, Fn: ref, Arg: l.lowerExpr(operand), From: e}
}

func bigFromRune(r rune) *big.Int {
	return big.NewInt(int64(r))
}
