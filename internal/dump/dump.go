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

// Package dump prints token, AST, and HIR trees for debugging. The AST
// and HIR printers are hand-rolled rather than built on a generic
// reflection-based dumper (as github.com/kr/pretty would give for free)
// because hir.Expr.Scope is a deliberate non-owning back-reference from
// a Ret node to its enclosing Label: a generic dumper that followed
// every pointer field would walk Label -> Body -> ... -> Ret -> Scope ->
// Label forever.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/hir"
	"github.com/quill-lang/quill/internal/token"
)

// Token writes a one-line rendering of tok to w: its span, its kind
// name, and, for kinds that carry one, its text/numeric payload.
func Token(w io.Writer, tok token.Token) {
	fmt.Fprintf(w, "%s %s", tok.Span, tok.Kind)
	switch tok.Kind {
	case token.IDENT, token.LABEL, token.METADATA, token.STRING:
		fmt.Fprintf(w, " %q", tok.Text)
	case token.INT:
		fmt.Fprintf(w, " %s", tok.Int)
	case token.REAL:
		fmt.Fprintf(w, " %s", tok.Real)
	case token.BOOLLIT:
		fmt.Fprintf(w, " %t", tok.Bool)
	}
}

// Stmt writes a multi-line rendering of s's AST to w.
func Stmt(w io.Writer, s *ast.Stmt) {
	p := &printer{w: w}
	p.stmt(s)
	fmt.Fprintln(w)
}

// Expr writes a multi-line rendering of e's HIR to w.
func Expr(w io.Writer, e *hir.Expr) {
	p := &printer{w: w}
	p.hirExpr(e)
	fmt.Fprintln(w)
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprint(p.w, "\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *printer) nested(f func()) {
	p.depth++
	f()
	p.depth--
}

func (p *printer) stmt(s *ast.Stmt) {
	if s == nil {
		p.line("<nil stmt>")
		return
	}
	switch s.Kind {
	case ast.StmtAssign:
		p.line("Assign")
		p.nested(func() {
			p.astExpr(s.Pat)
			p.astExpr(s.Val)
		})
	case ast.StmtDefer:
		p.line("Defer")
		p.nested(func() { p.astExpr(s.Expr) })
	case ast.StmtExpr:
		p.astExpr(s.Expr)
	default:
		p.line("<unknown stmt kind %d>", s.Kind)
	}
}

func (p *printer) astExpr(e *ast.Expr) {
	if e == nil {
		p.line("<nil>")
		return
	}
	switch e.Kind {
	case ast.ExprNone:
		p.line("None")
	case ast.ExprNilLit:
		p.line("Nil")
	case ast.ExprNilTypeLit:
		p.line("NilType")
	case ast.ExprNeverTypeLit:
		p.line("NeverType")
	case ast.ExprBoolLit:
		p.line("Bool(%t)", e.Bool)
	case ast.ExprIntLit:
		p.line("Int(%s)", e.Int)
	case ast.ExprRealLit:
		p.line("Real(%s)", e.Real)
	case ast.ExprStringLit:
		p.line("String(%q)", e.Text)
	case ast.ExprReference:
		p.line("Reference(%s)", e.Name)
	case ast.ExprBind:
		p.line("Bind(%s)", e.Name)
	case ast.ExprBindIgnore:
		p.line("BindIgnore")
	case ast.ExprBindSplat:
		p.line("BindSplat")
	case ast.ExprStruct:
		p.line("Struct")
		p.nested(func() { p.astExpr(e.Body) })
	case ast.ExprGroup:
		p.line("Group")
		p.nested(func() { p.astExpr(e.Inner) })
	case ast.ExprLabel:
		p.line("Label(%s)", e.Label)
		p.nested(func() { p.astExpr(e.Body) })
	case ast.ExprDefer:
		p.line("Defer(%s)", e.Label)
		p.nested(func() { p.astExpr(e.Body) })
	case ast.ExprRet:
		p.line("Ret(%s)", e.Label)
		p.nested(func() { p.astExpr(e.Body) })
	case ast.ExprLoop:
		p.line("Loop")
		p.nested(func() { p.astExpr(e.Body) })
	case ast.ExprCaseOf:
		p.line("CaseOf")
		p.nested(func() {
			p.astExpr(e.Scrutinee)
			p.astExpr(e.Cases)
		})
	case ast.ExprIfThen:
		p.line("IfThen")
		p.nested(func() {
			p.astExpr(e.Cond)
			p.astExpr(e.Then)
		})
	case ast.ExprBinaryOp:
		p.line("BinaryOp(%s)", opName(e.Op))
		p.nested(func() {
			p.astExpr(e.Left)
			p.astExpr(e.Right)
		})
	case ast.ExprVal:
		p.line("Val")
		p.nested(func() { p.astExpr(e.Inner) })
	case ast.ExprPat:
		p.line("Pat")
		p.nested(func() { p.astExpr(e.Inner) })
	default:
		p.line("<unknown expr kind %d>", e.Kind)
	}
}

func opName(op ast.BinaryOp) string {
	if name, ok := astOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", op)
}

var astOpNames = map[ast.BinaryOp]string{
	ast.OpNeg: "neg", ast.OpPos: "pos", ast.OpNot: "not",
	ast.OpApply: "apply", ast.OpRevApply: "revapply", ast.OpCompose: "compose",
	ast.OpPipeFwd: "pipefwd", ast.OpPipeBwd: "pipebwd",
	ast.OpAdd: "add", ast.OpSub: "sub", ast.OpMul: "mul", ast.OpIDiv: "idiv",
	ast.OpFDiv: "fdiv", ast.OpIRem: "irem", ast.OpFRem: "frem", ast.OpPow: "pow",
	ast.OpAnd: "and", ast.OpOr: "or", ast.OpXor: "xor",
	ast.OpEq: "eq", ast.OpNeq: "neq", ast.OpLss: "lss", ast.OpLeq: "leq",
	ast.OpGtr: "gtr", ast.OpGeq: "geq",
	ast.OpUnion: "union", ast.OpIntersection: "intersection", ast.OpDifference: "difference", ast.OpIn: "in",
	ast.OpCons: "cons", ast.OpSum: "sum",
	ast.OpRange: "range", ast.OpRangeIncl: "rangeincl",
	ast.OpDefun: "defun", ast.OpAssign: "assign", ast.OpConstrain: "constrain", ast.OpModAccess: "modaccess",
	ast.OpRef: "ref", ast.OpDeref: "deref",
	ast.OpCaseOption: "caseoption",
}

func (p *printer) hirExpr(e *hir.Expr) {
	if e == nil {
		p.line("<nil>")
		return
	}
	switch e.Kind {
	case hir.ExprNone:
		p.line("None")
	case hir.ExprVoid:
		p.line("Void")
	case hir.ExprVoidType:
		p.line("VoidType")
	case hir.ExprNeverType:
		p.line("NeverType")
	case hir.ExprInt:
		p.line("Int(%s)", e.Int)
	case hir.ExprReal:
		p.line("Real(%s)", e.Real)
	case hir.ExprReference:
		p.line("Reference(%s)", e.Name)
	case hir.ExprApply:
		p.line("Apply")
		p.nested(func() {
			p.hirExpr(e.Fn)
			p.hirExpr(e.Arg)
		})
	case hir.ExprDefun:
		p.line("Defun")
		p.nested(func() {
			p.hirPat(e.Pattern)
			p.hirExpr(e.Body)
		})
	case hir.ExprCaseOf:
		p.line("CaseOf")
		p.nested(func() {
			p.hirExpr(e.Scrutinee)
			for _, c := range e.Cases {
				p.line("Case")
				p.nested(func() {
					p.hirPat(c.Pattern)
					p.hirExpr(c.Result)
				})
			}
		})
	case hir.ExprLoop:
		p.line("Loop")
		p.nested(func() { p.hirExpr(e.Body) })
	case hir.ExprLabel:
		p.line("Label")
		p.nested(func() {
			p.hirExpr(e.Body)
			for _, d := range e.Defer {
				p.line("Defer")
				p.nested(func() { p.hirExpr(d) })
			}
		})
	case hir.ExprRet:
		// Scope is a non-owning back-reference to the enclosing Label and
		// is never followed here, to avoid the Label -> ... -> Ret -> Scope
		// cycle that every lowered ret/label pair forms.
		p.line("Ret(-> enclosing label)")
		p.nested(func() { p.hirExpr(e.Body) })
	case hir.ExprAssign:
		p.line("Assign")
		p.nested(func() {
			p.hirPat(e.AssignPattern)
			p.hirExpr(e.AssignValue)
		})
	case hir.ExprStructLiteral:
		p.line("StructLiteral")
		p.nested(func() { p.hirExpr(e.Struct) })
	case hir.ExprModuleAccess:
		p.line("ModuleAccess(%s)", e.Name)
		p.nested(func() { p.hirExpr(e.Module) })
	case hir.ExprGroup:
		p.line("Group")
		p.nested(func() { p.hirExpr(e.Inner) })
	default:
		p.line("<unknown hir expr kind %d>", e.Kind)
	}
}

func (p *printer) hirPat(pt *hir.Pat) {
	if pt == nil {
		p.line("<nil>")
		return
	}
	switch pt.Kind {
	case hir.PatNone:
		p.line("None")
	case hir.PatBindIgnore:
		p.line("BindIgnore")
	case hir.PatBindSplat:
		p.line("BindSplat")
	case hir.PatBind:
		p.line("Bind(%s)", pt.Name)
	case hir.PatConstrain:
		p.line("Constrain")
		p.nested(func() {
			p.hirPat(pt.Value)
			p.hirExpr(pt.Type)
		})
	case hir.PatNot:
		p.line("Not")
		p.nested(func() { p.hirPat(pt.Operand) })
	case hir.PatAnd:
		p.line("And")
		p.nested(func() {
			p.hirPat(pt.Left)
			p.hirPat(pt.Right)
		})
	case hir.PatOr:
		p.line("Or")
		p.nested(func() {
			p.hirPat(pt.Left)
			p.hirPat(pt.Right)
		})
	case hir.PatCons:
		p.line("Cons")
		p.nested(func() {
			p.hirPat(pt.Left)
			p.hirPat(pt.Right)
		})
	case hir.PatSum:
		p.line("Sum")
		p.nested(func() {
			p.hirPat(pt.Left)
			p.hirPat(pt.Right)
		})
	case hir.PatExpr:
		p.line("Expr")
		p.nested(func() { p.hirExpr(pt.Wrapped) })
	default:
		p.line("<unknown hir pat kind %d>", pt.Kind)
	}
}
