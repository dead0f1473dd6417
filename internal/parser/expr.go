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
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// levelOps is the data-driven precedence table: one map per level, from
// token.Kind to the BinaryOp it introduces. The per-level parse function
// is a single generic loop over this table rather than one hand-written
// function per operator family.
var levelOps = map[int]map[token.Kind]ast.BinaryOp{
	11: { // Assign
		token.ASSIGN:     ast.OpAssign,
		token.ASSIGNADD:  ast.OpAssign,
		token.ASSIGNSUB:  ast.OpAssign,
		token.ASSIGNMUL:  ast.OpAssign,
		token.ASSIGNFDIV: ast.OpAssign,
		token.ASSIGNFREM: ast.OpAssign,
	},
	10: { // Tuple
		token.COMMA: ast.OpCons,
	},
	9: { // Or
		token.OR: ast.OpOr,
	},
	8: { // And
		token.AND: ast.OpAnd,
	},
	7: { // Comparison (and range, which shares its binding strength)
		token.EQ:        ast.OpEq,
		token.NEQ:       ast.OpNeq,
		token.LSS:       ast.OpLss,
		token.LEQ:       ast.OpLeq,
		token.GTR:       ast.OpGtr,
		token.GEQ:       ast.OpGeq,
		token.RANGE:     ast.OpRange,
		token.RANGEINCL: ast.OpRangeIncl,
	},
	6: { // Add, Sub
		token.ADD: ast.OpAdd,
		token.SUB: ast.OpSub,
	},
	5: { // Mul, Div, Mod
		token.MUL:  ast.OpMul,
		token.IDIV: ast.OpIDiv,
		token.FDIV: ast.OpFDiv,
		token.IREM: ast.OpIRem,
		token.FREM: ast.OpFRem,
	},
	4: { // Pipeline
		token.PIPEOP:   ast.OpPipeFwd,
		token.PIPEFWD:  ast.OpPipeFwd,
		token.PIPEBWD:  ast.OpPipeBwd,
		token.COMPOSE:  ast.OpCompose,
	},
}

// parseExpr is the value-expression grammar's entry point: L11, the
// loosest-binding level.
func (p *Parser) parseExpr() *ast.Expr {
	metadata := p.q.absorbMetadata()
	e := p.parseBinaryLevel(11)
	e.Metadata = append(metadata, e.Metadata...)
	return e
}

// parseBinaryLevel implements the shared template of L4-L11: parse lower, look for a matching operator past comments, and if
// found, consume it and parse the right side at *the same level*. Per the
// grammar this was distilled from, that makes every one of these levels
// right-associative in source order — preserved here for fidelity rather
// than mathematical convenience.
func (p *Parser) parseBinaryLevel(level int) *ast.Expr {
	if level < 4 {
		return p.parsePrefix()
	}
	left := p.parseBinaryLevel(level - 1)
	ops := levelOps[level]
	for {
		tok := p.q.peekPastComments()
		op, ok := ops[tok.Kind]
		if !ok {
			return left
		}
		comments := p.q.absorbMetadata()
		p.q.next() // consume the operator
		right := p.parseBinaryLevel(level)
		left = &ast.Expr{
			Common: ast.Common{Span: source.Join(left.Span, right.Span), Metadata: comments},
			Kind:   ast.ExprBinaryOp,
			Op:     op,
			Left:   left,
			Right:  right,
		}
	}
}

// parsePrefix implements L3: -x, +x, not x. Right-associative by
// recursing into itself rather than the level below.
func (p *Parser) parsePrefix() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	var op ast.BinaryOp
	switch p.q.peekPastComments().Kind {
	case token.SUB:
		op = ast.OpNeg
	case token.ADD:
		op = ast.OpPos
	case token.NOT:
		op = ast.OpNot
	default:
		return p.parsePostfix()
	}
	p.q.absorbMetadata()
	p.q.next() // consume the prefix operator
	operand := p.parsePrefix()
	return &ast.Expr{
		Common: ast.Common{Span: source.Span{Start: start, End: operand.Span.End}},
		Kind:   ast.ExprBinaryOp,
		Op:     op,
		Right:  operand,
	}
}

// parsePostfix implements L2: field access, calls, juxtaposition
// application, module access, match, ref, and deref, all left-associative
// and chained onto a primary base.
func (p *Parser) parsePostfix() *ast.Expr {
	base := p.parsePrimary()
	for {
		switch p.q.peekPastComments().Kind {
		case token.FIELDACCESS:
			p.q.absorbMetadata()
			p.q.next() // consume '.'
			name := p.expectIdentName()
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpRevApply,
				Left:   base,
				Right:  &ast.Expr{Kind: ast.ExprReference, Name: name},
			}
		case token.MODRES:
			p.q.absorbMetadata()
			p.q.next() // consume '::'
			name := p.expectIdentName()
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpModAccess,
				Left:   base,
				Right:  &ast.Expr{Kind: ast.ExprReference, Name: name},
			}
		case token.PARENLEFT:
			args := p.parseParenArgs()
			for _, arg := range args {
				base = &ast.Expr{
					Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: arg.Span.End}},
					Kind:   ast.ExprBinaryOp,
					Op:     ast.OpApply,
					Left:   base,
					Right:  arg,
				}
			}
		case token.REF:
			p.q.absorbMetadata()
			p.q.next() // consume '&'
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpRef,
				Left:   base,
			}
		case token.DEREF:
			p.q.absorbMetadata()
			p.q.next() // consume '@'
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpDeref,
				Left:   base,
			}
		case token.MATCH:
			base = p.parseMatch(base)
		case token.INT, token.REAL, token.STRING, token.IDENT, token.BOOLLIT, token.NILLIT, token.NEVERLIT:
			// Juxtaposition: a literal or identifier directly following the
			// base is its argument, so `f x` reads as Apply(f, x).
			arg := p.parsePrimary()
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: arg.Span.End}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpApply,
				Left:   base,
				Right:  arg,
			}
		default:
			return base
		}
	}
}

func (p *Parser) expectIdentName() string {
	tok := p.q.peekPastComments()
	if tok.Kind != token.IDENT {
		p.diags.Errorf(diag.CodeExpectedIdentifier, tok.Span, "expected an identifier")
		return ""
	}
	p.q.absorbMetadata()
	p.q.next()
	return tok.Text
}

// parseParenArgs parses a parenthesized, comma-separated argument list
// using the shared delimited-list helper.
func (p *Parser) parseParenArgs() []*ast.Expr {
	return p.parseDelimitedExprList(token.PARENLEFT, token.PARENRIGHT, diag.CodeExpectedDelimiter)
}

// parseDelimitedExprList drives every delimited element list: repeatedly
// peek; on the closing delimiter, consume it and finish; on Eof, emit a
// missing-delimiter diagnostic and finish; otherwise parse one element.
// Elements may be separated by either a comma or a semicolon — a brace
// body reads as a sequence of statements, so `;` doubles as a statement
// separator there, while a comma keeps its struct/tuple-cons meaning via
// level 10 of the binary cascade either way. It is the parser's one
// generic list driver.
func (p *Parser) parseDelimitedExprList(open, close token.Kind, missing diag.Code) []*ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume the opening delimiter

	var elems []*ast.Expr
	for {
		p.q.absorbMetadata()
		tok := p.q.peekNth(1)
		switch tok.Kind {
		case close:
			p.q.next()
			return elems
		case token.EOF:
			p.diags.Errorf(missing, source.Span{Start: start, End: tok.Span.End}, "missing closing delimiter")
			return elems
		default:
			elems = append(elems, p.parseExpr())
			switch p.q.peekPastComments().Kind {
			case token.COMMA, token.SEMI:
				p.q.absorbMetadata()
				p.q.next()
			}
		}
	}
}

// parsePrimary implements L1: literals, identifiers, fn-values, blocks,
// struct literals, ret/defer/loop forms, labels, and grouped expressions.
func (p *Parser) parsePrimary() *ast.Expr {
	tok := p.q.peekPastComments()
	switch tok.Kind {
	case token.NILLIT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprNilLit}
	case token.NEVERLIT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprNeverTypeLit}
	case token.BOOLLIT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprBoolLit, Bool: tok.Bool}
	case token.INT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprIntLit, Int: tok.Int}
	case token.REAL:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprRealLit, Real: tok.Real}
	case token.STRING:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprStringLit, Text: tok.Text}
	case token.IDENT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprReference, Name: tok.Text}
	case token.UNDERSCORE:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprBindIgnore}
	case token.PARENLEFT:
		return p.parseGroup()
	case token.BRACELEFT:
		return p.parseStructLit()
	case token.FN:
		return p.parseFn()
	case token.LOOP:
		return p.parseLoop()
	case token.LABEL:
		return p.parseLabelExpr()
	case token.RET:
		return p.parseRet()
	case token.DEFER:
		return p.parseDeferExpr()
	case token.HAS:
		return p.parseHas()
	case token.NEW:
		return p.parseNew()
	default:
		p.diags.Errorf(diag.CodeExpectedOperand, tok.Span, "expected an operand, found %s", tok.Kind)
		p.q.absorbMetadata()
		p.q.next()
		return ast.None(tok.Span)
	}
}

func (p *Parser) parseGroup() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume '('
	inner := p.parseExpr()
	if p.q.peekPastComments().Kind != token.PARENRIGHT {
		p.diags.Errorf(diag.CodeExpectedDelimiter, p.q.peekPastComments().Span, "expected ')'")
	} else {
		p.q.absorbMetadata()
		p.q.next()
	}
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: p.q.lastEnd}}, Kind: ast.ExprGroup, Inner: inner}
}

// parseStructLit parses a `{ ... }` block as a struct literal: its
// comma- or semicolon-separated field/statement list is folded into a
// single Cons chain carried in Body.
func (p *Parser) parseStructLit() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	elems := p.parseDelimitedExprList(token.BRACELEFT, token.BRACERIGHT, diag.CodeExpectedDelimiter)
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: p.q.lastEnd}}, Kind: ast.ExprStruct, Body: foldCons(elems)}
}

func foldCons(elems []*ast.Expr) *ast.Expr {
	if len(elems) == 0 {
		return nil
	}
	acc := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		acc = &ast.Expr{
			Common: ast.Common{Span: source.Join(elems[i].Span, acc.Span)},
			Kind:   ast.ExprBinaryOp,
			Op:     ast.OpCons,
			Left:   elems[i],
			Right:  acc,
		}
	}
	return acc
}

func (p *Parser) parseFn() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'fn'
	pat := p.parsePattern()
	if p.q.peekPastComments().Kind != token.ARROW {
		p.diags.Errorf(diag.CodeExpectedArrow, p.q.peekPastComments().Span, "expected '=>' in fn literal")
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: p.q.lastEnd}}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: pat, Right: ast.None(p.q.peekNth(1).Span)}
	}
	p.q.absorbMetadata()
	p.q.next() // consume '=>'
	body := p.parseExpr()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: body.Span.End}}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: pat, Right: body}
}

func (p *Parser) parseLoop() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'loop'
	body := p.parseExpr()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: body.Span.End}}, Kind: ast.ExprLoop, Body: body}
}

// parseLabelExpr handles two distinct uses of a LABEL token in operand
// position: `'name { body }`, a named scope that `ret` and `defer` within
// body can target, and a bare `'name` with no following body, which is
// just a label value (e.g. a match-case result), not a scope-opening
// form. Only the former consumes a body.
func (p *Parser) parseLabelExpr() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	label := p.q.peekPastComments().Text
	p.q.absorbMetadata()
	p.q.next() // consume the label token
	if p.q.peekPastComments().Kind != token.BRACELEFT {
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: p.q.lastEnd}}, Kind: ast.ExprLabel, Label: label}
	}
	body := p.parseExpr()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: body.Span.End}}, Kind: ast.ExprLabel, Label: label, Body: body}
}

func (p *Parser) parseRet() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'ret'
	label, ok := p.expectLabel()
	if !ok {
		return ast.None(source.Span{Start: start, End: p.q.lastEnd})
	}
	body := p.parseExpr()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: body.Span.End}}, Kind: ast.ExprRet, Label: label, Body: body}
}

func (p *Parser) parseDeferExpr() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'defer'
	label, ok := p.expectLabel()
	if !ok {
		return ast.None(source.Span{Start: start, End: p.q.lastEnd})
	}
	body := p.parseExpr()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: body.Span.End}}, Kind: ast.ExprDefer, Label: label, Body: body}
}

func (p *Parser) expectLabel() (string, bool) {
	tok := p.q.peekPastComments()
	if tok.Kind != token.LABEL {
		p.diags.Errorf(diag.CodeExpectedLabelOrColon, tok.Span, "expected a label")
		return "", false
	}
	p.q.absorbMetadata()
	p.q.next()
	return tok.Text, true
}

// parseHas parses `has <name>`, a field-presence check.
func (p *Parser) parseHas() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'has'
	name := p.expectIdentName()
	ref := &ast.Expr{Kind: ast.ExprReference, Name: name}
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: p.q.lastEnd}}, Kind: ast.ExprBinaryOp, Op: ast.OpIn, Right: ref}
}

// parseNew parses `new <expr>`, an instantiation wrapper.
func (p *Parser) parseNew() *ast.Expr {
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume 'new'
	inner := p.parsePostfix()
	return &ast.Expr{Common: ast.Common{Span: source.Span{Start: start, End: inner.Span.End}}, Kind: ast.ExprGroup, Inner: inner}
}

// parseMatch parses the `match { | pat => result ... }` postfix form,
// producing a CaseOf node over the already-parsed scrutinee.
func (p *Parser) parseMatch(scrutinee *ast.Expr) *ast.Expr {
	p.q.absorbMetadata()
	p.q.next() // consume 'match'
	if p.q.peekPastComments().Kind != token.BRACELEFT {
		span := p.q.peekPastComments().Span
		p.diags.Errorf(diag.CodeExpectedDelimiter, span, "expected '{' to start match cases")
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: scrutinee.Span.Start, End: span.End}}, Kind: ast.ExprCaseOf, Scrutinee: scrutinee}
	}
	start := p.q.peekPastComments().Span.Start
	p.q.absorbMetadata()
	p.q.next() // consume '{'

	var options []*ast.Expr
	for {
		p.q.absorbMetadata()
		tok := p.q.peekNth(1)
		if tok.Kind == token.BRACERIGHT {
			p.q.next()
			break
		}
		if tok.Kind == token.EOF {
			p.diags.Errorf(diag.CodeExpectedDelimiter, tok.Span, "missing closing '}' in match")
			break
		}
		if tok.Kind == token.SUM {
			p.q.absorbMetadata()
			p.q.next() // consume leading '|'
		}
		pat := p.parsePattern()
		optStart := pat.Span.Start
		if p.q.peekPastComments().Kind != token.ARROW {
			p.diags.Errorf(diag.CodeExpectedArrow, p.q.peekPastComments().Span, "expected '=>' in match case")
			options = append(options, &ast.Expr{Common: ast.Common{Span: pat.Span}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: pat, Right: ast.None(pat.Span)})
			continue
		}
		p.q.absorbMetadata()
		p.q.next() // consume '=>'
		result := p.parseExpr()
		options = append(options, &ast.Expr{Common: ast.Common{Span: source.Span{Start: optStart, End: result.Span.End}}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: pat, Right: result})
	}

	cases := foldCaseOptions(options)
	return &ast.Expr{
		Common:    ast.Common{Span: source.Span{Start: scrutinee.Span.Start, End: p.q.lastEnd}},
		Kind:      ast.ExprCaseOf,
		Scrutinee: scrutinee,
		Cases:     cases,
	}
}

// foldCaseOptions builds the right-leaning CaseOption tree the lowerer's
// work-stack traversal expects, preserving textual order left to right.
func foldCaseOptions(options []*ast.Expr) *ast.Expr {
	if len(options) == 0 {
		return nil
	}
	acc := options[len(options)-1]
	for i := len(options) - 2; i >= 0; i-- {
		acc = &ast.Expr{
			Common: ast.Common{Span: source.Join(options[i].Span, acc.Span)},
			Kind:   ast.ExprBinaryOp,
			Op:     ast.OpCaseOption,
			Left:   options[i],
			Right:  acc,
		}
	}
	return acc
}
