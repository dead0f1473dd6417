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

var typeLevelOps = map[int]map[token.Kind]ast.BinaryOp{
	4: {token.SUM: ast.OpSum},
	3: {token.COMMA: ast.OpCons},
}

// parseType is the type-expression grammar's entry point, L4.
func (p *Parser) parseType() *ast.Expr {
	return p.parseTypeLevel(4)
}

func (p *Parser) parseTypeLevel(level int) *ast.Expr {
	if level < 3 {
		return p.parseTypePostfix()
	}
	left := p.parseTypeLevel(level - 1)
	ops := typeLevelOps[level]
	for {
		tok := p.q.peekPastComments()
		op, ok := ops[tok.Kind]
		if !ok {
			return left
		}
		comments := p.q.absorbMetadata()
		p.q.next()
		right := p.parseTypeLevel(level)
		left = &ast.Expr{
			Common: ast.Common{Span: source.Join(left.Span, right.Span), Metadata: comments},
			Kind:   ast.ExprBinaryOp,
			Op:     op,
			Left:   left,
			Right:  right,
		}
	}
}

// parseTypePostfix implements L2: ref, deref, and `::field` module access.
func (p *Parser) parseTypePostfix() *ast.Expr {
	base := p.parseTypePrimary()
	for {
		switch p.q.peekPastComments().Kind {
		case token.REF:
			p.q.absorbMetadata()
			p.q.next()
			base = &ast.Expr{Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprBinaryOp, Op: ast.OpRef, Left: base}
		case token.DEREF:
			p.q.absorbMetadata()
			p.q.next()
			base = &ast.Expr{Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprBinaryOp, Op: ast.OpDeref, Left: base}
		case token.MODRES:
			p.q.absorbMetadata()
			p.q.next()
			name := p.expectIdentName()
			base = &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: base.Span.Start, End: p.q.lastEnd}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpModAccess,
				Left:   base,
				Right:  &ast.Expr{Kind: ast.ExprReference, Name: name},
			}
		default:
			return base
		}
	}
}

// parseTypePrimary implements L1: identifier reference, struct, fn
// (function type), nil, never, and grouped type expressions. The surface
// grammar's separate "enum" primary is not distinguished from a struct
// primary by this front end; both parse as ExprStruct and are
// disambiguated later by the constructs they contain.
func (p *Parser) parseTypePrimary() *ast.Expr {
	tok := p.q.peekPastComments()
	switch tok.Kind {
	case token.IDENT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprReference, Name: tok.Text}
	case token.NILLIT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprNilTypeLit}
	case token.NEVERLIT:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprNeverTypeLit}
	case token.BRACELEFT:
		elems := p.parseDelimitedTypeList(token.BRACELEFT, token.BRACERIGHT)
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprStruct, Body: foldCons(elems)}
	case token.FN:
		p.q.absorbMetadata()
		p.q.next()
		param := p.parseType()
		if p.q.peekPastComments().Kind != token.ARROW {
			p.diags.Errorf(diag.CodeExpectedArrow, p.q.peekPastComments().Span, "expected '=>' in fn type")
			return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: param, Right: ast.None(p.q.peekNth(1).Span)}
		}
		p.q.absorbMetadata()
		p.q.next()
		result := p.parseType()
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: result.Span.End}}, Kind: ast.ExprBinaryOp, Op: ast.OpDefun, Left: param, Right: result}
	case token.PARENLEFT:
		p.q.absorbMetadata()
		p.q.next()
		inner := p.parseType()
		if p.q.peekPastComments().Kind != token.PARENRIGHT {
			p.diags.Errorf(diag.CodeExpectedDelimiter, p.q.peekPastComments().Span, "expected ')'")
		} else {
			p.q.absorbMetadata()
			p.q.next()
		}
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprGroup, Inner: inner}
	default:
		p.diags.Errorf(diag.CodeExpectedOperand, tok.Span, "expected a type, found %s", tok.Kind)
		p.q.absorbMetadata()
		p.q.next()
		return ast.None(tok.Span)
	}
}

func (p *Parser) parseDelimitedTypeList(open, close token.Kind) []*ast.Expr {
	p.q.absorbMetadata()
	p.q.next()
	var elems []*ast.Expr
	for {
		p.q.absorbMetadata()
		tok := p.q.peekNth(1)
		switch tok.Kind {
		case close:
			p.q.next()
			return elems
		case token.EOF:
			p.diags.Errorf(diag.CodeExpectedDelimiter, tok.Span, "missing closing delimiter in type")
			return elems
		default:
			elems = append(elems, p.parseType())
			if p.q.peekPastComments().Kind == token.COMMA {
				p.q.absorbMetadata()
				p.q.next()
			}
		}
	}
}
