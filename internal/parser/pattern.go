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

// patternLevelOps mirrors levelOps but for the pattern-expression cascade,
// which runs parallel to (and shares the same table-driven shape as) the
// value-expression one, just over a different closed operator set.
var patternLevelOps = map[int]map[token.Kind]ast.BinaryOp{
	6: {token.OR: ast.OpOr},
	5: {token.AND: ast.OpAnd},
	4: {token.SUM: ast.OpSum},
	3: {token.COMMA: ast.OpCons},
}

// parsePattern is the pattern-expression grammar's entry point, L6.
func (p *Parser) parsePattern() *ast.Expr {
	metadata := p.q.absorbMetadata()
	e := p.parsePatternLevel(6)
	e.Metadata = append(metadata, e.Metadata...)
	return &ast.Expr{Common: e.Common, Kind: ast.ExprPat, Inner: e}
}

func (p *Parser) parsePatternLevel(level int) *ast.Expr {
	if level < 3 {
		return p.parsePatternUnary()
	}
	left := p.parsePatternLevel(level - 1)
	ops := patternLevelOps[level]
	for {
		tok := p.q.peekPastComments()
		op, ok := ops[tok.Kind]
		if !ok {
			return left
		}
		comments := p.q.absorbMetadata()
		p.q.next()
		right := p.parsePatternLevel(level)
		left = &ast.Expr{
			Common: ast.Common{Span: source.Join(left.Span, right.Span), Metadata: comments},
			Kind:   ast.ExprBinaryOp,
			Op:     op,
			Left:   left,
			Right:  right,
		}
	}
}

// parsePatternUnary implements L2: `not <pattern>`.
func (p *Parser) parsePatternUnary() *ast.Expr {
	tok := p.q.peekPastComments()
	if tok.Kind != token.NOT {
		return p.parsePatternPrimary()
	}
	p.q.absorbMetadata()
	p.q.next()
	operand := p.parsePatternUnary()
	return &ast.Expr{
		Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: operand.Span.End}},
		Kind:   ast.ExprBinaryOp,
		Op:     ast.OpNot,
		Right:  operand,
	}
}

// parsePatternPrimary implements L1: grouped patterns, struct
// destructuring, a binder with an optional `: Type` restriction, a
// literal value (`0`, `"s"`, ...), and a comparison-value restriction
// (`== v`, `< v`, ...).
func (p *Parser) parsePatternPrimary() *ast.Expr {
	tok := p.q.peekPastComments()
	switch tok.Kind {
	case token.PARENLEFT:
		p.q.absorbMetadata()
		p.q.next()
		inner := p.parsePattern()
		if p.q.peekPastComments().Kind != token.PARENRIGHT {
			p.diags.Errorf(diag.CodeExpectedDelimiter, p.q.peekPastComments().Span, "expected ')'")
		} else {
			p.q.absorbMetadata()
			p.q.next()
		}
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprGroup, Inner: inner}

	case token.BRACELEFT:
		elems := p.parseDelimitedPatternList(token.BRACELEFT, token.BRACERIGHT)
		return &ast.Expr{Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: p.q.lastEnd}}, Kind: ast.ExprStruct, Body: foldCons(elems)}

	case token.UNDERSCORE:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprBindIgnore}

	case token.RANGE:
		p.q.absorbMetadata()
		p.q.next()
		return &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprBindSplat}

	case token.IDENT:
		p.q.absorbMetadata()
		p.q.next()
		bind := &ast.Expr{Common: ast.Common{Span: tok.Span}, Kind: ast.ExprBind, Name: tok.Text}
		if p.q.peekPastComments().Kind == token.CONSTRAIN {
			p.q.absorbMetadata()
			p.q.next() // consume ':'
			typ := p.parseType()
			return &ast.Expr{
				Common: ast.Common{Span: source.Span{Start: bind.Span.Start, End: typ.Span.End}},
				Kind:   ast.ExprBinaryOp,
				Op:     ast.OpConstrain,
				Left:   bind,
				Right:  typ,
			}
		}
		return bind

	case token.INT, token.REAL, token.STRING, token.BOOLLIT:
		// A bare literal restricts the scrutinee to that exact value.
		return p.parsePrimary()

	case token.EQ, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		p.q.absorbMetadata()
		p.q.next()
		value := p.parseBinaryLevel(6) // a restricted value expression
		return &ast.Expr{
			Common: ast.Common{Span: source.Span{Start: tok.Span.Start, End: value.Span.End}},
			Kind:   ast.ExprBinaryOp,
			Op:     comparisonOp(tok.Kind),
			Right:  value,
		}

	default:
		p.diags.Errorf(diag.CodeExpectedOperand, tok.Span, "expected a pattern, found %s", tok.Kind)
		p.q.absorbMetadata()
		p.q.next()
		return ast.None(tok.Span)
	}
}

func comparisonOp(k token.Kind) ast.BinaryOp {
	switch k {
	case token.EQ:
		return ast.OpEq
	case token.NEQ:
		return ast.OpNeq
	case token.LSS:
		return ast.OpLss
	case token.LEQ:
		return ast.OpLeq
	case token.GTR:
		return ast.OpGtr
	case token.GEQ:
		return ast.OpGeq
	default:
		return ast.OpNone
	}
}

func (p *Parser) parseDelimitedPatternList(open, close token.Kind) []*ast.Expr {
	p.q.absorbMetadata()
	p.q.next() // consume opening delimiter
	var elems []*ast.Expr
	for {
		p.q.absorbMetadata()
		tok := p.q.peekNth(1)
		switch tok.Kind {
		case close:
			p.q.next()
			return elems
		case token.EOF:
			p.diags.Errorf(diag.CodeExpectedDelimiter, tok.Span, "missing closing delimiter in pattern")
			return elems
		default:
			elems = append(elems, p.parsePattern())
			if p.q.peekPastComments().Kind == token.COMMA {
				p.q.absorbMetadata()
				p.q.next()
			}
		}
	}
}
