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

// Package parser implements a recursive-descent parser with a peek/putback
// token queue and a data-driven, precedence-climbing operator cascade. It
// produces a Concrete-leaning AST and recovers from syntax errors at
// statement boundaries, never aborting and never returning a
// partially-populated node.
package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// Parser holds a token queue over a lexer. All AST nodes it produces live
// until the caller discards the Parser; there is no separate allocator
// indirection at this layer.
type Parser struct {
	q     *queue
	diags *diag.Bag
}

// New constructs a Parser reading from r, reporting diagnostics into
// diags.
func New(r lexer.Reader, diags *diag.Bag) *Parser {
	return &Parser{q: newQueue(lexer.New(r), diags), diags: diags}
}

// NextStmt reads one top-level statement into the returned Stmt and
// reports whether more input remains. It mirrors a `nextStmntAndCheckNext`
// contract: EOF reached means the second result is false and the returned
// Stmt is nil.
func (p *Parser) NextStmt() (*ast.Stmt, bool) {
	metadata := p.q.absorbMetadata()
	if p.q.peekNth(1).Kind == token.EOF {
		return nil, false
	}
	stmt := p.parseStmt(metadata)
	return stmt, true
}

func (p *Parser) parseStmt(metadata []string) *ast.Stmt {
	start := p.q.peekNth(1).Span.Start

	switch p.q.peekNth(1).Kind {
	case token.USE:
		return p.parseUseStmt(start, metadata)
	case token.MOD:
		return p.parseModStmt(start, metadata)
	case token.LET:
		return p.parseLetStmt(start, metadata)
	case token.TYPE:
		return p.parseTypeStmt(start, metadata)
	case token.DEFER:
		return p.parseDeferStmt(start, metadata)
	default:
		return p.parseExprStmt(start, metadata)
	}
}

// parseUseStmt, parseModStmt, and parseTypeStmt all share the same shape
// as parseExprStmt at the statement level (a keyword, then an expression
// consumed as the statement's payload); the language's module and type
// surface forms are not otherwise distinguished by this front end.
func (p *Parser) parseUseStmt(start source.Position, metadata []string) *ast.Stmt {
	p.q.next() // consume 'use'
	e := p.parseExpr()
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtExpr,
		Expr:   e,
	}
}

func (p *Parser) parseModStmt(start source.Position, metadata []string) *ast.Stmt {
	p.q.next() // consume 'mod'
	e := p.parseExpr()
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtExpr,
		Expr:   e,
	}
}

func (p *Parser) parseTypeStmt(start source.Position, metadata []string) *ast.Stmt {
	p.q.next() // consume 'type'
	e := p.parseExpr()
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtExpr,
		Expr:   e,
	}
}

func (p *Parser) parseDeferStmt(start source.Position, metadata []string) *ast.Stmt {
	p.q.next() // consume 'defer'
	e := p.parseExpr()
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtDefer,
		Expr:   e,
	}
}

// parseLetStmt handles `let <pattern> := <value>`. It produces the same
// StmtAssign shape (a pattern on the left, a value expression on the
// right) that parseExprStmt produces for the bare `<expr> = <value>` form.
func (p *Parser) parseLetStmt(start source.Position, metadata []string) *ast.Stmt {
	p.q.next() // consume 'let'
	pat := p.parsePattern()

	if p.q.peekPastComments().Kind != token.DEFINE {
		span := p.spanFrom(start)
		p.diags.Errorf(diag.CodeExpectedDefine, span, "expected ':=' in let statement")
		return &ast.Stmt{Common: ast.Common{Span: span, Metadata: metadata}, Kind: ast.StmtAssign, Pat: pat, Val: ast.None(span)}
	}
	p.q.absorbMetadata()
	p.q.next() // consume ':='

	val := p.parseExpr()
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtAssign,
		Pat:    pat,
		Val:    val,
	}
}

func (p *Parser) parseExprStmt(start source.Position, metadata []string) *ast.Stmt {
	e := p.parseExpr()
	if p.q.peekPastComments().Kind == token.ASSIGN {
		p.q.absorbMetadata()
		p.q.next() // consume '='
		val := p.parseExpr()
		return &ast.Stmt{
			Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
			Kind:   ast.StmtAssign,
			Pat:    e,
			Val:    val,
		}
	}
	return &ast.Stmt{
		Common: ast.Common{Span: p.spanFrom(start), Metadata: metadata},
		Kind:   ast.StmtExpr,
		Expr:   e,
	}
}

func (p *Parser) spanFrom(start source.Position) source.Span {
	return source.Span{Start: start, End: p.q.lastEnd}
}
