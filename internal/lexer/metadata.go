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

package lexer

import (
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/token"
)

// lexMetadata implements the three metadata forms: nestable block
// (${…}$ / #{…}#), line ($$… / ##…), and word ($word / #word). significant reports
// whether the leading sigil was '$' (true, retained on the AST) or '#'
// (false, dropped by the parser).
func (l *Lexer) lexMetadata(start source.Position, diags *diag.Bag, significant bool) token.Token {
	sigil := byte('#')
	if significant {
		sigil = '$'
	}
	l.r.Drop() // consume the leading sigil

	if b, ok := l.r.Peek(1); ok && b == sigil {
		return l.lexMetadataLine(start, significant)
	}
	if b, ok := l.r.Peek(1); ok && b == '{' {
		return l.lexMetadataBlock(start, diags, significant)
	}
	return l.lexMetadataWord(start, significant)
}

func (l *Lexer) lexMetadataLine(start source.Position, significant bool) token.Token {
	l.r.Drop() // consume second sigil
	var text []byte
	for {
		b, ok := l.r.Peek(1)
		if !ok || b == '\n' {
			break
		}
		l.r.Drop()
		text = append(text, b)
	}
	return token.Token{Kind: token.METADATA, Text: string(text), Significant: significant, Span: l.spanFrom(start)}
}

func (l *Lexer) lexMetadataWord(start source.Position, significant bool) token.Token {
	var text []byte
	for {
		b, ok := l.r.Peek(1)
		if !ok || !isIdentCont(b) {
			break
		}
		l.r.Drop()
		text = append(text, b)
	}
	return token.Token{Kind: token.METADATA, Text: string(text), Significant: significant, Span: l.spanFrom(start)}
}

// lexMetadataBlock implements the nestable ${…}$ / #{…}# form: a single
// depth counter tracks any mix of '$' and '#' openers/closers ($+{ or
// #+{ increments, }+$/}+# decrements).
func (l *Lexer) lexMetadataBlock(start source.Position, diags *diag.Bag, significant bool) token.Token {
	l.r.Drop() // consume '{'
	depth := 1
	var text []byte
	for depth > 0 {
		b, ok := l.r.Peek(1)
		if !ok {
			span := l.spanFrom(start)
			diags.Errorf(diag.CodeMetadataUnterminated, span, "unterminated metadata block")
			break
		}

		if (b == '$' || b == '#') {
			if nb, ok2 := l.r.Peek(2); ok2 && nb == '{' {
				depth++
				text = append(text, b, nb)
				l.r.Drop()
				l.r.Drop()
				continue
			}
		}
		if b == '}' {
			if nb, ok2 := l.r.Peek(2); ok2 && (nb == '$' || nb == '#') {
				depth--
				l.r.Drop()
				l.r.Drop()
				if depth == 0 {
					break
				}
				text = append(text, '}', nb)
				continue
			}
		}

		l.r.Drop()
		text = append(text, b)
	}
	return token.Token{Kind: token.METADATA, Text: string(text), Significant: significant, Span: l.spanFrom(start)}
}
