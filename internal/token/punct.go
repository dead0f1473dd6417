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

package token

import "sort"

// puncts is the closed punctuator set. Longest-match dispatch is data
// driven from this single table rather than a hand-unrolled decision tree
// of if/else chains per punctuator family.
var puncts = []struct {
	lexeme string
	kind   Kind
}{
	{"..=", RANGEINCL},
	{"..", RANGE},
	{"::", MODRES},
	{":=", DEFINE},
	{"==", EQ},
	{"!=", NEQ},
	{"<=", LEQ},
	{">=", GEQ},
	{"+=", ASSIGNADD},
	{"-=", ASSIGNSUB},
	{"*=", ASSIGNMUL},
	{"/=", ASSIGNFDIV},
	{"%=", ASSIGNFREM},
	{"=>", ARROW},
	{"->", PIPEOP},
	{"|>", PIPEFWD},
	{"<|", PIPEBWD},
	{">>", COMPOSE},
	{"+", ADD},
	{"-", SUB},
	{"*", MUL},
	{"/", FDIV},
	{"%", FREM},
	{"=", ASSIGN},
	{"<", LSS},
	{">", GTR},
	{"&", REF},
	{"@", DEREF},
	{"(", PARENLEFT},
	{")", PARENRIGHT},
	{"{", BRACELEFT},
	{"}", BRACERIGHT},
	{"[", BRACKLEFT},
	{"]", BRACKRIGHT},
	{".", FIELDACCESS},
	{":", CONSTRAIN},
	{",", COMMA},
	{"|", SUM},
	{"_", UNDERSCORE},
	{"\\", BACKSLASH},
	{";", SEMI},
}

// maxPunctLen is the longest lexeme in puncts; the lexer needs at least
// this many bytes of lookahead to disambiguate.
var maxPunctLen = func() int {
	n := 0
	for _, p := range puncts {
		if len(p.lexeme) > n {
			n = len(p.lexeme)
		}
	}
	return n
}()

func init() {
	// longest-match requires lexemes of the same first byte to be tried
	// longest-first; sort once at init instead of per-call.
	sort.SliceStable(puncts, func(i, j int) bool {
		return len(puncts[i].lexeme) > len(puncts[j].lexeme)
	})
}

// MaxPunctLookahead reports how many bytes of lookahead MatchPunct needs.
func MaxPunctLookahead() int { return maxPunctLen }

// MatchPunct performs longest-match against the punctuator table using up
// to MaxPunctLookahead() bytes from buf. It returns the matched Kind and
// the number of bytes consumed, or (ILLEGAL, 0) if no punctuator matches.
func MatchPunct(buf []byte) (Kind, int) {
	for _, p := range puncts {
		n := len(p.lexeme)
		if n > len(buf) {
			continue
		}
		if string(buf[:n]) == p.lexeme {
			return p.kind, n
		}
	}
	return ILLEGAL, 0
}
