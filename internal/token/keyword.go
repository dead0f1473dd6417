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

// keywords is the closed keyword set. true/false/nil/never are matched
// separately by the identifier lexer since they carry literal payloads
// rather than being bare keyword tokens.
var keywords = map[string]Kind{
	"loop":  LOOP,
	"match": MATCH,
	"new":   NEW,
	"def":   DEF,
	"ret":   RET,
	"defer": DEFER,
	"fn":    FN,
	"has":   HAS,
	"let":   LET,
	"type":  TYPE,
	"mod":   MOD,
	"use":   USE,
	"and":   AND,
	"or":    OR,
	"xor":   XOR,
	"not":   NOT,
	"div":   IDIV,
	"rem":   IREM,
}

// Lookup reports the keyword Kind for ident, or (ILLEGAL, false) if ident
// is not reserved. Callers are expected to check the literal-constant names
// ("true", "false", "nil", "never") before falling back to Lookup.
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
