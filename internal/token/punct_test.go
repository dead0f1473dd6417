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

import (
	"sort"
	"testing"

	"github.com/mpvl/unique"
	"github.com/stretchr/testify/assert"
)

// TestPunctTableHasNoDuplicateLexemes guards against two punctuator rows
// sharing a lexeme, which would make MatchPunct's result depend on table
// order instead of on longest-match.
func TestPunctTableHasNoDuplicateLexemes(t *testing.T) {
	lexemes := make([]string, len(puncts))
	for i, p := range puncts {
		lexemes[i] = p.lexeme
	}
	sort.Strings(lexemes)

	deduped := append([]string(nil), lexemes...)
	unique.Strings(&deduped)

	assert.Equal(t, lexemes, deduped, "duplicate punctuator lexeme in table")
}

func TestMatchPunctLongestMatch(t *testing.T) {
	kind, n := MatchPunct([]byte("..=x"))
	assert.Equal(t, RANGEINCL, kind)
	assert.Equal(t, 3, n)

	kind, n = MatchPunct([]byte("..x"))
	assert.Equal(t, RANGE, kind)
	assert.Equal(t, 2, n)

	kind, n = MatchPunct([]byte("?"))
	assert.Equal(t, ILLEGAL, kind)
	assert.Equal(t, 0, n)
}
