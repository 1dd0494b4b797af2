// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lexer

import (
	"testing"

	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func TestLexer_00_KeywordsAndIdents(t *testing.T) {
	file := source.NewSourceFile("t", []byte("let x = foo"))
	toks := Tokenize(file)

	assert.Equal(t, KwLet, toks[0].Kind)
	assert.Equal(t, Ident, toks[1].Kind)
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, Assign, toks[2].Kind)
	assert.Equal(t, Ident, toks[3].Kind)
	assert.Equal(t, "foo", toks[3].Text)
	assert.Equal(t, Eof, toks[4].Kind)
}

func TestLexer_01_NumbersAndStrings(t *testing.T) {
	file := source.NewSourceFile("t", []byte(`42 3.14 "hi\\"`))
	toks := Tokenize(file)

	assert.Equal(t, Int, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Text)
	assert.Equal(t, Float, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Text)
	assert.Equal(t, String, toks[2].Kind)
}

func TestLexer_02_MultiCharOperatorsLongestMatch(t *testing.T) {
	file := source.NewSourceFile("t", []byte(">>= >> >= > .. . :: :"))
	toks := Tokenize(file)

	got := kinds(toks)
	want := []Kind{ShrAssign, Shr, Ge, Gt, DotDot, Dot, ColonColon, Colon, Eof}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestLexer_03_CommentsAreTrivia(t *testing.T) {
	file := source.NewSourceFile("t", []byte("// hi\nlet /* c */ x"))
	toks := Tokenize(file)

	assert.Equal(t, KwLet, toks[0].Kind)
	assert.Equal(t, Ident, toks[1].Kind)
}

func TestLexer_04_KeywordVsIdentPrefix(t *testing.T) {
	file := source.NewSourceFile("t", []byte("lettuce"))
	toks := Tokenize(file)

	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "lettuce", toks[0].Text)
}
