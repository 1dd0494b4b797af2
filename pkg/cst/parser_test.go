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
package cst

import (
	"testing"

	"github.com/adastra-lang/adastra/pkg/lexer"
	"github.com/adastra-lang/adastra/pkg/util/assert"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()

	file := source.NewSourceFile("t", []byte(src))
	toks := lexer.Tokenize(file)
	p := NewParser(toks)
	root := p.Parse()

	assert.Equal(t, 0, len(p.Errors()))

	return root
}

func firstClause(root *Node) *Node {
	return root.Children[0].Children[0]
}

func TestParser_00_LetBindingTokenSequence(t *testing.T) {
	root := parse(t, "let x = 1 + 2;")
	letNode := firstClause(root)

	assert.Equal(t, KindLet, letNode.Kind)
	assert.Equal(t, "letx=1+2;", root.Text())
}

func TestParser_01_BinaryPrecedence(t *testing.T) {
	root := parse(t, "1 + 2 * 3;")
	expr := firstClause(root)

	assert.Equal(t, KindExpr, expr.Kind)

	bin := expr.Children[0]
	assert.Equal(t, KindBinary, bin.Kind)
	assert.Equal(t, "1", bin.Children[0].Text())

	rhs := bin.Children[2]
	assert.Equal(t, KindBinary, rhs.Kind)
	assert.Equal(t, "2*3", rhs.Text())
}

func TestParser_02_CallAndFieldChain(t *testing.T) {
	root := parse(t, "foo.bar(1, 2).baz;")
	expr := firstClause(root)
	field := expr.Children[0]

	assert.Equal(t, KindField, field.Kind)
	assert.Equal(t, "foo.bar(1,2).baz", field.Text())
}

func TestParser_03_IfElseChain(t *testing.T) {
	root := parse(t, "if x { 1; } else if y { 2; } else { 3; }")
	ifNode := firstClause(root)

	assert.Equal(t, KindIf, ifNode.Kind)
	assert.Equal(t, 4, len(ifNode.Children))

	elseNode := ifNode.Children[3]
	assert.Equal(t, KindElse, elseNode.Kind)
	assert.Equal(t, KindIf, elseNode.Children[1].Kind)
}

func TestParser_04_MatchArms(t *testing.T) {
	root := parse(t, "match x { 1 => 2, 3 => 4 }")
	matchNode := firstClause(root)

	assert.Equal(t, KindMatch, matchNode.Kind)

	body := matchNode.Children[2]
	assert.Equal(t, KindMatchBody, body.Kind)
}

func TestParser_05_FnDecl(t *testing.T) {
	root := parse(t, "fn add(a, b) { return a + b; }")
	fnNode := firstClause(root)

	assert.Equal(t, KindFn, fnNode.Kind)
	assert.Equal(t, "add", fnNode.Children[1].Text())

	params := fnNode.Children[2]
	assert.Equal(t, KindFnParams, params.Kind)
}

func TestParser_06_UseDeclaration(t *testing.T) {
	root := parse(t, "use felt::Int;")
	useNode := firstClause(root)

	assert.Equal(t, KindUse, useNode.Kind)

	path := useNode.Children[1]
	assert.Equal(t, KindPackagePath, path.Kind)
	assert.Equal(t, "felt::Int", path.Text())
}

func TestParser_07_FindAtLocatesInnerIdent(t *testing.T) {
	root := parse(t, "let x = foo;")

	found := root.FindAt(8)
	assert.Equal(t, KindToken, found.Kind)
	assert.Equal(t, lexer.Ident, found.Token.Kind)
}

func TestParser_08_ParseErrorRecovers(t *testing.T) {
	file := source.NewSourceFile("t", []byte("let x = ;\nlet y = 1;"))
	toks := lexer.Tokenize(file)
	p := NewParser(toks)
	root := p.Parse()

	assert.Equal(t, true, len(p.Errors()) > 0)
	assert.Equal(t, 2, len(root.Children))
}
