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
	"unicode"

	"github.com/adastra-lang/adastra/pkg/util"
	"github.com/adastra-lang/adastra/pkg/util/source"
)

// Token pairs a Kind with the span of source text it covers and the text
// itself, pre-sliced for the parser's convenience.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// runeScanner implements source.Scanner[rune] by hand: Ad Astra's token
// grammar (keyword-vs-identifier disambiguation, multi-character operators,
// block comments) doesn't decompose cleanly into the One/Many
// combinators pkg/util/source/scanner.go offers for simpler grammars, so
// this scanner inspects the rune prefix directly.
type runeScanner struct{}

// NewScanner constructs the Ad Astra token scanner.
func NewScanner() source.Scanner[rune] {
	return &runeScanner{}
}

func (s *runeScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 {
		return util.None[source.Token]()
	}

	if n, ok := scanWhitespace(items); ok {
		return some(Whitespace, n)
	}

	if n, ok := scanComment(items); ok {
		return some(Comment, n)
	}

	if n, ok := scanString(items); ok {
		return some(String, n)
	}

	if n, ok := scanNumber(items); ok {
		return some(n.kind, n.length)
	}

	if n, ok := scanIdent(items); ok {
		return some(n.kind, n.length)
	}

	if n, ok := scanOperator(items); ok {
		return some(n.kind, n.length)
	}

	return some(Error, 1)
}

func some(kind Kind, n int) util.Option[source.Token] {
	return util.Some(source.Token{Kind: uint(kind), Span: source.NewSpan(0, n)})
}

func scanWhitespace(items []rune) (int, bool) {
	i := 0
	for i < len(items) && unicode.IsSpace(items[i]) {
		i++
	}

	return i, i > 0
}

func scanComment(items []rune) (int, bool) {
	if len(items) < 2 || items[0] != '/' {
		return 0, false
	}

	switch items[1] {
	case '/':
		i := 2
		for i < len(items) && items[i] != '\n' {
			i++
		}

		return i, true
	case '*':
		i := 2
		for i+1 < len(items) && !(items[i] == '*' && items[i+1] == '/') {
			i++
		}

		if i+1 < len(items) {
			i += 2
		} else {
			i = len(items)
		}

		return i, true
	default:
		return 0, false
	}
}

func scanString(items []rune) (int, bool) {
	if items[0] != '"' {
		return 0, false
	}

	i := 1
	for i < len(items) && items[i] != '"' {
		if items[i] == '\\' && i+1 < len(items) {
			i++
		}

		i++
	}

	if i < len(items) {
		i++
	}

	return i, true
}

type sized struct {
	kind   Kind
	length int
}

func scanNumber(items []rune) (sized, bool) {
	if !unicode.IsDigit(items[0]) {
		return sized{}, false
	}

	i := 0
	for i < len(items) && unicode.IsDigit(items[i]) {
		i++
	}

	kind := Int

	if i+1 < len(items) && items[i] == '.' && unicode.IsDigit(items[i+1]) {
		kind = Float
		i++

		for i < len(items) && unicode.IsDigit(items[i]) {
			i++
		}
	}

	return sized{kind, i}, true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func scanIdent(items []rune) (sized, bool) {
	if !isIdentStart(items[0]) {
		return sized{}, false
	}

	i := 1
	for i < len(items) && isIdentContinue(items[i]) {
		i++
	}

	name := string(items[:i])
	if kw, ok := IsKeyword(name); ok {
		return sized{kw, i}, true
	}

	return sized{Ident, i}, true
}

// operators is tried longest-prefix-first, so e.g. ">>=" is preferred over
// ">>" and ">=" over ">".
var operators = []struct {
	text string
	kind Kind
}{
	{"<<=", ShlAssign}, {">>=", ShrAssign},
	{"::", ColonColon}, {"->", Arrow}, {"=>", FatArrow}, {"..", DotDot},
	{"+=", AddAssign}, {"-=", SubAssign}, {"*=", MulAssign}, {"/=", DivAssign},
	{"%=", RemAssign}, {"&&=", AndAssign}, {"||=", OrAssign},
	{"&=", BitAndAssign}, {"|=", BitOrAssign}, {"^=", BitXorAssign},
	{"&&", AmpAmp}, {"||", PipePipe}, {"==", Eq}, {"!=", Ne},
	{"<=", Le}, {">=", Ge}, {"<<", Shl}, {">>", Shr},
	{"(", LParen}, {")", RParen}, {"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket}, {",", Comma}, {":", Colon},
	{";", Semicolon}, {".", Dot}, {"?", Question}, {"=", Assign},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent},
	{"!", Bang}, {"&", Amp}, {"|", Pipe}, {"^", Caret}, {"~", Tilde},
	{"<", Lt}, {">", Gt},
}

func scanOperator(items []rune) (sized, bool) {
	for _, op := range operators {
		n := len(op.text)
		if n <= len(items) && string(items[:n]) == op.text {
			return sized{op.kind, n}, true
		}
	}

	return sized{}, false
}

// Tokenize lexes an entire source file into a trivia-free token stream
// (whitespace and comments are dropped), terminated by one Eof token. No
// trivia-retaining stream is produced.
func Tokenize(file *source.File) []Token {
	runes := file.Contents()
	l := source.NewLexer(runes, NewScanner())

	var out []Token

	for _, tok := range l.Collect() {
		kind := Kind(tok.Kind)
		if kind.IsTrivia() {
			continue
		}

		span := tok.Span
		out = append(out, Token{
			Kind: kind,
			Span: span,
			Text: string(runes[span.Start():span.End()]),
		})
	}

	out = append(out, Token{Kind: Eof, Span: source.NewSpan(len(runes), len(runes))})

	return out
}
